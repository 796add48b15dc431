package tsptw

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ddopt/support"
)

// TimeWindow is the feasible arrival interval at a node: arriving before
// Earliest means waiting, arriving after Latest makes the decision that led
// here infeasible.
type TimeWindow struct {
	Earliest int `yaml:"earliest"`
	Latest   int `yaml:"latest"`
}

// rawInstance is the on-disk YAML shape: nodes, an n×n distance table and
// one time window per node. LoadInstance decodes into it directly and then
// checks each field, so ParseError can report which field was malformed.
type rawInstance struct {
	Nodes        int          `yaml:"nodes"`
	Distances    [][]int      `yaml:"distances"`
	TimeWindows  []TimeWindow `yaml:"time_windows"`
}

// Instance is a parsed TSP-with-time-windows problem instance: the distance
// matrix between every pair of nodes, and each node's feasible arrival
// window. Node 0 is always the depot.
type Instance struct {
	NbNodes     int
	Distances   *support.Matrix
	TimeWindows []TimeWindow
}

// ParseError reports a problem reading or decoding an instance file, naming
// the offending path alongside the wrapped cause.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tsptw: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadInstance reads and validates a YAML-encoded instance file.
func LoadInstance(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var raw rawInstance
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if raw.Nodes <= 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("nodes must be positive, got %d", raw.Nodes)}
	}
	if len(raw.Distances) != raw.Nodes {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("expected %d distance rows, got %d", raw.Nodes, len(raw.Distances))}
	}
	if len(raw.TimeWindows) != raw.Nodes {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("expected %d time windows, got %d", raw.Nodes, len(raw.TimeWindows))}
	}

	dist := support.NewMatrix(raw.Nodes, raw.Nodes)
	for i, row := range raw.Distances {
		if len(row) != raw.Nodes {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("distance row %d has %d entries, want %d", i, len(row), raw.Nodes)}
		}
		for j, v := range row {
			dist.Set(i, j, v)
		}
	}

	return &Instance{
		NbNodes:     raw.Nodes,
		Distances:   dist,
		TimeWindows: raw.TimeWindows,
	}, nil
}
