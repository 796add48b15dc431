package tsptw_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ddopt/tsptw"
)

const sampleYAML = `
nodes: 3
distances:
  - [0, 5, 9]
  - [5, 0, 3]
  - [9, 3, 0]
time_windows:
  - {earliest: 0, latest: 100}
  - {earliest: 0, latest: 50}
  - {earliest: 0, latest: 60}
`

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "instance.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadInstanceParsesValidYAML(t *testing.T) {
	path := writeTemp(t, sampleYAML)

	inst, err := tsptw.LoadInstance(path)
	require.NoError(t, err)
	require.Equal(t, 3, inst.NbNodes)
	require.Equal(t, 5, inst.Distances.At(0, 1))
	require.Equal(t, 50, inst.TimeWindows[1].Latest)
}

func TestLoadInstanceRejectsMismatchedDimensions(t *testing.T) {
	path := writeTemp(t, `
nodes: 3
distances:
  - [0, 5]
  - [5, 0, 3]
  - [9, 3, 0]
time_windows:
  - {earliest: 0, latest: 100}
  - {earliest: 0, latest: 50}
  - {earliest: 0, latest: 60}
`)

	_, err := tsptw.LoadInstance(path)
	require.Error(t, err)

	var parseErr *tsptw.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadInstanceRejectsMissingFile(t *testing.T) {
	_, err := tsptw.LoadInstance(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
