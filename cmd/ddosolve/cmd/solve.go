package cmd

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/ddopt/ddo"
	"github.com/katalvlaran/ddopt/solver"
	"github.com/katalvlaran/ddopt/tsptw"
)

var (
	solveFile    string
	solveWidth   int
	solveTimeout int
	solveThreads int
	solveSolver  string
	solveCutset  string
	solveJSON    bool
	solveWatch   bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a tsptw instance to proof or to a time budget",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "path to a YAML tsptw instance (required)")
	solveCmd.Flags().IntVarP(&solveWidth, "width", "w", 1, "width-heuristic factor passed to NbUnassignedWidth")
	solveCmd.Flags().IntVarP(&solveTimeout, "timeout", "t", 60, "time budget in seconds")
	solveCmd.Flags().IntVarP(&solveThreads, "threads", "T", 0, "worker count (0 = detected CPU count)")
	solveCmd.Flags().StringVarP(&solveSolver, "solver", "s", "parallel", "parallel|barrier")
	solveCmd.Flags().StringVarP(&solveCutset, "cutset", "c", "lel", "lel|frontier")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "emit the result line as JSON")
	solveCmd.Flags().BoolVar(&solveWatch, "watch", false, "render a live progress view while solving")
	_ = solveCmd.MarkFlagRequired("file")

	for _, name := range []string{"file", "width", "timeout", "threads", "solver", "cutset", "json", "watch"} {
		_ = viper.BindPFlag(name, solveCmd.Flags().Lookup(name))
	}

	rootCmd.AddCommand(solveCmd)
}

// resultLine is the per-instance outcome reported by solve, either as a
// fixed-width table row or (with --json) as a JSON object — one-to-one
// with the fields original_source/src/xputils.rs::solve_timeout prints.
type resultLine struct {
	Name      string  `json:"name"`
	Solver    string  `json:"solver"`
	Status    string  `json:"status"`
	Duration  float64 `json:"duration_s"`
	RAMMB     float64 `json:"ram_mb"`
	BestValue string  `json:"best_value"`
	LB        int     `json:"lb"`
	UB        int     `json:"ub"`
	Gap       float64 `json:"gap"`
	NodesBB   int     `json:"nodes_bb"`
	NodesDD   int     `json:"nodes_dd"`
}

func gap(lb, ub int) float64 {
	alb, aub := abs(lb), abs(ub)
	u, l := aub, alb
	if alb > aub {
		u, l = alb, aub
	}
	if u == 0 {
		return 0
	}
	return float64(u-l) / float64(u)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func runSolve(cmd *cobra.Command, args []string) error {
	file := viper.GetString("file")
	widthFactor := viper.GetInt("width")
	timeoutSec := viper.GetInt("timeout")
	threads := viper.GetInt("threads")
	solverName := viper.GetString("solver")
	cutsetName := viper.GetString("cutset")
	asJSON := viper.GetBool("json")
	watch := viper.GetBool("watch")

	flavor, err := ddo.ParseSolverFlavor(solverName)
	if err != nil {
		return fmt.Errorf("ddosolve: %w", err)
	}
	cutsetType, err := ddo.ParseCutsetType(cutsetName)
	if err != nil {
		return fmt.Errorf("ddosolve: %w", err)
	}

	inst, err := tsptw.LoadInstance(file)
	if err != nil {
		return fmt.Errorf("ddosolve: %w", err)
	}

	model := tsptw.NewTsptw(inst)
	relax := tsptw.NewRelax(model)
	ranking := tsptw.NewRanking(inst)
	width := tsptw.NbUnassignedWidth{Factor: widthFactor}

	s := solver.New[tsptw.State](model, relax, ranking, width, cutsetType, flavor, threads)

	ctx, span := GetTracer().Start(cmd.Context(), "solve")
	defer span.End()
	_ = ctx

	start := time.Now()
	timeout := time.Duration(timeoutSec) * time.Second

	GetLogger().Info("solving %s (solver=%s cutset=%s timeout=%s)", file, solverName, cutsetName, timeout)

	var watchDone chan struct{}
	if watch {
		watchDone = make(chan struct{})
		go runWatchView(s, start, watchDone)
	}

	status := s.MaximizeWithInterrupt(func() bool { return time.Since(start) > timeout })

	if watchDone != nil {
		close(watchDone)
	}

	duration := time.Since(start)

	bestValue := "not found"
	if v, ok := s.BestValue(); ok {
		bestValue = fmt.Sprintf("%d", v)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	line := resultLine{
		Name:      filepath.Base(file),
		Solver:    solverName,
		Status:    status.String(),
		Duration:  duration.Seconds(),
		RAMMB:     float64(memStats.Sys) / (1024 * 1024),
		BestValue: bestValue,
		LB:        s.BestLowerBound(),
		UB:        s.BestUpperBound(),
		Gap:       gap(s.BestLowerBound(), s.BestUpperBound()),
		NodesBB:   s.Explored(),
		NodesDD:   s.ExploredDD(),
	}

	if asJSON {
		enc, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("ddosolve: encode result: %w", err)
		}
		fmt.Println(string(enc))
		return nil
	}

	fmt.Printf(resultHeader,
		line.Name, line.Solver, line.Status,
		fmt.Sprintf("%.2f", line.Duration), fmt.Sprintf("%.2f", line.RAMMB),
		line.BestValue, fmt.Sprintf("%d", line.LB), fmt.Sprintf("%d", line.UB),
		fmt.Sprintf("%.4f", line.Gap), fmt.Sprintf("%d", line.NodesBB), fmt.Sprintf("%d", line.NodesDD))
	return nil
}
