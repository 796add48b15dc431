package solver

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ddopt/compiler"
	"github.com/katalvlaran/ddopt/ddo"
)

// Solver is a parallel branch-and-bound optimizer over a ddo.Problem, built
// from a fixed-size worker pool that repeatedly pulls sub-problems off a
// shared frontier. Construct one with New, then call Maximize or
// MaximizeWithInterrupt exactly once.
//
// Grounded on original_source/src/solver/barrier.rs's BarrierParallelSolver;
// the worker pool itself is spawned with golang.org/x/sync/errgroup instead
// of std::thread::scope.
type Solver[State comparable] struct {
	shared    *shared[State]
	nbThreads int
}

// New builds a solver for the given model. nbThreads <= 0 defaults to
// runtime.GOMAXPROCS(0), mirroring the reference's num_cpus::get() default.
func New[State comparable](
	problem ddo.Problem[State],
	relaxation ddo.Relaxation[State],
	ranking ddo.StateRanking[State],
	widthHeu ddo.WidthHeuristic[State],
	cutsetType ddo.CutsetType,
	flavor ddo.SolverFlavor,
	nbThreads int,
) *Solver[State] {
	if nbThreads <= 0 {
		nbThreads = runtime.GOMAXPROCS(0)
	}
	return &Solver[State]{
		shared:    newShared[State](problem, relaxation, ranking, widthHeu, cutsetType, flavor, nbThreads),
		nbThreads: nbThreads,
	}
}

// Maximize runs the solver to proof, blocking until every worker has
// observed completion.
func (s *Solver[State]) Maximize() {
	s.run(func() bool { return false })
}

// MaximizeWithInterrupt runs until proof or until interrupt reports true,
// returning which one happened.
func (s *Solver[State]) MaximizeWithInterrupt(interrupt func() bool) ddo.ResolutionStatus {
	s.run(interrupt)

	s.shared.mu.Lock()
	interrupted := s.shared.crit.interrupted
	s.shared.mu.Unlock()

	if interrupted {
		return ddo.Interrupted
	}
	return ddo.Proved
}

func (s *Solver[State]) run(interrupt func() bool) {
	s.shared.initialize()

	var g errgroup.Group
	for i := 0; i < s.nbThreads; i++ {
		threadID := i
		g.Go(func() error {
			mdd := compiler.New[State](s.shared.cutsetType)
			for {
				wl := s.shared.getWorkload(threadID, interrupt)
				switch wl.kind {
				case workComplete, workInterrupted:
					return nil
				case workStarvation:
					continue
				case workItem:
					depth := wl.node.Depth()
					exploredDD := s.shared.processOneNode(mdd, wl.node)
					s.shared.notifyNodeFinished(threadID, depth, exploredDD)
				}
			}
		})
	}
	_ = g.Wait() // worker goroutines never return a non-nil error
}

// BestValue returns the best objective value found, if any solution was
// ever derived.
func (s *Solver[State]) BestValue() (int, bool) {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	if s.shared.crit.bestSol == nil {
		return 0, false
	}
	return s.shared.crit.bestLB, true
}

// BestSolution returns the decision path of the best solution found, if any.
func (s *Solver[State]) BestSolution() ([]ddo.Decision, bool) {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	if s.shared.crit.bestSol == nil {
		return nil, false
	}
	sol := make([]ddo.Decision, len(s.shared.crit.bestSol))
	copy(sol, s.shared.crit.bestSol)
	return sol, true
}

// BestLowerBound returns the best proved-reachable value so far, usable
// while the solve is still in progress.
func (s *Solver[State]) BestLowerBound() int {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	return s.shared.crit.bestLB
}

// BestUpperBound returns the best known upper bound. It is only set once
// the solve completes or is interrupted; callers must treat it purely as a
// progress estimate, never as a proof of optimality, per SPEC_FULL.md §5.
func (s *Solver[State]) BestUpperBound() int {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	return s.shared.crit.bestUB
}

// Explored returns how many branch-and-bound nodes have been popped off the
// frontier and processed so far.
func (s *Solver[State]) Explored() int {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	return s.shared.crit.explored
}

// ExploredDD returns how many decision-diagram nodes have been branched on
// across every restricted and relaxed diagram so far.
func (s *Solver[State]) ExploredDD() int {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	return s.shared.crit.exploredDD
}

var (
	_ ddo.Solver              = (*Solver[int])(nil)
	_ ddo.InterruptibleSolver = (*Solver[int])(nil)
)
