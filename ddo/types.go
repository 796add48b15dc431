package ddo

import "math"

// PlusInf and MinusInf stand in for the ±∞ sentinels the saturating
// arithmetic in this engine composes around (see saturating.go).
const (
	PlusInf  = math.MaxInt
	MinusInf = math.MinInt
)

// Variable is a non-negative index into the problem's variable ordering.
type Variable int

// Decision pairs a variable with the integer value assigned to it.
type Decision struct {
	Var   Variable
	Value int
}

// SubProblem is a unit of work on the frontier: a shared state, the value
// accumulated to reach it, the path of decisions from the root, and an
// upper bound on the best reachable from here. Invariant: UB >= Value, and
// len(Path) equals the depth (layer) of State.
type SubProblem[State comparable] struct {
	State State
	Value int
	Path  []Decision
	UB    int
}

// Depth is the layer this sub-problem sits at, equal to len(Path).
func (s SubProblem[State]) Depth() int { return len(s.Path) }

// CompilationType selects which kind of DD the compiler builds.
type CompilationType int

const (
	// Exact performs no width enforcement at all.
	Exact CompilationType = iota
	// Restricted truncates oversized layers to produce a valid lower bound.
	Restricted
	// Relaxed merges oversized layers to produce a valid upper bound plus
	// a cutset of sub-problems to continue the search from.
	Relaxed
)

func (c CompilationType) String() string {
	switch c {
	case Exact:
		return "exact"
	case Restricted:
		return "restricted"
	case Relaxed:
		return "relaxed"
	default:
		return "unknown"
	}
}

// CutsetType selects which nodes are collected into the exact cutset during
// a relaxed compilation.
type CutsetType int

const (
	// LastExactLayer collects the deepest layer at which no merge has yet
	// occurred. Cheaper, prunes aggressively near the root.
	LastExactLayer CutsetType = iota
	// Frontier collects the exact immediate predecessors of non-exact nodes
	// discovered via Marked-based back-propagation. Costlier, tighter deep
	// in the tree.
	Frontier
)

func (c CutsetType) String() string {
	switch c {
	case LastExactLayer:
		return "lel"
	case Frontier:
		return "frontier"
	default:
		return "unknown"
	}
}

// ParseCutsetType parses the CLI spelling of a cutset policy.
func ParseCutsetType(s string) (CutsetType, error) {
	switch s {
	case "lel":
		return LastExactLayer, nil
	case "frontier":
		return Frontier, nil
	default:
		return 0, ErrUnknownCutsetType
	}
}

// SolverFlavor selects between the two driver configurations described in
// SPEC_FULL.md §5: Classic gives every process_one_node call a fresh,
// unshared barrier; BarrierShared keeps one barrier per layer for the
// lifetime of the solve.
type SolverFlavor int

const (
	Classic SolverFlavor = iota
	BarrierShared
)

func (f SolverFlavor) String() string {
	switch f {
	case Classic:
		return "parallel"
	case BarrierShared:
		return "barrier"
	default:
		return "unknown"
	}
}

// ParseSolverFlavor parses the CLI spelling of a solver flavor.
func ParseSolverFlavor(s string) (SolverFlavor, error) {
	switch s {
	case "parallel":
		return Classic, nil
	case "barrier":
		return BarrierShared, nil
	default:
		return 0, ErrUnknownSolverFlavor
	}
}

// ResolutionStatus reports how a solve terminated.
type ResolutionStatus int

const (
	Proved ResolutionStatus = iota
	Interrupted
)

func (r ResolutionStatus) String() string {
	switch r {
	case Proved:
		return "Proved"
	case Interrupted:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// CompilationInput bundles everything a DD compiler needs to build a single
// diagram rooted at a residual sub-problem.
type CompilationInput[State comparable] struct {
	CompType   CompilationType
	MaxWidth   int
	Problem    Problem[State]
	Relaxation Relaxation[State]
	Ranking    StateRanking[State]
	Residual   SubProblem[State]
	BestLB     int
}
