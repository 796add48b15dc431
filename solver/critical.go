package solver

import (
	"github.com/katalvlaran/ddopt/ddo"
	"github.com/katalvlaran/ddopt/frontier"
)

// critical bundles every field process_one_node/get_workload/
// notify_node_finished touch; it is always accessed with Shared.mu held.
//
// Grounded on original_source/src/solver/barrier.rs's Critical struct.
type critical[State comparable] struct {
	fringe *frontier.NoDupHeap[State]

	ongoing     int
	explored    int
	exploredDD  int

	openByLayer    []int
	ongoingByLayer []int

	lowestActiveLayer int

	bestLB  int
	bestUB  int
	bestSol []ddo.Decision

	upperBounds []int

	interrupted bool
}

func newCritical[State comparable](fringe *frontier.NoDupHeap[State], nbVariables, nbThreads int) *critical[State] {
	upperBounds := make([]int, nbThreads)
	for i := range upperBounds {
		upperBounds[i] = ddo.PlusInf
	}
	return &critical[State]{
		fringe:         fringe,
		bestLB:         ddo.MinusInf,
		bestUB:         ddo.PlusInf,
		upperBounds:    upperBounds,
		openByLayer:    make([]int, nbVariables+1),
		ongoingByLayer: make([]int, nbVariables+1),
	}
}

// workLoad is what get_workload hands a worker: either a node to process, or
// one of three reasons there isn't one right now.
type workLoad[State comparable] struct {
	kind workKind
	node ddo.SubProblem[State]
}

type workKind int

const (
	workComplete workKind = iota
	workInterrupted
	workStarvation
	workItem
)
