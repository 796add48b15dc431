package solver

import (
	"sync"

	"github.com/katalvlaran/ddopt/barrier"
	"github.com/katalvlaran/ddopt/compiler"
	"github.com/katalvlaran/ddopt/ddo"
	"github.com/katalvlaran/ddopt/frontier"
)

// shared is the read-mostly state every worker holds a reference to, plus
// the mutex-guarded critical section and the condition variable workers park
// on during node-starvation.
//
// Grounded on original_source/src/solver/barrier.rs's Shared struct; the
// parking_lot::{Mutex, Condvar} pair becomes sync.Mutex + sync.Cond.
type shared[State comparable] struct {
	problem    ddo.Problem[State]
	relaxation ddo.Relaxation[State]
	ranking    ddo.StateRanking[State]
	widthHeu   ddo.WidthHeuristic[State]
	cutsetType ddo.CutsetType

	// persistentBarrier is non-nil only for the BarrierShared flavor: one
	// barrier kept alive for the whole solve. The Classic flavor leaves this
	// nil and instead gives every process_one_node call its own throwaway
	// barrier, so cross-worker dominance pruning never triggers for it.
	persistentBarrier *barrier.Barrier[State]

	mu   sync.Mutex
	cond *sync.Cond
	crit *critical[State]
}

func newShared[State comparable](
	problem ddo.Problem[State],
	relaxation ddo.Relaxation[State],
	ranking ddo.StateRanking[State],
	widthHeu ddo.WidthHeuristic[State],
	cutsetType ddo.CutsetType,
	flavor ddo.SolverFlavor,
	nbThreads int,
) *shared[State] {
	s := &shared[State]{
		problem:    problem,
		relaxation: relaxation,
		ranking:    ranking,
		widthHeu:   widthHeu,
		cutsetType: cutsetType,
	}
	s.cond = sync.NewCond(&s.mu)

	fringe := frontier.NewNoDupHeap[State](ranking)
	s.crit = newCritical[State](fringe, problem.NbVariables(), nbThreads)

	if flavor == ddo.BarrierShared {
		s.persistentBarrier = barrier.New[State](problem.NbVariables())
	}
	return s
}

func (s *shared[State]) rootNode() ddo.SubProblem[State] {
	return ddo.SubProblem[State]{
		State: s.problem.InitialState(),
		Value: s.problem.InitialValue(),
		Path:  nil,
		UB:    ddo.PlusInf,
	}
}

// initialize seeds the frontier with the root sub-problem, lock held for the
// duration of the push (mirrors barrier.rs's initialize).
func (s *shared[State]) initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	root := s.rootNode()
	s.crit.fringe.Push(root)
	s.crit.openByLayer[0]++
}

// compilerBarrier returns the barrier this worker's compiler should consult
// for one process_one_node call: the shared one for the BarrierShared
// flavor, or a fresh empty one (discarded after the call) for Classic.
func (s *shared[State]) compilerBarrier() *barrier.Barrier[State] {
	if s.persistentBarrier != nil {
		return s.persistentBarrier
	}
	return barrier.New[State](s.problem.NbVariables())
}

// getWorkload consults (and mutates) the critical section to fetch the next
// sub-problem to process, or reports why none is available right now.
// Grounded on barrier.rs's get_workload.
func (s *shared[State]) getWorkload(threadID int, interrupt func() bool) workLoad[State] {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.crit

	// Reclaim barrier storage for layers with nothing open or in flight.
	if s.persistentBarrier != nil {
		nbVars := s.problem.NbVariables()
		for c.lowestActiveLayer < nbVars &&
			c.openByLayer[c.lowestActiveLayer]+c.ongoingByLayer[c.lowestActiveLayer] == 0 {
			s.persistentBarrier.ClearLayer(c.lowestActiveLayer)
			c.lowestActiveLayer++
		}
	}

	if c.ongoing == 0 && c.fringe.IsEmpty() {
		c.bestUB = c.bestLB
		return workLoad[State]{kind: workComplete}
	}

	if c.interrupted {
		return workLoad[State]{kind: workInterrupted}
	}
	if interrupt() {
		c.interrupted = true

		if c.ongoing > 0 {
			best := ddo.MinusInf
			any := false
			for _, ub := range c.upperBounds {
				if ub != ddo.PlusInf {
					any = true
					if ub > best {
						best = ub
					}
				}
			}
			if any {
				c.bestUB = best
			} else {
				c.bestUB = ddo.PlusInf
			}
		} else if node, ok := c.fringe.Pop(); ok {
			c.bestUB = node.UB
		} else {
			c.bestUB = ddo.PlusInf
		}

		c.fringe.Clear()
		// Wake every worker parked on starvation: none of them will ever see
		// a fresh node now that the fringe is cleared, so they must re-check
		// c.interrupted instead of waiting for a notifyNodeFinished that may
		// never come.
		s.cond.Broadcast()
		return workLoad[State]{kind: workInterrupted}
	}

	if c.fringe.IsEmpty() {
		s.cond.Wait()
		return workLoad[State]{kind: workStarvation}
	}

	nn, _ := c.fringe.Pop()
	for {
		if nn.UB <= c.bestLB {
			c.fringe.Clear()
			for i := range c.openByLayer {
				c.openByLayer[i] = 0
			}
			return workLoad[State]{kind: workStarvation}
		}

		depth := nn.Depth()

		explore := true
		if s.persistentBarrier != nil {
			info, found := s.persistentBarrier.Get(depth, nn.State)
			if found {
				if nn.Value > info.Theta || (nn.Value == info.Theta && !info.Explored) {
					explore = true
				} else {
					c.openByLayer[depth]--
					explore = false
				}
			}
		}

		if explore {
			if s.persistentBarrier != nil {
				s.persistentBarrier.TryUpdate(depth, nn.State, nn.Value, true)
			}
			break
		}

		next, ok := c.fringe.Pop()
		if !ok {
			return workLoad[State]{kind: workStarvation}
		}
		nn = next
	}

	c.ongoing++
	c.explored++
	c.upperBounds[threadID] = nn.UB

	depth := nn.Depth()
	c.openByLayer[depth]--
	c.ongoingByLayer[depth]++

	return workLoad[State]{kind: workItem, node: nn}
}

// processOneNode restricts then (if necessary) relaxes a diagram rooted at
// node, feeding any improved best-known value and any cutset back to the
// shared state. Grounded on barrier.rs's process_one_node.
func (s *shared[State]) processOneNode(mdd *compiler.Compiler[State], node ddo.SubProblem[State]) int {
	mdd.SetBarrier(s.compilerBarrier())
	exploredDD := 0

	nodeUB := node.UB
	bestLB := s.bestLBSnapshot()

	if nodeUB <= bestLB {
		return exploredDD
	}

	width := s.widthHeu.MaxWidth(node.State)
	input := ddo.CompilationInput[State]{
		CompType:   ddo.Restricted,
		MaxWidth:   width,
		Problem:    s.problem,
		Relaxation: s.relaxation,
		Ranking:    s.ranking,
		Residual:   node,
		BestLB:     bestLB,
	}

	mdd.Compile(input)
	exploredDD += mdd.Explored()
	s.maybeUpdateBest(mdd)
	if mdd.IsExact() {
		return exploredDD
	}

	bestLB = s.bestLBSnapshot()
	input.CompType = ddo.Relaxed
	input.BestLB = bestLB
	mdd.Compile(input)
	exploredDD += mdd.Explored()

	if mdd.IsExact() {
		s.maybeUpdateBest(mdd)
	} else {
		s.enqueueCutset(mdd, nodeUB)
	}

	return exploredDD
}

func (s *shared[State]) bestLBSnapshot() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.crit.bestLB
}

func (s *shared[State]) maybeUpdateBest(mdd *compiler.Compiler[State]) {
	value, ok := mdd.BestValue()
	if !ok {
		value = ddo.MinusInf
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if value > s.crit.bestLB {
		s.crit.bestLB = value
		sol, _ := mdd.BestSolution()
		s.crit.bestSol = sol
	}
}

func (s *shared[State]) enqueueCutset(mdd *compiler.Compiler[State], ub int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bestLB := s.crit.bestLB
	mdd.DrainCutset(func(cutsetNode ddo.SubProblem[State]) {
		if ub < cutsetNode.UB {
			cutsetNode.UB = ub
		}
		if cutsetNode.UB > bestLB {
			depth := cutsetNode.Depth()
			s.crit.fringe.Push(cutsetNode)
			s.crit.openByLayer[depth]++
		}
	})
}

func (s *shared[State]) notifyNodeFinished(threadID, depth, exploredDD int) {
	s.mu.Lock()
	s.crit.ongoing--
	s.crit.upperBounds[threadID] = ddo.PlusInf
	s.crit.ongoingByLayer[depth]--
	s.crit.exploredDD += exploredDD
	s.mu.Unlock()

	s.cond.Broadcast()
}
