package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ddopt/ddo"
	"github.com/katalvlaran/ddopt/solver"
)

// knapState mirrors the compiler package's toy 0/1-knapsack model, kept
// here as its own small copy since each package tests against its own
// public surface.
type knapState struct {
	remaining int
	depth     int
}

type knapsack struct {
	weights []int
	values  []int
	cap     int
}

func (k *knapsack) NbVariables() int        { return len(k.weights) }
func (k *knapsack) InitialState() knapState { return knapState{remaining: k.cap, depth: 0} }
func (k *knapsack) InitialValue() int       { return 0 }

func (k *knapsack) NextVariable(nextLayerStates func(yield func(knapState) bool)) (ddo.Variable, bool) {
	var depth int
	found := false
	nextLayerStates(func(s knapState) bool {
		depth = s.depth
		found = true
		return false
	})
	if !found || depth >= len(k.weights) {
		return 0, false
	}
	return ddo.Variable(depth), true
}

func (k *knapsack) ForEachInDomain(v ddo.Variable, state knapState, emit func(ddo.Decision)) {
	emit(ddo.Decision{Var: v, Value: 0})
	if k.weights[v] <= state.remaining {
		emit(ddo.Decision{Var: v, Value: 1})
	}
}

func (k *knapsack) Transition(state knapState, d ddo.Decision) knapState {
	next := knapState{remaining: state.remaining, depth: state.depth + 1}
	if d.Value == 1 {
		next.remaining -= k.weights[d.Var]
	}
	return next
}

func (k *knapsack) TransitionCost(state knapState, d ddo.Decision) int {
	if d.Value == 1 {
		return k.values[d.Var]
	}
	return 0
}

func (k *knapsack) Estimate(state knapState) int {
	total := 0
	for i := state.depth; i < len(k.weights); i++ {
		total += k.values[i]
	}
	return total
}

type knapRelax struct{ k *knapsack }

func (r knapRelax) Merge(states []knapState) knapState {
	best := states[0]
	for _, s := range states[1:] {
		if s.remaining > best.remaining {
			best = s
		}
	}
	return best
}

func (r knapRelax) Relax(source, dest, merged knapState, d ddo.Decision, cost int) int { return cost }

type knapRanking struct{}

func (knapRanking) Compare(a, b knapState) int { return a.remaining - b.remaining }

type knapWidth struct{ w int }

func (w knapWidth) MaxWidth(knapState) int { return w.w }

func bruteForceKnapsack(weights, values []int, capacity int) int {
	n := len(weights)
	best := 0
	for mask := 0; mask < (1 << n); mask++ {
		w, v := 0, 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				w += weights[i]
				v += values[i]
			}
		}
		if w <= capacity && v > best {
			best = v
		}
	}
	return best
}

func solveKnapsack(t *testing.T, flavor ddo.SolverFlavor, nbThreads int) {
	t.Helper()

	weights := []int{2, 3, 4, 5, 9, 1, 6, 7}
	values := []int{3, 4, 5, 6, 9, 2, 7, 8}
	capacity := 12

	k := &knapsack{weights: weights, values: values, cap: capacity}
	s := solver.New[knapState](k, knapRelax{k: k}, knapRanking{}, knapWidth{w: 3}, ddo.LastExactLayer, flavor, nbThreads)

	s.Maximize()

	value, ok := s.BestValue()
	require.True(t, ok)
	require.Equal(t, bruteForceKnapsack(weights, values, capacity), value)

	sol, ok := s.BestSolution()
	require.True(t, ok)

	gotValue := 0
	for _, d := range sol {
		if d.Value == 1 {
			gotValue += values[d.Var]
		}
	}
	require.Equal(t, value, gotValue, "the reconstructed path must reproduce the reported objective")
}

func TestClassicFlavorFindsOptimum(t *testing.T) {
	solveKnapsack(t, ddo.Classic, 4)
}

func TestBarrierFlavorFindsOptimum(t *testing.T) {
	solveKnapsack(t, ddo.BarrierShared, 4)
}

func TestSingleThreadedMatchesMultiThreaded(t *testing.T) {
	solveKnapsack(t, ddo.BarrierShared, 1)
}

func TestMaximizeWithInterruptNeverBlocks(t *testing.T) {
	weights := []int{2, 3, 4, 5, 9, 1, 6, 7, 3, 2}
	values := []int{3, 4, 5, 6, 9, 2, 7, 8, 4, 3}
	capacity := 14

	k := &knapsack{weights: weights, values: values, cap: capacity}
	s := solver.New[knapState](k, knapRelax{k: k}, knapRanking{}, knapWidth{w: 2}, ddo.Frontier, ddo.BarrierShared, 4)

	status := s.MaximizeWithInterrupt(func() bool { return true })
	require.Equal(t, ddo.Interrupted, status)
}
