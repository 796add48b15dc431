package compiler_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ddopt/barrier"
	"github.com/katalvlaran/ddopt/compiler"
	"github.com/katalvlaran/ddopt/ddo"
)

// knapState is a 0/1-knapsack DP state: how much capacity remains, and how
// many of the n items have already been decided. depth is carried
// explicitly (rather than inferred) so NextVariable can be derived purely
// from a sampled state, with no mutable counter a concurrent compile could
// race on.
type knapState struct {
	remaining int
	depth     int
}

type knapsack struct {
	weights []int
	values  []int
	cap     int
}

func (k *knapsack) NbVariables() int { return len(k.weights) }
func (k *knapsack) InitialState() knapState { return knapState{remaining: k.cap, depth: 0} }
func (k *knapsack) InitialValue() int       { return 0 }

func (k *knapsack) NextVariable(nextLayerStates func(yield func(knapState) bool)) (ddo.Variable, bool) {
	var depth int
	found := false
	nextLayerStates(func(s knapState) bool {
		depth = s.depth
		found = true
		return false // one sample is enough
	})
	if !found || depth >= len(k.weights) {
		return 0, false
	}
	return ddo.Variable(depth), true
}

// ForEachInDomain emits "skip" (0) always, and "take" (1) only when it fits.
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

// Estimate sums the values of every item not yet decided: a valid (if
// loose) admissible upper bound, ignoring the capacity constraint entirely.
func (k *knapsack) Estimate(state knapState) int {
	total := 0
	for i := state.depth; i < len(k.weights); i++ {
		total += k.values[i]
	}
	return total
}

type knapRelax struct{ k *knapsack }

// Merge keeps the largest remaining capacity among the merged states: a
// valid relaxation since it only ever over-estimates what still fits.
func (r knapRelax) Merge(states []knapState) knapState {
	best := states[0]
	for _, s := range states[1:] {
		if s.remaining > best.remaining {
			best = s
		}
	}
	return best
}

func (r knapRelax) Relax(source, dest, merged knapState, d ddo.Decision, cost int) int {
	return cost
}

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

func TestExactCompilationFindsOptimalKnapsack(t *testing.T) {
	weights := []int{2, 3, 4, 5}
	values := []int{3, 4, 5, 6}
	capacity := 5

	k := &knapsack{weights: weights, values: values, cap: capacity}
	b := barrier.New[knapState](k.NbVariables())
	c := compiler.New[knapState](ddo.LastExactLayer)
	c.SetBarrier(b)

	input := ddo.CompilationInput[knapState]{
		CompType:   ddo.Exact,
		MaxWidth:   1 << 20,
		Problem:    k,
		Relaxation: knapRelax{k: k},
		Ranking:    knapRanking{},
		Residual:   ddo.SubProblem[knapState]{State: k.InitialState(), Value: k.InitialValue(), UB: ddo.PlusInf},
		BestLB:     ddo.MinusInf,
	}
	c.Compile(input)

	require.True(t, c.IsExact())
	value, ok := c.BestValue()
	require.True(t, ok)
	require.Equal(t, bruteForceKnapsack(weights, values, capacity), value)
}

func TestRestrictedCompilationGivesValidLowerBound(t *testing.T) {
	weights := []int{2, 3, 4, 5, 1, 6}
	values := []int{3, 4, 5, 6, 2, 7}
	capacity := 8

	k := &knapsack{weights: weights, values: values, cap: capacity}
	b := barrier.New[knapState](k.NbVariables())
	c := compiler.New[knapState](ddo.LastExactLayer)
	c.SetBarrier(b)

	input := ddo.CompilationInput[knapState]{
		CompType:   ddo.Restricted,
		MaxWidth:   2,
		Problem:    k,
		Relaxation: knapRelax{k: k},
		Ranking:    knapRanking{},
		Residual:   ddo.SubProblem[knapState]{State: k.InitialState(), Value: k.InitialValue(), UB: ddo.PlusInf},
		BestLB:     ddo.MinusInf,
	}
	c.Compile(input)

	value, ok := c.BestValue()
	require.True(t, ok)
	require.LessOrEqual(t, value, bruteForceKnapsack(weights, values, capacity))
}

func TestRelaxedCompilationGivesValidUpperBound(t *testing.T) {
	weights := []int{2, 3, 4, 5, 1, 6}
	values := []int{3, 4, 5, 6, 2, 7}
	capacity := 8

	k := &knapsack{weights: weights, values: values, cap: capacity}
	b := barrier.New[knapState](k.NbVariables())
	c := compiler.New[knapState](ddo.LastExactLayer)
	c.SetBarrier(b)

	input := ddo.CompilationInput[knapState]{
		CompType:   ddo.Relaxed,
		MaxWidth:   2,
		Problem:    k,
		Relaxation: knapRelax{k: k},
		Ranking:    knapRanking{},
		Residual:   ddo.SubProblem[knapState]{State: k.InitialState(), Value: k.InitialValue(), UB: ddo.PlusInf},
		BestLB:     ddo.MinusInf,
	}
	c.Compile(input)

	value, ok := c.BestValue()
	require.True(t, ok)
	require.GreaterOrEqual(t, value, bruteForceKnapsack(weights, values, capacity))
	require.False(t, c.IsExact())
}

func TestDrainCutsetYieldsNonEmptyFrontierWhenRelaxed(t *testing.T) {
	weights := []int{2, 3, 4, 5, 1, 6, 7, 2}
	values := []int{3, 4, 5, 6, 2, 7, 8, 3}
	capacity := 10

	k := &knapsack{weights: weights, values: values, cap: capacity}
	b := barrier.New[knapState](k.NbVariables())
	c := compiler.New[knapState](ddo.LastExactLayer)
	c.SetBarrier(b)

	input := ddo.CompilationInput[knapState]{
		CompType:   ddo.Relaxed,
		MaxWidth:   2,
		Problem:    k,
		Relaxation: knapRelax{k: k},
		Ranking:    knapRanking{},
		Residual:   ddo.SubProblem[knapState]{State: k.InitialState(), Value: k.InitialValue(), UB: ddo.PlusInf},
		BestLB:     ddo.MinusInf,
	}
	c.Compile(input)
	require.False(t, c.IsExact())

	var cutset []ddo.SubProblem[knapState]
	c.DrainCutset(func(sp ddo.SubProblem[knapState]) {
		cutset = append(cutset, sp)
	})
	require.NotEmpty(t, cutset)

	// Every cutset sub-problem's UB must itself be a valid upper bound.
	sort.Slice(cutset, func(i, j int) bool { return cutset[i].UB > cutset[j].UB })
	for _, sp := range cutset {
		require.GreaterOrEqual(t, sp.UB, sp.Value)
	}
}
