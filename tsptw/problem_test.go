package tsptw_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ddopt/ddo"
	"github.com/katalvlaran/ddopt/solver"
	"github.com/katalvlaran/ddopt/support"
	"github.com/katalvlaran/ddopt/tsptw"
)

// tinyInstance builds a 5-node instance (depot + 4 cities) with wide enough
// time windows that every permutation is feasible, so brute force over
// permutations is a safe oracle.
func tinyInstance(t *testing.T) *tsptw.Instance {
	t.Helper()

	dist := [][]int{
		{0, 4, 8, 9, 2},
		{4, 0, 3, 7, 6},
		{8, 3, 0, 5, 9},
		{9, 7, 5, 0, 4},
		{2, 6, 9, 4, 0},
	}
	m := support.NewMatrix(5, 5)
	for i, row := range dist {
		for j, v := range row {
			m.Set(i, j, v)
		}
	}

	return &tsptw.Instance{
		NbNodes:   5,
		Distances: m,
		TimeWindows: []tsptw.TimeWindow{
			{Earliest: 0, Latest: 1000},
			{Earliest: 0, Latest: 1000},
			{Earliest: 0, Latest: 1000},
			{Earliest: 0, Latest: 1000},
			{Earliest: 0, Latest: 1000},
		},
	}
}

func permute(nodes []int, f func([]int)) {
	if len(nodes) <= 1 {
		f(nodes)
		return
	}
	for i := range nodes {
		rest := make([]int, 0, len(nodes)-1)
		rest = append(rest, nodes[:i]...)
		rest = append(rest, nodes[i+1:]...)
		permute(rest, func(p []int) {
			full := append([]int{nodes[i]}, p...)
			f(full)
		})
	}
}

// bruteForceTour returns the minimum total travel+waiting cost over every
// Hamiltonian tour starting and ending at node 0.
func bruteForceTour(inst *tsptw.Instance) int {
	others := make([]int, 0, inst.NbNodes-1)
	for i := 1; i < inst.NbNodes; i++ {
		others = append(others, i)
	}

	best := -1
	permute(others, func(order []int) {
		cur := 0
		elapsed := 0
		for _, next := range order {
			travel := inst.Distances.At(cur, next)
			arrival := elapsed + travel
			if arrival < inst.TimeWindows[next].Earliest {
				arrival = inst.TimeWindows[next].Earliest
			}
			if arrival > inst.TimeWindows[next].Latest {
				return // infeasible permutation, skip
			}
			elapsed = arrival
			cur = next
		}
		elapsed += inst.Distances.At(cur, 0)
		if best == -1 || elapsed < best {
			best = elapsed
		}
	})
	return best
}

func TestSolverMatchesBruteForceOnTinyInstance(t *testing.T) {
	inst := tinyInstance(t)
	model := tsptw.NewTsptw(inst)
	relax := tsptw.NewRelax(model)
	ranking := tsptw.NewRanking(inst)
	width := tsptw.NbUnassignedWidth{Factor: 3}

	s := solver.New[tsptw.State](model, relax, ranking, width, ddo.LastExactLayer, ddo.BarrierShared, 2)
	s.Maximize()

	value, ok := s.BestValue()
	require.True(t, ok)

	want := bruteForceTour(inst)
	require.Equal(t, -want, value, "solver's negated cost must match the brute-force optimal tour cost")
}

func TestEstimateIsAdmissibleAtTheRoot(t *testing.T) {
	inst := tinyInstance(t)
	model := tsptw.NewTsptw(inst)

	optimalCost := bruteForceTour(inst)
	estimate := model.Estimate(model.InitialState())

	require.GreaterOrEqual(t, estimate, -optimalCost, "estimate must never under-claim the true minimal remaining cost")
}

func TestForEachInDomainExcludesAlreadyVisitedNodes(t *testing.T) {
	inst := tinyInstance(t)
	model := tsptw.NewTsptw(inst)

	state := model.InitialState()
	var firstMoves []int
	model.ForEachInDomain(0, state, func(d ddo.Decision) {
		firstMoves = append(firstMoves, d.Value)
	})
	require.Len(t, firstMoves, inst.NbNodes-1, "every city but the depot should be a legal first move")

	next := model.Transition(state, ddo.Decision{Var: 0, Value: firstMoves[0]})
	var secondMoves []int
	model.ForEachInDomain(1, next, func(d ddo.Decision) {
		secondMoves = append(secondMoves, d.Value)
	})
	for _, m := range secondMoves {
		require.NotEqual(t, firstMoves[0], m, "a visited node must never reappear in the domain")
	}
}
