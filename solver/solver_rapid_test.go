package solver_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/katalvlaran/ddopt/ddo"
	"github.com/katalvlaran/ddopt/solver"
)

// TestClassicAndBarrierAgreeWithBruteForce is the classic-vs-barrier parity
// property: for any small knapsack instance, both solver flavors must land
// on the same optimum, and that optimum must match brute force.
func TestClassicAndBarrierAgreeWithBruteForce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 7).Draw(t, "n")
		weights := rapid.SliceOfN(rapid.IntRange(1, 10), n, n).Draw(t, "weights")
		values := rapid.SliceOfN(rapid.IntRange(1, 10), n, n).Draw(t, "values")
		capacity := rapid.IntRange(0, 25).Draw(t, "capacity")

		want := bruteForceKnapsack(weights, values, capacity)

		k := &knapsack{weights: weights, values: values, cap: capacity}
		classic := solver.New[knapState](k, knapRelax{k: k}, knapRanking{}, knapWidth{w: 3}, ddo.LastExactLayer, ddo.Classic, 2)
		classic.Maximize()
		got, ok := classic.BestValue()
		if !ok {
			t.Fatal("classic solver reported no solution on a feasible instance")
		}
		if got != want {
			t.Fatalf("classic solver found %d, brute force found %d", got, want)
		}

		k2 := &knapsack{weights: weights, values: values, cap: capacity}
		shared := solver.New[knapState](k2, knapRelax{k: k2}, knapRanking{}, knapWidth{w: 3}, ddo.LastExactLayer, ddo.BarrierShared, 2)
		shared.Maximize()
		got2, ok := shared.BestValue()
		if !ok {
			t.Fatal("barrier-shared solver reported no solution on a feasible instance")
		}
		if got2 != want {
			t.Fatalf("barrier-shared solver found %d, brute force found %d", got2, want)
		}
	})
}
