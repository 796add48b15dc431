package frontier_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/katalvlaran/ddopt/ddo"
	"github.com/katalvlaran/ddopt/frontier"
)

// TestNoDupHeapPopOrderIsAlwaysNonIncreasing checks the dedup/ordering
// invariant NoDupHeap promises against arbitrary push sequences: at most one
// entry survives per state, and Pop always yields non-increasing UBs.
func TestNoDupHeapPopOrderIsAlwaysNonIncreasing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := frontier.NewNoDupHeap[int](intRanking{})

		pushes := rapid.SliceOfN(rapid.IntRange(0, 9), 0, 40).Draw(t, "states")
		distinct := map[int]struct{}{}
		for _, state := range pushes {
			ub := rapid.IntRange(-1000, 1000).Draw(t, "ub")
			value := rapid.IntRange(-1000, 1000).Draw(t, "value")
			h.Push(ddo.SubProblem[int]{State: state, Value: value, UB: ub})
			distinct[state] = struct{}{}
		}

		if h.Len() != len(distinct) {
			t.Fatalf("heap holds %d entries, want %d distinct states", h.Len(), len(distinct))
		}

		prev := ddo.PlusInf
		seen := map[int]struct{}{}
		for !h.IsEmpty() {
			node, ok := h.Pop()
			if !ok {
				t.Fatal("Pop reported empty while IsEmpty said otherwise")
			}
			if node.UB > prev {
				t.Fatalf("pop order violated: got UB %d after %d", node.UB, prev)
			}
			if _, dup := seen[node.State]; dup {
				t.Fatalf("state %d popped twice", node.State)
			}
			seen[node.State] = struct{}{}
			prev = node.UB
		}

		if len(seen) != len(distinct) {
			t.Fatalf("popped %d distinct states, pushed %d", len(seen), len(distinct))
		}
	})
}
