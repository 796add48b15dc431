package tsptw_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ddopt/support"
	"github.com/katalvlaran/ddopt/tsptw"
)

func TestMergeWidensElapsedAndIntersectsMustVisit(t *testing.T) {
	inst := tinyInstance(t)
	model := tsptw.NewTsptw(inst)
	relax := tsptw.NewRelax(model)

	a := tsptw.State{
		Position:  tsptw.NodePosition(1),
		Elapsed:   tsptw.FixedElapsed(4),
		MustVisit: support.FullMask(5).Clear(0).Clear(1).Clear(2),
		Depth:     2,
	}
	b := tsptw.State{
		Position:  tsptw.NodePosition(2),
		Elapsed:   tsptw.FixedElapsed(9),
		MustVisit: support.FullMask(5).Clear(0).Clear(1).Clear(3),
		Depth:     2,
	}

	merged := relax.Merge([]tsptw.State{a, b})

	require.Equal(t, 2, merged.Depth)
	require.True(t, merged.Position.IsVirtual())
	require.True(t, merged.Position.Virtual.Has(1))
	require.True(t, merged.Position.Virtual.Has(2))

	require.Equal(t, 4, merged.Elapsed.Earliest)
	require.Equal(t, 9, merged.Elapsed.Latest)

	// Only node 4 is mandatory in both inputs, so must-visit should agree on
	// just that bit; nodes 2 and 3 (mandatory in only one input) move to
	// maybe-visit instead of being silently dropped or over-promised.
	require.True(t, merged.MustVisit.Has(4))
	require.False(t, merged.MustVisit.Has(2))
	require.False(t, merged.MustVisit.Has(3))
	require.True(t, merged.MaybeVisit.Has(2))
	require.True(t, merged.MaybeVisit.Has(3))
}
