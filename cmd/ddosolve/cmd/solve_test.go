package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGapIsZeroWhenBoundsMatch(t *testing.T) {
	require.Equal(t, 0.0, gap(42, 42))
}

func TestGapShrinksAsBoundsConverge(t *testing.T) {
	wide := gap(0, 100)
	narrow := gap(40, 50)
	require.Greater(t, wide, narrow)
}

func TestGapHandlesZeroBounds(t *testing.T) {
	require.Equal(t, 0.0, gap(0, 0))
}
