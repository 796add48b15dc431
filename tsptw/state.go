package tsptw

import "github.com/katalvlaran/ddopt/support"

// noNode marks a Position as "virtual": the outcome of merging several
// concrete positions during a relaxed compilation, carried as a candidate
// set rather than a single node.
const noNode = -1

// Position is the current location in a partial tour: either a single
// concrete node, or — after a merge — a set of candidate nodes any of
// which the true (un-relaxed) state might actually be at.
type Position struct {
	Node    int
	Virtual support.BitSet64
}

// NodePosition builds a concrete, single-node position.
func NodePosition(node int) Position { return Position{Node: node} }

// VirtualPosition builds a merged position over a set of candidate nodes.
func VirtualPosition(candidates support.BitSet64) Position {
	return Position{Node: noNode, Virtual: candidates}
}

// IsVirtual reports whether p stands for a set of candidates rather than a
// single node.
func (p Position) IsVirtual() bool { return p.Node == noNode }

// ElapsedTime tracks how much travel/waiting time has elapsed since the
// tour started. A fixed amount has Earliest == Latest; a fuzzy amount (the
// result of relaxing several fixed amounts together) carries a genuine
// range, mirroring ElapsedTime::{FixedAmount, FuzzyAmount} in the source
// this package is grounded on.
type ElapsedTime struct {
	Earliest int
	Latest   int
}

// FixedElapsed builds an exact elapsed-time value.
func FixedElapsed(duration int) ElapsedTime {
	return ElapsedTime{Earliest: duration, Latest: duration}
}

// FuzzyElapsed builds a ranged elapsed-time value, collapsing to a fixed
// one if the range happens to be degenerate.
func FuzzyElapsed(earliest, latest int) ElapsedTime {
	return ElapsedTime{Earliest: earliest, Latest: latest}
}

// IsFixed reports whether e carries an exact (non-ranged) value.
func (e ElapsedTime) IsFixed() bool { return e.Earliest == e.Latest }

// AddDuration returns e shifted forward by d time units on both ends.
func (e ElapsedTime) AddDuration(d int) ElapsedTime {
	return ElapsedTime{Earliest: e.Earliest + d, Latest: e.Latest + d}
}

// State is one node of the TSP-with-time-windows dynamic program: where the
// (possibly merged) partial tour currently stands, how much time has
// elapsed, which nodes still must be visited, which might still be visited
// (only ever non-empty after a relaxation), and how deep into the tour this
// state sits. All fields are comparable, so State itself satisfies the
// engine's `comparable` constraint on Problem states.
type State struct {
	Position   Position
	Elapsed    ElapsedTime
	MustVisit  support.BitSet64
	MaybeVisit support.BitSet64
	Depth      int
}
