package compiler

import (
	"github.com/katalvlaran/ddopt/ddo"
	"github.com/katalvlaran/ddopt/support"
)

// noIndex is the sentinel for "no such node/edge", standing in for Rust's
// Option<NodeId>/Option<EdgeId> in this arena-of-slices representation.
const noIndex = -1

// node is one vertex of the diagram being compiled. depth, valueBot, theta
// and rub are scratch fields used only during relaxed compilation's
// local-bound back-propagation.
type node[State comparable] struct {
	state State
	value int
	best  int // edge index, or noIndex
	inbound int // edge index, or noIndex

	depth int

	valueBot int
	theta    int

	rub int

	flags support.NodeFlags
}

// edge is one arc of the diagram, stored in an intrusive singly-linked list
// per destination node (node.inbound -> edge.next -> ... -> noIndex) so a
// node's incoming edges can be walked without a separate adjacency slice.
type edge struct {
	from     int // node index
	decision ddo.Decision
	cost     int
	next     int // edge index, or noIndex
}
