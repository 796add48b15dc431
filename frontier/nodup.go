package frontier

import "github.com/katalvlaran/ddopt/ddo"

// maxUB orders sub-problems by upper bound first, breaking ties with the
// caller's StateRanking — grounded on original_source/src/frontier/mod.rs's
// MaxUB comparator ("l.ub.cmp(&r.ub).then_with(|| self.0.compare(...))").
func maxUB[State comparable](ranking ddo.StateRanking[State], l, r ddo.SubProblem[State]) int {
	if l.UB != r.UB {
		if l.UB > r.UB {
			return 1
		}
		return -1
	}
	return ranking.Compare(l.State, r.State)
}

// action tells process after a push/pop which heap invariant repair, if any,
// is needed.
type action int

const (
	doNothing action = iota
	bubbleUp
	bubbleDown
)

// NoDupHeap is an updatable binary heap, backed by plain slices, that keeps
// at most one entry per state: pushing a state already present updates the
// existing entry in place (keeping the longer path and the larger bound)
// rather than inserting a duplicate.
//
// Grounded line-for-line on original_source/src/frontier/no_dup.rs: NodeId
// becomes a plain slot index into nodes, the Rust Entry API becomes a
// present/absent branch on a plain Go map, and Arc<State> cloning becomes
// ordinary value assignment since State is comparable and expected to be
// small.
type NoDupHeap[State comparable] struct {
	ranking ddo.StateRanking[State]

	states map[State]int // state -> slot index into nodes
	nodes  []ddo.SubProblem[State]
	pos    []int // slot index -> position in heap
	heap   []int // heap position -> slot index

	recycleBin []int
}

// NewNoDupHeap creates an empty heap ordered by ranking.
func NewNoDupHeap[State comparable](ranking ddo.StateRanking[State]) *NoDupHeap[State] {
	return &NoDupHeap[State]{
		ranking: ranking,
		states:  make(map[State]int),
	}
}

// Len returns the number of sub-problems still poppable from the heap.
func (h *NoDupHeap[State]) Len() int { return len(h.heap) }

// IsEmpty reports whether the heap holds no sub-problems.
func (h *NoDupHeap[State]) IsEmpty() bool { return len(h.heap) == 0 }

// Push inserts node, or merges it into the existing entry for node.State.
// When a state is already present, the surviving entry keeps the larger of
// the two values/upper-bounds and the heap position is repaired accordingly.
func (h *NoDupHeap[State]) Push(node ddo.SubProblem[State]) {
	var act action
	var id int

	if existing, found := h.states[node.State]; found {
		id = existing
		oldLP := h.nodes[id].Value
		oldUB := h.nodes[id].UB
		newLP := node.Value
		newUB := node.UB
		if newUB > oldUB {
			node.UB = newUB
		} else {
			node.UB = oldUB
		}

		if maxUB(h.ranking, node, h.nodes[id]) > 0 {
			act = bubbleUp
		} else {
			act = doNothing
		}

		if newLP > oldLP {
			h.nodes[id] = node
		}
		if newUB > oldUB {
			h.nodes[id].UB = newUB
		}
	} else {
		if len(h.recycleBin) == 0 {
			id = len(h.nodes)
			h.nodes = append(h.nodes, node)
			h.pos = append(h.pos, 0) // dummy, fixed up below
		} else {
			id = h.recycleBin[len(h.recycleBin)-1]
			h.recycleBin = h.recycleBin[:len(h.recycleBin)-1]
			h.nodes[id] = node
		}

		h.heap = append(h.heap, id)
		h.pos[id] = len(h.heap) - 1
		h.states[node.State] = id
		act = bubbleUp
	}

	h.processAction(act, id)
}

// Pop removes and returns the sub-problem with the greatest (UB, ranking)
// key, or ok=false when the heap is empty.
func (h *NoDupHeap[State]) Pop() (ddo.SubProblem[State], bool) {
	if h.IsEmpty() {
		var zero ddo.SubProblem[State]
		return zero, false
	}

	id := h.heap[0]
	last := len(h.heap) - 1
	h.heap[0] = h.heap[last]
	h.heap = h.heap[:last]

	if len(h.heap) > 0 {
		h.pos[h.heap[0]] = 0
		h.processAction(bubbleDown, h.heap[0])
	}

	h.recycleBin = append(h.recycleBin, id)

	node := h.nodes[id]
	delete(h.states, node.State)

	return node, true
}

// Clear empties the heap, equivalent to a freshly constructed instance.
func (h *NoDupHeap[State]) Clear() {
	for k := range h.states {
		delete(h.states, k)
	}
	h.nodes = h.nodes[:0]
	h.pos = h.pos[:0]
	h.heap = h.heap[:0]
	h.recycleBin = h.recycleBin[:0]
}

func (h *NoDupHeap[State]) processAction(act action, id int) {
	switch act {
	case bubbleUp:
		h.bubbleUp(id)
	case bubbleDown:
		h.bubbleDown(id)
	case doNothing:
	}
}

func (h *NoDupHeap[State]) position(id int) int { return h.pos[id] }

func (h *NoDupHeap[State]) compareAt(x, y int) int {
	nx := h.nodes[h.heap[x]]
	ny := h.nodes[h.heap[y]]
	return maxUB(h.ranking, nx, ny)
}

func (h *NoDupHeap[State]) bubbleUp(id int) {
	me := h.position(id)
	parent := h.parent(me)

	for !h.isRoot(me) && h.compareAt(me, parent) > 0 {
		pID := h.heap[parent]

		h.pos[pID] = me
		h.pos[id] = parent
		h.heap[me] = pID
		h.heap[parent] = id

		me = parent
		parent = h.parent(me)
	}
}

func (h *NoDupHeap[State]) bubbleDown(id int) {
	me := h.position(id)
	kid := h.maxChildOf(me)

	for kid > 0 && h.compareAt(me, kid) < 0 {
		kID := h.heap[kid]

		h.pos[kID] = me
		h.pos[id] = kid
		h.heap[me] = kID
		h.heap[kid] = id

		me = kid
		kid = h.maxChildOf(me)
	}
}

func (h *NoDupHeap[State]) parent(pos int) int {
	switch {
	case h.isRoot(pos):
		return pos
	case h.isLeft(pos):
		return pos / 2
	default:
		return pos/2 - 1
	}
}

// maxChildOf returns the position of pos's larger child, or 0 (the root
// position — used here purely as a "no child" marker, since the root is
// never anybody's child) when pos is a leaf.
func (h *NoDupHeap[State]) maxChildOf(pos int) int {
	size := h.Len()
	left := h.leftChild(pos)
	right := h.rightChild(pos)

	if left >= size {
		return 0
	}
	if right >= size {
		return left
	}
	if h.compareAt(left, right) > 0 {
		return left
	}
	return right
}

func (h *NoDupHeap[State]) leftChild(pos int) int  { return pos*2 + 1 }
func (h *NoDupHeap[State]) rightChild(pos int) int { return pos*2 + 2 }
func (h *NoDupHeap[State]) isRoot(pos int) bool    { return pos == 0 }
func (h *NoDupHeap[State]) isLeft(pos int) bool    { return pos%2 == 1 }
