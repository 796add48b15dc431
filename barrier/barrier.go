package barrier

import (
	"sync"

	"github.com/katalvlaran/ddopt/ddo"
)

// Info is the dominance record kept for one state at one layer: the best
// threshold proved reachable from it, and whether that threshold came from
// a fully explored (not merely pruned) sub-problem.
type Info struct {
	Theta    int
	Explored bool
}

// layer is one depth's independently-locked dominance table.
type layer[State comparable] struct {
	mu    sync.RWMutex
	table map[State]Info
}

// Barrier is a per-layer dominance-threshold store shared across solver
// workers. A worker consults Get before expanding a sub-problem and skips it
// when its value cannot beat the recorded threshold; compiling a relaxed DD
// reports tighter thresholds back in via TryUpdate.
type Barrier[State comparable] struct {
	layers []*layer[State]
}

// New allocates a barrier with one independent table per layer, depths
// 0..numLayers inclusive.
func New[State comparable](numLayers int) *Barrier[State] {
	b := &Barrier[State]{layers: make([]*layer[State], numLayers+1)}
	for i := range b.layers {
		b.layers[i] = &layer[State]{table: make(map[State]Info)}
	}
	return b
}

// Get returns the recorded dominance info for state at depth, or
// found=false if nothing has been recorded there yet.
func (b *Barrier[State]) Get(depth int, state State) (Info, bool) {
	l := b.layers[depth]
	l.mu.RLock()
	defer l.mu.RUnlock()
	info, found := l.table[state]
	return info, found
}

// IsEmpty reports whether depth's table has no recorded states at all —
// used as a cheap prefilter before querying individual states, mirroring
// with_barrier.rs's `!self.barriers[depth].read().is_empty()` guard.
func (b *Barrier[State]) IsEmpty(depth int) bool {
	l := b.layers[depth]
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.table) == 0
}

// TryUpdate records (theta, explored) for state at depth if it improves on
// whatever is already recorded there: a strictly larger theta always wins,
// and an equal theta wins only when it newly marks the state explored.
// Grounded on with_barrier.rs's try_update_barrier.
func (b *Barrier[State]) TryUpdate(depth int, state State, theta int, explored bool) {
	l := b.layers[depth]

	l.mu.Lock()
	defer l.mu.Unlock()

	info, found := l.table[state]
	if !found || theta > info.Theta || (theta == info.Theta && !info.Explored && explored) {
		l.table[state] = Info{Theta: theta, Explored: explored}
	}
}

// Clear empties every layer's table, returning the barrier to its freshly
// allocated state without reallocating the layer slice itself.
func (b *Barrier[State]) Clear() {
	for depth := range b.layers {
		b.ClearLayer(depth)
	}
}

// ClearLayer empties a single depth's table, used by the solver driver to
// reclaim storage for layers with no open or in-flight sub-problems left
// (with_barrier.rs's `self.barriers[depth].write().clear()`).
func (b *Barrier[State]) ClearLayer(depth int) {
	l := b.layers[depth]
	l.mu.Lock()
	for k := range l.table {
		delete(l.table, k)
	}
	l.mu.Unlock()
}

// NumLayers returns the number of depths this barrier was allocated for.
func (b *Barrier[State]) NumLayers() int { return len(b.layers) }

// ThetaOrMinusInf returns the recorded theta for state at depth, or
// ddo.MinusInf when nothing has been recorded — a convenience for the
// compiler's barrier-prefilter step.
func ThetaOrMinusInf[State comparable](b *Barrier[State], depth int, state State) int {
	info, found := b.Get(depth, state)
	if !found {
		return ddo.MinusInf
	}
	return info.Theta
}
