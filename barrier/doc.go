// Package barrier implements the engine's cross-worker dominance filter: a
// per-layer store of (threshold, explored) pairs that lets any worker prune
// a sub-problem it did not itself derive, so long as some other worker
// already proved a better-or-equal bound reachable from the same state.
//
// Grounded on original_source/src/mdd/with_barrier.rs's
// `barriers: Arc<Vec<RwLock<FxHashMap<Arc<T>, BarrierInfo>>>>` field and its
// try_update_barrier/read-path methods, translated to a plain slice of
// RWMutex-guarded maps — the same per-vertex-lock idiom the teacher uses for
// its Graph in core/types.go.
package barrier
