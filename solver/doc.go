// Package solver implements the parallel branch-and-bound driver: a shared
// no-dup frontier guarded by a single mutex, a condition variable that parks
// idle workers during node-starvation, and a worker-pool loop that repeatedly
// restricts then relaxes a decision diagram rooted at each popped
// sub-problem, feeding the cutset of any inexact relaxed compilation back
// onto the frontier.
//
// Grounded line-for-line on original_source/src/solver/barrier.rs: Critical
// (the mutex-guarded counters/bounds/frontier), Shared (the read-only
// problem references plus the monitor), get_workload/process_one_node/
// notify_node_finished. The worker pool itself is spawned with
// golang.org/x/sync/errgroup rather than std::thread::scope, since errgroup
// is this codebase's idiom for a fixed-size fan-out that must be joined
// before returning (see SPEC_FULL.md §4.7).
//
// Two flavors are exposed (ddo.Classic and ddo.BarrierShared, resolved in
// SPEC_FULL.md §5): Classic gives every process_one_node call a fresh,
// unshared barrier.Barrier so cross-worker dominance pruning never triggers;
// BarrierShared keeps one barrier.Barrier alive for the whole solve. Both
// flavors drive the identical compiler.Compiler code path.
package solver
