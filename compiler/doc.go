// Package compiler builds exact, restricted and relaxed decision diagrams
// from a ddo.Problem/ddo.Relaxation pair, and implements the local-bound and
// threshold back-propagation that feeds the barrier and the solver's
// dominance pruning.
//
// Grounded line-for-line on original_source/src/mdd/with_barrier.rs: the
// same append-only node/edge arenas with Option-style sentinel indices, the
// same restrict/relax/compute_local_bounds_and_theta algorithms, translated
// from Rust's Option<NodeId>/Option<EdgeId> to a plain -1 "no such index"
// sentinel (idiomatic in Go arenas, and simpler than introducing a parallel
// nullable-index type).
package compiler
