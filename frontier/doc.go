// Package frontier implements the engine's priority queue of open
// sub-problems: an updatable binary heap, ordered by upper bound (ties
// broken by the caller's StateRanking), that keeps at most one entry per
// state (spec.md §2 "the no-dup heap", §4.2).
//
// Grounded line-for-line on original_source/src/frontier/no_dup.rs: the
// same append-only nodes slice, position slice, heap-of-ids slice and
// recycle bin, translated from Rust's NodeId(usize) wrapper to a plain int
// slot index (Go generics give us State comparable for the states map
// without needing a custom Hash/Eq trait).
package frontier
