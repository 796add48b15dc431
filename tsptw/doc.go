// Package tsptw is the reference Problem/Relaxation/StateRanking/
// WidthHeuristic family this repository ships so the CLI and integration
// tests have a concrete instance family to drive: traveling salesman with
// time windows, cast as a dynamic program over partial tours.
//
// Grounded on original_source/examples/tsptw/{model,relax,heuristics}.rs.
// state.go and instance.go have no single source file to port (the pack
// never retrieved the original state.rs/instance.rs), so their shape is
// inferred from how model.rs and relax.rs use State, ElapsedTime, Position
// and TsptwInstance.
package tsptw
