// Package ddo defines the contracts every problem family must satisfy to be
// solved by the engine, plus the small value types (Variable, Decision,
// SubProblem) that flow between the frontier, the DD compiler, the barrier
// and the parallel driver.
//
// ddo never inspects a problem's State: it is carried around as an opaque
// value behind the StateRanking/hashing the caller supplies. The engine
// itself lives in the sibling packages frontier/, barrier/, compiler/ and
// solver/; ddo only hosts what all four of them need to agree on.
//
//	go get github.com/katalvlaran/ddopt/ddo
package ddo
