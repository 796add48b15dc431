// Sentinel errors shared by the engine's packages. Following the teacher's
// convention (tsp/types.go), each sentinel is documented in place and is
// never wrapped with fmt.Errorf where the sentinel alone is informative
// enough for callers to switch on with errors.Is.
package ddo

import "errors"

var (
	// ErrUnknownCutsetType is returned by ParseCutsetType for any spelling
	// other than "lel" or "frontier".
	ErrUnknownCutsetType = errors.New("ddo: unknown cutset type (want \"lel\" or \"frontier\")")

	// ErrUnknownSolverFlavor is returned by ParseSolverFlavor for any
	// spelling other than "parallel" or "barrier".
	ErrUnknownSolverFlavor = errors.New("ddo: unknown solver flavor (want \"parallel\" or \"barrier\")")

	// ErrEmptyDomain is a sentinel callers may use to signal a root with no
	// feasible decision at all (spec.md §8 boundary behavior: "Empty domain
	// at the root"). The core itself never returns this error — Solver's
	// BestValue simply reports ok=false — and no package in this module
	// returns it either.
	ErrEmptyDomain = errors.New("ddo: root has an empty domain")
)
