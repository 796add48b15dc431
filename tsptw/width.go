package tsptw

import "github.com/katalvlaran/ddopt/ddo"

// NbUnassignedWidth scales the allowed layer width by the number of nodes a
// state still has left to (possibly) visit, mirroring the reference
// engine's generic NbUnassigned heuristic rather than a tsptw-specific
// formula: a state deep into the tour with few nodes left gets a tighter
// width than one near the root.
type NbUnassignedWidth struct {
	Factor int
}

func (w NbUnassignedWidth) MaxWidth(s State) int {
	unassigned := s.MustVisit.Len() + s.MaybeVisit.Len()
	if unassigned < 1 {
		unassigned = 1
	}
	return w.Factor * unassigned
}

var _ ddo.WidthHeuristic[State] = NbUnassignedWidth{}
