package tsptw

import (
	"github.com/katalvlaran/ddopt/ddo"
	"github.com/katalvlaran/ddopt/support"
)

// Ranking orders states by slack: the sum, over every still-mandatory node,
// of how much room remains before its deadline. Tighter states (less
// slack) are more constrained and so more valuable to keep once a layer
// gets truncated, which Compare expresses by reporting them as "greater".
type Ranking struct {
	inst *Instance
}

// NewRanking builds the slack-based ranking for inst.
func NewRanking(inst *Instance) Ranking { return Ranking{inst: inst} }

func (r Ranking) Compare(a, b State) int {
	return r.slack(b) - r.slack(a)
}

func (r Ranking) slack(s State) int {
	total := 0
	it := support.NewBitIter(s.MustVisit)
	for {
		i, ok := it.Next()
		if !ok {
			break
		}
		total += r.inst.TimeWindows[i].Latest - s.Elapsed.Earliest
	}
	return total
}

var _ ddo.StateRanking[State] = Ranking{}
