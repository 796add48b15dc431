package tsptw

import (
	"math"

	"github.com/katalvlaran/ddopt/ddo"
	"github.com/katalvlaran/ddopt/support"
)

// Relax is the Relaxation collaborator for Tsptw: merging a layer means
// widening its states into one that dominates every input, following
// relax.rs's RelaxHelper.
type Relax struct {
	pb *Tsptw
}

// NewRelax builds the relaxation collaborator for pb.
func NewRelax(pb *Tsptw) Relax { return Relax{pb: pb} }

// relaxHelper accumulates a merged state one input at a time, mirroring
// RelaxHelper's track_* / get_* pairs.
type relaxHelper struct {
	depth    int
	position support.BitSet64
	earliest int
	latest   int
	allMust  support.BitSet64
	allAgree support.BitSet64
	allMaybe support.BitSet64
}

func newRelaxHelper(n int) *relaxHelper {
	return &relaxHelper{
		earliest: math.MaxInt,
		latest:   math.MinInt,
		allAgree: support.FullMask(n),
	}
}

func (h *relaxHelper) trackDepth(d int) {
	if d > h.depth {
		h.depth = d
	}
}

func (h *relaxHelper) trackPosition(p Position) {
	if p.IsVirtual() {
		h.position = h.position.Union(p.Virtual)
	} else {
		h.position = h.position.Set(p.Node)
	}
}

func (h *relaxHelper) trackElapsed(e ElapsedTime) {
	if e.Earliest < h.earliest {
		h.earliest = e.Earliest
	}
	if e.Latest > h.latest {
		h.latest = e.Latest
	}
}

func (h *relaxHelper) trackMustVisit(bs support.BitSet64) {
	h.allAgree = h.allAgree.Intersect(bs)
	h.allMust = h.allMust.Union(bs)
}

func (h *relaxHelper) trackMaybe(bs support.BitSet64) {
	h.allMaybe = h.allMaybe.Union(bs)
}

func (h *relaxHelper) positionValue() Position { return VirtualPosition(h.position) }

func (h *relaxHelper) elapsed() ElapsedTime {
	if h.earliest == h.latest {
		return FixedElapsed(h.earliest)
	}
	return FuzzyElapsed(h.earliest, h.latest)
}

func (h *relaxHelper) mustVisit() support.BitSet64 { return h.allAgree }

func (h *relaxHelper) maybeVisit() support.BitSet64 {
	maybe := h.allMaybe.Union(h.allMust)
	return maybe.Xor(h.allAgree)
}

// Merge widens a layer's states into one that dominates every one of them:
// the broadest reachable depth, the union of candidate positions, the
// widest elapsed-time envelope, and must/maybe-visit sets loose enough to
// cover every input's obligations.
func (r Relax) Merge(states []State) State {
	h := newRelaxHelper(r.pb.NbVariables())
	for _, s := range states {
		h.trackDepth(s.Depth)
		h.trackPosition(s.Position)
		h.trackElapsed(s.Elapsed)
		h.trackMustVisit(s.MustVisit)
		h.trackMaybe(s.MaybeVisit)
	}
	return State{
		Depth:      h.depth,
		Position:   h.positionValue(),
		Elapsed:    h.elapsed(),
		MustVisit:  h.mustVisit(),
		MaybeVisit: h.maybeVisit(),
	}
}

// Relax passes the edge cost through unchanged: the time-window feasibility
// check baked into TransitionCost/Estimate already accounts for the slack a
// merge introduces.
func (r Relax) Relax(source, dest, merged State, d ddo.Decision, cost int) int {
	return cost
}

var _ ddo.Relaxation[State] = Relax{}
