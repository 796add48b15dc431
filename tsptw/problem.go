package tsptw

import (
	"math"
	"sort"

	"github.com/katalvlaran/ddopt/ddo"
	"github.com/katalvlaran/ddopt/support"
)

// Tsptw implements ddo.Problem[State] for traveling salesman with time
// windows: minimize total travel plus waiting time over a tour that visits
// every node exactly once and returns to the depot, honoring each node's
// arrival window. The solver maximizes, so every cost this type reports is
// negated, following transition_cost in the file this package is grounded
// on.
type Tsptw struct {
	Instance     *Instance
	Initial      State
	cheapestEdge []int
}

// NewTsptw builds a Tsptw model for inst, precomputing each node's cheapest
// incoming edge (used by Estimate) and the root state (at the depot, every
// other node still mandatory).
func NewTsptw(inst *Instance) *Tsptw {
	initial := State{
		Position:  NodePosition(0),
		Elapsed:   FixedElapsed(0),
		MustVisit: support.FullMask(inst.NbNodes).Clear(0),
		Depth:     0,
	}
	return &Tsptw{
		Instance:     inst,
		Initial:      initial,
		cheapestEdge: computeCheapestEdges(inst),
	}
}

func computeCheapestEdges(inst *Instance) []int {
	n := inst.NbNodes
	cheapest := make([]int, n)
	for i := 0; i < n; i++ {
		minI := math.MaxInt
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if d := inst.Distances.At(j, i); d < minI {
				minI = d
			}
		}
		cheapest[i] = minI
	}
	return cheapest
}

func (t *Tsptw) NbVariables() int { return t.Instance.NbNodes }

func (t *Tsptw) InitialState() State { return t.Initial }

func (t *Tsptw) InitialValue() int { return 0 }

func (t *Tsptw) NextVariable(nextLayerStates func(yield func(State) bool)) (ddo.Variable, bool) {
	var depth int
	found := false
	nextLayerStates(func(s State) bool {
		depth = s.Depth
		found = true
		return false
	})
	if !found || depth == t.NbVariables() {
		return 0, false
	}
	return ddo.Variable(depth), true
}

// ForEachInDomain emits the depot return on the final variable, else every
// still-mandatory node followed by every still-reachable optional node.
// A must-visit node that can no longer be reached in time makes the whole
// state a dead end: the domain collapses to empty, exactly as
// for_each_in_domain returns early without emitting anything.
func (t *Tsptw) ForEachInDomain(v ddo.Variable, state State, emit func(ddo.Decision)) {
	if state.Depth == t.NbVariables()-1 {
		if t.canMoveTo(state, 0) {
			emit(ddo.Decision{Var: v, Value: 0})
		}
		return
	}

	must := support.NewBitIter(state.MustVisit)
	for {
		i, ok := must.Next()
		if !ok {
			break
		}
		if !t.canMoveTo(state, i) {
			return
		}
	}

	must = support.NewBitIter(state.MustVisit)
	for {
		i, ok := must.Next()
		if !ok {
			break
		}
		emit(ddo.Decision{Var: v, Value: i})
	}

	maybe := support.NewBitIter(state.MaybeVisit)
	for {
		i, ok := maybe.Next()
		if !ok {
			break
		}
		if t.canMoveTo(state, i) {
			emit(ddo.Decision{Var: v, Value: i})
		}
	}
}

func (t *Tsptw) Transition(state State, d ddo.Decision) State {
	j := d.Value
	return State{
		Position:   NodePosition(j),
		Elapsed:    t.arrivalTime(state, j),
		MustVisit:  state.MustVisit.Clear(j),
		MaybeVisit: state.MaybeVisit.Clear(j),
		Depth:      state.Depth + 1,
	}
}

func (t *Tsptw) TransitionCost(state State, d ddo.Decision) int {
	j := d.Value
	twj := t.Instance.TimeWindows[j]
	travel := t.minDistanceTo(state, j)

	waiting := 0
	if state.Elapsed.Earliest+travel < twj.Earliest {
		waiting = twj.Earliest - (state.Elapsed.Earliest + travel)
	}

	return -(travel + waiting)
}

// Estimate bounds the remaining cost by summing each mandatory node's
// cheapest incoming edge, the cheapest return to the depot, and (when slack
// remains) the cheapest optional edges that fill out a complete tour,
// collapsing to math.MinInt the moment any node's earliest feasible
// arrival already exceeds its deadline.
func (t *Tsptw) Estimate(state State) int {
	completeTour := t.NbVariables() - state.Depth
	mandatory := 0
	backToDepot := math.MaxInt

	must := support.NewBitIter(state.MustVisit)
	for {
		i, ok := must.Next()
		if !ok {
			break
		}
		completeTour--
		mandatory += t.cheapestEdge[i]
		if d := t.Instance.Distances.At(i, 0); d < backToDepot {
			backToDepot = d
		}

		latest := t.Instance.TimeWindows[i].Latest
		earliest := state.Elapsed.AddDuration(t.cheapestEdge[i]).Earliest
		if earliest > latest {
			return ddo.MinusInf
		}
	}

	if !state.MaybeVisit.Empty() {
		violations := 0
		var candidateEdges []int

		maybe := support.NewBitIter(state.MaybeVisit)
		for {
			i, ok := maybe.Next()
			if !ok {
				break
			}
			candidateEdges = append(candidateEdges, t.cheapestEdge[i])
			if d := t.Instance.Distances.At(i, 0); d < backToDepot {
				backToDepot = d
			}

			latest := t.Instance.TimeWindows[i].Latest
			earliest := state.Elapsed.AddDuration(t.cheapestEdge[i]).Earliest
			if earliest > latest {
				violations++
			}
		}

		if len(candidateEdges)-violations < completeTour {
			return ddo.MinusInf
		}

		sort.Ints(candidateEdges)
		for idx := 0; idx < completeTour; idx++ {
			mandatory += candidateEdges[idx]
		}
	}

	// With no mandatory node left, the return leg starts from wherever we
	// actually (or, under relaxation, possibly) are right now.
	if mandatory == 0 {
		var here int
		if state.Position.IsVirtual() {
			here = math.MaxInt
			support.Each(state.Position.Virtual, func(x int) {
				if d := t.Instance.Distances.At(x, 0); d < here {
					here = d
				}
			})
		} else {
			here = t.Instance.Distances.At(state.Position.Node, 0)
		}
		if here < backToDepot {
			backToDepot = here
		}
	}

	totalDistance := mandatory + backToDepot
	earliestArrival := state.Elapsed.AddDuration(totalDistance).Earliest
	latestDeadline := t.Instance.TimeWindows[0].Latest
	if earliestArrival > latestDeadline {
		return ddo.MinusInf
	}
	return -totalDistance
}

func (t *Tsptw) canMoveTo(state State, j int) bool {
	twj := t.Instance.TimeWindows[j]
	minArrival := state.Elapsed.AddDuration(t.minDistanceTo(state, j))
	return minArrival.Earliest <= twj.Latest
}

func (t *Tsptw) arrivalTime(state State, j int) ElapsedTime {
	minArrival := state.Elapsed.AddDuration(t.minDistanceTo(state, j)).Earliest
	maxArrival := state.Elapsed.AddDuration(t.maxDistanceTo(state, j)).Latest

	var at ElapsedTime
	if minArrival == maxArrival {
		at = FixedElapsed(minArrival)
	} else {
		at = FuzzyElapsed(minArrival, maxArrival)
	}

	twj := t.Instance.TimeWindows[j]
	if at.IsFixed() {
		duration := at.Earliest
		if twj.Earliest > duration {
			duration = twj.Earliest
		}
		return FixedElapsed(duration)
	}

	earliest := at.Earliest
	if twj.Earliest > earliest {
		earliest = twj.Earliest
	}
	latest := at.Latest
	if twj.Latest < latest {
		latest = twj.Latest
	}
	if earliest == latest {
		return FixedElapsed(earliest)
	}
	return FuzzyElapsed(earliest, latest)
}

func (t *Tsptw) minDistanceTo(state State, j int) int {
	if !state.Position.IsVirtual() {
		return t.Instance.Distances.At(state.Position.Node, j)
	}
	best := math.MaxInt
	support.Each(state.Position.Virtual, func(i int) {
		if d := t.Instance.Distances.At(i, j); d < best {
			best = d
		}
	})
	return best
}

func (t *Tsptw) maxDistanceTo(state State, j int) int {
	if !state.Position.IsVirtual() {
		return t.Instance.Distances.At(state.Position.Node, j)
	}
	worst := math.MinInt
	support.Each(state.Position.Virtual, func(i int) {
		if d := t.Instance.Distances.At(i, j); d > worst {
			worst = d
		}
	})
	return worst
}

var _ ddo.Problem[State] = (*Tsptw)(nil)
