package compiler

import (
	"sort"

	"github.com/katalvlaran/ddopt/barrier"
	"github.com/katalvlaran/ddopt/ddo"
	"github.com/katalvlaran/ddopt/support"
)

// Compiler builds one decision diagram per call to Compile, reusing its
// internal arenas across calls (Compile always starts with clear()).
//
// Grounded line-for-line on original_source/src/mdd/with_barrier.rs's
// Barrier<T> struct and its _compile/branch_on/restrict/relax/
// compute_local_bounds_and_theta methods.
type Compiler[State comparable] struct {
	rootPath []ddo.Decision

	barrier *barrier.Barrier[State]

	nodes []node[State]
	edges []edge

	prevL []int
	nextL map[State]int

	cutset   []int
	lelDepth int // noIndex ("None") until a last-exact-layer is recorded

	bestN int // noIndex until a best terminal node is known

	exact       bool
	approximate bool

	cutsetType ddo.CutsetType

	explored int
}

// New creates a compiler. Call SetBarrier before each Compile to say which
// barrier it should consult for pruning/filling this run: a fresh,
// single-use *barrier.Barrier for the "classic" flavor, or the same
// long-lived one shared across the whole solve for the "barrier" flavor —
// the compiler's algorithm is identical either way.
func New[State comparable](cutsetType ddo.CutsetType) *Compiler[State] {
	return &Compiler[State]{
		nextL:      make(map[State]int),
		lelDepth:   noIndex,
		bestN:      noIndex,
		exact:      true,
		cutsetType: cutsetType,
	}
}

// SetBarrier installs the barrier this compiler's next Compile call will
// prune against and fill.
func (c *Compiler[State]) SetBarrier(b *barrier.Barrier[State]) {
	c.barrier = b
}

func (c *Compiler[State]) clear() {
	c.rootPath = c.rootPath[:0]
	c.nodes = c.nodes[:0]
	c.edges = c.edges[:0]
	for k := range c.nextL {
		delete(c.nextL, k)
	}
	c.prevL = c.prevL[:0]
	c.cutset = c.cutset[:0]
	c.lelDepth = noIndex
	c.bestN = noIndex
	c.exact = true
	c.approximate = false
	c.explored = 0
}

// Explored returns the number of nodes expanded during the most recent
// Compile call.
func (c *Compiler[State]) Explored() int { return c.explored }

// IsExact reports whether the diagram built by the most recent Compile call
// is exact: either no width restriction ever triggered, or (for a relaxed
// compilation) the best path found never passed through a merged node.
func (c *Compiler[State]) IsExact() bool { return c.exact }

// BestValue returns the value of the diagram's best terminal node.
func (c *Compiler[State]) BestValue() (int, bool) {
	if c.bestN == noIndex {
		return 0, false
	}
	return c.nodes[c.bestN].value, true
}

// BestSolution returns the decision path to the diagram's best terminal
// node, root path included.
func (c *Compiler[State]) BestSolution() ([]ddo.Decision, bool) {
	if c.bestN == noIndex {
		return nil, false
	}
	return c.bestPath(c.bestN), true
}

// DrainCutset emits every node flagged as part of the exact cutset, with an
// upper bound tightened by the compiler's own best-known value, and clears
// the cutset afterwards. A no-op when the diagram has no best terminal (the
// whole layer died).
func (c *Compiler[State]) DrainCutset(yield func(ddo.SubProblem[State])) {
	bestValue, ok := c.BestValue()
	if !ok {
		c.cutset = c.cutset[:0]
		return
	}

	for _, id := range c.cutset {
		n := &c.nodes[id]
		if !n.flags.IsMarked() {
			continue
		}

		rub := ddo.SatAdd(n.value, n.rub)
		locb := ddo.SatAdd(n.value, n.valueBot)
		ub := ddo.SatMin(ddo.SatMin(rub, locb), bestValue)

		yield(ddo.SubProblem[State]{
			State: n.state,
			Value: n.value,
			Path:  c.bestPath(id),
			UB:    ub,
		})
	}
	c.cutset = c.cutset[:0]
}

// Compile builds one diagram rooted at input.Residual, per input.CompType.
func (c *Compiler[State]) Compile(input ddo.CompilationInput[State]) {
	c.clear()

	c.rootPath = append(c.rootPath, input.Residual.Path...)
	rootDepth := len(c.rootPath)

	rootState := input.Residual.State
	rootValue := input.Residual.Value

	c.nodes = append(c.nodes, node[State]{
		state:    rootState,
		value:    rootValue,
		best:     noIndex,
		inbound:  noIndex,
		depth:    rootDepth,
		valueBot: ddo.MinusInf,
		theta:    ddo.PlusInf,
		rub:      input.Residual.UB - rootValue,
		flags:    support.NewExactFlags(),
	})
	c.nextL[rootState] = 0

	var currL []int
	depth := rootDepth

	for {
		v, ok := input.Problem.NextVariable(c.nextLStates)
		if !ok {
			break
		}

		c.prevL = c.prevL[:0]
		c.prevL = append(c.prevL, currL...)
		currL = currL[:0]
		for _, id := range c.nextL {
			currL = append(currL, id)
		}
		for k := range c.nextL {
			delete(c.nextL, k)
		}

		if len(currL) == 0 {
			break
		}

		if depth > rootDepth && !c.barrier.IsEmpty(depth) {
			currL = c.pruneByBarrier(depth, currL)
		}

		switch input.CompType {
		case ddo.Exact:
			// no width enforcement: explore the complete diagram
		case ddo.Restricted:
			if len(currL) > input.MaxWidth {
				currL = c.restrict(input, currL)
			}
		case ddo.Relaxed:
			if len(currL) > input.MaxWidth && depth > rootDepth+1 {
				currL = c.relax(input, currL)
			}
		}

		for _, id := range currL {
			state := c.nodes[id].state
			rub := input.Problem.Estimate(state)
			c.nodes[id].rub = rub
			ub := ddo.SatAdd(rub, c.nodes[id].value)

			if ub > input.BestLB {
				input.Problem.ForEachInDomain(v, state, func(d ddo.Decision) {
					c.branchOn(id, d, input.Problem)
				})
				c.explored++

				if input.CompType == ddo.Relaxed && c.nodes[id].flags.IsExact() {
					c.tryUpdateBarrier(depth, state, c.nodes[id].value, false)
				}
			} else {
				c.nodes[id].theta = ddo.SatSub(input.BestLB, rub)

				if input.CompType == ddo.Relaxed && c.nodes[id].flags.IsExact() {
					c.tryUpdateBarrier(depth, state, c.nodes[id].theta, false)
				}
			}
		}

		depth++
	}

	c.bestN = noIndex
	bestValue := ddo.MinusInf
	for _, id := range c.nextL {
		if c.nodes[id].value > bestValue {
			bestValue = c.nodes[id].value
			c.bestN = id
		}
	}

	c.exact = c.isExactCompile(input.CompType)

	if input.CompType == ddo.Relaxed {
		c.computeLocalBoundsAndTheta(input.BestLB)
	}
}

// nextLStates is the iterator Problem.NextVariable uses to see the states
// present in the layer currently being built.
func (c *Compiler[State]) nextLStates(yield func(State) bool) {
	for s := range c.nextL {
		if !yield(s) {
			return
		}
	}
}

func (c *Compiler[State]) pruneByBarrier(depth int, currL []int) []int {
	kept := currL[:0]
	for _, id := range currL {
		if c.nodes[id].flags.IsRelaxed() {
			kept = append(kept, id)
			continue
		}

		state := c.nodes[id].state
		info, found := c.barrier.Get(depth, state)
		theta := ddo.MinusInf
		if found {
			theta = info.Theta
		}

		if c.nodes[id].value > theta {
			kept = append(kept, id)
		} else {
			c.nodes[id].theta = theta
			c.nodes[id].flags.SetPrunedByBarrier(true)
		}
	}
	return kept
}

func (c *Compiler[State]) isExactCompile(compType ddo.CompilationType) bool {
	return !c.approximate || (compType == ddo.Relaxed && c.hasExactBestPath(c.bestN))
}

func (c *Compiler[State]) hasExactBestPath(id int) bool {
	if id == noIndex {
		return true
	}
	n := &c.nodes[id]
	if n.flags.IsExact() {
		return true
	}
	if n.flags.IsRelaxed() {
		return false
	}
	if n.best == noIndex {
		return c.hasExactBestPath(noIndex)
	}
	return c.hasExactBestPath(c.edges[n.best].from)
}

func (c *Compiler[State]) bestPath(id int) []ddo.Decision {
	sol := make([]ddo.Decision, len(c.rootPath))
	copy(sol, c.rootPath)

	edgeID := c.nodes[id].best
	for edgeID != noIndex {
		e := c.edges[edgeID]
		sol = append(sol, e.decision)
		edgeID = c.nodes[e.from].best
	}

	// The walk above collected decisions bottom-up; put them in root-to-node order.
	chain := sol[len(c.rootPath):]
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return sol
}

func (c *Compiler[State]) branchOn(fromID int, d ddo.Decision, problem ddo.Problem[State]) {
	fromState := c.nodes[fromID].state
	nextState := problem.Transition(fromState, d)
	cost := problem.TransitionCost(fromState, d)

	if existingID, found := c.nextL[nextState]; found {
		flags := c.nodes[fromID].flags
		value := ddo.SatAdd(c.nodes[fromID].value, cost)

		edgeID := len(c.edges)
		c.edges = append(c.edges, edge{
			from:     fromID,
			decision: d,
			cost:     cost,
			next:     c.nodes[existingID].inbound,
		})
		c.nodes[existingID].inbound = edgeID

		if value > c.nodes[existingID].value || (value == c.nodes[existingID].value && flags.IsExact()) {
			c.nodes[existingID].value = value
			c.nodes[existingID].best = edgeID
			c.nodes[existingID].flags = flags
		}
		return
	}

	nodeID := len(c.nodes)
	edgeID := len(c.edges)

	c.edges = append(c.edges, edge{from: fromID, decision: d, cost: cost, next: noIndex})
	c.nodes = append(c.nodes, node[State]{
		state:    nextState,
		value:    ddo.SatAdd(c.nodes[fromID].value, cost),
		best:     edgeID,
		inbound:  edgeID,
		depth:    c.nodes[fromID].depth + 1,
		valueBot: ddo.MinusInf,
		theta:    ddo.PlusInf,
		rub:      ddo.PlusInf,
		flags:    c.nodes[fromID].flags,
	})
	c.nextL[nextState] = nodeID
}

// restrict drops the least valuable nodes of currL until it fits
// input.MaxWidth, marking the compilation approximate. Only ever called for
// CompilationType.Restricted.
func (c *Compiler[State]) restrict(input ddo.CompilationInput[State], currL []int) []int {
	c.approximate = true
	c.sortByValueThenRanking(input.Ranking, currL)
	return currL[:input.MaxWidth]
}

// relax merges the least valuable nodes of currL into a single node so the
// layer fits input.MaxWidth, returning the (possibly shorter) replacement
// slice. Only ever called for CompilationType.Relaxed.
func (c *Compiler[State]) relax(input ddo.CompilationInput[State], currL []int) []int {
	if c.cutsetType == ddo.LastExactLayer && !c.approximate {
		for _, id := range c.prevL {
			c.cutset = append(c.cutset, id)
			c.nodes[id].flags.SetCutset(true)
			c.lelDepth = c.nodes[id].depth
		}
	}

	c.approximate = true
	c.sortByValueThenRanking(input.Ranking, currL)

	keepCount := input.MaxWidth - 1
	keep := currL[:keepCount]
	merge := currL[keepCount:]

	mergeStates := make([]State, len(merge))
	for i, id := range merge {
		mergeStates[i] = c.nodes[id].state
	}
	merged := input.Relaxation.Merge(mergeStates)

	recycled := noIndex
	for _, id := range keep {
		if c.nodes[id].state == merged {
			recycled = id
			break
		}
	}

	mergedID := recycled
	if mergedID == noIndex {
		mergedID = len(c.nodes)
		c.nodes = append(c.nodes, node[State]{
			state:    merged,
			value:    ddo.MinusInf,
			best:     noIndex,
			inbound:  noIndex,
			depth:    c.nodes[merge[0]].depth,
			valueBot: ddo.MinusInf,
			theta:    ddo.PlusInf,
			rub:      ddo.PlusInf,
			flags:    support.NewRelaxedFlags(),
		})
	}
	c.nodes[mergedID].flags.SetRelaxed(true)

	for _, dropID := range merge {
		c.nodes[dropID].flags.SetDeleted(true)

		edgeID := c.nodes[dropID].inbound
		for edgeID != noIndex {
			e := c.edges[edgeID]
			src := c.nodes[e.from].state

			rcost := input.Relaxation.Relax(src, c.nodes[dropID].state, merged, e.decision, e.cost)

			newEdgeID := len(c.edges)
			c.edges = append(c.edges, edge{
				from:     e.from,
				decision: e.decision,
				cost:     rcost,
				next:     c.nodes[mergedID].inbound,
			})
			c.nodes[mergedID].inbound = newEdgeID

			newValue := ddo.SatAdd(c.nodes[e.from].value, rcost)
			if newValue >= c.nodes[mergedID].value {
				c.nodes[mergedID].best = newEdgeID
				c.nodes[mergedID].value = newValue
			}

			edgeID = e.next
		}
	}

	if recycled != noIndex {
		currL = currL[:input.MaxWidth]
		c.nodes[currL[input.MaxWidth-1]].flags.SetDeleted(false)
		return currL
	}

	currL = currL[:keepCount]
	currL = append(currL, mergedID)
	return currL
}

func (c *Compiler[State]) sortByValueThenRanking(ranking ddo.StateRanking[State], ids []int) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if c.nodes[a].value != c.nodes[b].value {
			return c.nodes[a].value > c.nodes[b].value // reversed: greater value kept first
		}
		return ranking.Compare(c.nodes[a].state, c.nodes[b].state) > 0
	})
}

// computeLocalBoundsAndTheta back-propagates local lower bounds
// (value_bot) and dominance thresholds (theta) from the terminal layer to
// the root, filling the barrier and the cutset as it goes. Only ever called
// for a relaxed compilation.
func (c *Compiler[State]) computeLocalBoundsAndTheta(bestLB int) {
	for _, id := range c.nextL {
		c.nodes[id].valueBot = 0
		c.nodes[id].flags.SetMarked(true)

		if c.cutsetType == ddo.LastExactLayer && !c.approximate {
			c.nodes[id].flags.SetCutset(true)
		} else if c.cutsetType == ddo.Frontier && c.nodes[id].flags.IsExact() {
			c.nodes[id].flags.SetCutset(true)
		}
	}

	for id := len(c.nodes) - 1; id >= 0; id-- {
		n := &c.nodes[id]

		if n.flags.IsDeleted() {
			continue
		}

		if n.flags.IsCutset() {
			locb := ddo.SatAdd(n.value, n.valueBot)
			if locb < bestLB {
				pruningTheta := ddo.SatSub(bestLB, n.valueBot)
				n.theta = ddo.SatMin(n.theta, pruningTheta)
			} else {
				n.theta = ddo.SatMin(n.theta, n.value)
			}
		}

		if n.flags.IsExact() && !n.flags.IsPrunedByBarrier() {
			c.tryUpdateBarrier(n.depth, n.state, n.theta, !n.flags.IsCutset())
		}

		edgeID := n.inbound
		for edgeID != noIndex {
			e := c.edges[edgeID]

			if n.flags.IsMarked() {
				lpFromBotUsingEdge := ddo.SatAdd(n.valueBot, e.cost)
				from := &c.nodes[e.from]
				if lpFromBotUsingEdge > from.valueBot {
					from.valueBot = lpFromBotUsingEdge
				}
				from.flags.SetMarked(true)
			}

			thetaUsingEdge := ddo.SatSub(n.theta, e.cost)
			if thetaUsingEdge < c.nodes[e.from].theta {
				c.nodes[e.from].theta = thetaUsingEdge
			}

			if c.cutsetType == ddo.Frontier && n.flags.IsMarked() {
				from := &c.nodes[e.from]
				if !n.flags.IsExact() && from.flags.IsExact() && !from.flags.IsCutset() {
					from.flags.SetCutset(true)
					c.cutset = append(c.cutset, e.from)
				}
			}

			edgeID = e.next
		}
	}
}

// tryUpdateBarrier pushes (theta, explored) into the shared barrier for
// state at depth, unless depth sits below the recorded last-exact-layer
// (storing a threshold there would block transitions feeding the cutset).
func (c *Compiler[State]) tryUpdateBarrier(depth int, state State, theta int, explored bool) {
	if c.cutsetType == ddo.LastExactLayer && c.lelDepth != noIndex && depth > c.lelDepth {
		return
	}
	c.barrier.TryUpdate(depth, state, theta, explored)
}
