package ddo

// DecisionDiagram describes the surface of a compiled decision diagram; it
// is implemented by compiler.Compiler, mirroring the Rust reference's
// DecisionDiagram trait. The solver package's driver does not go through
// this interface: it holds a *compiler.Compiler directly (it also calls
// SetBarrier, which is not part of this interface), so an alternative DD
// compiler cannot be plugged into that driver through DecisionDiagram.
type DecisionDiagram[State comparable] interface {
	// Compile (re)builds the diagram rooted at input.Residual, discarding
	// whatever the previous call left behind.
	Compile(input CompilationInput[State])

	// IsExact reports whether the just-compiled DD is exact (no layer was
	// truncated or merged, or — for Relaxed compilations — the best path is
	// itself fully exact).
	IsExact() bool

	// BestValue is the value of the best terminal node, if any were reached.
	BestValue() (int, bool)

	// BestSolution reconstructs the root-to-best-terminal decision path.
	BestSolution() ([]Decision, bool)

	// DrainCutset destructively yields every still-marked cutset node as a
	// new SubProblem. Only meaningful after a Relaxed compilation.
	DrainCutset(yield func(SubProblem[State]))

	// Explored is the number of DD nodes actually branched on during the
	// last compilation (nodes whose upper bound exceeded the best known
	// lower bound), i.e. spec.md's NODES_DD contribution for this call.
	Explored() int
}
