package support

// NodeFlags packs the six DD-node flags spec.md §3 defines into a single
// byte. Grounded on the bit-packed flags used throughout
// original_source/src/mdd/with_barrier.rs (NodeFlags::is_exact/is_relaxed/
// is_deleted/is_cutset/is_marked/is_pruned_by_barrier).
type NodeFlags uint8

const (
	// FlagExact: every ancestor on this node's best path remained exact.
	FlagExact NodeFlags = 1 << iota
	// FlagRelaxed: this node is the result of a merge, or has a non-exact
	// ancestor.
	FlagRelaxed
	// FlagDeleted: this node was folded into a merged super-node.
	FlagDeleted
	// FlagCutset: this node belongs to the exact cutset of this compilation.
	FlagCutset
	// FlagMarked: discovered during local-bound back-propagation.
	FlagMarked
	// FlagPrunedByBarrier: removed from its layer because the barrier
	// dominated it.
	FlagPrunedByBarrier
)

// NewExactFlags returns the flags of a freshly created exact node (the
// root, or any node whose entire ancestry is exact).
func NewExactFlags() NodeFlags { return FlagExact }

// NewRelaxedFlags returns the flags of a freshly created merged node.
func NewRelaxedFlags() NodeFlags { return FlagRelaxed }

func (f NodeFlags) IsExact() bool          { return f&FlagExact != 0 }
func (f NodeFlags) IsRelaxed() bool        { return f&FlagRelaxed != 0 }
func (f NodeFlags) IsDeleted() bool        { return f&FlagDeleted != 0 }
func (f NodeFlags) IsCutset() bool         { return f&FlagCutset != 0 }
func (f NodeFlags) IsMarked() bool         { return f&FlagMarked != 0 }
func (f NodeFlags) IsPrunedByBarrier() bool { return f&FlagPrunedByBarrier != 0 }

func (f *NodeFlags) set(bit NodeFlags, v bool) {
	if v {
		*f |= bit
	} else {
		*f &^= bit
	}
}

func (f *NodeFlags) SetExact(v bool)          { f.set(FlagExact, v) }
func (f *NodeFlags) SetRelaxed(v bool)        { f.set(FlagRelaxed, v) }
func (f *NodeFlags) SetDeleted(v bool)        { f.set(FlagDeleted, v) }
func (f *NodeFlags) SetCutset(v bool)         { f.set(FlagCutset, v) }
func (f *NodeFlags) SetMarked(v bool)         { f.set(FlagMarked, v) }
func (f *NodeFlags) SetPrunedByBarrier(v bool) { f.set(FlagPrunedByBarrier, v) }
