// Package support provides the small, self-contained utilities the DD
// compiler and the reference problem collaborators build on: a packed
// node-flag bitfield, a compact one-bits iterator and lexicographic order
// over fixed-size bitsets, and a dense 2-D matrix.
//
//	flags.go    — NodeFlags, the six-bit state of a DD node.
//	bitset.go   — BitSet64, BitIter, LexLess.
//	matrix.go   — Matrix, a gonum-backed dense 2-D matrix.
package support
