package support

import "gonum.org/v1/gonum/mat"

// Matrix is the dense 2-D structure spec.md §2/§9 calls out as a support
// utility, used by the tsptw reference collaborator for its distance table.
// It wraps gonum's mat.Dense (float64-backed) behind an integer-valued
// accessor, since every distance/cost in this engine is an int — grounded
// on gonum's presence in vanderheijden86-b9s/beadwork and on the teacher's
// own dense-buffer idiom in tsp/bb.go ("e.w []float64", "e.at(u, v)").
type Matrix struct {
	rows, cols int
	data       *mat.Dense
}

// NewMatrix allocates a rows×cols matrix of zeroes.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: mat.NewDense(rows, cols, nil)}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the integer value at (i, j).
func (m *Matrix) At(i, j int) int { return int(m.data.At(i, j)) }

// Set stores v at (i, j).
func (m *Matrix) Set(i, j, v int) { m.data.Set(i, j, float64(v)) }

// Row returns a copy of row i as a dense integer slice.
func (m *Matrix) Row(i int) []int {
	out := make([]int, m.cols)
	for j := 0; j < m.cols; j++ {
		out[j] = m.At(i, j)
	}
	return out
}
