package lu_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/slukit/slu/coord"
	"github.com/slukit/slu/lu"
)

// mustFactorize builds a coord.Matrix from dense rows and factorizes it
// with the given options (nil = defaults), failing the test on any error.
func mustFactorize(t *testing.T, rows [][]float64, opts *lu.Options) *lu.Factorization {
	t.Helper()
	a, err := coord.FromDense(rows)
	require.NoError(t, err, "assembling the test matrix must succeed")
	f, err := lu.Factorize(a, opts)
	require.NoError(t, err, "factorizing the test matrix must succeed")
	return f
}

// denseMul computes rows·x directly, independent of the code under test.
func denseMul(rows [][]float64, x []float64) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		var s float64
		for j, a := range r {
			s += a * x[j]
		}
		out[i] = s
	}
	return out
}

// denseSolve solves rows·x = b with the gonum dense LU as an oracle.
func denseSolve(t *testing.T, rows [][]float64, b []float64) []float64 {
	t.Helper()
	m, n := len(rows), len(rows[0])
	a := mat.NewDense(m, n, nil)
	for i, r := range rows {
		for j, v := range r {
			a.Set(i, j, v)
		}
	}
	var x mat.VecDense
	err := x.SolveVec(a, mat.NewVecDense(m, b))
	require.NoError(t, err, "gonum oracle solve must succeed")
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		out[j] = x.AtVec(j)
	}
	return out
}

// maxDiff returns the largest |a[i]−b[i]|.
func maxDiff(a, b []float64) float64 {
	var d float64
	for i := range a {
		if v := math.Abs(a[i] - b[i]); v > d {
			d = v
		}
	}
	return d
}

// requirePermutation asserts that p is a permutation of 1..n.
func requirePermutation(t *testing.T, p []int, n int) {
	t.Helper()
	require.Len(t, p, n, "permutation length must match dimension")
	seen := make([]bool, n+1)
	for _, v := range p {
		require.True(t, v >= 1 && v <= n, "permutation value %d out of range", v)
		require.False(t, seen[v], "permutation value %d repeated", v)
		seen[v] = true
	}
}

// tridiag builds the n×n matrix with diagonal d and off-diagonals e.
func tridiag(n int, d, e float64) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		rows[i][i] = d
		if i > 0 {
			rows[i][i-1] = e
		}
		if i < n-1 {
			rows[i][i+1] = e
		}
	}
	return rows
}
