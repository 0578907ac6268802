package lu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slukit/slu/coord"
	"github.com/slukit/slu/lu"
)

// TestFactorize_TridiagonalResidual factorizes the classic 5×5 tridiagonal
// system (diag 4, off-diag 1) and checks the solve residual.
func TestFactorize_TridiagonalResidual(t *testing.T) {
	rows := tridiag(5, 4, 1)
	f := mustFactorize(t, rows, nil)

	b := []float64{1, 2, 3, 4, 5}
	x, err := f.Solve(lu.SolveA, b)
	require.NoError(t, err, "solve on a well-conditioned system must succeed")

	assert.Less(t, maxDiff(denseMul(rows, x), b), 1e-10, "residual ‖Ax−b‖∞ must be tiny")

	st := f.Stats()
	assert.Equal(t, 5, st.Rank, "full rank expected")
	assert.Zero(t, st.Singularities, "no singularities expected")
	assert.False(t, st.LastSolveSingular, "the solve must not hit a singular position")
}

// TestFactorize_ZeroOneByOne handles the degenerate 1×1 zero matrix:
// rank 0, one singularity, no crash anywhere.
func TestFactorize_ZeroOneByOne(t *testing.T) {
	f := mustFactorize(t, [][]float64{{0}}, nil)

	assert.Equal(t, 0, f.Rank(), "a zero matrix has rank 0")
	st := f.Stats()
	assert.Equal(t, 1, st.Singularities, "one singular position expected")
	assert.Equal(t, 1.0, st.Growth, "growth of an all-zero matrix is defined as 1")

	x, err := f.Solve(lu.SolveA, []float64{3})
	require.NoError(t, err, "solving a singular system is not an error")
	assert.Equal(t, 0.0, x[0], "the rank-deficient component must be zeroed")
	assert.True(t, f.Stats().LastSolveSingular, "the solve must flag the singular position")
}

// TestFactorize_AllStrategies runs every pivot strategy on the same
// symmetric system and checks the solutions agree with the oracle.
func TestFactorize_AllStrategies(t *testing.T) {
	rows := tridiag(8, 5, 2)
	b := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	want := denseSolve(t, rows, b)

	for _, strat := range []lu.Pivoting{lu.TPP, lu.TRP, lu.TCP, lu.TSP} {
		opts := lu.DefaultOptions()
		opts.Pivoting = strat
		f := mustFactorize(t, rows, &opts)

		x, err := f.Solve(lu.SolveA, b)
		require.NoError(t, err, "strategy %v must solve", strat)
		assert.Less(t, maxDiff(x, want), 1e-9, "strategy %v must match the oracle", strat)
		assert.Equal(t, 8, f.Rank(), "strategy %v must find full rank", strat)
	}
}

// TestFactorize_RankDeficient checks the diagnostics on a singular square
// matrix and on a wide full-row-rank matrix.
func TestFactorize_RankDeficient(t *testing.T) {
	f := mustFactorize(t, [][]float64{{1, 2}, {2, 4}}, nil)
	st := f.Stats()
	assert.Equal(t, 1, st.Rank, "rank of a rank-one matrix")
	assert.Equal(t, 1, st.Singularities, "one singular position")

	w := mustFactorize(t, [][]float64{{1, 0, 2, 0}, {0, 3, 0, 4}}, nil)
	st = w.Stats()
	assert.Equal(t, 2, st.Rank, "wide matrix with independent rows has full row rank")
	assert.Zero(t, st.Singularities, "min(m,n) − rank must be 0")
}

// TestFactorize_Permutations asserts RowPerm/ColPerm are bijections and
// their inverses invert them.
func TestFactorize_Permutations(t *testing.T) {
	rows := [][]float64{
		{0, 2, 0, 1},
		{3, 0, 0, 0},
		{0, 1, 4, 0},
		{1, 0, 0, 5},
	}
	f := mustFactorize(t, rows, nil)

	rp, cp := f.RowPerm(), f.ColPerm()
	requirePermutation(t, rp, 4)
	requirePermutation(t, cp, 4)

	ri, ci := f.RowPermInverse(), f.ColPermInverse()
	for pos, ext := range rp {
		assert.Equal(t, pos+1, ri[ext-1], "row inverse must invert RowPerm")
	}
	for pos, ext := range cp {
		assert.Equal(t, pos+1, ci[ext-1], "column inverse must invert ColPerm")
	}
}

// TestFactorize_Refactorize checks that rebuilding from the same matrix
// reproduces the same solutions and resets the update counters.
func TestFactorize_Refactorize(t *testing.T) {
	rows := tridiag(6, 4, -1)
	b := []float64{1, 1, 2, 3, 5, 8}
	f := mustFactorize(t, rows, nil)

	x1, err := f.Solve(lu.SolveA, b)
	require.NoError(t, err)

	a, err := coord.FromDense(rows)
	require.NoError(t, err)
	require.NoError(t, f.Refactorize(a), "refactorize must succeed")

	x2, err := f.Solve(lu.SolveA, b)
	require.NoError(t, err)
	assert.Less(t, maxDiff(x1, x2), 1e-12, "refactorize must reproduce the solution")
	assert.Zero(t, f.Stats().Updates, "refactorize must reset the update counter")
}

// TestFactorize_CapacityTooSmall rejects an arena smaller than the input.
func TestFactorize_CapacityTooSmall(t *testing.T) {
	a, err := coord.FromDense(tridiag(5, 4, 1)) // 13 nonzeros
	require.NoError(t, err)

	opts := lu.DefaultOptions()
	opts.Capacity = 5
	_, err = lu.Factorize(a, &opts)
	assert.ErrorIs(t, err, lu.ErrStorageExhausted, "capacity below nnz must fail at construction")
}

// TestFactorize_DenseFallback forces the dense residual path with a low
// Dens2 threshold and checks the result is still correct.
func TestFactorize_DenseFallback(t *testing.T) {
	rows := [][]float64{
		{4, 1, 2, 0},
		{1, 5, 0, 3},
		{2, 0, 6, 1},
		{0, 3, 1, 7},
	}
	b := []float64{1, 2, 3, 4}
	want := denseSolve(t, rows, b)

	opts := lu.DefaultOptions()
	opts.Dens1, opts.Dens2 = 0.0, 0.0 // dense from the first step
	f := mustFactorize(t, rows, &opts)

	x, err := f.Solve(lu.SolveA, b)
	require.NoError(t, err)
	assert.Less(t, maxDiff(x, want), 1e-9, "dense path must match the oracle")
	assert.Equal(t, 4, f.Rank(), "dense path must find full rank")
}

// TestFactorize_NotFactorizedState verifies the handle gate: a fresh
// handle obtained through a failed construction cannot be used, and the
// zero-value handle reports ErrNotFactorized.
func TestFactorize_NotFactorizedState(t *testing.T) {
	var f lu.Factorization
	_, err := f.Solve(lu.SolveA, []float64{1})
	assert.ErrorIs(t, err, lu.ErrNotFactorized, "zero-value handle must be unusable")
}
