package lu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slukit/slu/lu"
)

// TestMultiply_MatchesDense compares both product modes against direct
// dense arithmetic on a rectangular matrix.
func TestMultiply_MatchesDense(t *testing.T) {
	rows := [][]float64{
		{2, 0, 1, 0, 3},
		{0, 4, 0, 1, 0},
		{1, 0, 5, 0, 2},
	}
	f := mustFactorize(t, rows, nil)

	x := []float64{1, -2, 3, 0, 1}
	ax, err := f.Multiply(lu.MulA, x)
	require.NoError(t, err)
	assert.Less(t, maxDiff(ax, denseMul(rows, x)), 1e-10, "MulA must match the dense product")

	y := []float64{2, 1, -1}
	aty, err := f.Multiply(lu.MulAT, y)
	require.NoError(t, err)
	want := make([]float64, 5)
	for i, r := range rows {
		for j, a := range r {
			want[j] += a * y[i]
		}
	}
	assert.Less(t, maxDiff(aty, want), 1e-10, "MulAT must match the dense product")
}

// TestMultiply_AfterUpdate checks the product reflects a column
// replacement, proving it is computed from the factors, not cached input.
func TestMultiply_AfterUpdate(t *testing.T) {
	rows := baseSquare()
	f := mustFactorize(t, rows, nil)

	v := []float64{1, 2, 0, -3}
	_, err := f.ReplaceColumn(4, v, nil)
	require.NoError(t, err)
	for i := range rows {
		rows[i][3] = v[i]
	}

	x := []float64{1, 1, 1, 1}
	ax, err := f.Multiply(lu.MulA, x)
	require.NoError(t, err)
	assert.Less(t, maxDiff(ax, denseMul(rows, x)), 1e-8, "the product must track the update")
}

// TestMultiply_Validation covers mode and dimension gates.
func TestMultiply_Validation(t *testing.T) {
	f := mustFactorize(t, tridiag(3, 4, 1), nil)

	_, err := f.Multiply(lu.MulMode(7), []float64{1, 2, 3})
	assert.ErrorIs(t, err, lu.ErrBadMode)

	_, err = f.Multiply(lu.MulA, []float64{1})
	assert.ErrorIs(t, err, lu.ErrDimensionMismatch)
}
