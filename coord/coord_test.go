package coord_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slukit/slu/coord"
)

// TestNew_BadShape verifies that non-positive dimensions are rejected.
func TestNew_BadShape(t *testing.T) {
	_, err := coord.New(0, 3, []coord.Entry{{Row: 1, Col: 1, Val: 1}})
	assert.ErrorIs(t, err, coord.ErrBadShape, "m=0 must error ErrBadShape")

	_, err = coord.New(3, -1, []coord.Entry{{Row: 1, Col: 1, Val: 1}})
	assert.ErrorIs(t, err, coord.ErrBadShape, "n<0 must error ErrBadShape")
}

// TestNew_NoEntries verifies that an empty triplet list is rejected.
func TestNew_NoEntries(t *testing.T) {
	_, err := coord.New(2, 2, nil)
	assert.ErrorIs(t, err, coord.ErrNoEntries)
}

// TestNew_IndexValidation ensures out-of-range indices fail before assembly.
func TestNew_IndexValidation(t *testing.T) {
	cases := []coord.Entry{
		{Row: 0, Col: 1, Val: 1},
		{Row: 3, Col: 1, Val: 1},
		{Row: 1, Col: 0, Val: 1},
		{Row: 1, Col: 4, Val: 1},
	}
	for _, e := range cases {
		_, err := coord.New(2, 3, []coord.Entry{e})
		assert.ErrorIs(t, err, coord.ErrIndexOutOfRange, "entry %+v must be rejected", e)
	}
}

// TestNew_NonFinite ensures NaN and ±Inf values are rejected.
func TestNew_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := coord.New(1, 1, []coord.Entry{{Row: 1, Col: 1, Val: v}})
		assert.ErrorIs(t, err, coord.ErrNotFinite)
	}
}

// TestNew_DuplicateSumming verifies duplicates are summed, not overwritten,
// and that a duplicate pair summing to zero is kept as an explicit zero.
func TestNew_DuplicateSumming(t *testing.T) {
	a, err := coord.New(2, 2, []coord.Entry{
		{Row: 1, Col: 1, Val: 2},
		{Row: 1, Col: 1, Val: 3},
		{Row: 2, Col: 2, Val: 1.5},
		{Row: 2, Col: 2, Val: -1.5},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, a.NNZ(), "two distinct coordinates remain after summing")
	assert.Equal(t, 5.0, a.At(1, 1), "duplicates must accumulate")
	assert.Equal(t, 0.0, a.At(2, 2), "zero-sum duplicate is kept explicitly")
}

// TestFromDense verifies dense conversion and accessors.
func TestFromDense(t *testing.T) {
	a, err := coord.FromDense([][]float64{
		{1, 0, 2},
		{0, 3, 0},
	})
	require.NoError(t, err)

	m, n := a.Dims()
	assert.Equal(t, 2, m)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, a.NNZ())
	assert.Equal(t, 2.0, a.At(1, 3))
	assert.Equal(t, 0.0, a.At(2, 1), "missing entry reads as zero")
}

// TestFromDense_Ragged ensures ragged input is rejected.
func TestFromDense_Ragged(t *testing.T) {
	_, err := coord.FromDense([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, coord.ErrBadShape)
}

// TestEntries_DefensiveCopy ensures mutation of the returned slice does not
// leak into the matrix.
func TestEntries_DefensiveCopy(t *testing.T) {
	a, err := coord.New(1, 1, []coord.Entry{{Row: 1, Col: 1, Val: 7}})
	require.NoError(t, err)

	es := a.Entries()
	es[0].Val = -1
	assert.Equal(t, 7.0, a.At(1, 1))
}
