package lu

import (
	"math"

	"github.com/slukit/slu/coord"
)

// handleState tracks the lifecycle of a Factorization: a failed
// factorize leaves the handle unusable, a failed update poisons it.
type handleState int

const (
	stateEmpty handleState = iota
	stateValid
	statePoisoned
)

// Factorization owns the packed factors, permutations and diagnostics of
// one matrix. It is strictly single-owner: no method is safe for
// concurrent use on the same handle. Independent handles are independent.
//
// Internally rows and columns live in stable slots; the external 1-based
// numbering is an order-preserving view that shifts on delete and grows on
// add. The L eta file may reference a slot forever, so slots are never
// renumbered or reused.
type Factorization struct {
	opts Options

	// external view: extIdx-1 -> slot, and slot -> extIdx (0 = retired).
	rowIDs, colIDs []int
	rowExt, colExt []int

	// packed arena of capacity lena: U rows at the front (value + column
	// slot per element, row identified via locr/lenr), L etas at the back
	// (value + target row slot + source row slot), growing toward each
	// other. The gap is free; interior U gaps are garbage until compaction.
	lena   int
	aval   []float64
	rowind []int
	colind []int
	lenL   int // elements in [lena-lenL, lena)
	lenU   int // live U elements (≤ lrow)
	lrow   int // first free element of the U region

	// per-row-slot U spans.
	locr, lenr []int

	// permutations: position -> slot and slot -> position, full bijections
	// over all slots; positions < rank are basic.
	p, q       []int
	posp, posq []int
	rank       int

	maxA, maxFactor float64

	state handleState
	stats Stats

	// scratch (sized to slot counts, grown on add).
	rscr []float64 // row-indexed accumulator
	cscr []float64 // column-indexed accumulator
}

// Factorize assembles and factorizes mat, returning a live handle.
// opts may be nil for DefaultOptions. Rank deficiency is not an error
// (inspect Stats); ErrStorageExhausted reports insufficient capacity.
func Factorize(mat *coord.Matrix, opts *Options) (*Factorization, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	f := &Factorization{opts: o}
	if err := f.factorize(mat); err != nil {
		return nil, err
	}
	return f, nil
}

// Refactorize rebuilds the factors from mat in place, reusing the handle's
// options. It is the only way to recover a poisoned handle, and the way to
// grow capacity after ErrStorageExhausted (set Capacity before calling
// Factorize, or pass a larger matrix here with FillFactor headroom).
func (f *Factorization) Refactorize(mat *coord.Matrix) error {
	return f.factorize(mat)
}

// Dims returns the current external shape.
func (f *Factorization) Dims() (m, n int) { return len(f.rowIDs), len(f.colIDs) }

// Rank returns the current estimated numerical rank.
func (f *Factorization) Rank() int {
	r, _ := f.countRank()
	return r
}

// RowPerm returns the pivot row order P as 1-based external indices:
// position k of the returned slice holds the row pivoted at step k+1.
func (f *Factorization) RowPerm() []int { return f.permView(f.p, f.rowExt) }

// ColPerm returns the pivot column order Q, 1-based external indices.
func (f *Factorization) ColPerm() []int { return f.permView(f.q, f.colExt) }

// RowPermInverse returns the inverse of RowPerm: element i-1 holds the
// pivot position (1-based) of external row i.
func (f *Factorization) RowPermInverse() []int { return invPerm(f.RowPerm()) }

// ColPermInverse returns the inverse of ColPerm.
func (f *Factorization) ColPermInverse() []int { return invPerm(f.ColPerm()) }

// permView maps a position->slot order to live external indices.
func (f *Factorization) permView(order, ext []int) []int {
	out := make([]int, 0, len(order))
	for _, slot := range order {
		if e := ext[slot]; e != 0 {
			out = append(out, e)
		}
	}
	return out
}

func invPerm(p []int) []int {
	inv := make([]int, len(p))
	for pos, idx := range p {
		inv[idx-1] = pos + 1
	}
	return inv
}

// usable gates every solve/multiply/update on the handle state.
func (f *Factorization) usable() error {
	switch f.state {
	case stateValid:
		return nil
	case statePoisoned:
		return ErrNeedRefactorize
	default:
		return ErrNotFactorized
	}
}

// poison marks the factors untrustworthy after a failed update.
func (f *Factorization) poison() { f.state = statePoisoned }

// rowValue returns the U element at (row slot, column slot), 0 if absent.
func (f *Factorization) rowValue(rs, cs int) float64 {
	lo := f.locr[rs]
	for l := lo; l < lo+f.lenr[rs]; l++ {
		if f.colind[l] == cs {
			return f.aval[l]
		}
	}
	return 0
}

// diag returns the U diagonal of basic position r.
func (f *Factorization) diag(r int) float64 {
	return f.rowValue(f.p[r], f.q[r])
}

// rowMaxAbs returns the largest magnitude in the U row of slot rs.
func (f *Factorization) rowMaxAbs(rs int) float64 {
	lo, best := f.locr[rs], 0.0
	for l := lo; l < lo+f.lenr[rs]; l++ {
		if v := math.Abs(f.aval[l]); v > best {
			best = v
		}
	}
	return best
}

// diagFlagged reports whether the diagonal of basic position r fails the
// UTol1 (absolute) or UTol2 (relative) singularity tests.
func (f *Factorization) diagFlagged(r int) bool {
	d := math.Abs(f.diag(r))
	if d < f.opts.UTol1 {
		return true
	}
	return d < f.opts.UTol2*f.rowMaxAbs(f.p[r])
}

// countRank returns the tolerance-adjusted rank and flagged-pivot count.
func (f *Factorization) countRank() (rank, flagged int) {
	for r := 0; r < f.rank; r++ {
		if f.diagFlagged(r) {
			flagged++
		}
	}
	return f.rank - flagged, flagged
}

// liveMin is min(m, n) of the external shape.
func (f *Factorization) liveMin() int {
	m, n := f.Dims()
	if m < n {
		return m
	}
	return n
}

// noteFactor tracks element growth on every value written to the factors.
func (f *Factorization) noteFactor(v float64) {
	if v < 0 {
		v = -v
	}
	if v > f.maxFactor {
		f.maxFactor = v
	}
}

// scatterRows expands an external m-vector into slot space.
func (f *Factorization) scatterRows(b []float64) []float64 {
	v := f.rscr
	for i := range v {
		v[i] = 0
	}
	for k, slot := range f.rowIDs {
		v[slot] = b[k]
	}
	return v
}

// scatterCols expands an external n-vector into slot space.
func (f *Factorization) scatterCols(b []float64) []float64 {
	v := f.cscr
	for i := range v {
		v[i] = 0
	}
	for k, slot := range f.colIDs {
		v[slot] = b[k]
	}
	return v
}

// gatherRows collects slot space back into external row order.
func (f *Factorization) gatherRows(v []float64) []float64 {
	out := make([]float64, len(f.rowIDs))
	for k, slot := range f.rowIDs {
		out[k] = v[slot]
	}
	return out
}

// gatherCols collects slot space back into external column order.
func (f *Factorization) gatherCols(v []float64) []float64 {
	out := make([]float64, len(f.colIDs))
	for k, slot := range f.colIDs {
		out[k] = v[slot]
	}
	return out
}

// checkFinite validates a caller-supplied vector.
func checkFinite(v []float64) error {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ErrNotFinite
		}
	}
	return nil
}
