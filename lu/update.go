// Package lu: the shared Forrest-Tomlin update kernel.
//
// Every public update is expressed through one primitive: replace the
// column of a given slot with a new dense column. The kernel computes the
// transformed spike w = L⁻¹v, splices it into U, rotates the pivot
// position to the back of the basic range, eliminates the resulting row
// spike by appending etas, and settles an acceptable pivot for the vacated
// position (promoting a row or column from the unpivoted region when the
// natural diagonal fails tolerance, else dropping the rank).
//
// The kernel maintains one structural invariant throughout: a U row whose
// slot sits at a position ≥ rank has entries only in columns whose slots
// sit at positions ≥ rank. Solves never look at such rows, so they may
// hold arbitrary residue without affecting results.

package lu

import "math"

// rowAccum is a sparse accumulator over column slots, used for row
// operations during updates.
type rowAccum struct {
	val []float64
	in  []bool
	use []int
}

func newRowAccum(n int) *rowAccum {
	return &rowAccum{val: make([]float64, n), in: make([]bool, n)}
}

func (a *rowAccum) add(c int, v float64) {
	if !a.in[c] {
		a.in[c] = true
		a.use = append(a.use, c)
	}
	a.val[c] += v
}

// gatherRowInto loads the U row of slot rs into the accumulator.
func (f *Factorization) gatherRowInto(acc *rowAccum, rs int) {
	lo := f.locr[rs]
	for l := lo; l < lo+f.lenr[rs]; l++ {
		acc.add(f.colind[l], f.aval[l])
	}
}

// writeRow replaces the U row of slot rs with the accumulator content,
// dropping entries at or below Small.
func (f *Factorization) writeRow(rs int, acc *rowAccum) error {
	cols := make([]int, 0, len(acc.use))
	vals := make([]float64, 0, len(acc.use))
	for _, c := range acc.use {
		if math.Abs(acc.val[c]) > f.opts.Small {
			cols = append(cols, c)
			vals = append(vals, acc.val[c])
		}
	}
	return f.setRow(rs, cols, vals)
}

// rowOp applies row dst -= m·(row src) in U and appends the matching eta.
// zero names a column slot whose entry must vanish exactly (cancellation
// residue there would break triangularity); pass -1 for none.
func (f *Factorization) rowOp(dst, src int, m float64, zero int) error {
	acc := newRowAccum(len(f.posq))
	f.gatherRowInto(acc, dst)
	lo := f.locr[src]
	for l := lo; l < lo+f.lenr[src]; l++ {
		acc.add(f.colind[l], -m*f.aval[l])
	}
	if zero >= 0 {
		acc.val[zero] = 0
	}
	if err := f.writeRow(dst, acc); err != nil {
		return err
	}
	return f.appendEta(dst, src, -m)
}

// replaceColumnSlot installs vint (the new column in original row order,
// slot-indexed, consumed) as the column of slot cs. allowRankDrop selects
// whether a resulting rank decrease is accepted or reported as
// ErrUpdateSingular. The caller owns poisoning on error.
func (f *Factorization) replaceColumnSlot(cs int, vint []float64, allowRankDrop bool) (UpdateResult, error) {
	small := f.opts.Small

	f.solveL(vint)
	var vnorm float64
	for _, v := range vint {
		vnorm += v * v
	}
	vnorm = math.Sqrt(vnorm)
	res := UpdateResult{VNorm: vnorm}

	// The spike is installed over every row slot, retired ones included:
	// old etas keep referencing retired slots, so dropping their component
	// would break L·U. Retired rows stay out of the basis regardless
	// (settlePivot never promotes them) and solves never gather them.
	f.dropColumn(cs)
	for rs := range vint {
		if math.Abs(vint[rs]) > small {
			if err := f.appendToRow(rs, cs, vint[rs]); err != nil {
				return res, err
			}
		}
	}

	t := f.posq[cs]
	if t >= f.rank {
		// The replaced column was not pivotal; the spike lives entirely in
		// the unpivoted region. It may still admit a new pivot.
		diag, err := f.promoteColumn(cs)
		res.Diag = diag
		return res, err
	}

	// Rotate position t to the back of the basic range. The rows shifted
	// up keep their diagonals; only the displaced pivot row pt carries
	// entries below its new position.
	pt := f.p[t]
	R := f.rank - 1
	for s := t; s < R; s++ {
		f.p[s] = f.p[s+1]
		f.posp[f.p[s]] = s
		f.q[s] = f.q[s+1]
		f.posq[f.q[s]] = s
	}
	f.p[R] = pt
	f.posp[pt] = R
	f.q[R] = cs
	f.posq[cs] = R

	// Eliminate the row spike of pt against the rotated diagonal block.
	acc := newRowAccum(len(f.posq))
	f.gatherRowInto(acc, pt)
	for s := t; s < R; s++ {
		qc := f.q[s]
		val := acc.val[qc]
		if math.Abs(val) > small {
			d := f.diag(s)
			if math.Abs(d) <= small {
				return res, ErrUpdateSingular
			}
			m := val / d
			ps := f.p[s]
			lo := f.locr[ps]
			for l := lo; l < lo+f.lenr[ps]; l++ {
				acc.add(f.colind[l], -m*f.aval[l])
			}
			if err := f.appendEta(pt, ps, -m); err != nil {
				return res, err
			}
		}
		acc.val[qc] = 0
	}
	if err := f.writeRow(pt, acc); err != nil {
		return res, err
	}

	diag, err := f.settlePivot(R, allowRankDrop)
	res.Diag = diag
	return res, err
}

// settlePivot establishes an acceptable pivot at basic position R and
// eliminates every lower row's entry in the pivot column. When neither
// the natural diagonal, another row of the column, nor another column of
// the row passes UTol1, the position is demoted (rank drop) if allowed.
func (f *Factorization) settlePivot(R int, allowRankDrop bool) (float64, error) {
	small, utol := f.opts.Small, f.opts.UTol1
	pt, cs := f.p[R], f.q[R]
	d := f.rowValue(pt, cs)

	if math.Abs(d) < utol {
		best, bv := f.bestRowInColumn(cs, R)
		cb, cv := -1, 0.0
		if best < 0 && f.rowExt[pt] != 0 {
			// No replacement row: look for a replacement column, but never
			// on behalf of a retired row slot.
			cb, cv = f.bestColumnInRow(pt, R)
		}
		switch {
		case best >= 0:
			f.swapRowPositions(R, f.posp[best])
			pt, d = best, bv
		case cb >= 0:
			f.swapColPositions(R, f.posq[cb])
			cs, d = cb, cv
		default:
			if !allowRankDrop {
				return 0, ErrUpdateSingular
			}
			f.rank = R
			return 0, nil
		}
	}

	for ts := range f.posp {
		if ts == pt || f.posp[ts] <= R {
			continue
		}
		val := f.rowValue(ts, cs)
		if math.Abs(val) <= small {
			if val != 0 {
				f.removeFromRow(ts, cs)
			}
			continue
		}
		if err := f.rowOp(ts, pt, val/d, cs); err != nil {
			return 0, err
		}
	}
	return d, nil
}

// promoteColumn tries to pivot the unpivoted column slot cs: the best
// unpivoted live row with |entry| ≥ UTol1 becomes the new basic pair.
// Returns the new diagonal, 0 when the column stays dependent.
func (f *Factorization) promoteColumn(cs int) (float64, error) {
	R := f.rank
	best, _ := f.bestRowInColumn(cs, R-1)
	if best < 0 {
		return 0, nil
	}
	f.swapColPositions(R, f.posq[cs])
	f.swapRowPositions(R, f.posp[best])
	f.rank = R + 1
	return f.settlePivot(R, true)
}

// recoverRank retries promotion of unpivoted columns after a chain of
// column replacements: an intermediate step may have dropped a pivot that
// a later step restored.
func (f *Factorization) recoverRank() error {
	for f.rank < len(f.p) && f.rank < len(f.q) {
		promoted := false
		for cs := range f.posq {
			if f.posq[cs] < f.rank || f.colExt[cs] == 0 {
				continue
			}
			d, err := f.promoteColumn(cs)
			if err != nil {
				return err
			}
			if d != 0 {
				promoted = true
				break
			}
		}
		if !promoted {
			return nil
		}
	}
	return nil
}

// bestRowInColumn scans live row slots at positions > R for the largest
// |entry| ≥ UTol1 in column slot cs.
func (f *Factorization) bestRowInColumn(cs, R int) (rs int, val float64) {
	rs = -1
	var bestAbs float64
	for ts := range f.posp {
		if f.posp[ts] <= R || f.rowExt[ts] == 0 {
			continue
		}
		v := f.rowValue(ts, cs)
		if av := math.Abs(v); av >= f.opts.UTol1 && av > bestAbs {
			rs, val, bestAbs = ts, v, av
		}
	}
	return rs, val
}

// bestColumnInRow scans the U row of slot rs for the largest |entry| ≥
// UTol1 in a live column slot at a position > R.
func (f *Factorization) bestColumnInRow(rs, R int) (cs int, val float64) {
	cs = -1
	var bestAbs float64
	lo := f.locr[rs]
	for l := lo; l < lo+f.lenr[rs]; l++ {
		c := f.colind[l]
		if f.posq[c] <= R || f.colExt[c] == 0 {
			continue
		}
		if av := math.Abs(f.aval[l]); av >= f.opts.UTol1 && av > bestAbs {
			cs, val, bestAbs = c, f.aval[l], av
		}
	}
	return cs, val
}

func (f *Factorization) swapRowPositions(a, b int) {
	if a == b {
		return
	}
	f.p[a], f.p[b] = f.p[b], f.p[a]
	f.posp[f.p[a]] = a
	f.posp[f.p[b]] = b
}

func (f *Factorization) swapColPositions(a, b int) {
	if a == b {
		return
	}
	f.q[a], f.q[b] = f.q[b], f.q[a]
	f.posq[f.q[a]] = a
	f.posq[f.q[b]] = b
}

// colOfA reconstructs column slot cs of the current A from the factors:
// L·(U e_cs) in row-slot space.
func (f *Factorization) colOfA(cs int) []float64 {
	u := make([]float64, len(f.posp))
	for rs := range f.lenr {
		if f.lenr[rs] > 0 {
			u[rs] = f.rowValue(rs, cs)
		}
	}
	for l := f.ltop(); l < f.lena; l++ {
		u[f.rowind[l]] -= f.aval[l] * u[f.colind[l]]
	}
	return u
}

// rowOfA reconstructs row slot rs of the current A from the factors:
// Aᵀ e_rs in column-slot space.
func (f *Factorization) rowOfA(rs int) []float64 {
	v := make([]float64, len(f.posp))
	v[rs] = 1
	for l := f.lena - 1; l >= f.ltop(); l-- {
		v[f.colind[l]] -= f.aval[l] * v[f.rowind[l]]
	}
	w := make([]float64, len(f.posq))
	for ts := range f.lenr {
		if f.lenr[ts] == 0 || v[ts] == 0 {
			continue
		}
		lo := f.locr[ts]
		for l := lo; l < lo+f.lenr[ts]; l++ {
			w[f.colind[l]] += f.aval[l] * v[ts]
		}
	}
	return w
}
