package lu

import "math"

// AddColumn appends v (length m) as a new last column of A. Existing
// pivots are not reordered: the new column either yields a fresh pivot
// from the unpivoted region (rank +1, Diag set) or enters as a dependent
// column (rank unchanged, Diag 0). VNorm is ‖L⁻¹v‖₂.
func (f *Factorization) AddColumn(v []float64) (UpdateResult, error) {
	if err := f.usable(); err != nil {
		return UpdateResult{}, err
	}
	m, _ := f.Dims()
	if len(v) != m {
		return UpdateResult{}, ErrDimensionMismatch
	}
	if err := checkFinite(v); err != nil {
		return UpdateResult{}, err
	}

	f.stats.Updates++
	cs := len(f.posq)
	f.posq = append(f.posq, len(f.q))
	f.q = append(f.q, cs)
	f.colIDs = append(f.colIDs, cs)
	f.colExt = append(f.colExt, len(f.colIDs))
	f.cscr = append(f.cscr, 0)

	res, err := f.replaceColumnSlot(cs, f.scatterRows(v), true)
	if err != nil {
		f.poison()
		return res, err
	}
	return res, nil
}

// AddRow appends w (length n) as a new last row of A. The row is reduced
// against the existing pivots by appended etas; its residual either yields
// a fresh pivot (rank +1, Diag set) or the row is dependent (rank
// unchanged, Diag 0). VNorm is the 2-norm of the reduced residual row.
func (f *Factorization) AddRow(w []float64) (UpdateResult, error) {
	if err := f.usable(); err != nil {
		return UpdateResult{}, err
	}
	_, n := f.Dims()
	if len(w) != n {
		return UpdateResult{}, ErrDimensionMismatch
	}
	if err := checkFinite(w); err != nil {
		return UpdateResult{}, err
	}

	f.stats.Updates++
	rs := len(f.posp)
	f.posp = append(f.posp, len(f.p))
	f.p = append(f.p, rs)
	f.rowIDs = append(f.rowIDs, rs)
	f.rowExt = append(f.rowExt, len(f.rowIDs))
	f.locr = append(f.locr, 0)
	f.lenr = append(f.lenr, 0)
	f.rscr = append(f.rscr, 0)

	res, err := f.reduceNewRow(rs, w)
	if err != nil {
		f.poison()
		return res, err
	}
	return res, nil
}

// reduceNewRow eliminates the new row's entries in basic columns against
// the existing pivots, writes the residual, and attempts a promotion.
func (f *Factorization) reduceNewRow(rs int, w []float64) (UpdateResult, error) {
	small := f.opts.Small
	var res UpdateResult

	acc := newRowAccum(len(f.posq))
	for k, cslot := range f.colIDs {
		if w[k] != 0 {
			acc.add(cslot, w[k])
		}
	}
	for s := 0; s < f.rank; s++ {
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
			if err := f.appendEta(rs, ps, -m); err != nil {
				return res, err
			}
		}
		acc.val[qc] = 0
	}
	if err := f.writeRow(rs, acc); err != nil {
		return res, err
	}

	var norm float64
	for _, c := range acc.use {
		norm += acc.val[c] * acc.val[c]
	}
	res.VNorm = math.Sqrt(norm)

	cb, _ := f.bestColumnInRow(rs, f.rank-1)
	if cb < 0 {
		return res, nil
	}
	R := f.rank
	f.swapRowPositions(R, f.posp[rs])
	f.swapColPositions(R, f.posq[cb])
	f.rank = R + 1
	diag, err := f.settlePivot(R, true)
	res.Diag = diag
	return res, err
}
