package lu

// Solve solves one triangular or composed system against the current
// factors. Vector lengths per mode (m, n = Dims):
//
//	SolveL  (L·v = b):  b has length m, result length m
//	SolveLT (Lᵀ·v = b): b has length m, result length m
//	SolveU  (U·w = v):  b has length m, result length n
//	SolveUT (Uᵀ·w = v): b has length n, result length m
//	SolveA  (A·x = b):  b has length m, result length n
//	SolveAT (Aᵀ·x = b): b has length n, result length m
//
// Rank-deficient positions contribute zero components and raise the
// non-fatal Stats.LastSolveSingular diagnostic; an exactly-zero pivot
// (possible only on a handle damaged by updates) is ErrSingular.
// b is never modified.
func (f *Factorization) Solve(mode SolveMode, b []float64) ([]float64, error) {
	if err := f.usable(); err != nil {
		return nil, err
	}
	if err := checkFinite(b); err != nil {
		return nil, err
	}
	m, n := f.Dims()
	f.stats.LastSolveSingular = false

	switch mode {
	case SolveL:
		if len(b) != m {
			return nil, ErrDimensionMismatch
		}
		v := f.scatterRows(b)
		f.solveL(v)
		return f.gatherRows(v), nil

	case SolveLT:
		if len(b) != m {
			return nil, ErrDimensionMismatch
		}
		v := f.scatterRows(b)
		f.solveLT(v)
		return f.gatherRows(v), nil

	case SolveU:
		if len(b) != m {
			return nil, ErrDimensionMismatch
		}
		v := f.scatterRows(b)
		w, err := f.solveU(v)
		if err != nil {
			return nil, err
		}
		return f.gatherCols(w), nil

	case SolveUT:
		if len(b) != n {
			return nil, ErrDimensionMismatch
		}
		v := f.scatterCols(b)
		w, err := f.solveUT(v)
		if err != nil {
			return nil, err
		}
		return f.gatherRows(w), nil

	case SolveA:
		if len(b) != m {
			return nil, ErrDimensionMismatch
		}
		v := f.scatterRows(b)
		f.solveL(v)
		w, err := f.solveU(v)
		if err != nil {
			return nil, err
		}
		return f.gatherCols(w), nil

	case SolveAT:
		if len(b) != n {
			return nil, ErrDimensionMismatch
		}
		v := f.scatterCols(b)
		w, err := f.solveUT(v)
		if err != nil {
			return nil, err
		}
		f.solveLT(w)
		return f.gatherRows(w), nil

	default:
		return nil, ErrBadMode
	}
}

// solveL applies L⁻¹ in place by replaying the eta file in append order
// (the file grows downward, so oldest transformations sit at the top).
func (f *Factorization) solveL(v []float64) {
	for l := f.lena - 1; l >= f.ltop(); l-- {
		v[f.rowind[l]] += f.aval[l] * v[f.colind[l]]
	}
}

// solveLT applies L⁻ᵀ in place: the transposed etas replayed newest first.
func (f *Factorization) solveLT(v []float64) {
	for l := f.ltop(); l < f.lena; l++ {
		v[f.colind[l]] += f.aval[l] * v[f.rowind[l]]
	}
}

// solveU back-substitutes U·w = v over the basic positions in reverse
// pivot order. vint is in row-slot space; the result is in column-slot
// space. Flagged diagonals yield zero components.
func (f *Factorization) solveU(vint []float64) ([]float64, error) {
	w := f.cscr
	for i := range w {
		w[i] = 0
	}
	if f.rank < f.liveMin() {
		f.stats.LastSolveSingular = true
	}
	for r := f.rank - 1; r >= 0; r-- {
		rs, cs := f.p[r], f.q[r]
		lo := f.locr[rs]
		var d, sum float64
		for l := lo; l < lo+f.lenr[rs]; l++ {
			if c := f.colind[l]; c == cs {
				d = f.aval[l]
			} else {
				sum += f.aval[l] * w[c]
			}
		}
		if d == 0 {
			return nil, ErrSingular
		}
		if f.diagFlagged(r) {
			w[cs] = 0
			f.stats.LastSolveSingular = true
			continue
		}
		w[cs] = (vint[rs] - sum) / d
	}
	return w, nil
}

// solveUT forward-substitutes Uᵀ·w = v over the basic positions in pivot
// order, scattering each resolved component through its U row. vint is in
// column-slot space (and is consumed); the result is in row-slot space.
func (f *Factorization) solveUT(vint []float64) ([]float64, error) {
	w := f.rscr
	for i := range w {
		w[i] = 0
	}
	if f.rank < f.liveMin() {
		f.stats.LastSolveSingular = true
	}
	for r := 0; r < f.rank; r++ {
		rs, cs := f.p[r], f.q[r]
		d := f.rowValue(rs, cs)
		if d == 0 {
			return nil, ErrSingular
		}
		if f.diagFlagged(r) {
			f.stats.LastSolveSingular = true
			continue
		}
		wr := vint[cs] / d
		w[rs] = wr
		lo := f.locr[rs]
		for l := lo; l < lo+f.lenr[rs]; l++ {
			if c := f.colind[l]; c != cs {
				vint[c] -= wr * f.aval[l]
			}
		}
	}
	return w, nil
}
