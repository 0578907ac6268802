package lu

// Multiply computes a matrix-vector product from the factors alone, so
// residuals can be checked without retaining the original matrix. MulA
// takes x of length n and returns A·x of length m; MulAT takes x of
// length m and returns Aᵀ·x of length n. x is never modified.
func (f *Factorization) Multiply(mode MulMode, x []float64) ([]float64, error) {
	if err := f.usable(); err != nil {
		return nil, err
	}
	if err := checkFinite(x); err != nil {
		return nil, err
	}
	m, n := f.Dims()

	switch mode {
	case MulA:
		if len(x) != n {
			return nil, ErrDimensionMismatch
		}
		v := f.scatterCols(x)
		u := f.rscr
		for rs := range u {
			var sum float64
			lo := f.locr[rs]
			for l := lo; l < lo+f.lenr[rs]; l++ {
				sum += f.aval[l] * v[f.colind[l]]
			}
			u[rs] = sum
		}
		// A = L·U: undo the eta file newest first.
		for l := f.ltop(); l < f.lena; l++ {
			u[f.rowind[l]] -= f.aval[l] * u[f.colind[l]]
		}
		return f.gatherRows(u), nil

	case MulAT:
		if len(x) != m {
			return nil, ErrDimensionMismatch
		}
		v := f.scatterRows(x)
		// Aᵀ = Uᵀ·Lᵀ: undo the transposed etas oldest first.
		for l := f.lena - 1; l >= f.ltop(); l-- {
			v[f.colind[l]] -= f.aval[l] * v[f.rowind[l]]
		}
		w := f.cscr
		for i := range w {
			w[i] = 0
		}
		for rs := range f.lenr {
			if f.lenr[rs] == 0 || v[rs] == 0 {
				continue
			}
			lo := f.locr[rs]
			for l := lo; l < lo+f.lenr[rs]; l++ {
				w[f.colind[l]] += f.aval[l] * v[rs]
			}
		}
		return f.gatherCols(w), nil

	default:
		return nil, ErrBadMode
	}
}
