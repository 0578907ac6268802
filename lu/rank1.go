package lu

import "math"

// RankOneUpdate applies A ← A + β·v·wᵀ (v length m, w length n) as one
// column replacement per nonzero of w, each column reconstructed from the
// current factors. Rank changes are accepted silently; inspect Stats.
// Repeated updates degrade the factors — refactorize when Growth or the
// eta file gets large.
func (f *Factorization) RankOneUpdate(beta float64, v, w []float64) error {
	if err := f.usable(); err != nil {
		return err
	}
	m, n := f.Dims()
	if len(v) != m || len(w) != n {
		return ErrDimensionMismatch
	}
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return ErrNotFinite
	}
	if err := checkFinite(v); err != nil {
		return err
	}
	if err := checkFinite(w); err != nil {
		return err
	}

	if beta == 0 {
		return nil
	}
	f.stats.Updates++
	for j := 0; j < n; j++ {
		if w[j] == 0 {
			continue
		}
		cs := f.colIDs[j]
		col := f.colOfA(cs)
		scale := beta * w[j]
		for k, rsl := range f.rowIDs {
			col[rsl] += scale * v[k]
		}
		if _, err := f.replaceColumnSlot(cs, col, true); err != nil {
			f.poison()
			return err
		}
	}
	if err := f.recoverRank(); err != nil {
		f.poison()
		return err
	}
	return nil
}
