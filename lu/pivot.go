// Package lu: Markowitz pivot search with threshold acceptance.

package lu

import "math"

// searchPivot picks the next pivot: Markowitz cost minimization over a
// bounded window of the shortest active columns, widened to every active
// column when the window holds no admissible candidate. TSP falls back to
// TPP acceptance so elimination always progresses on unsymmetric inputs.
func (f *Factorization) searchPivot(w *worker) (pi, pj int, ok bool) {
	window := f.opts.MaxCol
	if w.density() >= f.opts.Dens1 {
		window = 1
	}

	cands := w.shortestCols(window)
	if pi, pj, ok = f.scanCandidates(w, cands, f.opts.Pivoting); ok {
		return pi, pj, true
	}

	all := w.activeCols()
	if len(all) > len(cands) {
		if pi, pj, ok = f.scanCandidates(w, all, f.opts.Pivoting); ok {
			return pi, pj, true
		}
	}
	if f.opts.Pivoting == TSP {
		return f.scanCandidates(w, all, TPP)
	}
	return 0, 0, false
}

// shortestCols returns up to k active columns of smallest active length,
// deterministic under ties (ascending slot order).
func (w *worker) shortestCols(k int) []int {
	out := make([]int, 0, k)
	for c := range w.cols {
		if !w.colAct[c] || w.clen[c] == 0 {
			continue
		}
		pos := len(out)
		for pos > 0 && w.clen[out[pos-1]] > w.clen[c] {
			pos--
		}
		if pos < k {
			if len(out) < k {
				out = append(out, 0)
			}
			copy(out[pos+1:], out[pos:len(out)-1])
			out[pos] = c
		}
	}
	return out
}

// activeCols lists every active column slot.
func (w *worker) activeCols() []int {
	out := make([]int, 0, w.cAct)
	for c := range w.cols {
		if w.colAct[c] && w.clen[c] > 0 {
			out = append(out, c)
		}
	}
	return out
}

// scanCandidates applies the strategy's threshold test to every element of
// the candidate columns and keeps the admissible element of least
// Markowitz cost (ties: larger magnitude).
func (f *Factorization) scanCandidates(w *worker, cands []int, strategy Pivoting) (pi, pj int, ok bool) {
	small := f.opts.Small
	ltol := f.opts.LTol1

	var amax float64
	if strategy == TCP {
		for _, c := range w.activeCols() {
			for _, e := range w.cols[c] {
				if v := math.Abs(e.val); v > amax {
					amax = v
				}
			}
		}
	}

	bestCost := math.MaxInt64
	bestAbs := 0.0
	for _, c := range cands {
		colmax := 0.0
		for _, e := range w.cols[c] {
			if v := math.Abs(e.val); v > colmax {
				colmax = v
			}
		}
		if colmax <= small {
			continue
		}
		limit := colmax / ltol
		for _, e := range w.cols[c] {
			av := math.Abs(e.val)
			if av <= small || av < limit {
				continue
			}
			switch strategy {
			case TRP:
				if av < w.rowMaxAbs(e.row)/ltol {
					continue
				}
			case TCP:
				if av < amax/ltol {
					continue
				}
			case TSP:
				if e.row != c {
					continue
				}
			}
			cost := (w.rlen[e.row] - 1) * (w.clen[c] - 1)
			if cost < bestCost || (cost == bestCost && av > bestAbs) {
				bestCost, bestAbs = cost, av
				pi, pj, ok = e.row, c, true
			}
		}
		if ok && bestCost == 0 {
			break // a zero-fill pivot cannot be beaten
		}
	}
	return pi, pj, ok
}
