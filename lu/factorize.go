package lu

import (
	"fmt"
	"math"

	"github.com/slukit/slu/coord"
)

// welem is one active-submatrix element during elimination.
type welem struct {
	row int
	val float64
}

// worker holds the transient elimination state: column lists with live
// values, row structure lists (lazily cleaned), and active counts for the
// Markowitz search. It is discarded once the factors are packed.
type worker struct {
	cols [][]welem
	rows [][]int // column slots per row; may hold stale references
	clen []int
	rlen []int

	rowAct, colAct []bool
	mAct, cAct     int // active row/column counts
	nAct           int // active element count

	mult    []float64 // multiplier accumulator, row-indexed
	seen    []int     // fill detection stamps, row-indexed
	stamp   int
	targets []int
}

func newWorker(m, n int, ents []coord.Entry) *worker {
	w := &worker{
		cols:   make([][]welem, n),
		rows:   make([][]int, m),
		clen:   make([]int, n),
		rlen:   make([]int, m),
		rowAct: make([]bool, m),
		colAct: make([]bool, n),
		mAct:   m,
		cAct:   n,
		nAct:   len(ents),
		mult:   make([]float64, m),
		seen:   make([]int, m),
	}
	for i := range w.rowAct {
		w.rowAct[i] = true
	}
	for j := range w.colAct {
		w.colAct[j] = true
	}
	for _, e := range ents {
		i, j := e.Row-1, e.Col-1
		w.cols[j] = append(w.cols[j], welem{row: i, val: e.Val})
		w.rows[i] = append(w.rows[i], j)
		w.clen[j]++
		w.rlen[i]++
	}
	return w
}

// valueAt returns the index of row i inside cols[c], -1 if absent.
func (w *worker) valueAt(c, i int) int {
	for k, e := range w.cols[c] {
		if e.row == i {
			return k
		}
	}
	return -1
}

// rowMaxAbs scans the live entries of row i (used by the TRP test).
func (w *worker) rowMaxAbs(i int) float64 {
	best := 0.0
	for _, c := range w.rows[i] {
		if !w.colAct[c] {
			continue
		}
		if k := w.valueAt(c, i); k >= 0 {
			if v := math.Abs(w.cols[c][k].val); v > best {
				best = v
			}
		}
	}
	return best
}

// density of the active submatrix.
func (w *worker) density() float64 {
	if w.mAct == 0 || w.cAct == 0 {
		return 0
	}
	return float64(w.nAct) / (float64(w.mAct) * float64(w.cAct))
}

// factorize (re)builds the handle from mat: assembly, sparse Markowitz
// elimination, dense residual fallback, permutation completion.
func (f *Factorization) factorize(mat *coord.Matrix) error {
	m, n := mat.Dims()
	ents := mat.Entries()
	nnz := len(ents)

	lena := f.opts.arenaSize(nnz)
	if lena < nnz {
		return fmt.Errorf("%w: capacity %d below nnz %d", ErrStorageExhausted, lena, nnz)
	}

	f.state = stateEmpty
	f.lena = lena
	f.aval = make([]float64, lena)
	f.rowind = make([]int, lena)
	f.colind = make([]int, lena)
	f.lenL, f.lenU, f.lrow = 0, 0, 0
	f.locr = make([]int, m)
	f.lenr = make([]int, m)
	f.rowIDs = make([]int, m)
	f.colIDs = make([]int, n)
	f.rowExt = make([]int, m)
	f.colExt = make([]int, n)
	for i := 0; i < m; i++ {
		f.rowIDs[i], f.rowExt[i] = i, i+1
	}
	for j := 0; j < n; j++ {
		f.colIDs[j], f.colExt[j] = j, j+1
	}
	f.p = make([]int, 0, m)
	f.q = make([]int, 0, n)
	f.posp = make([]int, m)
	f.posq = make([]int, n)
	for i := range f.posp {
		f.posp[i] = -1
	}
	for j := range f.posq {
		f.posq[j] = -1
	}
	f.rank = 0
	f.maxA, f.maxFactor = 0, 0
	f.stats = Stats{}
	f.rscr = make([]float64, m)
	f.cscr = make([]float64, n)

	for _, e := range ents {
		if v := math.Abs(e.Val); v > f.maxA {
			f.maxA = v
		}
	}

	w := newWorker(m, n, ents)
	for w.mAct > 0 && w.cAct > 0 {
		if w.density() >= f.opts.Dens2 && w.mAct > 1 && w.cAct > 1 {
			if err := f.denseFinish(w); err != nil {
				return err
			}
			break
		}
		pi, pj, ok := f.searchPivot(w)
		if !ok {
			break
		}
		if err := f.eliminate(w, pi, pj); err != nil {
			return err
		}
	}

	// Remaining active rows/columns carry no admissible pivot: they fill
	// the permutations past the rank in ascending slot order.
	for i := 0; i < m; i++ {
		if w.rowAct[i] {
			f.posp[i] = len(f.p)
			f.p = append(f.p, i)
		}
	}
	for j := 0; j < n; j++ {
		if w.colAct[j] {
			f.posq[j] = len(f.q)
			f.q = append(f.q, j)
		}
	}

	f.state = stateValid
	return nil
}

// eliminate performs one pivot step at (pi, pj): etas for the pivot
// column, rank-one update of the active block, U-row emission.
func (f *Factorization) eliminate(w *worker, pi, pj int) error {
	small := f.opts.Small

	k := w.valueAt(pj, pi)
	vp := w.cols[pj][k].val

	// Multipliers from the active pivot column; each becomes one eta.
	w.targets = w.targets[:0]
	for _, e := range w.cols[pj] {
		if e.row == pi || math.Abs(e.val) <= small {
			continue
		}
		mu := e.val / vp
		w.mult[e.row] = mu
		w.targets = append(w.targets, e.row)
		if err := f.appendEta(e.row, pi, -mu); err != nil {
			return err
		}
	}

	ucols := []int{pj}
	uvals := []float64{vp}

	// Sweep the pivot row: freeze each element into U and apply the
	// rank-one update (with fill) to its column.
	for _, c := range w.rows[pi] {
		if c == pj || !w.colAct[c] {
			continue
		}
		idx := w.valueAt(c, pi)
		if idx < 0 {
			continue // stale structure reference
		}
		vpc := w.cols[c][idx].val
		last := len(w.cols[c]) - 1
		w.cols[c][idx] = w.cols[c][last]
		w.cols[c] = w.cols[c][:last]
		w.clen[c]--
		w.rlen[pi]--
		w.nAct--
		ucols = append(ucols, c)
		uvals = append(uvals, vpc)

		w.stamp++
		for t := range w.cols[c] {
			e := &w.cols[c][t]
			if mu := w.mult[e.row]; mu != 0 {
				e.val -= mu * vpc
				w.seen[e.row] = w.stamp
			}
		}
		for _, i := range w.targets {
			if w.seen[i] != w.stamp {
				fill := -w.mult[i] * vpc
				if math.Abs(fill) <= small {
					continue
				}
				w.cols[c] = append(w.cols[c], welem{row: i, val: fill})
				w.rows[i] = append(w.rows[i], c)
				w.clen[c]++
				w.rlen[i]++
				w.nAct++
			}
		}
	}

	// Deactivate the pivot column: its remaining elements (pivot plus
	// multiplier rows) leave the active submatrix.
	for _, e := range w.cols[pj] {
		if w.rowAct[e.row] {
			w.rlen[e.row]--
			w.nAct--
		}
	}
	w.cols[pj] = nil
	w.clen[pj] = 0
	w.colAct[pj] = false
	w.cAct--

	w.rowAct[pi] = false
	w.mAct--

	for _, i := range w.targets {
		w.mult[i] = 0
	}

	if err := f.setRow(pi, ucols, uvals); err != nil {
		return err
	}
	f.posp[pi] = len(f.p)
	f.posq[pj] = len(f.q)
	f.p = append(f.p, pi)
	f.q = append(f.q, pj)
	f.rank++
	return nil
}
