// Package lu: dense residual-block elimination.
//
// Once the active submatrix density crosses Dens2, sparse bookkeeping
// costs more than it saves: the remaining block is gathered into a dense
// array and eliminated with complete pivoting (multipliers ≤ 1, well
// inside the LTol2 bound), emitting the same etas and U rows as the
// sparse path.

package lu

import "math"

func (f *Factorization) denseFinish(w *worker) error {
	small := f.opts.Small

	rowsL := make([]int, 0, w.mAct)
	for i := range w.rows {
		if w.rowAct[i] {
			rowsL = append(rowsL, i)
		}
	}
	colsL := make([]int, 0, w.cAct)
	for c := range w.cols {
		if w.colAct[c] {
			colsL = append(colsL, c)
		}
	}
	ra, ca := len(rowsL), len(colsL)

	rpos := make(map[int]int, ra)
	for k, i := range rowsL {
		rpos[i] = k
	}
	d := make([][]float64, ra)
	for k := range d {
		d[k] = make([]float64, ca)
	}
	for jc, c := range colsL {
		for _, e := range w.cols[c] {
			if k, live := rpos[e.row]; live {
				d[k][jc] = e.val
			}
		}
	}

	steps := ra
	if ca < steps {
		steps = ca
	}
	for t := 0; t < steps; t++ {
		// Complete pivoting over the remaining block.
		bi, bj, best := t, t, 0.0
		for i := t; i < ra; i++ {
			for j := t; j < ca; j++ {
				if v := math.Abs(d[i][j]); v > best {
					bi, bj, best = i, j, v
				}
			}
		}
		if best <= small {
			break
		}
		if bi != t {
			d[t], d[bi] = d[bi], d[t]
			rowsL[t], rowsL[bi] = rowsL[bi], rowsL[t]
		}
		if bj != t {
			for i := 0; i < ra; i++ {
				d[i][t], d[i][bj] = d[i][bj], d[i][t]
			}
			colsL[t], colsL[bj] = colsL[bj], colsL[t]
		}

		vp := d[t][t]
		for i := t + 1; i < ra; i++ {
			if math.Abs(d[i][t]) <= small {
				d[i][t] = 0
				continue
			}
			mu := d[i][t] / vp
			if err := f.appendEta(rowsL[i], rowsL[t], -mu); err != nil {
				return err
			}
			for j := t + 1; j < ca; j++ {
				d[i][j] -= mu * d[t][j]
			}
			d[i][t] = 0
		}

		ucols := make([]int, 0, ca-t)
		uvals := make([]float64, 0, ca-t)
		for j := t; j < ca; j++ {
			if math.Abs(d[t][j]) > small {
				ucols = append(ucols, colsL[j])
				uvals = append(uvals, d[t][j])
			}
		}
		if err := f.setRow(rowsL[t], ucols, uvals); err != nil {
			return err
		}
		f.posp[rowsL[t]] = len(f.p)
		f.posq[colsL[t]] = len(f.q)
		f.p = append(f.p, rowsL[t])
		f.q = append(f.q, colsL[t])
		f.rank++
		w.rowAct[rowsL[t]] = false
		w.colAct[colsL[t]] = false
		w.mAct--
		w.cAct--
	}
	return nil
}
