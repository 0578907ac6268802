// Package lu: dimension-reducing updates.
//
// Rows and columns are removed in two steps: the external index is
// retired first, so the pivot-settling logic can no longer keep the dying
// line in the basis, then the line is zeroed through the replace-column
// kernel (the factors keep representing a consistent matrix, with fill
// landing in spare arena capacity). The internal slot stays allocated
// forever — old etas may reference it — but carries a numerically zero
// line that no solve or statistic ever sees.

package lu

import "math"

// DeleteColumn removes column j (1-based); later columns shift down by
// one. On a square matrix the rank normally drops by one; on a wide
// matrix the vacated pivot position is refilled from the unpivoted
// columns when one passes tolerance.
func (f *Factorization) DeleteColumn(j int) error {
	if err := f.usable(); err != nil {
		return err
	}
	_, n := f.Dims()
	if j < 1 || j > n {
		return ErrIndexOutOfRange
	}

	f.stats.Updates++
	cs := f.colIDs[j-1]
	f.colExt[cs] = 0
	f.colIDs = append(f.colIDs[:j-1], f.colIDs[j:]...)
	for s, e := range f.colExt {
		if e > j {
			f.colExt[s] = e - 1
		}
	}

	zero := make([]float64, len(f.posp))
	if _, err := f.replaceColumnSlot(cs, zero, true); err != nil {
		f.poison()
		return err
	}
	return nil
}

// DeleteRow removes row i (1-based); later rows shift down by one. The
// row is reconstructed from the factors and zeroed one touched column at
// a time, the row's own pivot column last so the intermediate
// eliminations still have their diagonal.
func (f *Factorization) DeleteRow(i int) error {
	if err := f.usable(); err != nil {
		return err
	}
	m, _ := f.Dims()
	if i < 1 || i > m {
		return ErrIndexOutOfRange
	}

	f.stats.Updates++
	rs := f.rowIDs[i-1]
	row := f.rowOfA(rs)

	f.rowExt[rs] = 0
	f.rowIDs = append(f.rowIDs[:i-1], f.rowIDs[i:]...)
	for s, e := range f.rowExt {
		if e > i {
			f.rowExt[s] = e - 1
		}
	}

	pc := -1
	if f.posp[rs] < f.rank {
		pc = f.q[f.posp[rs]]
	}
	cols := make([]int, 0, len(row))
	for cs, v := range row {
		if cs != pc && f.colExt[cs] != 0 && math.Abs(v) > f.opts.Small {
			cols = append(cols, cs)
		}
	}
	if pc >= 0 {
		// Processing the pivot column forces the retired slot out of the
		// basis even when its matrix entry there is already zero.
		cols = append(cols, pc)
	}

	for _, cs := range cols {
		col := f.colOfA(cs)
		col[rs] = 0
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
