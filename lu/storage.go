// Package lu: packed-arena bookkeeping.
//
// The arena is the classic flat sparse-factor store: one value array and
// two index arrays of fixed capacity lena. U rows occupy the front; each
// row owns a contiguous span (locr/lenr) and is relocated to the free
// region when it grows, leaving garbage behind. The L eta file occupies
// the back and only ever grows. compactU slides live U rows together when
// the two regions would meet; if they still meet, the operation fails with
// ErrStorageExhausted — capacity is a hard limit, never silently grown.

package lu

import "sort"

// ltop is the first element of the L region.
func (f *Factorization) ltop() int { return f.lena - f.lenL }

// ensureU guarantees n free elements at lrow, compacting once if needed.
func (f *Factorization) ensureU(n int) error {
	if f.lrow+n <= f.ltop() {
		return nil
	}
	f.compactU()
	if f.lrow+n <= f.ltop() {
		return nil
	}
	return ErrStorageExhausted
}

// compactU reclaims garbage between U spans, relocating live rows in
// ascending span order and rewriting locr atomically per row.
func (f *Factorization) compactU() {
	slots := make([]int, 0, len(f.locr))
	for rs := range f.locr {
		if f.lenr[rs] > 0 {
			slots = append(slots, rs)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return f.locr[slots[i]] < f.locr[slots[j]] })

	w := 0
	for _, rs := range slots {
		lo, ln := f.locr[rs], f.lenr[rs]
		if lo != w {
			copy(f.aval[w:w+ln], f.aval[lo:lo+ln])
			copy(f.colind[w:w+ln], f.colind[lo:lo+ln])
		}
		f.locr[rs] = w
		w += ln
	}
	f.lrow = w
	f.stats.Compactions++
}

// appendEta appends one elementary transformation to the L file:
// during an L-solve the replay executes v[target] += val·v[source].
func (f *Factorization) appendEta(target, source int, val float64) error {
	idx := f.ltop() - 1
	if idx < f.lrow {
		f.compactU()
		idx = f.ltop() - 1
		if idx < f.lrow {
			return ErrStorageExhausted
		}
	}
	f.aval[idx] = val
	f.rowind[idx] = target
	f.colind[idx] = source
	f.lenL++
	f.noteFactor(val)
	return nil
}

// setRow replaces the whole U row of slot rs with the given entries.
// The old span becomes garbage; an in-place overwrite is used when the new
// content fits the existing span.
func (f *Factorization) setRow(rs int, cols []int, vals []float64) error {
	n := len(cols)
	f.lenU += n - f.lenr[rs]
	if n <= f.lenr[rs] {
		lo := f.locr[rs]
		for k := 0; k < n; k++ {
			f.aval[lo+k] = vals[k]
			f.colind[lo+k] = cols[k]
			f.noteFactor(vals[k])
		}
		f.lenr[rs] = n
		return nil
	}
	if err := f.ensureU(n); err != nil {
		f.lenU -= n - f.lenr[rs]
		return err
	}
	lo := f.lrow
	for k := 0; k < n; k++ {
		f.aval[lo+k] = vals[k]
		f.colind[lo+k] = cols[k]
		f.noteFactor(vals[k])
	}
	f.locr[rs] = lo
	f.lenr[rs] = n
	f.lrow += n
	return nil
}

// appendToRow adds one element to the U row of slot rs, relocating the row
// when its span cannot grow in place.
func (f *Factorization) appendToRow(rs, cs int, val float64) error {
	lo, ln := f.locr[rs], f.lenr[rs]
	if ln == 0 {
		if err := f.ensureU(1); err != nil {
			return err
		}
		f.locr[rs] = f.lrow
		f.aval[f.lrow] = val
		f.colind[f.lrow] = cs
		f.lenr[rs] = 1
		f.lrow++
		f.lenU++
		f.noteFactor(val)
		return nil
	}
	// Grow in place when the row sits at the frontier.
	if lo+ln == f.lrow && f.lrow < f.ltop() {
		f.aval[f.lrow] = val
		f.colind[f.lrow] = cs
		f.lenr[rs]++
		f.lrow++
		f.lenU++
		f.noteFactor(val)
		return nil
	}
	// Relocate.
	if err := f.ensureU(ln + 1); err != nil {
		return err
	}
	lo = f.locr[rs] // compaction may have moved the span
	copy(f.aval[f.lrow:f.lrow+ln], f.aval[lo:lo+ln])
	copy(f.colind[f.lrow:f.lrow+ln], f.colind[lo:lo+ln])
	f.aval[f.lrow+ln] = val
	f.colind[f.lrow+ln] = cs
	f.locr[rs] = f.lrow
	f.lenr[rs] = ln + 1
	f.lrow += ln + 1
	f.lenU++
	f.noteFactor(val)
	return nil
}

// removeFromRow deletes the element (rs, cs) if present. Order within a
// span is not meaningful, so the last element is swapped in.
func (f *Factorization) removeFromRow(rs, cs int) bool {
	lo, ln := f.locr[rs], f.lenr[rs]
	for l := lo; l < lo+ln; l++ {
		if f.colind[l] == cs {
			last := lo + ln - 1
			f.aval[l] = f.aval[last]
			f.colind[l] = f.colind[last]
			f.lenr[rs] = ln - 1
			f.lenU--
			return true
		}
	}
	return false
}

// dropColumn removes every U element in column slot cs across all rows.
func (f *Factorization) dropColumn(cs int) {
	for rs := range f.lenr {
		if f.lenr[rs] > 0 {
			f.removeFromRow(rs, cs)
		}
	}
}
