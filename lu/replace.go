package lu

// ReplaceColumn replaces column j (1-based) of A with v (length m) and
// repairs the factors in place via the Forrest-Tomlin kernel. The result
// carries the new pivot diagonal for the column (0 when it is dependent)
// and ‖L⁻¹v‖₂, whose growth signals that a refactorize is due.
//
// With AllowRankDrop unset a replacement that would lower the rank fails
// with ErrUpdateSingular and poisons the handle. v is never modified.
func (f *Factorization) ReplaceColumn(j int, v []float64, opts *UpdateOptions) (UpdateResult, error) {
	if err := f.usable(); err != nil {
		return UpdateResult{}, err
	}
	m, n := f.Dims()
	if j < 1 || j > n {
		return UpdateResult{}, ErrIndexOutOfRange
	}
	if len(v) != m {
		return UpdateResult{}, ErrDimensionMismatch
	}
	if err := checkFinite(v); err != nil {
		return UpdateResult{}, err
	}
	allow := false
	if opts != nil {
		allow = opts.AllowRankDrop
	}

	f.stats.Updates++
	res, err := f.replaceColumnSlot(f.colIDs[j-1], f.scatterRows(v), allow)
	if err != nil {
		f.poison()
		return res, err
	}
	return res, nil
}

// ReplaceRow replaces row i (1-based) of A, composing the rank-one change
// A += e_i·(new−old)ᵀ out of one column replacement per changed entry.
// Both the outgoing and incoming rows are required because the factors do
// not retain A itself; oldRow must be the row as currently represented.
//
// With AllowRankDrop unset a net rank decrease fails with
// ErrUpdateSingular and poisons the handle.
func (f *Factorization) ReplaceRow(i int, oldRow, newRow []float64, opts *UpdateOptions) error {
	if err := f.usable(); err != nil {
		return err
	}
	m, n := f.Dims()
	if i < 1 || i > m {
		return ErrIndexOutOfRange
	}
	if len(oldRow) != n || len(newRow) != n {
		return ErrDimensionMismatch
	}
	if err := checkFinite(oldRow); err != nil {
		return err
	}
	if err := checkFinite(newRow); err != nil {
		return err
	}
	allow := false
	if opts != nil {
		allow = opts.AllowRankDrop
	}

	f.stats.Updates++
	rs := f.rowIDs[i-1]
	rank0 := f.rank
	for j := 0; j < n; j++ {
		delta := newRow[j] - oldRow[j]
		if delta == 0 {
			continue
		}
		cs := f.colIDs[j]
		col := f.colOfA(cs)
		col[rs] += delta
		if _, err := f.replaceColumnSlot(cs, col, true); err != nil {
			f.poison()
			return err
		}
	}
	if err := f.recoverRank(); err != nil {
		f.poison()
		return err
	}
	if f.rank < rank0 && !allow {
		f.poison()
		return ErrUpdateSingular
	}
	return nil
}
