package coord

import (
	"math"
	"sort"
)

// Entry is one nonzero of a sparse matrix in coordinate form.
// Row and Col are 1-based, matching the external contract of the lu package.
type Entry struct {
	Row, Col int
	Val      float64
}

// Matrix is an immutable, duplicate-free coordinate-form sparse matrix.
// Entries are kept sorted by (Row, Col); duplicate coordinates supplied to
// New are summed during assembly.
type Matrix struct {
	m, n    int
	entries []Entry
}

// New assembles an m×n sparse matrix from triplets.
//
// Validation happens before any state is built: the shape must be positive,
// every index must lie in [1,m]×[1,n] and every value must be finite.
// Duplicate (Row, Col) pairs are summed; a pair that sums to exactly zero is
// kept as an explicit zero entry rather than dropped, so nnz reflects the
// assembled structure.
func New(m, n int, entries []Entry) (*Matrix, error) {
	if m <= 0 || n <= 0 {
		return nil, ErrBadShape
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	for _, e := range entries {
		if e.Row < 1 || e.Row > m || e.Col < 1 || e.Col > n {
			return nil, ErrIndexOutOfRange
		}
		if math.IsNaN(e.Val) || math.IsInf(e.Val, 0) {
			return nil, ErrNotFinite
		}
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	// Sum runs of equal coordinates in place.
	out := sorted[:0]
	for _, e := range sorted {
		if k := len(out); k > 0 && out[k-1].Row == e.Row && out[k-1].Col == e.Col {
			out[k-1].Val += e.Val
			continue
		}
		out = append(out, e)
	}

	return &Matrix{m: m, n: n, entries: out}, nil
}

// FromDense assembles a Matrix from a dense row-major [][]float64.
// Zero cells are skipped. Ragged or empty input yields ErrBadShape.
func FromDense(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadShape
	}
	n := len(rows[0])
	var entries []Entry
	for i, r := range rows {
		if len(r) != n {
			return nil, ErrBadShape
		}
		for j, v := range r {
			if v != 0 {
				entries = append(entries, Entry{Row: i + 1, Col: j + 1, Val: v})
			}
		}
	}
	if len(entries) == 0 {
		// All-zero dense input still describes a valid (structurally empty)
		// matrix; represent it with one explicit zero so factorization can
		// report rank 0 instead of rejecting the input outright.
		entries = []Entry{{Row: 1, Col: 1, Val: 0}}
	}
	return New(len(rows), n, entries)
}

// Dims returns the matrix shape (m rows, n columns).
func (a *Matrix) Dims() (m, n int) { return a.m, a.n }

// NNZ returns the number of assembled entries (explicit zeros included).
func (a *Matrix) NNZ() int { return len(a.entries) }

// Entries returns a defensive copy of the assembled triplets.
func (a *Matrix) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// At returns the value at 1-based (i, j), zero when no entry exists.
func (a *Matrix) At(i, j int) float64 {
	k := sort.Search(len(a.entries), func(k int) bool {
		e := a.entries[k]
		return e.Row > i || (e.Row == i && e.Col >= j)
	})
	if k < len(a.entries) && a.entries[k].Row == i && a.entries[k].Col == j {
		return a.entries[k].Val
	}
	return 0
}
