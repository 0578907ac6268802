// Package lu: domain enums and diagnostic types.
package lu

// Pivoting selects the threshold pivot-acceptance strategy used by
// Factorize. All four strategies share the Markowitz fill-minimizing
// search; they differ in which magnitude test a candidate must pass.
//
//   - TPP — threshold partial pivoting: |a| ≥ colmax/LTol1. Cheapest,
//     default, matches the classic sparse LU trade-off.
//   - TRP — threshold rook pivoting: the TPP test plus the symmetric test
//     against the candidate's row maximum. Tighter growth bound.
//   - TCP — threshold complete pivoting: |a| ≥ (global active max)/LTol1.
//     Tightest growth bound, most expensive search.
//   - TSP — threshold symmetric pivoting: candidates restricted to the
//     diagonal (square matrices); falls back to the TPP choice when no
//     admissible diagonal exists, so elimination always progresses.
type Pivoting int

const (
	// TPP is threshold partial pivoting (default).
	TPP Pivoting = iota
	// TRP is threshold rook pivoting.
	TRP
	// TCP is threshold complete pivoting.
	TCP
	// TSP is threshold symmetric (diagonal) pivoting.
	TSP
)

// String implements fmt.Stringer for diagnostics.
func (p Pivoting) String() string {
	switch p {
	case TPP:
		return "TPP"
	case TRP:
		return "TRP"
	case TCP:
		return "TCP"
	case TSP:
		return "TSP"
	default:
		return "unknown"
	}
}

// SolveMode selects one of the six triangular/full solves.
//
// Modes SolveL..SolveUT operate in factor-internal order and are meant for
// advanced callers who manage permutations themselves; SolveA and SolveAT
// accept and return vectors in the natural variable order.
type SolveMode int

const (
	// SolveL solves L·v = b (b of length m, result of length m).
	SolveL SolveMode = iota + 1
	// SolveLT solves Lᵀ·v = b (b of length m, result of length m).
	SolveLT
	// SolveU solves U·w = v (v of length m, result of length n).
	SolveU
	// SolveUT solves Uᵀ·w = v (v of length n, result of length m).
	SolveUT
	// SolveA solves A·x = b (b of length m, result of length n).
	SolveA
	// SolveAT solves Aᵀ·x = b (b of length n, result of length m).
	SolveAT
)

// MulMode selects the factor-side matrix–vector product.
type MulMode int

const (
	// MulA computes w = A·x (x of length n, result of length m).
	MulA MulMode = iota + 1
	// MulAT computes w = Aᵀ·x (x of length m, result of length n).
	MulAT
)

// UpdateResult carries the diagnostic scalars of an update operation.
type UpdateResult struct {
	// Diag is the new diagonal element of U produced by the update
	// (zero when the updated line did not obtain a pivot).
	Diag float64
	// VNorm is the 2-norm of the transformed column L⁻¹v (or of the
	// eliminated row for row-side operations).
	VNorm float64
}

// Stats is a read-only snapshot of the factorization diagnostics.
// Tuning inputs live in Options; Stats fields are outputs only.
type Stats struct {
	// Entries is the total nonzero count held in the factors (L plus U).
	Entries int
	// LEntries and UEntries split Entries by factor.
	LEntries, UEntries int
	// Rank is the estimated numerical rank: pivots whose U diagonal passes
	// the UTol1/UTol2 flagging tests.
	Rank int
	// Singularities counts flagged-singular pivot positions,
	// min(m,n) − Rank.
	Singularities int
	// Growth is max|factor entry| / max|original entry| (1 for an all-zero
	// matrix). Large values indicate instability.
	Growth float64
	// Compactions counts arena compaction passes since factorization.
	Compactions int
	// Updates counts update operations applied since factorization.
	Updates int
	// LastSolveSingular reports that the most recent solve met a
	// rank-deficient or sub-tolerance position and zeroed the component.
	LastSolveSingular bool
}
