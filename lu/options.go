// Package lu: caller-set tuning block.
// Tuning inputs live in Options, diagnostics come back through Stats; the
// engine never mutates Options.

package lu

import (
	"fmt"
	"math"
)

// DEFAULTS — single source of truth for zero-value behavior.
const (
	// DefaultMaxCol bounds the Markowitz candidate window: at most this
	// many of the shortest active columns are searched per pivot step.
	DefaultMaxCol = 5

	// DefaultLTol1 bounds multipliers accepted during factorization:
	// a pivot must satisfy |a| ≥ colmax/LTol1.
	DefaultLTol1 = 10.0

	// DefaultLTol2 bounds multipliers in the dense fallback phase
	// (complete pivoting keeps them ≤ 1, well under this bound).
	DefaultLTol2 = 10.0

	// DefaultSmall is the absolute pivot floor (≈ machine eps^0.8);
	// entries at or below it never pivot and are dropped from the factors.
	DefaultSmall = 1e-13

	// DefaultUTol1 is the absolute tolerance for flagging small U
	// diagonals as singular (≈ eps^0.67).
	DefaultUTol1 = 1e-11

	// DefaultUTol2 is the relative counterpart of UTol1, applied against
	// the largest entry of the diagonal's row.
	DefaultUTol2 = 1e-11

	// DefaultDens1 is the active-submatrix density above which the
	// Markowitz window narrows to a single candidate column.
	DefaultDens1 = 0.3

	// DefaultDens2 is the density above which elimination switches to the
	// dense residual-block path.
	DefaultDens2 = 0.5

	// DefaultFillFactor sizes the packed arena as FillFactor×nnz.
	DefaultFillFactor = 3.0

	// DefaultMinCapacity is the arena size floor.
	DefaultMinCapacity = 10000
)

// Options is the caller-set tuning block consulted by every operation.
// The zero value is not valid; start from DefaultOptions.
type Options struct {
	// Pivoting selects TPP (default), TRP, TCP or TSP.
	Pivoting Pivoting

	// MaxCol bounds the Markowitz candidate column window; ≥ 1.
	MaxCol int

	// LTol1 and LTol2 are the stability multipliers; ≥ 1.
	LTol1, LTol2 float64

	// Small is the absolute pivot floor; > 0.
	Small float64

	// UTol1 and UTol2 flag small U diagonals as singular; ≥ 0.
	UTol1, UTol2 float64

	// Dens1 and Dens2 are the density thresholds in [0,1], Dens1 ≤ Dens2.
	Dens1, Dens2 float64

	// FillFactor sizes the arena relative to nnz; ≥ 1.
	FillFactor float64

	// MinCapacity is the arena floor; ≥ 0.
	MinCapacity int

	// Capacity, when > 0, overrides the computed arena size. A Capacity
	// smaller than nnz fails at construction with ErrStorageExhausted.
	Capacity int

	// KeepFactors must be true: the engine retains L and U for solves and
	// updates. It exists so the retention decision is explicit.
	KeepFactors bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Pivoting:    TPP,
		MaxCol:      DefaultMaxCol,
		LTol1:       DefaultLTol1,
		LTol2:       DefaultLTol2,
		Small:       DefaultSmall,
		UTol1:       DefaultUTol1,
		UTol2:       DefaultUTol2,
		Dens1:       DefaultDens1,
		Dens2:       DefaultDens2,
		FillFactor:  DefaultFillFactor,
		MinCapacity: DefaultMinCapacity,
		KeepFactors: true,
	}
}

// validate rejects nonsensical tuning values before any state is built.
func (o *Options) validate() error {
	switch {
	case o.Pivoting < TPP || o.Pivoting > TSP:
		return fmt.Errorf("%w: unknown pivoting strategy %d", ErrBadOptions, int(o.Pivoting))
	case o.MaxCol < 1:
		return fmt.Errorf("%w: MaxCol %d < 1", ErrBadOptions, o.MaxCol)
	case o.LTol1 < 1 || math.IsNaN(o.LTol1) || math.IsInf(o.LTol1, 0):
		return fmt.Errorf("%w: LTol1 %g must be finite and ≥ 1", ErrBadOptions, o.LTol1)
	case o.LTol2 < 1 || math.IsNaN(o.LTol2) || math.IsInf(o.LTol2, 0):
		return fmt.Errorf("%w: LTol2 %g must be finite and ≥ 1", ErrBadOptions, o.LTol2)
	case !(o.Small > 0) || math.IsInf(o.Small, 0):
		return fmt.Errorf("%w: Small %g must be positive and finite", ErrBadOptions, o.Small)
	case o.UTol1 < 0 || math.IsNaN(o.UTol1):
		return fmt.Errorf("%w: UTol1 %g must be ≥ 0", ErrBadOptions, o.UTol1)
	case o.UTol2 < 0 || math.IsNaN(o.UTol2):
		return fmt.Errorf("%w: UTol2 %g must be ≥ 0", ErrBadOptions, o.UTol2)
	case o.Dens1 < 0 || o.Dens1 > 1 || o.Dens2 < 0 || o.Dens2 > 1 || o.Dens1 > o.Dens2:
		return fmt.Errorf("%w: densities must satisfy 0 ≤ Dens1 ≤ Dens2 ≤ 1", ErrBadOptions)
	case o.FillFactor < 1 || math.IsNaN(o.FillFactor) || math.IsInf(o.FillFactor, 0):
		return fmt.Errorf("%w: FillFactor %g must be finite and ≥ 1", ErrBadOptions, o.FillFactor)
	case o.MinCapacity < 0:
		return fmt.Errorf("%w: MinCapacity %d < 0", ErrBadOptions, o.MinCapacity)
	case o.Capacity < 0:
		return fmt.Errorf("%w: Capacity %d < 0", ErrBadOptions, o.Capacity)
	case !o.KeepFactors:
		return ErrKeepFactors
	}
	return nil
}

// arenaSize resolves the packed-storage capacity for nnz input entries.
func (o *Options) arenaSize(nnz int) int {
	if o.Capacity > 0 {
		return o.Capacity
	}
	size := int(o.FillFactor * float64(nnz))
	if size < o.MinCapacity {
		size = o.MinCapacity
	}
	return size
}

// UpdateOptions configures the update family.
type UpdateOptions struct {
	// AllowRankDrop accepts an update whose new diagonal fails the UTol
	// tests, recording a rank drop instead of rejecting the update.
	// When false (default) such an update returns ErrUpdateSingular and
	// poisons the handle.
	AllowRankDrop bool
}
