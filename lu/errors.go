// Package lu: sentinel errors.
// Every operation reports failures through these sentinels, wrapped with
// context where useful; match them with errors.Is. No caller input causes
// a panic.

package lu

import "errors"

// Checks run in a fixed order: options, then handle state, then
// dimensions/indices/mode, then storage, then numerics.

var (
	// ErrBadOptions is returned when an Options field is out of its
	// documented domain (e.g. negative tolerance, MaxCol < 1).
	ErrBadOptions = errors.New("lu: invalid options")

	// ErrKeepFactors marks Options.KeepFactors=false: this engine exists to
	// retain factors for solves and updates, discarding them is unsupported.
	ErrKeepFactors = errors.New("lu: KeepFactors=false is not supported")

	// ErrNotFactorized indicates the handle has no valid factorization yet
	// (construction failed, or Refactorize has not succeeded).
	ErrNotFactorized = errors.New("lu: matrix is not factorized")

	// ErrNeedRefactorize indicates a previous update failed and the factors
	// must be rebuilt before any further solve/multiply/update.
	ErrNeedRefactorize = errors.New("lu: factors invalidated by a failed update, refactorize")

	// ErrDimensionMismatch indicates a vector length incompatible with the
	// current matrix shape.
	ErrDimensionMismatch = errors.New("lu: dimension mismatch")

	// ErrIndexOutOfRange indicates a row/column index outside the current
	// 1-based bounds.
	ErrIndexOutOfRange = errors.New("lu: index out of range")

	// ErrBadMode indicates an unknown solve or multiply mode selector.
	ErrBadMode = errors.New("lu: unknown mode")

	// ErrNotFinite signals a NaN or ±Inf in a supplied vector or scalar.
	ErrNotFinite = errors.New("lu: value is NaN or Inf")

	// ErrStorageExhausted is returned when the packed arena cannot hold the
	// factors plus fill-in. Recover by refactorizing with a larger Capacity.
	ErrStorageExhausted = errors.New("lu: packed storage exhausted")

	// ErrSingular is returned when an operation requires a pivot that is
	// exactly zero (spectrum end of the singularity taxonomy; tolerated
	// small pivots are reported through Stats instead).
	ErrSingular = errors.New("lu: singular matrix")

	// ErrUpdateSingular is returned when an update would leave a pivot
	// non-invertible within tolerance. The handle is poisoned.
	ErrUpdateSingular = errors.New("lu: update makes pivot singular")
)
