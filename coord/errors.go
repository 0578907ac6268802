// Package coord: sentinel error set.
// All constructors MUST return these sentinels and tests MUST check them
// via errors.Is. No user-triggered condition panics.

package coord

import "errors"

var (
	// ErrBadShape is returned when the requested shape is invalid (m<=0 or n<=0).
	ErrBadShape = errors.New("coord: invalid shape")

	// ErrIndexOutOfRange indicates a triplet index outside [1,m]×[1,n].
	ErrIndexOutOfRange = errors.New("coord: index out of range")

	// ErrNotFinite signals a NaN or ±Inf value in a triplet.
	ErrNotFinite = errors.New("coord: value is NaN or Inf")

	// ErrNoEntries is returned when an empty triplet list is supplied.
	ErrNoEntries = errors.New("coord: no entries")
)
