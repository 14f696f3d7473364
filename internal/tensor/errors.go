package tensor

import "github.com/pkg/errors"

// Error taxonomy for all public operations. Every failure returned by
// this package wraps exactly one of these sentinels, so callers can
// dispatch with errors.Is.
var (
	// ErrIncompatibleShape indicates a reshape request that cannot be
	// satisfied: wrong element count, multiple wildcards, or a
	// non-divisible remainder.
	ErrIncompatibleShape = errors.New("incompatible shape")

	// ErrOutOfRange indicates an index, slice bound, or dimension
	// argument outside valid bounds.
	ErrOutOfRange = errors.New("out of range")

	// ErrRankMismatch indicates an operation that requires a specific
	// or matching rank (transpose, concat) and it is absent.
	ErrRankMismatch = errors.New("rank mismatch")

	// ErrAllocationFailure indicates the buffer resource could not
	// provide storage.
	ErrAllocationFailure = errors.New("allocation failure")

	// ErrNoShape indicates an operation on the invalid (shapeless)
	// tensor sentinel.
	ErrNoShape = errors.New("tensor has no shape")
)
