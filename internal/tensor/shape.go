package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Shape represents the dimensions of a tensor in row-major
// (outer-to-inner) order. The empty shape is a scalar with one
// logical element.
type Shape []int

// Wild marks a reshape target dimension whose size is inferred from
// the remaining element count.
const Wild = -1

// Elements returns the total number of elements described by the
// shape. The empty product is 1, so a scalar has one element.
func (s Shape) Elements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Validate checks that every dimension is at least 1. Zero-sized
// dimensions are not a supported construct: the reshape remainder
// scan divides by dimension sizes, so they are rejected up front.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 1 {
			return errors.Wrapf(ErrIncompatibleShape, "dimension %d is %d (must be >= 1)", i, dim)
		}
	}
	return nil
}

// Dim returns the size of dimension i. Negative indices wrap from the
// end (-1 is the last dimension). An index that is still out of
// bounds after wrapping is an error, not a silent fallback.
func (s Shape) Dim(i int) (int, error) {
	j := i
	if j < 0 {
		j += len(s)
	}
	if j < 0 || j >= len(s) {
		return 0, errors.Wrapf(ErrOutOfRange, "dimension %d of shape %v", i, s)
	}
	return s[j], nil
}

// Pop returns the sub-shape obtained by dropping the outermost
// dimension. Popping a scalar yields the scalar shape.
func (s Shape) Pop() Shape {
	if len(s) < 1 {
		return Shape{}
	}
	return s[1:].Clone()
}

// Reshape resolves a reshape request against this shape's element
// count. At most one target entry may be the Wild marker; its size is
// inferred from the remaining element count. Every explicit entry must
// divide the running remainder evenly, and with no wildcard the
// remainder must come out to exactly 1.
func (s Shape) Reshape(target Shape) (Shape, error) {
	resolved := target.Clone()

	wild := -1
	remainder := s.Elements()

	for i, dim := range target {
		if dim == Wild {
			if wild != -1 {
				return nil, errors.Wrapf(ErrIncompatibleShape, "multiple wildcard dimensions in %v", target)
			}
			wild = i
			continue
		}
		if dim < 1 {
			return nil, errors.Wrapf(ErrIncompatibleShape, "dimension %d is %d (must be >= 1)", i, dim)
		}
		if remainder%dim != 0 {
			return nil, errors.Wrapf(ErrIncompatibleShape, "cannot reshape %v (%d elements) to %v", s, s.Elements(), target)
		}
		remainder /= dim
	}

	if wild != -1 {
		resolved[wild] = remainder
	} else if remainder != 1 {
		return nil, errors.Wrapf(ErrIncompatibleShape, "cannot reshape %v (%d elements) to %v", s, s.Elements(), target)
	}

	return resolved, nil
}

// Equal checks if two shapes have the same rank and per-dimension
// sizes.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// blockProducts splits the shape around dim into the product of sizes
// before it and after it. Slice and concat treat the buffer as
// prodBefore x s[dim] x prodAfter contiguous blocks.
func (s Shape) blockProducts(dim int) (before, after int) {
	before, after = 1, 1
	for i, d := range s {
		if i < dim {
			before *= d
		} else if i > dim {
			after *= d
		}
	}
	return before, after
}

// String renders the shape in the []-bracketed form used by error
// messages and logs.
func (s Shape) String() string {
	return fmt.Sprintf("%v", []int(s))
}
