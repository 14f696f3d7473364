package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Tensor pairs a buffer resource with a shape and an identity tag.
//
// A Tensor either shares a view into existing storage (Index, Reshape)
// or exclusively owns freshly allocated storage (Slice, Concat,
// Transpose, Clone and the factories). Owned reports which.
//
// The zero Tensor is the invalid sentinel: it has no shape and no
// resource, and IsValid reports false. Operations return it alongside
// an error instead of aborting; callers must check before use.
type Tensor struct {
	res     Resource
	shape   Shape // nil for the invalid sentinel; Shape{} is a valid scalar
	tag     int64
	owned   bool
	tracked bool
	ctx     *Context
}

// IsValid reports whether the tensor has a shape and backing storage.
// A valid scalar (empty shape) is distinct from the invalid sentinel.
func (t *Tensor) IsValid() bool {
	return t != nil && t.res != nil && t.shape != nil
}

// Shape returns the tensor's shape. The invalid sentinel has a nil
// shape.
func (t *Tensor) Shape() Shape {
	if t == nil {
		return nil
	}
	return t.shape
}

// DType returns the element type of the backing resource. The
// invalid sentinel has no resource and reports the zero DataType.
func (t *Tensor) DType() DataType {
	if !t.IsValid() {
		return DataType(0)
	}
	return t.res.DType()
}

// Device returns the device placement of the backing resource. The
// invalid sentinel has no resource and reports the zero Device.
func (t *Tensor) Device() Device {
	if !t.IsValid() {
		return Device(0)
	}
	return t.res.Device()
}

// Elements returns the total number of elements. The invalid sentinel
// has none.
func (t *Tensor) Elements() int {
	if !t.IsValid() {
		return 0
	}
	return t.shape.Elements()
}

// Tag returns the identity tag assigned at construction. Tags are
// unique per Context and exist only for debug identification.
func (t *Tensor) Tag() int64 {
	return t.tag
}

// Owned reports whether the tensor exclusively owns its storage.
// Views produced by Index and Reshape share storage and report false.
func (t *Tensor) Owned() bool {
	return t.owned
}

// Resource returns the underlying buffer resource.
// Used by collaborator implementations for low-level access.
func (t *Tensor) Resource() Resource {
	return t.res
}

// Track enables debug tracking on the underlying buffer, when the
// resource supports it. Returns the tensor for chaining. Clones do
// not inherit tracking.
func (t *Tensor) Track() *Tensor {
	if tr, ok := t.res.(Tracker); ok {
		tr.SetTracking(true)
	}
	t.tracked = true
	return t
}

// Fill assigns the scalar to every element. This is the write-through
// assignment: every view sharing the underlying storage observes the
// new contents.
func (t *Tensor) Fill(v float64) error {
	if !t.IsValid() {
		return errors.WithStack(ErrNoShape)
	}
	t.res.Fill(v)
	return nil
}

// offset translates a full multidimensional index into a linear
// buffer offset using row-major strides.
func (t *Tensor) offset(indices []int) (int, error) {
	if len(indices) != len(t.shape) {
		return 0, errors.Wrapf(ErrOutOfRange, "expected %d indices for shape %v, got %d", len(t.shape), t.shape, len(indices))
	}
	off := 0
	strides := t.shape.ComputeStrides()
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			return 0, errors.Wrapf(ErrOutOfRange, "index %d out of bounds for dimension %d (size %d)", idx, i, t.shape[i])
		}
		off += idx * strides[i]
	}
	return off, nil
}

// At reads the element at the given full multidimensional index.
// A scalar tensor is read with no indices.
func (t *Tensor) At(indices ...int) (float64, error) {
	if !t.IsValid() {
		return 0, errors.WithStack(ErrNoShape)
	}
	off, err := t.offset(indices)
	if err != nil {
		return 0, err
	}
	return t.res.At(off), nil
}

// Set writes the element at the given full multidimensional index.
func (t *Tensor) Set(v float64, indices ...int) error {
	if !t.IsValid() {
		return errors.WithStack(ErrNoShape)
	}
	off, err := t.offset(indices)
	if err != nil {
		return err
	}
	t.res.Set(off, v)
	return nil
}

// String returns a human-readable representation of the tensor.
func (t *Tensor) String() string {
	if !t.IsValid() {
		return "Tensor(invalid)"
	}
	return fmt.Sprintf("Tensor[%s]%v on %s #%d", t.res.DType(), t.shape, t.res.Device(), t.tag)
}
