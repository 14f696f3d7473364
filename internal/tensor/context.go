package tensor

import (
	"math"

	"github.com/pkg/errors"
)

// Context owns the capabilities needed to construct tensors: the
// allocator that provides buffer resources and the tagger that issues
// identity tags. Factories and materializing operations allocate
// through the context of the tensor they derive from, so a test can
// inject its own allocator and observe deterministic tags.
type Context struct {
	alloc  Allocator
	tags   *Tagger
	dtype  DataType
	device Device
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithDType sets the element type used by factories. Default is
// Float32.
func WithDType(dt DataType) ContextOption {
	return func(c *Context) { c.dtype = dt }
}

// WithDevice sets the device requested from the allocator. Default is
// CPU.
func WithDevice(d Device) ContextOption {
	return func(c *Context) { c.device = d }
}

// WithTagger sets the identity-tag source. Default is a fresh Tagger.
func WithTagger(g *Tagger) ContextOption {
	return func(c *Context) { c.tags = g }
}

// NewContext creates a Context on the given allocator.
func NewContext(alloc Allocator, opts ...ContextOption) *Context {
	c := &Context{
		alloc:  alloc,
		tags:   &Tagger{},
		dtype:  Float32,
		device: CPU,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DType returns the element type used by factories.
func (c *Context) DType() DataType { return c.dtype }

// Device returns the device requested from the allocator.
func (c *Context) Device() Device { return c.device }

// allocate obtains storage for the shape and wraps it in an owned
// tensor with a fresh tag.
func (c *Context) allocate(shape Shape, dtype DataType, device Device) (*Tensor, error) {
	if shape == nil {
		shape = Shape{}
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	res, err := c.alloc.Allocate(shape.Elements(), dtype, device)
	if err != nil {
		return nil, errors.Wrapf(ErrAllocationFailure, "allocating %d %s elements on %s: %v", shape.Elements(), dtype, device, err)
	}

	return &Tensor{
		res:   res,
		shape: shape.Clone(),
		tag:   c.tags.Next(),
		owned: true,
		ctx:   c,
	}, nil
}

// Blank creates a tensor of the given shape without initializing the
// contents.
func (c *Context) Blank(shape Shape) (*Tensor, error) {
	return c.allocate(shape, c.dtype, c.device)
}

// BlankLike creates an uninitialized tensor with the prototype's
// shape, element type and device.
func (c *Context) BlankLike(t *Tensor) (*Tensor, error) {
	if !t.IsValid() {
		return nil, errors.WithStack(ErrNoShape)
	}
	return c.allocate(t.shape, t.res.DType(), t.res.Device())
}

// Zeros creates a tensor filled with zeros.
func (c *Context) Zeros(shape Shape) (*Tensor, error) {
	return c.Full(shape, 0)
}

// ZerosLike creates a zero tensor with the prototype's shape, element
// type and device.
func (c *Context) ZerosLike(t *Tensor) (*Tensor, error) {
	out, err := c.BlankLike(t)
	if err != nil {
		return nil, err
	}
	out.res.Fill(0)
	return out, nil
}

// Ones creates a tensor filled with ones.
func (c *Context) Ones(shape Shape) (*Tensor, error) {
	return c.Full(shape, 1)
}

// OnesLike creates a one-filled tensor with the prototype's shape,
// element type and device.
func (c *Context) OnesLike(t *Tensor) (*Tensor, error) {
	out, err := c.BlankLike(t)
	if err != nil {
		return nil, err
	}
	out.res.Fill(1)
	return out, nil
}

// Full creates a tensor filled with a specific value.
func (c *Context) Full(shape Shape, v float64) (*Tensor, error) {
	t, err := c.Blank(shape)
	if err != nil {
		return nil, err
	}
	t.res.Fill(v)
	return t, nil
}

// Identity creates an n x n tensor with ones on the diagonal and
// zeros elsewhere.
func (c *Context) Identity(n int) (*Tensor, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrOutOfRange, "identity size %d (must be >= 1)", n)
	}
	t, err := c.Zeros(Shape{n, n})
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		t.res.Set(i*n+i, 1)
	}
	return t, nil
}

// Xavier creates an in x out tensor with elements sampled
// independently from a zero-mean normal distribution with standard
// deviation sqrt(1/(in+out)).
func (c *Context) Xavier(in, out int) (*Tensor, error) {
	if in < 1 || out < 1 {
		return nil, errors.Wrapf(ErrOutOfRange, "xavier dimensions %dx%d (must be >= 1)", in, out)
	}
	t, err := c.Blank(Shape{in, out})
	if err != nil {
		return nil, err
	}
	t.res.FillNormal(0, math.Sqrt(1.0/float64(in+out)))
	return t, nil
}

// Randn creates a tensor with elements sampled independently and
// uniformly from [0, 1).
func (c *Context) Randn(shape Shape) (*Tensor, error) {
	t, err := c.Blank(shape)
	if err != nil {
		return nil, err
	}
	t.res.FillUniform(0, 1)
	return t, nil
}

// FromSlice creates a tensor from a Go slice. The data is copied into
// the tensor's storage in row-major order.
func (c *Context) FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if shape == nil {
		shape = Shape{}
	}
	if shape.Elements() != len(data) {
		return nil, errors.Wrapf(ErrIncompatibleShape, "shape %v requires %d elements, but got %d", shape, shape.Elements(), len(data))
	}
	t, err := c.Blank(shape)
	if err != nil {
		return nil, err
	}
	for i, v := range data {
		t.res.Set(i, v)
	}
	return t, nil
}
