package tensor

import "github.com/pkg/errors"

// View construction: operations that reinterpret existing storage
// under a new shape without moving data. Results share the receiver's
// buffer, so writes through either tensor are visible in both.

// Index selects slot i of the topmost dimension. The result has the
// popped sub-shape and shares the contiguous sub-range
// [i*sub.Elements(), (i+1)*sub.Elements()) of the receiver's storage,
// under a fresh tag.
func (t *Tensor) Index(i int) (*Tensor, error) {
	if !t.IsValid() {
		return nil, errors.WithStack(ErrNoShape)
	}
	if t.shape.Rank() == 0 {
		return nil, errors.Wrap(ErrOutOfRange, "cannot index a scalar tensor")
	}
	if i < 0 || i >= t.shape[0] {
		return nil, errors.Wrapf(ErrOutOfRange, "index %d out of bounds for dimension 0 (size %d)", i, t.shape[0])
	}

	sub := t.shape.Pop()
	start := i * sub.Elements()
	end := start + sub.Elements()
	// Bounds were checked against the shape above, so a refused view
	// is a resource-layer fault, not a caller error.
	res, err := t.res.View(start, end)
	if err != nil {
		return nil, errors.Wrapf(err, "viewing slot %d of %s", i, t)
	}

	return &Tensor{
		res:   res,
		shape: sub,
		tag:   t.ctx.tags.Next(),
		owned: false,
		ctx:   t.ctx,
	}, nil
}

// Reshape reinterprets the tensor under the target shape. At most one
// target dimension may be the Wild marker; its size is inferred from
// the element count. The result is a full-range view of the same
// storage with a fresh tag; no data moves.
func (t *Tensor) Reshape(target Shape) (*Tensor, error) {
	if !t.IsValid() {
		return nil, errors.WithStack(ErrNoShape)
	}
	resolved, err := t.shape.Reshape(target)
	if err != nil {
		return nil, err
	}

	return &Tensor{
		res:   t.res.ViewAll(),
		shape: resolved,
		tag:   t.ctx.tags.Next(),
		owned: false,
		ctx:   t.ctx,
	}, nil
}

// ReshapeDims is Reshape with variadic dimension sizes.
func (t *Tensor) ReshapeDims(dims ...int) (*Tensor, error) {
	return t.Reshape(Shape(dims))
}
