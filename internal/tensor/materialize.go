package tensor

import "github.com/pkg/errors"

// Materializing operations: each allocates fresh, exclusively owned
// storage and copies rearranged elements into it. The result never
// aliases the source.

// Transpose materializes the transpose of a rank-2 tensor: element
// (i, j) of the source becomes element (j, i) of a freshly allocated
// [cols rows] tensor.
func (t *Tensor) Transpose() (*Tensor, error) {
	if !t.IsValid() {
		return nil, errors.WithStack(ErrNoShape)
	}
	if t.shape.Rank() != 2 {
		return nil, errors.Wrapf(ErrRankMismatch, "transpose requires rank 2, got shape %v", t.shape)
	}

	rows, cols := t.shape[0], t.shape[1]
	out, err := t.ctx.allocate(Shape{cols, rows}, t.res.DType(), t.res.Device())
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.res.Set(j*rows+i, t.res.At(i*cols+j))
		}
	}
	return out, nil
}

// Slice materializes the sub-tensor covering [start, end) along
// dimension dim. The source is treated as prodBefore x shape[dim] x
// prodAfter contiguous row-major blocks; the kept blocks are copied
// into a fresh tensor whose shape matches the source except
// shape[dim] = end-start.
func (t *Tensor) Slice(start, end, dim int) (*Tensor, error) {
	if !t.IsValid() {
		return nil, errors.WithStack(ErrNoShape)
	}
	if dim < 0 || dim >= t.shape.Rank() {
		return nil, errors.Wrapf(ErrOutOfRange, "slice dimension %d for shape %v", dim, t.shape)
	}
	n := t.shape[dim]
	if start < 0 || start >= end || end > n {
		return nil, errors.Wrapf(ErrOutOfRange, "slice bounds [%d, %d) along dimension %d (size %d)", start, end, dim, n)
	}

	before, after := t.shape.blockProducts(dim)
	width := end - start

	shape := t.shape.Clone()
	shape[dim] = width
	out, err := t.ctx.allocate(shape, t.res.DType(), t.res.Device())
	if err != nil {
		return nil, err
	}

	for i := 0; i < before; i++ {
		for j := 0; j < width; j++ {
			for k := 0; k < after; k++ {
				src := i*n*after + (start+j)*after + k
				dst := i*width*after + j*after + k
				out.res.Set(dst, t.res.At(src))
			}
		}
	}
	return out, nil
}

// Concat materializes the concatenation of a and b along dimension
// dim. The inputs must have equal rank and identical sizes on every
// dimension except dim (ErrRankMismatch and ErrIncompatibleShape
// respectively); the output's size along dim is the sum of the
// inputs'.
func Concat(a, b *Tensor, dim int) (*Tensor, error) {
	if !a.IsValid() || !b.IsValid() {
		return nil, errors.WithStack(ErrNoShape)
	}
	if a.shape.Rank() != b.shape.Rank() {
		return nil, errors.Wrapf(ErrRankMismatch, "concat shapes %v and %v", a.shape, b.shape)
	}
	if dim < 0 || dim >= a.shape.Rank() {
		return nil, errors.Wrapf(ErrOutOfRange, "concat dimension %d for shape %v", dim, a.shape)
	}
	for i := range a.shape {
		if i != dim && a.shape[i] != b.shape[i] {
			return nil, errors.Wrapf(ErrIncompatibleShape, "concat shapes %v and %v differ on dimension %d", a.shape, b.shape, i)
		}
	}

	nA, nB := a.shape[dim], b.shape[dim]
	sum := nA + nB
	before, after := a.shape.blockProducts(dim)

	shape := a.shape.Clone()
	shape[dim] = sum
	out, err := a.ctx.allocate(shape, a.res.DType(), a.res.Device())
	if err != nil {
		return nil, err
	}
	out.res.Fill(0)

	for i := 0; i < before; i++ {
		for j := 0; j < nA; j++ {
			for k := 0; k < after; k++ {
				src := i*nA*after + j*after + k
				dst := i*sum*after + j*after + k
				out.res.Set(dst, a.res.At(src))
			}
		}
		for j := 0; j < nB; j++ {
			for k := 0; k < after; k++ {
				src := i*nB*after + j*after + k
				dst := i*sum*after + (j+nA)*after + k
				out.res.Set(dst, b.res.At(src))
			}
		}
	}
	return out, nil
}

// Clone materializes a deep copy: identical shape and contents in
// independent storage, with a fresh tag. Tracking state does not
// transfer.
func (t *Tensor) Clone() (*Tensor, error) {
	if !t.IsValid() {
		return nil, errors.WithStack(ErrNoShape)
	}
	res, err := t.res.Clone()
	if err != nil {
		return nil, errors.Wrapf(ErrAllocationFailure, "cloning %s: %v", t, err)
	}
	return &Tensor{
		res:   res,
		shape: t.shape.Clone(),
		tag:   t.ctx.tags.Next(),
		owned: true,
		ctx:   t.ctx,
	}, nil
}

// CopyFrom copies src's elements into the receiver. The shapes must
// compare equal; element transfer is delegated to the buffer
// resource, which reports false on type or device mismatch.
func (t *Tensor) CopyFrom(src *Tensor) (bool, error) {
	if !t.IsValid() || !src.IsValid() {
		return false, errors.WithStack(ErrNoShape)
	}
	if !t.shape.Equal(src.shape) {
		return false, errors.Wrapf(ErrIncompatibleShape, "copy from shape %v to %v", src.shape, t.shape)
	}
	return t.res.CopyFrom(src.res), nil
}
