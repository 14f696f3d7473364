package host

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/x448/float16"
	"gonum.org/v1/gonum/stat/distuv"
	"k8s.io/klog/v2"

	"github.com/slab-ml/slab/internal/tensor"
)

// sharedBuf is the reference-counted storage shared by every view of
// one allocation. The id exists only for debug tracking.
type sharedBuf struct {
	data     []byte
	refs     atomic.Int32
	tracking atomic.Bool
	id       string
}

func (sb *sharedBuf) addRef() {
	sb.refs.Add(1)
}

func (sb *sharedBuf) release() {
	if sb.refs.Add(-1) == 0 {
		if sb.tracking.Load() {
			klog.Infof("host: released buffer %s", sb.id)
		}
		sb.data = nil
	}
}

// Buffer is a view of [off, off+n) elements of a shared host
// allocation. Views created by View share storage with their parent;
// Clone produces independent storage.
type Buffer struct {
	shared *sharedBuf
	alloc  *Allocator
	off    int // element offset into shared.data
	n      int // element count
	dtype  tensor.DataType
}

// Len returns the addressable capacity in elements.
func (b *Buffer) Len() int { return b.n }

// DType returns the element type.
func (b *Buffer) DType() tensor.DataType { return b.dtype }

// Device returns the placement of the storage.
func (b *Buffer) Device() tensor.Device { return tensor.CPU }

// ID returns the debug identifier of the underlying allocation.
// Views of the same allocation share an ID.
func (b *Buffer) ID() string { return b.shared.id }

// bytes returns the byte range covered by this view.
func (b *Buffer) bytes() []byte {
	size := b.dtype.Size()
	return b.shared.data[b.off*size : (b.off+b.n)*size]
}

// Typed reinterpretations of the view's bytes. Zero-copy, in the
// manner of unsafe.Slice: the returned slices alias the shared
// storage.

func (b *Buffer) u16() []uint16 {
	if b.n == 0 {
		return nil
	}
	data := b.bytes()
	return unsafe.Slice((*uint16)(unsafe.Pointer(&data[0])), b.n)
}

func (b *Buffer) f32() []float32 {
	if b.n == 0 {
		return nil
	}
	data := b.bytes()
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), b.n)
}

func (b *Buffer) f64() []float64 {
	if b.n == 0 {
		return nil
	}
	data := b.bytes()
	return unsafe.Slice((*float64)(unsafe.Pointer(&data[0])), b.n)
}

func (b *Buffer) i32() []int32 {
	if b.n == 0 {
		return nil
	}
	data := b.bytes()
	return unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), b.n)
}

func (b *Buffer) i64() []int64 {
	if b.n == 0 {
		return nil
	}
	data := b.bytes()
	return unsafe.Slice((*int64)(unsafe.Pointer(&data[0])), b.n)
}

// At reads the element at linear offset i. Out-of-range access is an
// internal invariant violation: the tensor layer bounds-checks before
// delegating, so this panics rather than returning an error.
func (b *Buffer) At(i int) float64 {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("host: element %d out of range [0, %d)", i, b.n))
	}
	switch b.dtype {
	case tensor.Float16:
		return float64(float16.Frombits(b.u16()[i]).Float32())
	case tensor.Float32:
		return float64(b.f32()[i])
	case tensor.Float64:
		return b.f64()[i]
	case tensor.Int32:
		return float64(b.i32()[i])
	case tensor.Int64:
		return float64(b.i64()[i])
	case tensor.Uint8:
		return float64(b.bytes()[i])
	default:
		panic(fmt.Sprintf("host: unknown dtype %d", b.dtype))
	}
}

// Set writes the element at linear offset i, converting to the
// buffer's element type.
func (b *Buffer) Set(i int, v float64) {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("host: element %d out of range [0, %d)", i, b.n))
	}
	switch b.dtype {
	case tensor.Float16:
		b.u16()[i] = float16.Fromfloat32(float32(v)).Bits()
	case tensor.Float32:
		b.f32()[i] = float32(v)
	case tensor.Float64:
		b.f64()[i] = v
	case tensor.Int32:
		b.i32()[i] = int32(v)
	case tensor.Int64:
		b.i64()[i] = int64(v)
	case tensor.Uint8:
		b.bytes()[i] = uint8(v)
	default:
		panic(fmt.Sprintf("host: unknown dtype %d", b.dtype))
	}
}

// Fill writes the scalar to every element of the view. Sharers of the
// covered range observe the new contents.
func (b *Buffer) Fill(v float64) {
	for i := 0; i < b.n; i++ {
		b.Set(i, v)
	}
}

// View returns a zero-copy sub-range [start, end) sharing this
// buffer's storage.
func (b *Buffer) View(start, end int) (tensor.Resource, error) {
	if start < 0 || start > end || end > b.n {
		return nil, errors.Errorf("view [%d, %d) of %d elements", start, end, b.n)
	}
	b.shared.addRef()
	if b.shared.tracking.Load() {
		klog.Infof("host: view [%d, %d) of buffer %s", start, end, b.shared.id)
	}
	return &Buffer{
		shared: b.shared,
		alloc:  b.alloc,
		off:    b.off + start,
		n:      end - start,
		dtype:  b.dtype,
	}, nil
}

// ViewAll returns a zero-copy view of the whole buffer.
func (b *Buffer) ViewAll() tensor.Resource {
	v, _ := b.View(0, b.n)
	return v
}

// Clone returns independent storage with identical contents. The
// clone gets a fresh id and does not inherit tracking.
func (b *Buffer) Clone() (tensor.Resource, error) {
	clone, err := b.alloc.Allocate(b.n, b.dtype, tensor.CPU)
	if err != nil {
		return nil, err
	}
	copy(clone.(*Buffer).bytes(), b.bytes())
	return clone, nil
}

// CopyFrom copies src's elements into this buffer. It reports false
// when src is not host storage of the same type and extent.
func (b *Buffer) CopyFrom(src tensor.Resource) bool {
	other, ok := src.(*Buffer)
	if !ok || other.dtype != b.dtype || other.n != b.n {
		return false
	}
	copy(b.bytes(), other.bytes())
	return true
}

// FillNormal fills every element with an independent sample from the
// normal distribution N(mean, sigma^2).
func (b *Buffer) FillNormal(mean, sigma float64) {
	dist := distuv.Normal{Mu: mean, Sigma: sigma, Src: b.alloc.src}
	for i := 0; i < b.n; i++ {
		b.Set(i, dist.Rand())
	}
}

// FillUniform fills every element with an independent sample from the
// uniform distribution over [lo, hi).
func (b *Buffer) FillUniform(lo, hi float64) {
	dist := distuv.Uniform{Min: lo, Max: hi, Src: b.alloc.src}
	for i := 0; i < b.n; i++ {
		b.Set(i, dist.Rand())
	}
}

// SetTracking toggles debug tracking for the underlying allocation.
// Tracking applies to the allocation, so every view sees the change.
func (b *Buffer) SetTracking(on bool) {
	b.shared.tracking.Store(on)
	if on {
		klog.Infof("host: tracking on for buffer %s", b.shared.id)
	}
}

// Release decrements the allocation's reference count, dropping the
// storage when it reaches zero. Callers that never call Release leave
// reclamation to the garbage collector.
func (b *Buffer) Release() {
	b.shared.release()
}
