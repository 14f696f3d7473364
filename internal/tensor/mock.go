package tensor

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Verify that the mock types implement the collaborator contracts.
var (
	_ Allocator = (*MockAllocator)(nil)
	_ Resource  = (*MockResource)(nil)
)

// MockAllocator is a simple float64-backed allocator for testing.
// It implements the resource contract naively for correctness
// verification, and can be told to fail the next allocation.
type MockAllocator struct {
	// FailNext makes the next Allocate call return an error.
	FailNext bool

	// Allocations counts successful Allocate calls.
	Allocations int
}

// NewMockAllocator creates a new MockAllocator.
func NewMockAllocator() *MockAllocator {
	return &MockAllocator{}
}

// Allocate returns a fresh zeroed MockResource.
func (m *MockAllocator) Allocate(n int, dtype DataType, device Device) (Resource, error) {
	if m.FailNext {
		m.FailNext = false
		return nil, errors.Errorf("mock: refusing to allocate %d elements", n)
	}
	m.Allocations++
	return &MockResource{
		data:   make([]float64, n),
		dtype:  dtype,
		device: device,
	}, nil
}

// MockResource is linear float64 storage. Views share the backing
// slice, so write-through behavior matches the real host resource.
type MockResource struct {
	data   []float64
	dtype  DataType
	device Device
}

// Len returns the capacity in elements.
func (r *MockResource) Len() int { return len(r.data) }

// DType returns the element type.
func (r *MockResource) DType() DataType { return r.dtype }

// Device returns the device placement.
func (r *MockResource) Device() Device { return r.device }

// Fill writes v to every element.
func (r *MockResource) Fill(v float64) {
	for i := range r.data {
		r.data[i] = v
	}
}

// View returns a sub-range sharing the backing slice.
func (r *MockResource) View(start, end int) (Resource, error) {
	if start < 0 || start > end || end > len(r.data) {
		return nil, errors.Errorf("mock: view [%d, %d) of %d elements", start, end, len(r.data))
	}
	return &MockResource{data: r.data[start:end], dtype: r.dtype, device: r.device}, nil
}

// ViewAll returns a whole-buffer view sharing the backing slice.
func (r *MockResource) ViewAll() Resource {
	return &MockResource{data: r.data, dtype: r.dtype, device: r.device}
}

// Clone returns independent storage with identical contents.
func (r *MockResource) Clone() (Resource, error) {
	clone := make([]float64, len(r.data))
	copy(clone, r.data)
	return &MockResource{data: clone, dtype: r.dtype, device: r.device}, nil
}

// CopyFrom copies src into r when type, device and extent match.
func (r *MockResource) CopyFrom(src Resource) bool {
	other, ok := src.(*MockResource)
	if !ok || other.dtype != r.dtype || other.device != r.device || len(other.data) != len(r.data) {
		return false
	}
	copy(r.data, other.data)
	return true
}

// FillNormal fills with normal samples.
func (r *MockResource) FillNormal(mean, sigma float64) {
	for i := range r.data {
		r.data[i] = mean + sigma*rand.NormFloat64()
	}
}

// FillUniform fills with uniform samples from [lo, hi).
func (r *MockResource) FillUniform(lo, hi float64) {
	for i := range r.data {
		r.data[i] = lo + (hi-lo)*rand.Float64()
	}
}

// At reads the element at linear offset i.
func (r *MockResource) At(i int) float64 { return r.data[i] }

// Set writes the element at linear offset i.
func (r *MockResource) Set(i int, v float64) { r.data[i] = v }
