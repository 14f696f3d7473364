// Copyright 2026 The slab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/slab-ml/slab/internal/tensor"
)

// Type aliases for the public API

// Shape represents the dimensions of a tensor in row-major order.
// The empty shape is a scalar with one element.
type Shape = tensor.Shape

// Wild marks a reshape target dimension whose size is inferred from
// the remaining element count.
const Wild = tensor.Wild

// DataType represents the element type of a buffer resource.
type DataType = tensor.DataType

// Element type constants.
const (
	Float16 DataType = tensor.Float16
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
)

// Device represents the placement of a buffer resource.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Tensor pairs a buffer resource with a shape and an identity tag.
// See the package documentation for the view/materialization split.
type Tensor = tensor.Tensor

// Context owns the allocator and tag source used to construct
// tensors.
type Context = tensor.Context

// ContextOption configures a Context.
type ContextOption = tensor.ContextOption

// Tagger issues monotonically increasing identity tags.
type Tagger = tensor.Tagger

// Resource is the buffer collaborator contract.
type Resource = tensor.Resource

// Allocator provides fresh buffer resources.
type Allocator = tensor.Allocator

// Error sentinels. Every failure returned by this package wraps
// exactly one of these.
var (
	ErrIncompatibleShape = tensor.ErrIncompatibleShape
	ErrOutOfRange        = tensor.ErrOutOfRange
	ErrRankMismatch      = tensor.ErrRankMismatch
	ErrAllocationFailure = tensor.ErrAllocationFailure
	ErrNoShape           = tensor.ErrNoShape
)

// NewContext creates a Context on the given allocator.
func NewContext(alloc Allocator, opts ...ContextOption) *Context {
	return tensor.NewContext(alloc, opts...)
}

// WithDType sets the element type used by factories.
func WithDType(dt DataType) ContextOption {
	return tensor.WithDType(dt)
}

// WithDevice sets the device requested from the allocator.
func WithDevice(d Device) ContextOption {
	return tensor.WithDevice(d)
}

// WithTagger sets the identity-tag source.
func WithTagger(g *Tagger) ContextOption {
	return tensor.WithTagger(g)
}

// Concat materializes the concatenation of a and b along dimension
// dim.
func Concat(a, b *Tensor, dim int) (*Tensor, error) {
	return tensor.Concat(a, b, dim)
}
