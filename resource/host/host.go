// Copyright 2026 The slab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package host provides the host-memory buffer allocator for slab
// tensors.
package host

import (
	internalhost "github.com/slab-ml/slab/internal/resource/host"
	"github.com/slab-ml/slab/tensor"
)

// Allocator provides reference-counted host-memory buffers.
type Allocator = internalhost.Allocator

// Buffer is a view of a shared host allocation.
type Buffer = internalhost.Buffer

// Option configures an Allocator.
type Option = internalhost.Option

// Compile-time check that Allocator satisfies the collaborator
// contract.
var _ tensor.Allocator = (*Allocator)(nil)

// New creates a host-memory allocator.
//
// Example:
//
//	import (
//	    "github.com/slab-ml/slab/resource/host"
//	    "github.com/slab-ml/slab/tensor"
//	)
//
//	func main() {
//	    ctx := tensor.NewContext(host.New())
//	    x, err := ctx.Zeros(tensor.Shape{2, 3})
//	    ...
//	}
func New(opts ...Option) *Allocator {
	return internalhost.New(opts...)
}

// WithSeed seeds the random source used by the distribution fills,
// making Xavier and Randn tensors reproducible.
func WithSeed(seed uint64) Option {
	return internalhost.WithSeed(seed)
}
