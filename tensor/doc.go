// Copyright 2026 The slab Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for slab's shape algebra and
// strided tensor operations.
//
// # Overview
//
// A Tensor is a typed, shaped view over a linear buffer resource. The
// package provides:
//   - Shape: dimension algebra with wildcard reshape inference
//   - Tensor: indexing, reshaping, slicing, transposing, concatenation
//   - Context: factory constructors bound to an allocator and tag source
//   - Resource, Allocator: the buffer collaborator contract
//
// # Basic Usage
//
//	import (
//	    "github.com/slab-ml/slab/resource/host"
//	    "github.com/slab-ml/slab/tensor"
//	)
//
//	func main() {
//	    ctx := tensor.NewContext(host.New())
//
//	    x, err := ctx.Zeros(tensor.Shape{2, 3})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    y, err := x.Reshape(tensor.Shape{3, tensor.Wild}) // [3 2] view
//	    t, err := x.Transpose()                           // fresh storage
//	}
//
// # Views and Materialization
//
// Index and Reshape produce views: tensors sharing the receiver's
// storage, so writes through either are visible in both. Slice,
// Concat, Transpose and Clone materialize: they allocate fresh,
// exclusively owned storage. Owned reports which kind a tensor is.
//
// # Failure Model
//
// Every operation returns an error instead of aborting. Errors wrap
// one of the sentinels ErrIncompatibleShape, ErrOutOfRange,
// ErrRankMismatch, ErrAllocationFailure or ErrNoShape, so callers can
// dispatch with errors.Is. The invalid tensor (no shape, no storage)
// is distinguishable from a valid scalar via IsValid.
package tensor
