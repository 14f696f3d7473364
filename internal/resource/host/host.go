// Package host implements the buffer resource contract on
// reference-counted host memory.
package host

import (
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/slab-ml/slab/internal/tensor"
)

// Verify the contract at compile time.
var (
	_ tensor.Allocator = (*Allocator)(nil)
	_ tensor.Resource  = (*Buffer)(nil)
	_ tensor.Tracker   = (*Buffer)(nil)
)

// Allocator provides host-memory buffers. It owns the random source
// used by the distribution fills, so a seeded allocator produces
// reproducible tensors.
type Allocator struct {
	src rand.Source
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithSeed seeds the random source used by FillNormal and
// FillUniform. Without it the allocator self-seeds from the global
// source.
func WithSeed(seed uint64) Option {
	return func(a *Allocator) {
		a.src = &lockedSource{src: rand.NewSource(seed)}
	}
}

// New creates a host-memory allocator.
func New(opts ...Option) *Allocator {
	a := &Allocator{
		src: &lockedSource{src: rand.NewSource(rand.Uint64())},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate returns a zero-initialized buffer of n elements. Only CPU
// placement is served; other devices belong to other resource
// implementations.
func (a *Allocator) Allocate(n int, dtype tensor.DataType, device tensor.Device) (tensor.Resource, error) {
	if device != tensor.CPU {
		return nil, errors.Errorf("host allocator cannot place buffers on %s", device)
	}
	if n < 0 {
		return nil, errors.Errorf("negative element count %d", n)
	}

	shared := &sharedBuf{
		data: make([]byte, n*dtype.Size()),
		id:   uuid.NewString(),
	}
	shared.refs.Store(1)

	klog.V(2).Infof("host: allocated %s (%d x %s) buffer %s",
		humanize.Bytes(uint64(len(shared.data))), n, dtype, shared.id)

	return &Buffer{
		shared: shared,
		alloc:  a,
		off:    0,
		n:      n,
		dtype:  dtype,
	}, nil
}

// lockedSource serializes access to a rand.Source. Buffers from the
// same allocator share one source, so concurrent fills must not race
// on it.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}
