package tensor

import "sync/atomic"

// Tagger issues monotonically increasing identity tags. Every tensor
// produced by a factory or an operation carries a fresh tag, used only
// for debug tracking and identification, never for equality or
// correctness. The zero value is ready to use; Next is safe for
// concurrent callers.
type Tagger struct {
	next atomic.Int64
}

// Next returns the next identity tag.
func (g *Tagger) Next() int64 {
	return g.next.Add(1) - 1
}
