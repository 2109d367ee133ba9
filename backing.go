package pagearena

import "github.com/pkg/errors"

// Backing reserves and frees page buffers. Reserve must return exactly n
// zeroed bytes whose address never changes until Free.
type Backing interface {
	Reserve(n int) ([]byte, error)
	Free(buf []byte) error
}

// HeapBacking reserves pages from the Go heap.
type HeapBacking struct{}

// Reserve allocates n bytes with make. Sizes the runtime refuses are reported
// as ErrAllocationFailure instead of panicking.
func (HeapBacking) Reserve(n int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = errors.Wrapf(ErrAllocationFailure, "heap reserve of %d bytes: %v", n, r)
		}
	}()
	return make([]byte, n), nil
}

// Free is a no-op; the garbage collector reclaims the buffer once the arena
// drops its reference.
func (HeapBacking) Free([]byte) error {
	return nil
}
