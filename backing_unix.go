//go:build unix

package pagearena

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// MmapBacking reserves every page as a private anonymous mapping, outside
// the Go heap. Pages are unmapped on Release, so handles must not be touched
// afterwards.
type MmapBacking struct{}

// Reserve maps n zeroed, read-write bytes.
func (MmapBacking) Reserve(n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrAllocationFailure, "mmap of %d bytes", n)
	}
	buf, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(ErrAllocationFailure, "mmap of %d bytes: %v", n, err)
	}
	return buf, nil
}

// Free unmaps buf.
func (MmapBacking) Free(buf []byte) error {
	if err := unix.Munmap(buf); err != nil {
		return errors.Wrap(err, "munmap")
	}
	return nil
}
