package pagearena

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// Alloc returns a pointer to a zeroed T stored inside the arena, aligned for T.
// T must not contain Go pointers: arena memory is not scanned by the garbage
// collector. The pointer is valid until the arena is released.
func Alloc[T any](a *Arena) (*T, error) {
	var zero T
	b, err := allocAligned(a, int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return new(T), nil
	}
	return (*T)(unsafe.Pointer(&b[0])), nil
}

// AllocSlice allocates a zeroed slice of n elements of type T inside the
// arena. The same pointer restriction as Alloc applies. Returns nil if n <= 0.
func AllocSlice[T any](a *Arena, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return make([]T, n), nil
	}
	if n > math.MaxInt/elemSize {
		return nil, errors.Wrapf(ErrAllocationFailure, "slice of %d elements of %d bytes overflows", n, elemSize)
	}
	b, err := allocAligned(a, elemSize*n, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), nil
}

// AllocString copies s into the arena and returns the copy.
func AllocString(a *Arena, s string) (string, error) {
	b, err := a.AllocBytes(len(s))
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", nil
	}
	copy(b, s)
	return unsafe.String(&b[0], len(b)), nil
}

// allocAligned asks the arena for size+align-1 bytes and returns the aligned
// size-byte window inside them.
func allocAligned(a *Arena, size, align int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	if align < 1 {
		align = 1
	}
	if size > math.MaxInt-(align-1) {
		return nil, errors.Wrapf(ErrAllocationFailure, "aligned size %d overflows", size)
	}
	b, err := a.AllocBytes(size + align - 1)
	if err != nil {
		return nil, err
	}
	addr := uintptr(unsafe.Pointer(&b[0]))
	off := int(alignUp(addr, uintptr(align)) - addr)
	return b[off : off+size : off+size], nil
}

// alignUp rounds off up to a multiple of align, which must be a power of two.
func alignUp(off, align uintptr) uintptr {
	mask := align - 1
	return (off + mask) &^ mask
}
