//go:build unix

package pagearena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmapBacking(t *testing.T) {
	b := MmapBacking{}
	buf, err := b.Reserve(HostPageSize())
	require.NoError(t, err)
	require.Len(t, buf, HostPageSize())
	for _, v := range buf {
		require.Zero(t, v)
	}
	buf[0], buf[len(buf)-1] = 1, 2
	assert.NoError(t, b.Free(buf))

	_, err = b.Reserve(0)
	require.ErrorIs(t, err, ErrAllocationFailure)
}

func TestArenaWithMmapBacking(t *testing.T) {
	a, err := NewArena(WithBacking(MmapBacking{}))
	require.NoError(t, err)

	small, err := a.AllocBytes(10)
	require.NoError(t, err)
	copy(small, "0123456789")

	big, err := a.AllocBytes(a.PageSize() + 1)
	require.NoError(t, err)
	big[len(big)-1] = 0xff

	next, err := a.AllocBytes(20)
	require.NoError(t, err)
	assert.Equal(t, uintptr(unsafe.Pointer(&small[0]))+10, uintptr(unsafe.Pointer(&next[0])))
	assert.Equal(t, "0123456789", string(small))
	assert.Equal(t, 2, a.NumPages())

	a.Release()
	a.Release()
}
