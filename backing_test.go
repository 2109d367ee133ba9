package pagearena

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapBackingReserve(t *testing.T) {
	buf, err := HeapBacking{}.Reserve(128)
	require.NoError(t, err)
	require.Len(t, buf, 128)
	for _, v := range buf {
		require.Zero(t, v)
	}
	assert.NoError(t, HeapBacking{}.Free(buf))
}

func TestHeapBackingImpossibleSize(t *testing.T) {
	buf, err := HeapBacking{}.Reserve(math.MaxInt)
	require.ErrorIs(t, err, ErrAllocationFailure)
	assert.Nil(t, buf)
}

func TestArenaHeapBackingOversizedRequest(t *testing.T) {
	a := mustArena(t, WithPageSize(64))
	_, err := a.AllocBytes(math.MaxInt)
	require.ErrorIs(t, err, ErrAllocationFailure)
	assert.Equal(t, 1, a.NumPages())
	assert.Equal(t, uint64(1), a.Metrics().Failures)
}
