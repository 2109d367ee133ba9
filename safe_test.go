package pagearena

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSafeArena(t *testing.T) {
	s, err := NewSafeArena(WithPageSize(1024))
	require.NoError(t, err)
	require.NotNil(t, s)
	require.NotNil(t, s.a)
	s.Release()
}

func TestNewSafeArenaFailure(t *testing.T) {
	s, err := NewSafeArena(WithBacking(&countingBacking{}))
	require.ErrorIs(t, err, ErrAllocationFailure)
	assert.Nil(t, s)
}

func TestSafeArenaOperations(t *testing.T) {
	s, err := NewSafeArena(WithPageSize(1024))
	require.NoError(t, err)

	b, err := s.AllocBytes(100)
	require.NoError(t, err)
	assert.Len(t, b, 100)
	assert.Equal(t, 100, s.SizeInUse())

	_, err = s.AllocBytes(-1)
	require.ErrorIs(t, err, ErrAllocationFailure)

	s.Release()
	s.Release()
	assert.Panics(t, func() { _, _ = s.AllocBytes(100) })
}

func TestSafeAllocFunctions(t *testing.T) {
	s, err := NewSafeArena(WithPageSize(1024))
	require.NoError(t, err)
	defer s.Release()

	ptr, err := SafeAlloc[int](s)
	require.NoError(t, err)
	require.NotNil(t, ptr)
	assert.Zero(t, *ptr)
	*ptr = 42

	slice, err := SafeAllocSlice[int](s, 5)
	require.NoError(t, err)
	assert.Len(t, slice, 5)

	str, err := SafeAllocString(s, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", str)
	assert.Equal(t, 42, *ptr)
}

func TestSafeArenaConcurrentAllocations(t *testing.T) {
	s, err := NewSafeArena(WithPageSize(512))
	require.NoError(t, err)
	defer s.Release()

	const (
		workers = 8
		perG    = 200
		size    = 24
	)
	results := make([][][]byte, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				b, err := s.AllocBytes(size)
				if err != nil {
					t.Error(err)
					return
				}
				for j := range b {
					b[j] = byte(id)
				}
				results[id] = append(results[id], b)
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[uintptr]bool)
	for id, bufs := range results {
		require.Len(t, bufs, perG)
		for _, b := range bufs {
			addr := uintptr(unsafe.Pointer(&b[0]))
			require.False(t, seen[addr], "address handed out twice")
			seen[addr] = true
			for _, v := range b {
				require.Equal(t, byte(id), v)
			}
		}
	}
	assert.Equal(t, uint64(workers*perG), s.Metrics().Allocs)
}

func BenchmarkSafeArenaAllocBytes(b *testing.B) {
	s, _ := NewSafeArena(WithPageSize(1 << 20))
	defer s.Release()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = s.AllocBytes(16)
		}
	})
}
