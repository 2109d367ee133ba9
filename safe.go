package pagearena

import "sync"

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// Arena itself takes no locks; SafeArena serializes every call instead.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena configured by opts.
func NewSafeArena(opts ...Option) (*SafeArena, error) {
	a, err := NewArena(opts...)
	if err != nil {
		return nil, err
	}
	return &SafeArena{a: a}, nil
}

// AllocBytes thread-safely allocates n bytes.
func (s *SafeArena) AllocBytes(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocBytes(n)
}

// Release thread-safely releases every page and makes the arena unusable.
func (s *SafeArena) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}

// Generic allocation functions for SafeArena

// SafeAlloc thread-safely returns a pointer to a zeroed T inside the arena.
func SafeAlloc[T any](s *SafeArena) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Alloc[T](s.a)
}

// SafeAllocSlice thread-safely allocates a zeroed slice of n elements of type T.
func SafeAllocSlice[T any](s *SafeArena, n int) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSlice[T](s.a, n)
}

// SafeAllocString thread-safely copies str into the arena.
func SafeAllocString(s *SafeArena, str string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocString(s.a, str)
}
