package pagearena

// SizeInUse returns the total number of bytes handed out by the arena,
// including the unused tail of pages consumed whole by growth.
func (a *Arena) SizeInUse() int {
	if a.released {
		return 0
	}
	sum := 0
	for _, p := range a.pages {
		sum += p.used
	}
	return sum
}

// NumPages returns the number of pages currently held by the arena.
func (a *Arena) NumPages() int {
	if a.released {
		return 0
	}
	return len(a.pages)
}

// Capacity returns the total capacity (in bytes) of all pages in the arena.
func (a *Arena) Capacity() int {
	if a.released {
		return 0
	}
	sum := 0
	for _, p := range a.pages {
		sum += len(p.buf)
	}
	return sum
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// PageSize returns the default page size used by this arena.
func (a *Arena) PageSize() int {
	return a.pageSize
}

// PageInfo describes one page of an arena.
type PageInfo struct {
	Capacity int
	Used     int
}

// Pages returns a snapshot of every page, in creation order.
func (a *Arena) Pages() []PageInfo {
	if a.released {
		return nil
	}
	out := make([]PageInfo, len(a.pages))
	for i, p := range a.pages {
		out[i] = PageInfo{Capacity: len(p.buf), Used: p.used}
	}
	return out
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		NumPages:    a.NumPages(),
		PageSize:    a.PageSize(),
		Utilization: a.Utilization(),
		Allocs:      a.allocs,
		Grows:       a.grows,
		Failures:    a.failures,
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes handed out
	Capacity    int     // Total capacity in bytes
	NumPages    int     // Number of pages
	PageSize    int     // Default page size
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
	Allocs      uint64  // Successful AllocBytes calls
	Grows       uint64  // Pages added by AllocBytes
	Failures    uint64  // Failed AllocBytes calls
}

// Thread-safe metrics for SafeArena

// SizeInUse thread-safely returns the total number of bytes handed out.
func (s *SafeArena) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.SizeInUse()
}

// NumPages thread-safely returns the number of pages.
func (s *SafeArena) NumPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.NumPages()
}

// Capacity thread-safely returns the total capacity of all pages.
func (s *SafeArena) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Capacity()
}

// Utilization thread-safely returns the ratio of bytes in use to total capacity.
func (s *SafeArena) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Utilization()
}

// PageSize returns the default page size.
func (s *SafeArena) PageSize() int {
	return s.a.PageSize()
}

// Pages thread-safely returns a snapshot of every page.
func (s *SafeArena) Pages() []PageInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Pages()
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena) Metrics() ArenaMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}
