// Package pagearena implements a growable-page bump allocator for Go.
//
// # Overview
//
// An arena hands out many small, variable-sized byte ranges from a few
// larger pages and frees all of them at once when it is released. There is
// no way to free a single allocation. This suits work with lots of short-lived
// temporaries, such as parsing or rewriting strings, where tracking each
// buffer is more trouble than it is worth.
//
// # Basic Usage
//
//	a, err := pagearena.NewArena() // one page of the host page size
//	if err != nil {
//		return err
//	}
//	defer a.Release()
//
//	buf, err := a.AllocBytes(10)
//	ptr, err := pagearena.Alloc[MyStruct](a)
//	s, err := pagearena.AllocString(a, "hello")
//
// # Page Growth
//
// Pages are searched in creation order and the first one with enough room
// left serves the request (first-fit). When none fits, exactly one new page
// of max(n, PageSize()) bytes is added and consumed in full, so an oversized
// request never spans pages. Earlier pages keep serving smaller requests.
//
// # Errors
//
// Every failure wraps ErrAllocationFailure:
//
//	if errors.Is(err, pagearena.ErrAllocationFailure) { ... }
//
// A failed allocation leaves the arena exactly as it was.
//
// # Thread Safety
//
// Arena is not goroutine-safe. SafeArena wraps one behind a mutex:
//
//	s, _ := pagearena.NewSafeArena()
//	defer s.Release()
//	buf, _ := s.AllocBytes(1024)
//
// # Backings
//
// Pages come from the Go heap by default (HeapBacking). On unix systems
// MmapBacking maps each page anonymously outside the heap; those pages are
// unmapped on Release.
//
// # Metrics and Monitoring
//
//	m := a.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	prometheus.MustRegister(pagearena.NewCollector(s, "requests"))
package pagearena
