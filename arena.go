package pagearena

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// page is a single buffer within an arena.
type page struct {
	buf  []byte // backing memory, len(buf) is the capacity
	used int    // bytes handed out from buf
}

func (p *page) free() int {
	return len(p.buf) - p.used
}

// Arena is a growable-page bump allocator. Not goroutine-safe.
// Use SafeArena for concurrent access.
type Arena struct {
	pages    []page
	pageSize int
	limit    int
	backing  Backing
	log      zerolog.Logger
	released bool

	allocs   uint64
	grows    uint64
	failures uint64
}

// NewArena creates an Arena holding a single empty page of the default page
// size. The default page size is the host's memory page size unless
// WithPageSize says otherwise.
func NewArena(opts ...Option) (*Arena, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.pageSize <= 0 {
		o.pageSize = HostPageSize()
	}

	a := &Arena{
		pageSize: o.pageSize,
		limit:    o.limit,
		backing:  o.backing,
		log:      o.logger.With().Str("component", "pagearena").Logger(),
	}
	if err := a.grow(a.pageSize); err != nil {
		a.Release()
		return nil, errors.Wrap(err, "pagearena: initial page")
	}
	a.log.Debug().Int("page_size", a.pageSize).Msg("arena created")
	return a, nil
}

// AllocBytes returns n bytes from the first page with enough room left. When
// no page fits, one new page of max(n, PageSize()) bytes is appended and
// consumed whole.
//
// The returned slice has cap == len == n and stays valid until Release. For
// n == 0 a non-nil empty slice is returned and nothing is reserved.
func (a *Arena) AllocBytes(n int) ([]byte, error) {
	a.panicIfReleased()
	if n < 0 {
		a.failures++
		return nil, errors.Wrapf(ErrAllocationFailure, "negative size %d", n)
	}

	for i := range a.pages {
		p := &a.pages[i]
		if p.free() >= n {
			off := p.used
			p.used += n
			a.allocs++
			return p.buf[off : off+n : off+n], nil
		}
	}

	size := a.pageSize
	if n > size {
		size = n
	}
	if err := a.grow(size); err != nil {
		a.failures++
		a.log.Warn().Err(err).Int("size", n).Int("pages", len(a.pages)).Msg("allocation failed")
		return nil, err
	}
	a.grows++
	p := &a.pages[len(a.pages)-1]
	// The whole new page is marked used, even when n < size.
	p.used = len(p.buf)
	a.allocs++
	return p.buf[:n:n], nil
}

// Release returns every page to the backing and makes the arena unusable.
// Calling Release more than once is a no-op. Any later allocation panics.
func (a *Arena) Release() {
	if a.released {
		return
	}
	a.released = true
	for i := range a.pages {
		if err := a.backing.Free(a.pages[i].buf); err != nil {
			a.log.Error().Err(err).Int("page", i).Msg("failed to free page")
		}
		a.pages[i].buf = nil
	}
	a.pages = nil
}

// grow appends a new, empty page of exactly size bytes. The page is only
// linked into a.pages once its buffer has been reserved.
func (a *Arena) grow(size int) error {
	if a.limit > 0 && size > a.limit-a.Capacity() {
		return errors.Wrapf(ErrAllocationFailure, "page of %d bytes exceeds arena limit of %d", size, a.limit)
	}
	buf, err := a.backing.Reserve(size)
	if err != nil {
		return err
	}
	a.pages = append(a.pages, page{buf: buf})
	a.log.Debug().Int("size", size).Int("pages", len(a.pages)).Msg("page added")
	return nil
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.released {
		panic("pagearena: use after Release()")
	}
}
