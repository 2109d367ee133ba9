package pagearena

import "github.com/rs/zerolog"

// Option configures an Arena.
type Option func(*options)

type options struct {
	pageSize int
	limit    int
	backing  Backing
	logger   zerolog.Logger
}

func defaultOptions() options {
	return options{
		backing: HeapBacking{},
		logger:  zerolog.Nop(),
	}
}

// WithPageSize sets the default page size instead of the host's page size.
// Values <= 0 are ignored.
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithBacking sets where page buffers are reserved from. Defaults to HeapBacking.
func WithBacking(b Backing) Option {
	return func(o *options) {
		if b != nil {
			o.backing = b
		}
	}
}

// WithLimit caps the total capacity of all pages, in bytes. A page that would
// push the arena past the limit fails with ErrAllocationFailure. 0 means no limit.
func WithLimit(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.limit = n
		}
	}
}

// WithLogger sets the logger used for page growth and failure events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
