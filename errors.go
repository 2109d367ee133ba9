package pagearena

import "github.com/pkg/errors"

// ErrAllocationFailure is returned, wrapped, whenever memory for a page could
// not be obtained. It is the only error the arena produces. Use errors.Is to
// test for it.
var ErrAllocationFailure = errors.New("pagearena: allocation failure")
