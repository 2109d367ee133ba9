package pagearena

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostPageSize(t *testing.T) {
	n := HostPageSize()
	assert.Positive(t, n)
	if hostPageSize() > 0 {
		assert.Equal(t, os.Getpagesize(), n)
	} else {
		assert.Equal(t, DefaultPageSize, n)
	}
}

func TestNewArenaUsesHostPageSize(t *testing.T) {
	a := mustArena(t)
	assert.Equal(t, HostPageSize(), a.PageSize())
	assert.Equal(t, []PageInfo{{Capacity: HostPageSize()}}, a.Pages())
}
