//go:build !unix

package main

import (
	"github.com/pkg/errors"

	"github.com/pavanmanishd/pagearena"
)

func newBacking(name string) (pagearena.Backing, error) {
	switch name {
	case "", "heap":
		return pagearena.HeapBacking{}, nil
	case "mmap":
		return nil, errors.New("mmap backing is only available on unix")
	}
	return nil, errors.Errorf("unknown backing %q", name)
}
