//go:build unix

package pagearena

import "golang.org/x/sys/unix"

func hostPageSize() int {
	return unix.Getpagesize()
}
