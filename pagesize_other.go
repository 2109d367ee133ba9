//go:build !unix

package pagearena

func hostPageSize() int {
	return 0
}
