package pagearena

// DefaultPageSize is used when the host does not report a page size.
const DefaultPageSize = 4096

// HostPageSize returns the host's memory page size, or DefaultPageSize when
// the platform does not expose one.
func HostPageSize() int {
	if n := hostPageSize(); n > 0 {
		return n
	}
	return DefaultPageSize
}
