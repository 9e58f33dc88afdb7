//go:build !windows

package detour

// x86 keeps instruction fetch coherent with stores, so there's nothing to
// flush.
func cacheflush(addr uintptr, size int) {}
