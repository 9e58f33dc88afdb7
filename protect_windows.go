//go:build windows

package detour

import (
	"os"

	"golang.org/x/sys/windows"
)

func pageSize() int {
	return os.Getpagesize()
}

// setWritable switches the page(s) holding a jump sequence at addr between
// PAGE_EXECUTE_READWRITE and PAGE_EXECUTE_READ. The previous protection is
// discarded.
func setWritable(addr uintptr, writable bool) error {
	var prot uint32 = windows.PAGE_EXECUTE_READ
	if writable {
		prot = windows.PAGE_EXECUTE_READWRITE
	}

	start, size := pageRange(addr, JumpSize)
	var oldProt uint32
	return windows.VirtualProtect(start, size, prot, &oldProt)
}
