//go:build unix

package detour

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	protRX  = unix.PROT_READ | unix.PROT_EXEC
	protRWX = unix.PROT_READ | unix.PROT_WRITE | unix.PROT_EXEC
)

func pageSize() int {
	return unix.Getpagesize()
}

// setWritable switches the page(s) holding a jump sequence at addr between
// RWX and RX.
func setWritable(addr uintptr, writable bool) error {
	prot := protRX
	if writable {
		prot = protRWX
	}

	start, size := pageRange(addr, JumpSize)
	region := unsafe.Slice((*byte)(unsafe.Pointer(start)), size)
	return unix.Mprotect(region, prot)
}
