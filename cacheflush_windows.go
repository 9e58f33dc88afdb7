//go:build windows

package detour

import "golang.org/x/sys/windows"

var procFlushInstructionCache = windows.NewLazySystemDLL("kernel32.dll").NewProc("FlushInstructionCache")

// cacheflush follows the documented requirement to call FlushInstructionCache
// after modifying code.
func cacheflush(addr uintptr, size int) {
	procFlushInstructionCache.Call(uintptr(windows.CurrentProcess()), addr, uintptr(size))
}
