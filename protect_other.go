//go:build !unix && !windows

package detour

import "os"

func pageSize() int {
	return os.Getpagesize()
}

func setWritable(uintptr, bool) error {
	return ErrUnsupportedPlatform
}
