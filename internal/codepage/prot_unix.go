//go:build unix

package codepage

import "golang.org/x/sys/unix"

const (
	protRX  = unix.PROT_READ | unix.PROT_EXEC
	protRWX = unix.PROT_READ | unix.PROT_WRITE | unix.PROT_EXEC
)
