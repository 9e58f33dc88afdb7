//go:build windows

package codepage

import "golang.org/x/sys/windows"

const (
	protRX  = windows.PAGE_EXECUTE_READ
	protRWX = windows.PAGE_EXECUTE_READWRITE
)
