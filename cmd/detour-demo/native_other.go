//go:build !amd64

package main

import (
	"fmt"
	"io"
	"runtime"
)

func runNative(io.Writer) error {
	return fmt.Errorf("--native is not available on %s", runtime.GOARCH)
}
