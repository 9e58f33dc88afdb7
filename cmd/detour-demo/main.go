// Command detour-demo hooks a function, calls it, and calls through to the
// original from inside the hook.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
