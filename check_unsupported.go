//go:build !amd64 && !386

package detour

import "errors"

var (
	// ErrNotFuncEntry means the address given to Check is inside a Go
	// function rather than at its entry.
	ErrNotFuncEntry = errors.New("not a function entry point")

	// ErrTargetTooShort means a jump sequence written at the target would
	// run into the next function.
	ErrTargetTooShort = errors.New("target too short for jump")

	// ErrPrologueReentered means code in the target branches into the bytes
	// the jump sequence would overwrite.
	ErrPrologueReentered = errors.New("branch into overwritten prologue")
)

// Check always fails with ErrUnsupportedPlatform.
func Check(target uintptr) error {
	return ErrUnsupportedPlatform
}

// Disassemble always fails with ErrUnsupportedPlatform.
func Disassemble(addr uintptr, n int) (string, error) {
	return "", ErrUnsupportedPlatform
}
