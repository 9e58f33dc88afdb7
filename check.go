//go:build amd64 || 386

package detour

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/arch/x86/x86asm"
)

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

var errUndecodable = errors.New("no instruction")

const (
	// maxScan bounds how far Check decodes looking for branches.
	maxScan = 64 << 10

	// maxInstLen is the longest x86 instruction.
	maxInstLen = 15
)

// Check reports whether target looks safe to detour. Enable never calls it.
//
// For Go functions the runtime's function table is used to make sure the
// jump fits before the next function, and the function body is decoded to
// make sure nothing jumps back into the overwritten bytes. Code the runtime
// doesn't know about (cgo, hand-placed code) only gets the first test skipped,
// its body is decoded until the first RET or JMP.
func Check(target uintptr) error {
	if target == 0 {
		return ErrNilAddress
	}
	fn := runtime.FuncForPC(target)
	if fn != nil {
		if fn.Entry() != target {
			return fmt.Errorf("%w: %#x is inside %s", ErrNotFuncEntry, target, fn.Name())
		}
		last := runtime.FuncForPC(target + JumpSize - 1)
		if last == nil || last.Entry() != target {
			return fmt.Errorf("%w: %s", ErrTargetTooShort, fn.Name())
		}
	}

	inFunc := func(pc uintptr) bool {
		if fn == nil {
			return true
		}
		f := runtime.FuncForPC(pc)
		return f != nil && f.Entry() == target
	}

	return scanBranches(target, func(offset int) []byte {
		pc := target + uintptr(offset)
		if offset >= maxScan || !inFunc(pc) {
			return nil
		}
		return unsafe.Slice((*byte)(unsafe.Pointer(pc)), maxInstLen)
	}, fn == nil)
}

// scanBranches decodes the code returned by next, offset by offset from base,
// and fails if a relative branch lands strictly inside the first JumpSize
// bytes. A branch to base itself is fine, that's where the jump starts.
//
// next returns nil when the function ends. If stopAtExit is set, decoding
// also ends after the first unconditional RET or JMP.
func scanBranches(base uintptr, next func(offset int) []byte, stopAtExit bool) error {
	for offset := 0; ; {
		code := next(offset)
		if code == nil {
			return nil
		}

		inst, err := x86asm.Decode(code, disasmMode)
		if err == nil && inst.Op == 0 {
			// Truncated code decodes as a bare prefix.
			err = errUndecodable
		}
		if err != nil {
			return fmt.Errorf("decode error at offset %d: %w", offset, err)
		}
		offset += inst.Len

		if rel, ok := inst.Args[0].(x86asm.Rel); ok {
			dest := base + uintptr(int64(offset)+int64(rel))
			if dest > base && dest < base+JumpSize {
				return fmt.Errorf("%w: %v at offset %d jumps to offset %d", ErrPrologueReentered, inst.Op, offset-inst.Len, dest-base)
			}
		}

		if stopAtExit && (inst.Op == x86asm.RET || inst.Op == x86asm.JMP) {
			return nil
		}
	}
}
