//go:build amd64 || 386

package detour

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"unsafe"

	"golang.org/x/arch/x86/x86asm"
)

// Disassemble returns a listing of the n bytes of code at addr, one
// instruction per line. Bytes that don't decode end the listing.
func Disassemble(addr uintptr, n int) (string, error) {
	if addr == 0 {
		return "", ErrNilAddress
	}
	return disassemble(addr, unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)), nil
}

func disassemble(baseAddr uintptr, code []byte) string {
	var buf bytes.Buffer

	for i := 0; i < len(code); {
		instruction, err := x86asm.Decode(code[i:], disasmMode)
		if err != nil || instruction.Op == 0 {
			fmt.Fprintf(&buf, "0x%08x\t%-20s\t?\n", baseAddr+uintptr(i), hex.EncodeToString(code[i:]))
			break
		}
		fmt.Fprintf(&buf, "0x%08x\t%-20s\t%s\n", baseAddr+uintptr(i), hex.EncodeToString(code[i:i+instruction.Len]), instruction.String())

		i += instruction.Len
	}

	return buf.String()
}
