package detour

import "encoding/binary"

// JumpSize is the length of the jump sequence written over a target.
//
//	0:  48 b8 88 77 66 55 44    movabs rax, 0x1122334455667788
//	7:  33 22 11
//	a:  ff e0                   jmp    rax
const JumpSize = 12

const (
	jumpAddrOffset = 2
	jumpAddrSize   = 8

	disasmMode = 64
)

var (
	registerJumpPrefix = []byte{0x48, 0xb8} // MOVABS RAX, imm64
	registerJumpSuffix = []byte{0xff, 0xe0} // JMP RAX

	closureJumpPrefix = []byte{0x48, 0xba} // MOVABS RDX, imm64
	closureJumpSuffix = []byte{0xff, 0x22} // JMP [RDX]
)

func putAddr(buf []byte, addr uintptr) {
	binary.LittleEndian.PutUint64(buf, uint64(addr))
}

func getAddr(buf []byte) uintptr {
	return uintptr(binary.LittleEndian.Uint64(buf))
}
