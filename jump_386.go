package detour

import "encoding/binary"

// JumpSize is the length of the jump sequence written over a target.
//
//	0:  b8 44 33 22 11          mov    eax, 0x11223344
//	5:  ff e0                   jmp    eax
const JumpSize = 7

const (
	jumpAddrOffset = 1
	jumpAddrSize   = 4

	disasmMode = 32
)

var (
	registerJumpPrefix = []byte{0xb8}       // MOV EAX, imm32
	registerJumpSuffix = []byte{0xff, 0xe0} // JMP EAX

	closureJumpPrefix = []byte{0xba}       // MOV EDX, imm32
	closureJumpSuffix = []byte{0xff, 0x22} // JMP [EDX]
)

func putAddr(buf []byte, addr uintptr) {
	binary.LittleEndian.PutUint32(buf, uint32(addr))
}

func getAddr(buf []byte) uintptr {
	return uintptr(binary.LittleEndian.Uint32(buf))
}
