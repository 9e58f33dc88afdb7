package detour

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeJump_Golden(t *testing.T) {
	assert := assert.New(t)

	code := encodeJump(0x1122334455667788)
	assert.Equal(Code{0x48, 0xb8, 0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11, 0xff, 0xe0}, code)

	code = closureJump.encode(0x1122334455667788)
	assert.Equal(Code{0x48, 0xba, 0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11, 0xff, 0x22}, code)
}

func TestEncodeJump_Disassembly(t *testing.T) {
	code := encodeJump(0x1122334455667788)
	listing := disassemble(0x1000, code[:])
	assert.Contains(t, listing, "0x00001000\t48b88877665544332211")
	assert.Contains(t, listing, "0x0000100a\tffe0")
}
