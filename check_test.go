//go:build amd64 || 386

package detour

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

//go:noinline
func checkTarget(n int) int {
	return n * 7
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(funcAddr(checkTarget)))
	assert.NoError(t, Check(funcAddr(foo)))
}

func TestCheck_NotEntry(t *testing.T) {
	assert.ErrorIs(t, Check(funcAddr(checkTarget)+1), ErrNotFuncEntry)
}

func TestCheck_Nil(t *testing.T) {
	assert.ErrorIs(t, Check(0), ErrNilAddress)
}

// scanCode runs scanBranches over code as if it were placed at base.
func scanCode(base uintptr, code []byte) error {
	return scanBranches(base, func(offset int) []byte {
		if offset >= len(code) {
			return nil
		}
		return code[offset:]
	}, false)
}

func TestScanBranches(t *testing.T) {
	t.Run("no branches", func(t *testing.T) {
		code := []byte{
			0x31, 0xc0, // xor eax, eax
			0x90, // nop
			0xc3, // ret
		}
		assert.NoError(t, scanCode(0x1000, code))
	})

	t.Run("branch into prologue", func(t *testing.T) {
		code := []byte{
			0x31, 0xc0, // xor eax, eax
			0xff, 0xc0, // inc eax
			0xeb, 0xfc, // jmp -4, to offset 2
			0xc3, // ret
		}
		err := scanCode(0x1000, code)
		assert.ErrorIs(t, err, ErrPrologueReentered)
		assert.Contains(t, err.Error(), "jumps to offset 2")
	})

	t.Run("branch to entry", func(t *testing.T) {
		code := []byte{
			0x31, 0xc0, // xor eax, eax
			0xeb, 0xfc, // jmp -4, to offset 0
		}
		assert.NoError(t, scanCode(0x1000, code))
	})

	t.Run("branch past prologue", func(t *testing.T) {
		code := make([]byte, 0, 2*JumpSize)
		code = append(code, 0xeb, byte(JumpSize)) // jmp past the jump sequence
		for len(code) < 2*JumpSize+2 {
			code = append(code, 0x90)
		}
		assert.NoError(t, scanCode(0x1000, code))
	})

	t.Run("bad code", func(t *testing.T) {
		assert.Error(t, scanCode(0x1000, []byte{0x0f}))
	})

	t.Run("truncated after valid code", func(t *testing.T) {
		err := scanCode(0x1000, []byte{0x90, 0x90, 0x0f})
		assert.ErrorContains(t, err, "offset 2")
	})
}

func TestDisassemble(t *testing.T) {
	listing, err := Disassemble(funcAddr(checkTarget), JumpSize)
	assert.NoError(t, err)
	assert.NotEmpty(t, listing)

	listing = disassemble(0x1000, []byte{0x90, 0x0f})
	assert.Contains(t, listing, "0x00001000\t90")
	assert.Regexp(t, "0x00001001\t0f +\t\\?", listing)

	_, err = Disassemble(0, JumpSize)
	assert.ErrorIs(t, err, ErrNilAddress)
}
