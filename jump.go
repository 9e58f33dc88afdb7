package detour

// Code is machine code at a function's entry point, exactly as long as a jump
// sequence.
type Code [JumpSize]byte

// jumpEncoding is one way to jump to an absolute address: load the address
// into a register, then jump through it. The address sits between prefix and
// suffix, at jumpAddrOffset.
type jumpEncoding struct {
	prefix []byte
	suffix []byte
}

func (e jumpEncoding) encode(addr uintptr) Code {
	var c Code
	copy(c[:], e.prefix)
	putAddr(c[jumpAddrOffset:], addr)
	copy(c[jumpAddrOffset+jumpAddrSize:], e.suffix)
	return c
}

func (e jumpEncoding) decode(c Code) (uintptr, bool) {
	if JumpSize == 0 {
		return 0, false
	}
	if string(c[:jumpAddrOffset]) != string(e.prefix) {
		return 0, false
	}
	if string(c[jumpAddrOffset+jumpAddrSize:]) != string(e.suffix) {
		return 0, false
	}
	return getAddr(c[jumpAddrOffset:]), true
}

var (
	// registerJump jumps straight to a code address. It clobbers the
	// accumulator (RAX/EAX).
	registerJump = jumpEncoding{prefix: registerJumpPrefix, suffix: registerJumpSuffix}

	// closureJump loads a Go funcval into the closure context register and
	// jumps through its first word, which is what a Go closure call does.
	closureJump = jumpEncoding{prefix: closureJumpPrefix, suffix: closureJumpSuffix}
)

func encodeJump(dest uintptr) Code {
	return registerJump.encode(dest)
}

// DecodeJump returns the address embedded in a jump sequence built by this
// package. ok is false if c isn't one. For detours created with [NewFunc] the
// address is the hook's funcval, not its code.
func DecodeJump(c Code) (addr uintptr, ok bool) {
	if addr, ok = registerJump.decode(c); ok {
		return addr, true
	}
	return closureJump.decode(c)
}
