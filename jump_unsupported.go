//go:build !amd64 && !386

package detour

// JumpSize is zero where no jump sequence is defined. Init fails with
// ErrUnsupportedPlatform.
const JumpSize = 0

const (
	jumpAddrOffset = 0
	jumpAddrSize   = 0
)

var (
	registerJumpPrefix []byte
	registerJumpSuffix []byte
	closureJumpPrefix  []byte
	closureJumpSuffix  []byte
)

func putAddr([]byte, uintptr) {}

func getAddr([]byte) uintptr { return 0 }
