// Package codepage places machine code in executable memory.
package codepage

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/pboyd/malloc"
)

// Arena hands out executable memory for code. Pages are kept read-execute
// except while code is being copied in.
type Arena struct {
	*malloc.Arena
	mprotect func(int) error
	mu       sync.Mutex
	placed   map[uintptr][]byte
}

// New returns an Arena with room for size bytes to start with.
func New(size int) (*Arena, error) {
	be := malloc.MmapBackend(malloc.MmapProt(protRWX))

	a := &Arena{placed: make(map[uintptr][]byte)}
	if protBE, ok := be.(malloc.ProtectedArenaBackend); ok {
		a.mprotect = protBE.Protect
	} else {
		a.mprotect = func(int) error {
			return nil
		}
	}

	a.Arena = malloc.NewArena(uint64(size), malloc.Backend(be))
	if a.Arena == nil {
		return nil, errors.New("unable to initialize arena")
	}
	return a, nil
}

// Place copies code into executable memory and returns its address.
func (a *Arena) Place(code []byte) (uintptr, error) {
	if len(code) == 0 {
		return 0, errors.New("no code to place")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.mprotect(protRWX); err != nil {
		return 0, fmt.Errorf("making arena writable: %w", err)
	}
	defer a.mprotect(protRX)

	buf, err := malloc.MallocSlice[byte](a.Arena, len(code))
	if err != nil {
		return 0, err
	}
	copy(buf, code)

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	a.placed[addr] = buf
	return addr, nil
}

// Free releases code returned by Place.
func (a *Arena) Free(addr uintptr) {
	a.mu.Lock()
	defer a.mu.Unlock()

	buf, ok := a.placed[addr]
	if !ok {
		return
	}

	a.mprotect(protRWX)
	defer a.mprotect(protRX)

	malloc.FreeSlice(a.Arena, buf)
	delete(a.placed, addr)
}
