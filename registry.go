package detour

import (
	"fmt"
	"sync"
)

// registry tracks which Detour has its jump written over each target.
type registry struct {
	mu     sync.Mutex
	owners map[uintptr]*Detour
}

var targets = &registry{owners: make(map[uintptr]*Detour)}

func (r *registry) owner(addr uintptr) *Detour {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.owners[addr]
}

// claim records d as the owner of addr. It fails if a different Detour
// already owns it.
func (r *registry) claim(addr uintptr, d *Detour) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.owners[addr]; ok && owner != d {
		return fmt.Errorf("%w: %#x", ErrTargetHooked, addr)
	}
	r.owners[addr] = d
	return nil
}

func (r *registry) release(addr uintptr, d *Detour) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owners[addr] == d {
		delete(r.owners, addr)
	}
}
