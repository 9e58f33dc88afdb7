package detour

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

var (
	// ErrProtectionChange means the OS refused to change the protection of
	// the target's page. The target was not modified.
	ErrProtectionChange = errors.New("page protection change failed")

	// ErrInconsistentState means the target's code was rewritten but its
	// page could not be made read-only again. The detour's state reflects
	// the code that is now in memory.
	ErrInconsistentState = errors.New("code modified but page protection not restored")

	// ErrUnsupportedPlatform means there is no jump sequence or protection
	// primitive for this GOARCH/GOOS.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNotInitialized means Enable was called before Init.
	ErrNotInitialized = errors.New("detour not initialized")

	// ErrNilAddress means a target or hook address was zero.
	ErrNilAddress = errors.New("nil address")

	// ErrTargetHooked means another detour is enabled on the same target.
	ErrTargetHooked = errors.New("target already hooked")
)

// Detour redirects calls to a target function to a hook.
//
// The zero value is unusable until Init is called. A Detour must not be
// copied after Init.
type Detour struct {
	// mu serializes writes to the target made through this detour.
	mu sync.Mutex

	hooked atomic.Bool
	target uintptr
	hook   uintptr

	// saved holds the target's original code, jump the code that replaces
	// it. Both are fixed at Init.
	saved Code
	jump  Code

	// keepAlive holds whatever the jump points into that the GC can't see,
	// the hook's funcval for detours made by NewFunc. The registry holds
	// the Detour while it's enabled, so this stays reachable with it.
	keepAlive any
}

// patchMu serializes every change to code pages. Targets of different
// detours can share a page, and one detour restoring RX mustn't land while
// another is writing.
var patchMu sync.Mutex

// New returns a Detour from target to hook. See [Detour.Init].
func New(target, hook uintptr) (*Detour, error) {
	d := &Detour{}
	if err := d.Init(target, hook); err != nil {
		return nil, err
	}
	return d, nil
}

// Init prepares d to redirect calls from target to hook. Both are code
// addresses. Nothing is written to the target until Enable.
//
// The first JumpSize bytes at target are saved here, so the target must not
// be hooked by anything else at this point. Another Detour enabled on target
// is reported as ErrTargetHooked, other patching isn't detectable.
//
// The jump clobbers RAX (EAX on 386), and hook is entered without a closure
// context, so it must be a plain function. Use [NewFunc] for Go closures.
func (d *Detour) Init(target, hook uintptr) error {
	return d.init(target, hook, func() Code { return encodeJump(hook) }, nil)
}

func (d *Detour) init(target, hook uintptr, jump func() Code, keepAlive any) error {
	if JumpSize == 0 {
		return ErrUnsupportedPlatform
	}
	if target == 0 || hook == 0 {
		return ErrNilAddress
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.hooked.Load() {
		return fmt.Errorf("%w: detour at %#x is enabled", ErrTargetHooked, d.target)
	}
	if targets.owner(target) != nil {
		return fmt.Errorf("%w: %#x", ErrTargetHooked, target)
	}

	d.target = target
	d.hook = hook
	copy(d.saved[:], codeAt(target))
	d.jump = jump()
	d.keepAlive = keepAlive
	return nil
}

// Enable writes the jump to the hook over the target. It does nothing if the
// detour is already enabled.
//
// If the write succeeds but the page can't be made read-only again, the
// detour counts as enabled and the error wraps ErrInconsistentState.
func (d *Detour) Enable() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enable()
}

// Disable restores the target's original code. It does nothing if the detour
// isn't enabled.
//
// If the write succeeds but the page can't be made read-only again, the
// detour counts as disabled and the error wraps ErrInconsistentState.
func (d *Detour) Disable() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disable()
}

func (d *Detour) enable() error {
	if d.hooked.Load() {
		return nil
	}
	if d.target == 0 {
		return ErrNotInitialized
	}

	if err := targets.claim(d.target, d); err != nil {
		return err
	}

	patchMu.Lock()
	defer patchMu.Unlock()

	if err := d.patch(d.jump); err != nil {
		targets.release(d.target, d)
		return err
	}

	// The code is in place whatever happens to the protection.
	d.hooked.Store(true)
	return d.protect()
}

func (d *Detour) disable() error {
	if !d.hooked.Load() {
		return nil
	}

	patchMu.Lock()
	defer patchMu.Unlock()

	if err := d.patch(d.saved); err != nil {
		return err
	}

	d.hooked.Store(false)
	targets.release(d.target, d)
	return d.protect()
}

// patch makes the target writable and copies code over it. The page is left
// writable, call protect next.
func (d *Detour) patch(code Code) error {
	if err := protectPage(d.target, true); err != nil {
		return fmt.Errorf("%w: making %#x writable: %w", ErrProtectionChange, d.target, err)
	}

	copy(codeAt(d.target), code[:])
	cacheflush(d.target, JumpSize)
	return nil
}

func (d *Detour) protect() error {
	if err := protectPage(d.target, false); err != nil {
		return fmt.Errorf("%w: restoring protection at %#x: %w", ErrInconsistentState, d.target, err)
	}
	return nil
}

// callThrough runs call with the detour disabled, then enables it again if
// it was enabled before. A failure to disable is returned without running
// call.
//
// d stays locked while call runs. Enabling or disabling d from inside call
// deadlocks.
func (d *Detour) callThrough(call func()) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	wasHooked := d.hooked.Load()
	if err := d.disable(); err != nil {
		return fmt.Errorf("calling original: %w", err)
	}

	if wasHooked {
		defer func() {
			if enableErr := d.enable(); enableErr != nil && err == nil {
				err = fmt.Errorf("re-enabling after call: %w", enableErr)
			}
		}()
	}

	call()
	return nil
}

// Hooked reports whether the jump is currently written over the target.
func (d *Detour) Hooked() bool {
	return d.hooked.Load()
}

// Target returns the address of the detoured function.
func (d *Detour) Target() uintptr {
	return d.target
}

// Hook returns the address of the code calls are redirected to.
func (d *Detour) Hook() uintptr {
	return d.hook
}

// Saved returns the target's code from before the detour was enabled.
func (d *Detour) Saved() Code {
	return d.saved
}

// Jump returns the code written over the target while the detour is enabled.
func (d *Detour) Jump() Code {
	return d.jump
}

// codeAt returns the JumpSize bytes at addr.
func codeAt(addr uintptr) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), JumpSize)
}
