package detour

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotFunc means a target or hook passed to NewFunc is not a function.
	ErrNotFunc = errors.New("not a function")

	// ErrSignatureMismatch means the target and hook passed to NewFunc have
	// different signatures.
	ErrSignatureMismatch = errors.New("function signatures do not match")
)

// Func is a Detour between two Go functions of type T.
//
// Unlike a Detour created with Init, the hook may be a closure. The jump
// loads the hook's funcval into the closure context register (DX) instead of
// the accumulator, so integer arguments in RAX reach the hook intact. Target
// and hook are fixed by NewFunc.
type Func[T any] struct {
	d    *Detour
	orig T
}

// NewFunc returns a disabled detour from target to hook.
//
// Note that if target has been inlined at a call site, that call site will
// not be redirected. If possible, add a noinline directive to work-around
// this problem:
//
//	//go:noinline
//	func myfunc() {
//		...
//	}
func NewFunc[T any](target, hook T) (*Func[T], error) {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Func {
		return nil, fmt.Errorf("target: %w, kind: %v", ErrNotFunc, tv.Kind())
	}
	hv := reflect.ValueOf(hook)
	if hv.Kind() != reflect.Func {
		return nil, fmt.Errorf("hook: %w, kind: %v", ErrNotFunc, hv.Kind())
	}
	if tv.IsNil() || hv.IsNil() {
		return nil, ErrNilAddress
	}
	if err := diffSignatures(tv.Type(), hv.Type()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignatureMismatch, err)
	}

	funcval := funcvalOf(hv)
	f := &Func[T]{
		d:    &Detour{},
		orig: target,
	}
	err := f.d.init(tv.Pointer(), hv.Pointer(), func() Code {
		return closureJump.encode(funcval)
	}, hook)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Replace creates a detour from target to hook and enables it. If Enable
// fails the Func is still returned, so an ErrInconsistentState detour can be
// disabled again.
func Replace[T any](target, hook T) (*Func[T], error) {
	f, err := NewFunc(target, hook)
	if err != nil {
		return nil, err
	}
	return f, f.Enable()
}

// Enable is [Detour.Enable].
func (f *Func[T]) Enable() error {
	return f.d.Enable()
}

// Disable is [Detour.Disable].
func (f *Func[T]) Disable() error {
	return f.d.Disable()
}

// Hooked reports whether the jump is currently written over the target.
func (f *Func[T]) Hooked() bool {
	return f.d.Hooked()
}

// Target returns the address of the target's code.
func (f *Func[T]) Target() uintptr {
	return f.d.Target()
}

// Hook returns the address of the hook's code.
func (f *Func[T]) Hook() uintptr {
	return f.d.Hook()
}

// Saved returns the target's code from before the detour was enabled.
func (f *Func[T]) Saved() Code {
	return f.d.Saved()
}

// Jump returns the code written over the target while the detour is enabled.
func (f *Func[T]) Jump() Code {
	return f.d.Jump()
}

// Original returns the target function. Calling it while the detour is
// enabled calls the hook, use Call or Get to reach the original code.
func (f *Func[T]) Original() T {
	return f.orig
}

// Call calls the original target with the detour disabled. See
// [CallOriginal].
func (f *Func[T]) Call(call func(orig T)) error {
	return f.d.callThrough(func() {
		call(f.orig)
	})
}

// Get is Func.Call for a call that returns a value. See [GetOriginal].
func Get[T, R any](f *Func[T], call func(orig T) R) (R, error) {
	var result R
	err := f.d.callThrough(func() {
		result = call(f.orig)
	})
	return result, err
}

// funcvalOf returns the address of the funcval behind a func value, the word
// a func variable holds.
func funcvalOf(fn reflect.Value) uintptr {
	v := reflect.New(fn.Type()).Elem()
	v.Set(fn)
	return *(*uintptr)(v.Addr().UnsafePointer())
}
