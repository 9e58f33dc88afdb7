package detour

import (
	"fmt"
	"reflect"
	"unsafe"
)

// As returns a function of type T whose code is at addr. T must be a func
// type matching the code's calling convention, As panics otherwise.
//
// The function has no closure context.
func As[T any](addr uintptr) T {
	if typ := reflect.TypeFor[T](); typ.Kind() != reflect.Func {
		panic(fmt.Sprintf("detour.As: %v is not a func type", typ))
	}

	// A func value points to a funcval, whose first word is the code
	// address.
	fv := new(uintptr)
	*fv = addr
	return *(*T)(unsafe.Pointer(&fv))
}

// CallOriginal calls the original version of d's target. The detour is
// disabled while call runs and enabled again afterwards if it was enabled
// before.
//
// If the detour can't be disabled call is not run. Like Enable and Disable,
// CallOriginal must not be used concurrently with other changes to the same
// target, and must not be nested for the same Detour.
//
//	err := detour.CallOriginal(d, func(orig func(int) int) {
//		orig(42)
//	})
func CallOriginal[T any](d *Detour, call func(orig T)) error {
	orig := As[T](d.Target())
	return d.callThrough(func() {
		call(orig)
	})
}

// GetOriginal is CallOriginal for a call that returns a value. The value is
// returned even if the detour could not be enabled again afterwards.
func GetOriginal[T, R any](d *Detour, call func(orig T) R) (R, error) {
	orig := As[T](d.Target())

	var result R
	err := d.callThrough(func() {
		result = call(orig)
	})
	return result, err
}
