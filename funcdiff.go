package detour

import (
	"errors"
	"fmt"
	"reflect"
)

// diffSignatures returns an error describing each position where the
// signatures of func types a and b differ, or nil if they match.
func diffSignatures(a, b reflect.Type) error {
	var errs []error
	errs = append(errs, diffTypes("argument", a.NumIn(), b.NumIn(), a.In, b.In)...)
	errs = append(errs, diffTypes("output", a.NumOut(), b.NumOut(), a.Out, b.Out)...)
	if a.IsVariadic() != b.IsVariadic() {
		errs = append(errs, fmt.Errorf("variadic: %v != %v", a.IsVariadic(), b.IsVariadic()))
	}
	return errors.Join(errs...)
}

func diffTypes(what string, na, nb int, a, b func(int) reflect.Type) []error {
	var errs []error
	for i := range max(na, nb) {
		var at, bt reflect.Type
		if i < na {
			at = a(i)
		}
		if i < nb {
			bt = b(i)
		}

		if at != bt {
			errs = append(errs, fmt.Errorf("%s %d: %v != %v", what, i, at, bt))
		}
	}
	return errs
}
