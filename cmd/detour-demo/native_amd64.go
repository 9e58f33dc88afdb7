package main

import (
	"fmt"
	"io"
	"reflect"

	"github.com/pboyd/detour"
	"github.com/pboyd/detour/internal/codepage"
)

// answerCode is "mov eax, 7; ret" padded with INT3.
var answerCode = []byte{
	0xb8, 0x07, 0x00, 0x00, 0x00, 0xc3, 0xcc, 0xcc,
	0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc,
}

func answerHook() int {
	return 42
}

func runNative(out io.Writer) error {
	arena, err := codepage.New(4096)
	if err != nil {
		return err
	}

	target, err := arena.Place(answerCode)
	if err != nil {
		return fmt.Errorf("placing native code: %w", err)
	}
	defer arena.Free(target)

	if err := detour.Check(target); err != nil {
		return err
	}

	answer := detour.As[func() int](target)
	fmt.Fprintf(out, "native: answer() at %#x returned %d\n", target, answer())

	d, err := detour.New(target, reflect.ValueOf(answerHook).Pointer())
	if err != nil {
		return err
	}
	if err := d.Enable(); err != nil {
		return fmt.Errorf("enabling native detour: %w", err)
	}
	fmt.Fprintf(out, "native: hooked answer() returned %d\n", answer())

	if err := d.Disable(); err != nil {
		return fmt.Errorf("disabling native detour: %w", err)
	}
	fmt.Fprintf(out, "native: unhooked answer() returned %d\n", answer())
	return nil
}
