package main

import (
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/pboyd/detour"
)

type options struct {
	a, b   float64
	disasm bool
	native bool
}

func newRootCmd() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:           "detour-demo",
		Short:         "Detour a function at runtime and call through to the original",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if err := runFoo(out, opts); err != nil {
				return err
			}
			if opts.native {
				fmt.Fprintln(out)
				return runNative(out)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&opts.a, "a", 5.0, "first argument passed to foo while hooked")
	flags.Float64Var(&opts.b, "b", 2.0, "second argument passed to foo while hooked")
	flags.BoolVar(&opts.disasm, "disasm", false, "print foo's entry point before and after hooking")
	flags.BoolVar(&opts.native, "native", false, "also detour a hand-assembled native function")

	return cmd
}

//go:noinline
func foo(a, b float64) float64 {
	return a + b
}

func runFoo(out io.Writer, opts options) error {
	type fooFunc = func(float64, float64) float64

	var f *detour.Func[fooFunc]
	f, err := detour.NewFunc(foo, func(a, b float64) float64 {
		fmt.Fprintf(out, "hook: got values %.1f and %.1f\n", a, b)

		fmt.Fprintln(out, "hook: calling original with custom values...")
		if err := f.Call(func(foo fooFunc) {
			fmt.Fprintf(out, "hook: original returned %.1f (discarded)\n", foo(9.5, 1.5))
		}); err != nil {
			fmt.Fprintf(out, "hook: call-through failed: %v\n", err)
		}

		fmt.Fprintln(out, "hook: calling original with original values...")
		sum, err := detour.Get(f, func(foo fooFunc) float64 {
			return foo(a, b)
		})
		if err != nil {
			fmt.Fprintf(out, "hook: call-through failed: %v\n", err)
		}
		fmt.Fprintf(out, "hook: original returned %.1f\n", sum)

		fmt.Fprintln(out, "hook: returning custom value...")
		return 420.0
	})
	if err != nil {
		return err
	}

	target := reflect.ValueOf(foo).Pointer()
	if opts.disasm {
		if err := printPrologue(out, "before", target); err != nil {
			return err
		}
	}

	if err := f.Enable(); err != nil {
		return fmt.Errorf("enabling detour: %w", err)
	}
	defer f.Disable()

	if opts.disasm {
		if err := printPrologue(out, "after", target); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "main: hooked, calling foo...")
	fmt.Fprintf(out, "main: hooked foo returned %.1f\n\n", foo(opts.a, opts.b))

	if err := f.Disable(); err != nil {
		return fmt.Errorf("disabling detour: %w", err)
	}
	fmt.Fprintln(out, "main: unhooked, calling foo again...")
	fmt.Fprintf(out, "main: unhooked foo returned %.1f\n", foo(11.0, 3.0))
	return nil
}

func printPrologue(out io.Writer, when string, addr uintptr) error {
	listing, err := detour.Disassemble(addr, detour.JumpSize)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "foo %s Enable:\n%s\n", when, listing)
	return nil
}
