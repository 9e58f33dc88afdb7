// Detour function calls at runtime
//
// A detour overwrites the first few bytes of a function with a jump to
// another function (the hook). Calls to the target land in the hook until the
// detour is disabled again, at which point the saved bytes are written back.
// A hook can still reach the untouched target through [GetOriginal] or
// [Func.Call], which briefly disable the detour around the call.
//
// There are two ways in. [Detour] works on raw addresses and is what you want
// for native code. [Func] takes two Go func values of the same type and
// handles closures, so a hook can capture its own *Func:
//
//	var f *detour.Func[func(float64, float64) float64]
//	f, _ = detour.NewFunc(add, func(a, b float64) float64 {
//		sum, _ := detour.Get(f, func(add func(float64, float64) float64) float64 {
//			return add(a, b)
//		})
//		return sum * 2
//	})
//
// Limitations:
//   - Only amd64 and 386, on Unix-like systems and Windows
//   - The target needs room for [JumpSize] bytes. Go pads functions enough
//     that this holds for any Go function, native code is on you (see [Check])
//   - Overwritten instructions are not relocated, so the original is only
//     reachable while the detour is disabled
//   - One hook per target
//   - Silently fails to detour inlined functions. Add a noinline directive to
//     targets you own
package detour
