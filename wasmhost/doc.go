// Package wasmhost runs WebAssembly guests against a backend descriptor.
//
// The descriptor's present slots are exported from a host module named
// "interflop" under their slot names. Guests import the operations they want
// intercepted:
//
//	(import "interflop" "add_double" (func (param f64 f64) (result f64)))
//
// Compute descriptors take the operands and return the (possibly flushed)
// result. Check-only descriptors take the operands followed by the result the
// guest already computed and return it after the check:
//
//	(import "interflop" "add_double" (func (param f64 f64 f64) (result f64)))
//
// Comparison, function tracing and user call slots are never exported.
//
// Usage:
//
//	rt, err := wasmhost.New(ctx, desc)
//	defer rt.Close(ctx)
//	mod, err := rt.LoadWASM(ctx, wasmBytes)
//	inst, err := mod.Instantiate(ctx)
//	out, err := inst.Call(ctx, "kernel", 1.5, 2.5)
package wasmhost
