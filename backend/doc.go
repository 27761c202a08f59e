// Package backend implements the interflop-checkdenormal backend: the
// dispatch tables, the descriptor a host binds to, the configuration
// interface and the pre_init / init / finalize lifecycle.
//
// A host drives it as follows:
//
//	b := backend.New(caps)
//	ctx := b.PreInit(onFatal, logger)   // UNINITIALIZED -> CONTEXT_ALLOCATED
//	if err := b.CLI(args, ctx); err != nil {
//	    // unrecognized option; ctx unchanged
//	}
//	desc := b.Init(ctx)                 // -> ACTIVE
//	desc.MulDouble(x, y, &r, ctx)
//	desc.Finalize(ctx)                  // -> FINALIZED
//
// Init returns the table selected at compile time (see DefaultMode).
// InitCompute and InitCheckOnly return a specific one.
//
// Comparison and function-tracing slots are nil in every table. Hosts must
// check a slot before calling it; Descriptor.Slots lists what is present.
package backend
