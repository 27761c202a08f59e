// Package checkdenormal provides a floating-point denormal detection and
// flush-to-zero backend for intercepted arithmetic.
//
// Every intercepted float32 or float64 result is checked against the smallest
// normal magnitude of its precision. A nonzero result below that threshold is
// a denormal: the registered handler is notified and, when the context asks for
// it, the result is replaced with +0.
//
// # Architecture Overview
//
//	checkdenormal/       Root package with the policy Context and Config values
//	├── fpcheck/         Generic check engine, FMA and narrowing primitives
//	├── backend/         Dispatch tables, descriptor, lifecycle, configuration
//	├── hostcap/         Host capability table (allocator, env, panic, argp, ...)
//	├── config/          TOML and YAML configuration files
//	├── wasmhost/        Descriptor bound as a wazero host module
//	├── errors/          Structured error types
//	├── cmd/checkdenormal Command line evaluator and interactive explorer
//	├── examples/basic   Library usage
//	└── testbed/         End-to-end tests across config, backend and wasmhost
//
// # Quick Start
//
//	b := backend.New(hostcap.Default())
//	ctx := b.PreInit(nil, logger)
//	b.Configure(checkdenormal.Config{FlushToZero: true}, ctx)
//	desc := b.Init(ctx)
//	defer desc.Finalize(ctx)
//
//	var r float64
//	desc.AddDouble(1e-310, 0, &r, ctx) // r == 0, handler fired once
//
// # Dispatch Builds
//
// Two tables exist. The compute table performs the arithmetic and then checks
// the result. The check-only table assumes the caller already wrote the
// result and only checks it. backend.Init picks one at compile time: building
// with the checkdenormal_checkonly tag selects the check-only table. Both are
// always reachable through backend.InitCompute and backend.InitCheckOnly.
//
// # Thread Safety
//
// Dispatch entries may be called from many goroutines as long as each supplies
// its own output location and the context is not reconfigured concurrently.
// PreInit, Configure and CLI are not safe to run during dispatch.
package checkdenormal
