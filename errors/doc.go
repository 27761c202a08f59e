// Package errors provides structured error types for the checkdenormal backend.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending option, capability or entry name, a
// human-readable detail and an optional cause.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCLI, errors.KindUnknownOption).
//		Option("--fast").
//		Detail("unrecognized option").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownOption("--fast")
//	err := errors.MissingCapability(errors.PhaseInit, "argp_parse")
//
// All errors implement the standard error interface and support errors.Is/As.
// Denormal detection never produces an error: it is reported through the
// handler callback.
package errors
