// Package hostcap describes the capabilities a host hands to the backend.
//
// The backend never reaches for process-wide services on its own. Allocation
// of the policy context, case-insensitive comparison, integer parsing,
// environment lookup, the fatal-error handler, the argument-parsing engine,
// the log sink and the denormal handler all arrive through a Capabilities
// value. Default returns Go implementations of each; tests and embedding
// hosts substitute their own.
//
// A capability that is required for an operation but absent is fatal: it is
// reported through the panic handler and the process does not continue.
package hostcap
