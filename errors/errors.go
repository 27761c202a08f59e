package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCLI       Phase = "cli"       // textual configuration
	PhaseConfigure Phase = "configure" // structured configuration and files
	PhaseInit      Phase = "init"      // pre_init / init lifecycle
	PhaseBind      Phase = "bind"      // host module binding
	PhaseLoad      Phase = "load"      // guest module loading
	PhaseCall      Phase = "call"      // guest function calls
)

// Kind categorizes the error
type Kind string

const (
	KindUnknownOption     Kind = "unknown_option"
	KindMissingCapability Kind = "missing_capability"
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
	KindTypeMismatch      Kind = "type_mismatch"
	KindRegistration      Kind = "registration"
	KindInstantiation     Kind = "instantiation"
	KindNotInitialized    Kind = "not_initialized"
	KindInvalidState      Kind = "invalid_state"
	KindTrap              Kind = "trap"
)

// Error is the structured error type used throughout the backend
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	Option     string
	Capability string
	Entry      string
	Detail     string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	switch {
	case e.Option != "":
		b.WriteString(" option ")
		b.WriteString(e.Option)
	case e.Capability != "":
		b.WriteString(" capability ")
		b.WriteString(e.Capability)
	case e.Entry != "":
		b.WriteString(" at ")
		b.WriteString(e.Entry)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Option sets the offending option token
func (b *Builder) Option(opt string) *Builder {
	b.err.Option = opt
	return b
}

// Capability sets the missing host capability name
func (b *Builder) Capability(name string) *Builder {
	b.err.Capability = name
	return b
}

// Entry sets the dispatch entry or guest function name
func (b *Builder) Entry(name string) *Builder {
	b.err.Entry = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnknownOption creates an unrecognized command-line option error
func UnknownOption(opt string) *Error {
	return &Error{
		Phase:  PhaseCLI,
		Kind:   KindUnknownOption,
		Option: opt,
		Detail: "unrecognized option",
	}
}

// MissingCapability creates an error for an absent host capability
func MissingCapability(phase Phase, name string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindMissingCapability,
		Capability: name,
		Detail:     fmt.Sprintf("%s not implemented by host", name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a missing entry or export error
func NotFound(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Entry:  name,
		Detail: fmt.Sprintf("%q not found", name),
	}
}

// TypeMismatch creates an error for a value that does not fit a wasm value type
func TypeMismatch(phase Phase, entry string, value any, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Entry:  entry,
		Value:  value,
		Detail: fmt.Sprintf("value %v does not fit %s", value, want),
	}
}

// NotInitialized creates an error for a component used before setup
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// InvalidState creates a lifecycle ordering error
func InvalidState(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidState,
		Detail: detail,
	}
}

// Registration creates a host function registration error
func Registration(phase Phase, module, name string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Entry:  module + "." + name,
		Detail: "failed to register host function",
		Cause:  cause,
	}
}

// Load wraps a guest module loading failure
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
