package hostcap

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/checkdenormal"
	"github.com/wippyai/checkdenormal/errors"
	"github.com/wippyai/checkdenormal/fpcheck"
)

// Name identifies a capability in error messages and Require calls.
type Name string

const (
	Malloc          Name = "malloc"
	StrCaseCmp      Name = "strcasecmp"
	Strtol          Name = "strtol"
	Getenv          Name = "getenv"
	Panic           Name = "panic"
	ArgParse        Name = "argp_parse"
	Logger          Name = "logger"
	DenormalHandler Name = "denormal_handler"
)

// PanicFunc reports an unrecoverable condition. It is not expected to return.
type PanicFunc func(msg string)

// Capabilities is the host capability table.
type Capabilities struct {
	// NewContext allocates a policy context.
	NewContext func() *checkdenormal.Context

	// StrCaseCmp compares two strings ignoring case, returning <0, 0 or >0.
	StrCaseCmp func(a, b string) int

	// Strtol parses an integer in the given base.
	Strtol func(s string, base int) (int64, error)

	// Getenv looks up an environment variable.
	Getenv func(key string) (string, bool)

	Panic    PanicFunc
	ArgParse ArgParser
	Logger   *zap.Logger

	// DenormalHandler is optional; nil means detections are not reported.
	DenormalHandler fpcheck.Handler
}

// Default returns capabilities backed by the Go standard library and a no-op
// logger. No denormal handler is registered.
func Default() Capabilities {
	return Capabilities{
		NewContext: func() *checkdenormal.Context { return &checkdenormal.Context{} },
		StrCaseCmp: func(a, b string) int {
			return strings.Compare(strings.ToLower(a), strings.ToLower(b))
		},
		Strtol: func(s string, base int) (int64, error) {
			return strconv.ParseInt(strings.TrimSpace(s), base, 64)
		},
		Getenv:   os.LookupEnv,
		Panic:    exitPanic,
		ArgParse: FlagParser{},
		Logger:   zap.NewNop(),
	}
}

func exitPanic(msg string) {
	fmt.Fprint(os.Stderr, msg)
	if !strings.HasSuffix(msg, "\n") {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(1)
}

// Has reports whether the named capability is present.
func (c Capabilities) Has(name Name) bool {
	switch name {
	case Malloc:
		return c.NewContext != nil
	case StrCaseCmp:
		return c.StrCaseCmp != nil
	case Strtol:
		return c.Strtol != nil
	case Getenv:
		return c.Getenv != nil
	case Panic:
		return c.Panic != nil
	case ArgParse:
		return c.ArgParse != nil
	case Logger:
		return c.Logger != nil
	case DenormalHandler:
		return c.DenormalHandler != nil
	}
	return false
}

// Missing returns the names that are not present, in the order given.
func (c Capabilities) Missing(names ...Name) []Name {
	var missing []Name
	for _, n := range names {
		if !c.Has(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// Require returns a missing-capability error for the first absent name.
func (c Capabilities) Require(phase errors.Phase, names ...Name) error {
	if missing := c.Missing(names...); len(missing) > 0 {
		return errors.MissingCapability(phase, string(missing[0]))
	}
	return nil
}

// Fatal reports err through p and then panics with err, so control never
// returns to the caller even when p does.
func Fatal(p PanicFunc, err error) {
	if p != nil {
		p(err.Error())
	}
	panic(err)
}
