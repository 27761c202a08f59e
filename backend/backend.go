package backend

import (
	"go.uber.org/zap"

	"github.com/wippyai/checkdenormal"
	"github.com/wippyai/checkdenormal/errors"
	"github.com/wippyai/checkdenormal/fpcheck"
	"github.com/wippyai/checkdenormal/hostcap"
)

const (
	Name    = "interflop-checkdenormal"
	Version = "1.x-dev"

	// EnvSilentLoad suppresses the load banner when it equals "True",
	// compared case-insensitively. Any other value, or none, keeps it.
	EnvSilentLoad = "VFC_BACKENDS_SILENT_LOAD"
)

// State is the backend lifecycle position.
type State int

const (
	StateUninitialized State = iota
	StateContextAllocated
	StateConfigured
	StateActive
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateContextAllocated:
		return "CONTEXT_ALLOCATED"
	case StateConfigured:
		return "CONFIGURED"
	case StateActive:
		return "ACTIVE"
	case StateFinalized:
		return "FINALIZED"
	}
	return "UNKNOWN"
}

// Backend owns the services injected by the host. Lifecycle methods are not
// safe for concurrent use; descriptor entries are.
type Backend struct {
	caps    hostcap.Capabilities
	onFatal hostcap.PanicFunc
	log     *zap.Logger
	state   State
}

// New returns a backend using caps. Nothing is checked until PreInit.
func New(caps hostcap.Capabilities) *Backend {
	return &Backend{
		caps:    caps,
		onFatal: caps.Panic,
		log:     zap.NewNop(),
	}
}

// State returns the current lifecycle state.
func (b *Backend) State() State { return b.state }

// PreInit registers the fatal-error handler and log sink, verifies the host
// capabilities the backend depends on and allocates a context with the
// default policy. A nil onFatal or log falls back to the capability table.
func (b *Backend) PreInit(onFatal hostcap.PanicFunc, log *zap.Logger) *checkdenormal.Context {
	if onFatal != nil {
		b.onFatal = onFatal
	}
	if b.state != StateUninitialized {
		b.fatal(errors.InvalidState(errors.PhaseInit, "pre_init called more than once"))
	}

	if log == nil {
		log = b.caps.Logger
	}
	if log == nil {
		log = zap.NewNop()
	}
	b.log = log.Named(Name)

	if b.onFatal == nil {
		b.fatal(errors.MissingCapability(errors.PhaseInit, string(hostcap.Panic)))
	}
	b.require(errors.PhaseInit, hostcap.Malloc, hostcap.StrCaseCmp, hostcap.Strtol)

	ctx := b.caps.NewContext()
	if ctx == nil {
		b.fatal(errors.New(errors.PhaseInit, errors.KindInvalidState).
			Capability(string(hostcap.Malloc)).
			Detail("context allocation failed").
			Build())
	}
	initContext(ctx)

	b.state = StateContextAllocated
	return ctx
}

func initContext(ctx *checkdenormal.Context) {
	ctx.FlushToZero = false
}

// InitCompute returns the compute-and-check descriptor bound to ctx.
func (b *Backend) InitCompute(ctx *checkdenormal.Context) Descriptor {
	return b.init(ctx, ModeCompute, computeEntries)
}

// InitCheckOnly returns the check-only descriptor bound to ctx.
func (b *Backend) InitCheckOnly(ctx *checkdenormal.Context) Descriptor {
	return b.init(ctx, ModeCheckOnly, checkOnlyEntries)
}

func (b *Backend) init(ctx *checkdenormal.Context, mode Mode, fill func(*Descriptor, fpcheck.Handler)) Descriptor {
	if b.state == StateUninitialized {
		b.fatal(errors.New(errors.PhaseInit, errors.KindNotInitialized).
			Detail("init called before pre_init").
			Build())
	}
	if ctx == nil {
		b.fatal(errors.InvalidInput(errors.PhaseInit, "nil context"))
	}

	b.printInformationHeader(ctx, mode)

	d := Descriptor{
		Finalize:       b.finalize,
		BackendName:    func() string { return Name },
		BackendVersion: func() string { return Version },
		mode:           mode,
		ctx:            ctx,
	}
	fill(&d, b.caps.DenormalHandler)

	b.state = StateActive
	return d
}

// printInformationHeader logs the active policy unless EnvSilentLoad
// silences it.
func (b *Backend) printInformationHeader(ctx *checkdenormal.Context, mode Mode) {
	b.require(errors.PhaseInit, hostcap.Getenv, hostcap.StrCaseCmp)

	if v, ok := b.caps.Getenv(EnvSilentLoad); ok && b.caps.StrCaseCmp(v, "True") == 0 {
		return
	}

	b.log.Info("load backend with",
		zap.Bool(optFlushToZero, ctx.FlushToZero),
		zap.Stringer("mode", mode),
		zap.Bool("hardware-fma", fpcheck.HardwareFMA()),
	)
}

// finalize releases backend-owned resources. The context stays with the host.
func (b *Backend) finalize(_ *checkdenormal.Context) {
	_ = b.log.Sync()
	b.state = StateFinalized
}

func (b *Backend) require(phase errors.Phase, names ...hostcap.Name) {
	if err := b.caps.Require(phase, names...); err != nil {
		b.fatal(err)
	}
}

func (b *Backend) fatal(err error) {
	b.log.Error("fatal backend error", zap.Error(err))
	hostcap.Fatal(b.onFatal, err)
}
