package wasmhost

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/checkdenormal/backend"
	"github.com/wippyai/checkdenormal/errors"
)

// Runtime is a wazero runtime with the interflop host module bound to one
// descriptor.
type Runtime struct {
	rt    wazero.Runtime
	desc  *backend.Descriptor
	host  api.Module
	funcs []HostFunc
}

// New creates a runtime and binds desc as the interflop host module.
func New(ctx context.Context, desc *backend.Descriptor) (*Runtime, error) {
	if desc == nil {
		return nil, errors.InvalidInput(errors.PhaseBind, "descriptor is nil")
	}
	if desc.Context() == nil {
		return nil, errors.NotInitialized(errors.PhaseBind, "descriptor context")
	}

	rt := wazero.NewRuntime(ctx)
	funcs := hostFuncs(desc)
	host, err := instantiateHost(ctx, rt, funcs)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}

	Logger().Debug("bound host module",
		zap.String("module", HostModule),
		zap.Stringer("mode", desc.Mode()),
		zap.Int("functions", len(funcs)))

	return &Runtime{
		rt:    rt,
		desc:  desc,
		host:  host,
		funcs: funcs,
	}, nil
}

// HostFunctions lists the names exported by the interflop module.
func (r *Runtime) HostFunctions() []string {
	names := make([]string, len(r.funcs))
	for i, f := range r.funcs {
		names[i] = f.Name
	}
	return names
}

// Descriptor returns the bound descriptor.
func (r *Runtime) Descriptor() *backend.Descriptor {
	return r.desc
}

// LoadWASM compiles a core WebAssembly module. Its interflop imports must
// match the exported host functions.
func (r *Runtime) LoadWASM(ctx context.Context, wasm []byte) (*Module, error) {
	compiled, err := r.rt.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	m := &Module{runtime: r, compiled: compiled}
	if err := m.checkImports(); err != nil {
		_ = compiled.Close(ctx)
		return nil, err
	}
	return m, nil
}

// Close releases the runtime and every instance created from it.
func (r *Runtime) Close(ctx context.Context) error {
	return r.rt.Close(ctx)
}

func (r *Runtime) hostFunc(name string) (HostFunc, bool) {
	for _, f := range r.funcs {
		if f.Name == name {
			return f, true
		}
	}
	return HostFunc{}, false
}
