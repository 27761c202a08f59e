package wasmhost

import (
	"context"
	"slices"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/checkdenormal/errors"
)

// Module is a compiled guest.
type Module struct {
	runtime  *Runtime
	compiled wazero.CompiledModule
}

// Import is one function a guest imports.
type Import struct {
	Module string
	Name   string
}

// Imports lists the interflop functions the guest uses.
func (m *Module) Imports() []Import {
	var out []Import
	for _, def := range m.compiled.ImportedFunctions() {
		mod, name, _ := def.Import()
		if mod == HostModule {
			out = append(out, Import{Module: mod, Name: name})
		}
	}
	return out
}

// Exports lists the guest's exported function names.
func (m *Module) Exports() []string {
	defs := m.compiled.ExportedFunctions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Instantiate creates an anonymous instance of the guest.
func (m *Module) Instantiate(ctx context.Context) (*Instance, error) {
	mod, err := m.runtime.rt.InstantiateModule(ctx, m.compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInstantiation, err, "instantiate module")
	}
	return &Instance{module: m, mod: mod}, nil
}

// Close releases the compiled code.
func (m *Module) Close(ctx context.Context) error {
	return m.compiled.Close(ctx)
}

// checkImports rejects interflop imports the descriptor does not provide or
// whose signature differs from the bound one.
func (m *Module) checkImports() error {
	for _, def := range m.compiled.ImportedFunctions() {
		mod, name, _ := def.Import()
		if mod != HostModule {
			continue
		}
		hf, ok := m.runtime.hostFunc(name)
		if !ok {
			return errors.New(errors.PhaseLoad, errors.KindNotFound).
				Entry(HostModule + "." + name).
				Detail("%s.%s is not provided by the %s descriptor", HostModule, name, m.runtime.desc.Mode()).
				Build()
		}
		if !slices.Equal(def.ParamTypes(), hf.ParamTypes) || !slices.Equal(def.ResultTypes(), hf.ResultTypes) {
			return errors.New(errors.PhaseLoad, errors.KindTypeMismatch).
				Entry(HostModule+"."+name).
				Detail("import signature %s does not match %s", signature(def.ParamTypes(), def.ResultTypes()), signature(hf.ParamTypes, hf.ResultTypes)).
				Build()
		}
	}
	return nil
}

func signature(params, results []api.ValueType) string {
	s := "("
	for i, p := range params {
		if i > 0 {
			s += " "
		}
		s += api.ValueTypeName(p)
	}
	s += ") -> ("
	for i, r := range results {
		if i > 0 {
			s += " "
		}
		s += api.ValueTypeName(r)
	}
	return s + ")"
}
