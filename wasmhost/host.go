package wasmhost

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/checkdenormal"
	"github.com/wippyai/checkdenormal/backend"
	"github.com/wippyai/checkdenormal/errors"
)

// HostModule is the import module name guests use for intercepted operations.
const HostModule = "interflop"

var (
	f32 = api.ValueTypeF32
	f64 = api.ValueTypeF64
)

// HostFunc is one exported operation of the interflop module.
type HostFunc struct {
	Name        string
	Handler     api.GoModuleFunc
	ParamTypes  []api.ValueType
	ResultTypes []api.ValueType
}

// hostFuncs maps the descriptor's present arithmetic slots to wasm functions.
// Slots that have no wasm shape are skipped.
func hostFuncs(desc *backend.Descriptor) []HostFunc {
	ctx := desc.Context()
	checkOnly := desc.Mode() == backend.ModeCheckOnly

	var funcs []HostFunc
	for _, s := range desc.Slots() {
		if !s.Present {
			continue
		}
		var hf HostFunc
		switch fn := s.Entry.(type) {
		case backend.BinaryFloat:
			hf = binaryFloat(fn, ctx, checkOnly)
		case backend.BinaryDouble:
			hf = binaryDouble(fn, ctx, checkOnly)
		case backend.TernaryFloat:
			hf = ternaryFloat(fn, ctx, checkOnly)
		case backend.TernaryDouble:
			hf = ternaryDouble(fn, ctx, checkOnly)
		case backend.CastFunc:
			hf = cast(fn, ctx, checkOnly)
		default:
			continue
		}
		hf.Name = s.Name
		funcs = append(funcs, hf)
	}
	return funcs
}

func binaryFloat(fn backend.BinaryFloat, ctx *checkdenormal.Context, checkOnly bool) HostFunc {
	params := []api.ValueType{f32, f32}
	if checkOnly {
		params = append(params, f32)
	}
	return HostFunc{
		Handler: func(_ context.Context, _ api.Module, stack []uint64) {
			var res float32
			if checkOnly {
				res = api.DecodeF32(stack[2])
			}
			fn(api.DecodeF32(stack[0]), api.DecodeF32(stack[1]), &res, ctx)
			stack[0] = api.EncodeF32(res)
		},
		ParamTypes:  params,
		ResultTypes: []api.ValueType{f32},
	}
}

func binaryDouble(fn backend.BinaryDouble, ctx *checkdenormal.Context, checkOnly bool) HostFunc {
	params := []api.ValueType{f64, f64}
	if checkOnly {
		params = append(params, f64)
	}
	return HostFunc{
		Handler: func(_ context.Context, _ api.Module, stack []uint64) {
			var res float64
			if checkOnly {
				res = api.DecodeF64(stack[2])
			}
			fn(api.DecodeF64(stack[0]), api.DecodeF64(stack[1]), &res, ctx)
			stack[0] = api.EncodeF64(res)
		},
		ParamTypes:  params,
		ResultTypes: []api.ValueType{f64},
	}
}

func ternaryFloat(fn backend.TernaryFloat, ctx *checkdenormal.Context, checkOnly bool) HostFunc {
	params := []api.ValueType{f32, f32, f32}
	if checkOnly {
		params = append(params, f32)
	}
	return HostFunc{
		Handler: func(_ context.Context, _ api.Module, stack []uint64) {
			var res float32
			if checkOnly {
				res = api.DecodeF32(stack[3])
			}
			fn(api.DecodeF32(stack[0]), api.DecodeF32(stack[1]), api.DecodeF32(stack[2]), &res, ctx)
			stack[0] = api.EncodeF32(res)
		},
		ParamTypes:  params,
		ResultTypes: []api.ValueType{f32},
	}
}

func ternaryDouble(fn backend.TernaryDouble, ctx *checkdenormal.Context, checkOnly bool) HostFunc {
	params := []api.ValueType{f64, f64, f64}
	if checkOnly {
		params = append(params, f64)
	}
	return HostFunc{
		Handler: func(_ context.Context, _ api.Module, stack []uint64) {
			var res float64
			if checkOnly {
				res = api.DecodeF64(stack[3])
			}
			fn(api.DecodeF64(stack[0]), api.DecodeF64(stack[1]), api.DecodeF64(stack[2]), &res, ctx)
			stack[0] = api.EncodeF64(res)
		},
		ParamTypes:  params,
		ResultTypes: []api.ValueType{f64},
	}
}

func cast(fn backend.CastFunc, ctx *checkdenormal.Context, checkOnly bool) HostFunc {
	params := []api.ValueType{f64}
	if checkOnly {
		params = append(params, f32)
	}
	return HostFunc{
		Handler: func(_ context.Context, _ api.Module, stack []uint64) {
			var res float32
			if checkOnly {
				res = api.DecodeF32(stack[1])
			}
			fn(api.DecodeF64(stack[0]), &res, ctx)
			stack[0] = api.EncodeF32(res)
		},
		ParamTypes:  params,
		ResultTypes: []api.ValueType{f32},
	}
}

// instantiateHost builds and instantiates the interflop module in rt.
func instantiateHost(ctx context.Context, rt wazero.Runtime, funcs []HostFunc) (api.Module, error) {
	builder := rt.NewHostModuleBuilder(HostModule)
	for _, f := range funcs {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(f.Handler, f.ParamTypes, f.ResultTypes).
			Export(f.Name)
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Registration(errors.PhaseBind, HostModule, "*", err)
	}
	return mod, nil
}
