package wasmhost

import (
	"context"
	"math"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/checkdenormal/errors"
)

// Instance is a running guest.
type Instance struct {
	module *Module
	mod    api.Module
}

// Call invokes an exported guest function. Arguments are converted to the
// export's parameter types; integer parameters must hold integral values in
// range. Results are returned as float64.
func (i *Instance) Call(ctx context.Context, name string, args ...float64) ([]float64, error) {
	if i.mod == nil {
		return nil, errors.NotInitialized(errors.PhaseCall, "instance")
	}

	fn := i.mod.ExportedFunction(name)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseCall, name)
	}

	def := fn.Definition()
	params := def.ParamTypes()
	if len(args) != len(params) {
		return nil, errors.New(errors.PhaseCall, errors.KindInvalidInput).
			Entry(name).
			Detail("expected %d arguments, got %d", len(params), len(args)).
			Build()
	}

	raw := make([]uint64, len(args))
	for n, v := range args {
		enc, err := encode(name, params[n], v)
		if err != nil {
			return nil, err
		}
		raw[n] = enc
	}

	out, err := fn.Call(ctx, raw...)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCall, errors.KindTrap, err, "call "+name)
	}

	results := def.ResultTypes()
	decoded := make([]float64, len(out))
	for n, r := range out {
		decoded[n] = decode(results[n], r)
	}
	return decoded, nil
}

// Exports lists the guest's exported function names.
func (i *Instance) Exports() []string {
	return i.module.Exports()
}

func (i *Instance) Close(ctx context.Context) error {
	return i.mod.Close(ctx)
}

func encode(entry string, t api.ValueType, v float64) (uint64, error) {
	switch t {
	case api.ValueTypeF32:
		return api.EncodeF32(float32(v)), nil
	case api.ValueTypeF64:
		return api.EncodeF64(v), nil
	case api.ValueTypeI32:
		if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
			return 0, errors.TypeMismatch(errors.PhaseCall, entry, v, "i32")
		}
		return api.EncodeI32(int32(v)), nil
	case api.ValueTypeI64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, errors.TypeMismatch(errors.PhaseCall, entry, v, "i64")
		}
		return api.EncodeI64(int64(v)), nil
	}
	return 0, errors.TypeMismatch(errors.PhaseCall, entry, v, api.ValueTypeName(t))
}

func decode(t api.ValueType, v uint64) float64 {
	switch t {
	case api.ValueTypeF32:
		return float64(api.DecodeF32(v))
	case api.ValueTypeF64:
		return api.DecodeF64(v)
	case api.ValueTypeI32:
		return float64(api.DecodeI32(v))
	case api.ValueTypeI64:
		return float64(int64(v))
	}
	return 0
}
