package main

import (
	"strconv"
	"strings"

	"github.com/wippyai/checkdenormal/backend"
	"github.com/wippyai/checkdenormal/errors"
)

// entryInfo describes a descriptor slot callable from the command line.
type entryInfo struct {
	name   string
	params []string
	typ    string
}

func (e entryInfo) signature() string {
	return e.name + "(" + strings.Join(e.params, ", ") + ") " + e.typ
}

// entries lists the arithmetic slots of desc. Check-only entries take the
// already computed result as their last operand.
func entries(desc *backend.Descriptor) []entryInfo {
	var out []entryInfo
	for _, s := range desc.Slots() {
		if !s.Present {
			continue
		}
		var info entryInfo
		switch s.Entry.(type) {
		case backend.BinaryFloat:
			info = entryInfo{params: []string{"a", "b"}, typ: "f32"}
		case backend.BinaryDouble:
			info = entryInfo{params: []string{"a", "b"}, typ: "f64"}
		case backend.TernaryFloat:
			info = entryInfo{params: []string{"a", "b", "c"}, typ: "f32"}
		case backend.TernaryDouble:
			info = entryInfo{params: []string{"a", "b", "c"}, typ: "f64"}
		case backend.CastFunc:
			info = entryInfo{params: []string{"a"}, typ: "f32"}
		default:
			continue
		}
		if desc.Mode() == backend.ModeCheckOnly {
			info.params = append(info.params, "res")
		}
		info.name = s.Name
		out = append(out, info)
	}
	return out
}

func findEntry(desc *backend.Descriptor, name string) (entryInfo, bool) {
	for _, e := range entries(desc) {
		if e.name == name {
			return e, true
		}
	}
	return entryInfo{}, false
}

// evalEntry calls the named slot with args converted to its operand type.
func evalEntry(desc *backend.Descriptor, name string, args []float64) (float64, error) {
	info, ok := findEntry(desc, name)
	if !ok {
		return 0, errors.NotFound(errors.PhaseCall, name)
	}
	if len(args) != len(info.params) {
		return 0, errors.New(errors.PhaseCall, errors.KindInvalidInput).
			Entry(name).
			Detail("%s expects %d operands, got %d", info.signature(), len(info.params), len(args)).
			Build()
	}

	ctx := desc.Context()
	checkOnly := desc.Mode() == backend.ModeCheckOnly
	entry, _ := desc.Lookup(name)

	switch fn := entry.(type) {
	case backend.BinaryFloat:
		var res float32
		if checkOnly {
			res = float32(args[2])
		}
		fn(float32(args[0]), float32(args[1]), &res, ctx)
		return float64(res), nil
	case backend.BinaryDouble:
		var res float64
		if checkOnly {
			res = args[2]
		}
		fn(args[0], args[1], &res, ctx)
		return res, nil
	case backend.TernaryFloat:
		var res float32
		if checkOnly {
			res = float32(args[3])
		}
		fn(float32(args[0]), float32(args[1]), float32(args[2]), &res, ctx)
		return float64(res), nil
	case backend.TernaryDouble:
		var res float64
		if checkOnly {
			res = args[3]
		}
		fn(args[0], args[1], args[2], &res, ctx)
		return res, nil
	case backend.CastFunc:
		var res float32
		if checkOnly {
			res = float32(args[1])
		}
		fn(args[0], &res, ctx)
		return float64(res), nil
	}
	return 0, errors.NotFound(errors.PhaseCall, name)
}

// parseArgs parses a comma separated operand list. Hexadecimal float
// literals such as 0x1p-1050 are accepted.
func parseArgs(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.New(errors.PhaseCall, errors.KindInvalidInput).
				Value(p).
				Cause(err).
				Detail("operand %d is not a number", i+1).
				Build()
		}
		out[i] = v
	}
	return out, nil
}
