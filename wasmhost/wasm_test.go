package wasmhost

// Minimal core wasm assembler for test guests.

const (
	tF32 byte = 0x7d
	tF64 byte = 0x7c

	opLocalGet byte = 0x20
	opCall     byte = 0x10
	opF64Mul   byte = 0xa2
	opEnd      byte = 0x0b
)

type funcType struct {
	params, results []byte
}

type guestImport struct {
	name string
	typ  funcType
}

type guestFunc struct {
	export string
	typ    funcType
	body   []byte
}

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func vec(items ...[]byte) []byte {
	out := uleb(uint32(len(items)))
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

func name(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func section(id byte, content []byte) []byte {
	out := []byte{id}
	out = append(out, uleb(uint32(len(content)))...)
	return append(out, content...)
}

func (ft funcType) encode() []byte {
	out := []byte{0x60}
	out = append(out, uleb(uint32(len(ft.params)))...)
	out = append(out, ft.params...)
	out = append(out, uleb(uint32(len(ft.results)))...)
	return append(out, ft.results...)
}

// assemble builds a module importing imports from the interflop module and
// defining funcs. Imports take function indices 0..len(imports)-1.
func assemble(imports []guestImport, funcs []guestFunc) []byte {
	var types [][]byte
	var importEntries, funcEntries, exportEntries, bodies [][]byte

	for i, imp := range imports {
		types = append(types, imp.typ.encode())
		entry := append(name(HostModule), name(imp.name)...)
		entry = append(entry, 0x00)
		entry = append(entry, uleb(uint32(i))...)
		importEntries = append(importEntries, entry)
	}
	// Every function has its own type, so type and function indices coincide.
	for i, f := range funcs {
		typeIdx := uint32(len(imports) + i)
		types = append(types, f.typ.encode())
		funcEntries = append(funcEntries, uleb(typeIdx))

		exp := append(name(f.export), 0x00)
		exp = append(exp, uleb(typeIdx)...)
		exportEntries = append(exportEntries, exp)

		body := append([]byte{0x00}, f.body...)
		body = append(body, opEnd)
		bodies = append(bodies, append(uleb(uint32(len(body))), body...))
	}

	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	out = append(out, section(1, vec(types...))...)
	if len(importEntries) > 0 {
		out = append(out, section(2, vec(importEntries...))...)
	}
	out = append(out, section(3, vec(funcEntries...))...)
	out = append(out, section(7, vec(exportEntries...))...)
	out = append(out, section(10, vec(bodies...))...)
	return out
}

func localGet(i byte) []byte { return []byte{opLocalGet, i} }
func call(i byte) []byte     { return []byte{opCall, i} }

func code(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
