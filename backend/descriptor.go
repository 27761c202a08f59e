package backend

import (
	"github.com/wippyai/checkdenormal"
)

// Mode identifies a dispatch table build.
type Mode int

const (
	// ModeCompute entries perform the arithmetic, then check the result.
	ModeCompute Mode = iota
	// ModeCheckOnly entries check a result the caller already computed.
	ModeCheckOnly
)

func (m Mode) String() string {
	switch m {
	case ModeCompute:
		return "compute"
	case ModeCheckOnly:
		return "check-only"
	}
	return "unknown"
}

// Entry signatures. The output location is both input (check-only) and
// output (compute); the context is only read.
type (
	BinaryFloat   func(a, b float32, res *float32, ctx *checkdenormal.Context)
	BinaryDouble  func(a, b float64, res *float64, ctx *checkdenormal.Context)
	TernaryFloat  func(a, b, c float32, res *float32, ctx *checkdenormal.Context)
	TernaryDouble func(a, b, c float64, res *float64, ctx *checkdenormal.Context)
	CastFunc      func(a float64, res *float32, ctx *checkdenormal.Context)
	CmpFloat      func(p Predicate, a, b float32, res *bool, ctx *checkdenormal.Context)
	CmpDouble     func(p Predicate, a, b float64, res *bool, ctx *checkdenormal.Context)
	FunctionHook  func(name string, ctx *checkdenormal.Context)
	UserCall      func(id int, args []any, ctx *checkdenormal.Context)
	FinalizeFunc  func(ctx *checkdenormal.Context)
)

// Predicate selects a floating-point comparison for the cmp slots.
type Predicate int

const (
	PredicateEQ Predicate = iota
	PredicateNE
	PredicateLT
	PredicateLE
	PredicateGT
	PredicateGE
)

// Descriptor is the table of entry points a host binds to. A nil field is an
// absent capability.
type Descriptor struct {
	AddFloat BinaryFloat
	SubFloat BinaryFloat
	MulFloat BinaryFloat
	DivFloat BinaryFloat
	CmpFloat CmpFloat

	AddDouble BinaryDouble
	SubDouble BinaryDouble
	MulDouble BinaryDouble
	DivDouble BinaryDouble
	CmpDouble CmpDouble

	CastDoubleToFloat CastFunc

	FMAFloat  TernaryFloat
	FMADouble TernaryDouble

	EnterFunction FunctionHook
	ExitFunction  FunctionHook
	UserCall      UserCall

	Finalize       FinalizeFunc
	BackendName    func() string
	BackendVersion func() string

	mode Mode
	ctx  *checkdenormal.Context
}

// Mode reports which dispatch build the entries come from.
func (d Descriptor) Mode() Mode { return d.mode }

// Context returns the policy context the table was built for.
func (d Descriptor) Context() *checkdenormal.Context { return d.ctx }

// Slot is one named entry of a Descriptor.
type Slot struct {
	Name    string
	Entry   any
	Present bool
}

// Slot names, in table order.
const (
	SlotAddFloat          = "add_float"
	SlotSubFloat          = "sub_float"
	SlotMulFloat          = "mul_float"
	SlotDivFloat          = "div_float"
	SlotCmpFloat          = "cmp_float"
	SlotAddDouble         = "add_double"
	SlotSubDouble         = "sub_double"
	SlotMulDouble         = "mul_double"
	SlotDivDouble         = "div_double"
	SlotCmpDouble         = "cmp_double"
	SlotCastDoubleToFloat = "cast_double_to_float"
	SlotFMAFloat          = "fma_float"
	SlotFMADouble         = "fma_double"
	SlotEnterFunction     = "enter_function"
	SlotExitFunction      = "exit_function"
	SlotUserCall          = "user_call"
	SlotFinalize          = "finalize"
)

// Slots lists every slot of the table with its presence.
func (d Descriptor) Slots() []Slot {
	return []Slot{
		slot(SlotAddFloat, d.AddFloat, d.AddFloat != nil),
		slot(SlotSubFloat, d.SubFloat, d.SubFloat != nil),
		slot(SlotMulFloat, d.MulFloat, d.MulFloat != nil),
		slot(SlotDivFloat, d.DivFloat, d.DivFloat != nil),
		slot(SlotCmpFloat, d.CmpFloat, d.CmpFloat != nil),
		slot(SlotAddDouble, d.AddDouble, d.AddDouble != nil),
		slot(SlotSubDouble, d.SubDouble, d.SubDouble != nil),
		slot(SlotMulDouble, d.MulDouble, d.MulDouble != nil),
		slot(SlotDivDouble, d.DivDouble, d.DivDouble != nil),
		slot(SlotCmpDouble, d.CmpDouble, d.CmpDouble != nil),
		slot(SlotCastDoubleToFloat, d.CastDoubleToFloat, d.CastDoubleToFloat != nil),
		slot(SlotFMAFloat, d.FMAFloat, d.FMAFloat != nil),
		slot(SlotFMADouble, d.FMADouble, d.FMADouble != nil),
		slot(SlotEnterFunction, d.EnterFunction, d.EnterFunction != nil),
		slot(SlotExitFunction, d.ExitFunction, d.ExitFunction != nil),
		slot(SlotUserCall, d.UserCall, d.UserCall != nil),
		slot(SlotFinalize, d.Finalize, d.Finalize != nil),
	}
}

// Lookup returns the entry bound to name. ok is false for absent slots and
// unknown names.
func (d Descriptor) Lookup(name string) (entry any, ok bool) {
	for _, s := range d.Slots() {
		if s.Name == name {
			return s.Entry, s.Present
		}
	}
	return nil, false
}

func slot(name string, entry any, present bool) Slot {
	if !present {
		return Slot{Name: name}
	}
	return Slot{Name: name, Entry: entry, Present: true}
}
