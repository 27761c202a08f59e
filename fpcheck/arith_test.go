package fpcheck

import (
	"math"
	"math/rand"
	"testing"
)

func TestFMA32_DoubleRoundingCase(t *testing.T) {
	// 641 * 6700417 = 2^32 + 1, so a*b+c = 1 + 2^-24 + 2^-56. The binary64
	// FMA rounds that to the binary32 midpoint 1 + 2^-24, and rounding again
	// would give 1; the correctly rounded binary32 result is 1 + 2^-23.
	a := float32(641.0 / (1 << 28))
	b := float32(6700417.0 / (1 << 28))
	c := float32(1)

	naive := float32(math.FMA(float64(a), float64(b), float64(c)))
	want := math.Nextafter32(1, 2)

	if naive != 1 {
		t.Fatalf("test vector no longer exercises double rounding: naive = %v", naive)
	}
	if got := FMA32(a, b, c); got != want {
		t.Errorf("FMA32 = %v, want %v", got, want)
	}
}

func TestFMA32_MatchesExact(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20000; i++ {
		a := randFloat32(rng)
		b := randFloat32(rng)
		c := randFloat32(rng)
		got := FMA32(a, b, c)
		want := fma32Exact(a, b, c)
		if got != want {
			t.Fatalf("FMA32(%g, %g, %g) = %g, want %g", a, b, c, got, want)
		}
	}
}

func randFloat32(rng *rand.Rand) float32 {
	for {
		f := math.Float32frombits(rng.Uint32())
		if !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0) && f != 0 {
			return f
		}
	}
}

func TestFMA32_SpecialValues(t *testing.T) {
	inf := float32(math.Inf(1))
	nan := float32(math.NaN())

	if got := FMA32(inf, 0, 1); !math.IsNaN(float64(got)) {
		t.Errorf("inf*0+1 = %v, want NaN", got)
	}
	if got := FMA32(nan, 1, 1); !math.IsNaN(float64(got)) {
		t.Errorf("nan*1+1 = %v, want NaN", got)
	}
	if got := FMA32(inf, 2, 1); !math.IsInf(float64(got), 1) {
		t.Errorf("inf*2+1 = %v, want +Inf", got)
	}
	if got := FMA32(math.MaxFloat32, 2, 0); !math.IsInf(float64(got), 1) {
		t.Errorf("overflow = %v, want +Inf", got)
	}
	negZero := float32(math.Copysign(0, -1))
	if got := FMA32(negZero, 1, negZero); got != 0 || !math.Signbit(float64(got)) {
		t.Errorf("-0*1 + -0 = %v, want -0", got)
	}
}

func TestFMA32_OverflowBoundary(t *testing.T) {
	// a*b = 2^128 - 2^103, the midpoint between MaxFloat32 and 2^128.
	a := float32(31*601) * 0x1p90
	b := float32(1801) * 0x1p13

	tests := []struct {
		name    string
		a, b, c float32
		want    float32
	}{
		{"just below midpoint", a, b, -1, math.MaxFloat32},
		{"just below negative midpoint", -a, b, 1, -math.MaxFloat32},
		{"midpoint ties to even", a, b, 0, float32(math.Inf(1))},
		{"just above midpoint", a, b, 1, float32(math.Inf(1))},
		{"max plus tiny", math.MaxFloat32, 1, 1, math.MaxFloat32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FMA32(tt.a, tt.b, tt.c)
			if got != tt.want {
				t.Errorf("FMA32(%g, %g, %g) = %g, want %g", tt.a, tt.b, tt.c, got, tt.want)
			}
			if exact := fma32Exact(tt.a, tt.b, tt.c); got != exact {
				t.Errorf("FMA32 = %g, exact = %g", got, exact)
			}
		})
	}
}

func TestFMA32_Subnormal(t *testing.T) {
	// 2^-75 * 2^-75 = 2^-150 is exactly half the smallest binary32
	// subnormal; ties-to-even rounds it to zero.
	a := float32(0x1p-75)
	if got := FMA32(a, a, 0); got != 0 {
		t.Errorf("2^-150 = %g, want 0", got)
	}
	// A little more than half rounds up to the smallest subnormal.
	b := math.Nextafter32(a, 1)
	if got := FMA32(a, b, 0); got != math.SmallestNonzeroFloat32 {
		t.Errorf("got %g, want smallest subnormal", got)
	}
}

func TestFMA64(t *testing.T) {
	// x*x - 1 with x = 1 + 2^-30: fused keeps the 2^-60 term
	x := 1 + 0x1p-30
	if got, want := FMA64(x, x, -1), 0x1p-29+0x1p-60; got != want {
		t.Errorf("FMA64 = %g, want %g", got, want)
	}
}

func TestNarrow(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float32
	}{
		{"exact", 1.5, 1.5},
		{"rounds", 0.1, float32(0.1)},
		{"below binary32 range", 1e-310, 0},
		{"binary32 subnormal", 1e-40, math.Float32frombits(0x000116c2)},
		{"overflow", 1e300, float32(math.Inf(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Narrow(tt.in); got != tt.want {
				t.Errorf("Narrow(%g) = %g (0x%08x), want %g", tt.in, got, math.Float32bits(got), tt.want)
			}
		})
	}

	if got := Narrow(math.NaN()); !math.IsNaN(float64(got)) {
		t.Errorf("Narrow(NaN) = %v", got)
	}
}

func TestHardwareFMA(t *testing.T) {
	// Only checks the call is safe on every platform.
	_ = HardwareFMA()
}
