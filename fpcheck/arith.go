package fpcheck

import (
	"math"
	"math/big"
)

// exactPrec covers the full span of a binary32 a*b+c: product bits down to
// 2^-298 and addend bits up to 2^128.
const exactPrec = 1024

// FMA64 computes a*b+c with a single rounding.
func FMA64(a, b, c float64) float64 {
	return math.FMA(a, b, c)
}

// FMA32 computes a*b+c rounded once to binary32.
//
// The binary64 FMA is exact except for its own rounding, and a binary32
// product always fits in binary64. Rounding that result again to binary32
// only differs from a direct rounding when the binary64 result lands exactly
// on a binary32 midpoint; those cases are recomputed exactly.
func FMA32(a, b, c float32) float32 {
	r := math.FMA(float64(a), float64(b), float64(c))
	f := float32(r)
	if r == 0 || math.IsNaN(r) || math.IsInf(r, 0) || float64(f) == r {
		return f
	}
	// Near the overflow threshold the upper neighbour is 2^128, which has no
	// binary32 encoding; decide those exactly.
	if math.Abs(r) >= math.MaxFloat32 {
		return fma32Exact(a, b, c)
	}
	if !onMidpoint32(r, f) {
		return f
	}
	return fma32Exact(a, b, c)
}

// onMidpoint32 reports whether r lies exactly halfway between f, its
// binary32 rounding, and the next binary32 value on r's side.
func onMidpoint32(r float64, f float32) bool {
	dir := float32(math.Inf(1))
	if r < float64(f) {
		dir = float32(math.Inf(-1))
	}
	n := math.Nextafter32(f, dir)
	if math.IsInf(float64(n), 0) {
		return false
	}
	return r-float64(f) == float64(n)-r
}

func fma32Exact(a, b, c float32) float32 {
	x := new(big.Float).SetPrec(exactPrec).SetFloat64(float64(a))
	y := new(big.Float).SetPrec(exactPrec).SetFloat64(float64(b))
	z := new(big.Float).SetPrec(exactPrec).SetFloat64(float64(c))
	x.Mul(x, y)
	x.Add(x, z)
	f, _ := x.Float32()
	return f
}

// Narrow converts a binary64 value to binary32 with round-to-nearest-even,
// producing a binary32 subnormal or zero when the magnitude is too small.
func Narrow(x float64) float32 {
	return float32(x)
}
