// Package fpcheck implements the denormal check engine.
//
// One generic routine, CheckAndFlush, serves both float32 and float64. The
// only per-type input is the smallest positive normal magnitude:
//
//	float32  0x1p-126   ≈ 1.1754944e-38
//	float64  0x1p-1022  ≈ 2.2250738585072014e-308
//
// A value is denormal when its magnitude is below that threshold and it is
// not zero. NaN and infinities fail the comparison and are never reported.
// Flushing always stores +0, whatever the sign of the denormal.
//
// The package also carries the arithmetic primitives the compute dispatch
// table needs beyond Go's operators: a single-rounding binary32 FMA and the
// binary64 to binary32 narrowing.
package fpcheck
