package fpcheck

import (
	"unsafe"

	"github.com/wippyai/checkdenormal"
)

// Float is the set of precisions the engine is instantiated for.
type Float interface {
	~float32 | ~float64
}

// Handler is notified, with no arguments, each time a denormal is detected.
// A nil Handler means none is registered.
type Handler func()

var (
	minNormal32 float32 = 0x1p-126
	minNormal64 float64 = 0x1p-1022
)

// MinNormal returns the smallest positive normal value of T.
func MinNormal[T Float]() T {
	var zero T
	if unsafe.Sizeof(zero) == 4 {
		return T(minNormal32)
	}
	return T(minNormal64)
}

// IsDenormal reports whether x is nonzero with magnitude below MinNormal.
func IsDenormal[T Float](x T) bool {
	mag := x
	if mag < 0 {
		mag = -mag
	}
	return mag < MinNormal[T]() && x != 0
}

// CheckAndFlush notifies h when *res is denormal and, if ctx asks for
// flush-to-zero, overwrites it with +0. Any other value is left alone.
// ctx is only read.
func CheckAndFlush[T Float](res *T, ctx *checkdenormal.Context, h Handler) {
	if !IsDenormal(*res) {
		return
	}
	if h != nil {
		h()
	}
	if ctx.FlushToZero {
		*res = 0
	}
}
