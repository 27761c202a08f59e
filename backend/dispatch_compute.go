package backend

import (
	"github.com/wippyai/checkdenormal"
	"github.com/wippyai/checkdenormal/fpcheck"
)

// computeEntries fills d with entries that write the IEEE-754 result of the
// operation into res and then check it.
func computeEntries(d *Descriptor, h fpcheck.Handler) {
	d.AddFloat = computeBinary(h, add[float32])
	d.SubFloat = computeBinary(h, sub[float32])
	d.MulFloat = computeBinary(h, mul[float32])
	d.DivFloat = computeBinary(h, div[float32])

	d.AddDouble = computeBinary(h, add[float64])
	d.SubDouble = computeBinary(h, sub[float64])
	d.MulDouble = computeBinary(h, mul[float64])
	d.DivDouble = computeBinary(h, div[float64])

	d.FMAFloat = computeTernary(h, fpcheck.FMA32)
	d.FMADouble = computeTernary(h, fpcheck.FMA64)

	d.CastDoubleToFloat = func(a float64, res *float32, ctx *checkdenormal.Context) {
		*res = fpcheck.Narrow(a)
		fpcheck.CheckAndFlush(res, ctx, h)
	}
}

func computeBinary[T fpcheck.Float](h fpcheck.Handler, op func(a, b T) T) func(a, b T, res *T, ctx *checkdenormal.Context) {
	return func(a, b T, res *T, ctx *checkdenormal.Context) {
		*res = op(a, b)
		fpcheck.CheckAndFlush(res, ctx, h)
	}
}

func computeTernary[T fpcheck.Float](h fpcheck.Handler, op func(a, b, c T) T) func(a, b, c T, res *T, ctx *checkdenormal.Context) {
	return func(a, b, c T, res *T, ctx *checkdenormal.Context) {
		*res = op(a, b, c)
		fpcheck.CheckAndFlush(res, ctx, h)
	}
}

func add[T fpcheck.Float](a, b T) T { return a + b }
func sub[T fpcheck.Float](a, b T) T { return a - b }
func mul[T fpcheck.Float](a, b T) T { return a * b }
func div[T fpcheck.Float](a, b T) T { return a / b }
