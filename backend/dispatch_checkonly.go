package backend

import (
	"github.com/wippyai/checkdenormal"
	"github.com/wippyai/checkdenormal/fpcheck"
)

// checkOnlyEntries fills d with entries that leave the arithmetic to the
// caller: res already holds the result when the entry runs.
func checkOnlyEntries(d *Descriptor, h fpcheck.Handler) {
	d.AddFloat = checkBinary[float32](h)
	d.SubFloat = checkBinary[float32](h)
	d.MulFloat = checkBinary[float32](h)
	d.DivFloat = checkBinary[float32](h)

	d.AddDouble = checkBinary[float64](h)
	d.SubDouble = checkBinary[float64](h)
	d.MulDouble = checkBinary[float64](h)
	d.DivDouble = checkBinary[float64](h)

	d.FMAFloat = checkTernary[float32](h)
	d.FMADouble = checkTernary[float64](h)

	d.CastDoubleToFloat = func(_ float64, res *float32, ctx *checkdenormal.Context) {
		fpcheck.CheckAndFlush(res, ctx, h)
	}
}

func checkBinary[T fpcheck.Float](h fpcheck.Handler) func(a, b T, res *T, ctx *checkdenormal.Context) {
	return func(_, _ T, res *T, ctx *checkdenormal.Context) {
		fpcheck.CheckAndFlush(res, ctx, h)
	}
}

func checkTernary[T fpcheck.Float](h fpcheck.Handler) func(a, b, c T, res *T, ctx *checkdenormal.Context) {
	return func(_, _, _ T, res *T, ctx *checkdenormal.Context) {
		fpcheck.CheckAndFlush(res, ctx, h)
	}
}
