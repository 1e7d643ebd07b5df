package math

import (
	"github.com/db47h/bigfloat"
)

// Expm1 sets z to e**x - 1 rounded according to o, and returns the status. It
// is more accurate than Exp(x) - 1 when x is near zero.
//
// Special cases are:
//
//	Expm1(±0) = ±0
//	Expm1(+Inf) = +Inf
//	Expm1(-Inf) = -1
//	Expm1(NaN) = NaN
func Expm1(z *bigfloat.Float, o bigfloat.Options, x *bigfloat.Float) bigfloat.Status {
	switch {
	case x.IsNaN():
		z.SetNaN()
		return bigfloat.Ok
	case x.IsZero():
		z.Copy(x)
		return bigfloat.Ok
	case x.IsInf():
		if x.Signbit() {
			z.SetInt64(-1)
		} else {
			z.SetInf(false)
		}
		return bigfloat.Ok
	}

	p := prec(o) + guard
	t := new(bigfloat.Float)
	if x.CmpAbs(half) == bigfloat.Less {
		expm1T(t, p, x)
		return round(z, o, t)
	}
	// |e**x - 1| > 0.39: no cancellation
	if s := t.Exp(work(p), x); s&bigfloat.Overflow != 0 {
		z.SetInf(false)
		return s
	}
	t.Sub(work(p), t, one)
	return round(z, o, t)
}

// expm1T sets z to the value of e**x-1 computed with the Taylor series with p
// bits of precision, and returns z. |x| must be below 1/2.
func expm1T(z *bigfloat.Float, p uint, x *bigfloat.Float) *bigfloat.Float {
	var (
		o    = work(p)
		term = new(bigfloat.Float).Copy(x) // x**k/k!
		k    = new(bigfloat.Float)
	)
	z.Copy(x)
	for i := int64(2); ; i++ {
		term.Mul(o, term, x)
		term.Quo(o, term, k.SetInt64(i))
		if term.IsZero() || exponent(z)-exponent(term) > int64(p) {
			break
		}
		z.Add(o, z, term)
	}
	return z
}
