package math

import (
	"github.com/db47h/bigfloat"
)

var exact = bigfloat.Options{Prec: bigfloat.PrecInf}

// Hypot sets z to Sqrt(x*x + y*y) rounded according to o, and returns the
// status. The result is correctly rounded unless x or y is too large or
// too small for its square to be represented.
//
// Special cases are:
//
//	Hypot(±Inf, y) = +Inf
//	Hypot(x, ±Inf) = +Inf
//	Hypot(NaN, y) = NaN
//	Hypot(x, NaN) = NaN
func Hypot(z *bigfloat.Float, o bigfloat.Options, x, y *bigfloat.Float) bigfloat.Status {
	switch {
	case x.IsInf() || y.IsInf():
		z.SetInf(false)
		return bigfloat.Ok
	case x.IsNaN() || y.IsNaN():
		z.SetNaN()
		return bigfloat.Ok
	}
	e := exponent(x)
	if x.IsZero() || !y.IsZero() && exponent(y) > e {
		e = exponent(y)
	}
	if e < bigfloat.MinExp/2 || e > bigfloat.MaxExp/2 {
		// the squares would not fit the exponent range
		var xs, ys bigfloat.Float
		xs.MulPow2(exact, x, -e)
		ys.MulPow2(exact, y, -e)
		s := hypot(z, o, &xs, &ys)
		return s | z.MulPow2(o, z, e)
	}
	return hypot(z, o, x, y)
}

// hypot computes x*x + y*y exactly and rounds once in Sqrt.
func hypot(z *bigfloat.Float, o bigfloat.Options, x, y *bigfloat.Float) bigfloat.Status {
	var xx, yy bigfloat.Float
	xx.Mul(exact, x, x)
	yy.Mul(exact, y, y)
	xx.Add(exact, &xx, &yy)
	return z.Sqrt(o, &xx)
}
