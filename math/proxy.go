package math

import "github.com/db47h/bigfloat"

// FMA sets z to x * y + u, computed with only one rounding according to o,
// and returns the status.
//
// This function is a proxy for z.FMA(o, x, y, u)
func FMA(z *bigfloat.Float, o bigfloat.Options, x, y, u *bigfloat.Float) bigfloat.Status {
	return z.FMA(o, x, y, u)
}

// Sqrt sets z to the square root of x rounded according to o, and returns
// the status. Sqrt(x < 0) is NaN with InvalidOperation.
//
// This function is a proxy for z.Sqrt(o, x)
func Sqrt(z *bigfloat.Float, o bigfloat.Options, x *bigfloat.Float) bigfloat.Status {
	return z.Sqrt(o, x)
}

// Exp sets z to e**x rounded according to o, and returns the status.
//
// This function is a proxy for z.Exp(o, x)
func Exp(z *bigfloat.Float, o bigfloat.Options, x *bigfloat.Float) bigfloat.Status {
	return z.Exp(o, x)
}

// Pow sets z to x**y rounded according to o, and returns the status.
//
// This function is a proxy for z.Pow(o, x, y)
func Pow(z *bigfloat.Float, o bigfloat.Options, x, y *bigfloat.Float) bigfloat.Status {
	return z.Pow(o, x, y)
}
