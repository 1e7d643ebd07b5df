package math

import (
	"github.com/db47h/bigfloat"
)

var (
	_ln2  = constant{eval: ln2}
	_ln10 = constant{eval: ln10}
)

// Log sets z to the natural logarithm of x rounded according to o, and
// returns the status.
//
// Log uses the arithmetic-geometric mean and is faster than
// (*bigfloat.Float).Log at high precisions.
//
// Special cases are:
//
//	Log(+Inf) = +Inf
//	Log(±0) = -Inf, DivideByZero
//	Log(x < 0) = NaN, InvalidOperation
//	Log(NaN) = NaN
//	Log(1) = +0
func Log(z *bigfloat.Float, o bigfloat.Options, x *bigfloat.Float) bigfloat.Status {
	if s, ok := logSpecial(z, x); ok {
		return s
	}
	t := new(bigfloat.Float)
	ln(t, prec(o), x)
	return round(z, o, t)
}

// Log2 sets z to the binary logarithm of x rounded according to o, and returns
// the status. The result is exact if x is a power of two. Special cases are
// the same as for Log.
func Log2(z *bigfloat.Float, o bigfloat.Options, x *bigfloat.Float) bigfloat.Status {
	if s, ok := logSpecial(z, x); ok {
		return s
	}
	if x.MinPrec() == 1 {
		z.SetInt64(exponent(x) - 1)
		return z.Round(o)
	}
	p := prec(o)
	t := new(bigfloat.Float)
	ln(t, p, x)
	l := _ln2.get(new(bigfloat.Float), p+guard)
	t.Quo(work(p+guard), t, l)
	return round(z, o, t)
}

// Log10 sets z to the decimal logarithm of x rounded according to o, and
// returns the status. The result is exact if x is a power of ten. Special
// cases are the same as for Log.
func Log10(z *bigfloat.Float, o bigfloat.Options, x *bigfloat.Float) bigfloat.Status {
	if s, ok := logSpecial(z, x); ok {
		return s
	}
	p := prec(o)
	t := new(bigfloat.Float)
	ln(t, p, x)
	l := _ln10.get(new(bigfloat.Float), p+guard)
	t.Quo(work(p+guard), t, l)

	// 10**n is exactly representable for n >= 0 only
	if x.IsInt() {
		var r bigfloat.Float
		r.RoundToInt(work(p+guard), t)
		if n, acc := r.Int64(); acc == bigfloat.Exact && n >= 0 {
			var y bigfloat.Float
			y.PowUint(bigfloat.Options{Prec: bigfloat.PrecInf}, ten, uint64(n))
			if y.Cmp(x) == bigfloat.Equal {
				z.SetInt64(n)
				return z.Round(o)
			}
		}
	}
	return round(z, o, t)
}

func logSpecial(z, x *bigfloat.Float) (bigfloat.Status, bool) {
	switch {
	case x.IsNaN():
		z.SetNaN()
		return bigfloat.Ok, true
	case x.IsZero():
		z.SetInf(true)
		return bigfloat.DivideByZero, true
	case x.Signbit():
		z.SetNaN()
		return bigfloat.InvalidOperation, true
	case x.IsInf():
		z.SetInf(false)
		return bigfloat.Ok, true
	case x.Cmp(one) == bigfloat.Equal:
		z.SetZero(false)
		return bigfloat.Ok, true
	}
	return bigfloat.Ok, false
}

// ln sets z to the natural logarithm of the finite x > 0, x != 1 with at least
// p correct bits.
func ln(z *bigfloat.Float, p uint, x *bigfloat.Float) {
	extra := uint(guard)
	for {
		lost := logAGM(z, p+extra, x)
		if lost+guard/2 <= extra {
			return
		}
		// cancellation for x close to 1
		extra = lost + guard
	}
}

// logAGM sets z to log(x) computed with p bits of precision and returns the
// number of bits lost to cancellation.
//
// It uses the Salamin algorithm described in Michael Beeler, R. William
// Gosper, Richard Schroeppel, HAKMEM, Artificial Intelligence Memo No. 239,
// Item 143: for s > 2**(p/2), log(s) = π/(2×AGM(1, 4/s)) with an error below
// 2**-p.
func logAGM(z *bigfloat.Float, p uint, x *bigfloat.Float) uint {
	o := work(p)

	// scale x by 2**m so that s = x×2**m > 2**(p/2+2)
	m := int64(p/2+3) - exponent(x)
	if m < 0 {
		m = 0
	}
	s := new(bigfloat.Float)
	s.MulPow2(o, x, m)

	a := new(bigfloat.Float).SetUint64(1)
	b := new(bigfloat.Float)
	b.Quo(o, four, s)
	agm(z, a, b, p)
	z.MulPow2(o, z, 1)
	z.Quo(o, _pi.get(s, p), z)
	if m == 0 {
		return 0
	}

	// scale back: log(x) = log(s) - m×log(2)
	t := _ln2.get(new(bigfloat.Float), p)
	t.Mul(o, t, a.SetInt64(m))
	e := exponent(t)
	z.Sub(o, z, t)
	if z.IsZero() {
		return p
	}
	if d := e - exponent(z); d > 0 {
		return uint(d)
	}
	return 0
}

// ln2 computes log(2) to prec bits of precision.
//
// ln2 is a special case of logAGM where x = 2**m is a power of two. log(2**m)
// is computed directly and divided by m.
func ln2(z *bigfloat.Float, prec uint) {
	p := prec + guard
	o := work(p)
	m := int64(p/2 + 3)
	a := new(bigfloat.Float).SetUint64(1)
	b := new(bigfloat.Float)
	b.MulPow2(o, one, 2-m) // 4/2**m
	agm(z, a, b, p)
	z.MulPow2(o, z, 1)
	z.Quo(o, _pi.get(a, p), z)
	z.Quo(work(prec), z, b.SetInt64(m))
}

// ln10 computes log(10) to prec bits of precision.
func ln10(z *bigfloat.Float, prec uint) {
	ln(z, prec+guard, ten)
	z.Round(work(prec))
}
