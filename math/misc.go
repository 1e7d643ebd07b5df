// Package math implements elementary functions for bigfloat.Floats.
//
// All functions set a receiver z to the result rounded according to the given
// Options and return the status of the operation, like the methods of
// bigfloat.Float. When o.Prec is bigfloat.PrecInf, functions whose result is
// irrational use a precision of InfPrec bits.
//
// Pi and Hypot are correctly rounded. The other functions have an error below
// one ulp.
package math

import (
	"sync"

	"github.com/db47h/bigfloat"
)

// InfPrec is the precision used for irrational results when the requested
// precision is bigfloat.PrecInf.
const InfPrec = 128

// guard is the number of extra bits used for intermediate results.
const guard = 64

// constants
var (
	one  = new(bigfloat.Float).SetUint64(1)
	four = new(bigfloat.Float).SetUint64(4)
	half = new(bigfloat.Float).SetFloat64(0.5)
	ten  = new(bigfloat.Float).SetUint64(10)
)

func prec(o bigfloat.Options) uint {
	switch o.Prec {
	case 0:
		return bigfloat.DefaultPrec
	case bigfloat.PrecInf:
		return InfPrec
	}
	return o.Prec
}

// work returns rounding options for intermediate results of precision p.
func work(p uint) bigfloat.Options {
	return bigfloat.Options{Prec: p, Mode: bigfloat.ToNearestEven}
}

// round sets z to x rounded according to o. The result is assumed to be
// irrational.
func round(z *bigfloat.Float, o bigfloat.Options, x *bigfloat.Float) bigfloat.Status {
	if o.Prec == bigfloat.PrecInf {
		o.Prec = InfPrec
	}
	z.Copy(x)
	return z.Round(o) | bigfloat.Inexact
}

// exponent returns the binary exponent of x such that 0.5 <= |x|×2**-exp < 1.
func exponent(x *bigfloat.Float) int64 {
	return x.MantExp(nil)
}

// A constant caches the value of a mathematical constant and recomputes it
// when more precision is needed.
type constant struct {
	mu   sync.Mutex
	val  *bigfloat.Float
	prec uint
	eval func(z *bigfloat.Float, prec uint)
}

// get sets z to the constant with at least prec bits of precision. The
// result may have more bits than requested.
func (c *constant) get(z *bigfloat.Float, prec uint) *bigfloat.Float {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.val == nil || c.prec < prec {
		// grow by at least half to amortize recomputation
		if p := c.prec + c.prec/2; p > prec {
			prec = p
		}
		v := new(bigfloat.Float)
		c.eval(v, prec)
		c.val, c.prec = v, prec
	}
	return z.Copy(c.val)
}

// agm sets z to the arithmetic-geometric mean of a and b computed with p bits
// of precision. a and b are not preserved.
func agm(z, a, b *bigfloat.Float, p uint) *bigfloat.Float {
	o := work(p)
	t := new(bigfloat.Float)
	for {
		t.Copy(a)
		a.Add(o, a, b) // a_n+1 = (a_n+b_n)/2
		a.MulPow2(o, a, -1)
		b.Mul(o, t, b) // b_n+1 = sqrt(a_n × b_n)
		b.Sqrt(o, b)
		if converged(a, b, p) {
			break
		}
	}
	z.Add(o, a, b)
	z.MulPow2(o, z, -1)
	return z
}

// converged reports whether a and b agree on about half of p bits. The
// iterations of agm and Gauss-Legendre converge quadratically so one more step
// yields p bits.
func converged(a, b *bigfloat.Float, p uint) bool {
	var d bigfloat.Float
	d.Sub(work(p), a, b)
	return d.IsZero() || exponent(a)-exponent(&d) > int64(p/2)+4
}
