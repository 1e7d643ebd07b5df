package math

import (
	"github.com/db47h/bigfloat"
)

var _pi = constant{eval: pi}

// Pi sets z to π rounded according to o and returns the status.
//
// The last value of π computed is cached. Pi is safe for concurrent use.
func Pi(z *bigfloat.Float, o bigfloat.Options) bigfloat.Status {
	t := _pi.get(new(bigfloat.Float), prec(o)+guard)
	return round(z, o, t)
}

// pi computes π with the Gauss-Legendre algorithm to prec bits of precision.
func pi(z *bigfloat.Float, prec uint) {
	// Increase precision. The algorithm loses a few bits per iteration and
	// the final rounding must not be affected.
	p := prec + guard
	o := work(p)

	var (
		a = new(bigfloat.Float).SetUint64(1)
		b = new(bigfloat.Float)
		t = new(bigfloat.Float).SetFloat64(0.25)
		u = new(bigfloat.Float)
		k int64 // p = 2**k
	)
	b.Sqrt(o, half) // 1/√2

	for {
		u.Copy(a)      // a_n
		a.Add(o, a, b) // a_n+1
		a.MulPow2(o, a, -1)
		b.Mul(o, u, b) // b_n+1
		b.Sqrt(o, b)

		// t = t - p×(a_n - a_n+1)**2
		u.Sub(o, u, a)
		u.Mul(o, u, u)
		u.MulPow2(o, u, k)
		t.Sub(o, t, u)
		k++

		if converged(a, b, p) {
			break
		}
	}
	// π = (a+b)**2 / 4t
	z.Add(o, a, b)
	z.Mul(o, z, z)
	t.MulPow2(o, t, 2)
	z.Quo(work(prec), z, t)
}
