// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

// Sqrt sets z to the rounded square root of x and returns the status. The
// result is correctly rounded.
//
// Special cases are:
//
//	Sqrt(±0) = ±0 (IEEE754-2008 requires √±0 = ±0)
//	Sqrt(+Inf) = +Inf
//	Sqrt(x < 0) = NaN, InvalidOperation
//	Sqrt(NaN) = NaN
func (z *Float) Sqrt(o Options, x *Float) Status {
	x.check()
	z.check()
	if debugFloat {
		x.validate()
	}

	switch {
	case x.form == nan:
		z.SetNaN()
		return Ok
	case x.neg && x.form != zero:
		// following IEEE754-2008 (section 7.2)
		return z.setNaN()
	case x.form != finite:
		z.form = x.form
		z.neg = x.neg
		return Ok
	}

	o = o.fallback(len(x.mant))
	prec := o.prec()

	// x = M × 2**E with M an integer. Compute
	//
	//	√x = √(M × 2**s) × 2**((E-s)/2)
	//
	// with s >= 0 such that E-s is even and the integer square root has at
	// least prec+2 bits. The sticky bit is set if the root is inexact.
	E := x.exp - int64(len(x.mant))*_W
	var s int64
	if n := 2*int64(prec+2) - int64(x.mant.bitLen()); n > 0 {
		s = n
	}
	if (E-s)&1 != 0 {
		s++
	}

	m := z.ctx.getNat(0)
	*m = m.shl(x.mant, uint(s))
	r := z.ctx.getNat(0)
	*r = r.sqrt(*m)

	// sticky bit
	t := z.ctx.getNat(0)
	*t = t.mul(*r, *r)
	var sbit uint
	if t.cmp(*m) != 0 {
		sbit = 1
	}
	z.ctx.putNat(t)
	z.ctx.putNat(m)

	z.neg = false
	return z.setIntExp(o, r, (E-s)/2, sbit)
}

// setIntExp sets z to the finite value *m × 2**e, rounded according to o with
// the sticky bit sbit, and recycles *m as z's mantissa. *m must not be zero.
func (z *Float) setIntExp(o Options, m *nat, e int64, sbit uint) Status {
	z.swapMant(m)
	z.setMant(e + int64(z.mant.bitLen()))
	return z.round(o, sbit)
}
