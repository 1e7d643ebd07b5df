// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

// Mod sets z to the rounded floating-point remainder of x/y, like C's fmod,
// and returns the status. The result has the sign of x and a magnitude
// smaller than |y|. The exact remainder is always representable at the
// precision of x or y, so that with sufficient precision the result is exact.
//
// Special cases are:
//
//	Mod(±Inf, y) = NaN, InvalidOperation
//	Mod(±0, ±0) = NaN, InvalidOperation
//	Mod(x, ±0) = NaN, DivideByZero for finite x != 0
//	Mod(x, ±Inf) = x for finite x
//	Mod(±0, y) = ±0 for finite y != 0
//	Mod(x, NaN) = Mod(NaN, y) = NaN
func (z *Float) Mod(o Options, x, y *Float) Status {
	if r, ok := z.remSpecial(o, x, y); !ok {
		return r
	}
	if x.ucmp(y) < 0 {
		z.Copy(x)
		return z.round(o, 0)
	}
	r, _, e := umod(x, y, false)
	return z.setRem(o, r, e, x.neg)
}

// Rem sets z to the rounded IEEE 754 remainder of x/y and returns the status.
// The result is x - n×y where n is the integer nearest to x/y, ties to even.
// Its magnitude is at most |y|/2 and a zero result has the sign of x.
//
// Special cases are the same as for Mod.
func (z *Float) Rem(o Options, x, y *Float) Status {
	if r, ok := z.remSpecial(o, x, y); !ok {
		return r
	}
	if x.exp < y.exp-1 {
		// |x| < |y|/2
		z.Copy(x)
		return z.round(o, 0)
	}

	// The quotient's parity is needed to break ties: reduce modulo 2|y|.
	r, d, e := umod(x, y, true)
	h := d.shr(d, 1) // |y| at scale e
	odd := false
	if r.cmp(h) >= 0 {
		odd = true
		r = r.sub(r, h)
	}
	neg := x.neg
	t := nat(nil).shl(r, 1)
	if c := t.cmp(h); c > 0 || c == 0 && odd {
		r = t.sub(h, r)
		neg = !neg
	}
	return z.setRem(o, r, e, neg)
}

// remSpecial handles the special cases of Mod and Rem. It returns true if x
// and y are finite and require the general computation, false and the status
// otherwise.
func (z *Float) remSpecial(o Options, x, y *Float) (Status, bool) {
	x.check()
	y.check()
	z.check()
	if debugFloat {
		x.validate()
		y.validate()
	}
	switch {
	case x.form == finite && y.form == finite:
		return Ok, true
	case x.form == nan || y.form == nan:
		z.SetNaN()
		return Ok, false
	case x.form == inf:
		return z.setNaN(), false
	case y.form == zero:
		if x.form == zero {
			return z.setNaN(), false
		}
		z.SetNaN()
		return DivideByZero, false
	}
	// y is ±Inf or x is ±0
	z.Copy(x)
	return z.round(o, 0), false
}

// umod returns |x| mod (|y|×2**s) as an integer r scaled by 2**e, together
// with the modulus d at the same scale. s is 1 if twice is set, 0 otherwise.
// x and y must be finite and |x| >= |y|/2.
func umod(x, y *Float, twice bool) (r, d nat, e int64) {
	ex := x.exp - int64(len(x.mant))*_W
	ey := y.exp - int64(len(y.mant))*_W
	var s uint
	if twice {
		s = 1
	}
	var q nat
	if ex < ey {
		// the shift is bounded by the bit length of x
		e = ex
		d = nat(nil).shl(y.mant, uint(ey-ex)+s)
		q, r = q.div(nil, x.mant, d)
		return
	}
	// x = X × 2**k × 2**ey with k >= 0, so that
	// x mod d = ((X mod d) × (2**k mod d)) mod d
	e = ey
	d = nat(nil).shl(y.mant, s)
	q, r = q.div(nil, x.mant, d)
	if k := ex - ey; k > 0 && len(r) > 0 {
		p := nat(nil).pow2Mod(uint64(k), d)
		t := nat(nil).mul(r, p)
		q, r = q.div(r, t, d)
	}
	return
}

// setRem sets z to the value ±r×2**e rounded according to o. A zero r yields
// a signed zero.
func (z *Float) setRem(o Options, r nat, e int64, neg bool) Status {
	z.neg = neg
	if len(r) == 0 {
		z.form = zero
		return Ok
	}
	z.swapMant(&r)
	z.setMant(e + int64(z.mant.bitLen()))
	return z.round(o, 0)
}
