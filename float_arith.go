// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

// Operations of the form
//
//	func (z *Float) Op(o Options, x, y *Float) Status
//
// set z to the result of x Op y rounded according to o, and return the
// status of the operation. z may be any of the operands: results are built in
// a scratch buffer which is swapped in place of z's mantissa once the
// operands are no longer needed.

// fnorm normalizes mantissa m by shifting it to the left
// such that the msb of the most-significant word (msw) is 1.
// It returns the shift amount. It assumes that len(m) != 0.
func fnorm(m nat) int64 {
	if debugFloat && (len(m) == 0 || m[len(m)-1] == 0) {
		panic("msw of mantissa is 0")
	}
	s := nlz(m[len(m)-1])
	if s > 0 {
		c := shlVU(m, m, s)
		if debugFloat && c != 0 {
			panic("nlz or shlVU incorrect")
		}
	}
	return int64(s)
}

// swapMant installs *t as z's mantissa and recycles z's previous mantissa.
func (z *Float) swapMant(t *nat) {
	z.mant, *t = *t, z.mant[:0]
	z.ctx.putNat(t)
}

// fallback returns o, with a finite precision suitable for operations whose
// exact result may not be finite when o requests infinite precision. n is
// the total word count of the operands.
func (o Options) fallback(n int) Options {
	if o.inf() {
		o.Prec = uint(n+1) * _W
	}
	return o
}

// small returns y, or a one bit stand-in for y stored in t when y is too small
// relative to x to change anything but the sticky bit of x ± y at o's
// precision. x.exp >= y.exp.
func (x *Float) small(o Options, y, t *Float) *Float {
	if o.inf() {
		return y
	}
	m := int64(umax(o.prec(), uint(len(x.mant))*_W))
	e := x.exp - m - 2
	if y.exp >= e {
		return y
	}
	t.mant = t.mant.setWord(1 << (_W - 1))
	t.exp = e
	t.form = finite
	t.neg = y.neg
	return t
}

// z = |x| + |y| rounded according to o.
// x and y must have a non-empty mantissa and valid exponent.
func (z *Float) uadd(o Options, x, y *Float) Status {
	// Note: This implementation requires 2 shifts most of the
	// time. It is also inefficient if exponents or precisions
	// differ by wide margins. The following article describes
	// an efficient (but much more complicated) implementation
	// compatible with the internal representation used here:
	//
	// Vincent Lefèvre: "The Generic Multiple-Precision Floating-
	// Point Addition With Exact Rounding (as in the MPFR Library)"
	// http://www.vinc17.net/research/papers/rnc6.pdf

	if x.exp < y.exp {
		x, y = y, x
	}
	var yt Float
	y = x.small(o, y, &yt)

	ex := x.exp - int64(len(x.mant))*_W
	ey := y.exp - int64(len(y.mant))*_W

	t := z.ctx.getNat(0)
	switch {
	case ex < ey:
		s := z.ctx.getNat(0)
		*s = s.shl(y.mant, uint(ey-ex))
		*t = t.add(x.mant, *s)
		z.ctx.putNat(s)
	default:
		// ex == ey, no shift needed
		*t = t.add(x.mant, y.mant)
	case ex > ey:
		s := z.ctx.getNat(0)
		*s = s.shl(x.mant, uint(ex-ey))
		*t = t.add(*s, y.mant)
		z.ctx.putNat(s)
		ex = ey
	}
	// len(t) > 0
	z.swapMant(t)
	return z.setExpAndRound(o, ex+int64(len(z.mant))*_W-fnorm(z.mant), 0)
}

// z = |x| - |y| rounded according to o, with |x| > |y|.
// x and y must have a non-empty mantissa and valid exponent.
func (z *Float) usub(o Options, x, y *Float) Status {
	// This code is symmetric to uadd.
	var yt Float
	y = x.small(o, y, &yt)

	ex := x.exp - int64(len(x.mant))*_W
	ey := y.exp - int64(len(y.mant))*_W

	t := z.ctx.getNat(0)
	switch {
	case ex < ey:
		s := z.ctx.getNat(0)
		*s = s.shl(y.mant, uint(ey-ex))
		*t = t.sub(x.mant, *s)
		z.ctx.putNat(s)
	default:
		// ex == ey, no shift needed
		*t = t.sub(x.mant, y.mant)
	case ex > ey:
		s := z.ctx.getNat(0)
		*s = s.shl(x.mant, uint(ex-ey))
		*t = t.sub(*s, y.mant)
		z.ctx.putNat(s)
		ex = ey
	}

	z.swapMant(t)
	// operands may have canceled each other out
	if len(z.mant) == 0 {
		z.form = zero
		z.neg = false
		return Ok
	}
	// len(z.mant) > 0
	return z.setExpAndRound(o, ex+int64(len(z.mant))*_W-fnorm(z.mant), 0)
}

// z = x * y, ignoring signs of x and y for the multiplication
// but using the sign of z for rounding the result.
// x and y must have a non-empty mantissa and valid exponent.
func (z *Float) umul(o Options, x, y *Float) Status {
	// Note: This is doing too much work if the precision
	// of z is less than the sum of the precisions of x
	// and y which is often the case (e.g., if all floats
	// have the same precision).
	// TODO(db47h) Optimize this for the common case.

	e := x.exp + y.exp
	t := z.ctx.getNat(len(x.mant) + len(y.mant))
	if x == y {
		*t = t.mul(x.mant, x.mant)
	} else {
		*t = t.mul(x.mant, y.mant)
	}
	z.swapMant(t)
	return z.setExpAndRound(o, e-fnorm(z.mant), 0)
}

// z = x / y, ignoring signs of x and y for the division
// but using the sign of z for rounding the result.
// x and y must have a non-empty mantissa and valid exponent.
func (z *Float) uquo(o Options, x, y *Float) Status {
	o = o.fallback(len(x.mant) + len(y.mant))

	// mantissa length in words for desired result precision + 1
	// (at least one extra bit so we get the rounding bit after
	// the division)
	n := int(o.prec()/_W) + 1

	// compute adjusted x.mant such that we get enough result precision
	xadj := z.ctx.getNat(len(x.mant))
	copy(*xadj, x.mant)
	if d := n - len(x.mant) + len(y.mant); d > 0 {
		// d extra words needed => add d "0 digits" to x
		*xadj = xadj.extendLow(len(x.mant) + d)
	}

	// Compute d before division since there may be aliasing of x.mant
	// (via xadj) or y.mant with z.mant.
	d := len(*xadj) - len(y.mant)

	// divide
	q := z.ctx.getNat(0)
	r := z.ctx.getNat(0)
	*q, *r = q.div(*r, *xadj, y.mant)
	e := x.exp - y.exp - int64(d-len(*q))*_W

	// The result is long enough to include (at least) the rounding bit.
	// If there's a non-zero remainder, the corresponding fractional part
	// (if it were computed), would have a non-zero sticky bit (if it were
	// zero, it couldn't have a non-zero remainder).
	var sbit uint
	if len(*r) > 0 {
		sbit = 1
	}
	z.ctx.putNat(r)
	z.ctx.putNat(xadj)

	z.swapMant(q)
	return z.setExpAndRound(o, e-fnorm(z.mant), sbit)
}

// ucmp returns -1, 0, or +1, depending on whether
// |x| < |y|, |x| == |y|, or |x| > |y|.
// x and y must have a non-empty mantissa and valid exponent.
func (x *Float) ucmp(y *Float) int {
	switch {
	case x.exp < y.exp:
		return -1
	case x.exp > y.exp:
		return +1
	}
	// x.exp == y.exp

	// compare mantissas
	i := len(x.mant)
	j := len(y.mant)
	for i > 0 || j > 0 {
		var xm, ym Word
		if i > 0 {
			i--
			xm = x.mant[i]
		}
		if j > 0 {
			j--
			ym = y.mant[j]
		}
		switch {
		case xm < ym:
			return -1
		case xm > ym:
			return +1
		}
	}

	return 0
}

// Handling of sign bit as defined by IEEE 754-2008, section 6.3:
//
// When neither the inputs nor result are NaN, the sign of a product or
// quotient is the exclusive OR of the operands’ signs; the sign of a sum,
// or of a difference x−y regarded as a sum x+(−y), differs from at most
// one of the addends’ signs; and the sign of the result of conversions,
// the quantize operation, the roundToIntegral operations, and the
// roundToIntegralExact (see 5.3.1) is the sign of the first or only operand.
// These rules shall apply even when operands or results are zero or infinite.
//
// When the sum of two operands with opposite signs (or the difference of
// two operands with like signs) is exactly zero, the sign of that sum (or
// difference) shall be +0 in all rounding-direction attributes except
// roundTowardNegative; under that attribute, the sign of an exact zero
// sum (or difference) shall be −0. However, x+x = x−(−x) retains the same
// sign as x even when x is zero.
//
// See also: https://play.golang.org/p/RtH3UCt5IH

// Add sets z to the rounded sum x+y and returns the status.
// Adding infinities with opposite signs yields NaN and InvalidOperation.
func (z *Float) Add(o Options, x, y *Float) Status {
	return z.add(o, x, y, false)
}

// Sub sets z to the rounded difference x-y and returns the status.
// Subtracting infinities with equal signs yields NaN and InvalidOperation.
func (z *Float) Sub(o Options, x, y *Float) Status {
	return z.add(o, x, y, true)
}

// add sets z to x + (-1)**negy × y.
func (z *Float) add(o Options, x, y *Float, negy bool) Status {
	x.check()
	y.check()
	z.check()
	if debugFloat {
		x.validate()
		y.validate()
	}

	yneg := y.neg != negy
	if x.form == finite && y.form == finite {
		// x ± y (common case)

		// Below we set z.neg = x.neg, and when z aliases y this will
		// change the y operand's sign. This is fine, because if an
		// operand aliases the receiver it'll be overwritten, but we still
		// want the original x.neg and y.neg values when we evaluate
		// x.neg != y.neg, so we need to save y.neg before setting z.neg.
		xneg := x.neg
		z.neg = xneg
		var s Status
		if xneg == yneg {
			// x + y == x + y
			// (-x) + (-y) == -(x + y)
			s = z.uadd(o, x, y)
		} else {
			// x + (-y) == x - y == -(y - x)
			// (-x) + y == y - x == -(x - y)
			if x.ucmp(y) > 0 {
				s = z.usub(o, x, y)
			} else {
				z.neg = !z.neg
				s = z.usub(o, y, x)
			}
		}
		if z.form == zero && o.Mode == ToNegativeInf && s == Ok {
			z.neg = true
		}
		return s
	}

	if x.form == nan || y.form == nan {
		z.SetNaN()
		return Ok
	}

	if x.form == inf && y.form == inf && x.neg != yneg {
		// +Inf + -Inf
		// -Inf + +Inf
		// value of z is undefined but make sure it's valid
		return z.setNaN()
	}

	if x.form == zero && y.form == zero {
		// ±0 + ±0
		z.form = zero
		if o.Mode == ToNegativeInf {
			z.neg = x.neg || yneg // -0 + +0 == -0
		} else {
			z.neg = x.neg && yneg // -0 + -0 == -0
		}
		return Ok
	}

	if x.form == inf || y.form == zero {
		// ±Inf + y
		// x + ±0
		z.Copy(x)
		return z.round(o, 0)
	}

	// ±0 + y
	// x + ±Inf
	z.Copy(y)
	z.neg = yneg
	return z.round(o, 0)
}

// Mul sets z to the rounded product x*y and returns the status.
// Multiplying zero by an infinity yields NaN and InvalidOperation.
func (z *Float) Mul(o Options, x, y *Float) Status {
	x.check()
	y.check()
	z.check()
	if debugFloat {
		x.validate()
		y.validate()
	}

	neg := x.neg != y.neg

	// special cases
	if x.form == finite && y.form == finite {
		// x * y (common case)
		z.neg = neg
		return z.umul(o, x, y)
	}

	if x.form == nan || y.form == nan {
		z.SetNaN()
		return Ok
	}

	if x.form == zero && y.form == inf || x.form == inf && y.form == zero {
		// ±0 * ±Inf
		// ±Inf * ±0
		// value of z is undefined but make sure it's valid
		return z.setNaN()
	}

	if x.form == inf || y.form == inf {
		// ±Inf * y
		// x * ±Inf
		z.form = inf
		z.neg = neg
		return Ok
	}

	// ±0 * y
	// x * ±0
	z.form = zero
	z.neg = neg
	return Ok
}

// MulUint64 sets z to the rounded product x*y and returns the status.
func (z *Float) MulUint64(o Options, x *Float, y uint64) Status {
	var t Float
	t.SetUint64(y)
	return z.Mul(o, x, &t)
}

// MulInt64 sets z to the rounded product x*y and returns the status.
func (z *Float) MulInt64(o Options, x *Float, y int64) Status {
	var t Float
	t.SetInt64(y)
	return z.Mul(o, x, &t)
}

// MulPow2 sets z to the rounded value of x × 2**n and returns the status.
// It is the counterpart of math.Ldexp.
func (z *Float) MulPow2(o Options, x *Float, n int64) Status {
	x.check()
	z.check()
	z.Copy(x)
	if z.form == finite {
		z.exp = satAdd(z.exp, n)
	}
	return z.round(o, 0)
}

// Quo sets z to the rounded quotient x/y and returns the status.
//
// Dividing a finite non-zero x by zero yields an infinity with the sign of
// x/y and DivideByZero. 0/0 and ±Inf/±Inf yield NaN and InvalidOperation.
func (z *Float) Quo(o Options, x, y *Float) Status {
	x.check()
	y.check()
	z.check()
	if debugFloat {
		x.validate()
		y.validate()
	}

	neg := x.neg != y.neg

	// special cases
	if x.form == finite && y.form == finite {
		// x / y (common case)
		z.neg = neg
		return z.uquo(o, x, y)
	}

	if x.form == nan || y.form == nan {
		z.SetNaN()
		return Ok
	}

	if x.form == zero && y.form == zero || x.form == inf && y.form == inf {
		// ±0 / ±0
		// ±Inf / ±Inf
		// value of z is undefined but make sure it's valid
		return z.setNaN()
	}

	z.neg = neg
	if x.form == zero || y.form == inf {
		// ±0 / y
		// x / ±Inf
		z.form = zero
		return Ok
	}

	// x / ±0
	// ±Inf / y
	z.form = inf
	if x.form == finite {
		return DivideByZero
	}
	return Ok
}

// Neg sets z to the rounded value of x with its sign negated and returns the
// status. The negation of NaN is NaN.
func (z *Float) Neg(o Options, x *Float) Status {
	x.check()
	z.check()
	z.Copy(x)
	if z.form != nan {
		z.neg = !z.neg
	}
	return z.round(o, 0)
}

// Abs sets z to the rounded value |x| and returns the status.
func (z *Float) Abs(o Options, x *Float) Status {
	x.check()
	z.check()
	z.Copy(x)
	z.neg = false
	return z.round(o, 0)
}

// exactOptions keeps intermediate results exact, including tiny ones.
var exactOptions = Options{Prec: PrecInf, Flags: Subnormal | wide}

// FMA sets z to x*y + u computed with a single rounding and returns the
// status.
func (z *Float) FMA(o Options, x, y, u *Float) Status {
	x.check()
	y.check()
	u.check()
	z.check()
	p := z.scratch()
	defer p.free()
	s := p.Mul(exactOptions, x, y)
	if p.form == nan {
		if u.form == nan {
			s = Ok
		}
		z.SetNaN()
		return s
	}
	// the exact product is only inexact when it overflows
	return s | z.Add(o, p, u)
}

// scratch returns a temporary Float using z's Context for its buffers.
func (z *Float) scratch() *Float {
	t := &Float{ctx: z.ctx}
	if z.ctx != nil {
		t.mant = *z.ctx.getNat(0)
	}
	return t
}

// free returns the buffers of a Float obtained with scratch to its Context.
func (x *Float) free() {
	if x.ctx != nil && cap(x.mant) > 0 {
		m := x.mant[:0]
		x.ctx.putNat(&m)
	}
	x.mant = nil
}
