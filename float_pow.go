// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"math"
	"math/bits"
	"sync"
)

// powLimit is the size in bits below which integer powers are always computed
// exactly before rounding.
const powLimit = 16384

var one = new(Float).SetUint64(1)

// take moves the value of x into z. x receives z's previous mantissa buffer.
func (z *Float) take(x *Float) {
	z.mant, x.mant = x.mant, z.mant[:0]
	z.exp = x.exp
	z.form = x.form
	z.neg = x.neg
}

// inexact adds Inexact to s, and Underflow if z is tiny.
func (z *Float) inexact(o Options, s Status) Status {
	s |= Inexact
	if z.form == zero || z.form == finite && z.exp < o.emin() {
		s |= Underflow
	}
	return s
}

// mirror returns o with directed rounding modes reversed. It is used to
// compute a negative result as the negation of a positive one.
func (o Options) mirror() Options {
	switch o.Mode {
	case ToNegativeInf:
		o.Mode = ToPositiveInf
	case ToPositiveInf:
		o.Mode = ToNegativeInf
	}
	return o
}

// isOdd reports whether the integer x is odd.
func (x *Float) isOdd() bool {
	n := int64(len(x.mant)) * _W
	return x.form == finite && x.exp > 0 && x.exp <= n && x.mant.bit(uint(n-x.exp)) == 1
}

// powRange handles results that are known to overflow or underflow from an
// estimate of their magnitude 2**l with lo <= l <= hi. It returns true if z
// has been set.
func (z *Float) powRange(o Options, lo, hi float64, neg bool) (Status, bool) {
	if lo >= float64(o.emax())+1 {
		z.neg = neg
		z.form = finite
		return z.overflow(o), true
	}
	tiny := float64(o.emin()) - 3
	if o.Flags&Subnormal != 0 {
		if o.inf() {
			return Ok, false
		}
		tiny -= float64(o.prec())
	}
	if hi < tiny {
		// any value of the same magnitude rounds the same way
		e := math.Floor(hi)
		if e < -wideExp {
			e = -wideExp
		}
		z.neg = neg
		z.setMinNormal(int64(e))
		return z.round(o, 1), true
	}
	return Ok, false
}

// PowUint sets z to the rounded value of x**n and returns the status.
//
// The power is computed exactly when it fits in max(2×prec, 16384) bits and
// then rounded once; it is correctly rounded in that case. Larger powers are
// computed by repeated squaring with 2×bitlen(n)+16 guard bits and a final
// rounding.
//
// Special cases are:
//
//	PowUint(±0, 0) = NaN, InvalidOperation
//	PowUint(x, 0) = 1 for any other x, including NaN
//	PowUint(±0, n) = ±0 with the sign of x if n is odd, +0 otherwise
//	PowUint(±Inf, n) = ±Inf with the sign of x if n is odd, +Inf otherwise
//	PowUint(NaN, n) = NaN
func (z *Float) PowUint(o Options, x *Float, n uint64) Status {
	x.check()
	z.check()
	if n == 0 {
		if x.form == zero {
			return z.setNaN()
		}
		z.SetUint64(1)
		return Ok
	}
	neg := x.neg && n&1 == 1
	switch x.form {
	case nan:
		z.SetNaN()
		return Ok
	case zero, inf:
		z.form = x.form
		z.neg = neg
		return Ok
	}

	fn := float64(n)
	if s, done := z.powRange(o, fn*float64(x.exp-1), fn*float64(x.exp), neg); done {
		return s
	}

	wo := exactOptions
	hi, size := bits.Mul64(uint64(x.MinPrec()), n)
	if !o.inf() && (hi != 0 || size > uint64(umax(2*o.prec(), powLimit))) {
		wo = o.work(2*uint(bits.Len64(n)) + 16)
	}

	b := z.scratch()
	b.Copy(x)
	b.neg = false
	r := z.scratch()
	r.SetUint64(1)
	var s Status
	for {
		if n&1 != 0 {
			s |= r.Mul(wo, r, b)
		}
		n >>= 1
		if n == 0 {
			break
		}
		s |= b.Mul(wo, b, b)
	}
	b.free()
	z.take(r)
	r.free()

	z.neg = neg
	st := z.round(o, 0)
	if s&Inexact != 0 {
		st = z.inexact(o, st)
	}
	return st
}

// Pow sets z to the rounded value of x**y and returns the status.
//
// Integer exponents are handled by PowUint; negative integer exponents yield
// the correctly rounded reciprocal of the exact power when PowUint would be
// exact. Other exponents are computed as exp(y×ln|x|) with enough guard bits
// that the error is below one ulp; the result is not guaranteed to be
// correctly rounded and Inexact is always reported unless x is 1.
//
// Special cases are:
//
//	Pow(±0, ±0) = NaN, InvalidOperation
//	Pow(x, ±0) = 1 for any other x, including NaN
//	Pow(±0, y) = NaN, InvalidOperation for y < 0
//	Pow(±0, y) = ±0 with the sign of x if y is an odd integer, +0 otherwise
//	Pow(x, NaN) = Pow(NaN, y) = NaN
//	Pow(±1, ±Inf) = 1
//	Pow(x, +Inf) = +Inf for |x| > 1, +0 for |x| < 1
//	Pow(x, -Inf) = +0 for |x| > 1, +Inf for |x| < 1
//	Pow(±Inf, y) = ±Inf or ±0 depending on the sign of y, with the sign of x
//	  if y is an odd integer
//	Pow(x, y) = NaN, InvalidOperation for finite x < 0 and finite non-integer y
func (z *Float) Pow(o Options, x, y *Float) Status {
	x.check()
	y.check()
	z.check()
	if y.form == zero {
		if x.form == zero {
			return z.setNaN()
		}
		z.SetUint64(1)
		return Ok
	}
	if x.form == nan || y.form == nan {
		z.SetNaN()
		return Ok
	}

	yInt := y.IsInt()
	neg := x.neg && y.isOdd()
	switch x.form {
	case zero:
		if y.neg {
			return z.setNaN()
		}
		z.form = zero
		z.neg = neg
		return Ok
	case inf:
		if y.neg {
			z.form = zero
		} else {
			z.form = inf
		}
		z.neg = neg
		return Ok
	}

	if y.form == inf {
		c := x.ucmp(one)
		switch {
		case c == 0:
			z.SetUint64(1)
		case (c > 0) != y.neg:
			z.SetInf(false)
		default:
			z.SetZero(false)
		}
		return Ok
	}

	if x.neg && !yInt {
		return z.setNaN()
	}

	if yInt && y.exp <= 64 {
		// y has a single mantissa word
		n := uint64(y.mant[len(y.mant)-1] >> (_W - uint(y.exp)))
		if !y.neg {
			return z.PowUint(o, x, n)
		}
		return z.powNeg(o, x, n, neg)
	}

	return z.powExp(o, x, y, neg)
}

// powNeg sets z to 1/x**n.
func (z *Float) powNeg(o Options, x *Float, n uint64, neg bool) Status {
	fn := float64(n)
	if s, done := z.powRange(o, -fn*float64(x.exp), -fn*float64(x.exp-1), neg); done {
		return s
	}

	wo := exactOptions
	hi, size := bits.Mul64(uint64(x.MinPrec()), n)
	if hi != 0 || size > uint64(umax(2*o.fallback(len(x.mant)).prec(), powLimit)) {
		wo = o.fallback(len(x.mant)).work(64)
	}
	p := z.scratch()
	defer p.free()
	s := p.PowUint(wo, x, n)
	st := z.Quo(o, one, p)
	if s&Inexact != 0 {
		st = z.inexact(o, st)
	}
	return st
}

// powExp sets z to ±exp(y×ln|x|).
func (z *Float) powExp(o Options, x, y *Float, neg bool) Status {
	o = o.fallback(len(x.mant) + len(y.mant))
	// |y×ln|x|| < 2**32 unless the result overflows or underflows
	wo := o.work(96)
	t := z.scratch()
	defer t.free()
	t.Copy(x)
	t.neg = false
	t.Log(wo, t)
	t.Mul(wo, t, y)
	if neg {
		o = o.mirror()
	}
	s := z.Exp(o, t)
	if z.form != nan {
		z.neg = neg
	}
	return s
}

// Exp sets z to the rounded value of e**x and returns the status. The error
// is below one ulp; the result is not guaranteed to be correctly rounded.
// Inexact is always reported for x != 0.
//
// Special cases are:
//
//	Exp(±0) = 1
//	Exp(+Inf) = +Inf
//	Exp(-Inf) = +0
//	Exp(NaN) = NaN
func (z *Float) Exp(o Options, x *Float) Status {
	x.check()
	z.check()
	switch x.form {
	case nan:
		z.SetNaN()
		return Ok
	case zero:
		z.SetUint64(1)
		return Ok
	case inf:
		if x.neg {
			z.SetZero(false)
		} else {
			z.SetInf(false)
		}
		return Ok
	}

	o = o.fallback(len(x.mant))
	xf, _ := x.Float64(ToZero)
	l2 := xf / math.Ln2 // log2 of the result
	if s, done := z.powRange(o, l2-1, l2+1, false); done {
		return s
	}

	// x = k×ln2 + r with |r| <= ln2/2
	k := int64(math.Round(l2))
	prec := o.prec()
	kb := uint(bits.Len64(uint64(absInt64(k))))
	// exp(r) = exp(r/2**h)**(2**h)
	h := isqrt(prec) / 2
	wo := o.work(64 + h)

	t := z.scratch()
	defer t.free()
	r := z.scratch()
	defer r.free()
	if k != 0 {
		t.ln2(wo.Prec + kb + 8)
		t.MulInt64(o.work(64+h+kb+8), t, k)
		r.Sub(wo, x, t)
	} else {
		r.Copy(x)
	}
	r.MulPow2(wo, r, -int64(h))

	// Taylor series: sum = 1 + r + r**2/2! + ...
	sum := z.scratch()
	defer sum.free()
	sum.SetUint64(1)
	t.SetUint64(1)
	for i := uint64(1); ; i++ {
		t.Mul(wo, t, r)
		t.quoUint(wo, t, i)
		if t.form != finite || t.exp < -int64(wo.Prec) {
			break
		}
		sum.Add(wo, sum, t)
	}
	for ; h > 0; h-- {
		sum.Mul(wo, sum, sum)
	}
	return z.inexact(o, z.MulPow2(o, sum, k))
}

// Log sets z to the rounded natural logarithm of x and returns the status.
// The error is below one ulp; the result is not guaranteed to be correctly
// rounded. Inexact is always reported for x != 1.
//
// Special cases are:
//
//	Log(+Inf) = +Inf
//	Log(±0) = -Inf, DivideByZero
//	Log(x < 0) = NaN, InvalidOperation
//	Log(NaN) = NaN
//	Log(1) = +0
func (z *Float) Log(o Options, x *Float) Status {
	x.check()
	z.check()
	switch {
	case x.form == nan:
		z.SetNaN()
		return Ok
	case x.form == zero:
		z.SetInf(true)
		return DivideByZero
	case x.neg:
		return z.setNaN()
	case x.form == inf:
		z.SetInf(false)
		return Ok
	}
	if x.ucmp(one) == 0 {
		z.SetZero(false)
		return Ok
	}

	o = o.fallback(len(x.mant))
	prec := o.prec()

	// x = m × 2**e with 1/√2 <= m < √2
	m := z.scratch()
	defer m.free()
	m.Copy(x)
	e := m.exp
	m.exp = 0
	const sqrt1_2 = 0xb504f333f9de6484 // 1/√2 × 2**64
	if m.mant[len(m.mant)-1] < sqrt1_2 {
		m.exp = 1
		e--
	}

	// ln m = 2**(k+1) × atanh(u) with u = (m**(1/2**k) - 1)/(m**(1/2**k) + 1).
	// Square roots bring m closer to 1, unless it already is.
	t := z.scratch()
	defer t.free()
	t.Sub(exactOptions, m, one)
	k := isqrt(prec) / 2
	if t.form != finite || t.exp <= -int64(k) {
		k = 0
	}
	wo := o.work(64 + 3*k)
	for i := uint(0); i < k; i++ {
		m.Sqrt(wo, m)
	}

	u := z.scratch()
	defer u.free()
	u.Sub(wo, m, one)
	t.Add(wo, m, one)
	u.Quo(wo, u, t)

	// atanh(u) = u + u**3/3 + u**5/5 + ...
	sum := z.scratch()
	defer sum.free()
	sum.Copy(u)
	u2 := m
	u2.Mul(wo, u, u)
	for i := uint64(3); ; i += 2 {
		u.Mul(wo, u, u2)
		t.quoUint(wo, u, i)
		if t.form != finite || t.exp < sum.exp-int64(wo.Prec) {
			break
		}
		sum.Add(wo, sum, t)
	}
	sum.MulPow2(wo, sum, int64(k)+1)

	if e != 0 {
		eb := uint(bits.Len64(uint64(absInt64(e))))
		t.ln2(wo.Prec + eb)
		t.MulInt64(wo, t, e)
		sum.Add(wo, sum, t)
	}
	z.take(sum)
	return z.inexact(o, z.round(o, 0))
}

// quoUint sets z to x/n.
func (z *Float) quoUint(o Options, x *Float, n uint64) Status {
	var t Float
	t.SetUint64(n)
	return z.Quo(o, x, &t)
}

var ln2Cache struct {
	sync.Mutex
	v    Float
	prec uint
}

// ln2 sets z to ln 2 rounded to nearest with prec bits.
func (z *Float) ln2(prec uint) {
	ln2Cache.Lock()
	defer ln2Cache.Unlock()
	if ln2Cache.prec < prec {
		p := umax(prec, 2*ln2Cache.prec)
		computeLn2(&ln2Cache.v, p+64)
		ln2Cache.prec = p
	}
	z.Copy(&ln2Cache.v)
	z.round(Options{Prec: prec, Flags: wide}, 0)
}

// computeLn2 sets z to ln 2 = 2×atanh(1/3) with prec bits.
func computeLn2(z *Float, prec uint) {
	wo := Options{Prec: prec + 16, Flags: wide}
	var u, t Float
	u.quoUint(wo, one, 3)
	z.Copy(&u)
	for i := uint64(3); ; i += 2 {
		u.quoUint(wo, &u, 9)
		t.quoUint(wo, &u, i)
		if t.exp < z.exp-int64(wo.Prec) {
			break
		}
		z.Add(wo, z, &t)
	}
	z.exp++
}

func absInt64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// isqrt returns ⌊√x⌋.
func isqrt(x uint) uint {
	r := uint(math.Sqrt(float64(x)))
	for r*r > x {
		r--
	}
	for (r+1)*(r+1) <= x {
		r++
	}
	return r
}
