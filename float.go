// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
)

const debugFloat = false // enable for debugging

// A nonzero finite Float represents a multi-precision floating point number
//
//	sign × mantissa × 2**exponent
//
// with 0.5 <= mantissa < 1.0, and MinExp <= exponent <= MaxExp. A Float may
// also be zero (+0, -0), infinite (+Inf, -Inf) or not-a-number (NaN).
//
// Unlike big.Float, a Float carries no precision or rounding mode: every
// operation takes an Options value and returns a Status describing the
// rounding error and exceptional conditions of the result.
//
// The zero value for a Float is +0 and is not bound to any Context; it
// allocates its buffers directly.
//
// A Float must not be copied by value; use Copy or Move.
type Float struct {
	mant nat
	exp  int64
	form form
	neg  bool
	ctx  *Context
}

// NewFloat returns a new Float set to the exact value of x, not bound to any
// Context.
func NewFloat(x float64) *Float {
	return new(Float).SetFloat64(x)
}

// Context returns the Context x was created with, or nil.
func (x *Float) Context() *Context {
	return x.ctx
}

// check panics if x has been moved or released.
func (x *Float) check() {
	if x.form == moved {
		panic(errMoved)
	}
}

// SetZero sets z to -0 if neg is set, +0 otherwise, and returns z.
func (z *Float) SetZero(neg bool) *Float {
	z.check()
	z.form = zero
	z.neg = neg
	return z
}

// SetInf sets z to -Inf if neg is set, or +Inf otherwise, and returns z.
func (z *Float) SetInf(neg bool) *Float {
	z.check()
	z.form = inf
	z.neg = neg
	return z
}

// SetNaN sets z to NaN and returns z.
func (z *Float) SetNaN() *Float {
	z.check()
	z.form = nan
	z.neg = false
	return z
}

func (z *Float) setNaN() Status {
	z.form = nan
	z.neg = false
	return InvalidOperation
}

// SetUint64 sets z to the exact value of x and returns z.
func (z *Float) SetUint64(x uint64) *Float {
	z.check()
	z.neg = false
	return z.setWord(Word(x))
}

// SetInt64 sets z to the exact value of x and returns z.
func (z *Float) SetInt64(x int64) *Float {
	z.check()
	u := x
	if u < 0 {
		u = -u
	}
	// We cannot simply call z.SetUint64(uint64(u)) and change
	// the sign afterwards because the sign affects rounding.
	z.neg = x < 0
	return z.setWord(Word(u))
}

func (z *Float) setWord(x Word) *Float {
	if x == 0 {
		z.form = zero
		return z
	}
	s := nlz(x)
	z.mant = z.mant.setWord(x << s)
	z.exp = int64(_W - s)
	z.form = finite
	return z
}

// SetFloat64 sets z to the exact value of x and returns z.
// If x is NaN, z is set to NaN.
func (z *Float) SetFloat64(x float64) *Float {
	z.check()
	if math.IsNaN(x) {
		return z.SetNaN()
	}
	z.neg = math.Signbit(x) // handle -0, -Inf correctly
	if x == 0 {
		z.form = zero
		return z
	}
	if math.IsInf(x, 0) {
		z.form = inf
		return z
	}
	fmant, exp := math.Frexp(x) // get normalized mantissa
	z.form = finite
	z.mant = z.mant.setUint64(1<<63 | math.Float64bits(fmant)<<11)
	z.exp = int64(exp) // always fits
	return z
}

// SetInt sets z to the exact value of x and returns z. The words of x are
// copied least significant first, in the order of x.Bits.
func (z *Float) SetInt(x *big.Int) *Float {
	z.check()
	z.neg = x.Sign() < 0
	if x.Sign() == 0 {
		z.form = zero
		return z
	}
	z.mant = z.mant.setBig(x.Bits())
	z.setMant(int64(z.mant.bitLen()))
	return z
}

// setBig sets z to the value of the little-endian big.Word slice b.
func (z nat) setBig(b []big.Word) nat {
	if bits.UintSize == 64 {
		z = z.make(len(b))
		for i, w := range b {
			z[i] = Word(w)
		}
		return z.norm()
	}
	n := (len(b) + 1) / 2
	z = z.make(n)
	for i := range z {
		var w Word
		if j := 2*i + 1; j < len(b) {
			w = Word(b[j]) << 32
		}
		z[i] = w | Word(b[2*i])
	}
	return z.norm()
}

// setMant makes z a finite Float from its unnormalized, non-zero mantissa
// z.mant, interpreted as an integer scaled by 2**(exp - z.mant.bitLen()). The
// mantissa is shifted left until its msb is set and its least significant zero
// words are removed. The result is exact.
func (z *Float) setMant(exp int64) {
	z.mant = z.mant.norm()
	if s := nlz(z.mant[len(z.mant)-1]); s > 0 {
		shlVU(z.mant, z.mant, s)
	}
	z.mant = z.mant.trimLow()
	z.exp = exp
	z.form = finite
}

// trimLow removes the least significant zero words of z.
func (z nat) trimLow() nat {
	i := 0
	for i < len(z) && z[i] == 0 {
		i++
	}
	if i == 0 {
		return z
	}
	n := copy(z, z[i:])
	return z[:n]
}

// extendLow returns z extended to n words, z's words being moved to the most
// significant end.
func (z nat) extendLow(n int) nat {
	m := len(z)
	if n <= m {
		return z
	}
	if n <= cap(z) {
		z = z[:n]
		copy(z[n-m:], z[:m])
		z[:n-m].clear()
		return z
	}
	t := make(nat, n)
	copy(t[n-m:], z)
	return t
}

// Copy sets z to x, with the same precision, and returns z. x is not changed
// even if z and x are the same.
func (z *Float) Copy(x *Float) *Float {
	x.check()
	z.check()
	if debugFloat {
		x.validate()
	}
	if z != x {
		z.form = x.form
		z.neg = x.neg
		if x.form == finite {
			z.exp = x.exp
			z.mant = z.mant.set(x.mant)
		}
	}
	return z
}

// Move transfers ownership of x's value and buffers to a new Float bound to
// the same Context, and returns the new Float. x becomes unusable: any
// subsequent operation with x panics.
func (x *Float) Move() *Float {
	x.check()
	z := &Float{mant: x.mant, exp: x.exp, form: x.form, neg: x.neg, ctx: x.ctx}
	*x = Float{form: moved}
	return z
}

// Release returns x's buffers to its Context and makes x unusable. Release is
// a no-op on a Float that was moved or released.
func (x *Float) Release() {
	if x.form == moved {
		return
	}
	x.ctx.release(x.mant)
	*x = Float{form: moved}
}

// Sign returns:
//
//	-1 if x <   0
//	 0 if x is ±0 or NaN
//	+1 if x >   0
func (x *Float) Sign() int {
	if debugFloat {
		x.validate()
	}
	x.check()
	if x.form == zero || x.form == nan {
		return 0
	}
	if x.neg {
		return -1
	}
	return 1
}

// Signbit reports whether x is negative or negative zero.
func (x *Float) Signbit() bool {
	x.check()
	return x.neg
}

// IsZero reports whether x is +0 or -0.
func (x *Float) IsZero() bool {
	x.check()
	return x.form == zero
}

// IsInf reports whether x is +Inf or -Inf.
func (x *Float) IsInf() bool {
	x.check()
	return x.form == inf
}

// IsNaN reports whether x is NaN.
func (x *Float) IsNaN() bool {
	x.check()
	return x.form == nan
}

// IsFinite reports whether x is neither infinite nor NaN.
func (x *Float) IsFinite() bool {
	x.check()
	return x.form <= finite
}

// IsInt reports whether x is an integer.
// ±Inf and NaN values are not integers.
func (x *Float) IsInt() bool {
	if debugFloat {
		x.validate()
	}
	x.check()
	// special cases
	if x.form != finite {
		return x.form == zero
	}
	// x.form == finite
	if x.exp <= 0 {
		return false
	}
	// x.exp > 0
	return uint64(x.exp) >= uint64(len(x.mant))*_W || x.mant.trailingZeroBits() >= uint(int64(len(x.mant))*_W-x.exp)
}

// MinPrec returns the minimum precision required to represent x exactly
// (i.e., the smallest prec before rounding x would start to discard bits).
// The result is 0 for |x| == 0, |x| == Inf and NaN.
func (x *Float) MinPrec() uint {
	x.check()
	if x.form != finite {
		return 0
	}
	return uint(len(x.mant))*_W - x.mant.trailingZeroBits()
}

// MantExp breaks x into its mantissa and exponent components
// and returns the exponent. If a non-nil mant argument is
// provided its value is set to the mantissa of x. The
// components satisfy x == mant × 2**exp, with 0.5 <= |mant| < 1.0.
//
// Special cases are:
//
//	(  ±0).MantExp(mant) = 0, with mant set to   ±0
//	(±Inf).MantExp(mant) = 0, with mant set to ±Inf
//	(NaN).MantExp(mant)  = 0, with mant set to  NaN
//
// x and mant may be the same in which case x is set to its
// mantissa value.
func (x *Float) MantExp(mant *Float) (exp int64) {
	x.check()
	if debugFloat {
		x.validate()
	}
	if x.form == finite {
		exp = x.exp
	}
	if mant != nil {
		mant.Copy(x)
		if mant.form == finite {
			mant.exp = 0
		}
	}
	return
}

func (x *Float) validate() {
	if !debugFloat {
		// avoid performance bugs
		panic("validate called but debugFloat is not set")
	}
	if x.form != finite {
		return
	}
	m := len(x.mant)
	if m == 0 {
		panic("nonzero finite number with empty mantissa")
	}
	const msb = 1 << (_W - 1)
	if x.mant[m-1]&msb == 0 {
		panic(fmt.Sprintf("msb not set in last word %#x of %s", x.mant[m-1], x.Text('p', 0)))
	}
	if x.mant[0] == 0 {
		panic(fmt.Sprintf("first word of %s is zero", x.Text('p', 0)))
	}
}

// Repr is the exact structural form of a Float:
//
//	value = (-1)**Neg × Mant × 2**(Exp - Bias)
//
// where Bias is 64 times the number of limbs of the mantissa. For ±0, ±Inf
// and NaN, Mant is nil and Exp and Bias are 0; Form tells them apart.
type Repr struct {
	Neg  bool
	Exp  int64
	Mant *big.Int
	Bias int64
	Form Form
}

// Form is the class of a Float.
type Form byte

// Float classes.
const (
	Zero Form = iota
	Finite
	Infinite
	NaN
)

func (f Form) String() string {
	switch f {
	case Zero:
		return "Zero"
	case Finite:
		return "Finite"
	case Infinite:
		return "Infinite"
	case NaN:
		return "NaN"
	}
	return fmt.Sprintf("Form(%d)", byte(f))
}

// Repr returns the structural representation of x.
func (x *Float) Repr() Repr {
	x.check()
	r := Repr{Neg: x.neg, Form: Form(x.form)}
	if x.form != finite {
		if x.form == nan {
			r.Neg = false
		}
		return r
	}
	r.Exp = x.exp
	r.Bias = int64(len(x.mant)) * _W
	r.Mant = new(big.Int).SetBits(x.mant.bigWords())
	return r
}

// SetRepr sets z to the value described by r, rounded according to o, and
// returns the rounding status. A finite r with a zero mantissa sets z to a
// signed zero.
func (z *Float) SetRepr(o Options, r Repr) Status {
	z.check()
	z.neg = r.Neg
	switch r.Form {
	case Zero:
		z.form = zero
		return Ok
	case Infinite:
		z.form = inf
		return Ok
	case NaN:
		z.SetNaN()
		return Ok
	}
	if r.Mant == nil || r.Mant.Sign() == 0 {
		z.form = zero
		return Ok
	}
	z.mant = z.mant.setBig(r.Mant.Bits())
	e := satAdd(r.Exp, int64(z.mant.bitLen())-r.Bias)
	z.setMant(e)
	return z.round(o, 0)
}

// bigWords returns x as a slice of big.Word.
func (x nat) bigWords() []big.Word {
	if bits.UintSize == 64 {
		b := make([]big.Word, len(x))
		for i, w := range x {
			b[i] = big.Word(w)
		}
		return b
	}
	b := make([]big.Word, 2*len(x))
	for i, w := range x {
		b[2*i] = big.Word(w)
		b[2*i+1] = big.Word(w >> 32)
	}
	return b
}

const expLimit = 1 << 62

// satAdd returns x + y, saturated to ±2**62. Exponents of intermediate
// results stay far below these bounds so that the rounding engine can
// detect overflow and underflow.
func satAdd(x, y int64) int64 {
	s := x + y
	switch {
	case x > 0 && y > 0 && (s < x || s > expLimit):
		return expLimit
	case x < 0 && y < 0 && (s > x || s < -expLimit):
		return -expLimit
	case s > expLimit:
		return expLimit
	case s < -expLimit:
		return -expLimit
	}
	return s
}
