// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"math"
	"math/big"
)

// Float64 returns the float64 value nearest to x, rounded according to mode,
// and the status of the conversion. Values too large or too small for a
// float64 set Overflow or Underflow, as IEEE 754 binary64 arithmetic would.
// NaN converts to NaN.
func (x *Float) Float64(mode RoundingMode) (float64, Status) {
	x.check()
	if debugFloat {
		x.validate()
	}
	switch x.form {
	case zero:
		if x.neg {
			return math.Copysign(0, -1), Ok
		}
		return 0, Ok
	case inf:
		if x.neg {
			return math.Inf(-1), Ok
		}
		return math.Inf(+1), Ok
	case nan:
		return math.NaN(), Ok
	}

	r := x.scratch()
	defer r.free()
	r.Copy(x)
	s := r.round(Float64Options(mode), 0)
	switch r.form {
	case zero:
		if r.neg {
			return math.Copysign(0, -1), s
		}
		return 0, s
	case inf:
		if r.neg {
			return math.Inf(-1), s
		}
		return math.Inf(+1), s
	}
	// 53 bits at most fit in the top word
	m := uint64(r.mant[len(r.mant)-1]) >> (_W - 53)
	f := math.Ldexp(float64(m), int(r.exp-53))
	if r.neg {
		f = -f
	}
	return f, s
}

// Float32 returns the float32 value nearest to x, rounded according to mode,
// and the status of the conversion. Values too large or too small for a
// float32 set Overflow or Underflow, as IEEE 754 binary32 arithmetic would.
// NaN converts to NaN.
func (x *Float) Float32(mode RoundingMode) (float32, Status) {
	x.check()
	if debugFloat {
		x.validate()
	}
	switch x.form {
	case zero:
		if x.neg {
			return float32(math.Copysign(0, -1)), Ok
		}
		return 0, Ok
	case inf:
		if x.neg {
			return float32(math.Inf(-1)), Ok
		}
		return float32(math.Inf(+1)), Ok
	case nan:
		return float32(math.NaN()), Ok
	}

	r := x.scratch()
	defer r.free()
	r.Copy(x)
	s := r.round(Float32Options(mode), 0)
	switch r.form {
	case zero:
		if r.neg {
			return float32(math.Copysign(0, -1)), s
		}
		return 0, s
	case inf:
		if r.neg {
			return float32(math.Inf(-1)), s
		}
		return float32(math.Inf(+1)), s
	}
	m := uint64(r.mant[len(r.mant)-1]) >> (_W - 24)
	// exact: the value is representable as a float32
	f := float32(math.Ldexp(float64(m), int(r.exp-24)))
	if r.neg {
		f = -f
	}
	return f, s
}

// msb64 returns the 64 most significant bits of x.
func msb64(x nat) uint64 {
	if len(x) == 0 {
		return 0
	}
	return uint64(x[len(x)-1])
}

// Uint64 returns the unsigned integer resulting from truncating x
// towards zero. If 0 <= x <= math.MaxUint64, the result is Exact
// if x is an integer and Below otherwise.
// The result is (0, Above) for x < 0, and (math.MaxUint64, Below)
// for x > math.MaxUint64. NaN yields (0, Exact).
func (x *Float) Uint64() (uint64, Accuracy) {
	x.check()
	if debugFloat {
		x.validate()
	}

	switch x.form {
	case finite:
		if x.neg {
			return 0, Above
		}
		// 0 < x < +Inf
		if x.exp <= 0 {
			// 0 < x < 1
			return 0, Below
		}
		// 1 <= x < Inf
		if x.exp <= 64 {
			// u = trunc(x) fits into a uint64
			u := msb64(x.mant) >> (64 - uint(x.exp))
			if x.MinPrec() <= uint(x.exp) {
				return u, Exact
			}
			return u, Below // x truncated
		}
		// x too large
		return math.MaxUint64, Below

	case inf:
		if x.neg {
			return 0, Above
		}
		return math.MaxUint64, Below
	}
	// zero or NaN
	return 0, Exact
}

// Int64 returns the integer resulting from truncating x towards zero.
// If math.MinInt64 <= x <= math.MaxInt64, the result is Exact if x is
// an integer, and Above (x < 0) or Below (x > 0) otherwise.
// The result is (math.MinInt64, Above) for x < math.MinInt64,
// and (math.MaxInt64, Below) for x > math.MaxInt64. NaN yields (0, Exact).
func (x *Float) Int64() (int64, Accuracy) {
	x.check()
	if debugFloat {
		x.validate()
	}

	switch x.form {
	case finite:
		// 0 < |x| < +Inf
		acc := makeAcc(x.neg)
		if x.exp <= 0 {
			// 0 < |x| < 1
			return 0, acc
		}
		// x.exp > 0

		// 1 <= |x| < +Inf
		if x.exp <= 63 {
			// i = trunc(x) fits into an int64 (excluding math.MinInt64)
			i := int64(msb64(x.mant) >> (64 - uint(x.exp)))
			if x.neg {
				i = -i
			}
			if x.MinPrec() <= uint(x.exp) {
				return i, Exact
			}
			return i, acc // x truncated
		}
		if x.neg {
			// check for special case x == math.MinInt64 (i.e., x == -(0.5 << 64))
			if x.exp == 64 && x.MinPrec() == 1 {
				acc = Exact
			}
			return math.MinInt64, acc
		}
		// x too large
		return math.MaxInt64, Below

	case inf:
		if x.neg {
			return math.MinInt64, Above
		}
		return math.MaxInt64, Below
	}
	// zero or NaN
	return 0, Exact
}

// Int returns the result of truncating x towards zero;
// or nil if x is an infinity or NaN.
// The result is Exact if x.IsInt(); otherwise it is Below
// for x > 0, and Above for x < 0.
// If a non-nil *big.Int argument z is provided, Int stores
// the result in z instead of allocating a new big.Int.
func (x *Float) Int(z *big.Int) (*big.Int, Accuracy) {
	x.check()
	if debugFloat {
		x.validate()
	}

	if z == nil && x.form <= finite {
		z = new(big.Int)
	}

	switch x.form {
	case finite:
		// 0 < |x| < +Inf
		acc := makeAcc(x.neg)
		if x.exp <= 0 {
			// 0 < |x| < 1
			return z.SetInt64(0), acc
		}
		// x.exp > 0

		// 1 <= |x| < +Inf
		// determine minimum required precision for x
		allBits := uint(len(x.mant)) * _W
		exp := uint(x.exp)
		if x.MinPrec() <= exp {
			acc = Exact
		}
		// shift mantissa as needed
		var m nat
		switch {
		case exp > allBits:
			m = m.shl(x.mant, exp-allBits)
		default:
			m = x.mant
		case exp < allBits:
			m = m.shr(x.mant, allBits-exp)
		}
		z.SetBits(m.bigWords())
		if x.neg {
			z.Neg(z)
		}
		return z, acc

	case zero:
		return z.SetInt64(0), Exact

	case inf:
		return nil, makeAcc(x.neg)
	}

	return nil, Exact
}

// Rat returns the rational number corresponding to x;
// or nil if x is an infinity or NaN.
// The result is Exact if x is not an Inf or NaN.
// If a non-nil *big.Rat argument z is provided, Rat stores
// the result in z instead of allocating a new big.Rat.
func (x *Float) Rat(z *big.Rat) (*big.Rat, Accuracy) {
	x.check()
	if debugFloat {
		x.validate()
	}

	if z == nil && x.form <= finite {
		z = new(big.Rat)
	}

	switch x.form {
	case finite:
		// 0 < |x| < +Inf
		allBits := int64(len(x.mant)) * _W
		a := new(big.Int).SetBits(x.mant.bigWords())
		if x.neg {
			a.Neg(a)
		}
		b := big.NewInt(1)
		switch {
		case x.exp > allBits:
			a.Lsh(a, uint(x.exp-allBits))
		case x.exp < allBits:
			b.Lsh(b, uint(allBits-x.exp))
		}
		return z.SetFrac(a, b), Exact

	case zero:
		return z.SetInt64(0), Exact

	case inf:
		return nil, makeAcc(x.neg)
	}

	return nil, Exact
}

// SetRat sets z to the value of x rounded according to o and returns the
// status. With infinite precision, the quotient is computed with a finite
// fallback precision unless the denominator of x is a power of two.
func (z *Float) SetRat(o Options, x *big.Rat) Status {
	z.check()
	if x.IsInt() {
		z.SetInt(x.Num())
		return z.round(o, 0)
	}
	a := z.scratch()
	defer a.free()
	b := z.scratch()
	defer b.free()
	a.SetInt(x.Num())
	b.SetInt(x.Denom())
	if b.MinPrec() == 1 {
		// power of two
		z.Copy(a)
		z.exp -= b.exp - 1
		return z.round(o, 0)
	}
	return z.Quo(o, a, b)
}
