// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

// Round rounds z in place to the precision, rounding mode and exponent range
// given by o, and returns the rounding status.
func (z *Float) Round(o Options) Status {
	z.check()
	return z.round(o, 0)
}

// setExpAndRound sets the exponent of the finite z and rounds it.
func (z *Float) setExpAndRound(o Options, exp int64, sbit uint) Status {
	z.form = finite
	z.exp = exp
	return z.round(o, sbit)
}

// round rounds z according to o and returns the rounding status. z's
// mantissa must be normalized (msb set) or empty. sbit is 0 or 1 and
// represents a sticky bit below the last mantissa bit: the actual value of z
// is larger than its mantissa when sbit is set.
//
// CAUTION: The rounding modes ToNegativeInf, ToPositiveInf are affected by the
// sign of z. For correct rounding, the sign of z must be set correctly before
// calling round.
func (z *Float) round(o Options, sbit uint) Status {
	if debugFloat {
		z.validate()
	}

	if z.form != finite {
		// ±0, ±Inf or NaN => nothing left to do
		return Ok
	}

	emin, emax := o.emin(), o.emax()
	if z.exp > emax {
		return z.overflow(o)
	}

	prec := o.prec()
	tiny := false
	if z.exp < emin {
		if o.Flags&Subnormal == 0 {
			return z.flush(o, emin, sbit)
		}
		tiny = true
		if prec != PrecInf {
			// gradual underflow: one bit of precision lost per binade
			d := uint64(emin - z.exp)
			if d >= uint64(prec) {
				return z.roundTiny(o, emin, sbit, d == uint64(prec))
			}
			prec -= uint(d)
		}
	}

	var s Status
	if prec != PrecInf {
		s = z.roundBits(o.Mode, prec, sbit)
	}
	if s != Ok && tiny {
		s |= Underflow
	}
	if z.exp > emax {
		return z.overflow(o)
	}
	z.mant = z.mant.trimLow()

	if debugFloat {
		z.validate()
	}
	return s
}

// roundBits rounds the mantissa of the finite z to prec bits.
func (z *Float) roundBits(mode RoundingMode, prec uint, sbit uint) Status {
	m := uint(len(z.mant)) // present mantissa length in words
	bits := m * _W         // present mantissa bits; bits > 0

	var rbit uint
	if bits <= prec {
		// mantissa fits
		if sbit == 0 {
			return Ok
		}
		// the sticky bit lies below the last precision bit
		m = (prec + (_W - 1)) / _W
		z.mant = z.mant.extendLow(int(m))
	} else {
		r := bits - prec - 1 // rounding bit position; r >= 0
		rbit = z.mant.bit(r) & 1
		// The sticky bit is only needed for rounding ToNearestEven
		// or when the rounding bit is zero. Avoid computation otherwise.
		if sbit == 0 && (rbit == 0 || mode == ToNearestEven) {
			sbit = z.mant.sticky(r)
		}
		sbit &= 1
	}

	// cut off extra words
	n := (prec + (_W - 1)) / _W // mantissa length in words for desired precision
	if m > n {
		copy(z.mant, z.mant[m-n:]) // move n last words to front
		z.mant = z.mant[:n]
	}

	// determine number of trailing zero bits (ntz) and compute lsb mask of mantissa's least-significant word
	ntz := n*_W - prec // 0 <= ntz < _W
	lsb := Word(1) << ntz

	var s Status
	if rbit|sbit != 0 {
		s = Inexact
		if roundUp(mode, z.neg, rbit, sbit, z.mant[0]&lsb != 0) {
			// add 1 to mantissa
			if addVW(z.mant, z.mant, lsb) != 0 {
				// mantissa overflow => adjust exponent; overflow is checked
				// by the caller
				z.exp++
				// adjust mantissa: divide by 2 to compensate for exponent adjustment
				shrVU(z.mant, z.mant, 1)
				// set msb == carry == 1 from the mantissa overflow above
				const msb = 1 << (_W - 1)
				z.mant[n-1] |= msb
			}
		}
	}

	// zero out trailing bits in least-significant word
	z.mant[0] &^= lsb - 1
	return s
}

// roundUp reports whether a truncated mantissa must be incremented. odd
// reports whether its least significant retained bit is set.
func roundUp(mode RoundingMode, neg bool, rbit, sbit uint, odd bool) bool {
	switch mode {
	case ToNegativeInf:
		return neg
	case ToZero:
		return false
	case ToNearestEven:
		return rbit != 0 && (sbit != 0 || odd)
	case ToNearestAway:
		return rbit != 0
	case AwayFromZero:
		return true
	case ToPositiveInf:
		return !neg
	}
	panic("unreachable")
}

// overflow sets z to ±Inf or to the largest finite value of the same sign,
// according to o's rounding mode.
func (z *Float) overflow(o Options) Status {
	toInf := true
	switch o.Mode {
	case ToZero:
		toInf = false
	case ToNegativeInf:
		toInf = z.neg
	case ToPositiveInf:
		toInf = !z.neg
	case ToNearestEven, ToNearestAway, AwayFromZero:
	default:
		panic("unreachable")
	}
	if toInf || o.inf() {
		z.form = inf
	} else {
		z.setMaxFinite(o.prec(), o.emax())
	}
	return Overflow | Inexact
}

// setMaxFinite sets the magnitude of z to the largest finite value with prec
// bits and exponent exp.
func (z *Float) setMaxFinite(prec uint, exp int64) {
	n := (prec + (_W - 1)) / _W
	z.mant = z.mant.make(int(n))
	for i := range z.mant {
		z.mant[i] = _M
	}
	z.mant[0] &^= Word(1)<<(n*_W-prec) - 1
	z.exp = exp
	z.form = finite
}

// setMinNormal sets the magnitude of z to 2**(exp-1).
func (z *Float) setMinNormal(exp int64) {
	z.mant = z.mant.setWord(1 << (_W - 1))
	z.exp = exp
	z.form = finite
}

// flush handles underflow when subnormals are disabled: the result is either
// zero or the smallest normal number, decided on the unrounded value of z.
func (z *Float) flush(o Options, emin int64, sbit uint) Status {
	up := false
	switch o.Mode {
	case ToZero:
	case AwayFromZero:
		up = true
	case ToPositiveInf:
		up = !z.neg
	case ToNegativeInf:
		up = z.neg
	case ToNearestEven, ToNearestAway:
		if z.exp == emin-1 {
			// z >= half of the smallest normal
			m := len(z.mant)
			half := sbit == 0 && z.mant[m-1] == 1<<(_W-1) && z.mant.sticky(uint(m)*_W-1) == 0
			up = !half || o.Mode == ToNearestAway
		}
	default:
		panic("unreachable")
	}
	if up {
		z.setMinNormal(emin)
	} else {
		z.form = zero
	}
	return Underflow | Inexact
}

// roundTiny rounds a value smaller than half the smallest subnormal number,
// or exactly in the binade below the smallest subnormal when atHalf is set,
// to either zero or the smallest subnormal.
func (z *Float) roundTiny(o Options, emin int64, sbit uint, atHalf bool) Status {
	var rbit uint
	if atHalf {
		rbit = 1
		if sbit == 0 {
			m := len(z.mant)
			sbit = z.mant.sticky(uint(m)*_W - 1)
		}
	} else {
		sbit = 1
	}
	// the retained value is zero, which is even
	if roundUp(o.Mode, z.neg, rbit, sbit, false) {
		z.setMinNormal(emin - int64(o.prec()) + 1)
	} else {
		z.form = zero
	}
	return Underflow | Inexact
}

// RoundToInt sets z to the value of x rounded to an integer according to
// o.Mode, then to o's precision, and returns the rounding status. Inexact is
// set if the result differs from x.
func (z *Float) RoundToInt(o Options, x *Float) Status {
	x.check()
	z.check()
	if z != x {
		z.Copy(x)
	}
	if z.form != finite {
		if z.form == nan {
			z.neg = false
		}
		return Ok
	}

	var s Status
	switch {
	case z.exp < 0:
		// |z| < 0.5
		s = Inexact
		if roundUp(o.Mode, z.neg, 0, 1, false) {
			z.setWord(1)
		} else {
			z.form = zero
		}
	case z.exp == 0:
		// 0.5 <= |z| < 1: the rounding bit is the msb
		m := len(z.mant)
		sbit := z.mant.sticky(uint(m)*_W - 1)
		s = Inexact
		if roundUp(o.Mode, z.neg, 1, sbit, false) {
			z.setWord(1)
		} else {
			z.form = zero
		}
	case uint64(z.exp) < uint64(len(z.mant))*_W:
		// fractional bits present
		s = z.roundBits(o.Mode, uint(z.exp), 0)
		z.mant = z.mant.trimLow()
	}
	return s | z.round(o, 0)
}
