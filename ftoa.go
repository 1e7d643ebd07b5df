// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements Float-to-string conversion functions.
// It is closely following the corresponding implementation
// in strconv/ftoa.go, but modified and simplified for Float.

package bigfloat

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Notation selects the layout of a formatted number.
type Notation byte

// Supported notations.
const (
	// Auto selects Plain or Exponential notation with the rules of the %g
	// verb of package fmt.
	Auto Notation = iota
	// Plain formats numbers without exponent, like %f.
	Plain
	// Exponential formats numbers as d.ddd followed by an exponent, like %e.
	Exponential
)

// FormatOptions controls AppendBase and TextBase.
type FormatOptions struct {
	Notation Notation
	// Digits is the number of digits after the radix point for Plain and
	// Exponential notations, and the number of significant digits for Auto.
	// Digits is ignored if Shortest is set.
	Digits int
	// Shortest selects the smallest number of digits necessary to read the
	// value back exactly with the precision Prec and ToNearestEven rounding.
	Shortest bool
	// Prec is the precision used by Shortest. 0 selects the largest of
	// DefaultPrec and x.MinPrec(). PrecInf selects the exact value of x in even
	// bases, and x.MinPrec() otherwise. A precision lower than x.MinPrec() is
	// raised to x.MinPrec().
	Prec uint
	// Prefix prepends 0b, 0o or 0x to the digits in bases 2, 8 and 16.
	Prefix bool
	// Upper selects upper case letters for digits, prefixes and the exponent
	// marker.
	Upper bool
}

// Text converts the floating-point number x to a string according
// to the given format and precision prec. The format is one of:
//
//	'e'	-d.dddde±dd, decimal exponent, at least two (possibly 0) exponent digits
//	'E'	-d.ddddE±dd, decimal exponent, at least two (possibly 0) exponent digits
//	'f'	-ddddd.dddd, no exponent
//	'g'	like 'e' for large exponents, like 'f' otherwise
//	'G'	like 'E' for large exponents, like 'f' otherwise
//	'x'	-0xd.dddddp±dd, hexadecimal mantissa, decimal power of two exponent
//	'X'	-0Xd.dddddP±dd, hexadecimal mantissa, decimal power of two exponent
//	'b'	-ddddddp±dd, decimal mantissa, decimal power of two exponent
//	'p'	-0x.dddp±dd, hexadecimal mantissa, decimal power of two exponent
//
// For the power-of-two exponent formats, the mantissa is printed in normalized
// form:
//
//	'b'	decimal integer mantissa using x.MinPrec() bits, or -0
//	'p'	hexadecimal fraction with 0.5 <= 0.mantissa < 1.0, or -0
//	'x'	hexadecimal mantissa with 1.0 <= 1.mantissa < 2.0, or -0
//
// The precision prec controls the number of digits (excluding the exponent)
// printed by the 'e', 'E', 'f', 'g', 'G', and 'x' formats.
// For 'e', 'E', 'f', and 'x', it is the number of digits after the decimal point.
// For 'g' and 'G' it is the total number of digits. A negative precision selects
// the smallest number of decimal digits necessary to represent the value x
// uniquely using max(DefaultPrec, x.MinPrec()) bits.
// The prec value is ignored for the 'b' and 'p' formats.
func (x *Float) Text(format byte, prec int) string {
	n := 10
	if prec > 0 {
		n += prec
	}
	return string(x.Append(make([]byte, 0, n), format, prec))
}

// String formats x like x.Text('g', -1).
// String is used by fmt verbs other than those handled by Format.
func (x *Float) String() string {
	return x.Text('g', -1)
}

// Append appends to buf the string form of the floating-point number x,
// as generated by x.Text, and returns the extended buffer.
func (x *Float) Append(buf []byte, fmt byte, prec int) []byte {
	x.check()
	if x.form == nan {
		return append(buf, "NaN"...)
	}

	// sign
	if x.neg {
		buf = append(buf, '-')
	}

	// Inf
	if x.form == inf {
		if !x.neg {
			buf = append(buf, '+')
		}
		return append(buf, "Inf"...)
	}

	// pick off easy formats
	switch fmt {
	case 'b':
		return x.fmtB(buf)
	case 'p':
		return x.fmtP(buf)
	case 'x':
		return x.fmtX(buf, prec, false)
	case 'X':
		return x.fmtX(buf, prec, true)
	}

	f := FormatOptions{Digits: prec, Shortest: prec < 0}
	switch fmt {
	case 'e', 'E':
		f.Notation = Exponential
	case 'f':
		f.Notation = Plain
	case 'g', 'G':
		f.Notation = Auto
	default:
		// unknown format
		if x.neg {
			buf = buf[:len(buf)-1] // sign was added prematurely - remove it again
		}
		return append(buf, '%', fmt)
	}
	f.Upper = fmt == 'E' || fmt == 'G'
	return x.appendDigits(buf, 10, f)
}

// TextBase converts x to a string in the given base according to f.
// The base must be between 2 and MaxBase.
func (x *Float) TextBase(base int, f FormatOptions) string {
	return string(x.AppendBase(nil, base, f))
}

// AppendBase appends to buf the string form of x as generated by
// x.TextBase and returns the extended buffer.
//
// The exponent is a signed decimal number of at least two digits; it is
// introduced by 'e' (or 'E' with Upper) in base 10 and denotes a power of 10.
// In other bases it is introduced by '@' and denotes a power of the base.
// Infinities are formatted as "+Inf" and "-Inf", NaN as "NaN".
func (x *Float) AppendBase(buf []byte, base int, f FormatOptions) []byte {
	x.check()
	if base < 2 || base > MaxBase {
		panic(fmt.Sprintf("invalid number base %d", base))
	}
	if x.form == nan {
		return append(buf, "NaN"...)
	}
	if x.neg {
		buf = append(buf, '-')
	}
	if x.form == inf {
		if !x.neg {
			buf = append(buf, '+')
		}
		return append(buf, "Inf"...)
	}
	if f.Prefix {
		var p string
		switch base {
		case 2:
			p = "0b"
		case 8:
			p = "0o"
		case 16:
			p = "0x"
		}
		if f.Upper {
			p = strings.ToUpper(p)
		}
		buf = append(buf, p...)
	}
	return x.appendDigits(buf, base, f)
}

// digits represents the value 0.d × base**dp. d holds digit characters
// without trailing zeros.
type digits struct {
	d  []byte
	dp int
}

// appendDigits appends the digits of the zero or finite |x|.
func (x *Float) appendDigits(buf []byte, base int, f FormatOptions) []byte {
	var d digits
	if x.form == finite {
		switch {
		case f.Shortest:
			d = x.shortestDigits(base, f.Prec)
		case f.Notation == Plain:
			d = x.fracDigits(base, max(f.Digits, 0))
		case f.Notation == Exponential:
			d = x.sigDigits(base, max(f.Digits, 0)+1)
		default:
			d = x.sigDigits(base, max(f.Digits, 1))
		}
	}
	if f.Upper {
		for i, c := range d.d {
			if 'a' <= c && c <= 'z' {
				d.d[i] = upperDigits[c-'a'+10]
			}
		}
	}
	mark := byte('@')
	if base == 10 {
		mark = 'e'
		if f.Upper {
			mark = 'E'
		}
	}

	nd := len(d.d)
	switch f.Notation {
	case Exponential:
		prec := f.Digits
		if f.Shortest {
			prec = max(nd-1, 0)
		}
		return fmtE(buf, mark, d, prec)
	case Plain:
		prec := f.Digits
		if f.Shortest {
			prec = max(nd-d.dp, 0)
		}
		return fmtF(buf, d, prec)
	}

	// %e is used if the exponent from the conversion
	// is less than -4 or greater than or equal to the precision.
	// if precision was the shortest possible, use precision 6 for this decision.
	prec := max(f.Digits, 1)
	if f.Shortest {
		prec = nd
	}
	eprec := prec
	if eprec > nd && nd >= d.dp {
		eprec = nd
	}
	if f.Shortest {
		eprec = 6
	}
	exp := d.dp - 1
	if nd > 0 && (exp < -4 || exp >= eprec) {
		if prec > nd {
			prec = nd
		}
		return fmtE(buf, mark, d, max(prec-1, 0))
	}
	if prec > d.dp {
		prec = nd
	}
	return fmtF(buf, d, max(prec-d.dp, 0))
}

// intMant returns the mantissa of the finite x as an integer M and the
// exponent e such that |x| = M × 2**e.
func (x *Float) intMant() (nat, int64) {
	return x.mant, x.exp - int64(len(x.mant))*_W
}

// magnitude returns an estimate of the exponent k such that
// base**(k-1) <= |x| < base**k for the finite x.
func (x *Float) magnitude(base int) int {
	top := float64(x.mant[len(x.mant)-1]) / (1 << _W)
	l := float64(x.exp) + math.Log2(top)
	return int(math.Floor(l/math.Log2(float64(base)))) + 1
}

// scaledRound returns |x| × base**j rounded to the nearest integer, with ties
// to even.
func (x *Float) scaledRound(base int, j int64) nat {
	m, e := x.intMant()
	num := nat(nil).set(m)
	den := nat(nil).setWord(1)
	if j >= 0 {
		num = nat(nil).mul(num, nat(nil).expWW(Word(base), uint64(j)))
	} else {
		den = nat(nil).expWW(Word(base), uint64(-j))
	}
	if e >= 0 {
		num = nat(nil).shl(num, uint(e))
	} else {
		den = nat(nil).shl(den, uint(-e))
	}
	q, r := nat(nil).div(nil, num, den)
	r = nat(nil).shl(r, 1)
	if c := r.cmp(den); c > 0 || c == 0 && len(q) > 0 && q[0]&1 != 0 {
		q = nat(nil).add(q, natOne)
	}
	return q
}

// sigDigits returns the n significant digits of the finite |x| in the given
// base, rounded half to even.
func (x *Float) sigDigits(base, n int) digits {
	k := x.magnitude(base)
	hi := nat(nil).expWW(Word(base), uint64(n))
	lo := nat(nil).expWW(Word(base), uint64(n-1))
	var q nat
	for {
		q = x.scaledRound(base, int64(n-k))
		switch {
		case q.cmp(hi) >= 0:
			k++
			continue
		case q.cmp(lo) < 0:
			k--
			continue
		}
		break
	}
	return digits{d: trimZeros(q.utoa(base)), dp: k}
}

// fracDigits returns the digits of the finite |x| in the given base, rounded
// half to even to n digits after the radix point.
func (x *Float) fracDigits(base, n int) digits {
	q := x.scaledRound(base, int64(n))
	if len(q) == 0 {
		return digits{}
	}
	s := q.utoa(base)
	return digits{d: trimZeros(s), dp: len(s) - n}
}

// exactDigits returns all the digits of the finite |x| in the even base.
func (x *Float) exactDigits(base int) digits {
	m, e := x.intMant()
	var q nat
	j := int64(0)
	if e >= 0 {
		q = nat(nil).shl(m, uint(e))
	} else {
		// base**j is a multiple of 2**-e
		tb := int64(ntz(Word(base)))
		j = (-e + tb - 1) / tb
		q = nat(nil).mul(m, nat(nil).expWW(Word(base), uint64(j)))
		q = nat(nil).shr(q, uint(-e))
	}
	s := q.utoa(base)
	return digits{d: trimZeros(s), dp: len(s) - int(j)}
}

// shortestDigits returns the shortest digit string of the finite |x| in the
// given base that reads back to x when rounded to prec bits with
// ToNearestEven. It uses the free-format algorithm of Steele & White, as
// refined by Burger & Dybvig, on exact integers.
func (x *Float) shortestDigits(base int, prec uint) digits {
	mp := x.MinPrec()
	switch {
	case prec == PrecInf && base%2 == 0:
		return x.exactDigits(base)
	case prec == PrecInf:
		prec = mp
	case prec == 0:
		prec = umax(DefaultPrec, mp)
	case prec < mp:
		prec = mp
	}

	// |x| = f × 2**e with exactly prec bits in f
	var f nat
	switch n := uint(len(x.mant)) * _W; {
	case prec < n:
		f = nat(nil).shr(x.mant, n-prec)
	default:
		f = nat(nil).shl(x.mant, prec-n)
	}
	e := x.exp - int64(prec)

	// The rounding interval of x is [x - m-/2, x + m+/2], closed if f is
	// even. Its lower half is narrower if x is a power of two. All values
	// below are scaled by 2s so that x = r/s, m+ = mp/s and m- = mm/s.
	even := f.bit(0) == 0
	pow2 := mp == 1
	var r, s, mplus, mminus nat
	if e >= 0 {
		be := nat(nil).shl(natOne, uint(e))
		if !pow2 {
			r = nat(nil).shl(f, uint(e)+1)
			s = nat(nil).setWord(2)
			mplus, mminus = be, nat(nil).set(be)
		} else {
			r = nat(nil).shl(f, uint(e)+2)
			s = nat(nil).setWord(4)
			mplus, mminus = nat(nil).shl(be, 1), be
		}
	} else {
		if !pow2 {
			r = nat(nil).shl(f, 1)
			s = nat(nil).shl(natOne, uint(1-e))
			mplus, mminus = nat(nil).setWord(1), nat(nil).setWord(1)
		} else {
			r = nat(nil).shl(f, 2)
			s = nat(nil).shl(natOne, uint(2-e))
			mplus, mminus = nat(nil).setWord(2), nat(nil).setWord(1)
		}
	}

	// k never exceeds the exponent of the upper bound of the interval
	b := Word(base)
	k := int(math.Ceil(float64(x.exp-1)/math.Log2(float64(base)))) - 1
	if k >= 0 {
		s = nat(nil).mul(s, nat(nil).expWW(b, uint64(k)))
	} else {
		p := nat(nil).expWW(b, uint64(-k))
		r = nat(nil).mul(r, p)
		mplus = nat(nil).mul(mplus, p)
		mminus = nat(nil).mul(mminus, p)
	}
	var t nat
	for {
		t = t.add(r, mplus)
		if c := t.cmp(s); c > 0 || c == 0 && even {
			s = s.mulAddWW(s, b, 0)
			k++
			continue
		}
		break
	}

	var d []byte
	var q nat
	for {
		r = r.mulAddWW(r, b, 0)
		mplus = mplus.mulAddWW(mplus, b, 0)
		mminus = mminus.mulAddWW(mminus, b, 0)
		q, r = q.div(nil, r, s)
		var dig Word
		if len(q) > 0 {
			dig = q[0]
		}
		c1 := r.cmp(mminus)
		low := c1 < 0 || c1 == 0 && even
		t = t.add(r, mplus)
		c2 := t.cmp(s)
		high := c2 > 0 || c2 == 0 && even
		switch {
		case !low && !high:
			d = append(d, lowerDigits[dig])
			continue
		case low && high:
			t = t.shl(r, 1)
			if c := t.cmp(s); c > 0 || c == 0 && dig&1 != 0 {
				dig++
			}
		case high:
			dig++
		}
		d = append(d, lowerDigits[dig])
		break
	}
	return digits{d: trimZeros(d), dp: k}
}

func trimZeros(d []byte) []byte {
	i := len(d)
	for i > 0 && d[i-1] == '0' {
		i--
	}
	return d[:i]
}

// %e: d.ddddde±dd
func fmtE(buf []byte, mark byte, d digits, prec int) []byte {
	// first digit
	ch := byte('0')
	if len(d.d) > 0 {
		ch = d.d[0]
	}
	buf = append(buf, ch)

	// .moredigits
	if prec > 0 {
		buf = append(buf, '.')
		i := 1
		m := min(len(d.d), prec+1)
		if i < m {
			buf = append(buf, d.d[i:m]...)
			i = m
		}
		for ; i <= prec; i++ {
			buf = append(buf, '0')
		}
	}

	// e±
	buf = append(buf, mark)
	var exp int64
	if len(d.d) > 0 {
		exp = int64(d.dp) - 1 // d.d[0]==0 is not possible
	}
	if exp < 0 {
		ch = '-'
		exp = -exp
	} else {
		ch = '+'
	}
	buf = append(buf, ch)

	// dd...d
	if exp < 10 {
		buf = append(buf, '0') // at least 2 exponent digits
	}
	return strconv.AppendInt(buf, exp, 10)
}

// %f: ddddddd.ddddd
func fmtF(buf []byte, d digits, prec int) []byte {
	// integer, padded with zeros as needed
	if d.dp > 0 {
		m := min(len(d.d), d.dp)
		buf = append(buf, d.d[:m]...)
		for ; m < d.dp; m++ {
			buf = append(buf, '0')
		}
	} else {
		buf = append(buf, '0')
	}

	// fraction
	if prec > 0 {
		buf = append(buf, '.')
		for i := 0; i < prec; i++ {
			ch := byte('0')
			if j := d.dp + i; 0 <= j && j < len(d.d) {
				ch = d.d[j]
			}
			buf = append(buf, ch)
		}
	}

	return buf
}

// fmtB appends the string of x in the format mantissa "p" exponent
// with a decimal mantissa and a binary exponent, or "0" if x is zero,
// and returns the extended buffer.
// The mantissa is normalized such that is uses x.MinPrec() bits in binary
// representation.
// The sign of x is ignored, and x must not be an Inf.
// (The caller handles Inf before invoking fmtB.)
func (x *Float) fmtB(buf []byte) []byte {
	if x.form == zero {
		return append(buf, '0')
	}

	if debugFloat && x.form != finite {
		panic("non-finite float")
	}
	// x != 0

	// adjust mantissa to use exactly MinPrec bits
	prec := x.MinPrec()
	m := nat(nil).shr(x.mant, uint(len(x.mant))*_W-prec)

	buf = append(buf, m.utoa(10)...)
	buf = append(buf, 'p')
	e := x.exp - int64(prec)
	if e >= 0 {
		buf = append(buf, '+')
	}
	return strconv.AppendInt(buf, e, 10)
}

// fmtX appends the string of x in the format "0x1." mantissa "p" exponent
// with a hexadecimal mantissa and a binary exponent, or "0x0p0" if x is zero,
// and returns the extended buffer.
// A non-zero mantissa is normalized such that 1.0 <= mantissa < 2.0.
// The sign of x is ignored, and x must not be an Inf.
// (The caller handles Inf before invoking fmtX.)
func (x *Float) fmtX(buf []byte, prec int, upper bool) []byte {
	p, mark := "0x", byte('p')
	if upper {
		p, mark = "0X", 'P'
	}
	if x.form == zero {
		buf = append(buf, p...)
		buf = append(buf, '0')
		if prec > 0 {
			buf = append(buf, '.')
			for i := 0; i < prec; i++ {
				buf = append(buf, '0')
			}
		}
		buf = append(buf, mark)
		return append(buf, "+00"...)
	}

	if debugFloat && x.form != finite {
		panic("non-finite float")
	}

	// round mantissa to n bits
	var n uint
	if prec < 0 {
		n = 1 + (x.MinPrec()-1+3)/4*4 // round MinPrec up to 1 mod 4
	} else {
		n = 1 + 4*uint(prec)
	}
	// n%4 == 1
	t := x.scratch()
	defer t.free()
	t.Copy(x)
	t.round(Options{Prec: n, Flags: Subnormal | wide}, 0)

	// adjust mantissa to use exactly n bits
	m := t.mant
	switch w := uint(len(t.mant)) * _W; {
	case w < n:
		m = nat(nil).shl(m, n-w)
	case w > n:
		m = nat(nil).shr(m, w-n)
	}
	exp64 := t.exp - 1

	hm := m.utoa(16)
	if debugFloat && hm[0] != '1' {
		panic("incorrect mantissa: " + string(hm))
	}
	if upper {
		hm = []byte(strings.ToUpper(string(hm)))
	}
	buf = append(buf, p...)
	buf = append(buf, '1')
	if len(hm) > 1 {
		buf = append(buf, '.')
		buf = append(buf, hm[1:]...)
	}

	buf = append(buf, mark)
	if exp64 >= 0 {
		buf = append(buf, '+')
	} else {
		exp64 = -exp64
		buf = append(buf, '-')
	}
	// Force at least two exponent digits, to match fmt.
	if exp64 < 10 {
		buf = append(buf, '0')
	}
	return strconv.AppendInt(buf, exp64, 10)
}

// fmtP appends the string of x in the format "0x." mantissa "p" exponent
// with a hexadecimal mantissa and a binary exponent, or "0" if x is zero,
// and returns the extended buffer.
// The mantissa is normalized such that 0.5 <= 0.mantissa < 1.0.
// The sign of x is ignored, and x must not be an Inf.
// (The caller handles Inf before invoking fmtP.)
func (x *Float) fmtP(buf []byte) []byte {
	if x.form == zero {
		return append(buf, '0')
	}

	if debugFloat && x.form != finite {
		panic("non-finite float")
	}
	// x != 0

	// mantissa words are trimmed, so the low word is never zero
	buf = append(buf, "0x."...)
	buf = append(buf, trimZeros(x.mant.utoa(16))...)
	buf = append(buf, 'p')
	if x.exp >= 0 {
		buf = append(buf, '+')
	}
	return strconv.AppendInt(buf, x.exp, 10)
}

var _ fmt.Formatter = (*Float)(nil) // *Float must implement fmt.Formatter

// Format implements fmt.Formatter. It accepts all the regular
// formats for floating-point numbers ('b', 'e', 'E', 'f', 'F',
// 'g', 'G', 'x') as well as 'p' and 'v'. See (*Float).Text for the
// interpretation of 'p'. The 'v' format is handled like 'g'.
// Format also supports the minimum precision in digits, the output
// field width, as well as the format flags '+' and ' ' for sign
// control, '0' for space or zero padding, and '-' for left or right
// justification. See the fmt package for details.
func (x *Float) Format(s fmt.State, format rune) {
	prec, hasPrec := s.Precision()
	if !hasPrec {
		prec = 6 // default precision for 'e', 'f'
	}

	switch format {
	case 'e', 'E', 'f', 'b', 'p', 'x', 'X':
		// nothing to do
	case 'F':
		// (*Float).Text doesn't support 'F'; handle like 'f'
		format = 'f'
	case 'v':
		// handle like 'g'
		format = 'g'
		fallthrough
	case 'g', 'G':
		if !hasPrec {
			prec = -1
		}
	default:
		fmt.Fprintf(s, "%%!%c(*bigfloat.Float=%s)", format, x.String())
		return
	}
	var buf []byte
	buf = x.Append(buf, byte(format), prec)
	if buf == nil {
		buf = []byte("?") // should never happen, but don't crash
	}
	// len(buf) > 0

	var sign string
	switch {
	case buf[0] == '-':
		sign = "-"
		buf = buf[1:]
	case buf[0] == '+':
		// +Inf
		sign = "+"
		if s.Flag(' ') {
			sign = " "
		}
		buf = buf[1:]
	case s.Flag('+'):
		sign = "+"
	case s.Flag(' '):
		sign = " "
	}

	var padding int
	if width, hasWidth := s.Width(); hasWidth && width > len(sign)+len(buf) {
		padding = width - len(sign) - len(buf)
	}

	switch {
	case s.Flag('0') && x.IsFinite():
		// 0-padding on left
		writeMultiple(s, sign, 1)
		writeMultiple(s, "0", padding)
		s.Write(buf)
	case s.Flag('-'):
		// padding on right
		writeMultiple(s, sign, 1)
		s.Write(buf)
		writeMultiple(s, " ", padding)
	default:
		// padding on left
		writeMultiple(s, " ", padding)
		writeMultiple(s, sign, 1)
		s.Write(buf)
	}
}

// write count copies of text to s
func writeMultiple(s fmt.State, text string, count int) {
	if len(text) > 0 {
		b := []byte(text)
		for ; count > 0; count-- {
			s.Write(b)
		}
	}
}
