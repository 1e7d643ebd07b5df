// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements string-to-Float conversion functions.

package bigfloat

import (
	"fmt"
	"io"
	"math"
	"math/bits"
	"strings"
)

// expSat bounds the magnitude of scanned exponents. Any larger exponent
// overflows or underflows whatever the mantissa.
const expSat = 1 << 50

// SetString sets z to the value of s rounded according to o and returns the
// status. s must be a floating-point number of the same format as accepted by
// Parse, with base argument 0. The entire string (not just a prefix) must be
// valid for success; on failure z is NaN and the status is InvalidOperation.
func (z *Float) SetString(o Options, s string) (Status, error) {
	st, _, err := z.Parse(o, s, 0)
	return st, err
}

// scan is like Parse but reads the longest possible prefix representing a
// valid floating point number from an io.ByteScanner rather than a string. It
// serves as the implementation of Parse. It does not recognize ±Inf nor NaN and
// does not expect EOF at the end.
func (z *Float) scan(o Options, r io.ByteScanner, base int) (s Status, err error) {
	// sign
	ch, err := r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = errNoDigits
		}
		return Ok, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	neg := false
	switch ch {
	case '-':
		neg = true
	case '+':
	default:
		if err = r.UnreadByte(); err != nil {
			return Ok, err
		}
	}

	// mantissa
	m := z.ctx.getNat(0)
	defer z.ctx.putNat(m)
	var b, frac int
	*m, b, frac, err = m.scan(r, base)
	if err != nil {
		return Ok, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	kb := -int64(frac)

	// exponent
	var k2, k10 int64
	ch, err = r.ReadByte()
	switch {
	case err == io.EOF:
		err = nil
	case err != nil:
		return Ok, err
	default:
		ebase := 0
		switch {
		case (ch == 'e' || ch == 'E') && b <= 10:
			ebase = 10
		case (ch == 'p' || ch == 'P') && b <= 25:
			ebase = 2
		case ch == '@':
			ebase = b
		default:
			if err = r.UnreadByte(); err != nil {
				return Ok, err
			}
		}
		if ebase != 0 {
			var e int64
			if e, err = scanExponent(r, base == 0); err != nil {
				return Ok, fmt.Errorf("%w: exponent: %v", ErrTrailing, err)
			}
			switch ebase {
			case 2:
				k2 = e
			case 10:
				k10 = e
			default:
				kb += e
			}
		}
	}

	z.neg = neg
	if len(*m) == 0 {
		z.form = zero
		return Ok, nil
	}
	return z.setScaled(o, m, b, kb, k2, k10), nil
}

// scanExponent scans a decimal exponent with an optional sign. Underscores
// between digits are accepted if sepOk is set. The result is saturated to
// ±expSat.
func scanExponent(r io.ByteScanner, sepOk bool) (exp int64, err error) {
	ch, err := r.ReadByte()
	neg := false
	if err == nil && (ch == '+' || ch == '-') {
		neg = ch == '-'
		ch, err = r.ReadByte()
	}
	prev := '.'
	invalSep := false
	count := 0
	for err == nil {
		if '0' <= ch && ch <= '9' {
			if exp < expSat {
				exp = exp*10 + int64(ch-'0')
			}
			prev = '0'
			count++
		} else if ch == '_' && sepOk {
			if prev != '0' {
				invalSep = true
			}
			prev = '_'
		} else {
			err = r.UnreadByte()
			break
		}
		ch, err = r.ReadByte()
	}
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, errNoDigits
	}
	if invalSep || prev == '_' {
		return 0, errInvalSep
	}
	if exp > expSat {
		exp = expSat
	}
	if neg {
		exp = -exp
	}
	return exp, nil
}

// setScaled sets z to the finite, non-zero value m × b**kb × 2**k2 × 10**k10
// rounded according to o and returns the status. z.neg must be set. The
// result is correctly rounded.
func (z *Float) setScaled(o Options, m *nat, b int, kb, k2, k10 int64) Status {
	// b = 2**tb × cb with cb odd, 10 = 2 × 5
	tb := ntz(Word(b))
	cb := Word(b) >> tb
	e2 := k2 + kb*int64(tb) + k10

	// odd factors
	var c [2]Word
	var k [2]int64
	c[0], k[0] = cb, kb
	c[1], k[1] = 5, k10
	if cb == 5 || cb == 1 {
		c[0], k[0] = 5, k10
		if cb == 5 {
			k[0] += kb
		}
		c[1], k[1] = 1, 0
	}

	// magnitude estimate for values far out of range
	l := float64(m.bitLen()) + float64(e2)
	for i := range c {
		if c[i] > 1 {
			l += float64(k[i]) * math.Log2(float64(c[i]))
		}
	}
	if s, ok := z.powRange(o, l-2, l+1, z.neg); ok {
		return s
	}

	// size of the exact powers
	var size float64
	for i := range c {
		if c[i] > 1 {
			size += math.Abs(float64(k[i])) * math.Log2(float64(c[i]))
		}
	}
	if !o.inf() && size > float64(umax(2*o.prec(), powLimit)) && float64(m.bitLen()) < size/2 {
		return z.setScaledApprox(o, *m, c, k, e2, size)
	}

	num := m
	den := z.ctx.getNat(0)
	defer z.ctx.putNat(den)
	*den = den.setWord(1)
	p := z.ctx.getNat(0)
	defer z.ctx.putNat(p)
	for i := range c {
		if c[i] == 1 || k[i] == 0 {
			continue
		}
		if k[i] > 0 {
			*p = p.expWW(c[i], uint64(k[i]))
			*num = nat(nil).mul(*num, *p)
		} else {
			*p = p.expWW(c[i], uint64(-k[i]))
			*den = nat(nil).mul(*den, *p)
		}
	}

	if len(*den) == 1 && (*den)[0] == 1 {
		// exact integer times a power of two
		t := z.ctx.getNat(0)
		*t = t.set(*num)
		return z.setIntExp(o, t, e2, 0)
	}

	o = o.fallback(len(*num) + len(*den))
	// shift num so that the quotient has at least prec+2 bits
	sh := int64(o.prec()) + 2 + int64(den.bitLen()) - int64(num.bitLen())
	if sh < 0 {
		sh = 0
	}
	u := nat(nil).shl(*num, uint(sh))
	q, r := nat(nil).div(nil, u, *den)
	var sbit uint
	if len(r) > 0 {
		sbit = 1
	}
	return z.setIntExp(o, &q, e2-sh, sbit)
}

// setScaledApprox is like setScaled for powers of c[i] that are too large to
// be computed exactly. The value is evaluated with guard bits and bracketed by
// its error bound; the evaluation is repeated with more guard bits until both
// ends of the bracket round to the same value. m must have less than half the
// bits of the powers, so the value is never exact nor halfway between two
// representable values and the loop terminates.
func (z *Float) setScaledApprox(o Options, m nat, c [2]Word, k [2]int64, e2 int64, size float64) Status {
	neg := z.neg
	num, den, p := z.scratch(), z.scratch(), z.scratch()
	lo, hi, d := z.scratch(), z.scratch(), z.scratch()
	g := uint(bits.Len64(uint64(size))) + 32
	var s Status
	for {
		w := o.work(g)
		num.mant = num.mant.set(m)
		num.neg = false
		num.setMant(int64(m.bitLen()))
		den.SetUint64(1)
		for i := range c {
			if c[i] == 1 || k[i] == 0 {
				continue
			}
			p.SetUint64(uint64(c[i]))
			if k[i] > 0 {
				p.PowUint(w, p, uint64(k[i]))
				num.Mul(w, num, p)
			} else {
				p.PowUint(w, p, uint64(-k[i]))
				den.Mul(w, den, p)
			}
		}
		num.Quo(w, num, den)
		num.exp = satAdd(num.exp, e2)

		// the error is well below 32 ulps of the working precision
		d.setMinNormal(num.exp - int64(w.prec()) + 6)
		d.neg = false
		lo.Sub(exactOptions, num, d)
		hi.Add(exactOptions, num, d)
		lo.neg, hi.neg = neg, neg
		s = lo.round(o, 1)
		if hi.round(o, 1) == s && lo.CmpTotal(hi) == 0 {
			break
		}
		g *= 2
	}
	z.take(lo)
	for _, t := range []*Float{num, den, p, lo, hi, d} {
		t.free()
	}
	return s
}

// Parse parses s which must contain a text representation of a floating-point
// number with a mantissa in the given conversion base, or a string
// representing an infinite value or NaN.
//
// For base 0, an underscore character “_” may appear between a base prefix
// and an adjacent digit, and between successive digits; such underscores do
// not change the value of the number. Incorrect placement of underscores is
// reported as an error if there are no other errors. If base != 0,
// underscores are not recognized and thus terminate scanning like any other
// character that is not a valid radix point or digit.
//
// It sets z to the correctly rounded value of the number according to o and
// returns the rounding status, whether the entire string was consumed, and an
// error if any. With infinite precision, the result is exact unless the
// number has a negative exponent in a base that is not a power of two.
//
// The number must be of the form:
//
//	number    = [ sign ] ( float | "inf" | "infinity" | "nan" ) .
//	sign      = "+" | "-" .
//	float     = ( mantissa | prefix pmantissa ) [ exponent ] .
//	prefix    = "0" ( "b" | "B" | "o" | "O" | "x" | "X" ) .
//	mantissa  = digits "." [ digits ] | digits | "." digits .
//	pmantissa = [ "_" ] digits "." [ digits ] | [ "_" ] digits | "." digits .
//	exponent  = ( "e" | "E" | "p" | "P" | "@" ) [ sign ] digits .
//	digits    = digit { [ "_" ] digit } .
//	digit     = "0" ... "9" | "a" ... "z" | "A" ... "Z" .
//
// Infinities and NaN are matched case insensitively. The base argument must be
// 0 or between 2 and MaxBase. Providing an invalid base argument will lead to
// a run-time panic.
//
// For base 0, the number prefix determines the actual base: A prefix of “0b”
// or “0B” selects base 2, “0o” or “0O” selects base 8, and “0x” or “0X”
// selects base 16. Otherwise, the actual base is 10. A leading "0" is simply
// considered a "0".
//
// An "e" or "E" exponent denotes a power of 10 and is only recognized for
// bases up to 10. A "p" or "P" exponent denotes a power of 2 and is only
// recognized for bases up to 25. An "@" exponent denotes a power of the
// actual base. Exponents are always decimal numbers.
//
// On failure, z is set to NaN, the status is InvalidOperation, and the error
// wraps ErrSyntax, or ErrTrailing if a valid number is followed by extra
// characters.
func (z *Float) Parse(o Options, s string, base int) (st Status, consumed bool, err error) {
	z.check()
	if base != 0 && (base < 2 || base > MaxBase) {
		panic(fmt.Sprintf("invalid number base %d", base))
	}

	// scan doesn't handle ±Inf and NaN
	t := s
	neg := false
	if len(t) > 0 && (t[0] == '+' || t[0] == '-') {
		neg = t[0] == '-'
		t = t[1:]
	}
	switch {
	case strings.EqualFold(t, "inf"), strings.EqualFold(t, "infinity"):
		z.SetInf(neg)
		return Ok, true, nil
	case strings.EqualFold(t, "nan"):
		z.SetNaN()
		return Ok, true, nil
	}

	r := strings.NewReader(s)
	if st, err = z.scan(o, r, base); err != nil {
		return z.setNaN(), false, fmt.Errorf("parsing %q: %w", s, err)
	}

	// entire string must have been consumed
	if ch, err2 := r.ReadByte(); err2 == nil {
		return z.setNaN(), false, fmt.Errorf("parsing %q: %w: found %q", s, ErrTrailing, ch)
	} else if err2 != io.EOF {
		return z.setNaN(), false, err2
	}

	return st, true, nil
}

// ParseFloat is like new(Float).Parse(o, s, base).
func ParseFloat(o Options, s string, base int) (*Float, Status, error) {
	z := new(Float)
	st, _, err := z.Parse(o, s, base)
	if err != nil {
		return nil, st, err
	}
	return z, st, nil
}

var _ fmt.Scanner = (*Float)(nil) // *Float must implement fmt.Scanner

// Scan is a support routine for fmt.Scanner; it sets z to the exact value of
// the scanned number, or to the value rounded with a fallback precision if the
// number has a negative decimal exponent. It accepts formats whose verbs are
// supported by fmt.Scan for floating point values, which are:
// 'b' (binary), 'e', 'E', 'f', 'F', 'g' and 'G'.
// Scan doesn't handle ±Inf nor NaN.
func (z *Float) Scan(s fmt.ScanState, ch rune) error {
	z.check()
	s.SkipSpace()
	_, err := z.scan(Options{Prec: PrecInf}, byteReader{s}, 0)
	return err
}
