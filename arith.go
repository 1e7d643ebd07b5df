// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file provides Go implementations of elementary multi-precision
// arithmetic operations on 64 bits word vectors.

package bigfloat

import "math/bits"

// A Word represents a single limb of a multi-precision significand.
// Limbs are always 64 bits wide, regardless of the platform word size.
type Word uint64

const (
	_S = _W / 8 // word size in bytes
	_W = 64     // word size in bits
	_M = 1<<_W - 1
)

// Many of the loops in this file are of the form
//   for i := 0; i < len(z) && i < len(x) && i < len(y); i++
// i < len(z) is the real condition. Checking the other lengths as well lets
// the compiler drop the bounds checks in the loop body.

// z1<<_W + z0 = x*y
func mulWW(x, y Word) (z1, z0 Word) {
	hi, lo := bits.Mul64(uint64(x), uint64(y))
	return Word(hi), Word(lo)
}

// z1<<_W + z0 = x*y + c
func mulAddWWW(x, y, c Word) (z1, z0 Word) {
	hi, lo := bits.Mul64(uint64(x), uint64(y))
	var cc uint64
	lo, cc = bits.Add64(lo, uint64(c), 0)
	return Word(hi + cc), Word(lo)
}

// q = (u1<<_W + u0)/v, r = (u1<<_W + u0)%v. u1 must be < v.
func divWW(u1, u0, v Word) (q, r Word) {
	qq, rr := bits.Div64(uint64(u1), uint64(u0), uint64(v))
	return Word(qq), Word(rr)
}

// nlz returns the number of leading zeros in x.
func nlz(x Word) uint {
	return uint(bits.LeadingZeros64(uint64(x)))
}

// ntz returns the number of trailing zeros in x.
func ntz(x Word) uint {
	return uint(bits.TrailingZeros64(uint64(x)))
}

// The resulting carry c is either 0 or 1.
func addVV(z, x, y []Word) (c Word) {
	for i := 0; i < len(z) && i < len(x) && i < len(y); i++ {
		zi, cc := bits.Add64(uint64(x[i]), uint64(y[i]), uint64(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// The resulting borrow c is either 0 or 1.
func subVV(z, x, y []Word) (c Word) {
	for i := 0; i < len(z) && i < len(x) && i < len(y); i++ {
		zi, cc := bits.Sub64(uint64(x[i]), uint64(y[i]), uint64(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// addVW sets z = x + y and returns the carry. Once the carry is absorbed the
// remaining words are copied, unless z and x are the same vector.
func addVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := 0; i < len(z) && i < len(x); i++ {
		if c == 0 {
			if !same(z, x) {
				copy(z[i:], x[i:])
			}
			return
		}
		zi, cc := bits.Add64(uint64(x[i]), uint64(c), 0)
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// subVW sets z = x - y and returns the borrow.
func subVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := 0; i < len(z) && i < len(x); i++ {
		if c == 0 {
			if !same(z, x) {
				copy(z[i:], x[i:])
			}
			return
		}
		zi, cc := bits.Sub64(uint64(x[i]), uint64(c), 0)
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// shlVU sets z = x << s, 0 <= s < _W, and returns the bits shifted out.
// z and x must have the same length.
func shlVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return
	}
	if len(z) == 0 {
		return
	}
	s &= _W - 1
	ŝ := (_W - s) & (_W - 1)
	c = x[len(z)-1] >> ŝ
	for i := len(z) - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>ŝ
	}
	z[0] = x[0] << s
	return
}

// shrVU sets z = x >> s, 0 <= s < _W, and returns the bits shifted out,
// left-aligned in c. z and x must have the same length.
func shrVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return
	}
	if len(z) == 0 {
		return
	}
	s &= _W - 1
	ŝ := (_W - s) & (_W - 1)
	c = x[0] << ŝ
	for i := 0; i < len(z)-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<ŝ
	}
	z[len(z)-1] = x[len(z)-1] >> s
	return
}

// mulAddVWW sets z = x*y + r and returns the high word.
func mulAddVWW(z, x []Word, y, r Word) (c Word) {
	c = r
	for i := 0; i < len(z) && i < len(x); i++ {
		c, z[i] = mulAddWWW(x[i], y, c)
	}
	return
}

// addMulVVW sets z += x*y and returns the high word.
func addMulVVW(z, x []Word, y Word) (c Word) {
	for i := 0; i < len(z) && i < len(x); i++ {
		z1, z0 := mulAddWWW(x[i], y, z[i])
		lo, cc := bits.Add64(uint64(z0), uint64(c), 0)
		c, z[i] = Word(cc), Word(lo)
		c += z1
	}
	return
}

// divWVW sets z = (xn<<(len(x)*_W) + x) / y and returns the remainder.
// xn must be < y.
func divWVW(z []Word, xn Word, x []Word, y Word) (r Word) {
	r = xn
	for i := len(z) - 1; i >= 0; i-- {
		z[i], r = divWW(r, x[i], y)
	}
	return r
}

// same reports whether x and y share the same first element.
func same(x, y []Word) bool {
	return len(x) == len(y) && len(x) > 0 && &x[0] == &y[0]
}

// alias reports whether x and y share the same backing array.
func alias(x, y []Word) bool {
	return cap(x) > 0 && cap(y) > 0 && &x[0:cap(x)][cap(x)-1] == &y[0:cap(y)][cap(y)-1]
}
