// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import "fmt"

// Ordering is the result of comparing two Floats.
type Ordering int8

// Possible orderings. Unordered is returned when at least one operand is NaN.
const (
	Less      Ordering = -1
	Equal     Ordering = 0
	Greater   Ordering = 1
	Unordered Ordering = 2
)

func (r Ordering) String() string {
	switch r {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	case Unordered:
		return "Unordered"
	}
	return fmt.Sprintf("Ordering(%d)", int8(r))
}

// Cmp compares x and y and returns their ordering. -0 and +0 are Equal. The
// result is Unordered if x or y is NaN.
func (x *Float) Cmp(y *Float) Ordering {
	x.check()
	y.check()
	if debugFloat {
		x.validate()
		y.validate()
	}

	if x.form == nan || y.form == nan {
		return Unordered
	}

	mx := x.ord()
	my := y.ord()
	switch {
	case mx < my:
		return Less
	case mx > my:
		return Greater
	}
	// mx == my

	// only if |mx| == 1 we have to compare the mantissae
	switch mx {
	case -1:
		return Ordering(y.ucmp(x))
	case +1:
		return Ordering(x.ucmp(y))
	}

	return Equal
}

// CmpAbs compares the absolute values of x and y. The result is Unordered if x
// or y is NaN.
func (x *Float) CmpAbs(y *Float) Ordering {
	x.check()
	y.check()
	if x.form == nan || y.form == nan {
		return Unordered
	}
	switch {
	case x.form < y.form:
		return Less
	case x.form > y.form:
		return Greater
	case x.form == finite:
		return Ordering(x.ucmp(y))
	}
	return Equal
}

// CmpTotal compares x and y according to the total order of IEEE 754-2008
// (5.10) restricted to values without payload, and returns -1, 0 or +1.
// -NaN does not exist: -Inf < finite < +Inf < NaN, -0 < +0, and all NaNs are
// equal.
func (x *Float) CmpTotal(y *Float) int {
	x.check()
	y.check()
	switch {
	case x.form == nan && y.form == nan:
		return 0
	case x.form == nan:
		return +1
	case y.form == nan:
		return -1
	}
	if r := x.Cmp(y); r != Equal {
		return int(r)
	}
	// equal values: only the sign of zeros is left
	if x.form == zero {
		switch {
		case x.neg && !y.neg:
			return -1
		case !x.neg && y.neg:
			return +1
		}
	}
	return 0
}

// ord classifies x and returns:
//
//	-2 if -Inf == x
//	-1 if -Inf < x < 0
//	 0 if x == 0 (signed or unsigned)
//	+1 if 0 < x < +Inf
//	+2 if x == +Inf
func (x *Float) ord() int {
	var m int
	switch x.form {
	case finite:
		m = 1
	case zero:
		return 0
	case inf:
		m = 2
	}
	if x.neg {
		m = -m
	}
	return m
}
