// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var modes = []RoundingMode{ToNearestEven, ToNearestAway, ToZero, AwayFromZero, ToNegativeInf, ToPositiveInf}

func TestFloatRound(t *testing.T) {
	for _, test := range []struct {
		x    int64
		prec uint
		// results for ToNearestEven, ToNearestAway, ToZero, AwayFromZero,
		// ToNegativeInf, ToPositiveInf
		want [6]int64
	}{
		{11, 3, [6]int64{12, 12, 10, 12, 10, 12}},
		{-11, 3, [6]int64{-12, -12, -10, -12, -12, -10}},
		{9, 3, [6]int64{8, 10, 8, 10, 8, 10}},
		{13, 3, [6]int64{12, 14, 12, 14, 12, 14}},
		{-13, 3, [6]int64{-12, -14, -12, -14, -14, -12}},
		{15, 3, [6]int64{16, 16, 14, 16, 14, 16}},
		{0x7f, 4, [6]int64{0x80, 0x80, 0x78, 0x80, 0x78, 0x80}},
		{0x71, 4, [6]int64{0x70, 0x70, 0x70, 0x78, 0x70, 0x78}},
		{12, 3, [6]int64{12, 12, 12, 12, 12, 12}},
	} {
		for i, mode := range modes {
			var z Float
			z.SetInt64(test.x)
			s := z.Round(Options{Prec: test.prec, Mode: mode})
			assert.Equal(t, test.want[i], z.int64(), "%d rounded to %d bits %s", test.x, test.prec, mode)
			wantStatus := Ok
			if test.want[i] != test.x {
				wantStatus = Inexact
			}
			assert.Equal(t, wantStatus, s, "%d rounded to %d bits %s", test.x, test.prec, mode)
		}
	}
}

func TestFloatOverflow(t *testing.T) {
	o := Options{Prec: 10, Flags: ExpRange, MinExp: -10, MaxExp: 10}
	for _, test := range []struct {
		neg  bool
		mode RoundingMode
		want string
	}{
		{false, ToNearestEven, "+Inf"},
		{false, ToNearestAway, "+Inf"},
		{false, AwayFromZero, "+Inf"},
		{false, ToPositiveInf, "+Inf"},
		{false, ToZero, "1023"},
		{false, ToNegativeInf, "1023"},
		{true, ToNearestEven, "-Inf"},
		{true, ToZero, "-1023"},
		{true, ToPositiveInf, "-1023"},
		{true, ToNegativeInf, "-Inf"},
	} {
		var z Float
		z.SetInt64(1024)
		if test.neg {
			z.SetInt64(-1024)
		}
		s := z.Round(o.WithMode(test.mode))
		assert.Equal(t, Overflow|Inexact, s)
		assert.Equal(t, test.want, z.Text('f', 0), "%s", test.mode)
	}

	// values in range are not affected
	var z Float
	z.SetInt64(1023)
	assert.Equal(t, Ok, z.Round(o))

	// rounding up into overflow
	z.SetInt64(2047)
	assert.Equal(t, Overflow|Inexact, z.Round(Options{Prec: 10, Flags: ExpRange, MaxExp: 11}))
	assert.True(t, z.IsInf())

	// infinite precision still overflows to Inf
	z.SetInt64(-1 << 40)
	assert.Equal(t, Overflow|Inexact, z.Round(Options{Prec: PrecInf, Mode: ToZero, Flags: ExpRange, MaxExp: 10}))
	assert.Equal(t, "-Inf", z.String())
}

func TestFloatFlush(t *testing.T) {
	o := Options{Prec: 10, Flags: ExpRange, MinExp: -10, MaxExp: 10}
	minNormal := math.Ldexp(1, -11)
	for _, test := range []struct {
		x    float64
		mode RoundingMode
		want float64
	}{
		// exactly half the smallest normal
		{math.Ldexp(1, -12), ToNearestEven, 0},
		{math.Ldexp(1, -12), ToNearestAway, minNormal},
		{math.Ldexp(1, -12), ToZero, 0},
		{math.Ldexp(1, -12), AwayFromZero, minNormal},
		{math.Ldexp(3, -13), ToNearestEven, minNormal},
		{math.Ldexp(3, -13), ToZero, 0},
		{math.Ldexp(1, -20), ToNearestEven, 0},
		{math.Ldexp(1, -20), ToNearestAway, 0},
		{math.Ldexp(1, -20), AwayFromZero, minNormal},
		{math.Ldexp(1, -20), ToPositiveInf, minNormal},
		{-math.Ldexp(1, -20), ToPositiveInf, math.Copysign(0, -1)},
		{-math.Ldexp(1, -20), ToNegativeInf, -minNormal},
	} {
		z := NewFloat(test.x)
		s := z.Round(o.WithMode(test.mode))
		assert.Equal(t, Underflow|Inexact, s, "%g %s", test.x, test.mode)
		got := z.float64()
		assert.Equal(t, test.want, got, "%g %s", test.x, test.mode)
		assert.Equal(t, math.Signbit(test.want), math.Signbit(got), "%g %s", test.x, test.mode)
	}

	// the smallest normal number is exact
	z := NewFloat(minNormal)
	assert.Equal(t, Ok, z.Round(o))
}

func TestFloatSubnormal(t *testing.T) {
	o := Options{Prec: 10, Flags: ExpRange | Subnormal, MinExp: -10, MaxExp: 10}
	minSub := math.Ldexp(1, -20)
	for _, test := range []struct {
		x      float64
		mode   RoundingMode
		want   float64
		status Status
	}{
		{math.Ldexp(3, -15), ToNearestEven, math.Ldexp(3, -15), Ok},
		{minSub, ToNearestEven, minSub, Ok},
		// gradual loss of precision: 7 bits left at 2**-13
		{math.Ldexp(0x81, -21), ToNearestEven, math.Ldexp(0x80, -21), Underflow | Inexact},
		{math.Ldexp(0x81, -21), AwayFromZero, math.Ldexp(0x82, -21), Underflow | Inexact},
		// half the smallest subnormal
		{math.Ldexp(1, -21), ToNearestEven, 0, Underflow | Inexact},
		{math.Ldexp(1, -21), ToNearestAway, minSub, Underflow | Inexact},
		{math.Ldexp(3, -22), ToNearestEven, minSub, Underflow | Inexact},
		{math.Ldexp(1, -30), ToNearestEven, 0, Underflow | Inexact},
		{math.Ldexp(1, -30), ToPositiveInf, minSub, Underflow | Inexact},
		{-math.Ldexp(1, -30), ToNegativeInf, -minSub, Underflow | Inexact},
	} {
		z := NewFloat(test.x)
		s := z.Round(o.WithMode(test.mode))
		assert.Equal(t, test.status, s, "%g %s", test.x, test.mode)
		assert.Equal(t, test.want, z.float64(), "%g %s", test.x, test.mode)
	}
}

func TestFloat64Subnormals(t *testing.T) {
	o := Float64Options(ToNearestEven)
	for _, test := range []struct {
		s      string
		want   float64
		status Status
	}{
		{"5e-324", math.SmallestNonzeroFloat64, Underflow | Inexact},
		{"2e-324", 0, Underflow | Inexact},
		{"3e-324", math.SmallestNonzeroFloat64, Underflow | Inexact},
		{"0x1p-1074", math.SmallestNonzeroFloat64, Ok},
		{"0x1p-1075", 0, Underflow | Inexact},
		{"0x1.8p-1075", math.SmallestNonzeroFloat64, Underflow | Inexact},
		{"2.2250738585072014e-308", 0x1p-1022, Inexact},
		{"1e-400", 0, Underflow | Inexact},
		{"1e400", math.Inf(1), Overflow | Inexact},
		{"-1e400", math.Inf(-1), Overflow | Inexact},
		{"1.7976931348623157e308", math.MaxFloat64, Inexact},
	} {
		var z Float
		s, _, err := z.Parse(o, test.s, 0)
		assert.NoError(t, err)
		assert.Equal(t, test.status, s, test.s)
		f, s2 := z.Float64(ToNearestEven)
		assert.Equal(t, Ok, s2, test.s)
		assert.Equal(t, test.want, f, test.s)
	}
}

func TestFloatRoundToInt(t *testing.T) {
	for _, test := range []struct {
		x    float64
		mode RoundingMode
		want float64
	}{
		{2.5, ToNearestEven, 2},
		{3.5, ToNearestEven, 4},
		{-2.5, ToNearestEven, -2},
		{2.5, ToNearestAway, 3},
		{-2.5, ToNearestAway, -3},
		{0.5, ToNearestEven, 0},
		{0.5, ToNearestAway, 1},
		{1.5, ToNearestEven, 2},
		{0.3, ToPositiveInf, 1},
		{-0.3, ToPositiveInf, math.Copysign(0, -1)},
		{-0.3, ToNegativeInf, -1},
		{2.7, ToZero, 2},
		{-2.7, ToZero, -2},
		{2.1, AwayFromZero, 3},
		{7, ToNearestEven, 7},
		{1e300, ToZero, 1e300},
	} {
		x := NewFloat(test.x)
		var z Float
		s := z.RoundToInt(Options{Mode: test.mode}, x)
		got := z.float64()
		assert.Equal(t, test.want, got, "%g %s", test.x, test.mode)
		assert.Equal(t, math.Signbit(test.want), math.Signbit(got), "%g %s", test.x, test.mode)
		wantStatus := Ok
		if test.want != test.x {
			wantStatus = Inexact
		}
		assert.Equal(t, wantStatus, s, "%g %s", test.x, test.mode)
	}

	// special values are kept
	for _, s := range []string{"+Inf", "-Inf", "NaN", "-0"} {
		var z Float
		assert.Equal(t, Ok, z.RoundToInt(DefaultOptions, exact(t, s)))
		assert.Equal(t, s, z.Text('g', -1))
	}
}
