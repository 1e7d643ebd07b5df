// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// float64 operands are hidden in variables so that the compiler does not
// fold constant expressions at arbitrary precision.
var (
	f01 = 0.1
	f02 = 0.2
)

func TestFloatAddDecimal(t *testing.T) {
	var z Float
	s := z.Add(Float64Options(ToNearestEven), NewFloat(f01), NewFloat(f02))
	assert.Equal(t, Inexact, s)
	assert.Equal(t, f01+f02, z.float64())
	assert.Equal(t, "0.30000000000000004", z.Text('g', -1))
}

func TestFloatSpecialOps(t *testing.T) {
	o := DefaultOptions
	for _, test := range []struct {
		op     string
		x, y   string
		want   string
		status Status
	}{
		{"/", "1", "0", "+Inf", DivideByZero},
		{"/", "-1", "0", "-Inf", DivideByZero},
		{"/", "1", "-0", "-Inf", DivideByZero},
		{"/", "0", "0", "NaN", InvalidOperation},
		{"/", "+Inf", "-Inf", "NaN", InvalidOperation},
		{"/", "+Inf", "0", "+Inf", Ok},
		{"/", "-3", "+Inf", "-0", Ok},
		{"/", "-0", "-5", "0", Ok},
		{"/", "NaN", "0", "NaN", Ok},
		{"+", "+Inf", "-Inf", "NaN", InvalidOperation},
		{"+", "+Inf", "+Inf", "+Inf", Ok},
		{"+", "-0", "-0", "-0", Ok},
		{"+", "-0", "0", "0", Ok},
		{"+", "3", "-3", "0", Ok},
		{"+", "NaN", "+Inf", "NaN", Ok},
		{"+", "-0", "7", "7", Ok},
		{"-", "+Inf", "+Inf", "NaN", InvalidOperation},
		{"-", "-Inf", "+Inf", "-Inf", Ok},
		{"-", "0", "0", "0", Ok},
		{"-", "-0", "0", "-0", Ok},
		{"-", "2", "2", "0", Ok},
		{"*", "0", "+Inf", "NaN", InvalidOperation},
		{"*", "-Inf", "0", "NaN", InvalidOperation},
		{"*", "-0", "3", "-0", Ok},
		{"*", "-0", "-3", "0", Ok},
		{"*", "-2", "+Inf", "-Inf", Ok},
		{"*", "NaN", "0", "NaN", Ok},
	} {
		x, y := exact(t, test.x), exact(t, test.y)
		var z Float
		var s Status
		switch test.op {
		case "+":
			s = z.Add(o, x, y)
		case "-":
			s = z.Sub(o, x, y)
		case "*":
			s = z.Mul(o, x, y)
		case "/":
			s = z.Quo(o, x, y)
		}
		assert.Equal(t, test.want, z.String(), "%s %s %s", test.x, test.op, test.y)
		assert.Equal(t, test.status, s, "%s %s %s", test.x, test.op, test.y)
	}
}

func TestFloatZeroSumSign(t *testing.T) {
	for _, mode := range modes {
		var z Float
		o := DefaultOptions.WithMode(mode)
		want := "0"
		if mode == ToNegativeInf {
			want = "-0"
		}
		z.Sub(o, NewFloat(1.5), NewFloat(1.5))
		assert.Equal(t, want, z.String(), "%s", mode)
		z.Add(o, exact(t, "-0"), NewFloat(0))
		assert.Equal(t, want, z.String(), "%s", mode)
		// x + x keeps the sign of x
		z.Add(o, exact(t, "-0"), exact(t, "-0"))
		assert.Equal(t, "-0", z.String(), "%s", mode)
	}
}

func TestFloatAddTiny(t *testing.T) {
	// 1 + 2**-1000 at 53 bits
	one := NewFloat(1)
	y := new(Float)
	y.MulPow2(exactOptions, one, -1000)
	for _, test := range []struct {
		mode RoundingMode
		neg  bool
		want float64
	}{
		{ToNearestEven, false, 1},
		{ToZero, false, 1},
		{ToNegativeInf, false, 1},
		{AwayFromZero, false, 1 + 0x1p-52},
		{ToPositiveInf, false, 1 + 0x1p-52},
		{ToNearestAway, false, 1},
		{ToZero, true, 1 - 0x1p-53},
		{ToNegativeInf, true, 1 - 0x1p-53},
		{ToNearestEven, true, 1},
		{AwayFromZero, true, 1},
	} {
		var z Float
		var s Status
		if test.neg {
			s = z.Sub(prec(53).WithMode(test.mode), one, y)
		} else {
			s = z.Add(prec(53).WithMode(test.mode), one, y)
		}
		assert.Equal(t, Inexact, s)
		assert.Equal(t, test.want, z.float64(), "%s neg=%v", test.mode, test.neg)
	}

	// exact with infinite precision
	var z Float
	assert.Equal(t, Ok, z.Add(Options{Prec: PrecInf}, one, y))
	assert.Equal(t, uint(1001), z.MinPrec())
	assert.Equal(t, Ok, z.Sub(Options{Prec: PrecInf}, &z, y))
	assert.Equal(t, int64(1), z.int64())
}

func TestFloatFMA(t *testing.T) {
	x := NewFloat(1 + 0x1p-30)
	y := NewFloat(1 - 0x1p-30)
	u := NewFloat(-1)
	var z Float
	assert.Equal(t, Ok, z.FMA(prec(53), x, y, u))
	assert.Equal(t, -0x1p-60, z.float64())

	// Mul followed by Add loses the result
	var p Float
	assert.Equal(t, Inexact, p.Mul(prec(53), x, y))
	assert.Equal(t, Ok, z.Add(prec(53), &p, u))
	assert.Equal(t, 0.0, z.float64())

	// special values
	for _, test := range []struct {
		x, y, u string
		want    string
		status  Status
	}{
		{"0", "+Inf", "1", "NaN", InvalidOperation},
		{"0", "+Inf", "NaN", "NaN", Ok},
		{"+Inf", "2", "-Inf", "NaN", InvalidOperation},
		{"+Inf", "2", "1", "+Inf", Ok},
		{"2", "3", "NaN", "NaN", Ok},
		{"-0", "3", "0", "0", Ok},
		{"-0", "3", "-0", "-0", Ok},
	} {
		var z Float
		s := z.FMA(DefaultOptions, exact(t, test.x), exact(t, test.y), exact(t, test.u))
		assert.Equal(t, test.want, z.String(), "fma(%s, %s, %s)", test.x, test.y, test.u)
		assert.Equal(t, test.status, s, "fma(%s, %s, %s)", test.x, test.y, test.u)
	}
}

func TestFloatMulPow2(t *testing.T) {
	var z Float
	assert.Equal(t, Ok, z.MulPow2(DefaultOptions, NewFloat(3), 10))
	assert.Equal(t, int64(3072), z.int64())
	assert.Equal(t, Ok, z.MulPow2(DefaultOptions, &z, -12))
	assert.Equal(t, 0.75, z.float64())

	o := Float64Options(ToNearestEven)
	assert.Equal(t, Overflow|Inexact, z.MulPow2(o, NewFloat(1), 1024))
	assert.True(t, z.IsInf())
	assert.Equal(t, Underflow|Inexact, z.MulPow2(o, NewFloat(-1), -1080))
	assert.Equal(t, "-0", z.String())
	assert.Equal(t, Ok, z.MulPow2(o, NewFloat(1), -1074))
	assert.Equal(t, math.SmallestNonzeroFloat64, z.float64())

	// special values are unchanged
	assert.Equal(t, Ok, z.MulPow2(o, exact(t, "-Inf"), 5))
	assert.Equal(t, "-Inf", z.String())
}

func TestFloatNegAbs(t *testing.T) {
	for _, test := range []struct {
		x        string
		neg, abs string
	}{
		{"0", "-0", "0"},
		{"-0", "0", "0"},
		{"1.5", "-1.5", "1.5"},
		{"-2.25", "2.25", "2.25"},
		{"+Inf", "-Inf", "+Inf"},
		{"-Inf", "+Inf", "+Inf"},
		{"NaN", "NaN", "NaN"},
	} {
		var z Float
		assert.Equal(t, Ok, z.Neg(DefaultOptions, exact(t, test.x)))
		assert.Equal(t, test.neg, z.String(), "-%s", test.x)
		assert.Equal(t, Ok, z.Abs(DefaultOptions, exact(t, test.x)))
		assert.Equal(t, test.abs, z.String(), "|%s|", test.x)
	}

	// Neg rounds
	var z Float
	assert.Equal(t, Inexact, z.Neg(prec(2), NewFloat(7)))
	assert.Equal(t, int64(-8), z.int64())
}

func TestFloatMulInt(t *testing.T) {
	var z Float
	assert.Equal(t, Ok, z.MulUint64(DefaultOptions, NewFloat(1.5), 6))
	assert.Equal(t, int64(9), z.int64())
	assert.Equal(t, Ok, z.MulInt64(DefaultOptions, NewFloat(1.5), -6))
	assert.Equal(t, int64(-9), z.int64())
	assert.Equal(t, Ok, z.MulInt64(DefaultOptions, NewFloat(-1.5), 0))
	assert.Equal(t, "-0", z.String())
	assert.Equal(t, Inexact, z.MulUint64(prec(3), NewFloat(1.5), 7))
	assert.Equal(t, int64(10), z.int64())
}

func TestFloatAliasing(t *testing.T) {
	o := prec(200)
	x := parse(t, o, "1.2345678901234567890123456789")
	var want, z Float

	want.Mul(o, x, x)
	z.Copy(x)
	z.Mul(o, &z, &z)
	assert.Equal(t, Equal, z.Cmp(&want))

	want.Quo(o, x, NewFloat(3))
	z.Copy(x)
	z.Quo(o, &z, NewFloat(3))
	assert.Equal(t, Equal, z.Cmp(&want))

	want.Sub(o, NewFloat(3), x)
	z.Copy(x)
	z.Sub(o, NewFloat(3), &z)
	assert.Equal(t, Equal, z.Cmp(&want))

	want.FMA(o, x, x, x)
	z.Copy(x)
	z.FMA(o, &z, &z, &z)
	assert.Equal(t, Equal, z.Cmp(&want))
}

// randFloat64 returns a random finite float64 with an exponent in [-e, e].
func randFloat64(r *rand.Rand, e int) float64 {
	f := math.Ldexp(1+r.Float64(), r.Intn(2*e+1)-e)
	if r.Intn(2) == 0 {
		f = -f
	}
	return f
}

func TestFloat64Arith(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	o := Float64Options(ToNearestEven)
	n := 20000
	if testing.Short() {
		n = 1000
	}
	for i := 0; i < n; i++ {
		a, b, c := randFloat64(r, 60), randFloat64(r, 60), randFloat64(r, 120)
		x, y, u := NewFloat(a), NewFloat(b), NewFloat(c)
		ax := NewFloat(math.Abs(a))
		var z Float
		for _, test := range []struct {
			op   string
			f    func() Status
			want float64
		}{
			{"+", func() Status { return z.Add(o, x, y) }, a + b},
			{"-", func() Status { return z.Sub(o, x, y) }, a - b},
			{"*", func() Status { return z.Mul(o, x, y) }, a * b},
			{"/", func() Status { return z.Quo(o, x, y) }, a / b},
			{"fma", func() Status { return z.FMA(o, x, y, u) }, math.FMA(a, b, c)},
			{"sqrt", func() Status { return z.Sqrt(o, ax) }, math.Sqrt(math.Abs(a))},
		} {
			test.f()
			got, s := z.Float64(ToNearestEven)
			if !assert.Equal(t, Ok, s) || !assert.Equal(t, test.want, got, "%g %s %g", a, test.op, b) {
				return
			}
		}
	}
}

func TestFloatStatusExact(t *testing.T) {
	// an exact operation reports Ok, a rounded one Inexact
	r := rand.New(rand.NewSource(7))
	o := Float64Options(ToNearestEven)
	for i := 0; i < 1000; i++ {
		a, b := randFloat64(r, 30), randFloat64(r, 30)
		var z Float
		s := z.Add(o, NewFloat(a), NewFloat(b))
		var e Float
		e.Add(Options{Prec: PrecInf}, NewFloat(a), NewFloat(b))
		if e.Cmp(&z) == Equal {
			assert.Equal(t, Ok, s)
		} else {
			assert.Equal(t, Inexact, s)
		}
	}
}

// randFloatPrec returns a random Float with exactly p significant bits and an
// exponent in [-e, e].
func randFloatPrec(r *rand.Rand, p uint, e int) *Float {
	m := new(big.Int).Rand(r, new(big.Int).Lsh(big.NewInt(1), p-1))
	m.SetBit(m, int(p-1), 1)
	x := new(Float).SetInt(m)
	x.MulPow2(exactOptions, x, int64(r.Intn(2*e+1)-e)-int64(p))
	if r.Intn(2) == 0 {
		x.Neg(exactOptions, x)
	}
	return x
}

func TestFloatQuoMul(t *testing.T) {
	r := rand.New(rand.NewSource(31))
	n := 3000
	if testing.Short() {
		n = 300
	}
	for i := 0; i < n; i++ {
		p := uint(r.Intn(300) + 2)
		o := prec(p)
		x, y := randFloatPrec(r, p, 1000), randFloatPrec(r, uint(r.Intn(300)+1), 1000)

		var q, z, xy Float
		s := q.Quo(o, x, y)
		xy.Mul(exactOptions, &q, y)
		assert.Equal(t, xy.Cmp(x) != Equal, s&Inexact != 0, "%s / %s", x, y)

		// (x/y)*y is within one ulp of x when rounding to nearest
		s = z.Mul(o, &q, y)
		assert.Equal(t, xy.Cmp(&z) != Equal, s&Inexact != 0, "%s * %s", &q, y)
		if !assertUlps(t, x, &z, p, 1, "prec %d", p) {
			return
		}
	}
}
