// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatParse(t *testing.T) {
	for _, test := range []struct {
		s    string
		base int
		want float64
	}{
		{"0", 0, 0},
		{"-0", 0, math.Copysign(0, -1)},
		{"+0.000", 0, 0},
		{"1", 0, 1},
		{"-1.5", 0, -1.5},
		{".5", 0, 0.5},
		{"5.", 0, 5},
		{"010", 0, 10},
		{"1_000.5", 0, 1000.5},
		{"1e3", 0, 1000},
		{"1E+3", 0, 1000},
		{"2.5e-1", 0, 0.25},
		{"1p10", 0, 1024},
		{"12@2", 0, 1200},
		{"0b101.1", 0, 5.5},
		{"0B1p-2", 0, 0.25},
		{"0o17", 0, 15},
		{"0x1.8p1", 0, 3},
		{"0x_10", 0, 16},
		{"0XFF.8", 0, 255.5},
		{"0x1@2", 0, 256},
		{"ff", 16, 255},
		{"FF.8", 16, 255.5},
		{"1e2", 16, 0x1e2},
		{"1.8p0", 16, 1.5},
		{"10p2", 20, 80},
		{"z@1", 36, 1260},
		{"0.1", 3, 1.0 / 3},
		{"101", 2, 5},
		{"inf", 0, math.Inf(1)},
		{"+Inf", 0, math.Inf(1)},
		{"-Infinity", 0, math.Inf(-1)},
		{"-INF", 10, math.Inf(-1)},
	} {
		var z Float
		_, consumed, err := z.Parse(DefaultOptions, test.s, test.base)
		require.NoError(t, err, test.s)
		assert.True(t, consumed, test.s)
		got := z.float64()
		assert.Equal(t, test.want, got, "%q base %d", test.s, test.base)
		assert.Equal(t, math.Signbit(test.want), math.Signbit(got), "%q base %d", test.s, test.base)
	}

	for _, s := range []string{"nan", "NaN", "-nan", "+NAN"} {
		var z Float
		st, consumed, err := z.Parse(DefaultOptions, s, 0)
		require.NoError(t, err)
		assert.True(t, consumed)
		assert.Equal(t, Ok, st)
		assert.True(t, z.IsNaN())
	}
}

func TestFloatParseErrors(t *testing.T) {
	for _, test := range []struct {
		s    string
		base int
		err  error
	}{
		{"", 0, ErrSyntax},
		{"-", 0, ErrSyntax},
		{"abc", 0, ErrSyntax},
		{"0x", 0, ErrSyntax},
		{"1__0", 0, ErrSyntax},
		{"_1", 0, ErrSyntax},
		{"1_", 0, ErrSyntax},
		{"0x.p1", 0, ErrSyntax},
		{"1.5x", 0, ErrTrailing},
		{"1e", 0, ErrTrailing},
		{"1e+", 0, ErrTrailing},
		{"0x1.8p", 0, ErrTrailing},
		{"1.2.3", 0, ErrTrailing},
		{"1_000", 10, ErrTrailing},
		{"12", 2, ErrTrailing},
		{"infinit", 0, ErrSyntax},
		{" 1", 0, ErrSyntax},
	} {
		var z Float
		z.SetInt64(7)
		st, consumed, err := z.Parse(DefaultOptions, test.s, test.base)
		require.Error(t, err, test.s)
		assert.True(t, errors.Is(err, test.err), "%q: %v", test.s, err)
		assert.False(t, consumed, test.s)
		assert.Equal(t, InvalidOperation, st, test.s)
		assert.True(t, z.IsNaN(), test.s)
	}

	assert.Panics(t, func() { new(Float).Parse(DefaultOptions, "1", 1) })
	assert.Panics(t, func() { new(Float).Parse(DefaultOptions, "1", MaxBase+1) })
}

func TestFloatParseRounding(t *testing.T) {
	for _, test := range []struct {
		s      string
		o      Options
		want   float64
		status Status
	}{
		{"0.1", DefaultOptions, 0.1, Inexact},
		{"0.5", DefaultOptions, 0.5, Ok},
		{"1e22", DefaultOptions, 1e22, Ok},
		{"1e23", DefaultOptions, 1e23, Inexact},
		{"9007199254740993", DefaultOptions, 9007199254740992, Inexact},
		{"9007199254740993", prec(53).WithMode(ToPositiveInf), 9007199254740994, Inexact},
		{"9007199254740993", prec(53).WithMode(ToNearestAway), 9007199254740994, Inexact},
		{"9007199254740995", DefaultOptions, 9007199254740996, Inexact},
		{"9007199254740995", prec(53).WithMode(ToZero), 9007199254740994, Inexact},
		{"-9007199254740993", prec(53).WithMode(ToNegativeInf), -9007199254740994, Inexact},
		{"0.1", prec(4), 0.1015625, Inexact},
		{"0.1", prec(4).WithMode(ToZero), 0.09375, Inexact},
		{"1e1000000000000", DefaultOptions, math.Inf(1), Overflow | Inexact},
		{"1e-1000000000000", DefaultOptions, 0, Underflow | Inexact},
		{"1@-99999999999999999999", DefaultOptions, 0, Underflow | Inexact},
	} {
		var z Float
		st, _, err := z.Parse(test.o, test.s, 0)
		require.NoError(t, err, test.s)
		assert.Equal(t, test.status, st, "%s %s", test.s, test.o.Mode)
		assert.Equal(t, test.want, z.float64(), "%s %s", test.s, test.o.Mode)
	}
}

func TestFloatParseExact(t *testing.T) {
	// infinite precision keeps every digit of finite binary fractions
	z := exact(t, "0.1000000000000000055511151231257827021181583404541015625")
	f, s := z.Float64(ToNearestEven)
	assert.Equal(t, Ok, s)
	assert.Equal(t, 0.1, f)

	z = exact(t, "123456789012345678901234567890")
	i, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	got, acc := z.Int(nil)
	assert.Equal(t, Exact, acc)
	assert.Equal(t, 0, i.Cmp(got))

	// non binary fractions fall back to a finite precision
	var w Float
	st, _, err := w.Parse(Options{Prec: PrecInf}, "0.1", 0)
	require.NoError(t, err)
	assert.Equal(t, Inexact, st)
	assert.Equal(t, 0.1, w.float64())
}

func TestFloatParseLargePowers(t *testing.T) {
	r := rand.New(rand.NewSource(23))
	modes := []RoundingMode{ToNearestEven, ToNearestAway, ToZero, AwayFromZero, ToNegativeInf, ToPositiveInf}
	for i := 0; i < 40; i++ {
		m := new(big.Int).SetUint64(r.Uint64()>>uint(r.Intn(48)) | 1)
		k := int64(r.Intn(30000) + 7100)
		if r.Intn(2) == 0 {
			k = -k
		}
		s := m.String() + "e" + strconv.FormatInt(k, 10)
		o := prec(uint(r.Intn(200) + 2)).WithMode(modes[r.Intn(len(modes))])

		// exact reference
		var want Float
		var ws Status
		p := new(big.Int).Exp(big.NewInt(10), big.NewInt(k), nil)
		if k > 0 {
			want.SetInt(p.Mul(p, m))
			ws = want.Round(o)
		} else {
			p.Exp(big.NewInt(10), big.NewInt(-k), nil)
			ws = want.Quo(o, new(Float).SetInt(m), new(Float).SetInt(p))
		}

		var z Float
		st, _, err := z.Parse(o, s, 0)
		require.NoError(t, err, s)
		assert.Equal(t, ws, st, "%s %v", s, o)
		assert.Equal(t, 0, z.CmpTotal(&want), "%s %v: got %s, want %s", s, o, z.Text('p', 0), want.Text('p', 0))
	}
}

func TestFloatParseHugeExponent(t *testing.T) {
	start := time.Now()
	x := new(Float)
	st, err := x.SetString(prec(53), "1e10000000")
	require.NoError(t, err)
	assert.Equal(t, Inexact, st)
	y := new(Float)
	st, err = y.SetString(prec(53), "-1e-10000000")
	require.NoError(t, err)
	assert.Equal(t, Inexact, st)
	var z Float
	z.Mul(prec(53), x, y)
	z.Neg(prec(53), &z)
	assertUlps(t, NewFloat(1), &z, 53, 2)

	o := Float64Options(ToNearestEven)
	st, err = x.SetString(o, "1e10000000")
	require.NoError(t, err)
	assert.Equal(t, Overflow|Inexact, st)
	assert.True(t, x.IsInf())
	st, err = x.SetString(o, "1e-10000000")
	require.NoError(t, err)
	assert.Equal(t, Underflow|Inexact, st)
	assert.True(t, x.IsZero())

	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFloat64Parse(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	o := Float64Options(ToNearestEven)
	n := 10000
	if testing.Short() {
		n = 500
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		// random decimal strings with up to 25 digits
		b.Reset()
		if r.Intn(2) == 0 {
			b.WriteByte('-')
		}
		nd := 1 + r.Intn(25)
		for j := 0; j < nd; j++ {
			b.WriteByte(byte('0' + r.Intn(10)))
			if j == 0 {
				b.WriteByte('.')
			}
		}
		fmt.Fprintf(&b, "e%d", r.Intn(601)-300)
		s := b.String()
		want, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err)

		var z Float
		_, _, err = z.Parse(o, s, 0)
		require.NoError(t, err)
		if !assert.Equal(t, want, z.float64(), s) {
			return
		}
	}
}

func TestFloatSetString(t *testing.T) {
	var z Float
	s, err := z.SetString(DefaultOptions, "0x1p-3")
	require.NoError(t, err)
	assert.Equal(t, Ok, s)
	assert.Equal(t, 0.125, z.float64())

	_, err = z.SetString(DefaultOptions, "0x1p-3 ")
	assert.True(t, errors.Is(err, ErrTrailing))

	x, s, err := ParseFloat(prec(10), "3.14159", 0)
	require.NoError(t, err)
	assert.Equal(t, Inexact, s)
	assert.Equal(t, 3.140625, x.float64())

	x, s, err = ParseFloat(DefaultOptions, "3,14", 0)
	assert.Nil(t, x)
	assert.Equal(t, InvalidOperation, s)
	assert.Error(t, err)
}

func TestFloatScan(t *testing.T) {
	var x, y Float
	n, err := fmt.Sscan("1.5 -0x1p-2", &x, &y)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1.5, x.float64())
	assert.Equal(t, -0.25, y.float64())

	_, err = fmt.Sscanf("<2.5e3>", "<%g>", &x)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, x.float64())

	_, err = fmt.Sscan("xyz", &x)
	assert.Error(t, err)
}
