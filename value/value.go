// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value provides an immutable API for bigfloat.Floats.
//
// A Value is a read-only handle on a bigfloat.Float. Operations never modify
// their operands: each one allocates a new Value for its result, so Values can
// be freely shared, stored in maps or passed between goroutines.
//
// All operations of the form
//
//	func (e *Env) UnaryOp(x Value) (Value, bigfloat.Status)
//	func (e *Env) BinaryOp(x, y Value) (Value, bigfloat.Status)
//
// compute the result rounded according to e's Options and return it along with
// the operation's status. An Env also accumulates the status of every
// operation performed with it until (*Env).Status is called, which allows
// checking a whole computation for errors at once:
//
//	e := value.Default()
//	d, _ := e.Mul(b, b)
//	d, _ = e.Sub(d, e.FromInt64(4))
//	r, _ := e.Sqrt(d)
//	if err := e.Err(); err != nil {
//		// handle error
//	}
//
// The zero Value is +0.
package value

import (
	"fmt"
	"runtime"

	"github.com/db47h/bigfloat"
)

// A Value is an immutable arbitrary-precision binary floating-point number.
type Value struct {
	f *bigfloat.Float
}

var zero = new(bigfloat.Float)

// Consume returns a Value that takes ownership of x's storage. x must not be
// used afterwards: any further operation with x panics.
func Consume(x *bigfloat.Float) Value {
	z := x.Move()
	runtime.SetFinalizer(z, (*bigfloat.Float).Release)
	return Value{z}
}

func (v Value) float() *bigfloat.Float {
	if v.f == nil {
		return zero
	}
	return v.f
}

// Float returns a copy of v's underlying Float. The copy is not bound to any
// Context.
func (v Value) Float() *bigfloat.Float {
	defer runtime.KeepAlive(v.f)
	return new(bigfloat.Float).Copy(v.float())
}

// Sign returns -1, 0 or +1 depending on v being negative, zero or NaN, or
// positive.
func (v Value) Sign() int { return v.float().Sign() }

// Signbit reports whether v is negative or negative zero.
func (v Value) Signbit() bool { return v.float().Signbit() }

// IsZero reports whether v is ±0.
func (v Value) IsZero() bool { return v.float().IsZero() }

// IsInf reports whether v is ±Inf.
func (v Value) IsInf() bool { return v.float().IsInf() }

// IsNaN reports whether v is a NaN.
func (v Value) IsNaN() bool { return v.float().IsNaN() }

// IsInt reports whether v is an integer.
func (v Value) IsInt() bool {
	defer runtime.KeepAlive(v.f)
	return v.float().IsInt()
}

// Float64 returns the float64 value nearest to v, rounded according to mode,
// and the status of the conversion.
func (v Value) Float64(mode bigfloat.RoundingMode) (float64, bigfloat.Status) {
	defer runtime.KeepAlive(v.f)
	return v.float().Float64(mode)
}

// Int64 returns the integer resulting from truncating v towards zero.
func (v Value) Int64() (int64, bigfloat.Accuracy) {
	defer runtime.KeepAlive(v.f)
	return v.float().Int64()
}

// Repr returns the exact structure of v.
func (v Value) Repr() bigfloat.Repr {
	defer runtime.KeepAlive(v.f)
	return v.float().Repr()
}

// String formats v like (*bigfloat.Float).String.
func (v Value) String() string {
	defer runtime.KeepAlive(v.f)
	return v.float().String()
}

// Text formats v like (*bigfloat.Float).Text.
func (v Value) Text(format byte, prec int) string {
	defer runtime.KeepAlive(v.f)
	return v.float().Text(format, prec)
}

// TextBase formats v like (*bigfloat.Float).TextBase.
func (v Value) TextBase(base int, f bigfloat.FormatOptions) string {
	defer runtime.KeepAlive(v.f)
	return v.float().TextBase(base, f)
}

// Format implements fmt.Formatter.
func (v Value) Format(s fmt.State, format rune) {
	defer runtime.KeepAlive(v.f)
	v.float().Format(s, format)
}

// MarshalText implements the encoding.TextMarshaler interface.
func (v Value) MarshalText() ([]byte, error) {
	defer runtime.KeepAlive(v.f)
	return v.float().MarshalText()
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The
// decoded value is exact.
func (v *Value) UnmarshalText(text []byte) error {
	f := new(bigfloat.Float)
	if err := f.UnmarshalText(text); err != nil {
		return err
	}
	v.f = f
	return nil
}

// Equal reports whether x == y. NaNs are not equal to anything, and -0 == +0.
func Equal(x, y Value) bool {
	defer runtime.KeepAlive(x.f)
	defer runtime.KeepAlive(y.f)
	return x.float().Cmp(y.float()) == bigfloat.Equal
}

// Less reports whether x < y. It returns false if x or y is a NaN.
func Less(x, y Value) bool {
	defer runtime.KeepAlive(x.f)
	defer runtime.KeepAlive(y.f)
	return x.float().Cmp(y.float()) == bigfloat.Less
}

// Compare compares x and y according to IEEE 754. The result is Unordered if
// x or y is a NaN.
func Compare(x, y Value) bigfloat.Ordering {
	defer runtime.KeepAlive(x.f)
	defer runtime.KeepAlive(y.f)
	return x.float().Cmp(y.float())
}

// CompareTotal compares x and y in a total order where -0 < +0 and NaNs sort
// above +Inf and equal to each other. It returns -1, 0 or +1 and is suitable
// for use with slices.SortFunc.
func CompareTotal(x, y Value) int {
	defer runtime.KeepAlive(x.f)
	defer runtime.KeepAlive(y.f)
	return x.float().CmpTotal(y.float())
}

// TotalLess reports whether x sorts before y in the order of CompareTotal.
func TotalLess(x, y Value) bool {
	return CompareTotal(x, y) < 0
}
