// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package bigfloat implements arbitrary-precision binary floating-point
arithmetic with explicit rounding control and IEEE 754 style exception
reporting.

The implementation is heavily based on big.Float. The mantissa of a Float is
stored in a little-endian slice of 64 bits Words and all arithmetic is
performed in base 2**64.

Unlike big.Float, a Float has no precision or rounding mode of its own. Each
operation takes an Options value describing how the result must be rounded,
and returns a Status reporting what happened while computing it:

	var z bigfloat.Float
	o := bigfloat.Options{Prec: 100, Mode: bigfloat.ToNearestEven}
	st := z.Quo(o, bigfloat.NewFloat(1), bigfloat.NewFloat(3))
	if st&bigfloat.Inexact != 0 {
		// z holds 1/3 rounded to 100 bits
	}

The zero value for a Float corresponds to +0. Thus, new values can be declared
in the usual ways and denote 0 without further initialization:

	x := new(Float)  // x is a *Float of value 0

Alternatively, new Float values can be allocated and initialized with the
function:

	func NewFloat(f float64) *Float

or created from a Context, which recycles the scratch buffers used by the
operations on its Floats:

	ctx := bigfloat.NewContext()
	defer ctx.Close()
	x := ctx.New()

Setters are exact and return their receiver. Numeric operations are
represented as methods of the form:

	func (z *Float) SetV(v V) *Float                       // z = v
	func (z *Float) Unary(o Options, x *Float) Status      // z = unary x
	func (z *Float) Binary(o Options, x, y *Float) Status  // z = x binary y
	func (x *Float) Pred() P                               // p = pred(x)

For unary and binary operations, the result is the receiver (usually named z in
that case); if it is one of the operands x or y it may be safely overwritten
(and its memory reused).

Results are correctly rounded: the rounded result is the exact result rounded
once according to Options, except for Pow with a non-integer exponent, Exp and
Log, whose error is below one unit in the last place.

Options.Prec set to PrecInf makes Add, Sub, Mul, Neg, Abs, Mod, Rem and PowUint
exact. Operations whose exact result may not be finite fall back to a finite
precision derived from the size of their operands.

Operations raise the following Status flags:

	Inexact           the result was rounded
	Overflow          the result is too large for the exponent range
	Underflow         the result is tiny and inexact
	DivideByZero      a finite non-zero number was divided by zero
	InvalidOperation  the result is NaN (0/0, Inf-Inf, Sqrt(-1), ...)

NaN operands propagate quietly: the result is NaN and no flag is raised.

Various methods support conversions between strings and corresponding numeric
values, and vice versa: Float implements the Stringer interface for a
(default) string representation of the value, and Parse, TextBase and Text for
conversions in any base between 2 and MaxBase. Finally, *Float satisfies the fmt
package's Scanner interface for scanning and the Formatter interface for
formatted printing.

Package value provides an immutable API on top of bigfloat.
*/
package bigfloat
