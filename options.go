// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"fmt"
	"strings"
)

// DefaultPrec is the precision used when Options.Prec is 0. It matches the
// precision of a float64.
const DefaultPrec = 53

// PrecInf requests infinite precision. Additions, subtractions,
// multiplications, integer powers and remainders are then exact. Operations
// whose exact result may need unbounded precision (Quo, Sqrt, Pow, Exp, Log
// and string parsing with a negative exponent) fall back to a precision of
// 64×(n+1) bits where n is the total limb count of their operands.
const PrecInf = ^uint(0)

// Flags modify special behaviors of the rounding engine.
type Flags uint8

const (
	// Subnormal enables gradual underflow: results whose exponent falls
	// below the minimum exponent lose precision instead of being flushed.
	Subnormal Flags = 1 << iota
	// ExpRange makes the rounding engine use Options.MinExp and
	// Options.MaxExp instead of the package limits MinExp and MaxExp.
	ExpRange

	// wide extends the exponent range of intermediate results far beyond
	// the package limits.
	wide Flags = 1 << 7
)

const wideExp = 1 << 60

// Options configures a single arithmetic operation. Options is a pure value
// and is passed by value to every operation.
type Options struct {
	// Prec is the precision of the result in bits. 0 selects DefaultPrec,
	// PrecInf selects infinite precision.
	Prec uint
	// Mode is the rounding mode.
	Mode RoundingMode
	// Flags modifies the rounding engine.
	Flags Flags
	// MinExp and MaxExp define the exponent range of finite results when
	// ExpRange is set. A finite x satisfies 2**(MinExp-1) <= |x| < 2**MaxExp.
	// Values outside of the package limits MinExp and MaxExp are clamped.
	MinExp, MaxExp int64
}

// DefaultOptions rounds to DefaultPrec bits with ToNearestEven.
var DefaultOptions = Options{Prec: DefaultPrec, Mode: ToNearestEven}

// Float64Options emulates IEEE 754 binary64 arithmetic with the given
// rounding mode.
func Float64Options(mode RoundingMode) Options {
	return Options{Prec: 53, Mode: mode, Flags: Subnormal | ExpRange, MinExp: -1021, MaxExp: 1024}
}

// Float32Options emulates IEEE 754 binary32 arithmetic with the given
// rounding mode.
func Float32Options(mode RoundingMode) Options {
	return Options{Prec: 24, Mode: mode, Flags: Subnormal | ExpRange, MinExp: -125, MaxExp: 128}
}

// WithPrec returns a copy of o with its precision set to prec.
func (o Options) WithPrec(prec uint) Options {
	o.Prec = prec
	return o
}

// WithMode returns a copy of o with its rounding mode set to mode.
func (o Options) WithMode(mode RoundingMode) Options {
	o.Mode = mode
	return o
}

func (o Options) prec() uint {
	if o.Prec == 0 {
		return DefaultPrec
	}
	return o.Prec
}

func (o Options) inf() bool { return o.Prec == PrecInf }

// emin and emax clamp the exponent range to the package limits so that
// exponent arithmetic on rounded values cannot overflow an int64.
func (o Options) emin() int64 {
	if o.Flags&wide != 0 {
		return -wideExp
	}
	if o.Flags&ExpRange != 0 && o.MinExp > MinExp {
		return o.MinExp
	}
	return MinExp
}

func (o Options) emax() int64 {
	if o.Flags&wide != 0 {
		return wideExp
	}
	if o.Flags&ExpRange != 0 && o.MaxExp < MaxExp {
		return o.MaxExp
	}
	return MaxExp
}

// work returns the options used for intermediate results of an operation
// rounded according to o: extra bits of precision, rounding to nearest and an
// exponent range wide enough that intermediate results neither overflow nor
// underflow.
func (o Options) work(extra uint) Options {
	return Options{Prec: o.prec() + extra, Mode: ToNearestEven, Flags: Subnormal | wide}
}

// Status reports the exceptional conditions raised by an operation. Several
// flags may be set at once. Status implements the error interface so that a
// non-Ok Status can be returned or wrapped as an error; use Err to get a nil
// error for Ok.
type Status uint8

// Ok means that the result is exact and in range.
const Ok Status = 0

const (
	// Inexact is set when the result was rounded.
	Inexact Status = 1 << iota
	// Overflow is set when the rounded result exceeds the exponent range. It
	// is always accompanied by Inexact.
	Overflow
	// Underflow is set when a non-zero result is smaller than the smallest
	// normal number and inexact.
	Underflow
	// DivideByZero is set when a finite non-zero number is divided by zero.
	DivideByZero
	// InvalidOperation is set when the result is NaN because the operation
	// is undefined for its operands (0/0, ∞-∞, √-1, unparsable input...).
	InvalidOperation
)

var statusNames = [...]string{
	"inexact",
	"overflow",
	"underflow",
	"division by zero",
	"invalid operation",
}

func (s Status) String() string {
	if s == Ok {
		return "ok"
	}
	var b strings.Builder
	for i, n := range statusNames {
		if s&(1<<uint(i)) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n)
	}
	if r := s &^ (1<<len(statusNames) - 1); r != 0 {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "unknown(%#x)", uint8(r))
	}
	return b.String()
}

func (s Status) Error() string { return s.String() }

// Err returns nil if s is Ok, s otherwise.
func (s Status) Err() error {
	if s == Ok {
		return nil
	}
	return s
}

// Exact reports whether s has neither Inexact nor any error flag set.
func (s Status) Exact() bool { return s == Ok }

var _ error = Status(0)
