// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file mirrors types and constants from math/big.

package bigfloat

import (
	"errors"
	"fmt"
	"math"
)

const lowerDigits = "0123456789abcdefghijklmnopqrstuvwxyz"
const upperDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// MaxBase is the largest number base accepted for string conversions.
const MaxBase = 10 + ('z' - 'a' + 1)

// Exponent and precision limits.
const (
	MaxExp  = math.MaxInt32  // largest supported exponent
	MinExp  = math.MinInt32  // smallest supported exponent
	MaxPrec = math.MaxUint32 // largest (theoretically) supported finite precision; likely memory-limited
)

// Internal representation: The mantissa bits x.mant of a nonzero finite
// Float x are stored in a nat slice long enough to hold up to x's
// precision bits; the slice may (but doesn't have to) be shorter if the
// mantissa contains trailing 0 bits. x.mant is normalized such that the msb
// of x.mant == 1 (i.e., the msb is shifted all the way "to the left"). Thus,
// if the mantissa has trailing 0 bits or x.prec is not a multiple of the Word
// size _W, x.mant[0] has trailing zero bits. The msb of the mantissa
// corresponds to the value 0.5; the exponent x.exp shifts the binary point as
// needed.
//
// A zero, infinite or NaN Float x ignores x.mant and x.exp.
//
// x                 form      neg      mant         exp
// ----------------------------------------------------------
// ±0                zero      sign     -            -
// 0 < |x| < +Inf    finite    sign     mantissa     exponent
// ±Inf              inf       sign     -            -
// NaN               nan       -        -            -

// A form value describes the internal representation.
type form byte

// The form value order is relevant - do not change!
const (
	zero form = iota
	finite
	inf
	nan
	moved // the Float was consumed by Move
)

// RoundingMode determines how a Float value is rounded to the
// desired precision.
type RoundingMode byte

// These constants define supported rounding modes.
const (
	ToNearestEven RoundingMode = iota // == IEEE 754-2008 roundTiesToEven
	ToNearestAway                     // == IEEE 754-2008 roundTiesToAway
	ToZero                            // == IEEE 754-2008 roundTowardZero
	AwayFromZero                      // no IEEE 754-2008 equivalent
	ToNegativeInf                     // == IEEE 754-2008 roundTowardNegative
	ToPositiveInf                     // == IEEE 754-2008 roundTowardPositive
)

var modeNames = [...]string{
	ToNearestEven: "ToNearestEven",
	ToNearestAway: "ToNearestAway",
	ToZero:        "ToZero",
	AwayFromZero:  "AwayFromZero",
	ToNegativeInf: "ToNegativeInf",
	ToPositiveInf: "ToPositiveInf",
}

func (m RoundingMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("RoundingMode(%d)", m)
}

// ParseRoundingMode returns the RoundingMode named s. Both the constant names
// and the short forms "even", "away", "zero", "up", "floor" and "ceil" are
// accepted.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch s {
	case "even", "nearest-even":
		return ToNearestEven, nil
	case "away", "nearest-away":
		return ToNearestAway, nil
	case "zero", "trunc":
		return ToZero, nil
	case "up", "away-from-zero":
		return AwayFromZero, nil
	case "floor", "down":
		return ToNegativeInf, nil
	case "ceil":
		return ToPositiveInf, nil
	}
	for i, n := range modeNames {
		if n == s {
			return RoundingMode(i), nil
		}
	}
	return 0, fmt.Errorf("bigfloat: unknown rounding mode %q", s)
}

// Accuracy describes the rounding error produced by an integer conversion,
// relative to the exact value.
type Accuracy int8

// Constants describing the Accuracy of a conversion.
const (
	Below Accuracy = -1
	Exact Accuracy = 0
	Above Accuracy = +1
)

func (a Accuracy) String() string {
	switch a {
	case Below:
		return "Below"
	case Exact:
		return "Exact"
	case Above:
		return "Above"
	}
	return fmt.Sprintf("Accuracy(%d)", int8(a))
}

func makeAcc(above bool) Accuracy {
	if above {
		return Above
	}
	return Below
}

// byteReader is a local wrapper around fmt.ScanState;
// it implements the ByteReader interface.
type byteReader struct {
	fmt.ScanState
}

func (r byteReader) ReadByte() (byte, error) {
	ch, size, err := r.ReadRune()
	if size != 1 && err == nil {
		err = fmt.Errorf("invalid rune %#U", ch)
	}
	return byte(ch), err
}

func (r byteReader) UnreadByte() error {
	return r.UnreadRune()
}

// Errors reported by Parse and SetString. They are always wrapped; use
// errors.Is to test for them.
var (
	// ErrSyntax reports that the input does not start with a number.
	ErrSyntax = errors.New("bigfloat: invalid syntax")
	// ErrTrailing reports that a valid number is followed by extra characters.
	ErrTrailing = errors.New("bigfloat: trailing characters after number")
)

// scan errors
var (
	errNoDigits = errors.New("number has no digits")
	errInvalSep = errors.New("'_' must separate successive digits")
)

// ErrContextClosed is the panic value raised when a closed Context is used to
// create a Float.
var ErrContextClosed = errors.New("bigfloat: use of closed Context")

// errMoved is the panic value raised when a Float consumed by Move is used.
var errMoved = errors.New("bigfloat: use of moved Float")

func umax(x, y uint) uint {
	if x > y {
		return x
	}
	return y
}
