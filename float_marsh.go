// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements encoding/decoding of Floats.

package bigfloat

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Gob codec version. Permits backward-compatible changes to the encoding.
const floatGobVersion byte = 1

var errCorrupt = errors.New("corrupt encoding")

// GobEncode implements the gob.GobEncoder interface.
// The Float value is marshaled exactly. Floats carry no precision or rounding
// mode, so nothing else is encoded.
func (x *Float) GobEncode() ([]byte, error) {
	if x == nil {
		return nil, nil
	}
	x.check()

	// determine max. space (bytes) required for encoding
	sz := 1 + 1 // version + form|neg
	if x.form == finite {
		// add space for mantissa and exponent
		sz += 8 + len(x.mant)*_S // exp + mant
	}
	buf := make([]byte, sz)

	buf[0] = floatGobVersion
	b := byte(x.form&3) << 1
	if x.neg {
		b |= 1
	}
	buf[1] = b

	if x.form == finite {
		binary.BigEndian.PutUint64(buf[2:], uint64(x.exp))
		x.mant.bytes(buf[10:])
	}

	return buf, nil
}

// GobDecode implements the gob.GobDecoder interface.
// z is set exactly to the decoded value.
func (z *Float) GobDecode(buf []byte) error {
	z.check()
	if len(buf) == 0 {
		// Other side sent a nil or default value.
		z.SetZero(false)
		return nil
	}
	if len(buf) < 2 {
		return fmt.Errorf("Float.GobDecode: %w", errCorrupt)
	}

	if buf[0] != floatGobVersion {
		return fmt.Errorf("Float.GobDecode: encoding version %d not supported", buf[0])
	}

	b := buf[1]
	f := form((b >> 1) & 3)
	neg := b&1 != 0
	if f != finite {
		if len(buf) != 2 {
			return fmt.Errorf("Float.GobDecode: %w", errCorrupt)
		}
		z.form = f
		z.neg = neg && f != nan
		return nil
	}

	m := buf[10:]
	if len(buf) < 10+_S || len(m)%_S != 0 || m[0]&0x80 == 0 || m[len(m)-1] == 0 && allZero(m[len(m)-_S:]) {
		return fmt.Errorf("Float.GobDecode: %w", errCorrupt)
	}
	exp := int64(binary.BigEndian.Uint64(buf[2:]))
	if exp < MinExp || exp > MaxExp {
		return fmt.Errorf("Float.GobDecode: %w", errCorrupt)
	}
	z.mant = z.mant.setBytes(m)
	z.exp = exp
	z.form = finite
	z.neg = neg
	return nil
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. It uses
// the same encoding as GobEncode.
func (x *Float) MarshalBinary() ([]byte, error) {
	return x.GobEncode()
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (z *Float) UnmarshalBinary(buf []byte) error {
	return z.GobDecode(buf)
}

// MarshalText implements the encoding.TextMarshaler interface.
// The Float value is marshaled as its exact decimal representation.
func (x *Float) MarshalText() (text []byte, err error) {
	if x == nil {
		return []byte("<nil>"), nil
	}
	var buf []byte
	return x.AppendBase(buf, 10, FormatOptions{Shortest: true, Prec: PrecInf}), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// The text is parsed with infinite precision so that text produced by
// MarshalText yields the original value.
func (z *Float) UnmarshalText(text []byte) error {
	_, _, err := z.Parse(Options{Prec: PrecInf}, string(text), 0)
	if err != nil {
		err = fmt.Errorf("bigfloat: cannot unmarshal %q into a *bigfloat.Float (%w)", text, err)
	}
	return err
}
