// Copyright 2019 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqsim

import (
	"github.com/pkg/errors"
)

// A Bit is a four-state logic level.
//
type Bit byte

// Bit states.
//
const (
	Lo    Bit = iota // logic 0
	Hi               // logic 1
	HiZ              // high impedance
	Undef            // undefined
)

// ParseBit converts an ASCII character to a Bit. Accepted characters are
// 0, 1, x, z in either case.
//
func ParseBit(c byte) (Bit, error) {
	switch c {
	case '0':
		return Lo, nil
	case '1':
		return Hi, nil
	case 'z', 'Z':
		return HiZ, nil
	case 'x', 'X':
		return Undef, nil
	}
	return Undef, errors.Errorf("invalid bit character %q", c)
}

func (b Bit) String() string {
	switch b {
	case Lo:
		return "0"
	case Hi:
		return "1"
	case HiZ:
		return "z"
	}
	return "x"
}

// Known returns true if b is a driven 0 or 1.
//
func (b Bit) Known() bool {
	return b == Lo || b == Hi
}

// capture is the value of b as seen by a register or logic function on a
// clock edge: floating and undefined levels both read back as undefined.
//
func (b Bit) capture() Bit {
	if b.Known() {
		return b
	}
	return Undef
}

// Not returns the complement of b. An unknown operand yields Undef.
//
func (b Bit) Not() Bit {
	switch b {
	case Lo:
		return Hi
	case Hi:
		return Lo
	}
	return Undef
}

// And returns b AND o. Lo dominates unknown operands.
//
func (b Bit) And(o Bit) Bit {
	if b == Lo || o == Lo {
		return Lo
	}
	if b == Hi && o == Hi {
		return Hi
	}
	return Undef
}

// Or returns b OR o. Hi dominates unknown operands.
//
func (b Bit) Or(o Bit) Bit {
	if b == Hi || o == Hi {
		return Hi
	}
	if b == Lo && o == Lo {
		return Lo
	}
	return Undef
}

// Xor returns b XOR o. Any unknown operand yields Undef.
//
func (b Bit) Xor(o Bit) Bit {
	if !b.Known() || !o.Known() {
		return Undef
	}
	if b != o {
		return Hi
	}
	return Lo
}

// A Value is a fixed-width vector of bits. Index 0 is the most significant
// bit; the string form reads MSB first, like a Verilog literal. This
// ordering is used consistently for all signals.
//
type Value []Bit

// ParseValue converts a bit string like "0010" or "1xz0" to a Value.
//
func ParseValue(s string) (Value, error) {
	if len(s) == 0 {
		return nil, errors.New("empty bit string")
	}
	v := make(Value, len(s))
	for i := 0; i < len(s); i++ {
		b, err := ParseBit(s[i])
		if err != nil {
			return nil, errors.Wrapf(err, "bit string %q", s)
		}
		v[i] = b
	}
	return v, nil
}

// MustValue is like ParseValue but panics on malformed input. It simplifies
// static circuit definitions and tests.
//
func MustValue(s string) Value {
	v, err := ParseValue(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Undefined returns a Value of the given width with all bits undefined.
//
func Undefined(width int) Value {
	v := make(Value, width)
	for i := range v {
		v[i] = Undef
	}
	return v
}

// FromUint returns the width low-order bits of u as a Value.
//
func FromUint(u uint64, width int) Value {
	v := make(Value, width)
	for i := width - 1; i >= 0; i-- {
		if u&1 != 0 {
			v[i] = Hi
		}
		u >>= 1
	}
	return v
}

func (v Value) String() string {
	b := make([]byte, len(v))
	for i, x := range v {
		b[i] = x.String()[0]
	}
	return string(b)
}

// Width returns the number of bits in v.
//
func (v Value) Width() int { return len(v) }

// Known returns true if every bit of v is a driven 0 or 1.
//
func (v Value) Known() bool {
	for _, b := range v {
		if !b.Known() {
			return false
		}
	}
	return true
}

// Uint returns the value of v as an unsigned integer. ok is false if any
// bit is unknown or the width exceeds 64 bits.
//
func (v Value) Uint() (u uint64, ok bool) {
	if len(v) > 64 {
		return 0, false
	}
	for _, b := range v {
		u <<= 1
		switch b {
		case Hi:
			u |= 1
		case Lo:
		default:
			return 0, false
		}
	}
	return u, true
}

// Copy returns a copy of v.
//
func (v Value) Copy() Value {
	c := make(Value, len(v))
	copy(c, v)
	return c
}

// Capture returns a copy of v as sampled on a clock edge: z bits read back
// as x. Register state never holds a z.
//
func (v Value) Capture() Value {
	c := make(Value, len(v))
	for i, b := range v {
		c[i] = b.capture()
	}
	return c
}

// Equal returns true if v and o have the same width and identical bits,
// with z and x treated as the same unknown level.
//
func (v Value) Equal(o Value) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i].capture() != o[i].capture() {
			return false
		}
	}
	return true
}

// ShiftInLSB returns v shifted left by one bit position, with in inserted
// at the least significant position. The previous MSB falls out.
//
func (v Value) ShiftInLSB(in Bit) Value {
	c := make(Value, len(v))
	for i := 1; i < len(v); i++ {
		c[i-1] = v[i].capture()
	}
	c[len(c)-1] = in.capture()
	return c
}

// Dec returns v decremented by one, wrapping modulo 2^width. An unknown bit
// poisons the result only where the borrow chain actually depends on it.
//
func (v Value) Dec() Value {
	c := make(Value, len(v))
	borrow := Hi
	for i := len(v) - 1; i >= 0; i-- {
		b := v[i].capture()
		c[i] = b.Xor(borrow)
		borrow = b.Not().And(borrow)
	}
	return c
}

// Inc returns v incremented by one, wrapping modulo 2^width, with the same
// unknown-bit handling as Dec.
//
func (v Value) Inc() Value {
	c := make(Value, len(v))
	carry := Hi
	for i := len(v) - 1; i >= 0; i-- {
		b := v[i].capture()
		c[i] = b.Xor(carry)
		carry = b.And(carry)
	}
	return c
}
