//
// types.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package types defines the typed values a garbled circuit encodes:
// single bits, fixed-width unsigned integers, and homogeneous arrays.
package types

import (
	"fmt"
)

// Kind specifies a value type kind.
type Kind int8

// Value type kinds.
const (
	KindBit Kind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindBit:
		return "bit"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindU128:
		return "u128"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("{Kind %d}", k)
	}
}

// Info specifies a value type: a kind plus, for arrays, the element
// type and count. The set of types is closed; every type maps to a
// fixed bit width.
type Info struct {
	Kind    Kind
	Element *Info
	Count   int
}

// Predefined fixed-width types.
var (
	Bit  = Info{Kind: KindBit}
	U8   = Info{Kind: KindU8}
	U16  = Info{Kind: KindU16}
	U32  = Info{Kind: KindU32}
	U64  = Info{Kind: KindU64}
	U128 = Info{Kind: KindU128}
)

// Array creates an array type of count elements of type el.
func Array(el Info, count int) Info {
	e := el
	return Info{
		Kind:    KindArray,
		Element: &e,
		Count:   count,
	}
}

func (i Info) String() string {
	if i.Kind == KindArray {
		return fmt.Sprintf("[%d]%s", i.Count, i.Element)
	}
	return i.Kind.String()
}

// Bits returns the type's width in bits.
func (i Info) Bits() int {
	switch i.Kind {
	case KindBit:
		return 1
	case KindU8:
		return 8
	case KindU16:
		return 16
	case KindU32:
		return 32
	case KindU64:
		return 64
	case KindU128:
		return 128
	case KindArray:
		return i.Count * i.Element.Bits()
	default:
		return 0
	}
}

// Equal tests if the types are equal.
func (i Info) Equal(o Info) bool {
	if i.Kind != o.Kind {
		return false
	}
	if i.Kind == KindArray {
		return i.Count == o.Count && i.Element.Equal(*o.Element)
	}
	return true
}

// Value is a plaintext value of a circuit input or output: a type
// plus the value bits in LSB0 order.
type Value struct {
	Type Info
	bits []bool
}

// NewValue creates a value of type t from the bits in LSB0 order.
func NewValue(t Info, bits []bool) (Value, error) {
	if len(bits) != t.Bits() {
		return Value{}, fmt.Errorf(
			"types: invalid value width: got %d bits, expected %d",
			len(bits), t.Bits())
	}
	b := make([]bool, len(bits))
	copy(b, bits)
	return Value{
		Type: t,
		bits: b,
	}, nil
}

// BitValue creates a bit value.
func BitValue(v bool) Value {
	return Value{
		Type: Bit,
		bits: []bool{v},
	}
}

func uintValue(t Info, v uint64) Value {
	bits := make([]bool, t.Bits())
	for i := range bits {
		bits[i] = (v>>uint(i))&1 == 1
	}
	return Value{
		Type: t,
		bits: bits,
	}
}

// U8Value creates an u8 value.
func U8Value(v uint8) Value {
	return uintValue(U8, uint64(v))
}

// U16Value creates an u16 value.
func U16Value(v uint16) Value {
	return uintValue(U16, uint64(v))
}

// U32Value creates an u32 value.
func U32Value(v uint32) Value {
	return uintValue(U32, uint64(v))
}

// U64Value creates an u64 value.
func U64Value(v uint64) Value {
	return uintValue(U64, v)
}

// U128Value creates an u128 value from the high and low 64 bit
// halves.
func U128Value(hi, lo uint64) Value {
	bits := make([]bool, 128)
	for i := 0; i < 64; i++ {
		bits[i] = (lo>>uint(i))&1 == 1
		bits[64+i] = (hi>>uint(i))&1 == 1
	}
	return Value{
		Type: U128,
		bits: bits,
	}
}

// ArrayValue creates an array value from the homogeneously typed
// elements.
func ArrayValue(elements ...Value) (Value, error) {
	if len(elements) == 0 {
		return Value{}, fmt.Errorf("types: empty array value")
	}
	el := elements[0].Type
	var bits []bool
	for idx, e := range elements {
		if !e.Type.Equal(el) {
			return Value{}, fmt.Errorf(
				"types: array element %d has type %s, expected %s",
				idx, e.Type, el)
		}
		bits = append(bits, e.bits...)
	}
	return Value{
		Type: Array(el, len(elements)),
		bits: bits,
	}, nil
}

func (v Value) String() string {
	str := v.Type.String() + ":0b"
	for i := len(v.bits) - 1; i >= 0; i-- {
		if v.bits[i] {
			str += "1"
		} else {
			str += "0"
		}
	}
	return str
}

// Bit returns the value bit i.
func (v Value) Bit(i int) bool {
	return v.bits[i]
}

// Bits returns the value bits in LSB0 order.
func (v Value) Bits() []bool {
	bits := make([]bool, len(v.bits))
	copy(bits, v.bits)
	return bits
}

// Equal tests if the values are equal.
func (v Value) Equal(o Value) bool {
	if !v.Type.Equal(o.Type) {
		return false
	}
	for i, b := range v.bits {
		if b != o.bits[i] {
			return false
		}
	}
	return true
}

// Uint64 returns the value as an uint64. Bits above 64 are ignored.
func (v Value) Uint64() uint64 {
	var result uint64
	for i, b := range v.bits {
		if i >= 64 {
			break
		}
		if b {
			result |= 1 << uint(i)
		}
	}
	return result
}
