//
// types_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"testing"
)

func TestBits(t *testing.T) {
	tests := []struct {
		typ  Info
		bits int
	}{
		{Bit, 1},
		{U8, 8},
		{U16, 16},
		{U32, 32},
		{U64, 64},
		{U128, 128},
		{Array(U8, 16), 128},
		{Array(Array(Bit, 8), 4), 32},
	}
	for _, test := range tests {
		if test.typ.Bits() != test.bits {
			t.Errorf("%s.Bits(): got %d, expected %d",
				test.typ, test.typ.Bits(), test.bits)
		}
	}
}

func TestValues(t *testing.T) {
	v := U16Value(0xcafe)
	if v.Uint64() != 0xcafe {
		t.Errorf("U16Value: got %x", v.Uint64())
	}
	if !v.Bit(1) {
		t.Errorf("U16Value: bit 1 not set")
	}
	if v.Bit(0) {
		t.Errorf("U16Value: bit 0 set")
	}

	arr, err := ArrayValue(U8Value(1), U8Value(2), U8Value(3))
	if err != nil {
		t.Fatalf("ArrayValue: %v", err)
	}
	if arr.Type.Bits() != 24 {
		t.Errorf("ArrayValue: got %d bits", arr.Type.Bits())
	}
	if !arr.Bit(8) {
		t.Errorf("ArrayValue: element 1 bit 0 not set")
	}

	_, err = ArrayValue(U8Value(1), U16Value(2))
	if err == nil {
		t.Errorf("ArrayValue: heterogeneous elements accepted")
	}

	v128 := U128Value(1, 2)
	if !v128.Bit(1) || !v128.Bit(64) {
		t.Errorf("U128Value: wrong bits")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		typ   Info
		err   bool
	}{
		{"bit", Bit, false},
		{"bool", Bit, false},
		{"byte", U8, false},
		{"u32", U32, false},
		{"u128", U128, false},
		{"[16]u8", Array(U8, 16), false},
		{"[4][2]u8", Array(Array(U8, 2), 4), false},
		{"u7", Info{}, true},
		{"i32", Info{}, true},
		{"", Info{}, true},
	}
	for _, test := range tests {
		typ, err := Parse(test.input)
		if test.err {
			if err == nil {
				t.Errorf("Parse(%q): expected error", test.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", test.input, err)
			continue
		}
		if !typ.Equal(test.typ) {
			t.Errorf("Parse(%q): got %s, expected %s",
				test.input, typ, test.typ)
		}
	}
}
