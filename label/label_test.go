//
// label_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package label

import (
	"crypto/rand"
	"testing"
)

func TestPointerBit(t *testing.T) {
	l := Label{
		D0: 0xffffffffffffffff,
		D1: 0xfffffffffffffffe,
	}
	if l.PointerBit() != 0 {
		t.Fatal("pointer bit set")
	}
	l.D1 |= 1
	if l.PointerBit() != 1 {
		t.Fatal("pointer bit clear")
	}
}

func TestXor(t *testing.T) {
	a, err := NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	c := a
	c.Xor(b)
	c.Xor(b)
	if !c.Equal(a) {
		t.Fatal("xor not involutive")
	}
}

func TestLabelData(t *testing.T) {
	l, err := NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	var data LabelData
	l.GetData(&data)

	var l2 Label
	l2.SetData(&data)
	if !l2.Equal(l) {
		t.Fatalf("label data mismatch: %s != %s", l2, l)
	}
}

func TestDelta(t *testing.T) {
	delta, err := NewDelta(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if delta.Label().PointerBit() != 1 {
		t.Fatal("delta pointer bit clear")
	}

	var buf LabelData
	d2 := DeltaFromBytes(delta.Bytes(&buf))
	if !d2.Equal(delta) {
		t.Fatal("delta round trip mismatch")
	}
}

func TestWireSelect(t *testing.T) {
	delta, err := NewDelta(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	l0, err := NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	w := NewWire(l0, delta)
	if !w.Select(false).Equal(w.L0) {
		t.Fatal("select 0")
	}
	if !w.Select(true).Equal(w.L1) {
		t.Fatal("select 1")
	}
	if w.L0.PointerBit() == w.L1.PointerBit() {
		t.Fatal("wire labels share pointer bit")
	}

	high := w.L0
	high.Xor(delta.Label())
	if !high.Equal(w.L1) {
		t.Fatal("high label is not low xor delta")
	}
}
