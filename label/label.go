//
// label.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package label implements the 128 bit wire labels of the half-gate
// garbling scheme: the label algebra, the global free-XOR offset
// delta, and the fixed-key gate-tweak hash.
package label

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Size defines the label size in bytes.
const Size = 16

// Label implements a 128 bit wire label.
type Label struct {
	D0 uint64
	D1 uint64
}

// LabelData contains label data as byte array.
type LabelData [16]byte

func (l Label) String() string {
	return fmt.Sprintf("%016x%016x", l.D0, l.D1)
}

// Equal tests if the labels are equal.
func (l Label) Equal(o Label) bool {
	return l.D0 == o.D0 && l.D1 == o.D1
}

// NewLabel creates a new random label.
func NewLabel(rand io.Reader) (Label, error) {
	var buf LabelData
	var label Label

	if _, err := rand.Read(buf[:]); err != nil {
		return label, err
	}
	label.SetData(&buf)
	return label, nil
}

// NewTweak creates a new label from the tweak value.
func NewTweak(tweak uint64) Label {
	return Label{
		D1: tweak,
	}
}

// PointerBit returns the label's point-and-permute pointer bit.
func (l Label) PointerBit() uint {
	return uint(l.D1 & 1)
}

// Xor xors the label with the argument label.
func (l *Label) Xor(o Label) {
	l.D0 ^= o.D0
	l.D1 ^= o.D1
}

// GetData gets the label as label data.
func (l Label) GetData(buf *LabelData) {
	binary.BigEndian.PutUint64(buf[0:8], l.D0)
	binary.BigEndian.PutUint64(buf[8:16], l.D1)
}

// SetData sets the label from label data.
func (l *Label) SetData(data *LabelData) {
	l.D0 = binary.BigEndian.Uint64((*data)[0:8])
	l.D1 = binary.BigEndian.Uint64((*data)[8:16])
}

// Bytes returns the label data as bytes.
func (l Label) Bytes(buf *LabelData) []byte {
	l.GetData(buf)
	return buf[:]
}

// SetBytes sets the label data from bytes.
func (l *Label) SetBytes(data []byte) {
	l.D0 = binary.BigEndian.Uint64(data[0:8])
	l.D1 = binary.BigEndian.Uint64(data[8:16])
}

// Delta implements the global free-XOR offset linking the two labels
// of every wire: high = low ^ delta. All constructors force the LSB
// of delta to 1 so that the pointer bits of a wire's labels always
// differ. Delta is confined to the generator side of the protocol;
// the evaluator must never learn it.
type Delta struct {
	l Label
}

// NewDelta creates a new random delta.
func NewDelta(rand io.Reader) (Delta, error) {
	l, err := NewLabel(rand)
	if err != nil {
		return Delta{}, err
	}
	l.D1 |= 1
	return Delta{
		l: l,
	}, nil
}

// DeltaFromBytes creates a delta from the 16 byte big-endian data.
func DeltaFromBytes(data []byte) Delta {
	var l Label
	l.SetBytes(data)
	l.D1 |= 1
	return Delta{
		l: l,
	}
}

func (d Delta) String() string {
	return d.l.String()
}

// Equal tests if the deltas are equal.
func (d Delta) Equal(o Delta) bool {
	return d.l.Equal(o.l)
}

// Label returns delta as a plain label for the label algebra of the
// garbling core.
func (d Delta) Label() Label {
	return d.l
}

// Bytes returns the delta data as bytes.
func (d Delta) Bytes(buf *LabelData) []byte {
	return d.l.Bytes(buf)
}

// Wire implements a wire with low and high labels.
type Wire struct {
	L0 Label
	L1 Label
}

func (w Wire) String() string {
	return fmt.Sprintf("%s/%s", w.L0, w.L1)
}

// NewWire creates the wire label pair for the low label l0.
func NewWire(l0 Label, delta Delta) Wire {
	l1 := l0
	l1.Xor(delta.l)
	return Wire{
		L0: l0,
		L1: l1,
	}
}

// Select returns the wire label for the truth value bit.
func (w Wire) Select(bit bool) Label {
	if bit {
		return w.L1
	}
	return w.L0
}
