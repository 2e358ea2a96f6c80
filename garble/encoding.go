//
// encoding.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package garble implements the half-gate garbled circuit core: the
// circuit generator and evaluator state machines, the typed Full and
// Active value encodings, output decoding and commitments, and the
// streamed execution protocol between the two parties.
package garble

import (
	"fmt"
	"io"

	"github.com/markkurossi/garble/label"
	"github.com/markkurossi/garble/types"
)

// Full implements the generator-side encoding of a typed value: the
// low label of every wire in LSB0 order plus the global delta. Full
// encodings hold delta and must never leave the generator; the
// evaluator side of the protocol works on Active encodings only.
type Full struct {
	typ    types.Info
	delta  label.Delta
	labels []label.Label
}

// NewFull creates a full encoding from the low labels.
func NewFull(typ types.Info, delta label.Delta, labels []label.Label) (
	*Full, error) {

	if len(labels) != typ.Bits() {
		return nil, fmt.Errorf("%w: got %d labels, expected %d",
			ErrInvalidLength, len(labels), typ.Bits())
	}
	ls := make([]label.Label, len(labels))
	copy(ls, labels)
	return &Full{
		typ:    typ,
		delta:  delta,
		labels: ls,
	}, nil
}

// NewFullRandom creates a full encoding with fresh random low labels.
func NewFullRandom(rand io.Reader, typ types.Info, delta label.Delta) (
	*Full, error) {

	labels := make([]label.Label, typ.Bits())
	for i := range labels {
		l, err := label.NewLabel(rand)
		if err != nil {
			return nil, err
		}
		labels[i] = l
	}
	return &Full{
		typ:    typ,
		delta:  delta,
		labels: labels,
	}, nil
}

// Type returns the encoded value type.
func (f *Full) Type() types.Info {
	return f.typ
}

// Labels returns the low labels of the encoding. The result must be
// treated as read-only.
func (f *Full) Labels() []label.Label {
	return f.labels
}

// Wires returns the low and high label pairs of the encoding, for
// transferring the evaluator's input labels with oblivious transfer.
func (f *Full) Wires() []label.Wire {
	wires := make([]label.Wire, len(f.labels))
	for i, l := range f.labels {
		wires[i] = label.NewWire(l, f.delta)
	}
	return wires
}

// Select returns the active encoding of the value v: for every bit
// the low label if the bit is 0, the high label otherwise. The
// result carries no delta and is safe to reveal to the evaluator.
func (f *Full) Select(v types.Value) (*Active, error) {
	if !v.Type.Equal(f.typ) {
		return nil, fmt.Errorf("%w: value type %s, encoding type %s",
			ErrTypeMismatch, v.Type, f.typ)
	}
	labels := make([]label.Label, len(f.labels))
	for i, l := range f.labels {
		if v.Bit(i) {
			l.Xor(f.delta.Label())
		}
		labels[i] = l
	}
	return &Active{
		typ:    f.typ,
		labels: labels,
	}, nil
}

// Decoding returns the decoding information of the encoding: the
// pointer bits of the low labels.
func (f *Full) Decoding() Decoding {
	bits := make([]bool, len(f.labels))
	for i, l := range f.labels {
		bits[i] = l.PointerBit() == 1
	}
	return Decoding{
		typ:  f.typ,
		bits: bits,
	}
}

// Active implements the evaluator-side encoding of a typed value:
// exactly one label per wire, the one encoding the wire's actual
// truth value. An active encoding alone reveals nothing about the
// value.
type Active struct {
	typ    types.Info
	labels []label.Label
}

// NewActive creates an active encoding from the labels.
func NewActive(typ types.Info, labels []label.Label) (*Active, error) {
	if len(labels) != typ.Bits() {
		return nil, fmt.Errorf("%w: got %d labels, expected %d",
			ErrInvalidLength, len(labels), typ.Bits())
	}
	ls := make([]label.Label, len(labels))
	copy(ls, labels)
	return &Active{
		typ:    typ,
		labels: ls,
	}, nil
}

// Type returns the encoded value type.
func (a *Active) Type() types.Info {
	return a.typ
}

// Labels returns the active labels of the encoding. The result must
// be treated as read-only.
func (a *Active) Labels() []label.Label {
	return a.labels
}

// Decode recovers the plaintext value with the decoding information:
// each value bit is the label's pointer bit corrected with the low
// label's pointer bit.
func (a *Active) Decode(d Decoding) (types.Value, error) {
	if !d.typ.Equal(a.typ) {
		return types.Value{}, fmt.Errorf(
			"%w: decoding type %s, encoding type %s",
			ErrTypeMismatch, d.typ, a.typ)
	}
	bits := make([]bool, len(a.labels))
	for i, l := range a.labels {
		bits[i] = (l.PointerBit() == 1) != d.bits[i]
	}
	return types.NewValue(a.typ, bits)
}

// Decoding contains the decoding information of an encoded value:
// one correction bit per wire.
type Decoding struct {
	typ  types.Info
	bits []bool
}

// Type returns the decoded value type.
func (d Decoding) Type() types.Info {
	return d.typ
}

// Bytes returns the correction bits packed LSB first.
func (d Decoding) Bytes() []byte {
	data := make([]byte, (len(d.bits)+7)/8)
	for i, b := range d.bits {
		if b {
			data[i/8] |= 1 << uint(i%8)
		}
	}
	return data
}

// DecodingFromBytes creates decoding information for the type from
// the packed correction bits.
func DecodingFromBytes(typ types.Info, data []byte) (Decoding, error) {
	numBits := typ.Bits()
	if len(data) != (numBits+7)/8 {
		return Decoding{}, fmt.Errorf("%w: got %d bytes, expected %d",
			ErrInvalidLength, len(data), (numBits+7)/8)
	}
	bits := make([]bool, numBits)
	for i := range bits {
		bits[i] = (data[i/8]>>uint(i%8))&1 == 1
	}
	return Decoding{
		typ:  typ,
		bits: bits,
	}, nil
}
