//
// gate.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//
// Two Halves Make a Whole: Reducing Data Transfer in Garbled Circuits
// using Half Gates
//  - https://eprint.iacr.org/2014/756

package garble

import (
	"github.com/markkurossi/garble/label"
)

// EncryptedGateSize defines the size of an encrypted gate in bytes.
const EncryptedGateSize = 2 * label.Size

// EncryptedGate contains the two half-gate ciphertext rows of one
// AND gate. XOR and INV gates are free and produce no ciphertext.
type EncryptedGate struct {
	// G is the generator half-gate row.
	G label.Label

	// E is the evaluator half-gate row.
	E label.Label
}

// Bytes returns the encrypted gate as bytes in big-endian order.
func (g EncryptedGate) Bytes() [EncryptedGateSize]byte {
	var result [EncryptedGateSize]byte
	var data label.LabelData

	g.G.GetData(&data)
	copy(result[:label.Size], data[:])
	g.E.GetData(&data)
	copy(result[label.Size:], data[:])

	return result
}

// SetBytes sets the encrypted gate from bytes.
func (g *EncryptedGate) SetBytes(data []byte) {
	g.G.SetBytes(data[:label.Size])
	g.E.SetBytes(data[label.Size:])
}
