//
// generator.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"fmt"
	"hash"

	"github.com/markkurossi/garble/circuit"
	"github.com/markkurossi/garble/label"
)

// Generator garbles a circuit with the half-gate scheme. The
// generator is a synchronous state machine: Next garbles gates in
// the circuit's fixed topological order and returns one encrypted
// gate per AND gate, XOR and INV gates being free. Gate tweaks
// advance monotonically and are never reused within one execution.
type Generator struct {
	circ   *circuit.Circuit
	hash   *label.TweakHash
	delta  label.Delta
	labels []label.Label
	next   int
	gid    uint64
	digest hash.Hash
}

// NewGenerator creates a generator for the circuit with the delta
// and full input encodings.
func NewGenerator(circ *circuit.Circuit, delta label.Delta, inputs []*Full,
	digest bool) (*Generator, error) {

	if len(inputs) != len(circ.Inputs) {
		return nil, fmt.Errorf("%w: got %d inputs, expected %d",
			ErrTypeMismatch, len(inputs), len(circ.Inputs))
	}
	labels := make([]label.Label, circ.NumWires)
	var w int
	for idx, input := range inputs {
		if !input.typ.Equal(circ.Inputs[idx].Type) {
			return nil, fmt.Errorf("%w: input %d has type %s, expected %s",
				ErrTypeMismatch, idx, input.typ, circ.Inputs[idx].Type)
		}
		if !input.delta.Equal(delta) {
			return nil, fmt.Errorf("%w: input %d has foreign delta",
				ErrTypeMismatch, idx)
		}
		for _, l := range input.labels {
			labels[w] = l
			w++
		}
	}

	gen := &Generator{
		circ:   circ,
		hash:   label.NewTweakHash(),
		delta:  delta,
		labels: labels,
		gid:    1,
	}
	if digest {
		gen.digest = newDigestHash()
	}
	return gen, nil
}

// Next garbles gates until the next AND gate produces an encrypted
// gate. It returns false when the circuit is complete.
func (g *Generator) Next() (EncryptedGate, bool) {
	for g.next < len(g.circ.Gates) {
		gate := g.circ.Gates[g.next]
		g.next++

		switch gate.Op {
		case circuit.XOR:
			l := g.labels[gate.X]
			l.Xor(g.labels[gate.Y])
			g.labels[gate.Z] = l

		case circuit.INV:
			l := g.labels[gate.X]
			l.Xor(g.delta.Label())
			g.labels[gate.Z] = l

		case circuit.AND:
			z0, enc := garbleAND(g.hash, g.labels[gate.X], g.labels[gate.Y],
				g.delta, g.gid)
			g.labels[gate.Z] = z0
			g.gid += 2

			if g.digest != nil {
				data := enc.Bytes()
				g.digest.Write(data[:])
			}
			return enc, true
		}
	}
	return EncryptedGate{}, false
}

// Complete tests if all gates have been garbled.
func (g *Generator) Complete() bool {
	return g.next >= len(g.circ.Gates)
}

// Outputs returns the full encodings of the circuit outputs. It
// fails with ErrNotFinished until the whole circuit has been
// garbled.
func (g *Generator) Outputs() ([]*Full, error) {
	if !g.Complete() {
		return nil, ErrNotFinished
	}
	var outputs []*Full
	w := g.circ.NumWires - g.circ.Outputs.Size()
	for _, output := range g.circ.Outputs {
		numBits := output.Type.Bits()
		full, err := NewFull(output.Type, g.delta, g.labels[w:w+numBits])
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, full)
		w += numBits
	}
	return outputs, nil
}

// Digest returns the digest over the produced encrypted gates. The
// second return value is false if the generator was created without
// digesting.
func (g *Generator) Digest() (Digest, bool) {
	if g.digest == nil {
		return Digest{}, false
	}
	var digest Digest
	copy(digest[:], g.digest.Sum(nil))
	return digest, true
}

// garbleAND computes the half-gate garbling of one AND gate: the
// output low label and the two ciphertext rows at tweaks gid and
// gid+1.
func garbleAND(h *label.TweakHash, x0, y0 label.Label, delta label.Delta,
	gid uint64) (label.Label, EncryptedGate) {

	d := delta.Label()

	x1 := x0
	x1.Xor(d)
	y1 := y0
	y1.Xor(d)

	pa := x0.PointerBit()
	pb := y0.PointerBit()

	j := gid
	k := gid + 1

	hx0 := h.Hash(x0, j)
	hy0 := h.Hash(y0, k)

	// Generator half-gate row.
	tg := hx0
	tg.Xor(h.Hash(x1, j))
	if pb == 1 {
		tg.Xor(d)
	}
	wg := hx0
	if pa == 1 {
		wg.Xor(tg)
	}

	// Evaluator half-gate row.
	te := hy0
	te.Xor(h.Hash(y1, k))
	te.Xor(x0)
	we := hy0
	if pb == 1 {
		we.Xor(te)
		we.Xor(x0)
	}

	z0 := wg
	z0.Xor(we)

	return z0, EncryptedGate{
		G: tg,
		E: te,
	}
}
