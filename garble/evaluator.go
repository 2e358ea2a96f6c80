//
// evaluator.go
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

// State describes the progress of an evaluator.
type State int

// Evaluator states.
const (
	AwaitingGates State = iota
	Complete
)

var states = map[State]string{
	AwaitingGates: "AwaitingGates",
	Complete:      "Complete",
}

func (s State) String() string {
	name, ok := states[s]
	if ok {
		return name
	}
	return fmt.Sprintf("{State %d}", s)
}

// Evaluator evaluates a garbled circuit from active input labels.
// The evaluator is resumable: encrypted gates arrive in batches of
// any size with Ingest and evaluation suspends at the next AND gate
// when the current batch runs out.
type Evaluator struct {
	circ   *circuit.Circuit
	hash   *label.TweakHash
	labels []label.Label
	next   int
	gid    uint64
	state  State
	digest hash.Hash
}

// NewEvaluator creates an evaluator for the circuit with the active
// input encodings.
func NewEvaluator(circ *circuit.Circuit, inputs []*Active, digest bool) (
	*Evaluator, error) {

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
		for _, l := range input.labels {
			labels[w] = l
			w++
		}
	}

	ev := &Evaluator{
		circ:   circ,
		hash:   label.NewTweakHash(),
		labels: labels,
		gid:    1,
	}
	if digest {
		ev.digest = newDigestHash()
	}
	if circ.NumAND() == 0 {
		ev.run(nil)
	}
	return ev, nil
}

// State returns the evaluator state.
func (ev *Evaluator) State() State {
	return ev.state
}

// Ingest consumes a batch of encrypted gates and evaluates as far as
// they reach. It returns the new evaluator state; batching does not
// affect the result, only where evaluation suspends.
func (ev *Evaluator) Ingest(batch []EncryptedGate) State {
	if ev.state == Complete {
		return ev.state
	}
	ev.run(batch)
	return ev.state
}

func (ev *Evaluator) run(batch []EncryptedGate) {
	for ev.next < len(ev.circ.Gates) {
		gate := ev.circ.Gates[ev.next]

		switch gate.Op {
		case circuit.XOR:
			l := ev.labels[gate.X]
			l.Xor(ev.labels[gate.Y])
			ev.labels[gate.Z] = l

		case circuit.INV:
			// The evaluator holds one label per wire so inversion
			// passes the label through unchanged.
			ev.labels[gate.Z] = ev.labels[gate.X]

		case circuit.AND:
			if len(batch) == 0 {
				return
			}
			enc := batch[0]
			batch = batch[1:]

			ev.labels[gate.Z] = evalAND(ev.hash, ev.labels[gate.X],
				ev.labels[gate.Y], enc, ev.gid)
			ev.gid += 2

			if ev.digest != nil {
				data := enc.Bytes()
				ev.digest.Write(data[:])
			}
		}
		ev.next++
	}
	ev.state = Complete
}

// Outputs returns the active encodings of the circuit outputs. It
// fails with ErrNotFinished until evaluation is complete.
func (ev *Evaluator) Outputs() ([]*Active, error) {
	if ev.state != Complete {
		return nil, ErrNotFinished
	}
	var outputs []*Active
	w := ev.circ.NumWires - ev.circ.Outputs.Size()
	for _, output := range ev.circ.Outputs {
		numBits := output.Type.Bits()
		active, err := NewActive(output.Type, ev.labels[w:w+numBits])
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, active)
		w += numBits
	}
	return outputs, nil
}

// Digest returns the digest over the consumed encrypted gates. The
// second return value is false if the evaluator was created without
// digesting.
func (ev *Evaluator) Digest() (Digest, bool) {
	if ev.digest == nil {
		return Digest{}, false
	}
	var digest Digest
	copy(digest[:], ev.digest.Sum(nil))
	return digest, true
}

// evalAND evaluates one half-gate AND with the encrypted gate at
// tweaks gid and gid+1.
func evalAND(h *label.TweakHash, x, y label.Label, enc EncryptedGate,
	gid uint64) label.Label {

	sa := x.PointerBit()
	sb := y.PointerBit()

	wg := h.Hash(x, gid)
	if sa == 1 {
		wg.Xor(enc.G)
	}
	we := h.Hash(y, gid+1)
	if sb == 1 {
		we.Xor(enc.E)
		we.Xor(x)
	}

	z := wg
	z.Xor(we)
	return z
}
