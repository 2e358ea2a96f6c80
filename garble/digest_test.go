//
// digest_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/markkurossi/garble/types"
)

func TestDigest(t *testing.T) {
	circ := adder8(t)
	delta := newDelta(t)

	var inputs []*Full
	for _, input := range circ.Inputs {
		full, err := NewFullRandom(rand.Reader, input.Type, delta)
		if err != nil {
			t.Fatal(err)
		}
		inputs = append(inputs, full)
	}
	gen, err := NewGenerator(circ, delta, inputs, true)
	if err != nil {
		t.Fatal(err)
	}
	var gates []EncryptedGate
	for {
		gate, ok := gen.Next()
		if !ok {
			break
		}
		gates = append(gates, gate)
	}
	genDigest, ok := gen.Digest()
	if !ok {
		t.Fatal("generator has no digest")
	}
	if genDigest != DigestGates(gates) {
		t.Error("generator digest differs from DigestGates")
	}

	var actives []*Active
	for _, input := range inputs {
		active, err := input.Select(types.U8Value(99))
		if err != nil {
			t.Fatal(err)
		}
		actives = append(actives, active)
	}
	ev, err := NewEvaluator(circ, actives, true)
	if err != nil {
		t.Fatal(err)
	}
	ev.Ingest(gates)
	evDigest, ok := ev.Digest()
	if !ok {
		t.Fatal("evaluator has no digest")
	}
	if genDigest != evDigest {
		t.Error("generator and evaluator digests differ")
	}

	// The digest is order sensitive.
	swapped := make([]EncryptedGate, len(gates))
	copy(swapped, gates)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	if DigestGates(swapped) == genDigest {
		t.Error("digest ignores gate order")
	}

	// Verify by re-garbling.
	if err := genDigest.Verify(circ, delta, inputs); err != nil {
		t.Errorf("Verify: %v", err)
	}
	var tampered Digest = genDigest
	tampered[0] ^= 1
	if err := tampered.Verify(circ, delta, inputs); !errors.Is(err,
		ErrInvalidDigest) {
		t.Errorf("Verify: got %v, expected ErrInvalidDigest", err)
	}
}

func TestDigestDisabled(t *testing.T) {
	circ := andCircuit(t)
	inputs, _, gates := garble(t, circ)

	var actives []*Active
	for _, input := range inputs {
		active, err := input.Select(types.BitValue(true))
		if err != nil {
			t.Fatal(err)
		}
		actives = append(actives, active)
	}
	ev, err := NewEvaluator(circ, actives, false)
	if err != nil {
		t.Fatal(err)
	}
	ev.Ingest(gates)
	if _, ok := ev.Digest(); ok {
		t.Error("evaluator has a digest")
	}
}
