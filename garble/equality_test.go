//
// equality_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"testing"

	"github.com/markkurossi/garble/circuit"
	"github.com/markkurossi/garble/types"
)

func TestEqualityCheck(t *testing.T) {
	circ := adder8(t)

	values := []types.Value{
		types.U8Value(120),
		types.U8Value(7),
	}
	outputs, err := circ.Compute(values)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	// Dual execution: both parties garble the circuit and evaluate
	// the peer's garbling.
	aIn, aOut, aGates := garble(t, circ)
	bIn, bOut, bGates := garble(t, circ)

	// The evaluator sides: a evaluates b's circuit and vice versa.
	aActive := evalActive(t, circ, bIn, bGates, values)
	bActive := evalActive(t, circ, aIn, aGates, values)

	aDigest, err := EqualityCheck(aOut, aActive, outputs, Leader)
	if err != nil {
		t.Fatalf("EqualityCheck: %v", err)
	}
	bDigest, err := EqualityCheck(bOut, bActive, outputs, Follower)
	if err != nil {
		t.Fatalf("EqualityCheck: %v", err)
	}
	if aDigest != bDigest {
		t.Error("leader and follower digests differ")
	}

	// Same role on both sides must not agree.
	cDigest, err := EqualityCheck(bOut, bActive, outputs, Leader)
	if err != nil {
		t.Fatalf("EqualityCheck: %v", err)
	}
	if aDigest == cDigest {
		t.Error("digest ignores role")
	}

	// A lie about the output value must not agree.
	lie := []types.Value{types.U8Value(0)}
	dDigest, err := EqualityCheck(bOut, bActive, lie, Follower)
	if err != nil {
		t.Fatalf("EqualityCheck: %v", err)
	}
	if aDigest == dDigest {
		t.Error("digest ignores purported value")
	}
}

// evalActive evaluates the circuit and returns the active outputs.
func evalActive(t *testing.T, circ *circuit.Circuit, inputs []*Full,
	gates []EncryptedGate, values []types.Value) []*Active {

	var actives []*Active
	for idx, input := range inputs {
		active, err := input.Select(values[idx])
		if err != nil {
			t.Fatal(err)
		}
		actives = append(actives, active)
	}
	ev, err := NewEvaluator(circ, actives, false)
	if err != nil {
		t.Fatal(err)
	}
	if state := ev.Ingest(gates); state != Complete {
		t.Fatalf("Ingest: state %s", state)
	}
	outs, err := ev.Outputs()
	if err != nil {
		t.Fatal(err)
	}
	return outs
}
