//
// garble_test.go
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

	"github.com/markkurossi/garble/circuit"
	"github.com/markkurossi/garble/types"
)

// andCircuit builds a single AND gate circuit: bit, bit => bit.
func andCircuit(t *testing.T) *circuit.Circuit {
	b := circuit.NewBuilder(circuit.IO{
		{Name: "a", Type: types.Bit},
		{Name: "b", Type: types.Bit},
	})
	z := b.AND(0, 1)
	if err := b.Output(circuit.IOArg{Name: "z", Type: types.Bit},
		z); err != nil {
		t.Fatalf("Output: %v", err)
	}
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return c
}

// adder8 builds an 8 bit ripple-carry adder without carry output.
func adder8(t *testing.T) *circuit.Circuit {
	b := circuit.NewBuilder(circuit.IO{
		{Name: "a", Type: types.U8},
		{Name: "b", Type: types.U8},
	})
	sum := make([]circuit.Wire, 8)
	var carry circuit.Wire
	for i := 0; i < 8; i++ {
		a := circuit.Wire(i)
		bw := circuit.Wire(8 + i)

		axb := b.XOR(a, bw)
		if i == 0 {
			sum[i] = axb
			carry = b.AND(a, bw)
			continue
		}
		sum[i] = b.XOR(axb, carry)
		if i < 7 {
			// The two carry terms are disjoint so XOR equals OR.
			carry = b.XOR(b.AND(a, bw), b.AND(axb, carry))
		}
	}
	if err := b.Output(circuit.IOArg{Name: "sum", Type: types.U8},
		sum...); err != nil {
		t.Fatalf("Output: %v", err)
	}
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return c
}

// garble garbles the circuit with fresh random inputs and returns
// the input and output encodings with all encrypted gates.
func garble(t *testing.T, circ *circuit.Circuit) (
	[]*Full, []*Full, []EncryptedGate) {

	delta := newDelta(t)

	var inputs []*Full
	for _, input := range circ.Inputs {
		full, err := NewFullRandom(rand.Reader, input.Type, delta)
		if err != nil {
			t.Fatal(err)
		}
		inputs = append(inputs, full)
	}
	gen, err := NewGenerator(circ, delta, inputs, false)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	var gates []EncryptedGate
	for {
		gate, ok := gen.Next()
		if !ok {
			break
		}
		gates = append(gates, gate)
	}
	outputs, err := gen.Outputs()
	if err != nil {
		t.Fatalf("Outputs: %v", err)
	}
	return inputs, outputs, gates
}

// evaluate selects the active inputs for the values, evaluates the
// circuit, and decodes the outputs.
func evaluate(t *testing.T, circ *circuit.Circuit, inputs, outputs []*Full,
	gates []EncryptedGate, values []types.Value) []types.Value {

	var actives []*Active
	for idx, input := range inputs {
		active, err := input.Select(values[idx])
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		actives = append(actives, active)
	}
	ev, err := NewEvaluator(circ, actives, false)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	if state := ev.Ingest(gates); state != Complete {
		t.Fatalf("Ingest: state %s", state)
	}
	outs, err := ev.Outputs()
	if err != nil {
		t.Fatalf("Outputs: %v", err)
	}
	var result []types.Value
	for idx, out := range outs {
		val, err := out.Decode(outputs[idx].Decoding())
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		result = append(result, val)
	}
	return result
}

func TestANDGate(t *testing.T) {
	circ := andCircuit(t)
	inputs, outputs, gates := garble(t, circ)
	if len(gates) != 1 {
		t.Fatalf("got %d encrypted gates", len(gates))
	}

	z0 := outputs[0].Labels()[0]
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			aa, err := inputs[0].Select(types.BitValue(a))
			if err != nil {
				t.Fatal(err)
			}
			ab, err := inputs[1].Select(types.BitValue(b))
			if err != nil {
				t.Fatal(err)
			}
			ev, err := NewEvaluator(circ, []*Active{aa, ab}, false)
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
			z := outs[0].Labels()[0]

			expected := z0
			if a && b {
				expected.Xor(outputs[0].delta.Label())
			}
			if !z.Equal(expected) {
				t.Errorf("AND(%v, %v): wrong output label", a, b)
			}
		}
	}
}

func TestGarbleEval(t *testing.T) {
	circ := adder8(t)
	inputs, outputs, gates := garble(t, circ)

	tests := []struct {
		a, b uint8
	}{
		{0, 0},
		{1, 1},
		{100, 27},
		{200, 99},
		{255, 255},
	}
	for _, test := range tests {
		values := []types.Value{
			types.U8Value(test.a),
			types.U8Value(test.b),
		}
		expected, err := circ.Compute(values)
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		result := evaluate(t, circ, inputs, outputs, gates, values)
		if !result[0].Equal(expected[0]) {
			t.Errorf("eval(%d, %d): got %d, expected %d",
				test.a, test.b, result[0].Uint64(), expected[0].Uint64())
		}
	}
}

func TestBatching(t *testing.T) {
	circ := adder8(t)
	inputs, _, gates := garble(t, circ)

	values := []types.Value{
		types.U8Value(150),
		types.U8Value(66),
	}
	var actives []*Active
	for idx, input := range inputs {
		active, err := input.Select(values[idx])
		if err != nil {
			t.Fatal(err)
		}
		actives = append(actives, active)
	}

	whole, err := NewEvaluator(circ, actives, false)
	if err != nil {
		t.Fatal(err)
	}
	whole.Ingest(gates)

	// One encrypted gate per batch must give the same outputs.
	single, err := NewEvaluator(circ, actives, false)
	if err != nil {
		t.Fatal(err)
	}
	for idx, gate := range gates {
		state := single.Ingest([]EncryptedGate{gate})
		if idx+1 < len(gates) && state != AwaitingGates {
			t.Fatalf("Ingest: state %s after %d gates", state, idx+1)
		}
	}
	if single.State() != Complete {
		t.Fatalf("state %s after all gates", single.State())
	}

	wouts, err := whole.Outputs()
	if err != nil {
		t.Fatal(err)
	}
	souts, err := single.Outputs()
	if err != nil {
		t.Fatal(err)
	}
	for idx, out := range wouts {
		for i, l := range out.Labels() {
			if !l.Equal(souts[idx].Labels()[i]) {
				t.Fatalf("output %d label %d differs", idx, i)
			}
		}
	}
}

func TestNotFinished(t *testing.T) {
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
	gen, err := NewGenerator(circ, delta, inputs, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gen.Outputs(); !errors.Is(err, ErrNotFinished) {
		t.Errorf("Outputs: got %v, expected ErrNotFinished", err)
	}

	var actives []*Active
	for _, input := range inputs {
		active, err := input.Select(types.U8Value(0))
		if err != nil {
			t.Fatal(err)
		}
		actives = append(actives, active)
	}
	ev, err := NewEvaluator(circ, actives, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ev.Outputs(); !errors.Is(err, ErrNotFinished) {
		t.Errorf("Outputs: got %v, expected ErrNotFinished", err)
	}
}

func TestGeneratorErrors(t *testing.T) {
	circ := adder8(t)
	delta := newDelta(t)

	full, err := NewFullRandom(rand.Reader, types.U8, delta)
	if err != nil {
		t.Fatal(err)
	}

	// Wrong input count.
	_, err = NewGenerator(circ, delta, []*Full{full}, false)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("NewGenerator: got %v, expected ErrTypeMismatch", err)
	}

	// Wrong input type.
	wide, err := NewFullRandom(rand.Reader, types.U16, delta)
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewGenerator(circ, delta, []*Full{full, wide}, false)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("NewGenerator: got %v, expected ErrTypeMismatch", err)
	}

	// Foreign delta.
	other, err := NewFullRandom(rand.Reader, types.U8, newDelta(t))
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewGenerator(circ, delta, []*Full{full, other}, false)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("NewGenerator: got %v, expected ErrTypeMismatch", err)
	}
}
