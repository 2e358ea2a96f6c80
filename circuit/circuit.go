//
// circuit.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package circuit defines the boolean circuit representation consumed
// by the garbling core: a topologically ordered gate list over wire
// ids plus typed input and output ports. Circuit compilation is done
// elsewhere; this package only validates and evaluates circuits.
package circuit

import (
	"fmt"

	"github.com/markkurossi/garble/types"
)

// Operation specifies gate function.
type Operation byte

// Gate functions.
const (
	XOR Operation = iota
	AND
	INV
)

func (op Operation) String() string {
	switch op {
	case XOR:
		return "XOR"
	case AND:
		return "AND"
	case INV:
		return "INV"
	default:
		return fmt.Sprintf("{Operation %d}", op)
	}
}

// Stats holds statistics about circuit operations.
type Stats [INV + 1]int

func (s Stats) String() string {
	return fmt.Sprintf("XOR=%d AND=%d INV=%d", s[XOR], s[AND], s[INV])
}

// Wire identifies a circuit wire.
type Wire uint32

// Gate implements a circuit gate. The unary INV gate leaves Y unset.
type Gate struct {
	Op Operation
	X  Wire
	Y  Wire
	Z  Wire
}

func (g Gate) String() string {
	if g.Op == INV {
		return fmt.Sprintf("w%d %s w%d", g.X, g.Op, g.Z)
	}
	return fmt.Sprintf("w%d w%d %s w%d", g.X, g.Y, g.Op, g.Z)
}

// IOArg describes a typed circuit input or output port.
type IOArg struct {
	Name string
	Type types.Info
}

func (io IOArg) String() string {
	if len(io.Name) > 0 {
		return io.Name + ":" + io.Type.String()
	}
	return io.Type.String()
}

// IO specifies circuit input or output ports.
type IO []IOArg

func (io IO) String() string {
	var str string
	for idx, a := range io {
		if idx > 0 {
			str += ", "
		}
		str += a.String()
	}
	return str
}

// Size returns the sum of the port widths in bits.
func (io IO) Size() int {
	var sum int
	for _, a := range io {
		sum += a.Type.Bits()
	}
	return sum
}

// Circuit implements a topologically ordered boolean circuit. The
// input ports occupy the wires [0, Inputs.Size()) in declaration
// order and the output ports the last Outputs.Size() wires. Each
// non-input wire is assigned by exactly one gate, in gate order.
type Circuit struct {
	NumWires int
	Inputs   IO
	Outputs  IO
	Gates    []Gate
	Stats    Stats
}

func (c *Circuit) String() string {
	return fmt.Sprintf("#gates=%d (%s) #w=%d", len(c.Gates), c.Stats,
		c.NumWires)
}

// NumAND returns the number of AND gates in the circuit.
func (c *Circuit) NumAND() int {
	return c.Stats[AND]
}

// New creates a circuit from the gates and typed ports. It verifies
// the wire layout conventions and collects the gate statistics.
func New(inputs, outputs IO, numWires int, gates []Gate) (*Circuit, error) {
	c := &Circuit{
		NumWires: numWires,
		Inputs:   inputs,
		Outputs:  outputs,
		Gates:    gates,
	}
	if inputs.Size() > numWires {
		return nil, fmt.Errorf("circuit: %d input bits, %d wires",
			inputs.Size(), numWires)
	}
	if outputs.Size() > numWires {
		return nil, fmt.Errorf("circuit: %d output bits, %d wires",
			outputs.Size(), numWires)
	}
	assigned := make([]bool, numWires)
	for w := 0; w < inputs.Size(); w++ {
		assigned[w] = true
	}
	for idx, g := range c.Gates {
		switch g.Op {
		case XOR, AND, INV:

		default:
			return nil, fmt.Errorf("circuit: gate %d: invalid operation %s",
				idx, g.Op)
		}
		if int(g.X) >= numWires || int(g.Z) >= numWires {
			return nil, fmt.Errorf("circuit: gate %d: wire out of range", idx)
		}
		if !assigned[g.X] {
			return nil, fmt.Errorf("circuit: gate %d: input wire %d unassigned",
				idx, g.X)
		}
		if g.Op != INV {
			if int(g.Y) >= numWires {
				return nil, fmt.Errorf("circuit: gate %d: wire out of range",
					idx)
			}
			if !assigned[g.Y] {
				return nil, fmt.Errorf(
					"circuit: gate %d: input wire %d unassigned", idx, g.Y)
			}
		}
		assigned[g.Z] = true
		c.Stats[g.Op]++
	}
	for w := numWires - outputs.Size(); w < numWires; w++ {
		if !assigned[w] {
			return nil, fmt.Errorf("circuit: output wire %d unassigned", w)
		}
	}
	return c, nil
}

// Compute evaluates the circuit in plaintext with the input values.
func (c *Circuit) Compute(inputs []types.Value) ([]types.Value, error) {
	if len(inputs) != len(c.Inputs) {
		return nil, fmt.Errorf("circuit: got %d inputs, expected %d",
			len(inputs), len(c.Inputs))
	}

	wires := make([]bool, c.NumWires)
	var w int
	for idx, input := range inputs {
		if !input.Type.Equal(c.Inputs[idx].Type) {
			return nil, fmt.Errorf("circuit: input %d has type %s, expected %s",
				idx, input.Type, c.Inputs[idx].Type)
		}
		for i := 0; i < input.Type.Bits(); i++ {
			wires[w] = input.Bit(i)
			w++
		}
	}

	for _, g := range c.Gates {
		switch g.Op {
		case XOR:
			wires[g.Z] = wires[g.X] != wires[g.Y]
		case AND:
			wires[g.Z] = wires[g.X] && wires[g.Y]
		case INV:
			wires[g.Z] = !wires[g.X]
		}
	}

	var outputs []types.Value
	w = c.NumWires - c.Outputs.Size()
	for _, output := range c.Outputs {
		bits := make([]bool, output.Type.Bits())
		for i := range bits {
			bits[i] = wires[w]
			w++
		}
		v, err := types.NewValue(output.Type, bits)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, v)
	}
	return outputs, nil
}
