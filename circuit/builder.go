//
// builder.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
)

// Builder assembles hand-written circuits. Input ports occupy the
// first wires in declaration order; intermediate wires are allocated
// on demand; Build relocates the collected output wires to the end of
// the wire space as the Circuit layout requires.
type Builder struct {
	inputs   IO
	outputs  IO
	outWires []Wire
	next     Wire
	gates    []Gate
}

// NewBuilder creates a circuit builder for the input ports.
func NewBuilder(inputs IO) *Builder {
	return &Builder{
		inputs: inputs,
		next:   Wire(inputs.Size()),
	}
}

// Wire allocates a new intermediate wire.
func (b *Builder) Wire() Wire {
	w := b.next
	b.next++
	return w
}

// XOR adds an XOR gate and returns its output wire.
func (b *Builder) XOR(x, y Wire) Wire {
	z := b.Wire()
	b.gates = append(b.gates, Gate{Op: XOR, X: x, Y: y, Z: z})
	return z
}

// AND adds an AND gate and returns its output wire.
func (b *Builder) AND(x, y Wire) Wire {
	z := b.Wire()
	b.gates = append(b.gates, Gate{Op: AND, X: x, Y: y, Z: z})
	return z
}

// INV adds an INV gate and returns its output wire.
func (b *Builder) INV(x Wire) Wire {
	z := b.Wire()
	b.gates = append(b.gates, Gate{Op: INV, X: x, Z: z})
	return z
}

// Output adds an output port whose bits are the argument wires in
// LSB0 order.
func (b *Builder) Output(arg IOArg, wires ...Wire) error {
	if len(wires) != arg.Type.Bits() {
		return fmt.Errorf("circuit: output %s needs %d wires, got %d",
			arg, arg.Type.Bits(), len(wires))
	}
	b.outputs = append(b.outputs, arg)
	b.outWires = append(b.outWires, wires...)
	return nil
}

// Build finalizes the circuit.
func (b *Builder) Build() (*Circuit, error) {
	// Input wires and wires feeding several output bits cannot be
	// relocated; route them through INV pairs so that every output
	// bit has a dedicated gate-assigned wire.
	numInputs := Wire(b.inputs.Size())
	seen := make(map[Wire]bool)
	for idx, w := range b.outWires {
		if w < numInputs || seen[w] {
			b.outWires[idx] = b.INV(b.INV(w))
		} else {
			seen[w] = true
		}
	}

	// Relocate output wires to the end of the wire space.
	numWires := int(b.next) + len(b.outWires)
	remap := make(map[Wire]Wire)
	for idx, w := range b.outWires {
		remap[w] = Wire(numWires - len(b.outWires) + idx)
	}
	gates := make([]Gate, len(b.gates))
	for idx, g := range b.gates {
		if r, ok := remap[g.X]; ok {
			g.X = r
		}
		if g.Op != INV {
			if r, ok := remap[g.Y]; ok {
				g.Y = r
			}
		}
		if r, ok := remap[g.Z]; ok {
			g.Z = r
		}
		gates[idx] = g
	}

	return New(b.inputs, b.outputs, numWires, gates)
}
