//
// ot.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"github.com/markkurossi/garble/label"
	"github.com/markkurossi/garble/types"
)

// OT defines the base 1-out-of-2 oblivious transfer protocol. The
// generator uses the Send function to send a []label.Wire array
// where each wire has zero and one label. The evaluator calls
// Receive with a []bool array of selection bits. The higher level
// protocol must ensure the []Wire and []bool array lengths match.
type OT interface {
	// Send sends the wire labels with OT.
	Send(wires []label.Wire) error

	// Receive receives the wire labels with OT based on the flag
	// values.
	Receive(flags []bool, result []label.Label) error
}

// SendInput sends the full encoding of an evaluator input with OT.
// The evaluator obtains one label per bit without revealing its
// input value.
func SendInput(o OT, f *Full) error {
	return o.Send(f.Wires())
}

// ReceiveInput receives the active encoding for the input value with
// OT.
func ReceiveInput(o OT, v types.Value) (*Active, error) {
	flags := v.Bits()
	result := make([]label.Label, len(flags))
	if err := o.Receive(flags, result); err != nil {
		return nil, err
	}
	return NewActive(v.Type, result)
}
