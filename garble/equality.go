//
// equality.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"fmt"

	"github.com/markkurossi/garble/label"
	"github.com/markkurossi/garble/types"
	"golang.org/x/crypto/blake2s"
)

// Role identifies a party in the dual-execution equality check. The
// leader hashes its own full output labels before the peer's active
// labels, the follower in the opposite order, so both parties arrive
// at the same digest exactly when the executions agree.
type Role int

// Equality-check roles.
const (
	Leader Role = iota
	Follower
)

var roles = map[Role]string{
	Leader:   "Leader",
	Follower: "Follower",
}

func (r Role) String() string {
	name, ok := roles[r]
	if ok {
		return name
	}
	return fmt.Sprintf("{Role %d}", r)
}

// EqualityCheck computes the dual-execution equality-check digest.
// The full encodings are this party's generator outputs, selected by
// the purported output values the peer claimed; the active encodings
// are this party's evaluator outputs from the peer's circuit.
func EqualityCheck(full []*Full, active []*Active, purported []types.Value,
	role Role) ([blake2s.Size]byte, error) {

	var zero [blake2s.Size]byte

	if len(full) != len(purported) {
		return zero, fmt.Errorf("%w: got %d purported values for %d outputs",
			ErrTypeMismatch, len(purported), len(full))
	}

	var buf label.LabelData
	var fullData, activeData []byte
	for idx, f := range full {
		sel, err := f.Select(purported[idx])
		if err != nil {
			return zero, err
		}
		for _, l := range sel.labels {
			fullData = append(fullData, l.Bytes(&buf)...)
		}
	}
	for _, a := range active {
		for _, l := range a.labels {
			activeData = append(activeData, l.Bytes(&buf)...)
		}
	}

	h := newDigestHash()
	switch role {
	case Leader:
		h.Write(fullData)
		h.Write(activeData)
	default:
		h.Write(activeData)
		h.Write(fullData)
	}

	var digest [blake2s.Size]byte
	copy(digest[:], h.Sum(nil))
	return digest, nil
}
