//
// commitment.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"crypto/rand"

	"golang.org/x/crypto/blake2s"

	"github.com/markkurossi/garble/label"
	"github.com/markkurossi/garble/types"
)

// commitmentSalt domain-separates the label commitment hashes from
// the other hashes of the protocol.
var commitmentSalt = []byte("garble label commitment v1")

// Commitment commits the generator to both labels of every wire of a
// full encoding without revealing which slot holds which truth
// value: for each bit the salted hashes of the low and high labels
// are stored in random order. The per-bit ordering bits must come
// from a cryptographically strong source; an ordering the evaluator
// can predict maps its active label back to a truth value and breaks
// the hiding property. This implementation draws them from
// crypto/rand.
type Commitment struct {
	typ    types.Info
	hashes [][2][blake2s.Size]byte
}

// Commit creates a commitment to both labels of every wire of the
// encoding.
func (f *Full) Commit() (*Commitment, error) {
	numBits := f.typ.Bits()
	flip := make([]byte, (numBits+7)/8)
	if _, err := rand.Read(flip); err != nil {
		return nil, err
	}

	hashes := make([][2][blake2s.Size]byte, numBits)
	for i, low := range f.labels {
		high := low
		high.Xor(f.delta.Label())

		hl := hashLabel(low)
		hh := hashLabel(high)

		if (flip[i/8]>>uint(i%8))&1 == 1 {
			hashes[i] = [2][blake2s.Size]byte{hl, hh}
		} else {
			hashes[i] = [2][blake2s.Size]byte{hh, hl}
		}
	}
	return &Commitment{
		typ:    f.typ,
		hashes: hashes,
	}, nil
}

// Type returns the committed value type.
func (c *Commitment) Type() types.Info {
	return c.typ
}

// Verify checks the active encoding against the commitment. It
// returns ErrInvalidCommitment if any label hashes to neither of the
// committed slots; the generator may then be malicious and the
// caller must abort the session.
func (c *Commitment) Verify(a *Active) error {
	if !a.typ.Equal(c.typ) {
		return ErrTypeMismatch
	}
	for i, l := range a.labels {
		h := hashLabel(l)
		if h != c.hashes[i][0] && h != c.hashes[i][1] {
			return ErrInvalidCommitment
		}
	}
	return nil
}

func hashLabel(l label.Label) [blake2s.Size]byte {
	var data label.LabelData

	buf := make([]byte, 0, len(commitmentSalt)+label.Size)
	buf = append(buf, commitmentSalt...)
	buf = append(buf, l.Bytes(&data)...)

	return blake2s.Sum256(buf)
}
