//
// encoder.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"

	"github.com/markkurossi/garble/label"
	"github.com/markkurossi/garble/types"
)

// Stream domains of the encoder nonce.
const (
	domainDelta byte = iota
	domainValue
)

// Encoder derives the encodings of circuit executions
// deterministically from a 32 byte seed: the same (seed, id) pair
// always yields the same low labels. Value ids must not be reused
// within one execution; label reuse across executions breaks the
// garbling security proof.
type Encoder struct {
	seed  [chacha20.KeySize]byte
	delta label.Delta
}

// NewEncoder creates an encoder from the seed.
func NewEncoder(seed [chacha20.KeySize]byte) (*Encoder, error) {
	e := &Encoder{
		seed: seed,
	}
	var buf [label.Size]byte
	if err := e.stream(domainDelta, 0, buf[:]); err != nil {
		return nil, err
	}
	e.delta = label.DeltaFromBytes(buf[:])
	return e, nil
}

// Delta returns the encoder's global delta.
func (e *Encoder) Delta() label.Delta {
	return e.delta
}

// Encode creates the full encoding of a value of type typ with the
// value id as domain separator.
func (e *Encoder) Encode(id uint64, typ types.Info) (*Full, error) {
	buf := make([]byte, typ.Bits()*label.Size)
	if err := e.stream(domainValue, id, buf); err != nil {
		return nil, err
	}
	labels := make([]label.Label, typ.Bits())
	for i := range labels {
		labels[i].SetBytes(buf[i*label.Size:])
	}
	return NewFull(typ, e.delta, labels)
}

func (e *Encoder) stream(domain byte, id uint64, out []byte) error {
	var nonce [chacha20.NonceSize]byte
	nonce[0] = domain
	binary.BigEndian.PutUint64(nonce[4:], id)

	cipher, err := chacha20.NewUnauthenticatedCipher(e.seed[:], nonce[:])
	if err != nil {
		return err
	}
	cipher.XORKeyStream(out, out)
	return nil
}
