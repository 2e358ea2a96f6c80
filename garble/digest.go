//
// digest.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"bytes"
	"hash"

	"github.com/markkurossi/garble/circuit"
	"github.com/markkurossi/garble/label"
	"golang.org/x/crypto/blake2s"
)

// Digest is a hash over a sequence of encrypted gates in circuit
// order. Generator and evaluator digests of the same execution are
// equal.
type Digest [blake2s.Size]byte

func newDigestHash() hash.Hash {
	h, err := blake2s.New256(nil)
	if err != nil {
		// blake2s.New256 fails only on invalid key length.
		panic(err)
	}
	return h
}

// DigestGates computes the digest of the encrypted gates.
func DigestGates(gates []EncryptedGate) Digest {
	h := newDigestHash()
	for _, gate := range gates {
		data := gate.Bytes()
		h.Write(data[:])
	}
	var digest Digest
	copy(digest[:], h.Sum(nil))
	return digest
}

// Verify re-garbles the circuit from the delta and full input
// encodings and checks that it produces this digest. It fails with
// ErrInvalidDigest on mismatch.
func (d Digest) Verify(circ *circuit.Circuit, delta label.Delta,
	inputs []*Full) error {

	gen, err := NewGenerator(circ, delta, inputs, true)
	if err != nil {
		return err
	}
	for {
		_, ok := gen.Next()
		if !ok {
			break
		}
	}
	digest, _ := gen.Digest()
	if !bytes.Equal(digest[:], d[:]) {
		return ErrInvalidDigest
	}
	return nil
}
