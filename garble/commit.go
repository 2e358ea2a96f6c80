//
// commit.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"crypto/rand"

	"golang.org/x/crypto/blake2s"
)

// CommitmentKey is the random key of a hash commitment.
type CommitmentKey [32]byte

// HashCommitment is a hash commitment of the form H(key || data).
// It binds the committer to the data, usually an equality check
// digest, until the opening is revealed.
type HashCommitment [blake2s.Size]byte

// Opening contains the key and data opening a hash commitment.
type Opening struct {
	Key  CommitmentKey
	Data []byte
}

// Commit commits to the data under a fresh random key.
func Commit(data []byte) (*Opening, HashCommitment, error) {
	var key CommitmentKey
	if _, err := rand.Read(key[:]); err != nil {
		return nil, HashCommitment{}, err
	}
	d := make([]byte, len(data))
	copy(d, data)

	opening := &Opening{
		Key:  key,
		Data: d,
	}
	return opening, opening.Commit(), nil
}

// Commit computes the commitment of the opening.
func (o *Opening) Commit() HashCommitment {
	buf := make([]byte, 0, len(o.Key)+len(o.Data))
	buf = append(buf, o.Key[:]...)
	buf = append(buf, o.Data...)
	return blake2s.Sum256(buf)
}

// Verify checks that the opening opens the commitment.
func (o *Opening) Verify(commitment HashCommitment) error {
	if o.Commit() != commitment {
		return ErrInvalidCommitment
	}
	return nil
}
