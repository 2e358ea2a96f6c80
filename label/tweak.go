//
// tweak.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//
// Better Concrete Security for Half-Gates Garbling (in the
// Multi-Instance Setting)
//  - https://eprint.iacr.org/2019/1168.pdf

package label

import (
	"crypto/aes"
	"crypto/cipher"
)

// fixedKey is the public fixed key of the hash permutation. The key
// provides no confidentiality; it only selects one public AES
// permutation for the correlation-robust hash.
var fixedKey = [16]byte{
	0x91, 0xe3, 0x27, 0x05, 0x5f, 0x8e, 0x2b, 0x49,
	0xd6, 0x70, 0xaa, 0x1c, 0x34, 0xc8, 0x02, 0xb7,
}

// TweakHash implements the gate-tweak hash H(x, t) = pi(x ^ T) ^ x ^ T
// where pi is AES-128 under a fixed public key and T is the 128 bit
// expansion of the tweak t. The hash is a distinct primitive for the
// half-gate rows; it must not be used as an encryption interface.
type TweakHash struct {
	alg cipher.Block
}

// NewTweakHash creates a new gate-tweak hash instance.
func NewTweakHash() *TweakHash {
	alg, err := aes.NewCipher(fixedKey[:])
	if err != nil {
		// The fixed key has a valid AES key size.
		panic(err)
	}
	return &TweakHash{
		alg: alg,
	}
}

// Hash computes the tweakable hash of the label.
func (h *TweakHash) Hash(l Label, tweak uint64) Label {
	in := NewTweak(tweak)
	in.Xor(l)

	var data, crypted LabelData
	in.GetData(&data)
	h.alg.Encrypt(crypted[:], data[:])

	var out Label
	out.SetData(&crypted)
	out.Xor(in)

	return out
}
