//
// tweak_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package label

import (
	"crypto/rand"
	"testing"
)

func TestTweakHash(t *testing.T) {
	h := NewTweakHash()

	l, err := NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	h0 := h.Hash(l, 1)
	h1 := h.Hash(l, 1)
	if !h0.Equal(h1) {
		t.Fatal("hash is not deterministic")
	}

	h2 := h.Hash(l, 2)
	if h0.Equal(h2) {
		t.Fatal("hash ignores tweak")
	}

	l2, err := NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	h3 := h.Hash(l2, 1)
	if h0.Equal(h3) {
		t.Fatal("hash ignores label")
	}
}

func BenchmarkTweakHash(b *testing.B) {
	h := NewTweakHash()
	l, err := NewLabel(rand.Reader)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		h.Hash(l, uint64(i))
	}
}
