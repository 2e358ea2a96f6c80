//
// errors.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"errors"
)

// Garbling errors. None of them is transient: every error means a
// local bug or an active attack and the caller must abort the
// session instead of retrying.
var (
	// ErrTypeMismatch means that a value's declared type does not
	// match the circuit port type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidLength means that an encoding does not match its
	// type's bit width.
	ErrInvalidLength = errors.New("invalid encoding length")

	// ErrNotFinished means that outputs were requested before the
	// circuit execution completed.
	ErrNotFinished = errors.New("garbling not finished")

	// ErrInvalidCommitment means that a label or opening failed its
	// commitment check. The peer may be malicious.
	ErrInvalidCommitment = errors.New("invalid commitment")

	// ErrUnexpectedMessage means that the peer sent a message of the
	// wrong kind. The protocol is desynchronized.
	ErrUnexpectedMessage = errors.New("unexpected message")

	// ErrInvalidDigest means that the garbled circuit digest does
	// not match the circuit and inputs.
	ErrInvalidDigest = errors.New("invalid garbled circuit digest")
)
