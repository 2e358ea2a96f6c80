//
// msg.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"fmt"

	"github.com/markkurossi/garble/label"
	"github.com/markkurossi/garble/p2p"
	"github.com/markkurossi/garble/types"
	"golang.org/x/crypto/blake2s"
)

// Protocol operation codes.
const (
	OpDelta byte = iota
	OpActiveValue
	OpActiveValues
	OpEncryptedGates
	OpValueDecoding
	OpValueDecodings
	OpEqualityCheck
	OpHashCommitment
	OpEqualityCheckOpening
)

var opNames = map[byte]string{
	OpDelta:                "OpDelta",
	OpActiveValue:          "OpActiveValue",
	OpActiveValues:         "OpActiveValues",
	OpEncryptedGates:       "OpEncryptedGates",
	OpValueDecoding:        "OpValueDecoding",
	OpValueDecodings:       "OpValueDecodings",
	OpEqualityCheck:        "OpEqualityCheck",
	OpHashCommitment:       "OpHashCommitment",
	OpEqualityCheckOpening: "OpEqualityCheckOpening",
}

func opName(op byte) string {
	name, ok := opNames[op]
	if ok {
		return name
	}
	return fmt.Sprintf("{op %d}", op)
}

func expectOp(conn *p2p.Conn, op byte) error {
	got, err := conn.ReceiveByte()
	if err != nil {
		return err
	}
	if got != op {
		return fmt.Errorf("%w: got %s, expected %s",
			ErrUnexpectedMessage, opName(got), opName(op))
	}
	return nil
}

// SendDelta sends the garbling delta to the peer.
func SendDelta(conn *p2p.Conn, delta label.Delta) error {
	if err := conn.SendByte(OpDelta); err != nil {
		return err
	}
	var data label.LabelData
	if err := conn.SendLabel(delta.Label(), &data); err != nil {
		return err
	}
	return conn.Flush()
}

// ReceiveDelta receives the garbling delta from the peer.
func ReceiveDelta(conn *p2p.Conn) (label.Delta, error) {
	if err := expectOp(conn, OpDelta); err != nil {
		return label.Delta{}, err
	}
	var l label.Label
	var data label.LabelData
	if err := conn.ReceiveLabel(&l, &data); err != nil {
		return label.Delta{}, err
	}
	return label.DeltaFromBytes(l.Bytes(&data)), nil
}

func sendActive(conn *p2p.Conn, active *Active) error {
	if err := conn.SendString(active.typ.String()); err != nil {
		return err
	}
	var data label.LabelData
	for _, l := range active.labels {
		if err := conn.SendLabel(l, &data); err != nil {
			return err
		}
	}
	return nil
}

func receiveActive(conn *p2p.Conn) (*Active, error) {
	name, err := conn.ReceiveString()
	if err != nil {
		return nil, err
	}
	typ, err := types.Parse(name)
	if err != nil {
		return nil, err
	}
	labels := make([]label.Label, typ.Bits())
	var data label.LabelData
	for i := range labels {
		if err := conn.ReceiveLabel(&labels[i], &data); err != nil {
			return nil, err
		}
	}
	return NewActive(typ, labels)
}

// SendActive sends one active encoding to the peer.
func SendActive(conn *p2p.Conn, active *Active) error {
	if err := conn.SendByte(OpActiveValue); err != nil {
		return err
	}
	if err := sendActive(conn, active); err != nil {
		return err
	}
	return conn.Flush()
}

// ReceiveActive receives one active encoding from the peer.
func ReceiveActive(conn *p2p.Conn) (*Active, error) {
	if err := expectOp(conn, OpActiveValue); err != nil {
		return nil, err
	}
	return receiveActive(conn)
}

// SendActives sends active encodings to the peer.
func SendActives(conn *p2p.Conn, actives []*Active) error {
	if err := conn.SendByte(OpActiveValues); err != nil {
		return err
	}
	if err := conn.SendUint32(len(actives)); err != nil {
		return err
	}
	for _, active := range actives {
		if err := sendActive(conn, active); err != nil {
			return err
		}
	}
	return conn.Flush()
}

// ReceiveActives receives active encodings from the peer.
func ReceiveActives(conn *p2p.Conn) ([]*Active, error) {
	if err := expectOp(conn, OpActiveValues); err != nil {
		return nil, err
	}
	count, err := conn.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	actives := make([]*Active, count)
	for i := range actives {
		actives[i], err = receiveActive(conn)
		if err != nil {
			return nil, err
		}
	}
	return actives, nil
}

// SendGates sends a batch of encrypted gates to the peer.
func SendGates(conn *p2p.Conn, batch []EncryptedGate) error {
	if err := conn.SendByte(OpEncryptedGates); err != nil {
		return err
	}
	if err := conn.SendUint32(len(batch)); err != nil {
		return err
	}
	var data label.LabelData
	for _, gate := range batch {
		if err := conn.SendLabel(gate.G, &data); err != nil {
			return err
		}
		if err := conn.SendLabel(gate.E, &data); err != nil {
			return err
		}
	}
	return conn.Flush()
}

// ReceiveGates receives a batch of encrypted gates from the peer.
func ReceiveGates(conn *p2p.Conn) ([]EncryptedGate, error) {
	if err := expectOp(conn, OpEncryptedGates); err != nil {
		return nil, err
	}
	count, err := conn.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	batch := make([]EncryptedGate, count)
	var data label.LabelData
	for i := range batch {
		if err := conn.ReceiveLabel(&batch[i].G, &data); err != nil {
			return nil, err
		}
		if err := conn.ReceiveLabel(&batch[i].E, &data); err != nil {
			return nil, err
		}
	}
	return batch, nil
}

func sendDecoding(conn *p2p.Conn, dec Decoding) error {
	if err := conn.SendString(dec.typ.String()); err != nil {
		return err
	}
	return conn.SendData(dec.Bytes())
}

func receiveDecoding(conn *p2p.Conn) (Decoding, error) {
	name, err := conn.ReceiveString()
	if err != nil {
		return Decoding{}, err
	}
	typ, err := types.Parse(name)
	if err != nil {
		return Decoding{}, err
	}
	data, err := conn.ReceiveData()
	if err != nil {
		return Decoding{}, err
	}
	return DecodingFromBytes(typ, data)
}

// SendDecoding sends one value decoding to the peer.
func SendDecoding(conn *p2p.Conn, dec Decoding) error {
	if err := conn.SendByte(OpValueDecoding); err != nil {
		return err
	}
	if err := sendDecoding(conn, dec); err != nil {
		return err
	}
	return conn.Flush()
}

// ReceiveDecoding receives one value decoding from the peer.
func ReceiveDecoding(conn *p2p.Conn) (Decoding, error) {
	if err := expectOp(conn, OpValueDecoding); err != nil {
		return Decoding{}, err
	}
	return receiveDecoding(conn)
}

// SendDecodings sends value decodings to the peer.
func SendDecodings(conn *p2p.Conn, decs []Decoding) error {
	if err := conn.SendByte(OpValueDecodings); err != nil {
		return err
	}
	if err := conn.SendUint32(len(decs)); err != nil {
		return err
	}
	for _, dec := range decs {
		if err := sendDecoding(conn, dec); err != nil {
			return err
		}
	}
	return conn.Flush()
}

// ReceiveDecodings receives value decodings from the peer.
func ReceiveDecodings(conn *p2p.Conn) ([]Decoding, error) {
	if err := expectOp(conn, OpValueDecodings); err != nil {
		return nil, err
	}
	count, err := conn.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	decs := make([]Decoding, count)
	for i := range decs {
		decs[i], err = receiveDecoding(conn)
		if err != nil {
			return nil, err
		}
	}
	return decs, nil
}

// SendEqualityCheck sends an equality-check digest to the peer.
func SendEqualityCheck(conn *p2p.Conn, digest [blake2s.Size]byte) error {
	if err := conn.SendByte(OpEqualityCheck); err != nil {
		return err
	}
	if err := conn.SendData(digest[:]); err != nil {
		return err
	}
	return conn.Flush()
}

// ReceiveEqualityCheck receives an equality-check digest from the
// peer.
func ReceiveEqualityCheck(conn *p2p.Conn) ([blake2s.Size]byte, error) {
	var digest [blake2s.Size]byte
	if err := expectOp(conn, OpEqualityCheck); err != nil {
		return digest, err
	}
	data, err := conn.ReceiveData()
	if err != nil {
		return digest, err
	}
	if len(data) != len(digest) {
		return digest, fmt.Errorf("%w: equality check has %d bytes",
			ErrInvalidLength, len(data))
	}
	copy(digest[:], data)
	return digest, nil
}

// SendCommitment sends a hash commitment to the peer.
func SendCommitment(conn *p2p.Conn, commitment HashCommitment) error {
	if err := conn.SendByte(OpHashCommitment); err != nil {
		return err
	}
	if err := conn.SendData(commitment[:]); err != nil {
		return err
	}
	return conn.Flush()
}

// ReceiveCommitment receives a hash commitment from the peer.
func ReceiveCommitment(conn *p2p.Conn) (HashCommitment, error) {
	var commitment HashCommitment
	if err := expectOp(conn, OpHashCommitment); err != nil {
		return commitment, err
	}
	data, err := conn.ReceiveData()
	if err != nil {
		return commitment, err
	}
	if len(data) != len(commitment) {
		return commitment, fmt.Errorf("%w: commitment has %d bytes",
			ErrInvalidLength, len(data))
	}
	copy(commitment[:], data)
	return commitment, nil
}

// SendOpening sends a commitment opening to the peer.
func SendOpening(conn *p2p.Conn, opening Opening) error {
	if err := conn.SendByte(OpEqualityCheckOpening); err != nil {
		return err
	}
	if err := conn.SendData(opening.Key[:]); err != nil {
		return err
	}
	if err := conn.SendData(opening.Data); err != nil {
		return err
	}
	return conn.Flush()
}

// ReceiveOpening receives a commitment opening from the peer.
func ReceiveOpening(conn *p2p.Conn) (Opening, error) {
	var opening Opening
	if err := expectOp(conn, OpEqualityCheckOpening); err != nil {
		return opening, err
	}
	key, err := conn.ReceiveData()
	if err != nil {
		return opening, err
	}
	if len(key) != len(opening.Key) {
		return opening, fmt.Errorf("%w: commitment key has %d bytes",
			ErrInvalidLength, len(key))
	}
	copy(opening.Key[:], key)
	opening.Data, err = conn.ReceiveData()
	if err != nil {
		return opening, err
	}
	return opening, nil
}
