//
// stream.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"fmt"

	"github.com/markkurossi/garble/circuit"
	"github.com/markkurossi/garble/label"
	"github.com/markkurossi/garble/p2p"
	"github.com/markkurossi/text/superscript"
)

// BatchSize is the default number of encrypted gates per streamed
// batch.
const BatchSize = 1000

// Streamer streams a garbled circuit between the generator and the
// evaluator in encrypted-gate batches so that neither party needs to
// hold the full garbled circuit in memory.
type Streamer struct {
	Verbose   bool
	BatchSize int
	conn      *p2p.Conn
}

// NewStreamer creates a streamer over the connection.
func NewStreamer(conn *p2p.Conn) *Streamer {
	return &Streamer{
		BatchSize: BatchSize,
		conn:      conn,
	}
}

// Debugf prints debugging message if Verbose debugging is enabled
// for this Streamer.
func (s *Streamer) Debugf(format string, a ...interface{}) {
	if !s.Verbose {
		return
	}
	fmt.Printf(format, a...)
}

// Generate garbles the circuit with the delta and full inputs and
// streams the encrypted gates to the evaluator. It returns the full
// encodings of the circuit outputs.
func (s *Streamer) Generate(circ *circuit.Circuit, delta label.Delta,
	inputs []*Full) ([]*Full, error) {

	timing := NewTiming()
	ioStats := p2p.NewIOStats().Add(s.conn.Stats)

	gen, err := NewGenerator(circ, delta, inputs, false)
	if err != nil {
		return nil, err
	}
	timing.Sample("Init", nil)

	batch := make([]EncryptedGate, 0, s.BatchSize)
	var numBatches int
	for {
		gate, ok := gen.Next()
		if ok {
			batch = append(batch, gate)
		}
		if len(batch) >= s.BatchSize || (!ok && len(batch) > 0) {
			if err := SendGates(s.conn, batch); err != nil {
				return nil, err
			}
			s.Debugf("Garble: batch%s: %d gates\n",
				superscript.Itoa(numBatches), len(batch))
			numBatches++
			batch = batch[:0]
		}
		if !ok {
			break
		}
	}
	timing.Sample("Garble", []string{
		FileSize(circ.NumAND() * EncryptedGateSize).String(),
	})

	outputs, err := gen.Outputs()
	if err != nil {
		return nil, err
	}
	timing.Sample("Result", nil)
	if s.Verbose {
		timing.Print(s.conn.Stats.Sub(ioStats))
	}
	return outputs, nil
}

// Evaluate evaluates the circuit from the active inputs, consuming
// encrypted-gate batches from the generator. It returns the active
// encodings of the circuit outputs.
func (s *Streamer) Evaluate(circ *circuit.Circuit, inputs []*Active) (
	[]*Active, error) {

	timing := NewTiming()
	ioStats := p2p.NewIOStats().Add(s.conn.Stats)

	ev, err := NewEvaluator(circ, inputs, false)
	if err != nil {
		return nil, err
	}
	timing.Sample("Init", nil)

	var numBatches int
	for ev.State() != Complete {
		batch, err := ReceiveGates(s.conn)
		if err != nil {
			return nil, err
		}
		ev.Ingest(batch)
		s.Debugf("Eval: batch%s: %d gates\n",
			superscript.Itoa(numBatches), len(batch))
		numBatches++
	}
	timing.Sample("Eval", []string{
		FileSize(circ.NumAND() * EncryptedGateSize).String(),
	})

	outputs, err := ev.Outputs()
	if err != nil {
		return nil, err
	}
	timing.Sample("Result", nil)
	if s.Verbose {
		timing.Print(s.conn.Stats.Sub(ioStats))
	}
	return outputs, nil
}
