package emit

import (
	"fmt"
	"io"
)

// Sink accepts one marshalled JSON document per decoded frame. It is the
// boundary this module hands off to: an MQTT publisher, a Home Assistant
// discovery announcer, or a child-process pipe are all just Sinks a caller
// wires in, not part of this package.
type Sink interface {
	Emit(doc []byte) error
}

// WriterSink writes each document to an io.Writer, one per line, matching
// the newline-delimited JSON shape a file or stdout consumer expects.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Emit(doc []byte) error {
	_, err := fmt.Fprintf(s.W, "%s\n", doc)
	return err
}

// NopSink discards every document; useful for tests that only care about
// the Document/Marshal output, not delivery.
type NopSink struct{}

func (NopSink) Emit(doc []byte) error { return nil }
