package pipeline

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/ambientsound/han-telemetry-decoder/pkg/cosem"
	"github.com/ambientsound/han-telemetry-decoder/pkg/emit"
	"github.com/ambientsound/han-telemetry-decoder/pkg/hdlc"
	"github.com/ambientsound/han-telemetry-decoder/pkg/register"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// s1Frame is scenario S1 from the register interpretation tests, spelled
// out here as the full delimited octet sequence a byte source would
// produce.
var s1Frame = []byte{
	0x7E,
	0xA0, 0x2A,
	0x41,
	0x08, 0x83,
	0x13,
	0x04, 0x13,
	0xE6, 0xE7, 0x00,
	0x0F,
	0x40, 0x00, 0x00, 0x00,
	0x00,
	0x01, 0x01,
	0x02, 0x03,
	0x09, 0x06, 0x01, 0x00, 0x01, 0x07, 0x00, 0xFF,
	0x06, 0x00, 0x00, 0x0E, 0x90,
	0x02, 0x02,
	0x0F, 0x00,
	0x16, 0x1B,
	0x77, 0x24,
	0x7E,
}

// encodeValue is a symmetric COSEM encoder used only to test invariant 3
// (round-trip). It is deliberately narrow: it only needs to handle the
// variants scenario S1 exercises.
func encodeValue(v cosem.Value, buf *bytes.Buffer) {
	buf.WriteByte(byte(v.Tag()))
	switch t := v.(type) {
	case cosem.Array:
		buf.WriteByte(byte(len(t)))
		for _, e := range t {
			encodeValue(e, buf)
		}
	case cosem.Structure:
		buf.WriteByte(byte(len(t)))
		for _, e := range t {
			encodeValue(e, buf)
		}
	case cosem.U32:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(t))
		buf.Write(b[:])
	case cosem.OctetString:
		buf.WriteByte(byte(len(t)))
		buf.Write(t)
	case cosem.I8:
		buf.WriteByte(byte(int8(t)))
	case cosem.Enum:
		buf.WriteByte(byte(t))
	}
}

// encodeFrame rebuilds the full delimited octet sequence for a decoded
// frame and its COSEM payload tree, recomputing both CRCs, mirroring
// exactly the layout Parse consumes.
func encodeFrame(decoded *hdlc.DecodedFrame, values []cosem.Value) []byte {
	var payload bytes.Buffer
	for _, v := range values {
		encodeValue(v, &payload)
	}

	var b bytes.Buffer
	formatWord := uint16(decoded.Type)<<12 | boolBit16(decoded.Segmentation)<<11 | (decoded.Length & 0x07FF)
	binary.Write(&b, binary.BigEndian, formatWord)
	b.Write(decoded.ClientAddr)
	b.Write(decoded.ServerAddr)
	b.WriteByte(decoded.Control)

	hcs := hdlc.CRC16X25(b.Bytes())
	var hcsBuf [2]byte
	binary.LittleEndian.PutUint16(hcsBuf[:], hcs)
	b.Write(hcsBuf[:])

	b.WriteByte(decoded.LLCDestSAP)
	b.WriteByte(decoded.LLCSrcSAP)
	b.WriteByte(decoded.LLCControl)
	b.WriteByte(decoded.APDUTag)
	var invokeBuf [4]byte
	binary.BigEndian.PutUint32(invokeBuf[:], decoded.InvokeIDAndPriority)
	b.Write(invokeBuf[:])
	b.WriteByte(byte(len(decoded.DateTime)))
	b.Write(decoded.DateTime)
	b.Write(payload.Bytes())

	fcs := hdlc.CRC16X25(b.Bytes())
	var fcsBuf [2]byte
	binary.LittleEndian.PutUint16(fcsBuf[:], fcs)
	b.Write(fcsBuf[:])

	full := append([]byte{0x7E}, b.Bytes()...)
	full = append(full, 0x7E)
	return full
}

func boolBit16(v bool) uint16 {
	if v {
		return 1
	}
	return 0
}

func TestRoundTripS1(t *testing.T) {
	s := hdlc.NewScanner(bytes.NewReader(s1Frame))
	frame, err := s.Next()
	require.NoError(t, err)

	decoded, warned, err := hdlc.Parse(frame, hdlc.Options{})
	require.NoError(t, err)
	require.False(t, warned)

	values, err := cosem.Decode(decoded.Payload, cosem.Strict)
	require.NoError(t, err)

	got := encodeFrame(decoded, values)
	assert.Equal(t, s1Frame, got)
}

func TestPipelineRunEmitsOneDocumentForS1(t *testing.T) {
	interpreter, err := register.NewInterpreter(register.AidonV0001)
	require.NoError(t, err)

	var docs [][]byte
	sink := sinkFunc(func(doc []byte) error {
		docs = append(docs, doc)
		return nil
	})

	p := New(bytes.NewReader(s1Frame), interpreter, sink, Config{Compact: true, CosemMode: cosem.Strict})
	err = p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, string(docs[0]), "power_active_import")
}

type sinkFunc func(doc []byte) error

func (f sinkFunc) Emit(doc []byte) error { return f(doc) }

var _ emit.Sink = sinkFunc(nil)
