package hdlc

import (
	"encoding/binary"
)

// DecodedFrame is the validated link-layer view of one HDLC frame: header
// fields, the LLC sub-header (retained for the emitted document but
// otherwise inert), the APDU prefix, and the COSEM payload slice that the
// cosem package decodes next.
type DecodedFrame struct {
	Length       uint16
	Segmentation bool
	Type         uint8

	ClientAddr []byte
	ServerAddr []byte
	Control    byte
	HCS        uint16

	LLCDestSAP uint8
	LLCSrcSAP  uint8
	LLCControl uint8

	APDUTag             uint8
	InvokeIDAndPriority uint32
	DateTime            []byte

	FCS     uint16
	Payload []byte
}

// Options configures Parse's tolerance for checksum failures.
type Options struct {
	// IgnoreChecksum decodes the frame as if header and frame CRCs matched,
	// even when they don't. The mismatch is still reported to the caller
	// via the returned bool so it can log a warning.
	IgnoreChecksum bool
}

// Parse validates a candidate frame's checksums and walks its link-layer
// header, LLC sub-header, and APDU prefix, exposing the remaining COSEM
// payload. checksumWarning is true when a mismatch occurred but was
// tolerated because of Options.IgnoreChecksum.
func Parse(frame *Frame, opts Options) (decoded *DecodedFrame, checksumWarning bool, err error) {
	b := frame.Bytes
	if len(b) < 7 {
		return nil, false, &MalformedFrameError{Reason: "frame shorter than minimum 7 octets", Offset: 0}
	}

	fcsCalc := CRC16X25(b[:len(b)-2])
	fcs := binary.LittleEndian.Uint16(b[len(b)-2:])
	warned := false
	if fcs != fcsCalc {
		if !opts.IgnoreChecksum {
			return nil, false, &ChecksumError{Kind: ChecksumKindFrame, Expected: fcsCalc, Actual: fcs}
		}
		warned = true
	}

	c := cursor{buf: b}
	c.skip(2) // frame-format word, already decoded by the scanner

	clientAddr, err := c.readVarAddr()
	if err != nil {
		return nil, false, err
	}
	serverAddr, err := c.readVarAddr()
	if err != nil {
		return nil, false, err
	}
	control, err := c.readByte()
	if err != nil {
		return nil, false, err
	}

	hcsCalc := CRC16X25(b[:c.pos])
	hcsBytes, err := c.readN(2)
	if err != nil {
		return nil, false, err
	}
	hcs := binary.LittleEndian.Uint16(hcsBytes)
	if hcs != hcsCalc {
		if !opts.IgnoreChecksum {
			return nil, false, &ChecksumError{Kind: ChecksumKindHeader, Expected: hcsCalc, Actual: hcs}
		}
		warned = true
	}

	llc, err := c.readN(3)
	if err != nil {
		return nil, false, err
	}

	apduTag, err := c.readByte()
	if err != nil {
		return nil, false, err
	}
	invokeIDBytes, err := c.readN(4)
	if err != nil {
		return nil, false, err
	}
	dtLen, err := c.readByte()
	if err != nil {
		return nil, false, err
	}
	var dateTime []byte
	if dtLen > 0 {
		dateTime, err = c.readN(int(dtLen))
		if err != nil {
			return nil, false, err
		}
	}

	if c.pos > len(b)-2 {
		return nil, false, &MalformedFrameError{Reason: "APDU prefix overruns frame", Offset: c.pos}
	}
	payload := b[c.pos : len(b)-2]

	return &DecodedFrame{
		Length:              frame.Format.Length,
		Segmentation:        frame.Format.Segmentation,
		Type:                frame.Format.Type,
		ClientAddr:          clientAddr,
		ServerAddr:          serverAddr,
		Control:             control,
		HCS:                 hcs,
		LLCDestSAP:          llc[0],
		LLCSrcSAP:           llc[1],
		LLCControl:          llc[2],
		APDUTag:             apduTag,
		InvokeIDAndPriority: binary.BigEndian.Uint32(invokeIDBytes),
		DateTime:            dateTime,
		FCS:                 fcs,
		Payload:             payload,
	}, warned, nil
}

// cursor is a bounds-checked forward-only reader over a frame's byte slice.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) skip(n int) { c.pos += n }

func (c *cursor) readByte() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, &MalformedFrameError{Reason: "unexpected end of frame", Offset: c.pos}
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) readN(n int) ([]byte, error) {
	if c.pos+n > len(c.buf) {
		return nil, &MalformedFrameError{Reason: "unexpected end of frame", Offset: c.pos}
	}
	out := c.buf[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

// readVarAddr reads an HDLC variable-length address: octets accumulate
// until one is read whose least-significant bit is 1.
func (c *cursor) readVarAddr() ([]byte, error) {
	start := c.pos
	for {
		b, err := c.readByte()
		if err != nil {
			return nil, err
		}
		if b&1 == 1 {
			break
		}
	}
	return c.buf[start:c.pos], nil
}
