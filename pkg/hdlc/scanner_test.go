package hdlc

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// s1Frame is the full framed octet sequence for scenario S1, including its
// opening and closing 0x7E delimiters.
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

func TestScannerRecoversS1Frame(t *testing.T) {
	s := NewScanner(bytes.NewReader(s1Frame))
	frame, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, uint16(42), frame.Format.Length)
	assert.False(t, frame.Format.Segmentation)
	assert.Equal(t, uint8(0xA), frame.Format.Type)
	// frame.Bytes excludes the delimiters but includes the format word
	// through the FCS: length - 2 delimiters is not applicable here since
	// length already excludes delimiters (invariant 1).
	assert.Len(t, frame.Bytes, int(frame.Format.Length))
}

func TestScannerResyncsPastNoise(t *testing.T) {
	noise := bytes.Repeat([]byte{0x01}, 64)
	input := append(append([]byte{}, noise...), s1Frame...)

	s := NewScanner(bytes.NewReader(input))
	frame, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, uint16(42), frame.Format.Length)

	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestScannerShortReadMidFrame(t *testing.T) {
	truncated := s1Frame[:len(s1Frame)-5]
	s := NewScanner(bytes.NewReader(truncated))
	_, err := s.Next()
	assert.ErrorIs(t, err, ErrShortRead)
}

func TestScannerCleanEOFBetweenFrames(t *testing.T) {
	s := NewScanner(bytes.NewReader(nil))
	_, err := s.Next()
	assert.ErrorIs(t, err, io.EOF)
}
