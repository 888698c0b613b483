package hdlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s1FrameBody() []byte {
	// s1Frame without its opening/closing 0x7E delimiters, exactly what
	// Scanner.Next hands to Parse.
	return append([]byte{}, s1Frame[1:len(s1Frame)-1]...)
}

func TestParseS1Frame(t *testing.T) {
	frame := &Frame{
		Format: FrameFormat{Length: 42, Segmentation: false, Type: 0xA},
		Bytes:  s1FrameBody(),
	}

	decoded, warned, err := Parse(frame, Options{})
	require.NoError(t, err)
	assert.False(t, warned)
	assert.Equal(t, []byte{0x41}, decoded.ClientAddr)
	assert.Equal(t, []byte{0x08, 0x83}, decoded.ServerAddr)
	assert.Equal(t, byte(0x13), decoded.Control)
	assert.Equal(t, uint8(0x0F), decoded.APDUTag)
	assert.Equal(t, uint32(0x40000000), decoded.InvokeIDAndPriority)
	assert.Empty(t, decoded.DateTime)
	assert.Equal(t, []byte{
		0x01, 0x01,
		0x02, 0x03,
		0x09, 0x06, 0x01, 0x00, 0x01, 0x07, 0x00, 0xFF,
		0x06, 0x00, 0x00, 0x0E, 0x90,
		0x02, 0x02,
		0x0F, 0x00,
		0x16, 0x1B,
	}, decoded.Payload)
}

func TestParseFrameChecksumMismatch(t *testing.T) {
	body := s1FrameBody()
	corrupted := append([]byte{}, body...)
	corrupted[len(corrupted)-3] ^= 0xFF // flip every bit of the last payload byte, not the FCS itself

	frame := &Frame{Format: FrameFormat{Length: 42}, Bytes: corrupted}

	_, _, err := Parse(frame, Options{})
	var checksumErr *ChecksumError
	require.ErrorAs(t, err, &checksumErr)
	assert.Equal(t, ChecksumKindFrame, checksumErr.Kind)
}

func TestParseFrameChecksumMismatchIgnored(t *testing.T) {
	body := s1FrameBody()
	corrupted := append([]byte{}, body...)
	corrupted[len(corrupted)-3] ^= 0xFF

	frame := &Frame{Format: FrameFormat{Length: 42}, Bytes: corrupted}

	decoded, warned, err := Parse(frame, Options{IgnoreChecksum: true})
	require.NoError(t, err)
	assert.True(t, warned)
	require.NotNil(t, decoded)
}

func TestParseTooShortFrame(t *testing.T) {
	frame := &Frame{Bytes: []byte{0x01, 0x02, 0x03}}
	_, _, err := Parse(frame, Options{})
	var malformed *MalformedFrameError
	require.ErrorAs(t, err, &malformed)
}
