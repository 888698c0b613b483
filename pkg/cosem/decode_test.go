package cosem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSingleRegisterStructure(t *testing.T) {
	// The S1 scenario payload: array(1) of structure(3): OBIS octet-string,
	// u32 value, and a scaler-unit structure(2) of i8+enum.
	payload := []byte{
		0x01, 0x01,
		0x02, 0x03,
		0x09, 0x06, 0x01, 0x00, 0x01, 0x07, 0x00, 0xFF,
		0x06, 0x00, 0x00, 0x0E, 0x90,
		0x02, 0x02,
		0x0F, 0x00,
		0x16, 0x1B,
	}

	values, err := Decode(payload, Strict)
	require.NoError(t, err)
	require.Len(t, values, 1)

	arr, ok := values[0].(Array)
	require.True(t, ok)
	require.Len(t, arr, 1)

	reg, ok := arr[0].(Structure)
	require.True(t, ok)
	require.Len(t, reg, 3)

	obis, ok := reg[0].(OctetString)
	require.True(t, ok)
	code, ok := ParseOBIS(obis)
	require.True(t, ok)
	assert.Equal(t, "1-0:1.7.0.255", code.String())

	value, ok := reg[1].(U32)
	require.True(t, ok)
	assert.Equal(t, U32(3728), value)

	su, ok := reg[2].(Structure)
	require.True(t, ok)
	require.Len(t, su, 2)
	assert.Equal(t, I8(0), su[0])
	assert.Equal(t, Enum(27), su[1])
}

func TestDecodeUnknownTagStrictVsLenient(t *testing.T) {
	payload := []byte{0xFE, 0x01}

	_, err := Decode(payload, Strict)
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, byte(0xFE), decodeErr.Tag)

	// Lenient substitutes Null for 0xFE and continues; the following 0x01
	// is an array tag with no element count, which is a short read.
	values, err := Decode(payload, Lenient)
	require.Error(t, err)
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, byte(0x01), decodeErr.Tag)
	require.Len(t, values, 1)
	assert.Equal(t, Null{}, values[0])
}

func TestDecodeShortReadIsAnError(t *testing.T) {
	payload := []byte{0x06, 0x00, 0x00} // u32 tag but only 2 bytes follow
	_, err := Decode(payload, Strict)
	require.Error(t, err)
}

func TestDecodeUTF8CharacterCount(t *testing.T) {
	// "café" — 4 characters, 5 bytes (é is two bytes in UTF-8).
	payload := []byte{0x0C, 0x04, 'c', 'a', 'f', 0xC3, 0xA9}
	values, err := Decode(payload, Strict)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, UTF8String("café"), values[0])
}

func TestDecodeUTF8InvalidSequenceYieldsReplacement(t *testing.T) {
	// length 1, one invalid continuation byte with no leading byte.
	payload := []byte{0x0C, 0x01, 0x80}
	values, err := Decode(payload, Strict)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, UTF8String("�"), values[0])
}

func TestRenderClock(t *testing.T) {
	// 2020-08-20 11:27:15,00, offset +120 minutes, status 0x00
	b := []byte{0x07, 0xE4, 0x08, 0x14, 0x04, 0x0B, 0x1B, 0x0F, 0x00, 0x00, 0x78, 0x00}
	s, err := RenderClock(b)
	require.NoError(t, err)
	assert.Equal(t, "2020-08-20 11:27:15,00 +120 (00000000)", s)
}

func TestParseOBISRoundTrip(t *testing.T) {
	code, ok := ParseOBISString("1-0:1.7.0.255")
	require.True(t, ok)
	assert.Equal(t, "1-0:1.7.0.255", code.String())
}
