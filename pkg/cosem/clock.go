package cosem

import (
	"encoding/binary"
	"fmt"
)

// RenderClock decodes a 12-byte DLMS clock structure — year, month, day,
// day-of-week, hour, minute, second, hundredths, offset-minutes, status —
// into "YYYY-MM-DD HH:MM:SS,hh ±OFF (SSSSSSSS)", status printed in binary.
// The register interpreter calls this for clock-valued octet-strings; the
// TLV decoder itself has no notion of a clock type.
func RenderClock(b []byte) (string, error) {
	if len(b) < 12 {
		return "", fmt.Errorf("cosem: clock structure too short: %d bytes", len(b))
	}
	year := binary.BigEndian.Uint16(b[0:2])
	month := b[2]
	day := b[3]
	hour := b[5]
	minute := b[6]
	second := b[7]
	hundredths := b[8]
	offset := int16(binary.BigEndian.Uint16(b[9:11]))
	status := b[11]

	sign := "+"
	off := offset
	if off < 0 {
		sign = "-"
		off = -off
	}

	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d,%02d %s%d (%08b)",
		year, month, day, hour, minute, second, hundredths, sign, off, status), nil
}
