package cosem

import "fmt"

// OBISCode is a six-component Object Identification System address.
type OBISCode [6]byte

// String renders the code as "A-B:C.D.E.F".
func (o OBISCode) String() string {
	return fmt.Sprintf("%d-%d:%d.%d.%d.%d", o[0], o[1], o[2], o[3], o[4], o[5])
}

// ParseOBIS reads a 6-byte OBIS code out of raw octets, typically the
// contents of an OctetString value.
func ParseOBIS(b []byte) (OBISCode, bool) {
	if len(b) != 6 {
		return OBISCode{}, false
	}
	var o OBISCode
	copy(o[:], b)
	return o, true
}

// ParseOBISString parses the "A-B:C.D.E.F" rendering back into an OBISCode.
// Used by the register interpreter for vendor dictionaries that assign
// OBIS identities positionally instead of reading them off the wire.
func ParseOBISString(s string) (OBISCode, bool) {
	var a, b, c, d, e, f int
	n, err := fmt.Sscanf(s, "%d-%d:%d.%d.%d.%d", &a, &b, &c, &d, &e, &f)
	if err != nil || n != 6 {
		return OBISCode{}, false
	}
	return OBISCode{byte(a), byte(b), byte(c), byte(d), byte(e), byte(f)}, true
}
