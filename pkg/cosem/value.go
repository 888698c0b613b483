// Package cosem decodes the length-delimited, tagged COSEM value tree
// carried inside a HAN frame's APDU payload into a small, closed set of Go
// types, and renders the OBIS identifiers and clock structures that
// register interpretation needs.
package cosem

// Tag identifies a COSEM value's wire encoding, per the fixed set the DLMS
// data model uses for HAN telemetry (Blue Book "common data types",
// restricted to the variants a HAN meter actually emits).
type Tag byte

const (
	TagNull          Tag = 0x00
	TagArray         Tag = 0x01
	TagStructure     Tag = 0x02
	TagU32           Tag = 0x06
	TagOctetString   Tag = 0x09
	TagVisibleString Tag = 0x0A
	TagUTF8String    Tag = 0x0C
	TagI8            Tag = 0x0F
	TagI16           Tag = 0x10
	TagU16           Tag = 0x12
	TagEnum          Tag = 0x16
)

// Value is a decoded COSEM value. The variant set is closed and finite, so
// it is modeled as a tagged sum over concrete Go types rather than a
// run-time-typed universal container: callers type-switch on the concrete
// type (or call Tag for a fast check) instead of inspecting an `any`.
type Value interface {
	Tag() Tag
}

// Null is the COSEM null value (tag 0x00, no payload).
type Null struct{}

func (Null) Tag() Tag { return TagNull }

// Array is an ordered COSEM array (tag 0x01): same wire shape as
// Structure, distinguished only by intent.
type Array []Value

func (Array) Tag() Tag { return TagArray }

// Structure is an ordered COSEM structure (tag 0x02).
type Structure []Value

func (Structure) Tag() Tag { return TagStructure }

// U32 is a COSEM double-long-unsigned (tag 0x06).
type U32 uint32

func (U32) Tag() Tag { return TagU32 }

// OctetString is a COSEM octet-string (tag 0x09): an OBIS code, a raw
// register value, or a 12-byte clock structure, depending on context.
type OctetString []byte

func (OctetString) Tag() Tag { return TagOctetString }

// VisibleString is a COSEM visible-string (tag 0x0A): ASCII text.
type VisibleString string

func (VisibleString) Tag() Tag { return TagVisibleString }

// UTF8String is a COSEM utf8-string (tag 0x0C), whose length prefix counts
// characters rather than bytes.
type UTF8String string

func (UTF8String) Tag() Tag { return TagUTF8String }

// I8 is a COSEM integer (tag 0x0F).
type I8 int8

func (I8) Tag() Tag { return TagI8 }

// I16 is a COSEM long (tag 0x10).
type I16 int16

func (I16) Tag() Tag { return TagI16 }

// U16 is a COSEM long-unsigned (tag 0x12).
type U16 uint16

func (U16) Tag() Tag { return TagU16 }

// Enum is a COSEM enum (tag 0x16): a one-octet unsigned code, used here for
// scaler-unit unit codes.
type Enum uint8

func (Enum) Tag() Tag { return TagEnum }
