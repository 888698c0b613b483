package cosem

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Mode selects how Decode handles an unknown type tag. Strict treats it as
// a DecodeError; Lenient substitutes Null for it and continues at the next
// byte, without logging or otherwise reporting the substitution. A short
// read within a known variant is a DecodeError in both modes.
type Mode int

const (
	Strict Mode = iota
	Lenient
)

// DecodeError reports a failure to decode a COSEM value: an unknown type
// tag in Strict mode, or a short read within a known variant.
type DecodeError struct {
	Tag    byte
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cosem: decode error at offset %d, tag 0x%02X: %s", e.Offset, e.Tag, e.Reason)
}

// Decode parses payload into the sequence of top-level values that fit
// within it, per §4.3: read one type tag, dispatch to its variant decoder,
// repeat until the payload is exhausted.
func Decode(payload []byte, mode Mode) ([]Value, error) {
	d := &decoder{r: bytes.NewReader(payload), mode: mode}
	var values []Value
	for {
		v, err := d.decodeOne()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return values, nil
			}
			return values, err
		}
		values = append(values, v)
	}
}

type decoder struct {
	r      io.Reader
	mode   Mode
	offset int
}

func (d *decoder) readByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	d.offset++
	return buf[0], nil
}

func (d *decoder) readN(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, err
	}
	d.offset += n
	return buf, nil
}

// decodeOne reads one top-level or nested value. A clean EOF while looking
// for the next tag byte is the normal way top-level decoding ends; it is
// propagated unwrapped so Decode can recognize it.
func (d *decoder) decodeOne() (Value, error) {
	tagOffset := d.offset
	tb, err := d.readByte()
	if err != nil {
		return nil, err
	}
	return d.decodeTag(Tag(tb), tagOffset)
}

func (d *decoder) decodeTag(tag Tag, tagOffset int) (Value, error) {
	switch tag {
	case TagNull:
		return Null{}, nil
	case TagArray:
		vs, err := d.decodeElements(tag, tagOffset)
		if err != nil {
			return nil, err
		}
		return Array(vs), nil
	case TagStructure:
		vs, err := d.decodeElements(tag, tagOffset)
		if err != nil {
			return nil, err
		}
		return Structure(vs), nil
	case TagU32:
		b, err := d.readN(4)
		if err != nil {
			return nil, shortRead(tag, tagOffset, err)
		}
		return U32(binary.BigEndian.Uint32(b)), nil
	case TagOctetString:
		b, err := d.readLengthPrefixed(tag, tagOffset)
		if err != nil {
			return nil, err
		}
		return OctetString(b), nil
	case TagVisibleString:
		b, err := d.readLengthPrefixed(tag, tagOffset)
		if err != nil {
			return nil, err
		}
		return VisibleString(b), nil
	case TagUTF8String:
		s, err := d.readUTF8(tagOffset)
		if err != nil {
			return nil, err
		}
		return UTF8String(s), nil
	case TagI8:
		b, err := d.readByte()
		if err != nil {
			return nil, shortRead(tag, tagOffset, err)
		}
		return I8(int8(b)), nil
	case TagI16:
		b, err := d.readN(2)
		if err != nil {
			return nil, shortRead(tag, tagOffset, err)
		}
		return I16(int16(binary.BigEndian.Uint16(b))), nil
	case TagU16:
		b, err := d.readN(2)
		if err != nil {
			return nil, shortRead(tag, tagOffset, err)
		}
		return U16(binary.BigEndian.Uint16(b)), nil
	case TagEnum:
		b, err := d.readByte()
		if err != nil {
			return nil, shortRead(tag, tagOffset, err)
		}
		return Enum(b), nil
	default:
		if d.mode == Lenient {
			return Null{}, nil
		}
		return nil, &DecodeError{Tag: byte(tag), Offset: tagOffset, Reason: "unknown COSEM type tag"}
	}
}

func (d *decoder) decodeElements(tag Tag, tagOffset int) ([]Value, error) {
	n, err := d.readByte()
	if err != nil {
		return nil, shortRead(tag, tagOffset, err)
	}
	values := make([]Value, 0, n)
	for i := 0; i < int(n); i++ {
		v, err := d.decodeOne()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, shortRead(tag, tagOffset, err)
			}
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func (d *decoder) readLengthPrefixed(tag Tag, tagOffset int) ([]byte, error) {
	n, err := d.readByte()
	if err != nil {
		return nil, shortRead(tag, tagOffset, err)
	}
	b, err := d.readN(int(n))
	if err != nil {
		return nil, shortRead(tag, tagOffset, err)
	}
	return b, nil
}

// readUTF8 reads a UTF-8 string whose length prefix is a character count,
// not a byte count: accumulate bytes one at a time per character until a
// complete code point has been decoded, then repeat. An invalid byte
// sequence yields U+FFFD in its place rather than aborting the decode.
func (d *decoder) readUTF8(tagOffset int) (string, error) {
	count, err := d.readByte()
	if err != nil {
		return "", shortRead(TagUTF8String, tagOffset, err)
	}
	var out []rune
	for i := 0; i < int(count); i++ {
		r, err := d.readRune()
		if err != nil {
			return "", shortRead(TagUTF8String, tagOffset, err)
		}
		out = append(out, r)
	}
	return string(out), nil
}

func (d *decoder) readRune() (rune, error) {
	b0, err := d.readByte()
	if err != nil {
		return 0, err
	}
	var need int
	switch {
	case b0 < 0x80:
		need = 1
	case b0&0xE0 == 0xC0:
		need = 2
	case b0&0xF0 == 0xE0:
		need = 3
	case b0&0xF8 == 0xF0:
		need = 4
	default:
		return utf8.RuneError, nil
	}
	buf := make([]byte, need)
	buf[0] = b0
	for i := 1; i < need; i++ {
		b, err := d.readByte()
		if err != nil {
			return 0, err
		}
		buf[i] = b
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError || size != need {
		return utf8.RuneError, nil
	}
	return r, nil
}

func shortRead(tag Tag, offset int, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &DecodeError{Tag: byte(tag), Offset: offset, Reason: err.Error()}
}
