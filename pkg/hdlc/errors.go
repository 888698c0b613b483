package hdlc

import (
	"errors"
	"fmt"
)

// ErrMalformedFrame is the sentinel a caller can compare against with
// errors.Is; MalformedFrameError carries the detail.
var ErrMalformedFrame = errors.New("hdlc: malformed frame")

// ErrChecksum is the sentinel underlying both header and frame checksum
// failures; ChecksumError carries which one and the expected/actual values.
var ErrChecksum = errors.New("hdlc: checksum mismatch")

// MalformedFrameError reports a structural impossibility in a candidate
// frame: too short, a truncated address, or a truncated APDU prefix.
type MalformedFrameError struct {
	Reason string
	Offset int
}

func (e *MalformedFrameError) Error() string {
	return fmt.Sprintf("hdlc: malformed frame at offset %d: %s", e.Offset, e.Reason)
}

func (e *MalformedFrameError) Unwrap() error { return ErrMalformedFrame }

// ChecksumKind distinguishes the header check sequence from the full-frame
// check sequence; both use CRC-16/X-25 but cover different byte ranges.
type ChecksumKind string

const (
	ChecksumKindHeader ChecksumKind = "header"
	ChecksumKindFrame  ChecksumKind = "frame"
)

// ChecksumError reports a CRC-16/X-25 mismatch, with enough detail
// (expected vs. actual, which checksum) for diagnosis per spec.
type ChecksumError struct {
	Kind     ChecksumKind
	Expected uint16
	Actual   uint16
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("hdlc: %s checksum mismatch: expected %04X, got %04X", e.Kind, e.Expected, e.Actual)
}

func (e *ChecksumError) Unwrap() error { return ErrChecksum }
