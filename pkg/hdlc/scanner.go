package hdlc

import (
	"bufio"
	"errors"
	"io"

	log "github.com/sirupsen/logrus"
)

// flagByte delimits HDLC frames on the wire.
const flagByte = 0x7E

// ErrShortRead is returned by Scanner.Next when the byte source ends before
// a frame that has already begun (a format word was read) can be
// completed. It is fatal to the pipeline, unlike every other error this
// package returns.
var ErrShortRead = errors.New("hdlc: short read, stream ended mid-frame")

// FrameFormat is the decoded 16-bit frame-format word that follows the
// opening 0x7E delimiter: 4 bits of frame type, 1 segmentation bit, and an
// 11-bit length. The reference decoder this module is modeled on evaluates
// `value & MASK >> shift` in a language where `>>` binds tighter than `&`,
// i.e. `value & (MASK >> shift)`: it shifts the mask instead of the value
// and does not extract these fields correctly. This implementation masks
// then shifts, which is the documented layout.
type FrameFormat struct {
	Length       uint16
	Segmentation bool
	Type         uint8
}

func decodeFrameFormat(w uint16) FrameFormat {
	return FrameFormat{
		Length:       w & 0x07FF,
		Segmentation: (w>>11)&1 == 1,
		Type:         uint8((w >> 12) & 0xF),
	}
}

// Frame is a candidate HDLC frame recovered from the byte stream: the
// frame-format word plus every following octet up to (but not including)
// the closing 0x7E delimiter. It has not yet been checksum-validated.
type Frame struct {
	Format FrameFormat
	Bytes  []byte
}

// Scanner recovers HDLC frame boundaries from a raw byte stream. It never
// blocks except on the underlying source's Read, and it never terminates
// on malformed input: every resync path loops back to searching for the
// next 0x7E.
type Scanner struct {
	r   *bufio.Reader
	log *log.Entry

	// OnResync, when set, is called once per resynchronization: once for
	// each length-too-small format word abandoned. Noise bytes between
	// frames are not individually counted — only the discrete "gave up on a
	// candidate frame and started over" events are.
	OnResync func()
}

// NewScanner wraps a byte source. r need not be buffered; Scanner buffers
// internally.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		r:   bufio.NewReader(r),
		log: log.WithField("component", "hdlc.Scanner"),
	}
}

// Next blocks until it can return one candidate frame, or ErrShortRead when
// the source ends mid-frame, or the source's own error (typically io.EOF)
// when it ends cleanly between frames.
func (s *Scanner) Next() (*Frame, error) {
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != flagByte {
			// Noise between frames: discard and keep looking for a flag.
			continue
		}

		// b is a flag byte. Consecutive flags collapse: each one could be
		// the stop flag of a prior frame doubling as the start flag of the
		// next, so keep consuming flag bytes until a non-flag octet
		// appears and treat that as the format word's high byte.
		hi, err := s.r.ReadByte()
		if err != nil {
			return nil, err
		}
		for hi == flagByte {
			hi, err = s.r.ReadByte()
			if err != nil {
				return nil, err
			}
		}
		lo, err := s.r.ReadByte()
		if err != nil {
			return nil, ErrShortRead
		}

		format := decodeFrameFormat(uint16(hi)<<8 | uint16(lo))
		if format.Length <= 2 {
			s.log.WithField("length", format.Length).Debug("frame length too small, resyncing")
			if s.OnResync != nil {
				s.OnResync()
			}
			continue
		}

		remainder := make([]byte, int(format.Length)-2)
		if _, err := io.ReadFull(s.r, remainder); err != nil {
			return nil, ErrShortRead
		}

		frame := make([]byte, 0, format.Length)
		frame = append(frame, hi, lo)
		frame = append(frame, remainder...)
		return &Frame{Format: format, Bytes: frame}, nil
	}
}
