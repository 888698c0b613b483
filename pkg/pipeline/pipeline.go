// Package pipeline wires the frame scanner, HDLC parser, COSEM decoder, and
// register interpreter into the single-threaded cooperative loop the core
// runs, instrumented with the same Prometheus counters the teacher exposes.
package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/ambientsound/han-telemetry-decoder/pkg/cosem"
	"github.com/ambientsound/han-telemetry-decoder/pkg/emit"
	"github.com/ambientsound/han-telemetry-decoder/pkg/hdlc"
	"github.com/ambientsound/han-telemetry-decoder/pkg/register"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Config holds the per-run options spec.md §6 exposes as CLI flags.
type Config struct {
	IgnoreChecksum bool
	Compact        bool
	CosemMode      cosem.Mode
}

// Pipeline drives one byte source through frame recovery, link-layer
// parsing, COSEM decoding, and register interpretation, emitting one
// document per accepted frame to Sink.
type Pipeline struct {
	Scanner     *hdlc.Scanner
	Interpreter *register.Interpreter
	Sink        emit.Sink
	Config      Config

	FramesResynced        prometheus.Counter
	FramesDroppedChecksum prometheus.Counter
	FramesDecoded         prometheus.Counter
	FramesParseErrors     prometheus.Counter
	RegisterUnknownOBIS   prometheus.Counter

	log *log.Entry
}

// New builds a Pipeline reading from r, decoding with the given
// interpreter, and publishing documents to sink. Metrics are created but
// not registered; the caller registers them with prometheus.MustRegister
// the way the teacher's main.go registers its gauges and counters.
func New(r io.Reader, interpreter *register.Interpreter, sink emit.Sink, cfg Config) *Pipeline {
	p := &Pipeline{
		Scanner:     hdlc.NewScanner(r),
		Interpreter: interpreter,
		Sink:        sink,
		Config:      cfg,

		FramesResynced:        counter("han_frames_resynced_total", "Total number of HDLC frame boundary resynchronizations"),
		FramesDroppedChecksum: counter("han_frames_dropped_checksum_total", "Total number of frames dropped for a checksum mismatch"),
		FramesDecoded:         counter("han_frames_decoded_total", "Total number of frames successfully decoded and emitted"),
		FramesParseErrors:     counter("han_frames_parse_errors_total", "Total number of frames dropped for a link-layer or COSEM parse error"),
		RegisterUnknownOBIS:   counter("han_register_unknown_obis_total", "Total number of OBIS codes seen that are absent from the vendor dictionary"),

		log: log.WithField("component", "pipeline"),
	}
	p.Scanner.OnResync = p.FramesResynced.Inc
	return p
}

func counter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
}

// Counters returns every counter the pipeline owns, for bulk registration.
func (p *Pipeline) Counters() []prometheus.Collector {
	return []prometheus.Collector{
		p.FramesResynced,
		p.FramesDroppedChecksum,
		p.FramesDecoded,
		p.FramesParseErrors,
		p.RegisterUnknownOBIS,
	}
}

// Run processes frames until the byte source ends cleanly, ctx is
// cancelled, or a ShortRead terminates the stream. It never returns an
// error for a per-frame failure — those are logged, counted, and the loop
// continues at the scanner's next resync point, per spec's propagation
// policy.
func (p *Pipeline) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		frame, err := p.Scanner.Next()
		if err != nil {
			if errors.Is(err, hdlc.ErrShortRead) {
				p.log.Warn("stream ended mid-frame, stopping")
				return nil
			}
			if errors.Is(err, io.EOF) {
				p.log.Info("byte source exhausted, stopping cleanly")
				return nil
			}
			return err
		}

		if err := p.handleFrame(frame); err != nil {
			p.log.WithError(err).Error("dropping frame")
		}
	}
}

func (p *Pipeline) handleFrame(frame *hdlc.Frame) error {
	decoded, checksumWarning, err := hdlc.Parse(frame, hdlc.Options{IgnoreChecksum: p.Config.IgnoreChecksum})
	if err != nil {
		var checksumErr *hdlc.ChecksumError
		if errors.As(err, &checksumErr) {
			p.FramesDroppedChecksum.Inc()
		} else {
			p.FramesParseErrors.Inc()
		}
		return err
	}
	if checksumWarning {
		p.log.Warn("frame accepted despite checksum mismatch (ignore-checksum enabled)")
	}

	values, err := cosem.Decode(decoded.Payload, p.Config.CosemMode)
	if err != nil {
		p.FramesParseErrors.Inc()
		return err
	}

	data, err := p.Interpreter.Interpret(values, decoded.Type)
	if err != nil {
		p.FramesParseErrors.Inc()
		return err
	}
	for key, reading := range data {
		if reading.Description == "" && key == reading.ObisCode {
			p.RegisterUnknownOBIS.Inc()
		}
	}

	doc := emit.BuildDocument(decoded, values, data)
	payload, err := emit.Marshal(doc, p.Config.Compact)
	if err != nil {
		return err
	}
	if err := p.Sink.Emit(payload); err != nil {
		return err
	}

	p.FramesDecoded.Inc()
	return nil
}
