package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ambientsound/han-telemetry-decoder/pkg/cosem"
	"github.com/ambientsound/han-telemetry-decoder/pkg/emit"
	"github.com/ambientsound/han-telemetry-decoder/pkg/pipeline"
	"github.com/ambientsound/han-telemetry-decoder/pkg/register"
	"github.com/ambientsound/han-telemetry-decoder/pkg/source"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"net/http"
)

var (
	device         string
	speed          int
	listen         string
	vendorMap      string
	compact        bool
	debug          bool
	ignoreChecksum bool
	quiet          bool
)

func main() {
	flag.StringVar(&device, "device", "/dev/ttyUSB0", "HAN serial character device (or a regular file/- for stdin)")
	flag.IntVar(&speed, "speed", 2400, "serial baud rate")
	flag.StringVar(&listen, "listen", "0.0.0.0:8080", "Prometheus metrics listen address")
	flag.StringVar(&vendorMap, "vendor-map", "", "register dictionary: AIDON_V0001, Kamstrup_V0001, or KFM_001 (required)")
	flag.BoolVar(&compact, "compact", false, "emit one-line JSON per frame instead of pretty-printed")
	flag.BoolVar(&debug, "debug", false, "emit diagnostic trace to stderr")
	flag.BoolVar(&ignoreChecksum, "ignore-checksum", false, "decode frames despite header/frame CRC mismatch")
	flag.BoolVar(&quiet, "quiet", false, "suppress informational stderr")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339Nano})
	switch {
	case debug:
		log.SetLevel(log.DebugLevel)
	case quiet:
		log.SetLevel(log.WarnLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	interpreter, err := register.NewInterpreter(register.VendorMap(vendorMap))
	if err != nil {
		log.Fatalf("configuration: %s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, c, err := openByteSource(device, speed)
	if err != nil {
		log.Fatalf("open byte source: %s", err)
	}
	if c != nil {
		defer c.Close()
	}

	p := pipeline.New(r, interpreter, emit.WriterSink{W: os.Stdout}, pipeline.Config{
		IgnoreChecksum: ignoreChecksum,
		Compact:        compact,
		CosemMode:      cosem.Lenient,
	})
	prometheus.MustRegister(p.Counters()...)

	go func() {
		log.Infof("Started HTTP server on %s", listen)
		if err := http.ListenAndServe(listen, promhttp.Handler()); err != nil {
			log.Errorf("HTTP server: %s", err)
			cancel()
		}
	}()

	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signals
		log.Infof("received signal %s", sig)
		cancel()
	}()

	if err := p.Run(ctx); err != nil {
		log.Errorf("pipeline stopped: %s", err)
	}
	log.Infof("terminating")
}

type closer interface {
	Close() error
}

// openByteSource opens device as a serial port unless it names "-" (stdin)
// or an existing plain file, matching the teacher's openSerial pattern but
// widened per spec's "regular file/stdin" byte source.
func openByteSource(device string, baud int) (interface {
	Read(p []byte) (int, error)
}, closer, error) {
	if device == "-" {
		return os.Stdin, nil, nil
	}
	if fi, err := os.Stat(device); err == nil && fi.Mode().IsRegular() {
		f, err := os.Open(device)
		if err != nil {
			return nil, nil, err
		}
		return f, f, nil
	}
	cfg := source.DefaultSerialConfig(device)
	cfg.BaudRate = baud
	port, err := source.OpenSerial(cfg)
	if err != nil {
		return nil, nil, err
	}
	return port, port, nil
}
