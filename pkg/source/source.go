// Package source provides the byte-source adapters the pipeline reads from:
// a HAN serial character device, or any plain io.Reader (a file or stdin)
// for testing and offline replay.
package source

import (
	"io"
	"time"

	"github.com/goburrow/serial"
)

// Source is the byte source the pipeline reads from — spec's "blocking
// read-bytes interface returning 0..N octets, 0 signalling EOF" is exactly
// io.Reader, so no bespoke interface is introduced.
type Source = io.Reader

// SerialConfig configures the HAN port character device: 2400 baud, 8
// data bits, even parity, 1 stop bit, per the M-Bus slave physical layer.
type SerialConfig struct {
	Device   string
	BaudRate int
	DataBits int
	StopBits int
	Parity   string
	Timeout  time.Duration
}

// DefaultSerialConfig returns the HAN port's standard physical-layer
// parameters for the named device.
func DefaultSerialConfig(device string) SerialConfig {
	return SerialConfig{
		Device:   device,
		BaudRate: 2400,
		DataBits: 8,
		StopBits: 1,
		Parity:   "E",
		Timeout:  1 * time.Second,
	}
}

// OpenSerial opens a HAN port character device as a Source, mirroring the
// teacher's openSerial.
func OpenSerial(cfg SerialConfig) (serial.Port, error) {
	return serial.Open(&serial.Config{
		Address:  cfg.Device,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  cfg.Timeout,
	})
}
