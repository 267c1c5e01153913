// Package lircdev drives a Linux LIRC transmitter device (/dev/lirc*).
// The kernel modulates the carrier, so trains are written as raw
// pulse/space durations and no interrupt masking is needed.
package lircdev

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/tamzrod/toyotomi-remote/internal/pulse"
)

var (
	ErrClosed      = errors.New("lircdev: device closed")
	ErrUnsupported = errors.New("lircdev: lirc devices are only available on linux")
)

// Config holds device configuration.
type Config struct {
	// Device path (default /dev/lirc0)
	Path string

	// Carrier duty cycle in percent (default 33)
	DutyCycle int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Path:      "/dev/lirc0",
		DutyCycle: 33,
	}
}

// encodeTrain converts t into the LIRC_MODE_PULSE write format: native
// uint32 microsecond values, starting and ending with a pulse. The final
// space cannot be written and is returned so the caller can wait it out.
func encodeTrain(t pulse.Train) (buf []byte, tail time.Duration) {
	if len(t) == 0 {
		return nil, 0
	}
	if len(t)%2 == 0 {
		tail = t[len(t)-1]
		t = t[:len(t)-1]
	}

	buf = make([]byte, 4*len(t))
	for i, d := range t {
		binary.NativeEndian.PutUint32(buf[4*i:], uint32(d/time.Microsecond))
	}
	return buf, tail
}
