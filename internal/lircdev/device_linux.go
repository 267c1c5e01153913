//go:build linux

package lircdev

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/tamzrod/toyotomi-remote/internal/pulse"
)

// ioctl requests from <linux/lirc.h>, _IOW('i', n, __u32)
const (
	lircSetSendCarrier   = 0x40046913
	lircSetSendDutyCycle = 0x40046915
)

// Device is an open LIRC transmitter.
type Device struct {
	mu     sync.Mutex
	fd     int
	path   string
	closed bool
}

// Open opens the device at cfg.Path and programs a 38 kHz carrier.
func Open(cfg Config) (*Device, error) {
	def := DefaultConfig()
	if cfg.Path == "" {
		cfg.Path = def.Path
	}
	if cfg.DutyCycle <= 0 || cfg.DutyCycle >= 100 {
		cfg.DutyCycle = def.DutyCycle
	}

	fd, err := unix.Open(cfg.Path, unix.O_WRONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("lircdev: open %s: %w", cfg.Path, err)
	}

	if err := unix.IoctlSetPointerInt(fd, lircSetSendCarrier, pulse.CarrierFrequency); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("lircdev: set carrier on %s: %w", cfg.Path, err)
	}
	// Not every driver can change its duty cycle; the default is usable.
	_ = unix.IoctlSetPointerInt(fd, lircSetSendDutyCycle, cfg.DutyCycle)

	return &Device{fd: fd, path: cfg.Path}, nil
}

// Drive writes t to the device. The write returns once the kernel has sent
// the pulses; the trailing space is slept so back-to-back calls keep the
// frame gap.
func (d *Device) Drive(t pulse.Train) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}

	buf, tail := encodeTrain(t)
	for len(buf) > 0 {
		n, err := unix.Write(d.fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("lircdev: write %s: %w", d.path, err)
		}
		buf = buf[n:]
	}

	time.Sleep(tail)
	return nil
}

// Close releases the device.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return unix.Close(d.fd)
}
