// internal/pulse/gpio.go
package pulse

import "time"

// Pin is a digital output line. machine.Pin satisfies it under TinyGo.
type Pin interface {
	High()
	Low()
}

// CriticalSection suspends asynchronous interrupts and returns the function
// that restores them. Under TinyGo this wraps interrupt.Disable and
// interrupt.Restore.
type CriticalSection func() (restore func())

// GPIOConfig configures a GPIODriver.
type GPIOConfig struct {
	// Pin is the line driving the IR LED.
	Pin Pin

	// Critical brackets every train. nil disables masking.
	Critical CriticalSection

	// Delay blocks for d. nil busy-waits on the monotonic clock.
	Delay func(d time.Duration)
}

// GPIODriver modulates the carrier in software by toggling a pin.
// Timing comes from delay loops, so every train runs inside the critical
// section: an interrupt would stretch a carrier half-period.
type GPIODriver struct {
	pin      Pin
	critical CriticalSection
	delay    func(time.Duration)
}

// NewGPIODriver returns a bit-banging driver for cfg.Pin.
func NewGPIODriver(cfg GPIOConfig) *GPIODriver {
	d := &GPIODriver{
		pin:      cfg.Pin,
		critical: cfg.Critical,
		delay:    cfg.Delay,
	}
	if d.critical == nil {
		d.critical = func() func() { return func() {} }
	}
	if d.delay == nil {
		d.delay = busyWait
	}
	return d
}

// Drive emits t. Interrupts are restored on every exit path.
// A pin that can fail reports through an Err() error method, checked once
// the train is over.
func (d *GPIODriver) Drive(t Train) error {
	restore := d.critical()
	defer restore()

	for i, dur := range t {
		if i%2 == 0 {
			d.mark(dur)
		} else {
			d.space(dur)
		}
	}

	if p, ok := d.pin.(interface{ Err() error }); ok {
		return p.Err()
	}
	return nil
}

// mark emits whole carrier cycles until dur is covered.
func (d *GPIODriver) mark(dur time.Duration) {
	for ; dur > 0; dur -= CarrierPeriod {
		d.pin.High()
		d.delay(halfPeriod)
		d.pin.Low()
		d.delay(halfPeriod)
	}
}

func (d *GPIODriver) space(dur time.Duration) {
	d.pin.Low()
	d.delay(dur)
}

func busyWait(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}
