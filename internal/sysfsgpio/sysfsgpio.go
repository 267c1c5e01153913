// Package sysfsgpio exposes a Linux sysfs GPIO line as a pulse.Pin.
//
// sysfs writes cost microseconds each, so the software carrier only comes
// out clean on fast boards; the lircdev driver is the better choice where a
// LIRC transmitter exists.
package sysfsgpio

import (
	"errors"
	"runtime"
)

// Root is the sysfs GPIO class directory.
const Root = "/sys/class/gpio"

var ErrUnsupported = errors.New("sysfsgpio: sysfs gpio is only available on linux")

// Critical keeps the calling goroutine on one OS thread while a train is
// emitted. It is the closest a Linux process gets to masking interrupts.
func Critical() (restore func()) {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
