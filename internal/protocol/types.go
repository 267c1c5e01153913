// internal/protocol/types.go
package protocol

import (
	"fmt"
	"strings"
	"time"
)

// Mode is the operating mode of the indoor unit.
type Mode uint8

const (
	ModeAuto Mode = iota
	ModeCool
	ModeDry
	ModeHeat
	ModeFan
)

var modeNames = [...]string{"auto", "cool", "dry", "heat", "fan"}

func (m Mode) Valid() bool { return m <= ModeFan }

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// AllowsFanControl reports whether the fan speed is user selectable in m.
// AUTO and DRY run the fan at a speed the unit chooses itself.
func (m Mode) AllowsFanControl() bool {
	return m == ModeCool || m == ModeHeat || m == ModeFan
}

// ParseMode parses a mode name as produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return ModeAuto, fmt.Errorf("protocol: unknown mode %q", s)
}

// FanSpeed is the indoor fan speed.
type FanSpeed uint8

const (
	FanNone FanSpeed = iota
	FanDefault
	FanLow
	FanMedium
	FanHigh
)

var fanSpeedNames = [...]string{"none", "default", "low", "medium", "high"}

func (f FanSpeed) Valid() bool { return f <= FanHigh }

func (f FanSpeed) String() string {
	if !f.Valid() {
		return fmt.Sprintf("fan(%d)", uint8(f))
	}
	return fanSpeedNames[f]
}

// ParseFanSpeed parses a fan speed name as produced by FanSpeed.String.
// "med" is accepted for medium.
func ParseFanSpeed(s string) (FanSpeed, error) {
	if strings.EqualFold(s, "med") {
		return FanMedium, nil
	}
	for i, name := range fanSpeedNames {
		if strings.EqualFold(s, name) {
			return FanSpeed(i), nil
		}
	}
	return FanDefault, fmt.Errorf("protocol: unknown fan speed %q", s)
}

// TimerTime is one of the discrete timer delays the remote can program.
// Hour000 disables the timer.
type TimerTime uint8

const (
	Hour000 TimerTime = iota
	Hour005
	Hour010
	Hour015
	Hour020
	Hour025
	Hour030
	Hour035
	Hour040
	Hour045
	Hour050
	Hour055
	Hour060
	Hour065
	Hour070
	Hour075
	Hour080
	Hour085
	Hour090
	Hour095
	Hour100
	Hour110
	Hour120
	Hour130
	Hour140
	Hour150
	Hour160
	Hour170
	Hour180
	Hour190
	Hour200
	Hour210
	Hour220
	Hour230
	Hour240
)

// TimerSteps is the number of TimerTime values, Hour000 included.
const TimerSteps = int(Hour240) + 1

func (t TimerTime) Valid() bool { return t <= Hour240 }

// Active reports whether t arms the timer.
func (t TimerTime) Active() bool { return t != Hour000 && t.Valid() }

// Duration returns the delay t represents: half hour steps up to ten hours,
// whole hours after that.
func (t TimerTime) Duration() time.Duration {
	switch {
	case !t.Valid():
		return 0
	case t <= Hour100:
		return time.Duration(t) * 30 * time.Minute
	default:
		return time.Duration(10+int(t-Hour100)) * time.Hour
	}
}

func (t TimerTime) String() string {
	if !t.Valid() {
		return fmt.Sprintf("timer(%d)", uint8(t))
	}
	if t == Hour000 {
		return "off"
	}
	return t.Duration().String()
}

// TimerFromDuration returns the TimerTime whose delay is exactly d.
func TimerFromDuration(d time.Duration) (TimerTime, error) {
	for t := Hour000; t <= Hour240; t++ {
		if t.Duration() == d {
			return t, nil
		}
	}
	return Hour000, fmt.Errorf("protocol: %s is not a programmable timer delay", d)
}

// ParseTimer accepts "off", "0" or a Go duration such as "2h30m".
func ParseTimer(s string) (TimerTime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "off":
		return Hour000, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return Hour000, fmt.Errorf("protocol: invalid timer %q: %w", s, err)
	}
	return TimerFromDuration(d)
}

// Temperature limits in degrees Celsius.
const (
	MinTemperature     = 17
	MaxTemperature     = 30
	DefaultTemperature = 20

	// NoTemperature is reported while the unit runs in fan mode.
	NoTemperature = 0
)

// ClampTemperature limits t to [MinTemperature, MaxTemperature].
func ClampTemperature(t int) int {
	switch {
	case t < MinTemperature:
		return MinTemperature
	case t > MaxTemperature:
		return MaxTemperature
	default:
		return t
	}
}
