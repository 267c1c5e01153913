// internal/remote/state.go
package remote

import "github.com/tamzrod/toyotomi-remote/internal/protocol"

// Output pin range accepted by the remote. Anything else falls back to
// DefaultPin.
const (
	DefaultPin = 8
	MinPin     = 8
	MaxPin     = 13
)

// NormalizePin returns pin if it is in [MinPin, MaxPin], DefaultPin otherwise.
func NormalizePin(pin int) int {
	if pin < MinPin || pin > MaxPin {
		return DefaultPin
	}
	return pin
}

// Config is the initial appliance state. Every field is validated the same
// way the setters validate it; nothing is rejected.
type Config struct {
	Temperature int
	Mode        protocol.Mode
	FanSpeed    protocol.FanSpeed
	TimerOn     protocol.TimerTime
	TimerOff    protocol.TimerTime
	Power       bool
	Pin         int
}

// DefaultConfig returns the state of a freshly reset remote.
func DefaultConfig() Config {
	return Config{
		Temperature: protocol.DefaultTemperature,
		Mode:        protocol.ModeAuto,
		FanSpeed:    protocol.FanDefault,
		TimerOn:     protocol.Hour000,
		TimerOff:    protocol.Hour000,
		Power:       false,
		Pin:         DefaultPin,
	}
}

// State is a snapshot of the appliance state as the remote reports it:
// Temperature is protocol.NoTemperature in fan mode and FanSpeed is
// protocol.FanNone where the mode disallows fan control.
type State struct {
	Powered     bool
	Temperature int
	Mode        protocol.Mode
	FanSpeed    protocol.FanSpeed
	TimerOn     protocol.TimerTime
	TimerOff    protocol.TimerTime
	Sleep       bool
	Pin         int
}

// Frame returns the protocol view of s.
func (s State) Frame() protocol.State {
	return protocol.State{
		Temperature: s.Temperature,
		Mode:        s.Mode,
		FanSpeed:    s.FanSpeed,
		TimerOn:     s.TimerOn,
		TimerOff:    s.TimerOff,
	}
}
