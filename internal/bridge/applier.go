// internal/bridge/applier.go
package bridge

import (
	"fmt"
	"log/slog"

	"github.com/tamzrod/toyotomi-remote/internal/protocol"
	"github.com/tamzrod/toyotomi-remote/internal/remote"
)

// Desired-state block layout, relative to the source address.
// These values define the protocol and MUST NOT be configurable.
const (
	RegPower       = 0 // 0 = off, anything else = on
	RegMode        = 1 // auto=0 .. fan=4
	RegTemperature = 2 // degrees Celsius
	RegFanSpeed    = 3 // none=0 .. high=4
	RegTimerOn     = 4 // timer step index, 0 = disarmed
	RegTimerOff    = 5 // timer step index, 0 = disarmed
	RegButton      = 6 // button index; a change to non-zero presses it

	DesiredRegisters = 7
)

// Controller is the part of remote.Controller the bridge drives.
type Controller interface {
	State() remote.State
	LastFrame() remote.LastSent
	Err() error

	PowerOn()
	PowerOff()
	SetMode(m protocol.Mode) protocol.Mode
	SetTemperature(t int) int
	SetFanSpeed(f protocol.FanSpeed) protocol.FanSpeed
	SetTimerOn(t protocol.TimerTime) protocol.TimerTime
	SetTimerOff(t protocol.TimerTime) protocol.TimerTime
	Press(b remote.Button) bool
}

// Applier turns desired-state register blocks into controller calls.
//
// It is edge triggered: the first block applies every field that differs
// from the controller, later blocks only the registers that changed since
// the previous block. Changes made through other surfaces in between are
// therefore left alone until the register itself moves.
type Applier struct {
	ctrl   Controller
	logger *slog.Logger
	prev   []uint16
}

func NewApplier(ctrl Controller, logger *slog.Logger) *Applier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Applier{ctrl: ctrl, logger: logger}
}

// desired is a decoded register block.
type desired struct {
	power       bool
	mode        protocol.Mode
	temperature int
	fanSpeed    protocol.FanSpeed
	timerOn     protocol.TimerTime
	timerOff    protocol.TimerTime
	button      remote.Button
}

func decode(regs []uint16) desired {
	return desired{
		power:       regs[RegPower] != 0,
		mode:        protocol.Mode(enum8(regs[RegMode])),
		temperature: int(regs[RegTemperature]),
		fanSpeed:    protocol.FanSpeed(enum8(regs[RegFanSpeed])),
		timerOn:     protocol.TimerTime(enum8(regs[RegTimerOn])),
		timerOff:    protocol.TimerTime(enum8(regs[RegTimerOff])),
		button:      remote.Button(enum8(regs[RegButton])),
	}
}

// enum8 narrows a register to an enumeration index. Values that do not fit
// stay out of range so the controller defaults them.
func enum8(v uint16) uint8 {
	if v > 0xFF {
		return 0xFF
	}
	return uint8(v)
}

// Apply applies one register block.
func (a *Applier) Apply(regs []uint16) error {
	if len(regs) < DesiredRegisters {
		return fmt.Errorf("bridge: desired-state block has %d registers, want %d", len(regs), DesiredRegisters)
	}
	regs = regs[:DesiredRegisters]

	first := a.prev == nil
	moved := func(i int) bool { return first || a.prev[i] != regs[i] }

	d := decode(regs)
	st := a.ctrl.State()

	applyClimate := func() {
		if moved(RegMode) && d.mode != st.Mode {
			st.Mode = a.ctrl.SetMode(d.mode)
		}
		if moved(RegTemperature) && st.Mode != protocol.ModeFan && d.temperature != st.Temperature {
			st.Temperature = a.ctrl.SetTemperature(d.temperature)
		}
		if moved(RegFanSpeed) && st.Mode.AllowsFanControl() && d.fanSpeed != st.FanSpeed {
			st.FanSpeed = a.ctrl.SetFanSpeed(d.fanSpeed)
		}
	}

	switch {
	case moved(RegPower) && d.power && !st.Powered:
		// settle the climate fields while off so power-on is one frame
		applyClimate()
		a.logger.Info("power on requested")
		a.ctrl.PowerOn()
	case moved(RegPower) && !d.power && st.Powered:
		a.logger.Info("power off requested")
		a.ctrl.PowerOff()
		applyClimate()
	default:
		applyClimate()
	}

	st = a.ctrl.State()
	if moved(RegTimerOn) && d.timerOn != st.TimerOn {
		a.ctrl.SetTimerOn(d.timerOn)
	}
	if moved(RegTimerOff) && d.timerOff != st.TimerOff {
		a.ctrl.SetTimerOff(d.timerOff)
	}

	// the button register is a baseline on the first block
	if !first && moved(RegButton) && d.button != remote.ButtonNone {
		if a.ctrl.Press(d.button) {
			a.logger.Info("button pressed", "button", d.button.String())
		} else {
			a.logger.Warn("unknown button index", "value", regs[RegButton])
		}
	}

	a.prev = append(a.prev[:0], regs...)
	return nil
}
