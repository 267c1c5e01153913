// internal/remote/buttons.go
package remote

import (
	"fmt"
	"strings"

	"github.com/tamzrod/toyotomi-remote/internal/protocol"
)

// ---- state buttons ----

// TemperatureUp raises the set point by one degree.
func (c *Controller) TemperatureUp() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyTemperature(c.reportedTemperature() + 1)
}

// TemperatureDown lowers the set point by one degree.
func (c *Controller) TemperatureDown() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyTemperature(c.reportedTemperature() - 1)
}

// TogglePower turns the unit off if it is on and on otherwise.
func (c *Controller) TogglePower() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.powered {
		c.powerOff()
	} else {
		c.powerOn()
	}
}

// CycleMode steps AUTO, COOL, DRY, HEAT, FAN and back to AUTO.
func (c *Controller) CycleMode() protocol.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := protocol.ModeAuto
	if c.mode < protocol.ModeFan {
		next = c.mode + 1
	}
	return c.applyMode(next)
}

// CycleFanSpeed steps DEFAULT, LOW, MEDIUM, HIGH and back to DEFAULT. It
// does nothing in modes without fan control.
func (c *Controller) CycleFanSpeed() protocol.FanSpeed {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch f := c.reportedFanSpeed(); f {
	case protocol.FanDefault, protocol.FanLow, protocol.FanMedium:
		return c.applyFanSpeed(f + 1)
	case protocol.FanHigh:
		return c.applyFanSpeed(protocol.FanDefault)
	default:
		return f
	}
}

// StepTimerOn advances the on-timer one step, wrapping from 24h to off.
func (c *Controller) StepTimerOn() protocol.TimerTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyTimerOn(nextTimer(c.timerOn))
}

// StepTimerOff advances the off-timer one step, wrapping from 24h to off.
func (c *Controller) StepTimerOff() protocol.TimerTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyTimerOff(nextTimer(c.timerOff))
}

func nextTimer(t protocol.TimerTime) protocol.TimerTime {
	if t >= protocol.Hour240 {
		return protocol.Hour000
	}
	return t + 1
}

// ---- toggle commands ----

// ToggleSwing sends the swing command. Ignored while the unit is off.
func (c *Controller) ToggleSwing() { c.command(protocol.CommandSwing, true, true) }

// ToggleAirDirection sends the air-direction command as a single frame.
// Ignored while the unit is off.
func (c *Controller) ToggleAirDirection() { c.command(protocol.CommandAirDirection, true, false) }

// ToggleCleanAir sends the clean-air command. Ignored while the unit is off.
func (c *Controller) ToggleCleanAir() { c.command(protocol.CommandCleanAir, true, true) }

// ToggleLEDDisplay sends the display command, whether the unit is on or not.
func (c *Controller) ToggleLEDDisplay() { c.command(protocol.CommandLEDDisplay, false, true) }

// ToggleTurbo sends the turbo command. Ignored while the unit is off.
func (c *Controller) ToggleTurbo() { c.command(protocol.CommandTurbo, true, true) }

func (c *Controller) command(w protocol.Word, needsPower, repeat bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if needsPower && !c.powered {
		return
	}
	c.send(protocol.CommandFrame(w), repeat)
}

// ---- button dispatch ----

// Button is a key on the remote.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonPower
	ButtonOn
	ButtonOff
	ButtonTempUp
	ButtonTempDown
	ButtonMode
	ButtonFanSpeed
	ButtonTimerOn
	ButtonTimerOff
	ButtonSwing
	ButtonAirDirection
	ButtonCleanAir
	ButtonLEDDisplay
	ButtonTurbo
)

var buttonNames = [...]string{
	"none", "power", "on", "off", "temp-up", "temp-down", "mode", "fan",
	"timer-on", "timer-off", "swing", "air-direction", "clean-air", "led", "turbo",
}

func (b Button) String() string {
	if int(b) >= len(buttonNames) {
		return fmt.Sprintf("button(%d)", uint8(b))
	}
	return buttonNames[b]
}

// ParseButton parses a button name as produced by Button.String.
func ParseButton(s string) (Button, error) {
	for i, name := range buttonNames {
		if i > 0 && strings.EqualFold(s, name) {
			return Button(i), nil
		}
	}
	return ButtonNone, fmt.Errorf("remote: unknown button %q", s)
}

// Press performs the action of b. It reports false for an unknown button.
func (c *Controller) Press(b Button) bool {
	switch b {
	case ButtonPower:
		c.TogglePower()
	case ButtonOn:
		c.PowerOn()
	case ButtonOff:
		c.PowerOff()
	case ButtonTempUp:
		c.TemperatureUp()
	case ButtonTempDown:
		c.TemperatureDown()
	case ButtonMode:
		c.CycleMode()
	case ButtonFanSpeed:
		c.CycleFanSpeed()
	case ButtonTimerOn:
		c.StepTimerOn()
	case ButtonTimerOff:
		c.StepTimerOff()
	case ButtonSwing:
		c.ToggleSwing()
	case ButtonAirDirection:
		c.ToggleAirDirection()
	case ButtonCleanAir:
		c.ToggleCleanAir()
	case ButtonLEDDisplay:
		c.ToggleLEDDisplay()
	case ButtonTurbo:
		c.ToggleTurbo()
	default:
		return false
	}
	return true
}
