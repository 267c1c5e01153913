// internal/remote/controller.go
package remote

import (
	"log/slog"
	"sync"

	"github.com/tamzrod/toyotomi-remote/internal/protocol"
)

// Transmitter is what the controller needs from the pulse layer.
type Transmitter interface {
	Transmit(bits []protocol.Bit, repeat bool) error
}

// Controller owns the appliance state of one air conditioner and sends a
// frame whenever a change has to reach the unit.
//
// Calls are serialized and block until their frame has been emitted.
// Invalid input is clamped or defaulted, never rejected.
type Controller struct {
	mu     sync.Mutex
	tx     Transmitter
	logger *slog.Logger

	temperature int
	mode        protocol.Mode
	fanSpeed    protocol.FanSpeed // last user selected speed, kept across AUTO/DRY
	timerOn     protocol.TimerTime
	timerOff    protocol.TimerTime
	powered     bool
	sleep       bool
	pin         int

	last       protocol.Frame
	lastRepeat bool
	frames     uint64
	lastErr    error
}

// LastSent describes the most recent frame handed to the transmitter.
type LastSent struct {
	Frame  protocol.Frame
	Repeat bool   // sent twice, header to trailer
	Frames uint64 // frames emitted successfully so far
}

// New builds a controller from cfg. No frame is sent.
//
// Fields are applied in the order pin, temperature, mode, fan speed, timers,
// power. Constructing an unpowered remote therefore clears any timers.
func New(cfg Config, tx Transmitter, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		tx:       tx,
		logger:   logger,
		fanSpeed: protocol.FanDefault,
	}

	c.pin = NormalizePin(cfg.Pin)
	c.setTemperature(cfg.Temperature)
	c.setMode(cfg.Mode)
	c.setFanSpeed(cfg.FanSpeed)
	c.setTimerOn(cfg.TimerOn)
	c.setTimerOff(cfg.TimerOff)
	c.setActive(cfg.Power)
	c.sleep = false

	return c
}

// ---- getters ----

// State returns a snapshot of the reported state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

func (c *Controller) IsPoweredOn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.powered
}

// Temperature returns protocol.NoTemperature in fan mode.
func (c *Controller) Temperature() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reportedTemperature()
}

func (c *Controller) Mode() protocol.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// FanSpeed returns protocol.FanNone in AUTO and DRY.
func (c *Controller) FanSpeed() protocol.FanSpeed {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reportedFanSpeed()
}

func (c *Controller) TimerOn() protocol.TimerTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timerOn
}

func (c *Controller) TimerOff() protocol.TimerTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timerOff
}

// IsSleepOn is always false: the remote has no sleep command.
func (c *Controller) IsSleepOn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sleep
}

// Pin is the output pin fixed at construction.
func (c *Controller) Pin() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pin
}

// LastFrame returns the most recent frame handed to the transmitter.
func (c *Controller) LastFrame() LastSent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return LastSent{Frame: c.last, Repeat: c.lastRepeat, Frames: c.frames}
}

// Err returns the error of the most recent transmission, nil if it succeeded.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ---- setters ----

// SetTemperature clamps t to the supported range and sends it if the unit
// is on. Fan mode has no set point: the call is ignored.
func (c *Controller) SetTemperature(t int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyTemperature(t)
}

// SetMode stores m (AUTO if invalid) and sends it if the unit is on.
func (c *Controller) SetMode(m protocol.Mode) protocol.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyMode(m)
}

// SetFanSpeed selects f where the mode allows fan control. In AUTO and DRY
// the call changes nothing and reports protocol.FanNone.
func (c *Controller) SetFanSpeed(f protocol.FanSpeed) protocol.FanSpeed {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyFanSpeed(f)
}

// SetTimerOn programs the on-timer and always sends: an armed timer marks
// the unit as powered. Disarming the on-timer while it was the only timer
// turns the unit off.
func (c *Controller) SetTimerOn(t protocol.TimerTime) protocol.TimerTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyTimerOn(t)
}

// SetTimerOff programs the off-timer and always sends.
func (c *Controller) SetTimerOff(t protocol.TimerTime) protocol.TimerTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyTimerOff(t)
}

// SetState applies temperature, mode and fan speed together and powers the
// unit on with a single frame.
func (c *Controller) SetState(t int, m protocol.Mode, f protocol.FanSpeed) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setActive(true)
	c.setMode(m)
	c.setFanSpeed(f)
	c.setTemperature(t)
	c.powerOn()
}

// PowerOn turns the unit on with the current state.
func (c *Controller) PowerOn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.powerOn()
}

// PowerOff turns the unit off and clears both timers.
func (c *Controller) PowerOff() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.powerOff()
}

// ---- internals (caller holds mu) ----

func (c *Controller) applyTemperature(t int) int {
	if c.mode == protocol.ModeFan {
		return c.reportedTemperature()
	}
	c.setTemperature(t)
	if c.powered {
		c.sendState()
	}
	return c.reportedTemperature()
}

func (c *Controller) applyMode(m protocol.Mode) protocol.Mode {
	c.setMode(m)
	if c.powered {
		c.sendState()
	}
	return c.mode
}

func (c *Controller) applyFanSpeed(f protocol.FanSpeed) protocol.FanSpeed {
	if !c.mode.AllowsFanControl() {
		return c.reportedFanSpeed()
	}
	c.setFanSpeed(f)
	if c.powered {
		c.sendState()
	}
	return c.reportedFanSpeed()
}

func (c *Controller) applyTimerOn(t protocol.TimerTime) protocol.TimerTime {
	anyArmed := c.timerOn.Active() || c.timerOff.Active()
	offArmed := c.timerOff.Active()

	c.setTimerOn(t)
	if anyArmed && !offArmed && !c.timerOn.Active() {
		c.powerOff()
		return c.timerOn
	}

	c.sendState()
	return c.timerOn
}

func (c *Controller) applyTimerOff(t protocol.TimerTime) protocol.TimerTime {
	c.setTimerOff(t)
	c.sendState()
	return c.timerOff
}

func (c *Controller) state() State {
	return State{
		Powered:     c.powered,
		Temperature: c.reportedTemperature(),
		Mode:        c.mode,
		FanSpeed:    c.reportedFanSpeed(),
		TimerOn:     c.timerOn,
		TimerOff:    c.timerOff,
		Sleep:       c.sleep,
		Pin:         c.pin,
	}
}

func (c *Controller) reportedTemperature() int {
	if c.mode == protocol.ModeFan {
		return protocol.NoTemperature
	}
	return c.temperature
}

func (c *Controller) reportedFanSpeed() protocol.FanSpeed {
	if !c.mode.AllowsFanControl() {
		return protocol.FanNone
	}
	return c.fanSpeed
}

func (c *Controller) setTemperature(t int) {
	c.temperature = protocol.ClampTemperature(t)
}

func (c *Controller) setMode(m protocol.Mode) {
	if !m.Valid() {
		m = protocol.ModeAuto
	}
	c.mode = m
}

func (c *Controller) setFanSpeed(f protocol.FanSpeed) {
	if !f.Valid() || f == protocol.FanNone {
		f = protocol.FanDefault
	}
	if c.mode.AllowsFanControl() {
		c.fanSpeed = f
	}
}

func (c *Controller) setTimerOn(t protocol.TimerTime) {
	if !t.Valid() {
		t = protocol.Hour000
	}
	c.timerOn = t
	if !t.Active() {
		return
	}
	c.powered = true
	if t == c.timerOff {
		c.setTimerOff(stepAway(c.timerOff))
	}
}

func (c *Controller) setTimerOff(t protocol.TimerTime) {
	if !t.Valid() {
		t = protocol.Hour000
	}
	c.timerOff = t
	if !t.Active() {
		return
	}
	c.powered = true
	if t == c.timerOn {
		c.timerOff = stepAway(t)
	}
}

// stepAway moves a colliding off-timer one step, up unless it is already
// at the maximum.
func stepAway(t protocol.TimerTime) protocol.TimerTime {
	if t < protocol.Hour240 {
		return t + 1
	}
	return t - 1
}

func (c *Controller) setActive(on bool) {
	if !on {
		c.timerOff = protocol.Hour000
		c.timerOn = protocol.Hour000
	}
	c.powered = on
}

func (c *Controller) powerOn() {
	c.setActive(true)
	c.send(protocol.ComposePowerOn(c.state().Frame()), true)
}

func (c *Controller) powerOff() {
	c.setActive(false)
	c.send(protocol.CommandFrame(protocol.CommandPowerOff), true)
}

func (c *Controller) sendState() {
	c.send(protocol.Compose(c.state().Frame()), true)
}

func (c *Controller) send(f protocol.Frame, repeat bool) {
	c.last = f
	c.lastRepeat = repeat
	if err := c.tx.Transmit(f.Bits(), repeat); err != nil {
		c.lastErr = err
		c.logger.Error("frame transmission failed",
			"frame", f.String(),
			"err", err)
		return
	}
	c.lastErr = nil
	c.frames++
	c.logger.Debug("frame sent",
		"frame", f.String(),
		"repeat", repeat,
		"powered", c.powered)
}
