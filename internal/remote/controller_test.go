// internal/remote/controller_test.go
package remote

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/neilotoole/slogt"

	"github.com/tamzrod/toyotomi-remote/internal/protocol"
)

// ---- fake transmitter ----

type sent struct {
	bits   []protocol.Bit
	repeat bool
}

type fakeTransmitter struct {
	sent  []sent
	err   error
	delay time.Duration
}

func (f *fakeTransmitter) Transmit(bits []protocol.Bit, repeat bool) error {
	time.Sleep(f.delay)
	f.sent = append(f.sent, sent{bits: bits, repeat: repeat})
	return f.err
}

func (f *fakeTransmitter) last(t *testing.T) sent {
	t.Helper()
	assert.NotEqual(t, 0, len(f.sent), "no frame sent")
	return f.sent[len(f.sent)-1]
}

func newController(t *testing.T, cfg Config) (*Controller, *fakeTransmitter) {
	tx := &fakeTransmitter{}
	return New(cfg, tx, slogt.New(t)), tx
}

func poweredController(t *testing.T) (*Controller, *fakeTransmitter) {
	cfg := DefaultConfig()
	cfg.Power = true
	return newController(t, cfg)
}

const goldenDefaultBits = "10110010 01001101 00011111 11100000 00101000 11010111"

// ---- construction ----

func TestNew_Defaults(t *testing.T) {
	c, tx := newController(t, DefaultConfig())

	assert.Equal(t, State{
		Powered:     false,
		Temperature: 20,
		Mode:        protocol.ModeAuto,
		FanSpeed:    protocol.FanNone,
		TimerOn:     protocol.Hour000,
		TimerOff:    protocol.Hour000,
		Pin:         DefaultPin,
	}, c.State())
	assert.Equal(t, 0, len(tx.sent))
}

func TestNew_ValidatesEveryField(t *testing.T) {
	c, _ := newController(t, Config{
		Temperature: 40,
		Mode:        protocol.Mode(9),
		FanSpeed:    protocol.FanSpeed(7),
		Pin:         2,
	})

	st := c.State()
	assert.Equal(t, 30, st.Temperature)
	assert.Equal(t, protocol.ModeAuto, st.Mode)
	assert.Equal(t, DefaultPin, st.Pin)
}

func TestNew_PinInRangeKept(t *testing.T) {
	c, _ := newController(t, Config{Pin: 12})
	assert.Equal(t, 12, c.Pin())
}

func TestNew_UnpoweredClearsTimers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimerOn = protocol.Hour020
	cfg.TimerOff = protocol.Hour040

	c, _ := newController(t, cfg)
	assert.Equal(t, protocol.Hour000, c.TimerOn())
	assert.Equal(t, protocol.Hour000, c.TimerOff())

	cfg.Power = true
	c, _ = newController(t, cfg)
	assert.Equal(t, protocol.Hour020, c.TimerOn())
	assert.Equal(t, protocol.Hour040, c.TimerOff())
}

// ---- temperature ----

func TestSetTemperature_Clamps(t *testing.T) {
	c, tx := poweredController(t)

	assert.Equal(t, 17, c.SetTemperature(16))
	assert.Equal(t, 30, c.SetTemperature(31))
	assert.Equal(t, 2, len(tx.sent))
}

func TestSetTemperature_UnpoweredIsSilent(t *testing.T) {
	c, tx := newController(t, DefaultConfig())

	assert.Equal(t, 25, c.SetTemperature(25))
	assert.Equal(t, 0, len(tx.sent))
	assert.Equal(t, 25, c.Temperature())
}

func TestSetTemperature_IgnoredInFanMode(t *testing.T) {
	c, tx := poweredController(t)
	c.SetMode(protocol.ModeFan)
	n := len(tx.sent)

	assert.Equal(t, protocol.NoTemperature, c.SetTemperature(25))
	assert.Equal(t, n, len(tx.sent))

	c.SetMode(protocol.ModeCool)
	assert.Equal(t, 20, c.Temperature())
}

func TestTemperatureButtons(t *testing.T) {
	c, _ := poweredController(t)

	assert.Equal(t, 21, c.TemperatureUp())
	assert.Equal(t, 20, c.TemperatureDown())

	c.SetTemperature(17)
	assert.Equal(t, 17, c.TemperatureDown())
}

// ---- fan speed ----

func TestSetFanSpeed_NoneInAutoAndDry(t *testing.T) {
	for _, mode := range []protocol.Mode{protocol.ModeAuto, protocol.ModeDry} {
		c, tx := poweredController(t)
		c.SetMode(mode)
		n := len(tx.sent)

		for f := protocol.FanNone; f <= protocol.FanHigh; f++ {
			assert.Equal(t, protocol.FanNone, c.SetFanSpeed(f))
		}
		assert.Equal(t, n, len(tx.sent))
	}
}

func TestSetFanSpeed_NoneBecomesDefault(t *testing.T) {
	c, _ := poweredController(t)
	c.SetMode(protocol.ModeCool)

	assert.Equal(t, protocol.FanHigh, c.SetFanSpeed(protocol.FanHigh))
	assert.Equal(t, protocol.FanDefault, c.SetFanSpeed(protocol.FanNone))
}

func TestCycleFanSpeed(t *testing.T) {
	c, _ := poweredController(t)
	c.SetMode(protocol.ModeHeat)

	got := []protocol.FanSpeed{}
	for i := 0; i < 4; i++ {
		got = append(got, c.CycleFanSpeed())
	}
	assert.Equal(t, []protocol.FanSpeed{
		protocol.FanLow, protocol.FanMedium, protocol.FanHigh, protocol.FanDefault,
	}, got)

	c.SetMode(protocol.ModeDry)
	assert.Equal(t, protocol.FanNone, c.CycleFanSpeed())
}

// ---- mode ----

func TestCycleMode(t *testing.T) {
	c, _ := poweredController(t)

	got := []protocol.Mode{}
	for i := 0; i < 5; i++ {
		got = append(got, c.CycleMode())
	}
	assert.Equal(t, []protocol.Mode{
		protocol.ModeCool, protocol.ModeDry, protocol.ModeHeat, protocol.ModeFan, protocol.ModeAuto,
	}, got)
}

func TestSetMode_InvalidFallsBackToAuto(t *testing.T) {
	c, _ := poweredController(t)
	c.SetMode(protocol.ModeHeat)
	assert.Equal(t, protocol.ModeAuto, c.SetMode(protocol.Mode(17)))
}

func TestSetMode_Idempotent(t *testing.T) {
	c, tx := poweredController(t)

	c.SetMode(protocol.ModeCool)
	c.SetMode(protocol.ModeCool)

	assert.Equal(t, 2, len(tx.sent))
	assert.Equal(t, tx.sent[0], tx.sent[1])
}

// ---- power ----

func TestPowerOn_DefaultGolden(t *testing.T) {
	c, tx := newController(t, DefaultConfig())

	c.PowerOn()
	assert.True(t, c.IsPoweredOn())

	s := tx.last(t)
	assert.True(t, s.repeat)
	assert.Equal(t, goldenDefaultBits, protocol.FormatBits(s.bits))

	last := c.LastFrame()
	assert.Equal(t, protocol.Frame{Normal: 0x4DF814, Inverted: 0xB207EB}, last.Frame)
	assert.True(t, last.Repeat)
	assert.Equal(t, uint64(1), last.Frames)
}

func TestPowerOff_ClearsTimersAndReplaysInitialFrame(t *testing.T) {
	c, tx := poweredController(t)
	c.PowerOn()
	initial := tx.last(t).bits

	c.SetTimerOn(protocol.Hour030)
	c.SetTimerOff(protocol.Hour080)
	c.PowerOff()

	assert.False(t, c.IsPoweredOn())
	assert.Equal(t, protocol.Hour000, c.TimerOn())
	assert.Equal(t, protocol.Hour000, c.TimerOff())
	assert.Equal(t, protocol.CommandFrame(protocol.CommandPowerOff).Bits(), tx.last(t).bits)

	c.PowerOn()
	assert.Equal(t, initial, tx.last(t).bits)
}

func TestTogglePower(t *testing.T) {
	c, _ := newController(t, DefaultConfig())

	c.TogglePower()
	assert.True(t, c.IsPoweredOn())
	c.TogglePower()
	assert.False(t, c.IsPoweredOn())
}

func TestSetState_PowersOn(t *testing.T) {
	c, tx := newController(t, DefaultConfig())

	c.SetState(24, protocol.ModeCool, protocol.FanHigh)

	assert.True(t, c.IsPoweredOn())
	assert.Equal(t, 1, len(tx.sent))
	assert.Equal(t, protocol.Word(0x4DFC02), c.LastFrame().Frame.Normal)
}

// ---- timers ----

func TestTimers_CollisionStepsOffTimer(t *testing.T) {
	c, _ := poweredController(t)

	c.SetTimerOn(protocol.Hour050)
	assert.Equal(t, protocol.Hour055, c.SetTimerOff(protocol.Hour050))
	assert.NotEqual(t, c.TimerOn(), c.TimerOff())
}

func TestTimers_CollisionAtMaximumStepsDown(t *testing.T) {
	c, _ := poweredController(t)

	c.SetTimerOn(protocol.Hour240)
	assert.Equal(t, protocol.Hour230, c.SetTimerOff(protocol.Hour240))
}

func TestTimers_OnTimerCollisionMovesOffTimer(t *testing.T) {
	c, _ := poweredController(t)

	c.SetTimerOff(protocol.Hour100)
	assert.Equal(t, protocol.Hour100, c.SetTimerOn(protocol.Hour100))
	assert.Equal(t, protocol.Hour110, c.TimerOff())
}

func TestTimers_NeverEqualAfterAnySet(t *testing.T) {
	for v := protocol.Hour005; v <= protocol.Hour240; v++ {
		c, _ := poweredController(t)
		c.SetTimerOn(v)
		c.SetTimerOff(v)
		assert.NotEqual(t, c.TimerOn(), c.TimerOff(), "timer %s", v)
	}
}

func TestSetTimerOn_ArmsUnpoweredUnit(t *testing.T) {
	c, tx := newController(t, DefaultConfig())

	c.SetTimerOn(protocol.Hour010)

	assert.True(t, c.IsPoweredOn())
	assert.Equal(t, 1, len(tx.sent))
	assert.Equal(t, protocol.Compose(protocol.State{
		Temperature: 20, Mode: protocol.ModeAuto, TimerOn: protocol.Hour010,
	}), c.LastFrame().Frame)
}

func TestSetTimerOn_DisarmingOnlyTimerPowersOff(t *testing.T) {
	c, tx := newController(t, DefaultConfig())
	c.SetTimerOn(protocol.Hour010)

	c.SetTimerOn(protocol.Hour000)

	assert.False(t, c.IsPoweredOn())
	assert.Equal(t, protocol.CommandFrame(protocol.CommandPowerOff).Bits(), tx.last(t).bits)
}

func TestSetTimerOn_DisarmingWithOffTimerKeepsPower(t *testing.T) {
	c, _ := poweredController(t)
	c.SetTimerOff(protocol.Hour020)
	c.SetTimerOn(protocol.Hour010)

	c.SetTimerOn(protocol.Hour000)

	assert.True(t, c.IsPoweredOn())
	assert.Equal(t, protocol.Hour020, c.TimerOff())
}

func TestStepTimerOn_WrapsToOff(t *testing.T) {
	c, _ := newController(t, DefaultConfig())
	c.SetTimerOn(protocol.Hour240)

	assert.Equal(t, protocol.Hour000, c.StepTimerOn())
	assert.False(t, c.IsPoweredOn())
}

func TestStepTimerOff(t *testing.T) {
	c, _ := poweredController(t)

	assert.Equal(t, protocol.Hour005, c.StepTimerOff())
	c.SetTimerOff(protocol.Hour240)
	assert.Equal(t, protocol.Hour000, c.StepTimerOff())
}

// ---- toggle commands ----

func TestToggles_IgnoredWhileOffExceptLED(t *testing.T) {
	c, tx := newController(t, DefaultConfig())

	c.ToggleSwing()
	c.ToggleAirDirection()
	c.ToggleCleanAir()
	c.ToggleTurbo()
	assert.Equal(t, 0, len(tx.sent))

	c.ToggleLEDDisplay()
	assert.Equal(t, 1, len(tx.sent))
	assert.Equal(t, protocol.CommandFrame(protocol.CommandLEDDisplay).Bits(), tx.last(t).bits)
}

func TestToggles_Powered(t *testing.T) {
	c, tx := poweredController(t)

	c.ToggleSwing()
	assert.True(t, tx.last(t).repeat)
	assert.Equal(t, protocol.CommandFrame(protocol.CommandSwing).Bits(), tx.last(t).bits)

	c.ToggleAirDirection()
	assert.False(t, tx.last(t).repeat)
	assert.False(t, c.LastFrame().Repeat)

	c.ToggleCleanAir()
	c.ToggleTurbo()
	assert.Equal(t, 4, len(tx.sent))
}

// ---- concurrent callers ----

func TestButtons_ConcurrentPressesAreNotLost(t *testing.T) {
	c, tx := poweredController(t)
	c.SetTemperature(protocol.MinTemperature)
	tx.delay = 2 * time.Millisecond

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.TemperatureUp()
		}()
	}
	wg.Wait()

	assert.Equal(t, protocol.MinTemperature+10, c.Temperature())
	assert.Equal(t, 11, len(tx.sent))
}

func TestButtons_ConcurrentTimerStepsAreNotLost(t *testing.T) {
	c, tx := poweredController(t)
	tx.delay = time.Millisecond

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.StepTimerOff()
		}()
	}
	wg.Wait()

	assert.Equal(t, protocol.TimerTime(6), c.TimerOff())
}

// ---- dispatch + errors ----

func TestPressAndParseButton(t *testing.T) {
	c, _ := newController(t, DefaultConfig())

	b, err := ParseButton("power")
	assert.NoError(t, err)
	assert.True(t, c.Press(b))
	assert.True(t, c.IsPoweredOn())

	_, err = ParseButton("none")
	assert.Error(t, err)
	assert.False(t, c.Press(ButtonNone))

	for b := ButtonPower; b <= ButtonTurbo; b++ {
		parsed, err := ParseButton(b.String())
		assert.NoError(t, err)
		assert.Equal(t, b, parsed)
	}
}

func TestTransmitErrorIsKept(t *testing.T) {
	c, tx := newController(t, DefaultConfig())
	tx.err = errors.New("device gone")

	c.PowerOn()
	assert.Error(t, c.Err())
	assert.Equal(t, uint64(0), c.LastFrame().Frames)

	tx.err = nil
	c.ToggleSwing()
	assert.NoError(t, c.Err())
}
