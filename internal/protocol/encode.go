// internal/protocol/encode.go
package protocol

import "fmt"

// Word is a 24-bit protocol word. Bits above bit 23 are ignored.
type Word uint32

func (w Word) String() string { return fmt.Sprintf("%06X", uint32(w)&wordMask) }

// Bit is one transmitted symbol, Zero or One.
type Bit uint8

const (
	Zero Bit = 0
	One  Bit = 1
)

// FrameBits is the number of symbols in one frame payload.
const FrameBits = 48

// State is the part of the appliance state carried by a composed frame.
// Temperature is NoTemperature in fan mode and FanSpeed is the effective
// speed (FanNone where the mode disallows fan control).
type State struct {
	Temperature int
	Mode        Mode
	FanSpeed    FanSpeed
	TimerOn     TimerTime
	TimerOff    TimerTime
}

// Frame is the normal word and its inverted companion.
type Frame struct {
	Normal   Word
	Inverted Word
}

func (f Frame) String() string { return f.Normal.String() + "/" + f.Inverted.String() }

// NormalWord composes the normal word for s.
// No IO. No side effects.
func NormalWord(s State) Word {
	return (temperatureMask & temperatureCode(s.Temperature)) |
		(modeMask & modeCode(s.Mode)) |
		(fanSpeedMask & fanSpeedCode(s.FanSpeed)) |
		(timerOffMask & timerOffCode(s.TimerOff)) |
		(headerMask & header)
}

// Compose builds the frame for a state change.
// With both timers disabled the inverted word is the plain complement;
// otherwise it carries the on-timer code and the timer-encoding flag.
func Compose(s State) Frame {
	normal := NormalWord(s)
	if !s.TimerOn.Active() && !s.TimerOff.Active() {
		return Frame{Normal: normal, Inverted: ^normal & wordMask}
	}

	inverted := (^normal & invertedMask) |
		(normal & timerFlagMask) |
		(onTimerMask & onTimerActive) |
		(timerOnMask & timerOnCode(s.TimerOn))
	if !s.TimerOn.Active() {
		inverted |= timerOnMask & noOnTimer
	}
	return Frame{Normal: normal, Inverted: inverted}
}

// ComposePowerOn builds the power-on frame for s. The receiver expects the
// plain complement here even while timers are armed.
func ComposePowerOn(s State) Frame {
	return CommandFrame(NormalWord(s))
}

// CommandFrame wraps a fixed command word.
func CommandFrame(w Word) Frame {
	w &= wordMask
	return Frame{Normal: w, Inverted: ^w & wordMask}
}

// Bits expands f into FrameBits symbols in transmission order: the bytes of
// both words interleaved from the most significant byte down, normal byte
// first, each byte sent least significant bit first.
func (f Frame) Bits() []Bit {
	bits := make([]Bit, 0, FrameBits)
	for shift := 16; shift >= 0; shift -= 8 {
		bits = appendByte(bits, byte(f.Normal>>shift))
		bits = appendByte(bits, byte(f.Inverted>>shift))
	}
	return bits
}

func appendByte(bits []Bit, b byte) []Bit {
	for i := 0; i < 8; i++ {
		bits = append(bits, Bit(b>>i&1))
	}
	return bits
}

// FormatBits renders bits as 0/1 characters grouped per byte.
func FormatBits(bits []Bit) string {
	buf := make([]byte, 0, len(bits)+len(bits)/8)
	for i, b := range bits {
		if i > 0 && i%8 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, '0'+byte(b&1))
	}
	return string(buf)
}
