// internal/status/encode.go
package status

// Encode converts a Snapshot into a status block without the device name.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerDevice)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode
	regs[SlotSecondsInError] = s.SecondsInError

	if s.Power {
		regs[SlotPower] = 1
	}
	regs[SlotMode] = s.Mode
	regs[SlotTemperature] = s.Temperature
	regs[SlotFanSpeed] = s.FanSpeed
	regs[SlotTimerOn] = s.TimerOn
	regs[SlotTimerOff] = s.TimerOff

	regs[SlotNormalHi], regs[SlotNormalLo] = split(s.Normal)
	regs[SlotInvertedHi], regs[SlotInvertedLo] = split(s.Inverted)
	regs[SlotFramesHi], regs[SlotFramesLo] = split(s.Frames)

	return regs
}

// EncodeDeviceName packs up to 16 ASCII characters into 8 registers.
// Each register stores two bytes, high byte first. Non printable bytes
// become '?'.
func EncodeDeviceName(name string) []uint16 {
	out := make([]uint16, SlotDeviceNameSlots)

	b := []byte(name)
	if len(b) > DeviceNameMaxChars {
		b = b[:DeviceNameMaxChars]
	}

	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < DeviceNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}

func split(v uint32) (hi, lo uint16) {
	return uint16(v >> 16), uint16(v)
}
