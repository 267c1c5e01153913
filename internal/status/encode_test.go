// internal/status/encode_test.go
package status

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestEncode_Layout(t *testing.T) {
	regs := Encode(Snapshot{
		Health:         HealthError,
		LastErrorCode:  ErrorTransmit,
		SecondsInError: 9,
		Power:          true,
		Mode:           1,
		Temperature:    24,
		FanSpeed:       4,
		TimerOn:        2,
		TimerOff:       20,
		Normal:         0x4DFC02,
		Inverted:       0xB203FD,
		Frames:         0x00012345,
	})

	assert.Equal(t, SlotsPerDevice, len(regs))
	assert.Equal(t, []uint16{
		HealthError, ErrorTransmit, 9,
		1, 1, 24, 4, 2, 20,
		0x004D, 0xFC02, 0x00B2, 0x03FD,
		0x0001, 0x2345,
		0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}, regs)
}

func TestEncode_PowerOff(t *testing.T) {
	regs := Encode(Snapshot{})
	assert.Equal(t, uint16(0), regs[SlotPower])
}

func TestEncodeDeviceName(t *testing.T) {
	regs := EncodeDeviceName("AC-1")
	assert.Equal(t, []uint16{0x4143, 0x2D31, 0, 0, 0, 0, 0, 0}, regs)

	regs = EncodeDeviceName("0123456789abcdefXYZ")
	assert.Equal(t, uint16(0x6566), regs[SlotDeviceNameSlots-1])

	regs = EncodeDeviceName("a\tb")
	assert.Equal(t, []uint16{0x613F, 0x6200, 0, 0, 0, 0, 0, 0}, regs)
}
