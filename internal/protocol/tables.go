// internal/protocol/tables.go
package protocol

// Word layout constants.
// These values are fixed by the receiver and MUST NOT be configurable.

// ---- NORMAL WORD ----

const (
	wordMask = 0xFFFFFF

	headerMask      = 0xFF8000
	temperatureMask = 0x00000F
	modeMask        = 0x000030
	fanSpeedMask    = 0x000700
	timerOffMask    = 0x0078C0

	// header is the brand pattern carried by every composed frame.
	header Word = 0x4D8000
)

// ---- INVERTED WORD (timers armed) ----

const (
	// invertedMask selects the bits that stay complemented.
	invertedMask = 0xFFFF00

	// timerFlagMask is copied verbatim from the normal word.
	timerFlagMask = 0x000001

	onTimerMask   = 0x000080
	onTimerActive = 0x000080

	timerOnMask = 0x0000FE
	noOnTimer   = 0x0000FE
)

// ---- FIXED COMMANDS ----

// Stateless toggle commands. The receiver matches these exactly; they are
// never combined with state fields.
const (
	CommandPowerOff     Word = 0x4DDE07
	CommandAirDirection Word = 0x4DF007
	CommandSwing        Word = 0x4DD607
	CommandCleanAir     Word = 0xADAFC5
	CommandLEDDisplay   Word = 0xADAFA5
	CommandTurbo        Word = 0xADAF45
)

// ---- FIELD CODES ----

// noTemperatureSlot is the temperature table slot used in fan mode.
const noTemperatureSlot = 14

var temperatureCodes = [15]Word{
	0x000000, 0x000008, 0x00000C, 0x000004, 0x000006,
	0x00000E, 0x00000A, 0x000002, 0x000003, 0x00000B,
	0x000009, 0x000001, 0x000005, 0x00000D, 0x000007,
}

var modeCodes = [5]Word{0x000010, 0x000000, 0x000020, 0x000030, 0x000020}

var fanSpeedCodes = [5]Word{0x000000, 0x000500, 0x000100, 0x000200, 0x000400}

var timerOnCodes = [TimerSteps]Word{
	0x000040, 0x000000, 0x000040, 0x000020, 0x000060,
	0x000010, 0x000050, 0x000030, 0x000070, 0x000008,
	0x000048, 0x000028, 0x000068, 0x000018, 0x000058,
	0x000038, 0x000078, 0x000004, 0x000044, 0x000024,
	0x000064, 0x000054, 0x000074, 0x00004C, 0x00006C,
	0x00005C, 0x00007C, 0x000042, 0x000062, 0x000052,
	0x000072, 0x00004A, 0x00006A, 0x00005A, 0x00007A,
}

var timerOffCodes = [TimerSteps]Word{
	0x007800, 0x000000, 0x004000, 0x002000, 0x006000,
	0x001000, 0x005000, 0x003000, 0x007000, 0x000800,
	0x004800, 0x002800, 0x006800, 0x001800, 0x005800,
	0x003800, 0x007800, 0x000080, 0x004080, 0x002080,
	0x006080, 0x005080, 0x007080, 0x004880, 0x006880,
	0x005880, 0x007880, 0x004040, 0x006040, 0x005040,
	0x007040, 0x004840, 0x006840, 0x005840, 0x007840,
}

// Lookups fall back to a fixed slot instead of faulting on values the
// controller should never hand over.

func temperatureCode(t int) Word {
	switch {
	case t == NoTemperature:
		return temperatureCodes[noTemperatureSlot]
	case t >= MinTemperature && t <= MaxTemperature:
		return temperatureCodes[t-MinTemperature]
	default:
		return temperatureCodes[0]
	}
}

func modeCode(m Mode) Word {
	if !m.Valid() {
		m = ModeAuto
	}
	return modeCodes[m]
}

func fanSpeedCode(f FanSpeed) Word {
	if !f.Valid() {
		f = FanDefault
	}
	return fanSpeedCodes[f]
}

func timerOnCode(t TimerTime) Word {
	if !t.Valid() {
		t = Hour000
	}
	return timerOnCodes[t]
}

func timerOffCode(t TimerTime) Word {
	if !t.Valid() {
		t = Hour000
	}
	return timerOffCodes[t]
}
