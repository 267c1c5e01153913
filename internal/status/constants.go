// internal/status/constants.go
package status

// Remote Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of registers per unit.
const SlotsPerDevice = 24

// ---- HEALTH SLOTS ----

// SlotHealthCode holds the unit health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the last error code (see Error* below).
const SlotLastErrorCode = 1

// SlotSecondsInError holds the duration (in seconds) the unit has been in error.
const SlotSecondsInError = 2

// ---- APPLIANCE STATE SLOTS ----

// SlotPower is 1 while the remote believes the unit is on.
const SlotPower = 3

// SlotMode holds the mode index (auto=0 .. fan=4).
const SlotMode = 4

// SlotTemperature holds the set point in degrees, 0 in fan mode.
const SlotTemperature = 5

// SlotFanSpeed holds the fan speed index (none=0 .. high=4).
const SlotFanSpeed = 6

// SlotTimerOn and SlotTimerOff hold timer step indices (0 = disarmed).
const (
	SlotTimerOn  = 7
	SlotTimerOff = 8
)

// ---- LAST FRAME SLOTS ----

// The 24-bit words of the last frame, high register first.
const (
	SlotNormalHi   = 9
	SlotNormalLo   = 10
	SlotInvertedHi = 11
	SlotInvertedLo = 12
)

// SlotFramesHi and SlotFramesLo count frames sent, high register first.
const (
	SlotFramesHi = 13
	SlotFramesLo = 14
)

// ---- RESERVED ----

// Slot 15 is reserved for future use.
const SlotReserved = 15

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 16

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// MaxSecondsInError is where seconds_in_error saturates.
const MaxSecondsInError = 65535

// ---- HEALTH CODES ----

const (
	HealthUnknown uint16 = 0
	HealthOK      uint16 = 1
	HealthError   uint16 = 2
)

// ---- ERROR CODES ----

const (
	ErrorNone uint16 = 0

	// ErrorPoll is a desired-state read failure without an exception code.
	ErrorPoll uint16 = 1

	// ErrorTransmit is a failed IR transmission.
	ErrorTransmit uint16 = 2

	// ErrorPollException is ORed with the Modbus exception code of a
	// rejected desired-state read.
	ErrorPollException uint16 = 0x0100
)
