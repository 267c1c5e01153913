// internal/status/snapshot.go
package status

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16

	Power       bool
	Mode        uint16
	Temperature uint16
	FanSpeed    uint16
	TimerOn     uint16
	TimerOff    uint16

	Normal   uint32 // 24-bit
	Inverted uint32 // 24-bit
	Frames   uint32
}
