// internal/writer/types.go
package writer

import "github.com/tamzrod/toyotomi-remote/internal/status"

// StatusPlan locates one unit's status block in status memory.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	Slot       uint16
	DeviceName string
}

// StatusWriter is the delivery-only contract for remote status.
// It receives a snapshot and writes it verbatim.
// No logic, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// endpointClient is the exact contract the status writer uses.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}
