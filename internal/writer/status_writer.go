// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/toyotomi-remote/internal/status"
)

// deviceStatusWriter is the concrete implementation used by the bridge.
type deviceStatusWriter struct {
	plan *StatusPlan
	cli  endpointClient

	needFull bool
	last     []uint16
	nameRegs []uint16
}

// NewDeviceStatusWriter builds a status writer if status is enabled for the unit.
// If plan is nil, status is disabled.
func NewDeviceStatusWriter(plan *StatusPlan, cli endpointClient) (StatusWriter, bool) {
	if plan == nil {
		return nil, false
	}

	return &deviceStatusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first write
		nameRegs: status.EncodeDeviceName(plan.DeviceName),
	}, true
}

// WriteStatus delivers a status snapshot into status memory.
// On any write failure, the next call will re-assert the full block.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil || sw.plan == nil {
		return errors.New("status writer: disabled")
	}
	if sw.cli == nil {
		return fmt.Errorf("status writer: missing client for endpoint %s", sw.plan.Endpoint)
	}

	regs := status.Encode(s)
	copy(regs[status.SlotDeviceNameStart:], sw.nameRegs)

	baseAddr := sw.baseAddr()

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		if err := sw.cli.WriteRegisters(sw.plan.UnitID, baseAddr, regs); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = regs
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: one write per run of changed registers
	// ------------------------------------------------------------
	var errs []string

	for _, r := range changedRuns(sw.last, regs) {
		if err := sw.cli.WriteRegisters(
			sw.plan.UnitID,
			baseAddr+uint16(r.start),
			regs[r.start:r.end],
		); err != nil {
			errs = append(errs, fmt.Sprintf("slots %d-%d write failed: %v", r.start, r.end-1, err))
		}
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt; re-assert on next call.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	sw.last = regs
	return nil
}

func (sw *deviceStatusWriter) baseAddr() uint16 {
	// Each unit owns a fixed SlotsPerDevice block.
	return sw.plan.Slot * status.SlotsPerDevice
}

type run struct{ start, end int }

// changedRuns returns the half-open index ranges where prev and next differ.
func changedRuns(prev, next []uint16) []run {
	var out []run
	start := -1
	for i := range next {
		differs := i >= len(prev) || prev[i] != next[i]
		switch {
		case differs && start < 0:
			start = i
		case !differs && start >= 0:
			out = append(out, run{start, i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, run{start, len(next)})
	}
	return out
}
