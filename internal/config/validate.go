// internal/config/validate.go
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tamzrod/toyotomi-remote/internal/endpoint"
	"github.com/tamzrod/toyotomi-remote/internal/status"
)

// desiredRegisters is the size of the desired-state block a source exposes.
const desiredRegisters = 7

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil configuration")
	}

	b := cfg.Bridge

	if b.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(b.LogLevel)); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
	}

	if b.StatusMemory.Endpoint != "" {
		if _, err := endpoint.Parse(b.StatusMemory.Endpoint); err != nil {
			return fmt.Errorf("status_memory: %w", err)
		}
	}

	if len(b.Units) == 0 {
		return fmt.Errorf("bridge: at least one unit is required")
	}

	// ------------------------------------------------------------
	// UNIT IDENTITY + REMOTE STATE
	// ------------------------------------------------------------

	seen := make(map[string]struct{}, len(b.Units))

	for _, u := range b.Units {
		if u.ID == "" {
			return fmt.Errorf("unit: id is required")
		}
		if strings.ContainsAny(u.ID, "/ ") {
			return fmt.Errorf("unit %q: id must not contain '/' or spaces", u.ID)
		}
		if _, dup := seen[u.ID]; dup {
			return fmt.Errorf("unit %q: duplicate id", u.ID)
		}
		seen[u.ID] = struct{}{}

		if _, err := u.Remote.Build(); err != nil {
			return fmt.Errorf("unit %q: remote: %w", u.ID, err)
		}

		switch u.Transmitter.Driver {
		case "", DriverLirc, DriverDump:
		case DriverGPIO:
			if u.Transmitter.GPIOLine == nil || *u.Transmitter.GPIOLine < 0 {
				return fmt.Errorf("unit %q: gpio driver needs a gpio_line >= 0", u.ID)
			}
		default:
			return fmt.Errorf(
				"unit %q: unknown transmitter driver %q (want %s, %s or %s)",
				u.ID,
				u.Transmitter.Driver,
				DriverLirc,
				DriverGPIO,
				DriverDump,
			)
		}
		if u.Transmitter.DutyCycle < 0 || u.Transmitter.DutyCycle > 100 {
			return fmt.Errorf("unit %q: duty_cycle must be within 0-100", u.ID)
		}

		if u.Source != nil {
			if u.Source.Endpoint == "" {
				return fmt.Errorf("unit %q: source endpoint is required", u.ID)
			}
			if _, err := endpoint.Parse(u.Source.Endpoint); err != nil {
				return fmt.Errorf("unit %q: source: %w", u.ID, err)
			}
			if int(u.Source.Address)+desiredRegisters > 0x10000 {
				return fmt.Errorf(
					"unit %q: source address %d leaves no room for %d registers",
					u.ID,
					u.Source.Address,
					desiredRegisters,
				)
			}
			if u.Source.TimeoutMs < 0 || u.Poll.IntervalMs < 0 {
				return fmt.Errorf("unit %q: timeouts and intervals must not be negative", u.ID)
			}
		}
	}

	// ------------------------------------------------------------
	// STATUS BLOCK VALIDATION (PER-UNIT, OPT-IN)
	// ------------------------------------------------------------

	// key = status unit_id | slot
	statusOwner := make(map[string]string)

	for _, u := range b.Units {
		if u.Status == nil {
			continue
		}

		// status requires a status memory
		if b.StatusMemory.Endpoint == "" {
			return fmt.Errorf(
				"unit %q: status is set but status_memory.endpoint is empty",
				u.ID,
			)
		}

		// device_name sanity (ASCII only)
		for i := 0; i < len(u.Status.DeviceName); i++ {
			if u.Status.DeviceName[i] > 0x7F {
				return fmt.Errorf(
					"unit %q: device_name must contain ASCII characters only",
					u.ID,
				)
			}
		}

		if (int(u.Status.Slot)+1)*status.SlotsPerDevice > 0x10000 {
			return fmt.Errorf("unit %q: status slot %d is out of range", u.ID, u.Status.Slot)
		}

		key := fmt.Sprintf("%d|%d", u.Status.UnitID, u.Status.Slot)
		if prev, exists := statusOwner[key]; exists {
			return fmt.Errorf(
				"status slot collision: unit_id=%d slot=%d used by units %q and %q",
				u.Status.UnitID,
				u.Status.Slot,
				prev,
				u.ID,
			)
		}
		statusOwner[key] = u.ID
	}

	return nil
}
