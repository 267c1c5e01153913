// internal/writer/builder.go
package writer

import (
	"errors"
	"time"

	cfg "github.com/tamzrod/toyotomi-remote/internal/config"
	wmodbus "github.com/tamzrod/toyotomi-remote/internal/writer/modbus"
)

// BuildStatusPlan converts one unit config into a StatusPlan.
// It returns nil when the unit did not opt in to status.
// Assumes config has already passed validation.
func BuildStatusPlan(u cfg.UnitConfig, mem cfg.StatusMemoryConfig) *StatusPlan {
	if u.Status == nil {
		return nil
	}
	return &StatusPlan{
		Endpoint:   mem.Endpoint,
		UnitID:     u.Status.UnitID,
		Slot:       u.Status.Slot,
		DeviceName: u.Status.DeviceName,
	}
}

// BuildEndpointClient creates the single status memory client shared by
// every unit.
func BuildEndpointClient(mem cfg.StatusMemoryConfig) (*wmodbus.EndpointClient, error) {
	if mem.Endpoint == "" {
		return nil, errors.New("writer: status memory endpoint required")
	}
	return wmodbus.NewEndpointClient(wmodbus.Config{
		Endpoint: mem.Endpoint,
		Timeout:  time.Duration(mem.TimeoutMs) * time.Millisecond,
		BaudRate: mem.BaudRate,
	})
}
