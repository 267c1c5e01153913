// internal/poller/builder.go
package poller

import (
	"log/slog"
	"time"

	cfg "github.com/tamzrod/toyotomi-remote/internal/config"
	pmodbus "github.com/tamzrod/toyotomi-remote/internal/poller/modbus"
)

// Build constructs a Poller for the unit's desired-state block and wires
// the Modbus client lifecycle. The returned closer releases the client.
// The unit must have a source.
func Build(u cfg.UnitConfig, quantity uint16, logger *slog.Logger) (*Poller, func() error, error) {
	src := *u.Source

	// client factory: ONE attempt per call
	factory := func() (Client, error) {
		return pmodbus.New(pmodbus.Config{
			Endpoint: src.Endpoint,
			UnitID:   src.UnitID,
			Timeout:  time.Duration(src.TimeoutMs) * time.Millisecond,
			BaudRate: src.BaudRate,
		})
	}

	// initial client (fail fast at startup)
	client, err := factory()
	if err != nil {
		return nil, nil, err
	}

	p, err := New(
		Config{
			UnitID:   u.ID,
			Interval: time.Duration(u.Poll.IntervalMs) * time.Millisecond,
			Block: ReadBlock{
				Address:  src.Address,
				Quantity: quantity,
			},
		},
		client,
		factory,
		logger,
	)
	if err != nil {
		return nil, nil, err
	}

	return p, p.Close, nil
}
