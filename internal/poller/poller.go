// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Client abstracts the Modbus operation the poller needs.
type Client interface {
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
}

// Factory makes one connection attempt per call.
type Factory func() (Client, error)

// Config is the minimal runtime config the poller needs.
type Config struct {
	UnitID   string
	Interval time.Duration
	Block    ReadBlock
}

// Poller is a dumb, clock-driven reader.
// A client that fails is discarded; the factory is asked for a new one on
// the next cycle.
type Poller struct {
	cfg     Config
	client  Client
	factory Factory
	logger  *slog.Logger
}

// New creates a poller with immutable config. client may be nil, in which
// case the first cycle connects through factory.
func New(cfg Config, client Client, factory Factory, logger *slog.Logger) (*Poller, error) {
	if cfg.UnitID == "" {
		return nil, errors.New("poller: unit id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if cfg.Block.Quantity == 0 {
		return nil, errors.New("poller: read block quantity must be > 0")
	}
	if client == nil && factory == nil {
		return nil, errors.New("poller: client or factory required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{cfg: cfg, client: client, factory: factory, logger: logger}, nil
}

// PollOnce performs exactly one poll cycle.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{
		UnitID: p.cfg.UnitID,
		At:     time.Now(),
	}

	if p.client == nil {
		if p.factory == nil {
			res.Err = errors.New("poller: no client")
			return res
		}
		c, err := p.factory()
		if err != nil {
			res.Err = fmt.Errorf("poller: connect: %w", err)
			return res
		}
		p.logger.Info("source connected")
		p.client = c
	}

	regs, err := p.client.ReadHoldingRegisters(p.cfg.Block.Address, p.cfg.Block.Quantity)
	if err != nil {
		res.Err = err
		if p.factory != nil {
			p.drop()
		}
		return res
	}
	if len(regs) != int(p.cfg.Block.Quantity) {
		res.Err = fmt.Errorf("poller: short read: got %d registers, want %d", len(regs), p.cfg.Block.Quantity)
		return res
	}

	res.Registers = regs
	return res
}

// Close releases the current client, if any.
func (p *Poller) Close() error {
	if c, ok := p.client.(io.Closer); ok {
		p.client = nil
		return c.Close()
	}
	p.client = nil
	return nil
}

func (p *Poller) drop() {
	if err := p.Close(); err != nil {
		p.logger.Debug("source close failed", "err", err)
	}
}
