// internal/poller/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/toyotomi-remote/internal/endpoint"
)

// Client implements poller.Client over Modbus TCP or RTU.
// This adapter is geometry-only: it issues reads and unpacks raw responses.
type Client struct {
	handler endpoint.Handler
	client  modbus.Client
}

// Config is minimal transport config.
type Config struct {
	Endpoint string // host:port, tcp://host:port or rtu:///dev/ttyX
	UnitID   uint8
	Timeout  time.Duration
	BaudRate int // rtu only
}

// New creates a connected Modbus client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus client: endpoint required")
	}

	ep, err := endpoint.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("modbus client: %w", err)
	}

	h := endpoint.NewHandler(ep, endpoint.Options{
		UnitID:   cfg.UnitID,
		Timeout:  cfg.Timeout,
		BaudRate: cfg.BaudRate,
	})
	if err := h.Connect(); err != nil {
		return nil, err
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// Close closes the underlying connection or serial port.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// ---- poller.Client interface ----

func (c *Client) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	if qty == 0 {
		return nil, nil
	}
	raw, err := c.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	if len(raw) != 2*int(qty) {
		return nil, fmt.Errorf("modbus: read-registers payload is %d bytes, want %d", len(raw), 2*int(qty))
	}
	return unpackRegisters(raw), nil
}

// ---- helpers (pure geometry) ----

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
