// internal/writer/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/toyotomi-remote/internal/endpoint"
)

// MaxWriteRegisters is the FC 16 limit for one request.
const MaxWriteRegisters = 123

// EndpointClient is a single connection to the status memory, over TCP or
// RTU. Every unit's status block shares it, each write re-addressing the
// handler, so requests are serialized.
// A dropped TCP connection is re-established by the handler on the next
// write.
type EndpointClient struct {
	mu       sync.Mutex
	endpoint endpoint.Endpoint
	handler  endpoint.Handler
	client   modbus.Client
}

type Config struct {
	Endpoint string // host:port, tcp://host:port or rtu:///dev/ttyX
	Timeout  time.Duration
	BaudRate int // rtu only
}

func NewEndpointClient(cfg Config) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("writer modbus: endpoint required")
	}

	ep, err := endpoint.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("writer modbus: %w", err)
	}

	h := endpoint.NewHandler(ep, endpoint.Options{
		Timeout:  cfg.Timeout,
		BaudRate: cfg.BaudRate,
	})
	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("writer modbus: connect %s: %w", ep, err)
	}

	return newEndpointClient(ep, h, modbus.NewClient(h)), nil
}

func newEndpointClient(ep endpoint.Endpoint, h endpoint.Handler, c modbus.Client) *EndpointClient {
	return &EndpointClient{endpoint: ep, handler: h, client: c}
}

// Endpoint is the parsed status memory address.
func (c *EndpointClient) Endpoint() endpoint.Endpoint { return c.endpoint }

func (c *EndpointClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// WriteRegisters writes regs at addr on unitID, split into as many FC 16
// requests as the protocol limit needs. It stops at the first failure.
func (c *EndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	if len(regs) == 0 {
		return nil
	}
	if int(addr)+len(regs) > 0x10000 {
		return fmt.Errorf("writer modbus: %d registers at %d overrun the address space", len(regs), addr)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	endpoint.SetUnitID(c.handler, unitID)

	for len(regs) > 0 {
		n := len(regs)
		if n > MaxWriteRegisters {
			n = MaxWriteRegisters
		}
		if _, err := c.client.WriteMultipleRegisters(addr, uint16(n), packRegisters(regs[:n])); err != nil {
			return fmt.Errorf("writer modbus: unit %d addr %d: %w", unitID, addr, err)
		}
		addr += uint16(n)
		regs = regs[n:]
	}
	return nil
}

func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
