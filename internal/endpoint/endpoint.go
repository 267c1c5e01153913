// internal/endpoint/endpoint.go

// Package endpoint turns configured Modbus endpoints into goburrow
// transport handlers. The poller and the status writer share it, so both
// accept the same endpoint forms:
//
//	host:port            Modbus TCP
//	tcp://host:port      Modbus TCP
//	rtu:///dev/ttyUSB0   Modbus RTU, 8N1
package endpoint

import (
	"fmt"
	"strings"
	"time"

	"github.com/goburrow/modbus"
)

type Transport string

const (
	TCP Transport = "tcp"
	RTU Transport = "rtu"
)

// Endpoint is a parsed endpoint string.
type Endpoint struct {
	Transport Transport
	Address   string // host:port or serial device path
}

func (e Endpoint) String() string {
	return string(e.Transport) + "://" + e.Address
}

// Parse splits ep into its transport and address. A bare address is TCP.
func Parse(ep string) (Endpoint, error) {
	var e Endpoint
	switch {
	case strings.HasPrefix(ep, "rtu://"):
		e = Endpoint{Transport: RTU, Address: strings.TrimPrefix(ep, "rtu://")}
	case strings.HasPrefix(ep, "tcp://"):
		e = Endpoint{Transport: TCP, Address: strings.TrimPrefix(ep, "tcp://")}
	case strings.Contains(ep, "://"):
		return Endpoint{}, fmt.Errorf("endpoint: unsupported scheme in %q", ep)
	default:
		e = Endpoint{Transport: TCP, Address: ep}
	}
	if e.Address == "" {
		return Endpoint{}, fmt.Errorf("endpoint: empty address in %q", ep)
	}
	return e, nil
}

// ---- handlers ----

// Handler is a goburrow transport that can be opened and closed.
type Handler interface {
	modbus.ClientHandler
	Connect() error
	Close() error
}

// Options are the transport settings. Zero values keep goburrow defaults.
type Options struct {
	UnitID   uint8
	Timeout  time.Duration
	BaudRate int // rtu only
}

// NewHandler builds an unconnected handler for e.
func NewHandler(e Endpoint, o Options) Handler {
	if e.Transport == RTU {
		h := modbus.NewRTUClientHandler(e.Address)
		if o.BaudRate > 0 {
			h.BaudRate = o.BaudRate
		}
		h.DataBits = 8
		h.Parity = "N"
		h.StopBits = 1
		h.SlaveId = o.UnitID
		if o.Timeout > 0 {
			h.Timeout = o.Timeout
		}
		return h
	}

	h := modbus.NewTCPClientHandler(e.Address)
	h.SlaveId = o.UnitID
	if o.Timeout > 0 {
		h.Timeout = o.Timeout
	}
	return h
}

// SetUnitID re-addresses h. Callers sharing h must serialize around it.
func SetUnitID(h Handler, id uint8) {
	switch h := h.(type) {
	case *modbus.TCPClientHandler:
		h.SlaveId = id
	case *modbus.RTUClientHandler:
		h.SlaveId = id
	}
}
