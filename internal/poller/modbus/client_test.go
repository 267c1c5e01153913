// internal/poller/modbus/client_test.go
package modbus

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestUnpackRegisters(t *testing.T) {
	assert.Equal(t, []uint16{0x0001, 0x1A2B}, unpackRegisters([]byte{0x00, 0x01, 0x1A, 0x2B}))
}

func TestNew_RequiresEndpoint(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNew_RejectsScheme(t *testing.T) {
	_, err := New(Config{Endpoint: "udp://plc:502"})
	assert.Error(t, err)
}
