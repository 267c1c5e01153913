// internal/pulse/transmitter.go
package pulse

import (
	"fmt"
	"log/slog"

	"github.com/tamzrod/toyotomi-remote/internal/protocol"
)

// Driver puts a pulse train on the physical output line.
// Drive blocks until the whole train has been emitted.
type Driver interface {
	Drive(t Train) error
}

// Transmitter serializes bit sequences onto a Driver.
// There is no acknowledgment from the receiver: a nil error only means the
// waveform was emitted.
type Transmitter struct {
	driver Driver
	logger *slog.Logger
}

// NewTransmitter binds a transmitter to driver.
func NewTransmitter(driver Driver, logger *slog.Logger) *Transmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transmitter{driver: driver, logger: logger}
}

// Transmit emits header, payload and trailer for bits, twice when repeat
// is set. An empty payload still emits the framing.
func (tx *Transmitter) Transmit(bits []protocol.Bit, repeat bool) error {
	return tx.drive(BuildTrain(bits, repeat), "frame", "repeat", repeat)
}

// TransmitNoHeader emits payload and trailer without the header burst.
// Nothing in the controller sends such frames today; the sleep-mode frame
// of the receiver protocol would be one.
func (tx *Transmitter) TransmitNoHeader(bits []protocol.Bit) error {
	return tx.drive(BuildTrainNoHeader(bits), "headerless frame")
}

func (tx *Transmitter) drive(t Train, what string, attrs ...any) error {
	if err := tx.driver.Drive(t); err != nil {
		return fmt.Errorf("pulse: %s transmission failed: %w", what, err)
	}
	tx.logger.Debug("pulse train emitted",
		append([]any{"kind", what, "pulses", len(t), "duration", t.Duration()}, attrs...)...)
	return nil
}
