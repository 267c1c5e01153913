// internal/config/normalize.go
package config

import (
	"github.com/tamzrod/toyotomi-remote/internal/lircdev"
	"github.com/tamzrod/toyotomi-remote/internal/protocol"
	"github.com/tamzrod/toyotomi-remote/internal/remote"
	"github.com/tamzrod/toyotomi-remote/internal/status"
)

// Defaults applied by Normalize.
const (
	DefaultPollIntervalMs = 500
	DefaultTimeoutMs      = 1000
	DefaultBaudRate       = 9600
	DefaultLogLevel       = "info"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Bridge.LogLevel == "" {
		cfg.Bridge.LogLevel = DefaultLogLevel
	}
	if cfg.Bridge.StatusMemory.TimeoutMs == 0 {
		cfg.Bridge.StatusMemory.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.Bridge.StatusMemory.BaudRate == 0 {
		cfg.Bridge.StatusMemory.BaudRate = DefaultBaudRate
	}

	for ui := range cfg.Bridge.Units {
		u := &cfg.Bridge.Units[ui]

		// ------------------------------------------------------------
		// REMOTE
		// ------------------------------------------------------------

		// An absent temperature means the power-up default, anything else
		// is clamped the same way the controller would.
		if u.Remote.Temperature == 0 {
			u.Remote.Temperature = protocol.DefaultTemperature
		} else {
			u.Remote.Temperature = protocol.ClampTemperature(u.Remote.Temperature)
		}
		u.Remote.Pin = remote.NormalizePin(u.Remote.Pin)

		// ------------------------------------------------------------
		// TRANSMITTER
		// ------------------------------------------------------------

		if u.Transmitter.Driver == "" {
			u.Transmitter.Driver = DriverLirc
		}
		if u.Transmitter.Driver == DriverLirc {
			def := lircdev.DefaultConfig()
			if u.Transmitter.Device == "" {
				u.Transmitter.Device = def.Path
			}
			if u.Transmitter.DutyCycle == 0 {
				u.Transmitter.DutyCycle = def.DutyCycle
			}
		}

		// ------------------------------------------------------------
		// SOURCE + POLL
		// ------------------------------------------------------------

		if u.Source != nil {
			if u.Source.TimeoutMs == 0 {
				u.Source.TimeoutMs = DefaultTimeoutMs
			}
			if u.Source.BaudRate == 0 {
				u.Source.BaudRate = DefaultBaudRate
			}
			if u.Poll.IntervalMs == 0 {
				u.Poll.IntervalMs = DefaultPollIntervalMs
			}
		}

		// ------------------------------------------------------------
		// STATUS (OPT-IN)
		// ------------------------------------------------------------

		if u.Status == nil {
			continue
		}

		// ASCII already validated
		if len(u.Status.DeviceName) > status.DeviceNameMaxChars {
			u.Status.DeviceName = u.Status.DeviceName[:status.DeviceNameMaxChars]
		}
		if u.Status.DeviceName == "" {
			u.Status.DeviceName = u.ID
			if len(u.Status.DeviceName) > status.DeviceNameMaxChars {
				u.Status.DeviceName = u.Status.DeviceName[:status.DeviceNameMaxChars]
			}
		}
	}
}
