// internal/config/load.go
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/toyotomi-remote/internal/protocol"
	"github.com/tamzrod/toyotomi-remote/internal/remote"
)

// Load reads and decodes a YAML configuration file.
// Unknown keys are rejected. No validation is performed.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML document.
func Parse(raw []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

// Build converts the named enumerations into a remote.Config.
// Empty names select the remote defaults.
func (r RemoteConfig) Build() (remote.Config, error) {
	out := remote.DefaultConfig()
	out.Power = r.Power
	out.Pin = r.Pin
	out.Temperature = r.Temperature

	var err error
	if r.Mode != "" {
		if out.Mode, err = protocol.ParseMode(r.Mode); err != nil {
			return out, err
		}
	}
	if r.FanSpeed != "" {
		if out.FanSpeed, err = protocol.ParseFanSpeed(r.FanSpeed); err != nil {
			return out, err
		}
	}
	if out.TimerOn, err = protocol.ParseTimer(r.TimerOn); err != nil {
		return out, err
	}
	if out.TimerOff, err = protocol.ParseTimer(r.TimerOff); err != nil {
		return out, err
	}
	return out, nil
}
