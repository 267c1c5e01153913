//go:build !linux

package lircdev

import "github.com/tamzrod/toyotomi-remote/internal/pulse"

// Device is unavailable outside linux.
type Device struct{}

func Open(cfg Config) (*Device, error) { return nil, ErrUnsupported }

func (d *Device) Drive(t pulse.Train) error { return ErrUnsupported }

func (d *Device) Close() error { return nil }
