//go:build !linux

package sysfsgpio

type Pin struct{}

func Open(line int) (*Pin, error) { return nil, ErrUnsupported }

func (p *Pin) High()        {}
func (p *Pin) Low()         {}
func (p *Pin) Err() error   { return nil }
func (p *Pin) Close() error { return nil }
