//go:build linux

package sysfsgpio

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"
)

var (
	levelHigh = []byte{'1'}
	levelLow  = []byte{'0'}
)

// Pin is an exported sysfs GPIO line configured as an output.
// High and Low cannot return errors; the first failure is kept and
// reported by Err.
type Pin struct {
	line int
	fd   int
	err  error
}

// Open exports line if needed, makes it an output and drives it low.
func Open(line int) (*Pin, error) {
	return open(Root, line)
}

func open(root string, line int) (*Pin, error) {
	if line < 0 {
		return nil, fmt.Errorf("sysfsgpio: invalid line %d", line)
	}
	dir := filepath.Join(root, "gpio"+strconv.Itoa(line))

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.WriteFile(filepath.Join(root, "export"), []byte(strconv.Itoa(line)), 0); err != nil {
			return nil, fmt.Errorf("sysfsgpio: export %d: %w", line, err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "direction"), []byte("out"), 0); err != nil {
		return nil, fmt.Errorf("sysfsgpio: direction %d: %w", line, err)
	}

	fd, err := unix.Open(filepath.Join(dir, "value"), unix.O_WRONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("sysfsgpio: open value %d: %w", line, err)
	}

	p := &Pin{line: line, fd: fd}
	p.Low()
	if err := p.Err(); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return p, nil
}

func (p *Pin) High() { p.write(levelHigh) }
func (p *Pin) Low()  { p.write(levelLow) }

func (p *Pin) write(level []byte) {
	if p.err != nil {
		return
	}
	if _, err := unix.Pwrite(p.fd, level, 0); err != nil {
		p.err = fmt.Errorf("sysfsgpio: write line %d: %w", p.line, err)
	}
}

// Err returns and clears the first write failure since the last call.
func (p *Pin) Err() error {
	err := p.err
	p.err = nil
	return err
}

// Close drives the line low and releases it. The line stays exported.
func (p *Pin) Close() error {
	p.Low()
	return unix.Close(p.fd)
}
