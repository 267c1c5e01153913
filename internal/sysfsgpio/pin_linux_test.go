//go:build linux

package sysfsgpio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// fakeRoot lays out what the kernel would create after exporting line.
func fakeRoot(t *testing.T, line string) string {
	root := t.TempDir()
	dir := filepath.Join(root, "gpio"+line)
	assert.NoError(t, os.MkdirAll(dir, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "direction"), []byte("in"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "value"), []byte("1"), 0o644))
	return root
}

func read(t *testing.T, path string) string {
	b, err := os.ReadFile(path)
	assert.NoError(t, err)
	return string(b)
}

func TestOpen_ConfiguresOutputLow(t *testing.T) {
	root := fakeRoot(t, "17")

	p, err := open(root, 17)
	assert.NoError(t, err)

	assert.Equal(t, "out", read(t, filepath.Join(root, "gpio17", "direction")))
	assert.Equal(t, "0", read(t, filepath.Join(root, "gpio17", "value")))

	p.High()
	assert.NoError(t, p.Err())
	assert.Equal(t, "1", read(t, filepath.Join(root, "gpio17", "value")))

	assert.NoError(t, p.Close())
	assert.Equal(t, "0", read(t, filepath.Join(root, "gpio17", "value")))
}

func TestOpen_MissingLine(t *testing.T) {
	_, err := open(t.TempDir(), 4)
	assert.Error(t, err)
}

func TestOpen_NegativeLine(t *testing.T) {
	_, err := open(t.TempDir(), -1)
	assert.Error(t, err)
}

func TestCritical_Restores(t *testing.T) {
	restore := Critical()
	restore()
}
