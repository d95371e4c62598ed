package peripherals

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

var testROM = []byte{0xA1, 0x23, 0x00, 0xE0, 0x12, 0x00}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadCartridgePlain(t *testing.T) {
	path := writeTempFile(t, "game.ch8", testROM)

	cart, err := LoadCartridge(path, log.NewTestLogger(t))
	assert.NoError(t, err)
	assert.Equal(t, testROM, cart.ROM())
	assert.Equal(t, len(testROM), cart.Size())
}

func TestLoadCartridgeGzip(t *testing.T) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(testROM)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	path := writeTempFile(t, "game.ch8.gz", buf.Bytes())

	cart, err := LoadCartridge(path, log.NewTestLogger(t))
	assert.NoError(t, err)
	assert.Equal(t, testROM, cart.ROM())
}

func TestLoadCartridgeZip(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("game.ch8")
	assert.NoError(t, err)
	_, err = f.Write(testROM)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	path := writeTempFile(t, "game.zip", buf.Bytes())

	cart, err := LoadCartridge(path, log.NewTestLogger(t))
	assert.NoError(t, err)
	assert.Equal(t, testROM, cart.ROM())
}

func TestLoadCartridgeEmpty(t *testing.T) {
	path := writeTempFile(t, "empty.ch8", nil)

	_, err := LoadCartridge(path, log.NewTestLogger(t))
	assert.True(t, errors.Is(err, ErrEmptyROM))
}

func TestLoadCartridgeMissing(t *testing.T) {
	_, err := LoadCartridge(filepath.Join(t.TempDir(), "nope.ch8"), log.NewTestLogger(t))
	assert.Error(t, err)
}
