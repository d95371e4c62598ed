// Package peripherals provides the hardware-facing drivers: cartridge
// loading, display rendering, keyboard input and the beeper.
package peripherals

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
	"github.com/cespare/xxhash"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/chip8"
)

// ErrEmptyROM is returned when a cartridge file holds no program bytes.
var ErrEmptyROM = errors.New("rom contains no data")

// Cartridge is a program image read from disk.
type Cartridge struct {
	rom []byte
}

var _ chip8.Cartridge = (*Cartridge)(nil)

// ROM returns the program bytes.
func (c *Cartridge) ROM() []byte {
	return c.rom
}

// Size returns the program length in bytes.
func (c *Cartridge) Size() int {
	return len(c.rom)
}

// LoadCartridge reads a ROM file, transparently decompressing .gz, .zip and
// .7z archives, and logs the image size and digest.
func LoadCartridge(filename string, logger *log.Logger) (*Cartridge, error) {
	rom, err := readROM(filename)
	if err != nil {
		return nil, fmt.Errorf("reading rom %s: %w", filename, err)
	}
	if len(rom) == 0 {
		return nil, ErrEmptyROM
	}

	logger.Info("cartridge loaded",
		log.String("file", filepath.Base(filename)),
		log.Int("bytes", len(rom)),
		log.String("digest", fmt.Sprintf("%016x", xxhash.Sum64(rom))),
	)
	return &Cartridge{rom: rom}, nil
}

// readROM loads the file and performs decompression if necessary. Archives
// yield their first entry.
func readROM(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var decoder io.Reader
	switch filepath.Ext(filename) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(r.File) == 0 {
			return nil, ErrEmptyROM
		}
		decoder, err = r.File[0].Open()
		if err != nil {
			return nil, err
		}
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(r.File) == 0 {
			return nil, ErrEmptyROM
		}
		decoder, err = r.File[0].Open()
		if err != nil {
			return nil, err
		}
	default:
		return data, nil
	}

	return io.ReadAll(decoder)
}
