package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNewMemoryFontRegion(t *testing.T) {
	m := NewMemory()

	// glyph 0
	assert.Equal(t, byte(0xF0), m.Load(0))
	assert.Equal(t, byte(0x90), m.Load(1))
	// glyph 1 starts one glyph in
	assert.Equal(t, byte(0x20), m.Load(FontGlyphSize))
	// glyph F, last byte
	assert.Equal(t, byte(0x80), m.Load(16*FontGlyphSize-1))
	// rest of memory is zero
	assert.Equal(t, byte(0), m.Load(16*FontGlyphSize))
	assert.Equal(t, byte(0), m.Load(ProgramStart))
}

func TestMemoryReset(t *testing.T) {
	m := NewMemory()
	rom := []byte{0xA1, 0x23, 0x00, 0xE0}

	assert.NoError(t, m.Reset(rom, len(rom)))
	assert.Equal(t, byte(0xA1), m.Load(ProgramStart))
	assert.Equal(t, byte(0x23), m.Load(ProgramStart+1))
	assert.Equal(t, byte(0xE0), m.Load(ProgramStart+3))

	// fonts survive the reset
	assert.Equal(t, byte(0xF0), m.Load(0))

	// a second reset wipes the previous program
	assert.NoError(t, m.Reset([]byte{0x12, 0x00}, 2))
	assert.Equal(t, byte(0), m.Load(ProgramStart+2))
}

func TestMemoryResetOversized(t *testing.T) {
	m := NewMemory()
	rom := make([]byte, MaxROMSize+10)
	for i := range rom {
		rom[i] = 0xAB
	}

	err := m.Reset(rom, len(rom))
	assert.Error(t, err)

	// the in-capacity prefix is still installed
	assert.Equal(t, byte(0xAB), m.Load(MemorySize-1))
}

func TestMemoryStoreLoad(t *testing.T) {
	m := NewMemory()
	m.Store(0x300, 0x42)
	assert.Equal(t, byte(0x42), m.Load(0x300))
}
