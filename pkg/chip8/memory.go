package chip8

import "fmt"

// fontSprites holds the sixteen hexadecimal glyphs, five bytes each, loaded
// at address 0 so LD F, Vx can index them as glyph*FontGlyphSize.
var fontSprites = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4096-byte address space. Addresses below ProgramStart
// are reserved; the font glyphs occupy the start of that region.
type Memory struct {
	bytes [MemorySize]byte
}

// NewMemory returns a memory with the font glyphs installed and everything
// else zeroed.
func NewMemory() *Memory {
	m := &Memory{}
	copy(m.bytes[:], fontSprites[:])
	return m
}

// Reset clears the program region and copies size bytes of rom starting at
// ProgramStart. The font region is untouched. If the program does not fit,
// the in-capacity prefix is still copied and an error is returned.
func (m *Memory) Reset(rom []byte, size int) error {
	for i := ProgramStart; i < MemorySize; i++ {
		m.bytes[i] = 0
	}

	n := size
	if n > MaxROMSize {
		n = MaxROMSize
	}
	copy(m.bytes[ProgramStart:], rom[:n])

	if size > MaxROMSize {
		return fmt.Errorf("program of %d bytes exceeds capacity of %d bytes", size, MaxROMSize)
	}
	return nil
}

// Load reads the byte at address. Addresses are not range checked; callers
// mask them into the 12-bit space.
func (m *Memory) Load(address uint16) byte {
	return m.bytes[address]
}

// Store writes value at address.
func (m *Memory) Store(address uint16, value byte) {
	m.bytes[address] = value
}
