package chip8

const (
	// ScreenWidth and ScreenHeight are the dimensions of the monochrome
	// display in pixels.
	ScreenWidth  = 64
	ScreenHeight = 32
	ScreenSize   = ScreenWidth * ScreenHeight

	// MemorySize is the full address space; the region below ProgramStart is
	// reserved for the interpreter and the font glyphs.
	MemorySize   = 4096
	ReservedSize = 512
	ProgramStart = ReservedSize
	MaxROMSize   = MemorySize - ReservedSize

	OpcodeSize = 2

	NumRegisters = 16
	StackSize    = 16

	// FontGlyphSize is the height in bytes of one hexadecimal font glyph.
	FontGlyphSize = 5

	// FrameFrequency is the timer cadence in Hz; CyclesPerFrame instructions
	// execute between consecutive timer ticks, giving an effective clock of
	// FrameFrequency*CyclesPerFrame instructions per second.
	FrameFrequency = 60
	CyclesPerFrame = 15

	// AddIOverflowThreshold is the address ADD I, Vx compares the new I
	// against when deciding VF. The historical interpreter checks against
	// 0x0F00 rather than the top of the address space; programs depend on
	// this, so it is kept bit-for-bit.
	AddIOverflowThreshold = 0x0F00
)
