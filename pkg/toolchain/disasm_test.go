package toolchain

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"gochip8/pkg/chip8"
)

func TestDisassembleJumpOverData(t *testing.T) {
	// 0x200: CLS
	// 0x202: JP 0x206
	// 0x204: two data bytes
	// 0x206: JP 0x206
	rom := []byte{
		0x00, 0xE0,
		0x12, 0x06,
		0xAB, 0xCD,
		0x12, 0x06,
	}
	d := Disassemble(rom, len(rom))

	assert.True(t, d.IsOpcode(0x200))
	assert.True(t, d.IsOpcode(0x202))
	assert.False(t, d.IsOpcode(0x204))
	assert.False(t, d.IsOpcode(0x205))
	assert.True(t, d.IsOpcode(0x206))
	assert.True(t, d.IsLabel(0x206))
}

func TestDisassembleCallFallThrough(t *testing.T) {
	// 0x200: CALL 0x206
	// 0x202: JP 0x202      (fall-through after the call returns)
	// 0x204: data
	// 0x206: RET
	rom := []byte{
		0x22, 0x06,
		0x12, 0x02,
		0xFF, 0xFF,
		0x00, 0xEE,
	}
	d := Disassemble(rom, len(rom))

	assert.True(t, d.IsOpcode(0x200))
	assert.True(t, d.IsOpcode(0x202))
	assert.False(t, d.IsOpcode(0x204))
	assert.True(t, d.IsOpcode(0x206))
	assert.True(t, d.IsLabel(0x206))
}

func TestDisassembleSkipBranches(t *testing.T) {
	// 0x200: SE V0, 0x01
	// 0x202: JP 0x206      (not-taken branch)
	// 0x204: JP 0x204      (taken branch, reached via the skip)
	// 0x206: JP 0x206
	rom := []byte{
		0x30, 0x01,
		0x12, 0x06,
		0x12, 0x04,
		0x12, 0x06,
	}
	d := Disassemble(rom, len(rom))

	assert.True(t, d.IsOpcode(0x200))
	assert.True(t, d.IsOpcode(0x202))
	assert.True(t, d.IsOpcode(0x204))
	assert.True(t, d.IsOpcode(0x206))
}

func TestDisassembleSpriteLabel(t *testing.T) {
	// LD I, 0x204 marks the sprite data as a label
	rom := []byte{
		0xA2, 0x04,
		0x12, 0x02,
		0xF0, 0x90,
	}
	d := Disassemble(rom, len(rom))

	assert.True(t, d.IsLabel(0x204))
	assert.False(t, d.IsOpcode(0x204))
}

func TestListing(t *testing.T) {
	rom := []byte{
		0xA2, 0x04,
		0x12, 0x02,
		0xF0,
	}
	listing := Disassemble(rom, len(rom)).Listing()
	lines := strings.Split(listing, "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, "| AD: 0x0200    | OPCODE: A204  | DECODED: LD I, 0x0204          |", lines[0])
	assert.Equal(t, "| AD: 0x0202    | OPCODE: 1202  | DECODED: JP 0x0202             |", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "| AD: 0x0204    | BYTE: 0xF0    | BINARY: 0b11110000"))
	assert.True(t, strings.HasSuffix(lines[2], "* LB-0204 |"))
}

func TestListingAfterHighlightsPC(t *testing.T) {
	rom := []byte{
		0x00, 0xE0,
		0x12, 0x00,
	}
	d := Disassemble(rom, len(rom))

	out := d.ListingAfter(0x200, 10)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "* PC |"))
	assert.False(t, strings.HasSuffix(lines[1], "* PC |"))
}

func TestRawDump(t *testing.T) {
	rom := []byte{0x00, 0xE0}
	dump := Disassemble(rom, len(rom)).RawDump()
	lines := strings.Split(dump, "\n")

	assert.Len(t, lines, 2)
	assert.Equal(t, "| AD: 0x0200    | BYTE: 0x00    | BINARY: 0b00000000             |", lines[0])
	assert.Equal(t, "| AD: 0x0201    | BYTE: 0xE0    | BINARY: 0b11100000             |", lines[1])
}

func TestStatusGrids(t *testing.T) {
	var v [chip8.NumRegisters]uint8
	v[0xF] = 0xAB
	regs := registersStatus(v)
	assert.Equal(t, 4, len(strings.Split(regs, "\n")))
	assert.Contains(t, regs, "| VF: AB")

	keys := keypadStatus(1 << 5)
	assert.Contains(t, keys, "| K5: 1")
	assert.Contains(t, keys, "| K4: 0")

	var stack [chip8.StackSize]uint16
	stack[2] = 0x123
	assert.Contains(t, stackStatus(stack), "| SP02: 0x0123")

	status := processorStatus(0x200, 0x123, 3, 7, 9)
	assert.Equal(t, "| PC: 0x0200    | I: 0x0123     | SP: 03   | DT: 07   | ST: 09   |", status)
}

func TestScreenStatus(t *testing.T) {
	pixels := make([]bool, chip8.ScreenSize)
	pixels[0] = true
	pixels[chip8.ScreenWidth+1] = true

	out := screenStatus(pixels)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, chip8.ScreenHeight)
	assert.Equal(t, "|X", lines[0][:2])
	assert.Equal(t, "| X", lines[1][:3])
	assert.Equal(t, chip8.ScreenWidth+2, len(lines[0]))
}
