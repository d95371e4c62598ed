package toolchain

import (
	"fmt"
	"strings"

	"gochip8/pkg/chip8"
)

// The status formatters render fixed-width table rows so consecutive lines
// align into a readable dump.

func byteStatus(address int, b byte) string {
	return fmt.Sprintf("| AD: 0x%04X    | BYTE: 0x%02X    | BINARY: 0b%08b             |", address, b, b)
}

func opcodeStatus(address int, opcode uint16, in chip8.Instruction) string {
	return fmt.Sprintf("| AD: 0x%04X    | OPCODE: %04X  | DECODED: %-20s  |", address, opcode, in.String())
}

func labelMark(address int) string {
	return fmt.Sprintf("* LB-%04X", address)
}

// highlight overwrites the right edge of a status line with a marker,
// keeping the line width intact.
func highlight(line, mark string) string {
	pos := strings.LastIndex(line, "|")
	if pos <= len(mark)+1 {
		return line
	}
	return line[:pos-len(mark)-1] + mark + " |"
}

func registersStatus(v [chip8.NumRegisters]uint8) string {
	var sb strings.Builder
	for i, value := range v {
		fmt.Fprintf(&sb, "| V%X: %02X        ", i, value)
		if i%4 == 3 {
			sb.WriteString(" |")
			if i < chip8.NumRegisters-1 {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

func keypadStatus(keypad uint16) string {
	var sb strings.Builder
	for i := 0; i < 16; i++ {
		fmt.Fprintf(&sb, "| K%X: %X         ", i, keypad>>i&1)
		if i%4 == 3 {
			sb.WriteString(" |")
			if i < 15 {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

func stackStatus(stack [chip8.StackSize]uint16) string {
	var sb strings.Builder
	for i, value := range stack {
		fmt.Fprintf(&sb, "| SP%02d: 0x%04X  ", i, value)
		if i%4 == 3 {
			sb.WriteString(" |")
			if i < chip8.StackSize-1 {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

func processorStatus(pc, i uint16, sp int, delay, sound uint8) string {
	return fmt.Sprintf("| PC: 0x%04X    | I: 0x%04X     | SP: %02d   | DT: %02d   | ST: %02d   |",
		pc, i, sp, delay, sound)
}

func screenStatus(pixels []bool) string {
	var sb strings.Builder
	for y := 0; y < chip8.ScreenHeight; y++ {
		sb.WriteByte('|')
		for x := 0; x < chip8.ScreenWidth; x++ {
			if pixels[y*chip8.ScreenWidth+x] {
				sb.WriteByte('X')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('|')
		if y < chip8.ScreenHeight-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
