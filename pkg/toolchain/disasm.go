// Package toolchain holds the developer-facing ROM tools: a static
// disassembler and a per-cycle execution tracer.
package toolchain

import (
	"strings"

	"gochip8/pkg/chip8"
)

// Disassembly is the result of a reachability walk over a program image:
// the set of addresses holding opcodes versus data bytes, plus the jump and
// sprite targets usable as labels.
type Disassembly struct {
	rom     []byte
	romSize int

	labels  map[int]struct{}
	opcodes map[int]struct{}
}

// Disassemble walks the program image starting at the entry point and
// classifies every address.
func Disassemble(rom []byte, size int) *Disassembly {
	if size > len(rom) {
		size = len(rom)
	}
	d := &Disassembly{
		rom:     rom,
		romSize: size,
		labels:  map[int]struct{}{},
		opcodes: map[int]struct{}{},
	}
	d.walk()
	return d
}

func (d *Disassembly) end() int {
	return chip8.ProgramStart + d.romSize
}

func (d *Disassembly) fetchOpcode(address int) uint16 {
	offset := address - chip8.ProgramStart
	return uint16(d.rom[offset])<<8 | uint16(d.rom[offset+1])
}

// walk follows control flow from the entry point. Jumps redirect the walk
// and mark their target as a label, calls additionally queue the
// fall-through, skip instructions queue the skipped-over branch, and RET
// ends a segment. Computed jumps (JP V0) cannot be followed statically.
func (d *Disassembly) walk() {
	segments := []int{chip8.ProgramStart}

	for len(segments) > 0 {
		address := segments[0]
		segments = segments[1:]

		for address >= chip8.ProgramStart && address+1 < d.end() {
			if _, done := d.opcodes[address]; done {
				break
			}

			opcode := d.fetchOpcode(address)
			in := chip8.Decode(opcode)

			d.opcodes[address] = struct{}{}
			address += chip8.OpcodeSize

			if in.Kind == chip8.OpRet {
				break
			}

			switch in.Kind {
			case chip8.OpJp:
				address = int(in.NNN)
				d.labels[address] = struct{}{}
			case chip8.OpCall:
				segments = append(segments, address)
				address = int(in.NNN)
				d.labels[address] = struct{}{}
			case chip8.OpSeNN, chip8.OpSneNN, chip8.OpSeXY, chip8.OpSneXY,
				chip8.OpSkp, chip8.OpSknp:
				segments = append(segments, address+chip8.OpcodeSize)
			case chip8.OpLdI:
				d.labels[int(in.NNN)] = struct{}{}
			}
		}
	}
}

// IsOpcode reports whether the walk classified address as an instruction.
func (d *Disassembly) IsOpcode(address int) bool {
	_, ok := d.opcodes[address]
	return ok
}

// IsLabel reports whether address is a jump, call or sprite target.
func (d *Disassembly) IsLabel(address int) bool {
	_, ok := d.labels[address]
	return ok
}

// Listing renders the classified image: one line per opcode or data byte,
// with label addresses highlighted.
func (d *Disassembly) Listing() string {
	var sb strings.Builder

	address := chip8.ProgramStart
	for address < d.end() {
		if !d.IsOpcode(address) {
			b := d.rom[address-chip8.ProgramStart]
			line := byteStatus(address, b)
			if d.IsLabel(address) {
				line = highlight(line, labelMark(address))
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
			address++
			continue
		}

		opcode := d.fetchOpcode(address)
		sb.WriteString(opcodeStatus(address, opcode, chip8.Decode(opcode)))
		sb.WriteByte('\n')
		address += chip8.OpcodeSize
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// ListingAfter renders up to total lines starting at pc, marking the line
// at pc itself.
func (d *Disassembly) ListingAfter(pc, total int) string {
	var sb strings.Builder

	address := pc
	for count := 0; address < d.end() && count < total; count++ {
		if !d.IsOpcode(address) {
			sb.WriteString(byteStatus(address, d.rom[address-chip8.ProgramStart]))
			sb.WriteByte('\n')
			address++
			continue
		}

		opcode := d.fetchOpcode(address)
		line := opcodeStatus(address, opcode, chip8.Decode(opcode))
		if address == pc {
			line = highlight(line, "* PC")
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
		address += chip8.OpcodeSize
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// RawDump renders every program byte as a data line.
func (d *Disassembly) RawDump() string {
	var sb strings.Builder
	for i := 0; i < d.romSize; i++ {
		sb.WriteString(byteStatus(chip8.ProgramStart+i, d.rom[i]))
		sb.WriteByte('\n')
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
