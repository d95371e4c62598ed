package chip8

import "fmt"

// Kind identifies one opcode family of the base instruction set.
type Kind uint8

const (
	OpUnknown Kind = iota // unrecognized bit pattern
	OpSys                 // 0NNN machine subroutine (legacy, not executed)
	OpCls                 // 00E0
	OpRet                 // 00EE
	OpJp                  // 1NNN
	OpCall                // 2NNN
	OpSeNN                // 3XNN
	OpSneNN               // 4XNN
	OpSeXY                // 5XY0
	OpLdNN                // 6XNN
	OpAddNN               // 7XNN
	OpLdXY                // 8XY0
	OpOr                  // 8XY1
	OpAnd                 // 8XY2
	OpXor                 // 8XY3
	OpAddXY               // 8XY4
	OpSub                 // 8XY5
	OpShr                 // 8XY6
	OpSubn                // 8XY7
	OpShl                 // 8XYE
	OpSneXY               // 9XY0
	OpLdI                 // ANNN
	OpJpV0                // BNNN
	OpRnd                 // CXNN
	OpDrw                 // DXYN
	OpSkp                 // EX9E
	OpSknp                // EXA1
	OpLdDt                // FX07
	OpLdK                 // FX0A
	OpSetDt               // FX15
	OpSetSt               // FX18
	OpAddI                // FX1E
	OpLdF                 // FX29
	OpBcd                 // FX33
	OpStore               // FX55
	OpLoad                // FX65
)

// Instruction is a decoded opcode: the family plus the operand fields that
// family uses. Opcode always carries the raw 16-bit value for diagnostics.
type Instruction struct {
	Kind   Kind
	X, Y   uint8  // register operands
	N      uint8  // sprite height nibble
	NN     uint8  // immediate byte
	NNN    uint16 // 12-bit address
	Opcode uint16
}

// Decode maps a 16-bit opcode to its instruction. It is total and pure: bit
// patterns that match no documented form yield an OpUnknown instruction
// carrying the raw opcode. Exact forms (00E0, EX9E, FX0A, ...) are matched
// before the top-nibble-only families.
func Decode(opcode uint16) Instruction {
	n0 := uint8(opcode >> 12)
	n3 := uint8(opcode & 0xF)

	x := uint8(opcode >> 8 & 0xF)
	y := uint8(opcode >> 4 & 0xF)
	nn := uint8(opcode & 0xFF)
	nnn := opcode & 0x0FFF

	in := Instruction{Opcode: opcode}

	switch {
	case opcode == 0x00E0:
		in.Kind = OpCls
	case opcode == 0x00EE:
		in.Kind = OpRet
	case n0 == 0x0:
		in.Kind, in.NNN = OpSys, nnn
	case n0 == 0x1:
		in.Kind, in.NNN = OpJp, nnn
	case n0 == 0x2:
		in.Kind, in.NNN = OpCall, nnn
	case n0 == 0x3:
		in.Kind, in.X, in.NN = OpSeNN, x, nn
	case n0 == 0x4:
		in.Kind, in.X, in.NN = OpSneNN, x, nn
	case n0 == 0x5 && n3 == 0x0:
		in.Kind, in.X, in.Y = OpSeXY, x, y
	case n0 == 0x6:
		in.Kind, in.X, in.NN = OpLdNN, x, nn
	case n0 == 0x7:
		in.Kind, in.X, in.NN = OpAddNN, x, nn
	case n0 == 0x8:
		in.X, in.Y = x, y
		switch n3 {
		case 0x0:
			in.Kind = OpLdXY
		case 0x1:
			in.Kind = OpOr
		case 0x2:
			in.Kind = OpAnd
		case 0x3:
			in.Kind = OpXor
		case 0x4:
			in.Kind = OpAddXY
		case 0x5:
			in.Kind = OpSub
		case 0x6:
			in.Kind = OpShr
		case 0x7:
			in.Kind = OpSubn
		case 0xE:
			in.Kind = OpShl
		default:
			return Instruction{Kind: OpUnknown, Opcode: opcode}
		}
	case n0 == 0x9 && n3 == 0x0:
		in.Kind, in.X, in.Y = OpSneXY, x, y
	case n0 == 0xA:
		in.Kind, in.NNN = OpLdI, nnn
	case n0 == 0xB:
		in.Kind, in.NNN = OpJpV0, nnn
	case n0 == 0xC:
		in.Kind, in.X, in.NN = OpRnd, x, nn
	case n0 == 0xD:
		in.Kind, in.X, in.Y, in.N = OpDrw, x, y, n3
	case n0 == 0xE && nn == 0x9E:
		in.Kind, in.X = OpSkp, x
	case n0 == 0xE && nn == 0xA1:
		in.Kind, in.X = OpSknp, x
	case n0 == 0xF:
		in.X = x
		switch nn {
		case 0x07:
			in.Kind = OpLdDt
		case 0x0A:
			in.Kind = OpLdK
		case 0x15:
			in.Kind = OpSetDt
		case 0x18:
			in.Kind = OpSetSt
		case 0x1E:
			in.Kind = OpAddI
		case 0x29:
			in.Kind = OpLdF
		case 0x33:
			in.Kind = OpBcd
		case 0x55:
			in.Kind = OpStore
		case 0x65:
			in.Kind = OpLoad
		default:
			return Instruction{Kind: OpUnknown, Opcode: opcode}
		}
	}

	return in
}

// String renders the instruction in conventional assembly mnemonics.
func (i Instruction) String() string {
	switch i.Kind {
	case OpCls:
		return "CLS"
	case OpRet:
		return "RET"
	case OpSys:
		return fmt.Sprintf("SYS 0x%04X", i.NNN)
	case OpJp:
		return fmt.Sprintf("JP 0x%04X", i.NNN)
	case OpJpV0:
		return fmt.Sprintf("JP V0, 0x%04X", i.NNN)
	case OpCall:
		return fmt.Sprintf("CALL 0x%04X", i.NNN)
	case OpSeNN:
		return fmt.Sprintf("SE V%X, 0x%02X", i.X, i.NN)
	case OpSneNN:
		return fmt.Sprintf("SNE V%X, 0x%02X", i.X, i.NN)
	case OpSeXY:
		return fmt.Sprintf("SE V%X, V%X", i.X, i.Y)
	case OpSneXY:
		return fmt.Sprintf("SNE V%X, V%X", i.X, i.Y)
	case OpLdNN:
		return fmt.Sprintf("LD V%X, 0x%02X", i.X, i.NN)
	case OpLdXY:
		return fmt.Sprintf("LD V%X, V%X", i.X, i.Y)
	case OpAddNN:
		return fmt.Sprintf("ADD V%X, 0x%02X", i.X, i.NN)
	case OpOr:
		return fmt.Sprintf("OR V%X, V%X", i.X, i.Y)
	case OpAnd:
		return fmt.Sprintf("AND V%X, V%X", i.X, i.Y)
	case OpXor:
		return fmt.Sprintf("XOR V%X, V%X", i.X, i.Y)
	case OpAddXY:
		return fmt.Sprintf("ADD V%X, V%X", i.X, i.Y)
	case OpSub:
		return fmt.Sprintf("SUB V%X, V%X", i.X, i.Y)
	case OpSubn:
		return fmt.Sprintf("SUBN V%X, V%X", i.X, i.Y)
	case OpShr:
		return fmt.Sprintf("SHR V%X", i.X)
	case OpShl:
		return fmt.Sprintf("SHL V%X", i.X)
	case OpLdI:
		return fmt.Sprintf("LD I, 0x%04X", i.NNN)
	case OpAddI:
		return fmt.Sprintf("ADD I, V%X", i.X)
	case OpLdF:
		return fmt.Sprintf("LD F, V%X", i.X)
	case OpRnd:
		return fmt.Sprintf("RND V%X, 0x%02X", i.X, i.NN)
	case OpDrw:
		return fmt.Sprintf("DRW V%X, V%X, %d", i.X, i.Y, i.N)
	case OpSkp:
		return fmt.Sprintf("SKP V%X", i.X)
	case OpSknp:
		return fmt.Sprintf("SKNP V%X", i.X)
	case OpLdK:
		return fmt.Sprintf("LD V%X, K", i.X)
	case OpLdDt:
		return fmt.Sprintf("LD V%X, DT", i.X)
	case OpSetDt:
		return fmt.Sprintf("LD DT, V%X", i.X)
	case OpSetSt:
		return fmt.Sprintf("LD ST, V%X", i.X)
	case OpBcd:
		return fmt.Sprintf("BCD V%X", i.X)
	case OpStore:
		return fmt.Sprintf("LD [I], V%X", i.X)
	case OpLoad:
		return fmt.Sprintf("LD V%X, [I]", i.X)
	default:
		return fmt.Sprintf("UNKNOWN %04X", i.Opcode)
	}
}
