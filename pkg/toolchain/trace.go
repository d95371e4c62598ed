package toolchain

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/chip8"
)

// listingAfterPC is the number of lines shown past the program counter in
// each trace dump.
const listingAfterPC = 10

// Tracer emits formatted debug dumps of the machine state on every executed
// cycle. Dumps go through the logger at debug level, so the tracer is free
// when debug logging is off.
type Tracer struct {
	logger *log.Logger
	dis    *Disassembly
}

// NewTracer disassembles the program image and logs the raw and
// disassembled listings once up front.
func NewTracer(rom []byte, size int, logger *log.Logger) *Tracer {
	t := &Tracer{
		logger: logger,
		dis:    Disassemble(rom, size),
	}

	t.section("raw rom", t.dis.RawDump())
	t.section("disassembled rom", t.dis.Listing())
	return t
}

// Hook returns a per-cycle callback for the processor's trace slot.
func (t *Tracer) Hook(p *chip8.Processor) func(address, opcode uint16, in chip8.Instruction) {
	return func(address, opcode uint16, in chip8.Instruction) {
		t.section("screen status", screenStatus(p.Screen.Pixels()))
		t.section("disassembled rom after pc", t.dis.ListingAfter(int(p.PC), listingAfterPC))
		t.section("registers status", registersStatus(p.V))
		t.section("keypad status", keypadStatus(p.Keypad))
		t.section("stack status", stackStatus(p.Stack))
		t.section("processor status", processorStatus(p.PC, p.I, p.SP, p.DelayTimer, p.SoundTimer))

		line := opcodeStatus(int(address), opcode, in)
		t.section("processor execute", highlight(line, "* PC"))
	}
}

// section frames a dump between a titled rule and a closing rule.
func (t *Tracer) section(title, body string) {
	pad := 63 - len(title)
	if pad < 0 {
		pad = 0
	}
	header := "- " + title + " " + strings.Repeat("-", pad)
	rule := strings.Repeat("-", 66)
	t.logger.Debug(fmt.Sprintf("\n%s\n%s\n%s", header, body, rule))
}
