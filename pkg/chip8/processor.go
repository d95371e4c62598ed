package chip8

import (
	"math/bits"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// InputSource supplies the keypad state. Poll returns the mask of currently
// held keys (bit k set = key k down) and whether the frontend requested
// shutdown.
type InputSource interface {
	Poll() (keys uint16, quit bool)
}

// AudioSink is the beeper. StartBeep and StopBeep are idempotent.
type AudioSink interface {
	StartBeep()
	StopBeep()
}

// Cartridge provides the program image to execute.
type Cartridge interface {
	ROM() []byte
	Size() int
}

// runState distinguishes normal execution from the blocked LD Vx, K wait.
type runState uint8

const (
	stateRunning runState = iota
	stateAwaitingKey
)

// cycle is the program counter effect of one executed instruction.
type cycle struct {
	jump    bool
	faulted bool
	target  uint16
	offset  uint16
}

func next() cycle {
	return cycle{offset: OpcodeSize}
}

func skipIf(cond bool) cycle {
	if cond {
		return cycle{offset: 2 * OpcodeSize}
	}
	return next()
}

func jumpTo(address uint16) cycle {
	return cycle{jump: true, target: address}
}

// fault marks a recoverable execution error; the dispatcher logs it and
// falls through to the next instruction.
func fault() cycle {
	return cycle{faulted: true, offset: OpcodeSize}
}

// vfEffect is the flag register effect of one executed instruction, applied
// by the dispatcher after the instruction body runs.
type vfEffect struct {
	write bool
	value uint8
}

func setVF(on bool) vfEffect {
	if on {
		return vfEffect{write: true, value: 1}
	}
	return vfEffect{write: true, value: 0}
}

func keepVF() vfEffect {
	return vfEffect{}
}

// Processor executes CHIP-8 programs. Registers and memory are exported for
// the toolchain's trace dumps; everything is single-goroutine, driven either
// by Run or by explicit Advance calls in tests.
type Processor struct {
	Memory *Memory
	Screen *Screen

	V     [NumRegisters]uint8
	I     uint16
	PC    uint16
	Stack [StackSize]uint16
	SP    int

	DelayTimer uint8
	SoundTimer uint8
	Keypad     uint16

	// Rand backs the RND instruction. Replaceable for deterministic tests.
	Rand *rand.Rand

	// Trace, when set, observes every fetched instruction before it runs.
	Trace func(address uint16, opcode uint16, in Instruction)

	state   runState
	waitReg int

	logger *log.Logger
}

// New returns a processor with font-initialized memory, a cleared screen and
// the program counter at ProgramStart.
func New(logger *log.Logger) *Processor {
	return &Processor{
		Memory: NewMemory(),
		Screen: NewScreen(),
		PC:     ProgramStart,
		Rand:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		logger: logger,
	}
}

// Load installs a program image into memory. An oversized image is truncated
// to capacity and reported; execution proceeds with the prefix.
func (p *Processor) Load(rom []byte, size int) {
	if err := p.Memory.Reset(rom, size); err != nil {
		p.logger.Warn("program truncated to memory capacity", log.Err(err))
	}
}

// Run executes the program until input signals quit. Every iteration polls
// input, advances one cycle, syncs the beeper with the sound timer and lets
// the screen flush pending changes; every CyclesPerFrame iterations both
// timers tick down and the loop sleeps out the remainder of the frame.
func (p *Processor) Run(display DisplaySink, input InputSource, audio AudioSink, cart Cartridge) {
	p.Load(cart.ROM(), cart.Size())

	cycles := 0
	for {
		keys, quit := input.Poll()
		if quit {
			p.logger.Info("shutdown requested")
			audio.StopBeep()
			return
		}

		p.Advance(keys)

		if p.SoundTimer > 0 {
			audio.StartBeep()
		} else {
			audio.StopBeep()
		}

		p.Screen.Refresh(display)

		cycles++
		if cycles == CyclesPerFrame {
			cycles = 0
			if p.DelayTimer > 0 {
				p.DelayTimer--
			}
			if p.SoundTimer > 0 {
				p.SoundTimer--
			}
			time.Sleep(time.Second / FrameFrequency)
		}
	}
}

// Advance executes a single cycle with the given keypad mask. While awaiting
// a key it performs no fetch; the first held key is written to the waiting
// register and execution resumes on the next cycle.
func (p *Processor) Advance(keys uint16) {
	p.Keypad = keys

	if p.state == stateAwaitingKey {
		if keys == 0 {
			return
		}
		// PC already advanced when the wait began; only the register write
		// remains.
		p.V[p.waitReg] = uint8(bits.TrailingZeros16(keys))
		p.state = stateRunning
		return
	}

	address := p.PC
	opcode := p.fetchOpcode()
	in := Decode(opcode)

	if p.Trace != nil {
		p.Trace(address, opcode, in)
	}

	p.execute(in)
}

// fetchOpcode reads the big-endian opcode at PC.
func (p *Processor) fetchOpcode() uint16 {
	hi := p.Memory.Load(p.PC)
	lo := p.Memory.Load(p.PC + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// execute runs one decoded instruction and applies its VF and program
// counter effects. Faults are logged with their location and the processor
// falls through to the next instruction.
func (p *Processor) execute(in Instruction) {
	address := p.PC
	c, vf := p.step(in)

	if vf.write {
		p.V[0xF] = vf.value
	}

	if c.faulted {
		p.logger.Error("instruction fault",
			log.Uint16("address", address),
			log.String("instruction", in.String()),
		)
	}

	if c.jump {
		p.PC = c.target
	} else {
		p.PC += c.offset
	}
}

// step evaluates one instruction against the current state and returns its
// program counter and VF effects without applying either.
func (p *Processor) step(in Instruction) (cycle, vfEffect) {
	x, y := in.X, in.Y

	switch in.Kind {
	case OpCls:
		p.Screen.Clear()
		return next(), keepVF()

	case OpRet:
		if p.SP == 0 {
			return fault(), keepVF()
		}
		p.SP--
		return jumpTo(p.Stack[p.SP]), keepVF()

	case OpJp:
		return jumpTo(in.NNN), keepVF()

	case OpCall:
		if p.SP == StackSize {
			return fault(), keepVF()
		}
		p.Stack[p.SP] = p.PC + OpcodeSize
		p.SP++
		return jumpTo(in.NNN), keepVF()

	case OpSeNN:
		return skipIf(p.V[x] == in.NN), keepVF()

	case OpSneNN:
		return skipIf(p.V[x] != in.NN), keepVF()

	case OpSeXY:
		return skipIf(p.V[x] == p.V[y]), keepVF()

	case OpSneXY:
		return skipIf(p.V[x] != p.V[y]), keepVF()

	case OpLdNN:
		p.V[x] = in.NN
		return next(), keepVF()

	case OpAddNN:
		p.V[x] += in.NN
		return next(), keepVF()

	case OpLdXY:
		p.V[x] = p.V[y]
		return next(), keepVF()

	case OpOr:
		p.V[x] |= p.V[y]
		return next(), keepVF()

	case OpAnd:
		p.V[x] &= p.V[y]
		return next(), keepVF()

	case OpXor:
		p.V[x] ^= p.V[y]
		return next(), keepVF()

	case OpAddXY:
		sum := uint16(p.V[x]) + uint16(p.V[y])
		p.V[x] = uint8(sum)
		return next(), setVF(sum > 0xFF)

	case OpSub:
		borrow := p.V[x] < p.V[y]
		p.V[x] -= p.V[y]
		return next(), setVF(!borrow)

	case OpSubn:
		borrow := p.V[y] < p.V[x]
		p.V[x] = p.V[y] - p.V[x]
		return next(), setVF(!borrow)

	case OpShr:
		bit := p.V[x] & 1
		p.V[x] >>= 1
		return next(), setVF(bit == 1)

	case OpShl:
		bit := p.V[x] >> 7
		p.V[x] <<= 1
		return next(), setVF(bit == 1)

	case OpLdI:
		p.I = in.NNN
		return next(), keepVF()

	case OpJpV0:
		return jumpTo(in.NNN + uint16(p.V[0])), keepVF()

	case OpRnd:
		p.V[x] = uint8(p.Rand.UintN(256)) & in.NN
		return next(), keepVF()

	case OpDrw:
		collision := p.draw(p.V[x], p.V[y], in.N)
		return next(), setVF(collision)

	case OpSkp:
		return skipIf(p.Keypad&(1<<p.V[x]) != 0), keepVF()

	case OpSknp:
		return skipIf(p.Keypad&(1<<p.V[x]) == 0), keepVF()

	case OpLdDt:
		p.V[x] = p.DelayTimer
		return next(), keepVF()

	case OpLdK:
		// the instruction completes the moment the wait begins
		p.state = stateAwaitingKey
		p.waitReg = int(x)
		return next(), keepVF()

	case OpSetDt:
		p.DelayTimer = p.V[x]
		return next(), keepVF()

	case OpSetSt:
		p.SoundTimer = p.V[x]
		return next(), keepVF()

	case OpAddI:
		p.I += uint16(p.V[x])
		return next(), setVF(p.I > AddIOverflowThreshold)

	case OpLdF:
		p.I = uint16(p.V[x]) * FontGlyphSize
		return next(), keepVF()

	case OpBcd:
		v := p.V[x]
		p.Memory.Store(p.I, v/100)
		p.Memory.Store(p.I+1, v/10%10)
		p.Memory.Store(p.I+2, v%10)
		return next(), keepVF()

	case OpStore:
		for r := uint16(0); r <= uint16(x); r++ {
			p.Memory.Store(p.I+r, p.V[r])
		}
		return next(), keepVF()

	case OpLoad:
		for r := uint16(0); r <= uint16(x); r++ {
			p.V[r] = p.Memory.Load(p.I + r)
		}
		return next(), keepVF()

	case OpSys:
		// machine subroutines target hardware that does not exist here;
		// reported and skipped
		return fault(), keepVF()

	default:
		return fault(), keepVF()
	}
}

// draw XOR-blits an n-row sprite at memory[I] to (x0, y0) with toroidal
// wrap and reports whether any lit pixel was switched off.
func (p *Processor) draw(x0, y0, n uint8) bool {
	collision := false
	for row := uint8(0); row < n; row++ {
		line := p.Memory.Load(p.I + uint16(row))
		y := (int(y0) + int(row)) % ScreenHeight
		for bit := uint8(0); bit < 8; bit++ {
			if line&(0x80>>bit) == 0 {
				continue
			}
			x := (int(x0) + int(bit)) % ScreenWidth
			if p.Screen.Pixel(x, y) {
				collision = true
			}
			p.Screen.SetPixel(x, y, !p.Screen.Pixel(x, y))
		}
	}
	return collision
}

// AwaitingKey reports whether the processor is blocked on LD Vx, K.
func (p *Processor) AwaitingKey() bool {
	return p.state == stateAwaitingKey
}
