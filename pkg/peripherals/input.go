package peripherals

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"gochip8/pkg/chip8"
)

// keypadLayout maps each of the sixteen keypad keys to its physical key.
// The hex pad occupies the 1234/QWER/ASDF/ZXCV block.
var keypadLayout = [16]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.KeyDigit1,
	0x2: ebiten.KeyDigit2,
	0x3: ebiten.KeyDigit3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.KeyDigit4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

// Keyboard samples the physical keyboard on the game thread and exposes the
// keypad mask to the emulation goroutine.
type Keyboard struct {
	mask atomic.Uint32
	quit atomic.Bool
}

var _ chip8.InputSource = (*Keyboard)(nil)

// NewKeyboard returns an idle keyboard.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Refresh samples the key state. Must run on the game thread (ebiten's
// Update).
func (k *Keyboard) Refresh() {
	var mask uint32
	for key, physical := range keypadLayout {
		if ebiten.IsKeyPressed(physical) {
			mask |= 1 << key
		}
	}
	k.mask.Store(mask)
}

// SignalQuit tells the emulation loop to stop on its next poll.
func (k *Keyboard) SignalQuit() {
	k.quit.Store(true)
}

// Poll returns the latest keypad mask and the quit flag.
func (k *Keyboard) Poll() (uint16, bool) {
	return uint16(k.mask.Load()), k.quit.Load()
}
