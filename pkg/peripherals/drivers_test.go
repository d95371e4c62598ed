package peripherals

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"gochip8/pkg/chip8"
)

func TestDisplayDrawCopies(t *testing.T) {
	d := NewDisplay()

	frame := make([]bool, chip8.ScreenSize)
	frame[42] = true
	d.Draw(frame)

	// mutating the source after Draw must not leak into the stored frame
	frame[42] = false
	assert.True(t, d.frame[42])
	assert.False(t, d.frame[43])
}

func TestKeyboardPoll(t *testing.T) {
	k := NewKeyboard()

	keys, quit := k.Poll()
	assert.Equal(t, uint16(0), keys)
	assert.False(t, quit)

	k.mask.Store(1 << 0xA)
	k.SignalQuit()

	keys, quit = k.Poll()
	assert.Equal(t, uint16(1<<0xA), keys)
	assert.True(t, quit)
}

func TestSquareWaveFrames(t *testing.T) {
	w := &squareWave{}

	buf := make([]byte, 4*64+2)
	n, err := w.Read(buf)
	assert.NoError(t, err)
	// whole stereo frames only
	assert.Equal(t, 4*64, n)

	// both channels carry the same sample
	assert.Equal(t, buf[0], buf[2])
	assert.Equal(t, buf[1], buf[3])
}
