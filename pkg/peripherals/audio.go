package peripherals

import (
	"github.com/hajimehoshi/ebiten/v2/audio"

	"gochip8/pkg/chip8"
)

const (
	sampleRate    = 44100
	toneFrequency = 440
	toneAmplitude = 6000
)

// Beeper plays the single square-wave tone while the sound timer runs.
type Beeper struct {
	player *audio.Player
}

var _ chip8.AudioSink = (*Beeper)(nil)

// NewBeeper sets up the audio context and an endless square-wave player.
// There can only be one audio context per process.
func NewBeeper() (*Beeper, error) {
	ctx := audio.NewContext(sampleRate)
	player, err := ctx.NewPlayer(&squareWave{})
	if err != nil {
		return nil, err
	}
	return &Beeper{player: player}, nil
}

// StartBeep begins the tone if it is not already playing.
func (b *Beeper) StartBeep() {
	if !b.player.IsPlaying() {
		b.player.Play()
	}
}

// StopBeep silences the tone.
func (b *Beeper) StopBeep() {
	if b.player.IsPlaying() {
		b.player.Pause()
	}
}

// squareWave is an endless 16-bit little-endian stereo square wave.
type squareWave struct {
	pos int64
}

func (w *squareWave) Read(buf []byte) (int, error) {
	period := int64(sampleRate / toneFrequency)

	// whole frames only: 2 channels x 2 bytes
	n := len(buf) &^ 3
	for i := 0; i < n; i += 4 {
		sample := int16(toneAmplitude)
		if w.pos%period < period/2 {
			sample = -toneAmplitude
		}
		lo, hi := byte(sample), byte(sample>>8)
		buf[i], buf[i+1] = lo, hi
		buf[i+2], buf[i+3] = lo, hi
		w.pos++
	}
	return n, nil
}
