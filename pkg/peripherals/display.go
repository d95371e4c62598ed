package peripherals

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"gochip8/pkg/chip8"
)

// Palette of the rendered frame.
var (
	foreground = [4]byte{0x41, 0xEC, 0x9D, 0xFF}
	background = [4]byte{0x0F, 0x0F, 0x0F, 0xFF}
)

// Display bridges the emulation goroutine to the render thread. Draw is
// called from the emulation loop; Render runs on the game thread with
// whatever frame arrived last.
type Display struct {
	mu    sync.Mutex
	frame [chip8.ScreenSize]bool

	pix []byte
}

var _ chip8.DisplaySink = (*Display)(nil)

// NewDisplay returns a display with an all-background frame.
func NewDisplay() *Display {
	return &Display{
		pix: make([]byte, chip8.ScreenSize*4),
	}
}

// Draw stores a copy of the frame for the next Render.
func (d *Display) Draw(pixels []bool) {
	d.mu.Lock()
	copy(d.frame[:], pixels)
	d.mu.Unlock()
}

// Render writes the latest frame into img as RGBA pixels.
func (d *Display) Render(img *ebiten.Image) {
	d.mu.Lock()
	for i, on := range d.frame {
		c := background
		if on {
			c = foreground
		}
		copy(d.pix[i*4:], c[:])
	}
	d.mu.Unlock()

	img.WritePixels(d.pix)
}
