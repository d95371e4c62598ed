package chip8

// DisplaySink receives completed frames. Pixels is row-major,
// ScreenWidth*ScreenHeight entries, true meaning lit.
type DisplaySink interface {
	Draw(pixels []bool)
}

// Screen is the 64x32 monochrome frame buffer. Writes mark it dirty;
// Refresh pushes the buffer to a sink only when something changed since the
// last push, so an idle program costs no redraws.
type Screen struct {
	pixels       [ScreenSize]bool
	needsRefresh bool
}

// NewScreen returns a cleared screen that will push its first frame.
func NewScreen() *Screen {
	return &Screen{needsRefresh: true}
}

// Clear switches every pixel off.
func (s *Screen) Clear() {
	s.pixels = [ScreenSize]bool{}
	s.needsRefresh = true
}

// Pixel reports whether the pixel at (x, y) is lit. Coordinates must already
// be wrapped into range.
func (s *Screen) Pixel(x, y int) bool {
	return s.pixels[y*ScreenWidth+x]
}

// SetPixel sets the pixel at (x, y).
func (s *Screen) SetPixel(x, y int, on bool) {
	s.pixels[y*ScreenWidth+x] = on
	s.needsRefresh = true
}

// Pixels exposes the backing buffer for inspection.
func (s *Screen) Pixels() []bool {
	return s.pixels[:]
}

// Refresh pushes the frame to sink if it changed since the previous call.
func (s *Screen) Refresh(sink DisplaySink) {
	if !s.needsRefresh {
		return
	}
	s.needsRefresh = false
	sink.Draw(s.pixels[:])
}
