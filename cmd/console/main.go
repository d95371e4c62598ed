package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/chip8"
	"gochip8/pkg/peripherals"
)

// keyHoldDuration is how long a terminal key press counts as held. The
// terminal delivers key-down events only, so key-up is simulated by decay.
const keyHoldDuration = 150 * time.Millisecond

// keypadLayout maps typed runes to keypad keys, 1234/QWER/ASDF/ZXCV block.
var keypadLayout = map[rune]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// terminalInput turns key press events into a decaying keypad mask.
type terminalInput struct {
	mu      sync.Mutex
	expires [16]time.Time

	quit atomic.Bool
}

func (i *terminalInput) press(key int) {
	i.mu.Lock()
	i.expires[key] = time.Now().Add(keyHoldDuration)
	i.mu.Unlock()
}

func (i *terminalInput) signalQuit() {
	i.quit.Store(true)
}

func (i *terminalInput) Poll() (uint16, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := time.Now()
	var mask uint16
	for key, expiry := range i.expires {
		if now.Before(expiry) {
			mask |= 1 << key
		}
	}
	return mask, i.quit.Load()
}

// terminalDisplay renders frames into the screen view.
type terminalDisplay struct {
	gui *gocui.Gui
}

func (d *terminalDisplay) Draw(pixels []bool) {
	var sb strings.Builder
	for y := 0; y < chip8.ScreenHeight; y++ {
		for x := 0; x < chip8.ScreenWidth; x++ {
			if pixels[y*chip8.ScreenWidth+x] {
				sb.WriteRune('█')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	frame := sb.String()

	d.gui.Update(func(g *gocui.Gui) error {
		v, err := g.View("screen")
		if err != nil {
			// layout has not created the view yet; drop the frame
			return nil
		}
		v.Clear()
		fmt.Fprint(v, frame)
		return nil
	})
}

// terminalAudio is a no-op sink; terminals have no beeper worth driving.
type terminalAudio struct{}

func (terminalAudio) StartBeep() {}
func (terminalAudio) StopBeep()  {}

func layout(g *gocui.Gui) error {
	v, err := g.SetView("screen", 0, 0, chip8.ScreenWidth+1, chip8.ScreenHeight+1)
	if err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "gochip8"
	}
	return nil
}

func newLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	quiet := flag.Bool("q", false, "only log errors")
	flag.Parse()

	logger := newLogger(*debug, *quiet)

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [options] <romfile>\n\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	cart, err := peripherals.LoadCartridge(flag.Arg(0), logger)
	if err != nil {
		logger.Fatal("loading cartridge", log.Err(err))
	}

	gui, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		logger.Fatal("initializing terminal", log.Err(err))
	}
	defer gui.Close()

	gui.SetManagerFunc(layout)

	input := &terminalInput{}
	for r, key := range keypadLayout {
		err := gui.SetKeybinding("", r, gocui.ModNone, func(*gocui.Gui, *gocui.View) error {
			input.press(key)
			return nil
		})
		if err != nil {
			logger.Fatal("binding key", log.Err(err))
		}
	}

	quitBinding := func(*gocui.Gui, *gocui.View) error {
		return gocui.ErrQuit
	}
	if err := gui.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quitBinding); err != nil {
		logger.Fatal("binding quit key", log.Err(err))
	}
	if err := gui.SetKeybinding("", gocui.KeyEsc, gocui.ModNone, quitBinding); err != nil {
		logger.Fatal("binding quit key", log.Err(err))
	}

	processor := chip8.New(logger)
	display := &terminalDisplay{gui: gui}

	done := make(chan struct{})
	go func() {
		processor.Run(display, input, terminalAudio{}, cart)
		close(done)
	}()

	if err := gui.MainLoop(); err != nil && err != gocui.ErrQuit {
		logger.Error("terminal loop", log.Err(err))
	}

	input.signalQuit()
	<-done
}
