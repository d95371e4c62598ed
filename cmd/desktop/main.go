package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/chip8"
	"gochip8/pkg/peripherals"
	"gochip8/pkg/toolchain"
)

const windowScale = 10

type Game struct {
	display  *peripherals.Display
	keyboard *peripherals.Keyboard
	done     <-chan struct{}

	screenImg *ebiten.Image // reused 64x32 bitmap canvas
}

func (g *Game) Update() error {
	g.keyboard.Refresh()

	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.screenImg == nil {
		g.screenImg = ebiten.NewImage(chip8.ScreenWidth, chip8.ScreenHeight)
	}

	g.display.Render(g.screenImg)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(windowScale, windowScale)
	screen.DrawImage(g.screenImg, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return chip8.ScreenWidth * windowScale, chip8.ScreenHeight * windowScale
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
	trace := flag.Bool("trace", false, "dump machine state every cycle (implies -debug)")
	flag.Parse()

	logger := newLogger(*debug || *trace, *quiet)

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [options] <romfile>\n\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	romFile := flag.Arg(0)

	cart, err := peripherals.LoadCartridge(romFile, logger)
	if err != nil {
		logger.Fatal("loading cartridge", log.Err(err))
	}

	processor := chip8.New(logger)
	if *trace {
		tracer := toolchain.NewTracer(cart.ROM(), cart.Size(), logger)
		processor.Trace = tracer.Hook(processor)
	}

	display := peripherals.NewDisplay()
	keyboard := peripherals.NewKeyboard()
	beeper, err := peripherals.NewBeeper()
	if err != nil {
		logger.Fatal("initializing audio", log.Err(err))
	}

	done := make(chan struct{})
	go func() {
		processor.Run(display, keyboard, beeper, cart)
		close(done)
	}()

	ebiten.SetWindowSize(chip8.ScreenWidth*windowScale, chip8.ScreenHeight*windowScale)
	ebiten.SetWindowTitle("gochip8 - " + romFile)

	game := &Game{
		display:  display,
		keyboard: keyboard,
		done:     done,
	}
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		logger.Fatal("running game", log.Err(err))
	}

	// the window is gone; stop the emulation loop if it is still running
	keyboard.SignalQuit()
	<-done
}
