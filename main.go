// gochip8 ROM inspection tool: disassembles a program image or dumps its
// raw bytes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/peripherals"
	"gochip8/pkg/toolchain"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

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
	raw := flag.Bool("raw", false, "dump the raw rom bytes instead of a disassembly")
	flag.Parse()

	logger := newLogger(*debug, *quiet)
	logger.Info("gochip8 rom tool " + buildinfo.Version(version, commit, date))

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [options] <romfile>\n\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	cart, err := peripherals.LoadCartridge(flag.Arg(0), logger)
	if err != nil {
		logger.Fatal("loading cartridge", log.Err(err))
	}

	dis := toolchain.Disassemble(cart.ROM(), cart.Size())
	if *raw {
		fmt.Println(dis.RawDump())
		return
	}
	fmt.Println(dis.Listing())
}
