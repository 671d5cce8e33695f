package main

import (
	"flag"
	"fmt"
	"time"

	"log"

	"github.com/jroimartin/gocui"

	"dot64/console"
	"dot64/logger"
	"dot64/system"
)

var (
	romFile = flag.String("rom", "", "cartridge image to load on startup (z64, v64 or n64)")
	logFile = flag.String("log", "", "log file path (default: stdout)")
	noGui   = flag.Bool("nogui", false, "run the rom headless, without the terminal ui")
)

func main() {
	flag.Parse()
	l := logger.New(*logFile)

	if *noGui {
		runHeadless(l)
		return
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln("Couldn't create gui!")
	}
	defer g.Close()

	g.SetManagerFunc(layout)

	// start emulation once the views exist
	g.Update(func(g *gocui.Gui) error {
		return startDot64(g, l)
	})

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
}

// runHeadless loads the rom and steps it without the tui. Mostly useful
// for smoke testing images.
func runHeadless(l *log.Logger) {
	sys := system.InitializeSystem(console.NewSimple(), l)
	if *romFile != "" {
		if _, err := sys.LoadImageFile(*romFile); err != nil {
			return
		}
	}
	sys.Run()
	for sys.Running() {
		time.Sleep(time.Second)
	}
}

func startDot64(g *gocui.Gui, l *log.Logger) error {
	statusView, err := g.View("status")
	if err != nil {
		return err
	}
	statusView.Clear()

	sys := system.InitializeSystem(console.NewGui(g), l)
	fmt.Fprintf(statusView, "%s\n", sys.StatusLine())

	if *romFile != "" {
		_, _ = sys.LoadImageFile(*romFile)
	}

	if err := setKeybindings(g, sys); err != nil {
		return err
	}
	updateViews(sys, g)
	return nil
}

// keyboard commands:
//
//	r - reset cpu      s - single step   g - run     h - halt
//	l - load -rom      t - self test     b - boot built-in program
func setKeybindings(g *gocui.Gui, sys *system.System) error {
	bind := func(key rune, fn func()) error {
		return g.SetKeybinding("", key, gocui.ModNone,
			func(g *gocui.Gui, v *gocui.View) error {
				fn()
				return nil
			})
	}

	if err := bind('r', sys.Reset); err != nil {
		return err
	}
	if err := bind('s', sys.Step); err != nil {
		return err
	}
	if err := bind('g', sys.Run); err != nil {
		return err
	}
	if err := bind('h', sys.Stop); err != nil {
		return err
	}
	if err := bind('l', func() {
		if *romFile != "" {
			_, _ = sys.LoadImageFile(*romFile)
		}
	}); err != nil {
		return err
	}
	if err := bind('t', func() { _ = sys.SelfTest() }); err != nil {
		return err
	}
	if err := bind('b', sys.Boot); err != nil {
		return err
	}
	return g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit)
}

// updateViews refreshes the register and status panes once a second.
// gocui allows updating the view only through the Update function.
func updateViews(sys *system.System, g *gocui.Gui) {
	ticker := time.NewTicker(time.Second * 1)

	go func() {
		for range ticker.C {
			g.Update(func(g *gocui.Gui) error {
				v, err := g.View("registers")
				if err != nil {
					return err
				}
				v.Clear()
				fmt.Fprintln(v, sys.RegisterDump())

				s, err := g.View("status")
				if err != nil {
					return err
				}
				s.Clear()
				fmt.Fprintln(s, sys.StatusLine())
				return nil
			})
		}
	}()
}

// gocui layout
func layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// up -> console
	if v, err := g.SetView("console", 0, 0, maxX-1, maxY-11); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Console"
	}

	// middle -> register values
	if v, err := g.SetView("registers", 0, maxY-10, maxX-1, maxY-4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Registers"
	}
	// down -> status
	if v, err := g.SetView("status", 0, maxY-3, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
