package console

import (
	"fmt"
	"strings"

	"github.com/jroimartin/gocui"
)

// scrollbackLines caps the console view history.
const scrollbackLines = 500

// Gui is the gocui-backed console: lines go through a channel into the
// update goroutine, which redraws the console view from the scrollback.
type Gui struct {
	consoleOut chan string // string channel, to which the console data is sent
	g          *gocui.Gui
	v          *gocui.View // gocui view of the console log
	history    *Scrollback
}

// NewGui returns a pointer to the new console and starts the update
// goroutine.
func NewGui(g *gocui.Gui) *Gui {
	c := new(Gui)
	c.consoleOut = make(chan string)
	c.g = g
	c.v, _ = g.View("console")
	c.history = NewScrollback(scrollbackLines)
	c.initGui()
	return c
}

// initGui starts the goroutine feeding console lines into the view.
// gocui allows view updates only through the Update function.
func (c *Gui) initGui() {
	go func() {
		for s := range c.consoleOut {
			c.history.Push(s)
			c.g.Update(func(g *gocui.Gui) error {
				c.v.Clear()
				for _, line := range c.history.Lines() {
					fmt.Fprint(c.v, line)
				}
				return nil
			})
		}
	}()
}

// WriteConsole displays a string on the console
func (c *Gui) WriteConsole(msg string) error {
	for _, line := range strings.Split(msg, "\n") {
		if line != "" {
			c.consoleOut <- line + "\n"
		}
	}
	return nil
}
