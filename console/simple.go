package console

import (
	"io"
	"os"
	"strings"
)

// Simple is the fallback console writing straight to an io.Writer,
// stdout by default. Used by the -nogui mode and by tests.
type Simple struct {
	out io.Writer
}

// NewSimple returns a pointer to the new stdout console.
func NewSimple() *Simple {
	return &Simple{out: os.Stdout}
}

// NewSimpleWriter returns a console writing to w.
func NewSimpleWriter(w io.Writer) *Simple {
	return &Simple{out: w}
}

// WriteConsole displays a string on the console
func (c *Simple) WriteConsole(msg string) error {
	for _, line := range strings.Split(msg, "\n") {
		if line != "" {
			if _, err := io.WriteString(c.out, line+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
