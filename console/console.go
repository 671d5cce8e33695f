package console

/*
group all console output related functions here

the console is the scrollback log of the emulator shell: every part of
the system reports status messages to it through a string channel, and
the active implementation decides where the lines end up:
  - Gui   -> the gocui console view, with a bounded scrollback
  - Simple -> plain stdout, for the -nogui mode and for tests
*/

// Console is the output surface the emulator writes status and trace
// lines to.
type Console interface {
	WriteConsole(msg string) error
}
