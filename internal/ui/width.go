package ui

import (
	"os"

	"golang.org/x/term"
)

// TerminalWidth returns the current width of the terminal on stdout.
// Falls back to 80 when stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
