// Package terminal probes the controlling terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24

	// MinWidth and MinHeight are the smallest sizes the terminal view can lay
	// out a map, a HUD line and a panel in.
	MinWidth  = 60
	MinHeight = 20
)

// IsInteractive reports whether both stdin and stdout are attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// FitsTerminalView reports whether a terminal of the given size can host the
// terminal renderer.
func FitsTerminalView(width, height int) bool {
	return width >= MinWidth && height >= MinHeight
}
