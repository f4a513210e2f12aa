package util

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const defaultTerminalWidth = 100

// GetDisplayWidth calculates the actual display width of a string,
// accounting for wide runes and emojis.
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces to the given display width.
func PadRight(text string, width int) string {
	gap := width - GetDisplayWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// PadLeft right-aligns text within the given display width.
func PadLeft(text string, width int) string {
	gap := width - GetDisplayWidth(text)
	if gap <= 0 {
		return text
	}
	return strings.Repeat(" ", gap) + text
}

// TerminalWidth returns the current terminal width, falling back to a
// sane default when stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}
