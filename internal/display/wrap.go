package display

import (
	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return WrapWidth(text, DefaultWidth)
}

// WrapWidth word-wraps text to width. A width of zero or less disables wrapping.
func WrapWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}
