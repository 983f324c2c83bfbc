package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
)

// GetDisplayWidth returns the terminal column width of text
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadString pads s with spaces to width columns
func PadString(s string, width int, leftAlign bool) string {
	actual := runewidth.StringWidth(s)
	if actual >= width {
		return s
	}
	padding := strings.Repeat(" ", width-actual)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// TruncateString cuts s to at most width columns, marking the cut with "…"
func TruncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// CenterText centers text within the given width
func CenterText(text string, width int) string {
	actual := runewidth.StringWidth(text)
	if actual >= width {
		return TruncateString(text, width)
	}
	left := (width - actual) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-actual-left)
}

// RGBForeground returns the 24-bit ANSI foreground sequence for a color
func RGBForeground(r, g, b uint8) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
}

// FormatHeaderTitle formats main header titles (Green + Bold)
func FormatHeaderTitle(title string) string {
	return ColorBold + ColorGreen + title + ColorReset
}

// FormatSectionTitle formats section titles (Cyan + Bold)
func FormatSectionTitle(title string) string {
	return ColorBold + ColorCyan + title + ColorReset
}

// FormatWarning formats a warning line (Yellow)
func FormatWarning(text string) string {
	return ColorYellow + text + ColorReset
}

// FormatDim formats secondary text such as axis labels (Dim)
func FormatDim(text string) string {
	return ColorDim + text + ColorReset
}
