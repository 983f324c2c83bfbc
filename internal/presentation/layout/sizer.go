// Package layout sizes terminal output.
package layout

import (
	"os"

	"golang.org/x/term"

	"github.com/penwyp/go-project-panel/internal/util"
)

const (
	// DefaultWidth is used when stdout is not a terminal
	DefaultWidth = 100
	minWidth     = 60
	maxWidth     = 200

	maxLabelWidth = 32
	minBarWidth   = 20
)

// Package-level singleton Sizer instance
var sharedSizer = &Sizer{fd: int(os.Stdout.Fd())}

type Sizer struct {
	fd    int
	width int
}

// SharedSizer sizes against stdout
func SharedSizer() *Sizer {
	return sharedSizer
}

// NewFixedSizer always reports width, which is useful for files and tests
func NewFixedSizer(width int) *Sizer {
	return &Sizer{fd: -1, width: width}
}

// Width returns the usable terminal width, clamped to a sane range
func (s *Sizer) Width() int {
	width := s.width
	if width <= 0 {
		w, _, err := term.GetSize(s.fd)
		if err != nil || w <= 0 {
			w = DefaultWidth
		}
		width = w
	}

	if width < minWidth {
		width = minWidth
	}
	if width > maxWidth {
		width = maxWidth
	}
	util.LogDebugf("Sizer width %d", width)
	return width
}

// GanttColumns splits the width between the name column and the bar area.
// The suffix is reserved for the trailing percentage label.
func (s *Sizer) GanttColumns(labels []string, suffix int) (labelWidth, barWidth int) {
	for _, l := range labels {
		if w := util.GetDisplayWidth(l); w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > maxLabelWidth {
		labelWidth = maxLabelWidth
	}

	// "label │bar│ suffix"
	barWidth = s.Width() - labelWidth - suffix - 4
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	return labelWidth, barWidth
}
