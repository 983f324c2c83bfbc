package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-project-panel/internal/core/color"
	"github.com/penwyp/go-project-panel/internal/core/timeline"
	"github.com/penwyp/go-project-panel/internal/presentation/chart"
	"github.com/penwyp/go-project-panel/internal/presentation/layout"
	"github.com/penwyp/go-project-panel/internal/util"
)

const (
	glyphBar      = "░"
	glyphProgress = "█"
	glyphTick     = "┬"
	suffixWidth   = 5
)

// GanttFormatter draws the timeline as one terminal line per project
type GanttFormatter struct {
	out   io.Writer
	sizer *layout.Sizer
	color bool
}

func NewGanttFormatter(out io.Writer, sizer *layout.Sizer, useColor bool) *GanttFormatter {
	if sizer == nil {
		sizer = layout.SharedSizer()
	}
	return &GanttFormatter{out: out, sizer: sizer, color: useColor}
}

func (f *GanttFormatter) Format(report *Report) error {
	tl := report.Layout
	if tl == nil || len(tl.Rows) == 0 {
		fmt.Fprintln(f.out, f.style(util.FormatWarning, chart.EmptyMessage))
		return nil
	}

	labelWidth, barWidth := f.sizer.GanttColumns(tl.Categories(), suffixWidth)
	pos := scale(tl, barWidth)

	fmt.Fprintln(f.out, f.style(util.FormatHeaderTitle, chart.Title))
	fmt.Fprintln(f.out)

	for _, row := range tl.Rows {
		label := util.PadString(util.TruncateString(row.Name, labelWidth), labelWidth, true)
		fmt.Fprintf(f.out, "%s │%s│ %s\n", label, f.bar(row, pos, barWidth),
			util.PadString(row.ProgressLabel, suffixWidth-1, false))
	}

	axis, labels := axisLines(tl.Ticks, pos, barWidth)
	pad := strings.Repeat(" ", labelWidth)
	fmt.Fprintf(f.out, "%s └%s┘\n", pad, axis)
	fmt.Fprintf(f.out, "%s  %s\n", pad, f.style(util.FormatDim, strings.TrimRight(labels, " ")))
	fmt.Fprintf(f.out, "%s  %s\n", pad, f.style(util.FormatSectionTitle, util.CenterText(chart.XAxisTitle, barWidth)))
	return nil
}

// scale maps an instant to a cell index in [0, width)
func scale(tl *timeline.TimelineLayout, width int) func(time.Time) int {
	span := tl.Span()
	return func(t time.Time) int {
		if span <= 0 {
			return 0
		}
		i := int(float64(width-1) * float64(t.Sub(tl.AxisStart)) / float64(span))
		if i < 0 {
			return 0
		}
		if i > width-1 {
			return width - 1
		}
		return i
	}
}

func (f *GanttFormatter) bar(row timeline.TimelineRow, pos func(time.Time) int, width int) string {
	start, end := pos(row.BarStart), pos(row.BarEnd)
	filled := 0
	if row.HasProgressBar() {
		p := pos(row.ProgressEnd)
		if p > end {
			p = end
		}
		filled = p - start + 1
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", start))
	if filled > 0 {
		b.WriteString(f.paintHex(row.ProgressColor, strings.Repeat(glyphProgress, filled)))
	}
	if rest := end - start + 1 - filled; rest > 0 {
		b.WriteString(f.paintHex(row.BaseColor, strings.Repeat(glyphBar, rest)))
	}
	b.WriteString(strings.Repeat(" ", width-1-end))
	return b.String()
}

// axisLines returns the tick ruler and the month labels below it. Labels that
// would overlap the previous one are skipped.
func axisLines(ticks []time.Time, pos func(time.Time) int, width int) (string, string) {
	ruler := []rune(strings.Repeat("─", width))
	labels := []rune(strings.Repeat(" ", width))
	next := 0
	for _, tick := range ticks {
		i := pos(tick)
		ruler[i] = []rune(glyphTick)[0]
		text := []rune(util.FormatMonth(tick))
		if i < next || i+len(text) > width {
			continue
		}
		copy(labels[i:], text)
		next = i + len(text) + 1
	}
	return string(ruler), string(labels)
}

func (f *GanttFormatter) style(format func(string) string, text string) string {
	if !f.color {
		return text
	}
	return format(text)
}

func (f *GanttFormatter) paintHex(hex, text string) string {
	if !f.color {
		return text
	}
	r, g, b, err := color.RGB(hex)
	if err != nil {
		return text
	}
	return util.RGBForeground(r, g, b) + text + util.ColorReset
}
