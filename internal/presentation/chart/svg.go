package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/penwyp/go-project-panel/internal/core/timeline"
	"github.com/penwyp/go-project-panel/internal/util"
)

// SVGConfig holds rendering parameters
type SVGConfig struct {
	Width       int
	MarginLeft  int
	MarginRight int
	MarginTop   int
	BarPadding  int
	FontSize    int
	LabelSize   int
	BgColor     string
	GridColor   string
	TextColor   string
	LabelColor  string
	EmptyHeight int
}

func DefaultSVGConfig() SVGConfig {
	return SVGConfig{
		Width:       1200,
		MarginLeft:  240,
		MarginRight: 40,
		MarginTop:   60,
		BarPadding:  6,
		FontSize:    12,
		LabelSize:   14,
		BgColor:     "#ffffff",
		GridColor:   "#e5e5e5",
		TextColor:   "#333333",
		LabelColor:  "#ffffff",
		EmptyHeight: 200,
	}
}

// RenderSVG draws the layout as a standalone SVG document. Rows are drawn top
// to bottom in layout order; the lane height is derived from the layout height
// so that the chart grows linearly with the number of rows.
func RenderSVG(layout *timeline.TimelineLayout, cfg SVGConfig) string {
	if layout == nil || len(layout.Rows) == 0 {
		return emptySVG(cfg, EmptyMessage)
	}

	height := layout.Height
	n := len(layout.Rows)
	// The vertical margins take the fixed part of the height
	marginBottom := cfg.MarginTop
	laneHeight := float64(height-cfg.MarginTop-marginBottom) / float64(n)
	if laneHeight <= 0 {
		laneHeight = 1
	}

	plotLeft := float64(cfg.MarginLeft)
	plotWidth := float64(cfg.Width - cfg.MarginLeft - cfg.MarginRight)
	span := layout.Span()
	x := func(t time.Time) float64 {
		if span <= 0 {
			return plotLeft
		}
		return plotLeft + plotWidth*float64(t.Sub(layout.AxisStart))/float64(span)
	}
	plotTop := float64(cfg.MarginTop)
	plotBottom := plotTop + laneHeight*float64(n)

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg.Width, height))
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, cfg.Width, height, cfg.BgColor))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="30" font-size="18" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
		cfg.Width/2, cfg.TextColor, escapeXML(Title)))

	// Monthly grid, clipped to the plot area
	for _, tick := range layout.Ticks {
		if tick.Before(layout.AxisStart) || tick.After(layout.AxisEnd) {
			continue
		}
		tx := x(tick)
		sb.WriteString(fmt.Sprintf(`<line class="grid" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`,
			tx, plotTop, tx, plotBottom, cfg.GridColor))
		sb.WriteString(fmt.Sprintf(`<text class="tick" x="%.1f" y="%.1f" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			tx, plotBottom+16, cfg.FontSize, cfg.TextColor, util.FormatMonth(tick)))
	}
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
		plotLeft+plotWidth/2, height-12, cfg.FontSize+1, cfg.TextColor, escapeXML(XAxisTitle)))

	barHeight := laneHeight - 2*float64(cfg.BarPadding)
	if barHeight < 2 {
		barHeight = laneHeight
	}
	for i, row := range layout.Rows {
		laneTop := plotTop + laneHeight*float64(i)
		barY := laneTop + (laneHeight-barHeight)/2
		midY := laneTop + laneHeight/2

		sb.WriteString(fmt.Sprintf(`<text class="category" x="%.1f" y="%.1f" font-size="%d" fill="%s" text-anchor="end" dominant-baseline="middle">%s</text>`,
			plotLeft-8, midY, cfg.FontSize, cfg.TextColor, escapeXML(row.Name)))

		sb.WriteString(`<g class="row">`)
		x0, x1 := x(row.BarStart), x(row.BarEnd)
		sb.WriteString(fmt.Sprintf(`<rect class="bar" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="2"><title>%s</title></rect>`,
			x0, barY, x1-x0, barHeight, row.BaseColor, escapeXML(row.HoverText)))

		if row.HasProgressBar() {
			p1 := x(row.ProgressEnd)
			sb.WriteString(fmt.Sprintf(`<rect class="progress" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="2"><title>%s</title></rect>`,
				x0, barY, p1-x0, barHeight, row.ProgressColor, escapeXML(row.HoverText)))
			if row.ProgressLabel != "" {
				sb.WriteString(fmt.Sprintf(`<text class="label" x="%.1f" y="%.1f" font-size="%d" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`,
					x0+(p1-x0)/2, midY, cfg.LabelSize, cfg.LabelColor, escapeXML(row.ProgressLabel)))
			}
		}
		sb.WriteString(`</g>`)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func svgHeader(width, height int) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		width, height, width, height)
}

func emptySVG(cfg SVGConfig, msg string) string {
	return svgHeader(cfg.Width, cfg.EmptyHeight) +
		fmt.Sprintf(`<rect width="%d" height="%d" fill="#f5f5f5"/><text x="%d" y="%d" text-anchor="middle" fill="#999" font-size="14">%s</text></svg>`,
			cfg.Width, cfg.EmptyHeight, cfg.Width/2, cfg.EmptyHeight/2, escapeXML(msg))
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlReplacer.Replace(s)
}
