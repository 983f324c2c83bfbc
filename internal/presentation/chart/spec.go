// Package chart turns a composed timeline into a chart description and an SVG.
package chart

import (
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-project-panel/internal/core/timeline"
	"github.com/penwyp/go-project-panel/internal/util"
)

const (
	Title      = "Duração dos Projetos"
	XAxisTitle = "Linha do Tempo"
	TickFormat = "%m/%Y"

	// EmptyMessage is shown instead of a chart when no row has usable dates
	EmptyMessage = "Não há dados de data suficientes para exibir o cronograma para os filtros selecionados."
)

// TraceKind distinguishes the full bar from the progress overlay
type TraceKind string

const (
	TraceMain     TraceKind = "main"
	TraceProgress TraceKind = "progress"
)

// Trace is one horizontal bar on a category lane
type Trace struct {
	Kind      TraceKind `json:"kind"`
	Category  string    `json:"category"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Color     string    `json:"color"`
	HoverText string    `json:"hover_text,omitempty"`
	Label     string    `json:"label,omitempty"`
	// LabelPosition is always "inside" for labelled traces
	LabelPosition string `json:"label_position,omitempty"`
}

// Axis describes the time axis
type Axis struct {
	Title      string      `json:"title"`
	Start      time.Time   `json:"start"`
	End        time.Time   `json:"end"`
	TickFormat string      `json:"tick_format"`
	Ticks      []time.Time `json:"ticks"`
	TickLabels []string    `json:"tick_labels"`
}

// Spec is a renderer-neutral description of the Gantt chart
type Spec struct {
	Title      string   `json:"title"`
	XAxis      Axis     `json:"xaxis"`
	Categories []string `json:"categories"`
	// ReversedCategories puts the first category at the top
	ReversedCategories bool    `json:"reversed_categories"`
	Height             int     `json:"height"`
	Traces             []Trace `json:"traces"`
	Empty              bool    `json:"empty"`
	Message            string  `json:"message,omitempty"`
}

// NewSpec describes layout. A nil layout produces an empty spec carrying the
// warning message.
func NewSpec(layout *timeline.TimelineLayout) *Spec {
	spec := &Spec{
		Title:              Title,
		XAxis:              Axis{Title: XAxisTitle, TickFormat: TickFormat},
		ReversedCategories: true,
	}
	if layout == nil || len(layout.Rows) == 0 {
		spec.Empty = true
		spec.Message = EmptyMessage
		spec.Categories = []string{}
		spec.Traces = []Trace{}
		return spec
	}

	spec.Height = layout.Height
	spec.Categories = layout.Categories()
	spec.XAxis.Start = layout.AxisStart
	spec.XAxis.End = layout.AxisEnd
	spec.XAxis.Ticks = layout.Ticks
	spec.XAxis.TickLabels = make([]string, len(layout.Ticks))
	for i, tick := range layout.Ticks {
		spec.XAxis.TickLabels[i] = util.FormatMonth(tick)
	}

	spec.Traces = make([]Trace, 0, len(layout.Rows)*2)
	for _, row := range layout.Rows {
		spec.Traces = append(spec.Traces, Trace{
			Kind:      TraceMain,
			Category:  row.Name,
			Start:     row.BarStart,
			End:       row.BarEnd,
			Color:     row.BaseColor,
			HoverText: row.HoverText,
		})
	}
	for _, row := range layout.Rows {
		if !row.HasProgressBar() {
			continue
		}
		spec.Traces = append(spec.Traces, Trace{
			Kind:          TraceProgress,
			Category:      row.Name,
			Start:         row.BarStart,
			End:           row.ProgressEnd,
			Color:         row.ProgressColor,
			HoverText:     row.HoverText,
			Label:         row.ProgressLabel,
			LabelPosition: "inside",
		})
	}
	return spec
}

// JSON encodes the spec
func (s *Spec) JSON() ([]byte, error) {
	return sonic.Marshal(s)
}
