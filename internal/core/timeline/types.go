package timeline

import (
	"time"
)

// ProgressPolicy selects how the MVP progress point is interpolated
type ProgressPolicy string

const (
	// ProgressSubDay interpolates over the full elapsed duration
	ProgressSubDay ProgressPolicy = "sub-day"
	// ProgressWholeDay truncates the duration to whole days before interpolating
	ProgressWholeDay ProgressPolicy = "whole-day"
)

// Valid reports whether p is a known policy
func (p ProgressPolicy) Valid() bool {
	return p == ProgressSubDay || p == ProgressWholeDay
}

const day = 24 * time.Hour

// TimelineRow is the geometry of one Gantt bar
type TimelineRow struct {
	Name          string    `json:"name"`
	BaseColor     string    `json:"base_color"`
	ProgressColor string    `json:"progress_color"`
	BarStart      time.Time `json:"bar_start"`
	BarEnd        time.Time `json:"bar_end"`
	ProgressEnd   time.Time `json:"progress_end"`
	// Progress is the normalized percentage in [0, 100]
	Progress      float64 `json:"progress"`
	ProgressLabel string  `json:"progress_label,omitempty"`
	HoverText     string  `json:"hover_text"`
}

// HasProgressBar reports whether a progress sub-bar should be drawn
func (r TimelineRow) HasProgressBar() bool {
	return r.Progress > 0
}

// Duration returns the length of the main bar
func (r TimelineRow) Duration() time.Duration {
	return r.BarEnd.Sub(r.BarStart)
}

// LayoutOptions controls axis padding and vertical sizing
type LayoutOptions struct {
	PaddingDays int
	RowHeight   int
	BaseHeight  int
}

// DefaultLayoutOptions pads the axis by 30 days on each side
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		PaddingDays: 30,
		RowHeight:   40,
		BaseHeight:  120,
	}
}

// TimelineLayout is the composed chart: ordered rows plus axis geometry
type TimelineLayout struct {
	Rows      []TimelineRow `json:"rows"`
	AxisStart time.Time     `json:"axis_start"`
	AxisEnd   time.Time     `json:"axis_end"`
	Ticks     []time.Time   `json:"ticks"`
	Height    int           `json:"height"`
}

// Categories returns row names in display order, earliest start first
func (l *TimelineLayout) Categories() []string {
	names := make([]string, len(l.Rows))
	for i, row := range l.Rows {
		names[i] = row.Name
	}
	return names
}

// Span returns the width of the axis
func (l *TimelineLayout) Span() time.Duration {
	return l.AxisEnd.Sub(l.AxisStart)
}
