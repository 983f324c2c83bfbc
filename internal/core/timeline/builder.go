package timeline

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/penwyp/go-project-panel/internal/core/color"
	"github.com/penwyp/go-project-panel/internal/core/model"
	"github.com/penwyp/go-project-panel/internal/util"
)

// TimelineBuilder turns project records into timeline rows
type TimelineBuilder struct {
	colors *color.Assigner
	policy ProgressPolicy
}

// NewTimelineBuilder creates a builder; an unknown policy falls back to sub-day
func NewTimelineBuilder(colors *color.Assigner, policy ProgressPolicy) *TimelineBuilder {
	if !policy.Valid() {
		policy = ProgressSubDay
	}
	return &TimelineBuilder{colors: colors, policy: policy}
}

// BuildRow computes the row for a single record
func (tb *TimelineBuilder) BuildRow(record model.ProjectRecord) (TimelineRow, error) {
	if !record.HasTimeline() {
		return TimelineRow{}, goerr.New("record has no start or planned end date",
			goerr.T(model.ErrTagInvalidDateRange),
			goerr.V("name", record.Name),
			goerr.V("row", record.Row))
	}
	return BuildRow(record.Name, *record.StartDate, *record.PlannedEndDate,
		record.MVPProgress, tb.colors.Assign(record.Name), tb.policy)
}

// BuildRows builds rows for every record that has both dates. Records without
// dates are dropped silently; records whose end precedes the start are skipped
// with a warning. The second value is the number of records left out.
func (tb *TimelineBuilder) BuildRows(records []model.ProjectRecord) ([]TimelineRow, int) {
	rows := make([]TimelineRow, 0, len(records))
	dropped := 0

	for _, record := range records {
		if !record.HasTimeline() {
			dropped++
			continue
		}
		row, err := tb.BuildRow(record)
		if err != nil {
			util.LogWarn("Skipping project with invalid date range",
				util.F("name", record.Name),
				util.F("row", record.Row),
				util.F("error", err.Error()))
			dropped++
			continue
		}
		rows = append(rows, row)
	}

	util.LogDebugf("Built %d timeline rows, %d records left out", len(rows), dropped)
	return rows, dropped
}

// BuildRow computes one timeline row. It fails when end precedes start.
func BuildRow(name string, start, end time.Time, progress float64, colors color.Pair, policy ProgressPolicy) (TimelineRow, error) {
	if end.Before(start) {
		return TimelineRow{}, goerr.New("planned end precedes start",
			goerr.T(model.ErrTagInvalidDateRange),
			goerr.V("name", name),
			goerr.V("start", start),
			goerr.V("end", end))
	}

	pct := NormalizeProgress(progress)
	row := TimelineRow{
		Name:          name,
		BaseColor:     colors.Base,
		ProgressColor: colors.Progress,
		BarStart:      start,
		BarEnd:        end,
		ProgressEnd:   ProgressEnd(start, end, pct, policy),
		Progress:      pct,
	}
	if pct > 0 {
		row.ProgressLabel = util.FormatPercent(pct)
	}
	row.HoverText = hoverText(row)
	return row, nil
}

// NormalizeProgress maps absent or out-of-range percentages into [0, 100]
func NormalizeProgress(p float64) float64 {
	switch {
	case math.IsNaN(p), p <= 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// ProgressEnd interpolates start + (end-start) * pct/100 under the given policy
func ProgressEnd(start, end time.Time, pct float64, policy ProgressPolicy) time.Time {
	pct = NormalizeProgress(pct)
	if pct == 0 || !end.After(start) {
		return start
	}

	total := end.Sub(start)
	if policy == ProgressWholeDay {
		total = total.Truncate(day)
	}

	offset := time.Duration(math.Round(float64(total) * pct / 100))
	if p := start.Add(offset); p.Before(end) {
		return p
	}
	return end
}

func hoverText(row TimelineRow) string {
	lines := []string{
		row.Name,
		fmt.Sprintf("Início: %s", util.FormatDate(row.BarStart)),
		fmt.Sprintf("Previsão de término: %s", util.FormatDate(row.BarEnd)),
	}
	if row.HasProgressBar() {
		lines = append(lines, fmt.Sprintf("Andamento MVP: %s", row.ProgressLabel))
	}
	return strings.Join(lines, "\n")
}
