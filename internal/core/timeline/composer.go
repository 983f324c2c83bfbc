package timeline

import (
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/penwyp/go-project-panel/internal/core/model"
)

// Compose orders rows by start date and derives the padded axis and monthly ticks.
// The input slice is not modified.
func Compose(rows []TimelineRow, opts LayoutOptions) (*TimelineLayout, error) {
	if len(rows) == 0 {
		return nil, goerr.New("no rows to lay out", goerr.T(model.ErrTagEmptyDataset))
	}

	ordered := make([]TimelineRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].BarStart.Before(ordered[j].BarStart)
	})

	minStart := ordered[0].BarStart
	maxEnd := ordered[0].BarEnd
	for _, row := range ordered {
		if row.BarEnd.After(maxEnd) {
			maxEnd = row.BarEnd
		}
		if row.ProgressEnd.After(maxEnd) {
			maxEnd = row.ProgressEnd
		}
	}

	padding := time.Duration(opts.PaddingDays) * day
	lower := minStart.Add(-padding)
	upper := maxEnd.Add(padding)

	ticks, err := MonthlyTicks(lower, upper)
	if err != nil {
		return nil, err
	}

	return &TimelineLayout{
		Rows:      ordered,
		AxisStart: lower,
		AxisEnd:   upper,
		Ticks:     ticks,
		Height:    opts.BaseHeight + opts.RowHeight*len(ordered),
	}, nil
}

// MonthlyTicks returns the first day of every month from the month containing
// lower through the month containing upper.
func MonthlyTicks(lower, upper time.Time) ([]time.Time, error) {
	if upper.Before(lower) {
		return nil, goerr.New("axis upper bound precedes lower bound",
			goerr.T(model.ErrTagInvalidRange),
			goerr.V("lower", lower),
			goerr.V("upper", upper))
	}

	first := monthStart(lower)
	last := monthStart(upper)

	var ticks []time.Time
	for t := first; !t.After(last); t = t.AddDate(0, 1, 0) {
		ticks = append(ticks, t)
	}
	return ticks, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
