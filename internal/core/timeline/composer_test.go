package timeline

import (
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-project-panel/internal/core/model"
)

func row(name string, start, end time.Time) TimelineRow {
	return TimelineRow{Name: name, BarStart: start, BarEnd: end, ProgressEnd: start}
}

func TestComposeEmptyDataset(t *testing.T) {
	layout, err := Compose(nil, DefaultLayoutOptions())
	require.Error(t, err)
	assert.Nil(t, layout)
	assert.True(t, goerr.HasTag(err, model.ErrTagEmptyDataset))
}

func TestComposeOrdersByStartStably(t *testing.T) {
	rows := []TimelineRow{
		row("late", date(2024, 5, 1), date(2024, 6, 1)),
		row("tie-1", date(2024, 2, 1), date(2024, 3, 1)),
		row("early", date(2024, 1, 1), date(2024, 2, 1)),
		row("tie-2", date(2024, 2, 1), date(2024, 2, 10)),
		row("tie-3", date(2024, 2, 1), date(2024, 4, 10)),
	}

	layout, err := Compose(rows, DefaultLayoutOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"early", "tie-1", "tie-2", "tie-3", "late"}, layout.Categories())
	// Input untouched
	assert.Equal(t, "late", rows[0].Name)
}

func TestComposeAxisBounds(t *testing.T) {
	rows := []TimelineRow{
		row("a", date(2024, 3, 10), date(2024, 4, 20)),
		row("b", date(2024, 1, 5), date(2024, 2, 1)),
		row("c", date(2024, 2, 1), date(2024, 9, 30)),
	}

	layout, err := Compose(rows, DefaultLayoutOptions())
	require.NoError(t, err)

	assert.Equal(t, date(2024, 1, 5).Add(-30*day), layout.AxisStart)
	assert.Equal(t, date(2024, 9, 30).Add(30*day), layout.AxisEnd)
	assert.Equal(t, 30*day, date(2024, 1, 5).Sub(layout.AxisStart))
	assert.Equal(t, 30*day, layout.AxisEnd.Sub(date(2024, 9, 30)))
}

func TestComposeUpperBoundConsidersProgressEnd(t *testing.T) {
	r := row("a", date(2024, 1, 1), date(2024, 2, 1))
	r.ProgressEnd = date(2024, 3, 1)

	layout, err := Compose([]TimelineRow{r}, DefaultLayoutOptions())
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 1).Add(30*day), layout.AxisEnd)
}

func TestComposeTicks(t *testing.T) {
	rows := []TimelineRow{row("a", date(2024, 1, 15), date(2024, 4, 10))}

	layout, err := Compose(rows, DefaultLayoutOptions())
	require.NoError(t, err)

	// Axis runs 2023-12-16 .. 2024-05-10
	assert.Equal(t, []time.Time{
		date(2023, 12, 1),
		date(2024, 1, 1),
		date(2024, 2, 1),
		date(2024, 3, 1),
		date(2024, 4, 1),
		date(2024, 5, 1),
	}, layout.Ticks)

	first := layout.Ticks[0]
	last := layout.Ticks[len(layout.Ticks)-1]
	assert.False(t, first.After(layout.AxisStart))
	assert.False(t, last.Before(monthStart(layout.AxisEnd)))
	for i := 1; i < len(layout.Ticks); i++ {
		assert.True(t, layout.Ticks[i].After(layout.Ticks[i-1]))
	}
}

func TestComposeHeightIsMonotonic(t *testing.T) {
	opts := DefaultLayoutOptions()
	var rows []TimelineRow
	previous := 0
	for i := 0; i < 5; i++ {
		rows = append(rows, row("r", date(2024, 1, 1+i), date(2024, 2, 1)))
		layout, err := Compose(rows, opts)
		require.NoError(t, err)
		assert.Greater(t, layout.Height, previous)
		previous = layout.Height
	}
}

func TestComposeNegativePaddingInvalidRange(t *testing.T) {
	rows := []TimelineRow{row("a", date(2024, 1, 1), date(2024, 1, 11))}
	opts := DefaultLayoutOptions()
	opts.PaddingDays = -30

	_, err := Compose(rows, opts)
	require.Error(t, err)
	assert.True(t, goerr.HasTag(err, model.ErrTagInvalidRange))
}

func TestMonthlyTicks(t *testing.T) {
	tests := []struct {
		name    string
		lower   time.Time
		upper   time.Time
		want    int
		wantErr bool
	}{
		{name: "same day", lower: date(2024, 2, 10), upper: date(2024, 2, 10), want: 1},
		{name: "same month", lower: date(2024, 2, 1), upper: date(2024, 2, 29), want: 1},
		{name: "year boundary", lower: date(2023, 11, 30), upper: date(2024, 2, 1), want: 4},
		{name: "two years", lower: date(2022, 1, 1), upper: date(2023, 12, 31), want: 24},
		{name: "reversed", lower: date(2024, 3, 1), upper: date(2024, 2, 1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks, err := MonthlyTicks(tt.lower, tt.upper)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, goerr.HasTag(err, model.ErrTagInvalidRange))
				return
			}
			require.NoError(t, err)
			assert.Len(t, ticks, tt.want)
			for _, tick := range ticks {
				assert.Equal(t, 1, tick.Day())
			}
		})
	}
}
