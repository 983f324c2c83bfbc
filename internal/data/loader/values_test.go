package loader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    string
		expected *time.Time
	}{
		{name: "day first", input: "15/01/2024", expected: &jan15},
		{name: "day first single digits", input: "5/3/2024", expected: ptr(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))},
		{name: "ambiguous is day first", input: "02/03/2024", expected: ptr(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))},
		{name: "day first with time", input: "15/01/2024 00:00:00", expected: &jan15},
		{name: "dashes", input: "15-01-2024", expected: &jan15},
		{name: "iso", input: "2024-01-15", expected: &jan15},
		{name: "iso with time", input: "2024-01-15 00:00:00", expected: &jan15},
		{name: "excel serial", input: "45306", expected: &jan15},
		{name: "padded", input: "  15/01/2024 ", expected: &jan15},
		{name: "empty", input: "", expected: nil},
		{name: "garbage", input: "a definir", expected: nil},
		{name: "invalid day", input: "31/02/2024", expected: nil},
		{name: "tiny number", input: "0.5", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.expected.Equal(*got), "got %v", got)
		})
	}
}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{input: "45", expected: 45},
		{input: "45.5", expected: 45.5},
		{input: "45,5", expected: 45.5},
		{input: "80%", expected: 80},
		{input: " 12 % ", expected: 12},
		{input: "", expected: 0},
		{input: "n/a", expected: 0},
		{input: "NaN", expected: 0},
		{input: "-10", expected: -10},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseProgress(tt.input))
		})
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
