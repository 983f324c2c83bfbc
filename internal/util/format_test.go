package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{name: "zero", input: 0, expected: "0"},
		{name: "hundreds", input: 999, expected: "999"},
		{name: "exactly 1000", input: 1000, expected: "1,000"},
		{name: "millions", input: 1234567, expected: "1,234,567"},
		{name: "negative", input: -4500, expected: "-4,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatNumber(tt.input))
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "07/03/2024", FormatDate(d))
	assert.Equal(t, "", FormatDate(time.Time{}))
	assert.Equal(t, "07/03/2024", FormatDatePtr(&d))
	assert.Equal(t, "", FormatDatePtr(nil))
	assert.Equal(t, "03/2024", FormatMonth(d))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "50%", FormatPercent(50))
	assert.Equal(t, "13%", FormatPercent(12.6))
	assert.Equal(t, "0%", FormatPercent(0))
}
