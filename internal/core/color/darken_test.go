package color

import (
	"math"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-project-panel/internal/core/model"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "upper case", input: "#636EFA"},
		{name: "lower case", input: "#00cc96"},
		{name: "missing hash", input: "636EFA", wantErr: true},
		{name: "short form", input: "#fff", wantErr: true},
		{name: "too long", input: "#636EFA00", wantErr: true},
		{name: "non hex", input: "#63GEFA", wantErr: true},
		{name: "embedded space", input: "#63 EFA", wantErr: true},
		{name: "signed digits", input: "#+3EFA0", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHex(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, goerr.HasTag(err, model.ErrTagInvalidColorFormat))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRGB(t *testing.T) {
	r, g, b, err := RGB("#636EFA")
	require.NoError(t, err)
	assert.Equal(t, []uint8{99, 110, 250}, []uint8{r, g, b})

	_, _, _, err = RGB("nope")
	assert.Error(t, err)
}

func TestDarkenKnownValues(t *testing.T) {
	tests := []struct {
		input    string
		factor   float64
		expected string
	}{
		{input: "#808080", factor: 0.5, expected: "#404040"},
		{input: "#00CC96", factor: 0.5, expected: "#00664b"},
		{input: "#FF0000", factor: 0, expected: "#000000"},
		{input: "#FF0000", factor: 1, expected: "#ff0000"},
		{input: "#FF0000", factor: -2, expected: "#000000"},
		{input: "#808080", factor: 10, expected: "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Darken(tt.input, tt.factor)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDarkenPreservesHueAndSaturation(t *testing.T) {
	for _, hex := range DefaultPalette {
		base, err := ParseHex(hex)
		require.NoError(t, err)
		h0, s0, v0 := base.Hsv()

		for _, factor := range []float64{0.25, 0.5, 0.75, 1} {
			out, err := Darken(hex, factor)
			require.NoError(t, err)

			darker, err := ParseHex(out)
			require.NoError(t, err)
			h1, s1, v1 := darker.Hsv()

			dh := math.Abs(h0 - h1)
			if dh > 180 {
				dh = 360 - dh
			}
			assert.LessOrEqual(t, dh, 2.0, "hue drift for %s at %.2f", hex, factor)
			assert.InDelta(t, s0, s1, 0.02, "saturation drift for %s at %.2f", hex, factor)
			assert.LessOrEqual(t, v1, v0+1e-9, "brightness grew for %s at %.2f", hex, factor)
		}
	}
}

func TestDarkenIsPure(t *testing.T) {
	first, err := Darken("#AB63FA", 0.5)
	require.NoError(t, err)
	second, err := Darken("#AB63FA", 0.5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDarkenRejectsMalformedColor(t *testing.T) {
	_, err := Darken("#XYZXYZ", 0.5)
	require.Error(t, err)
	assert.True(t, goerr.HasTag(err, model.ErrTagInvalidColorFormat))
}
