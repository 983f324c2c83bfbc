package color

import (
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/m-mizutani/goerr/v2"

	"github.com/penwyp/go-project-panel/internal/core/model"
)

// ParseHex parses a #RRGGBB color. Short forms and names are rejected.
func ParseHex(s string) (colorful.Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return colorful.Color{}, goerr.New("color must have the form #RRGGBB",
			goerr.T(model.ErrTagInvalidColorFormat),
			goerr.V("color", s))
	}
	if strings.IndexFunc(s[1:], isNotHexDigit) >= 0 {
		return colorful.Color{}, goerr.New("color contains non-hex characters",
			goerr.T(model.ErrTagInvalidColorFormat),
			goerr.V("color", s))
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, goerr.Wrap(err, "failed to parse color",
			goerr.T(model.ErrTagInvalidColorFormat),
			goerr.V("color", s))
	}
	return c, nil
}

// RGB returns the 8-bit channels of a #RRGGBB color
func RGB(hex string) (r, g, b uint8, err error) {
	c, err := ParseHex(hex)
	if err != nil {
		return 0, 0, 0, err
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}

// Darken multiplies the HSV brightness of hex by factor, keeping hue and
// saturation. Brightness is clamped to [0, 1]; callers keep factor in [0, 1]
// so the result is never brighter than hex.
func Darken(hex string, factor float64) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return darken(c, factor).Hex(), nil
}

func darken(c colorful.Color, factor float64) colorful.Color {
	h, s, v := c.Hsv()
	v *= factor
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return colorful.Hsv(h, s, v).Clamped()
}

func isNotHexDigit(r rune) bool {
	return !unicode.Is(unicode.ASCII_Hex_Digit, r)
}
