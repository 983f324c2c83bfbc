// Package color assigns deterministic display colors to projects.
package color

import (
	"hash/fnv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/m-mizutani/goerr/v2"

	"github.com/penwyp/go-project-panel/internal/core/model"
)

// DefaultDarkenFactor scales the brightness of progress sub-bars
const DefaultDarkenFactor = 0.5

// DefaultPalette is the qualitative sequence used by Plotly charts
var DefaultPalette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// Pair holds the colors used for one timeline row
type Pair struct {
	Base     string `json:"base"`
	Progress string `json:"progress"`
}

// Assigner maps project identifiers onto a fixed palette
type Assigner struct {
	palette []colorful.Color
	factor  float64
}

// NewAssigner validates every palette entry up front so Assign cannot fail on
// a bad palette later.
func NewAssigner(palette []string, factor float64) (*Assigner, error) {
	if len(palette) == 0 {
		return nil, goerr.New("palette is empty", goerr.T(model.ErrTagInvalidColorFormat))
	}

	parsed := make([]colorful.Color, len(palette))
	for i, hex := range palette {
		c, err := ParseHex(hex)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid palette entry",
				goerr.T(model.ErrTagInvalidColorFormat),
				goerr.V("index", i))
		}
		parsed[i] = c
	}

	return &Assigner{palette: parsed, factor: factor}, nil
}

// Assign returns the base and progress colors for identifier
func (a *Assigner) Assign(identifier string) Pair {
	base := a.palette[Index(identifier, len(a.palette))]
	return Pair{
		Base:     base.Hex(),
		Progress: darken(base, a.factor).Hex(),
	}
}

// Size returns the number of palette entries
func (a *Assigner) Size() int {
	return len(a.palette)
}

// Assign is the one-shot form of Assigner.Assign
func Assign(identifier string, palette []string, factor float64) (Pair, error) {
	a, err := NewAssigner(palette, factor)
	if err != nil {
		return Pair{}, err
	}
	return a.Assign(identifier), nil
}

// Index hashes identifier with 32-bit FNV-1a into [0, n)
func Index(identifier string, n int) int {
	if n <= 0 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(identifier))
	return int(h.Sum32() % uint32(n))
}
