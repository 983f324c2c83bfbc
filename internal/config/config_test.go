package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-project-panel/internal/core/color"
	"github.com/penwyp/go-project-panel/internal/core/model"
	"github.com/penwyp/go-project-panel/internal/core/timeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, color.DefaultPalette, cfg.Chart.Palette)
	assert.Equal(t, 0.5, cfg.Chart.DarkenFactor)
	assert.Equal(t, timeline.DefaultLayoutOptions(), cfg.LayoutOptions())
	assert.Equal(t, timeline.ProgressSubDay, cfg.ProgressPolicy())
	assert.True(t, cfg.Data.Watch)
	assert.Equal(t, DefaultListen, cfg.Server.Listen)

	// Defaults do not share the package palette
	cfg.Chart.Palette[0] = "#000000"
	assert.NotEqual(t, "#000000", color.DefaultPalette[0])
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
data:
  file: /srv/projetos.xlsx
  watch: false
chart:
  palette: ["#112233", "#445566"]
  darken_factor: 0.7
  padding_days: 15
  progress_policy: whole-day
server:
  listen: ":9000"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/projetos.xlsx", cfg.Data.File)
	assert.False(t, cfg.Data.Watch)
	assert.Equal(t, []string{"#112233", "#445566"}, cfg.Chart.Palette)
	assert.Equal(t, 0.7, cfg.Chart.DarkenFactor)
	assert.Equal(t, 15, cfg.LayoutOptions().PaddingDays)
	// Untouched fields keep their defaults
	assert.Equal(t, 40, cfg.LayoutOptions().RowHeight)
	assert.Equal(t, timeline.ProgressWholeDay, cfg.ProgressPolicy())
	assert.Equal(t, ":9000", cfg.Server.Listen)

	assigner, err := cfg.Assigner()
	require.NoError(t, err)
	assert.Equal(t, 2, assigner.Size())
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("PANEL_TEST_FILE", "/data/mapa.xlsx")
	cfg, err := Load(writeConfig(t, "data:\n  file: ${PANEL_TEST_FILE}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/data/mapa.xlsx", cfg.Data.File)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "chart: [unclosed"},
		{"bad color", "chart:\n  palette: [\"#12345\"]\n"},
		{"empty palette", "chart:\n  palette: []\n"},
		{"negative padding", "chart:\n  padding_days: -1\n"},
		{"negative factor", "chart:\n  darken_factor: -0.5\n"},
		{"brightening factor", "chart:\n  darken_factor: 1.5\n"},
		{"unknown policy", "chart:\n  progress_policy: hourly\n"},
		{"zero row height", "chart:\n  row_height: 0\n"},
		{"empty listen", "server:\n  listen: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, goerr.HasTag(err, model.ErrTagInvalidConfig))
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadDefaultLocationMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultListen, cfg.Server.Listen)
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, "a", "b.yaml"), ExpandPath("~/a/b.yaml"))
	assert.True(t, filepath.IsAbs(ExpandPath("rel/file.xlsx")))
}

func TestValidateDarkenFactorBounds(t *testing.T) {
	for _, factor := range []float64{0, 0.5, 1} {
		cfg := DefaultConfig()
		cfg.Chart.DarkenFactor = factor
		assert.NoError(t, cfg.Validate(), factor)
	}

	cfg := DefaultConfig()
	cfg.Chart.DarkenFactor = 1.01
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, goerr.HasTag(err, model.ErrTagInvalidConfig))
}
