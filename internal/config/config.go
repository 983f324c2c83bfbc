// Package config loads the optional YAML settings file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-project-panel/internal/core/color"
	"github.com/penwyp/go-project-panel/internal/core/model"
	"github.com/penwyp/go-project-panel/internal/core/timeline"
)

const (
	DefaultConfigFile = "~/.go-project-panel/config.yaml"
	DefaultLogFile    = "~/.go-project-panel/logs/app.log"
	DefaultListen     = "127.0.0.1:8501"
)

type Config struct {
	Data   DataConfig   `yaml:"data"`
	Chart  ChartConfig  `yaml:"chart"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	// Timezone is used for log and "loaded at" timestamps
	Timezone string `yaml:"timezone"`
}

type DataConfig struct {
	File  string `yaml:"file"`
	Watch bool   `yaml:"watch"`
}

type ChartConfig struct {
	Palette        []string `yaml:"palette"`
	DarkenFactor   float64  `yaml:"darken_factor"`
	PaddingDays    int      `yaml:"padding_days"`
	RowHeight      int      `yaml:"row_height"`
	BaseHeight     int      `yaml:"base_height"`
	ProgressPolicy string   `yaml:"progress_policy"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	layout := timeline.DefaultLayoutOptions()
	return &Config{
		Data: DataConfig{Watch: true},
		Chart: ChartConfig{
			Palette:        append([]string(nil), color.DefaultPalette...),
			DarkenFactor:   color.DefaultDarkenFactor,
			PaddingDays:    layout.PaddingDays,
			RowHeight:      layout.RowHeight,
			BaseHeight:     layout.BaseHeight,
			ProgressPolicy: string(timeline.ProgressSubDay),
		},
		Server:   ServerConfig{Listen: DefaultListen},
		Log:      LogConfig{Level: "info", File: DefaultLogFile},
		Timezone: "Local",
	}
}

// Load reads path over the defaults. An empty path tries the default location
// and silently falls back to defaults when that file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	path = ExpandPath(path)

	if err := loadFromFile(cfg, path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return goerr.Wrap(err, "failed to parse config file",
			goerr.T(model.ErrTagInvalidConfig),
			goerr.V("path", path))
	}
	return nil
}

// Validate rejects values the chart pipeline cannot work with
func (c *Config) Validate() error {
	if len(c.Chart.Palette) == 0 {
		return invalid("palette must not be empty", "palette", c.Chart.Palette)
	}
	for _, hex := range c.Chart.Palette {
		if _, err := color.ParseHex(hex); err != nil {
			return invalid("palette entry is not a #RRGGBB color", "color", hex)
		}
	}
	if c.Chart.DarkenFactor < 0 || c.Chart.DarkenFactor > 1 {
		return invalid("darken_factor must be between 0 and 1", "darken_factor", c.Chart.DarkenFactor)
	}
	if c.Chart.PaddingDays < 0 {
		return invalid("padding_days must not be negative", "padding_days", c.Chart.PaddingDays)
	}
	if c.Chart.RowHeight <= 0 || c.Chart.BaseHeight < 0 {
		return invalid("row_height must be positive and base_height not negative",
			"row_height", c.Chart.RowHeight)
	}
	if !timeline.ProgressPolicy(c.Chart.ProgressPolicy).Valid() {
		return invalid("unknown progress_policy", "progress_policy", c.Chart.ProgressPolicy)
	}
	if c.Server.Listen == "" {
		return invalid("server.listen must not be empty", "listen", c.Server.Listen)
	}
	return nil
}

func invalid(msg, key string, value any) error {
	return goerr.New(msg, goerr.T(model.ErrTagInvalidConfig), goerr.V(key, value))
}

// Assigner builds the color assigner for the configured palette
func (c *Config) Assigner() (*color.Assigner, error) {
	return color.NewAssigner(c.Chart.Palette, c.Chart.DarkenFactor)
}

func (c *Config) ProgressPolicy() timeline.ProgressPolicy {
	return timeline.ProgressPolicy(c.Chart.ProgressPolicy)
}

func (c *Config) LayoutOptions() timeline.LayoutOptions {
	return timeline.LayoutOptions{
		PaddingDays: c.Chart.PaddingDays,
		RowHeight:   c.Chart.RowHeight,
		BaseHeight:  c.Chart.BaseHeight,
	}
}

// ExpandPath resolves a leading "~/" and makes path absolute
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
