// Package config loads term-diff settings from YAML with viper.
// Loading never fails: missing files fall back to defaults and invalid
// values are replaced with defaults, so callers always get a usable
// configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/muesli/termenv"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/samsaffron/term-diff/internal/render"
)

// Config holds all term-diff settings.
type Config struct {
	Render RenderConfig `mapstructure:"render"`
	Theme  ThemeConfig  `mapstructure:"theme"`
}

// RenderConfig controls output shape and budgets.
type RenderConfig struct {
	Width          int    `mapstructure:"width"`             // 0 = auto-detect terminal width
	MaxRows        int    `mapstructure:"max_rows"`          // row ceiling for the whole diff
	MaxRowsPerLine int    `mapstructure:"max_rows_per_line"` // row ceiling per changed line
	MaxSpanChars   int    `mapstructure:"max_span_chars"`    // chars shown per change span
	ContextLines   int    `mapstructure:"context_lines"`     // unchanged lines around a change
	ContextChars   int    `mapstructure:"context_chars"`     // unchanged chars around an inline change
	Colors         string `mapstructure:"colors"`            // "auto", "always", or "never"
	Highlight      bool   `mapstructure:"highlight"`         // syntax highlight context lines
}

// ThemeConfig overrides the default palette. Preset selects a named
// palette (gruvbox, dracula, nord, solarized, monokai, classic); the
// color fields override individual entries on top of it. Colors are hex
// values like "#fb4934"; anything else is ignored.
type ThemeConfig struct {
	Preset  string `mapstructure:"preset"`
	Added   string `mapstructure:"added"`
	Removed string `mapstructure:"removed"`
	Marker  string `mapstructure:"marker"`
	Header  string `mapstructure:"header"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			MaxRows:        render.DefaultMaxRows,
			MaxRowsPerLine: render.DefaultMaxRowsPerLine,
			MaxSpanChars:   render.DefaultMaxSpanRunes,
			ContextLines:   render.DefaultContextLines,
			ContextChars:   render.DefaultContextRunes,
			Colors:         "auto",
			Highlight:      true,
		},
	}
}

// Load reads config.yaml from the term-diff config directory, then the
// working directory, over the built-in defaults.
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if dir, err := GetConfigDir(); err == nil {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(".")

	// Set defaults
	def := Default().Render
	viper.SetDefault("render.width", 0)
	viper.SetDefault("render.max_rows", def.MaxRows)
	viper.SetDefault("render.max_rows_per_line", def.MaxRowsPerLine)
	viper.SetDefault("render.max_span_chars", def.MaxSpanChars)
	viper.SetDefault("render.context_lines", def.ContextLines)
	viper.SetDefault("render.context_chars", def.ContextChars)
	viper.SetDefault("render.colors", def.Colors)
	viper.SetDefault("render.highlight", def.Highlight)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("ignoring unreadable config file", "error", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Warn("ignoring malformed config file", "error", err)
		return Default()
	}
	cfg.Sanitize()
	return &cfg
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Sanitize replaces out-of-range values with defaults. Width keeps 0 as
// a valid "detect at render time" value.
func (c *Config) Sanitize() {
	def := Default().Render
	r := &c.Render
	if r.Width < 0 {
		r.Width = 0
	}
	if r.MaxRows <= 0 {
		r.MaxRows = def.MaxRows
	}
	if r.MaxRowsPerLine <= 0 {
		r.MaxRowsPerLine = def.MaxRowsPerLine
	}
	if r.MaxSpanChars <= 0 {
		r.MaxSpanChars = def.MaxSpanChars
	}
	if r.ContextLines <= 0 {
		r.ContextLines = def.ContextLines
	}
	if r.ContextChars <= 0 {
		r.ContextChars = def.ContextChars
	}
	switch r.Colors {
	case "auto", "always", "never":
	default:
		r.Colors = def.Colors
	}

	t := &c.Theme
	for _, p := range []*string{&t.Added, &t.Removed, &t.Marker, &t.Header} {
		if *p != "" && !hexColor.MatchString(*p) {
			*p = ""
		}
	}
}

// ColorsEnabled reports whether styled output should be emitted for the
// configured colors mode. "auto" requires a TTY on stdout and honors
// NO_COLOR.
func (c *Config) ColorsEnabled() bool {
	switch c.Render.Colors {
	case "always":
		return true
	case "never":
		return false
	}
	if termenv.EnvNoColor() {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// GetConfigDir returns the XDG config directory for term-diff.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "term-diff"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "term-diff"), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Save writes a starter config to disk with the current values filled in.
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	content := fmt.Sprintf(`render:
  width: %d               # 0 = auto-detect terminal width
  max_rows: %d
  max_rows_per_line: %d
  max_span_chars: %d
  context_lines: %d
  context_chars: %d
  colors: %s              # auto, always, or never
  highlight: %t

# theme:
#   preset: gruvbox       # gruvbox, dracula, nord, solarized, monokai, classic
#   added: "#b8bb26"
#   removed: "#fb4934"
#   marker: "#928374"
#   header: "#83a598"
`, cfg.Render.Width, cfg.Render.MaxRows, cfg.Render.MaxRowsPerLine,
		cfg.Render.MaxSpanChars, cfg.Render.ContextLines, cfg.Render.ContextChars,
		cfg.Render.Colors, cfg.Render.Highlight)

	return os.WriteFile(path, []byte(content), 0600)
}
