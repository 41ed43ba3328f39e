package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/samsaffron/term-diff/internal/config"
	"github.com/samsaffron/term-diff/internal/render"
	"github.com/samsaffron/term-diff/internal/ui"
)

// loadConfig resolves file configuration plus command-line overrides
// and installs the active theme.
func loadConfig(cmd *cobra.Command, flags *RenderFlags) *config.Config {
	cfg := config.Load()
	flags.Apply(cmd, cfg)
	initThemeFromConfig(cfg)
	return cfg
}

func initThemeFromConfig(cfg *config.Config) {
	tc := ui.ThemeConfig{}
	if cfg.Theme.Preset != "" {
		if preset := ui.GetPresetTheme(cfg.Theme.Preset); preset != nil {
			tc = preset.Config
		} else {
			slog.Warn("unknown theme preset", "preset", cfg.Theme.Preset)
		}
	}
	if cfg.Theme.Added != "" {
		tc.Added = cfg.Theme.Added
	}
	if cfg.Theme.Removed != "" {
		tc.Removed = cfg.Theme.Removed
	}
	if cfg.Theme.Marker != "" {
		tc.Marker = cfg.Theme.Marker
	}
	if cfg.Theme.Header != "" {
		tc.Header = cfg.Theme.Header
	}
	ui.InitTheme(tc)
}

// stylerFor returns the row formatter for the config's color mode. The
// zero Styler renders plain rows.
func stylerFor(cfg *config.Config) render.Styler {
	if !cfg.ColorsEnabled() {
		return render.Styler{}
	}
	return ui.DefaultStyles().RenderStyler()
}

// renderOptions builds render options from the resolved config. Width 0
// is replaced with the detected terminal width here, at the edge, so
// the render core never probes the terminal itself.
func renderOptions(cfg *config.Config, styler render.Styler, display func(int, string) string) render.Options {
	width := cfg.Render.Width
	if width <= 0 {
		width = ui.TerminalWidth()
	}
	return render.Options{
		Width:          width,
		MaxRows:        cfg.Render.MaxRows,
		MaxRowsPerLine: cfg.Render.MaxRowsPerLine,
		MaxSpanRunes:   cfg.Render.MaxSpanChars,
		ContextLines:   cfg.Render.ContextLines,
		ContextRunes:   cfg.Render.ContextChars,
		Styler:         styler,
		Display:        display,
	}
}

// displayFor returns the context-row hook: syntax highlighting when
// enabled and the file's language is recognized, nil otherwise.
func displayFor(cfg *config.Config, path string) func(int, string) string {
	if !cfg.Render.Highlight || !cfg.ColorsEnabled() {
		return nil
	}
	hl := ui.NewHighlighter(path)
	if hl == nil {
		return nil
	}
	return func(line int, body string) string {
		return hl.HighlightLine(body)
	}
}

// readOperands reads the two diff operands; "-" means stdin, allowed
// for at most one side.
func readOperands(oldPath, newPath string) (oldContent, newContent string, err error) {
	if oldPath == "-" && newPath == "-" {
		return "", "", errors.New("only one operand can be stdin")
	}
	oldContent, err = readFileArg(oldPath)
	if err != nil {
		return "", "", err
	}
	newContent, err = readFileArg(newPath)
	if err != nil {
		return "", "", err
	}
	return oldContent, newContent, nil
}

func readFileArg(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
