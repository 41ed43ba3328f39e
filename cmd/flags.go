package cmd

import (
	"github.com/spf13/cobra"

	"github.com/samsaffron/term-diff/internal/config"
	"github.com/samsaffron/term-diff/internal/render"
)

// RenderFlags holds the flag variables shared by every diff-producing
// command. Each command creates its own instance with its own variables.
type RenderFlags struct {
	Width          int
	MaxRows        int
	MaxRowsPerLine int
	MaxSpanChars   int
	ContextLines   int
	ContextChars   int
	Color          string
	NoColor        bool
	Highlight      bool
}

// AddRenderFlags registers the shared rendering flags on cmd.
func AddRenderFlags(cmd *cobra.Command, f *RenderFlags) {
	flags := cmd.Flags()
	flags.IntVarP(&f.ContextLines, "context", "C", render.DefaultContextLines, "Unchanged lines shown around each change")
	flags.IntVar(&f.ContextChars, "context-chars", render.DefaultContextRunes, "Unchanged characters shown around each inline change")
	flags.IntVar(&f.Width, "width", 0, "Output width in columns (0 = terminal width)")
	flags.IntVar(&f.MaxRows, "max-rows", render.DefaultMaxRows, "Row ceiling for the whole diff")
	flags.IntVar(&f.MaxRowsPerLine, "max-rows-per-line", render.DefaultMaxRowsPerLine, "Row ceiling per changed line")
	flags.IntVar(&f.MaxSpanChars, "max-span-chars", render.DefaultMaxSpanRunes, "Characters shown per change span")
	flags.StringVar(&f.Color, "color", "auto", "Color mode: auto, always, or never")
	flags.BoolVar(&f.NoColor, "no-color", false, "Disable colors (same as --color never)")
	flags.BoolVar(&f.Highlight, "highlight", true, "Syntax highlight context lines")
}

// Apply overlays the flags the user actually set onto cfg. Invalid
// values fall back to defaults, same as file config.
func (f *RenderFlags) Apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("context") {
		cfg.Render.ContextLines = f.ContextLines
	}
	if flags.Changed("context-chars") {
		cfg.Render.ContextChars = f.ContextChars
	}
	if flags.Changed("width") {
		cfg.Render.Width = f.Width
	}
	if flags.Changed("max-rows") {
		cfg.Render.MaxRows = f.MaxRows
	}
	if flags.Changed("max-rows-per-line") {
		cfg.Render.MaxRowsPerLine = f.MaxRowsPerLine
	}
	if flags.Changed("max-span-chars") {
		cfg.Render.MaxSpanChars = f.MaxSpanChars
	}
	if flags.Changed("color") {
		cfg.Render.Colors = f.Color
	}
	if f.NoColor {
		cfg.Render.Colors = "never"
	}
	if flags.Changed("highlight") {
		cfg.Render.Highlight = f.Highlight
	}
	cfg.Sanitize()
}
