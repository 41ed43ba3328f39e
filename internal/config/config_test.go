package config

import "testing"

func TestSanitizeClampsInvalidValues(t *testing.T) {
	cfg := &Config{
		Render: RenderConfig{
			Width:          -5,
			MaxRows:        0,
			MaxRowsPerLine: -1,
			MaxSpanChars:   0,
			ContextLines:   -3,
			ContextChars:   0,
			Colors:         "sometimes",
		},
		Theme: ThemeConfig{
			Added:   "#b8bb26",
			Removed: "red",
			Marker:  "#12345",
			Header:  "",
		},
	}
	cfg.Sanitize()

	def := Default().Render
	if cfg.Render.Width != 0 {
		t.Fatalf("width=%d, want 0", cfg.Render.Width)
	}
	if cfg.Render.MaxRows != def.MaxRows {
		t.Fatalf("max_rows=%d, want %d", cfg.Render.MaxRows, def.MaxRows)
	}
	if cfg.Render.MaxRowsPerLine != def.MaxRowsPerLine {
		t.Fatalf("max_rows_per_line=%d, want %d", cfg.Render.MaxRowsPerLine, def.MaxRowsPerLine)
	}
	if cfg.Render.MaxSpanChars != def.MaxSpanChars {
		t.Fatalf("max_span_chars=%d, want %d", cfg.Render.MaxSpanChars, def.MaxSpanChars)
	}
	if cfg.Render.ContextLines != def.ContextLines {
		t.Fatalf("context_lines=%d, want %d", cfg.Render.ContextLines, def.ContextLines)
	}
	if cfg.Render.ContextChars != def.ContextChars {
		t.Fatalf("context_chars=%d, want %d", cfg.Render.ContextChars, def.ContextChars)
	}
	if cfg.Render.Colors != "auto" {
		t.Fatalf("colors=%q, want %q", cfg.Render.Colors, "auto")
	}
	if cfg.Theme.Added != "#b8bb26" {
		t.Fatalf("valid theme color dropped: %q", cfg.Theme.Added)
	}
	if cfg.Theme.Removed != "" || cfg.Theme.Marker != "" {
		t.Fatalf("invalid theme colors kept: %q %q", cfg.Theme.Removed, cfg.Theme.Marker)
	}
}

func TestSanitizeKeepsValidValues(t *testing.T) {
	cfg := &Config{
		Render: RenderConfig{
			Width:          120,
			MaxRows:        40,
			MaxRowsPerLine: 3,
			MaxSpanChars:   60,
			ContextLines:   2,
			ContextChars:   20,
			Colors:         "never",
			Highlight:      true,
		},
	}
	want := cfg.Render
	cfg.Sanitize()
	if cfg.Render != want {
		t.Fatalf("sanitize changed valid config: %+v", cfg.Render)
	}
}

func TestColorsEnabledRespectsMode(t *testing.T) {
	cfg := Default()

	cfg.Render.Colors = "always"
	if !cfg.ColorsEnabled() {
		t.Fatal("colors=always should enable styling")
	}

	cfg.Render.Colors = "never"
	if cfg.ColorsEnabled() {
		t.Fatal("colors=never should disable styling")
	}
}
