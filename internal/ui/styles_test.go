package ui

import (
	"os"
	"testing"
)

func TestThemeFromConfigOverrides(t *testing.T) {
	theme := ThemeFromConfig(ThemeConfig{
		Added:  "#ff0000",
		Marker: "#00ff00",
	})

	if string(theme.Added) != "#ff0000" {
		t.Errorf("added=%q, want override", theme.Added)
	}
	if string(theme.Marker) != "#00ff00" {
		t.Errorf("marker=%q, want override", theme.Marker)
	}

	def := DefaultTheme()
	if theme.Removed != def.Removed {
		t.Errorf("removed=%q, want default %q", theme.Removed, def.Removed)
	}
	if theme.Header != def.Header {
		t.Errorf("header=%q, want default %q", theme.Header, def.Header)
	}
}

func TestNewStylesUsesThemeColors(t *testing.T) {
	theme := DefaultTheme()
	s := NewStyledWithTheme(os.Stdout, theme)

	if got := s.Added.GetForeground(); got != theme.Added {
		t.Errorf("added foreground=%v, want %v", got, theme.Added)
	}
	if got := s.Removed.GetForeground(); got != theme.Removed {
		t.Errorf("removed foreground=%v, want %v", got, theme.Removed)
	}
	if !s.Header.GetBold() {
		t.Error("header style should be bold")
	}
}

func TestRenderStylerPreservesText(t *testing.T) {
	s := DefaultStyles()
	styler := s.RenderStyler()

	for name, fn := range map[string]func(string) string{
		"removed": styler.Removed,
		"added":   styler.Added,
		"marker":  styler.Marker,
	} {
		if fn == nil {
			t.Fatalf("%s formatter is nil", name)
		}
		if got := StripANSI(fn("some text")); got != "some text" {
			t.Errorf("%s formatter altered text: %q", name, got)
		}
	}
}
