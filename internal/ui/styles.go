package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/samsaffron/term-diff/internal/render"
)

// Theme defines the color palette for diff output
type Theme struct {
	Added   lipgloss.Color // added lines and spans
	Removed lipgloss.Color // removed lines and spans
	Marker  lipgloss.Color // elision markers
	Header  lipgloss.Color // per-file headers
	Text    lipgloss.Color // primary text
	Muted   lipgloss.Color // dimmed/secondary text
}

// DefaultTheme returns the default color theme (gruvbox)
func DefaultTheme() *Theme {
	return &Theme{
		Added:   lipgloss.Color("#b8bb26"), // gruvbox green
		Removed: lipgloss.Color("#fb4934"), // gruvbox red
		Marker:  lipgloss.Color("#928374"), // gruvbox gray
		Header:  lipgloss.Color("#83a598"), // gruvbox aqua
		Text:    lipgloss.Color("#ebdbb2"), // gruvbox foreground
		Muted:   lipgloss.Color("#928374"), // gruvbox gray
	}
}

// ThemeConfig mirrors the config.ThemeConfig for applying overrides
type ThemeConfig struct {
	Added   string
	Removed string
	Marker  string
	Header  string
}

// ThemeFromConfig creates a theme with config overrides applied
func ThemeFromConfig(cfg ThemeConfig) *Theme {
	theme := DefaultTheme()

	// Apply overrides if specified
	if cfg.Added != "" {
		theme.Added = lipgloss.Color(cfg.Added)
	}
	if cfg.Removed != "" {
		theme.Removed = lipgloss.Color(cfg.Removed)
	}
	if cfg.Marker != "" {
		theme.Marker = lipgloss.Color(cfg.Marker)
	}
	if cfg.Header != "" {
		theme.Header = lipgloss.Color(cfg.Header)
	}

	return theme
}

// currentTheme is the active theme instance
var currentTheme = DefaultTheme()

// GetTheme returns the current active theme
func GetTheme() *Theme {
	return currentTheme
}

// SetTheme sets the current active theme
func SetTheme(t *Theme) {
	currentTheme = t
}

// InitTheme initializes the theme from config
func InitTheme(cfg ThemeConfig) {
	SetTheme(ThemeFromConfig(cfg))
}

// Styles returns styled text helpers bound to a renderer
type Styles struct {
	renderer *lipgloss.Renderer
	theme    *Theme

	Added   lipgloss.Style // added lines and inline spans
	Removed lipgloss.Style // removed lines and inline spans
	Marker  lipgloss.Style // "..." elision rows
	Header  lipgloss.Style // file headers
	Title   lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles creates a new Styles instance for the given output
func NewStyles(output *os.File) *Styles {
	return NewStyledWithTheme(output, currentTheme)
}

// NewStyledWithTheme creates styles with a specific theme
func NewStyledWithTheme(output *os.File, theme *Theme) *Styles {
	r := lipgloss.NewRenderer(output)

	return &Styles{
		renderer: r,
		theme:    theme,

		Added: r.NewStyle().
			Foreground(theme.Added),

		Removed: r.NewStyle().
			Foreground(theme.Removed),

		Marker: r.NewStyle().
			Foreground(theme.Marker),

		Header: r.NewStyle().
			Bold(true).
			Foreground(theme.Header),

		Title: r.NewStyle().
			Bold(true).
			Foreground(theme.Text),

		Muted: r.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles for stdout, where diff output goes
func DefaultStyles() *Styles {
	return NewStyles(os.Stdout)
}

// Theme returns the theme used by these styles
func (s *Styles) Theme() *Theme {
	return s.theme
}

// RenderStyler adapts the styles to the render package's formatter
// callbacks. Callers wanting plain output pass render.Styler{} instead.
func (s *Styles) RenderStyler() render.Styler {
	return render.Styler{
		Removed: func(text string) string { return s.Removed.Render(text) },
		Added:   func(text string) string { return s.Added.Render(text) },
		Marker:  func(text string) string { return s.Marker.Render(text) },
	}
}
