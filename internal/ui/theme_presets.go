package ui

// ThemePreset represents a predefined color theme
type ThemePreset struct {
	Name        string
	Description string
	Config      ThemeConfig
}

// PresetThemeNames defines the display order of themes
var PresetThemeNames = []string{
	"gruvbox",
	"dracula",
	"nord",
	"solarized",
	"monokai",
	"classic",
}

// PresetThemes contains all predefined themes
var PresetThemes = map[string]ThemePreset{
	"gruvbox": {
		Name:        "gruvbox",
		Description: "Retro groove color scheme (default)",
		Config: ThemeConfig{
			Added:   "#b8bb26", // green
			Removed: "#fb4934", // red
			Marker:  "#928374", // gray
			Header:  "#83a598", // aqua
		},
	},
	"dracula": {
		Name:        "dracula",
		Description: "Popular dark theme with purple accents",
		Config: ThemeConfig{
			Added:   "#50fa7b", // green
			Removed: "#ff5555", // red
			Marker:  "#6272a4", // comment grey
			Header:  "#8be9fd", // cyan
		},
	},
	"nord": {
		Name:        "nord",
		Description: "Arctic, north-bluish color palette",
		Config: ThemeConfig{
			Added:   "#a3be8c", // aurora green
			Removed: "#bf616a", // aurora red
			Marker:  "#4c566a", // polar night
			Header:  "#88c0d0", // frost cyan
		},
	},
	"solarized": {
		Name:        "solarized",
		Description: "Precision colors for machines and people",
		Config: ThemeConfig{
			Added:   "#859900", // green
			Removed: "#dc322f", // red
			Marker:  "#586e75", // base01
			Header:  "#268bd2", // blue
		},
	},
	"monokai": {
		Name:        "monokai",
		Description: "Vibrant colors inspired by Sublime Text",
		Config: ThemeConfig{
			Added:   "#a6e22e", // green
			Removed: "#f92672", // red/pink
			Marker:  "#75715e", // comment
			Header:  "#66d9ef", // cyan
		},
	},
	"classic": {
		Name:        "classic",
		Description: "Plain ANSI colors, follows the terminal palette",
		Config: ThemeConfig{
			Added:   "10",  // bright green
			Removed: "9",   // bright red
			Marker:  "245", // light grey
			Header:  "12",  // bright blue
		},
	},
}

// GetPresetTheme returns a preset by name, or nil if not found
func GetPresetTheme(name string) *ThemePreset {
	if preset, ok := PresetThemes[name]; ok {
		return &preset
	}
	return nil
}

// MatchPresetTheme finds a preset that matches the given config, or returns empty string
func MatchPresetTheme(cfg ThemeConfig) string {
	for _, name := range PresetThemeNames {
		if PresetThemes[name].Config == cfg {
			return name
		}
	}
	return ""
}
