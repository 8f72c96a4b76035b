package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
)

// ValidThemes is the list of supported theme names.
var ValidThemes = []string{
	"storever",
	"base",
	"charm",
	"dracula",
	"catppuccin",
}

// IsValidTheme returns true if the given theme name is valid.
func IsValidTheme(name string) bool {
	return slices.Contains(ValidThemes, name)
}

// GetTheme returns the huh.Theme for name, or nil if it is not recognized.
func GetTheme(name string) *huh.Theme {
	switch name {
	case "storever":
		return storeverTheme()
	case "base":
		return huh.ThemeBase()
	case "charm":
		return huh.ThemeCharm()
	case "dracula":
		return huh.ThemeDracula()
	case "catppuccin":
		return huh.ThemeCatppuccin()
	default:
		return nil
	}
}
