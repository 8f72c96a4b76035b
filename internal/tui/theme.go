package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// currentTheme is the theme used by prompts. Nil means the storever theme.
var currentTheme *huh.Theme

// SetTheme selects a prompt theme by name; unknown names reset to default.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return storeverTheme()
	}
	return currentTheme
}

func storeverTheme() *huh.Theme {
	t := huh.ThemeBase()
	accent := lipgloss.Color("6")

	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(accent)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(accent)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(lipgloss.Color("1"))
	return t
}
