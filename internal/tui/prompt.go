package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
)

// ErrNotInteractive is returned by prompts when no terminal is available.
var ErrNotInteractive = errors.New("not an interactive terminal")

// runFormFn runs a huh form. Tests replace it.
var runFormFn = func(f *huh.Form) error {
	return f.Run()
}

// PromptPackageName asks the user for a store identifier.
func PromptPackageName() (string, error) {
	if !IsInteractive() {
		return "", ErrNotInteractive
	}

	var name string
	input := huh.NewInput().
		Title("Application identifier").
		Description("Could not detect it from the project manifests.").
		Placeholder("com.example.app").
		Value(&name).
		Validate(validatePackageName)

	form := huh.NewForm(huh.NewGroup(input)).
		WithTheme(currentThemeOrDefault()).
		WithKeyMap(promptKeyMap())
	if err := runFormFn(form); err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

// promptKeyMap lets esc abort the prompt as well as ctrl+c.
func promptKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "cancel"),
	)
	return km
}

func validatePackageName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("identifier is required")
	}
	if strings.ContainsAny(s, " /?&#") {
		return errors.New("identifier must not contain spaces or URL characters")
	}
	return nil
}
