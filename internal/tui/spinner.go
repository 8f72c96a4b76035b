package tui

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

// runSpinnerFn shows a spinner while action runs. Tests replace it.
var runSpinnerFn = func(ctx context.Context, title string, action func()) error {
	return spinner.New().
		Context(ctx).
		Type(spinner.Dots).
		Style(lipgloss.NewStyle().Foreground(lipgloss.Color("6"))).
		Title(title).
		Action(action).
		Run()
}

// WithSpinner runs action behind a spinner when the terminal is interactive
// and directly otherwise. The action's error is returned unchanged.
func WithSpinner(ctx context.Context, title string, action func() error) error {
	if !IsInteractive() {
		return action()
	}

	var actionErr error
	if err := runSpinnerFn(ctx, title, func() { actionErr = action() }); err != nil {
		return err
	}
	return actionErr
}
