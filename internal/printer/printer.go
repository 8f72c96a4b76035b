// Package printer renders styled console output for the storever CLI.
package printer

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stdout
)

// SetOutput redirects every Print function to w and returns the previous
// writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// SetNoColor strips colors and text attributes from all rendered output.
func SetNoColor(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Render functions return styled strings without printing.

func Faint(text string) string   { return faintStyle.Render(text) }
func Bold(text string) string    { return boldStyle.Render(text) }
func Success(text string) string { return successStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Info(text string) string    { return infoStyle.Render(text) }

// Field renders a "label: value" line with a faint label and bold value.
func Field(label, value string) string {
	return Faint(label+":") + " " + Bold(value)
}

func writeLine(text string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, text)
}

// PrintFaint prints text with faint styling.
func PrintFaint(text string) { writeLine(Faint(text)) }

// PrintBold prints text with bold styling.
func PrintBold(text string) { writeLine(Bold(text)) }

// PrintSuccess prints text with success (green) styling.
func PrintSuccess(text string) { writeLine(Success(text)) }

// PrintError prints text with error (red) styling.
func PrintError(text string) { writeLine(Error(text)) }

// PrintWarning prints text with warning (yellow) styling.
func PrintWarning(text string) { writeLine(Warning(text)) }

// PrintInfo prints text with info (cyan) styling.
func PrintInfo(text string) { writeLine(Info(text)) }

// PrintField prints a Field line.
func PrintField(label, value string) { writeLine(Field(label, value)) }

// PrintPlain prints text without styling.
func PrintPlain(text string) { writeLine(text) }
