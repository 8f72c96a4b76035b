package printer

import (
	"bytes"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() { SetOutput(prev) })
	fn()
	return buf.String()
}

func TestRenderFunctions(t *testing.T) {
	tests := []struct {
		name     string
		function func(string) string
	}{
		{"Faint", Faint},
		{"Bold", Bold},
		{"Success", Success},
		{"Error", Error},
		{"Warning", Warning},
		{"Info", Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Styled output may or may not carry ANSI codes depending on the
			// detected profile, but it always contains the text.
			if got := tt.function("9.2.1"); !strings.Contains(got, "9.2.1") {
				t.Errorf("%s() = %q, want to contain input", tt.name, got)
			}
		})
	}
}

func TestPrintFunctions(t *testing.T) {
	tests := []struct {
		name     string
		function func(string)
	}{
		{"PrintFaint", PrintFaint},
		{"PrintBold", PrintBold},
		{"PrintSuccess", PrintSuccess},
		{"PrintError", PrintError},
		{"PrintWarning", PrintWarning},
		{"PrintInfo", PrintInfo},
		{"PrintPlain", PrintPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(t, func() { tt.function("latest 9.2.1") })

			if !strings.Contains(output, "latest 9.2.1") {
				t.Errorf("%s() output = %q, want to contain input", tt.name, output)
			}
			if !strings.HasSuffix(output, "\n") {
				t.Errorf("%s() output does not end with newline", tt.name)
			}
		})
	}
}

func TestPrintField(t *testing.T) {
	SetNoColor(true)

	output := captureOutput(t, func() { PrintField("version", "9.2.1") })
	if output != "version: 9.2.1\n" {
		t.Errorf("PrintField() = %q, want %q", output, "version: 9.2.1\n")
	}
}
