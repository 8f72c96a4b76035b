package parser

import "strings"

// Format represents the supported file formats for field reading.
type Format string

const (
	// FormatJSON is for strict JSON files (app.json, capacitor.config.json).
	FormatJSON Format = "json"

	// FormatJSON5 is for relaxed JSON files (app.json5).
	FormatJSON5 Format = "json5"

	// FormatYAML is for YAML files.
	FormatYAML Format = "yaml"

	// FormatTOML is for TOML files (Cargo.toml).
	FormatTOML Format = "toml"

	// FormatRaw is for plain text files where the entire content is the value.
	FormatRaw Format = "raw"

	// FormatRegex is for files requiring regex extraction (build.gradle, AndroidManifest.xml).
	FormatRegex Format = "regex"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatJSON5, FormatYAML, FormatTOML, FormatRaw, FormatRegex:
		return true
	default:
		return false
	}
}

// ParseFormat converts a string to a Format, returning FormatRaw as fallback.
func ParseFormat(s string) Format {
	f := Format(s)
	if f.IsValid() {
		return f
	}
	return FormatRaw
}

// FileConfig describes how to read a value from a specific file.
type FileConfig struct {
	// Path is the file path (absolute or relative).
	Path string

	// Format specifies the file format.
	Format Format

	// Field is the dot-notation path to the value (for JSON/JSON5/YAML/TOML).
	// Example: "expo.android.package", "package.metadata.android.package"
	Field string

	// Pattern is the regex pattern for regex format.
	// Must contain a capturing group for the value.
	Pattern string
}

// Result represents the result of reading a value from a file.
type Result struct {
	// Value is the extracted string.
	Value string

	// Path is the file path that was read.
	Path string

	// Format is the format that was used.
	Format Format

	// Field is the field path that was used (for structured formats).
	Field string
}

// FormatForFile detects the format based on file extension.
// Files without a recognised extension are treated as regex sources, since
// Gradle scripts and XML manifests need a pattern to address the value.
func FormatForFile(filename string) Format {
	lower := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(lower, ".json5"):
		return FormatJSON5
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".toml"):
		return FormatTOML
	case strings.HasSuffix(lower, ".txt"), strings.HasSuffix(lower, "/version"), lower == "version":
		return FormatRaw
	default:
		return FormatRegex
	}
}
