package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/indaco/storever/internal/core"
	"github.com/indaco/storever/internal/parser"
	"github.com/indaco/storever/internal/tui"
)

// countryPattern accepts language codes such as "en", "pt_BR" or "zh-TW".
var countryPattern = regexp.MustCompile(`^[A-Za-z]{2,3}([_-][A-Za-z0-9]{2,4})?$`)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "YAML Syntax", "Transport").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator validates configuration files and settings.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	configPath  string
	rootDir     string
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
// The rootDir parameter is the directory source paths are resolved against.
func NewValidator(fs core.FileSystem, cfg *Config, configPath string, rootDir string) *Validator {
	return &Validator{
		fs:          fs,
		cfg:         cfg,
		configPath:  configPath,
		rootDir:     rootDir,
		validations: make([]ValidationResult, 0),
	}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate(ctx context.Context) ([]ValidationResult, error) {
	v.validations = make([]ValidationResult, 0)

	v.validateYAMLSyntax(ctx)
	if v.cfg == nil {
		return v.validations, nil
	}

	v.validatePackage()
	v.validateCountry()
	v.validateTransport()
	v.validateSource(ctx)
	v.validateTheme()

	return v.validations, nil
}

func (v *Validator) validateYAMLSyntax(ctx context.Context) {
	data, err := v.fs.ReadFile(ctx, v.configPath)
	if errors.Is(err, fs.ErrNotExist) {
		v.addValidation("YAML Syntax", true, fmt.Sprintf("No %s found, using defaults", v.configPath), true)
		return
	}
	if err != nil {
		v.addValidation("YAML Syntax", false, fmt.Sprintf("Failed to read %s: %v", v.configPath, err), false)
		return
	}

	var probe Config
	if err := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict()).Decode(&probe); err != nil && len(bytes.TrimSpace(data)) > 0 {
		v.addValidation("YAML Syntax", false, fmt.Sprintf("Invalid YAML: %v", err), false)
		return
	}
	v.addValidation("YAML Syntax", true, "Configuration file is valid YAML", false)
}

func (v *Validator) validatePackage() {
	name := strings.TrimSpace(v.cfg.Package)
	switch {
	case name == "":
		v.addValidation("Package", true, "No package configured, it will be detected from project manifests", true)
	case strings.ContainsAny(name, " /?&#"):
		v.addValidation("Package", false, fmt.Sprintf("Package %q contains spaces or URL characters", name), false)
	case !strings.Contains(name, "."):
		v.addValidation("Package", true, fmt.Sprintf("Package %q does not look like a reverse-domain identifier", name), true)
	default:
		v.addValidation("Package", true, fmt.Sprintf("Package %q", name), false)
	}
}

func (v *Validator) validateCountry() {
	if v.cfg.Country == "" {
		return
	}
	if !countryPattern.MatchString(v.cfg.Country) {
		v.addValidation("Country", false, fmt.Sprintf("Country %q is not a language or locale code", v.cfg.Country), false)
		return
	}
	v.addValidation("Country", true, fmt.Sprintf("Country %q", v.cfg.Country), false)
}

func (v *Validator) validateTransport() {
	t := v.cfg.Transport
	if t == nil || t.Timeout == "" {
		return
	}
	d, err := time.ParseDuration(t.Timeout)
	if err != nil {
		v.addValidation("Transport", false, fmt.Sprintf("Invalid timeout %q: %v", t.Timeout, err), false)
		return
	}
	if d <= 0 {
		v.addValidation("Transport", false, fmt.Sprintf("Timeout must be positive, got %s", d), false)
		return
	}
	v.addValidation("Transport", true, fmt.Sprintf("Timeout %s", d), false)
}

func (v *Validator) validateSource(ctx context.Context) {
	s := v.cfg.Source
	if s == nil {
		return
	}
	if s.Path == "" {
		v.addValidation("Source", false, "Source path is required", false)
		return
	}
	if s.Format != "" && !parser.Format(s.Format).IsValid() {
		v.addValidation("Source", false, fmt.Sprintf("Unknown source format %q", s.Format), false)
		return
	}

	file, _ := v.cfg.FileConfig()
	switch file.Format {
	case parser.FormatRegex:
		if s.Pattern == "" {
			v.addValidation("Source", false, "Regex source requires a pattern", false)
			return
		}
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			v.addValidation("Source", false, fmt.Sprintf("Invalid pattern: %v", err), false)
			return
		}
		if re.NumSubexp() < 1 {
			v.addValidation("Source", false, "Pattern must contain a capturing group", false)
			return
		}
	case parser.FormatJSON, parser.FormatJSON5, parser.FormatYAML, parser.FormatTOML:
		if s.Field == "" {
			v.addValidation("Source", false, fmt.Sprintf("%s source requires a field", file.Format), false)
			return
		}
	}

	path := s.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(v.rootDir, path)
	}
	if _, err := v.fs.Stat(ctx, path); err != nil {
		v.addValidation("Source", false, fmt.Sprintf("Source file %q not found", s.Path), false)
		return
	}
	v.addValidation("Source", true, fmt.Sprintf("Source %s (%s)", s.Path, file.Format), false)
}

func (v *Validator) validateTheme() {
	if v.cfg.Theme == "" {
		return
	}
	if !tui.IsValidTheme(v.cfg.Theme) {
		v.addValidation("Theme", true, fmt.Sprintf("Unknown theme %q, the default is used", v.cfg.Theme), true)
		return
	}
	v.addValidation("Theme", true, fmt.Sprintf("Theme %q", v.cfg.Theme), false)
}

// addValidation adds a validation result to the list.
func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	for _, r := range results {
		if !r.Passed && !r.Warning {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}
