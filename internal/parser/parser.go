package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/storever/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// Reader provides field reading capabilities for multiple file formats.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Read reads a value from a file based on the provided configuration.
func (r *Reader) Read(ctx context.Context, cfg FileConfig) (*Result, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file path is required")
	}

	if !cfg.Format.IsValid() {
		return nil, fmt.Errorf("invalid format: %s", cfg.Format)
	}

	data, err := r.fs.ReadFile(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", cfg.Path, err)
	}

	var value string
	switch cfg.Format {
	case FormatJSON:
		value, err = readStructured(data, cfg.Path, cfg.Field, "JSON", json.Unmarshal)
	case FormatJSON5:
		value, err = readStructured(data, cfg.Path, cfg.Field, "JSON5", unmarshalLoose)
	case FormatYAML:
		value, err = readStructured(data, cfg.Path, cfg.Field, "YAML", yaml.Unmarshal)
	case FormatTOML:
		value, err = readStructured(data, cfg.Path, cfg.Field, "TOML", toml.Unmarshal)
	case FormatRaw:
		value, err = r.readRaw(data)
	case FormatRegex:
		value, err = r.readRegex(data, cfg.Path, cfg.Pattern)
	default:
		return nil, fmt.Errorf("unsupported format: %s", cfg.Format)
	}

	if err != nil {
		return nil, err
	}

	return &Result{
		Value:  value,
		Path:   cfg.Path,
		Format: cfg.Format,
		Field:  cfg.Field,
	}, nil
}

// ReadValue is a convenience method that reads and returns just the value.
func (r *Reader) ReadValue(ctx context.Context, cfg FileConfig) (string, error) {
	result, err := r.Read(ctx, cfg)
	if err != nil {
		return "", err
	}
	return result.Value, nil
}

type unmarshalFunc func(data []byte, v any) error

func unmarshalLoose(data []byte, v any) error {
	parsed, err := ParseLoose(data)
	if err != nil {
		return err
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return fmt.Errorf("top-level value is not an object")
	}
	*(v.(*map[string]any)) = obj
	return nil
}

// readStructured extracts a string field from an object-shaped document
// using dot notation for the field path.
func readStructured(data []byte, path, field, kind string, unmarshal unmarshalFunc) (string, error) {
	if field == "" {
		return "", fmt.Errorf("field is required for %s format", kind)
	}

	var obj map[string]any
	if err := unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("failed to parse %s in %q: %w", kind, path, err)
	}

	value, err := getNestedValue(obj, field)
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", path, err)
	}

	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q in %q is not a string", field, path)
	}

	return s, nil
}

// readRaw reads the entire file contents as the value (trimmed).
func (r *Reader) readRaw(data []byte) (string, error) {
	return strings.TrimSpace(string(data)), nil
}

// readRegex extracts a value using a regex pattern with a capturing group.
func (r *Reader) readRegex(data []byte, path, pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("pattern is required for regex format")
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}

	matches := re.FindSubmatch(data)
	if len(matches) < 2 {
		return "", fmt.Errorf("no match found in %q (pattern %q must have capturing group)", path, pattern)
	}

	return string(matches[1]), nil
}

// getNestedValue retrieves a value from a nested map using dot notation.
// Example: "expo.android.package" accesses obj["expo"]["android"]["package"]
func getNestedValue(obj map[string]any, field string) (any, error) {
	if field == "" {
		return nil, fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := any(obj)

	for i, part := range parts {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i], "."), part)
		}

		value, exists := currentMap[part]
		if !exists {
			return nil, fmt.Errorf("field %q not found", field)
		}

		current = value
	}

	return current, nil
}
