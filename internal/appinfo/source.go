package appinfo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/indaco/storever/internal/core"
	"github.com/indaco/storever/internal/parser"
)

// ErrNotFound is returned when no manifest yields a package identifier.
var ErrNotFound = errors.New("application identifier not found")

// Source provides the package identifier of the running application.
type Source interface {
	PackageName() (string, error)
}

// Static is a Source that always returns the same identifier.
type Static string

// PackageName returns the identifier, or ErrNotFound when it is blank.
func (s Static) PackageName() (string, error) {
	name := strings.TrimSpace(string(s))
	if name == "" {
		return "", ErrNotFound
	}
	return name, nil
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func() (string, error)

func (f SourceFunc) PackageName() (string, error) {
	return f()
}

// ManifestSource reads the identifier from one explicitly configured file.
type ManifestSource struct {
	reader *parser.Reader
	file   parser.FileConfig
}

// NewManifestSource returns a Source reading file through fs.
func NewManifestSource(fs core.FileSystem, file parser.FileConfig) *ManifestSource {
	return &ManifestSource{reader: parser.NewReader(fs), file: file}
}

// PackageName reads and trims the configured field.
func (m *ManifestSource) PackageName() (string, error) {
	value, err := m.reader.ReadValue(context.Background(), m.file)
	if err != nil {
		return "", fmt.Errorf("reading package identifier: %w", err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrNotFound, m.file.Path)
	}
	return value, nil
}

var (
	_ Source = Static("")
	_ Source = SourceFunc(nil)
	_ Source = (*ManifestSource)(nil)
	_ Source = (*Detector)(nil)
)
