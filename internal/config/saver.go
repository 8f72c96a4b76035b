package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/indaco/storever/internal/core"
)

// ConfigFilePerm is the permission of written configuration files.
const ConfigFilePerm = core.PermOwnerRW

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// ConfigSaver writes configuration files with injected dependencies.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
}

type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// yamlMarshaler indents sequences so lists line up under their key.
type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
}

// NewConfigSaver creates a ConfigSaver. Nil dependencies fall back to the
// production defaults.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	return &ConfigSaver{marshaler: marshaler, fileOpener: opener}
}

// SaveTo writes cfg to path, truncating any existing file.
func (s *ConfigSaver) SaveTo(cfg *Config, path string) error {
	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config for %q: %w", path, err)
	}

	file, err := s.fileOpener.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", path, err)
	}
	return nil
}

// SaveConfigFn writes the configuration to DefaultConfigFile. Tests replace it.
var SaveConfigFn = func(cfg *Config) error {
	return NewConfigSaver(nil, nil).SaveTo(cfg, DefaultConfigFile)
}
