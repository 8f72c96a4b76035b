package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/indaco/storever/internal/core"
	"github.com/indaco/storever/internal/fetch"
	"github.com/indaco/storever/internal/parser"
)

// DefaultConfigFile is the project-level configuration file name.
const DefaultConfigFile = ".storever.yaml"

// DefaultUserAgent is sent by the CLI unless configured otherwise. The
// listing page omits its inline data for unrecognised agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Environment variables overriding file values.
const (
	EnvPackage = "STOREVER_PACKAGE"
	EnvCountry = "STOREVER_COUNTRY"
)

// TransportConfig holds HTTP settings for the store request.
type TransportConfig struct {
	UserAgent string            `yaml:"user-agent,omitempty"`
	Timeout   string            `yaml:"timeout,omitempty"`
	Headers   map[string]string `yaml:"headers,omitempty"`
}

// SourceConfig points at the manifest holding the application identifier.
type SourceConfig struct {
	Path    string `yaml:"path"`
	Format  string `yaml:"format,omitempty"`
	Field   string `yaml:"field,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
}

// Config is the main configuration structure for storever.
type Config struct {
	Package      string           `yaml:"package,omitempty"`
	Country      string           `yaml:"country,omitempty"`
	IgnoreErrors bool             `yaml:"ignore-errors,omitempty"`
	Theme        string           `yaml:"theme,omitempty"`
	Transport    *TransportConfig `yaml:"transport,omitempty"`
	Source       *SourceConfig    `yaml:"source,omitempty"`
}

// FetchOptions converts the transport block into fetch.Options, filling in
// the default User-Agent and core.TimeoutFetch.
func (c *Config) FetchOptions() (*fetch.Options, error) {
	opts := &fetch.Options{UserAgent: DefaultUserAgent, Timeout: core.TimeoutFetch}
	if c == nil || c.Transport == nil {
		return opts, nil
	}

	t := c.Transport
	if t.UserAgent != "" {
		opts.UserAgent = t.UserAgent
	}
	if t.Timeout != "" {
		d, err := time.ParseDuration(t.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid transport timeout %q: %w", t.Timeout, err)
		}
		opts.Timeout = d
	}
	if len(t.Headers) > 0 {
		opts.Header = make(http.Header, len(t.Headers))
		for k, v := range t.Headers {
			opts.Header.Set(k, v)
		}
	}
	return opts, nil
}

// FileConfig returns the parser configuration of the source block.
// The format is inferred from the file name when omitted.
func (c *Config) FileConfig() (parser.FileConfig, bool) {
	if c == nil || c.Source == nil || c.Source.Path == "" {
		return parser.FileConfig{}, false
	}
	s := c.Source
	format := parser.FormatForFile(s.Path)
	if s.Format != "" {
		format = parser.Format(s.Format)
	}
	return parser.FileConfig{
		Path:    s.Path,
		Format:  format,
		Field:   s.Field,
		Pattern: s.Pattern,
	}, true
}

// LoadConfigFn is the loader used by the CLI. Tests replace it.
var LoadConfigFn = LoadConfig

// LoadConfig reads DefaultConfigFile from the working directory.
func LoadConfig() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom reads the configuration at path. A missing file yields an empty
// configuration. Environment variables take precedence over file values.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvPackage)); v != "" {
		cfg.Package = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCountry)); v != "" {
		cfg.Country = v
	}
}
