// Package clix holds the plumbing shared by storever commands: flag sets,
// query resolution, provider construction and output helpers.
package clix

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/indaco/storever/internal/appinfo"
	"github.com/indaco/storever/internal/config"
	"github.com/indaco/storever/internal/core"
	"github.com/indaco/storever/internal/fetch"
	"github.com/indaco/storever/internal/playstore"
	"github.com/indaco/storever/internal/tui"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// RootDir is the project root probed for manifests.
var RootDir = "."

// FetcherFn returns the Fetcher used by commands. Tests replace it.
var FetcherFn = func() fetch.Fetcher {
	return fetch.NewHTTPFetcher(nil)
}

// Query is a fully resolved lookup request.
type Query struct {
	Options playstore.Options
	Format  string
}

// QueryFlags returns the flags of commands that query the store.
func QueryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "package",
			Aliases: []string{"p"},
			Usage:   "Application identifier (detected from project manifests when omitted)",
		},
		&cli.StringFlag{
			Name:        "country",
			Aliases:     []string{"c"},
			Usage:       "Store locale sent as the hl parameter",
			DefaultText: playstore.DefaultCountry,
		},
		&cli.BoolFlag{
			Name:  "ignore-errors",
			Usage: "Print nothing instead of failing when the identifier cannot be determined",
		},
		&cli.StringFlag{
			Name:  "user-agent",
			Usage: "User-Agent header sent to the store",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Request timeout",
		},
		FormatFlag(),
	}
}

// FormatFlag returns the --format flag.
func FormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: text or json",
		Value:   FormatText,
	}
}

// ParseFormat validates the --format flag value.
func ParseFormat(cmd *cli.Command) (string, error) {
	format := strings.ToLower(cmd.String("format"))
	switch format {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use %s or %s)", format, FormatText, FormatJSON)
	}
}

// ResolveQuery merges command flags over the configuration. Flags win.
func ResolveQuery(cmd *cli.Command, cfg *config.Config) (*Query, error) {
	format, err := ParseFormat(cmd)
	if err != nil {
		return nil, err
	}

	transport, err := cfg.FetchOptions()
	if err != nil {
		return nil, err
	}
	if cmd.IsSet("user-agent") {
		transport.UserAgent = cmd.String("user-agent")
	}
	if cmd.IsSet("timeout") {
		transport.Timeout = cmd.Duration("timeout")
	}

	opts := playstore.Options{
		PackageName:  cfg.Package,
		Country:      cfg.Country,
		Transport:    transport,
		IgnoreErrors: cfg.IgnoreErrors,
	}
	if cmd.IsSet("package") {
		opts.PackageName = strings.TrimSpace(cmd.String("package"))
	}
	if cmd.IsSet("country") {
		opts.Country = cmd.String("country")
	}
	if cmd.IsSet("ignore-errors") {
		opts.IgnoreErrors = cmd.Bool("ignore-errors")
	}

	return &Query{Options: opts, Format: format}, nil
}

// NewSource returns the identifier source for cfg: the configured manifest
// when a source block is present, manifest detection otherwise.
func NewSource(cfg *config.Config, fs core.FileSystem) appinfo.Source {
	if file, ok := cfg.FileConfig(); ok {
		if !filepath.IsAbs(file.Path) {
			file.Path = filepath.Join(RootDir, file.Path)
		}
		return appinfo.NewManifestSource(fs, file)
	}
	return appinfo.NewDetector(fs, RootDir)
}

// Lookup runs one store query behind a spinner. A nil result with a nil
// error means the lookup failure was ignored.
func Lookup(ctx context.Context, cfg *config.Config, q *Query) (*playstore.VersionResult, error) {
	provider := playstore.NewProvider(
		FetcherFn(),
		NewSource(cfg, core.NewOSFileSystem()),
		playstore.WithLogger(*zerolog.Ctx(ctx)),
	)

	var result *playstore.VersionResult
	err := tui.WithSpinner(ctx, "Fetching store listing...", func() error {
		var err error
		result, err = provider.GetVersion(ctx, q.Options)
		return err
	})
	return result, err
}

// PackageFromURL returns the id parameter of a store URL.
func PackageFromURL(storeURL string) string {
	u, err := url.Parse(storeURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("id")
}

// NewLogger returns a console logger writing to w. Only warnings
// are shown unless verbose is set.
func NewLogger(w io.Writer, verbose, noColor bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.Kitchen,
	}).Level(level).With().Timestamp().Logger()
}
