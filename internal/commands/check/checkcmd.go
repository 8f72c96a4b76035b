package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/storever/internal/appinfo"
	"github.com/indaco/storever/internal/clix"
	"github.com/indaco/storever/internal/config"
	"github.com/indaco/storever/internal/core"
	"github.com/indaco/storever/internal/playstore"
	"github.com/indaco/storever/internal/printer"
	"github.com/indaco/storever/internal/semver"
	"github.com/urfave/cli/v3"
)

// ErrUpdateAvailable is returned with --fail-on-update when the store
// publishes a newer version.
var ErrUpdateAvailable = errors.New("a newer version is available on the store")

// Status values reported by check.
const (
	StatusUpToDate        = "up-to-date"
	StatusUpdateAvailable = "update-available"
	StatusAhead           = "ahead"
	StatusUnknown         = "unknown"
)

// Run returns the "check" command.
func Run(cfg *config.Config) *cli.Command {
	cmdFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "current",
			Usage: "Current version (read from the detected manifest when omitted)",
		},
		&cli.BoolFlag{
			Name:  "fail-on-update",
			Usage: "Exit with an error when an update is available",
		},
	}
	cmdFlags = append(cmdFlags, clix.QueryFlags()...)

	return &cli.Command{
		Name:      "check",
		Usage:     "Compare the current version with the latest store version",
		UsageText: "storever check [--current version] [--fail-on-update] [--package id]",
		Flags:     cmdFlags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runCheckCmd(ctx, cmd, cfg)
		},
	}
}

func runCheckCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	q, err := clix.ResolveQuery(cmd, cfg)
	if err != nil {
		return err
	}

	current, err := currentVersion(ctx, cmd)
	if err != nil {
		return err
	}

	result, err := clix.Lookup(ctx, cfg, q)
	if err != nil {
		return err
	}
	if result == nil {
		return report(q.Format, current, nil, StatusUnknown)
	}

	cmp, err := semver.CompareLoose(current, result.Version)
	if err != nil {
		return fmt.Errorf("cannot compare versions: %w", err)
	}

	status := StatusUpToDate
	switch {
	case cmp < 0:
		status = StatusUpdateAvailable
	case cmp > 0:
		status = StatusAhead
	}

	if err := report(q.Format, current, result, status); err != nil {
		return err
	}
	if status == StatusUpdateAvailable && cmd.Bool("fail-on-update") {
		return ErrUpdateAvailable
	}
	return nil
}

func currentVersion(ctx context.Context, cmd *cli.Command) (string, error) {
	if v := cmd.String("current"); v != "" {
		return v, nil
	}
	v, err := appinfo.NewDetector(core.NewOSFileSystem(), clix.RootDir).CurrentVersion(ctx)
	if err != nil {
		return "", fmt.Errorf("cannot determine current version, use --current: %w", err)
	}
	return v, nil
}

func report(format, current string, result *playstore.VersionResult, status string) error {
	if format == clix.FormatJSON {
		doc := clix.NewJSONDoc().
			Set("current", current).
			Set("status", status).
			Set("updateAvailable", status == StatusUpdateAvailable)
		if result == nil {
			return doc.Set("latest", nil).Print()
		}
		return doc.
			Set("latest", result.Version).
			Set("storeUrl", result.StoreURL).
			Print()
	}

	switch status {
	case StatusUpToDate:
		printer.PrintSuccess(fmt.Sprintf("Up to date (%s)", current))
	case StatusUpdateAvailable:
		printer.PrintWarning(fmt.Sprintf("Update available: %s -> %s", current, result.Version))
		printer.PrintFaint(result.StoreURL)
	case StatusAhead:
		printer.PrintInfo(fmt.Sprintf("Current version %s is ahead of the store (%s)", current, result.Version))
	default:
		printer.PrintWarning("Latest version unknown: the application identifier could not be determined")
	}
	return nil
}
