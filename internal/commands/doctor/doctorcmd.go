package doctor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/indaco/storever/internal/config"
	"github.com/indaco/storever/internal/core"
	"github.com/indaco/storever/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "doctor" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Usage:     "Validate the storever configuration",
		UsageText: "storever doctor",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctorCmd(ctx, cmd, cfg)
		},
	}
}

func runDoctorCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	path := cmd.String("config")
	if path == "" {
		path = config.DefaultConfigFile
	}

	ctx, cancel := context.WithTimeout(ctx, core.TimeoutShort)
	defer cancel()

	validator := config.NewValidator(core.NewOSFileSystem(), cfg, path, filepath.Dir(path))
	results, err := validator.Validate(ctx)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	for _, r := range results {
		switch {
		case r.Warning:
			printer.PrintWarning(fmt.Sprintf("! %-12s %s", r.Category, r.Message))
		case r.Passed:
			printer.PrintSuccess(fmt.Sprintf("✓ %-12s %s", r.Category, r.Message))
		default:
			printer.PrintError(fmt.Sprintf("✗ %-12s %s", r.Category, r.Message))
		}
	}

	errCount := config.ErrorCount(results)
	printer.PrintFaint(fmt.Sprintf("%d checks, %d errors, %d warnings", len(results), errCount, config.WarningCount(results)))
	if config.HasErrors(results) {
		return fmt.Errorf("configuration has %d error(s)", errCount)
	}
	return nil
}
