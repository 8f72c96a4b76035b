package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/storever/internal/clix"
	"github.com/indaco/storever/internal/commands/check"
	"github.com/indaco/storever/internal/commands/detect"
	"github.com/indaco/storever/internal/commands/doctor"
	"github.com/indaco/storever/internal/commands/initialize"
	"github.com/indaco/storever/internal/commands/latest"
	"github.com/indaco/storever/internal/config"
	"github.com/indaco/storever/internal/printer"
	"github.com/indaco/storever/internal/tui"
	"github.com/indaco/storever/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

var (
	noColorFlag bool
	verboseFlag bool
	configPath  string
)

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the storever cli.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "storever",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Look up the latest Play Store version of an Android application",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "config",
				Usage:       "Path to the configuration file",
				Value:       config.DefaultConfigFile,
				Destination: &configPath,
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
			&urfavecli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "Log request and parsing details to stderr",
				Destination: &verboseFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag)

			if cmd.IsSet("config") {
				loaded, err := config.LoadFrom(configPath)
				if err != nil {
					return ctx, err
				}
				*cfg = *loaded
			}
			tui.SetTheme(cfg.Theme)

			logger := clix.NewLogger(os.Stderr, verboseFlag, noColorFlag)
			return logger.WithContext(ctx), nil
		},
		Commands: []*urfavecli.Command{
			initialize.Run(),
			latest.Run(cfg),
			check.Run(cfg),
			detect.Run(),
			doctor.Run(cfg),
		},
	}
}
