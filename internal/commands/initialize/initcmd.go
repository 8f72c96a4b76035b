package initialize

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/indaco/storever/internal/appinfo"
	"github.com/indaco/storever/internal/clix"
	"github.com/indaco/storever/internal/config"
	"github.com/indaco/storever/internal/core"
	"github.com/indaco/storever/internal/printer"
	"github.com/indaco/storever/internal/tui"
	"github.com/urfave/cli/v3"
)

// promptPackageFn asks for the identifier when detection fails. Tests replace it.
var promptPackageFn = tui.PromptPackageName

// Run returns the "init" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a .storever.yaml for the current project",
		UsageText: "storever init [--package id] [--country code] [--force]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "package",
				Aliases: []string{"p"},
				Usage:   "Application identifier to record instead of detecting it",
			},
			&cli.StringFlag{
				Name:    "country",
				Aliases: []string{"c"},
				Usage:   "Store locale to record",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
		},
		Action: runInitCmd,
	}
}

func runInitCmd(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(config.DefaultConfigFile); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.DefaultConfigFile)
	}

	cfg, err := buildConfig(ctx, cmd.String("package"))
	if err != nil {
		return err
	}
	cfg.Country = cmd.String("country")

	if err := config.SaveConfigFn(cfg); err != nil {
		return err
	}

	printer.PrintSuccess(fmt.Sprintf("Created %s", config.DefaultConfigFile))
	if cfg.Source != nil {
		printer.PrintField("Source", cfg.Source.Path)
	} else {
		printer.PrintField("Package", cfg.Package)
	}
	return nil
}

// buildConfig prefers an explicit identifier, then a source block pointing at
// the detected manifest, then an interactive prompt.
func buildConfig(ctx context.Context, pkg string) (*config.Config, error) {
	if pkg != "" {
		return &config.Config{Package: pkg}, nil
	}

	det, err := appinfo.NewDetector(core.NewOSFileSystem(), clix.RootDir).Detect(ctx)
	if err == nil {
		m := det.Manifest.Package
		return &config.Config{Source: &config.SourceConfig{
			Path:    m.Path,
			Format:  m.Format.String(),
			Field:   m.Field,
			Pattern: m.Pattern,
		}}, nil
	}
	if !errors.Is(err, appinfo.ErrNotFound) {
		return nil, err
	}

	name, err := promptPackageFn()
	if errors.Is(err, tui.ErrNotInteractive) {
		return nil, errors.New("no supported manifest found; pass --package")
	}
	if err != nil {
		return nil, err
	}
	return &config.Config{Package: name}, nil
}
