package latest

import (
	"context"

	"github.com/indaco/storever/internal/clix"
	"github.com/indaco/storever/internal/config"
	"github.com/indaco/storever/internal/playstore"
	"github.com/indaco/storever/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "latest" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "latest",
		Usage:     "Print the latest version published on the Play Store",
		UsageText: "storever latest [--package id] [--country code] [--format text|json]",
		Flags:     clix.QueryFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runLatestCmd(ctx, cmd, cfg)
		},
	}
}

func runLatestCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	q, err := clix.ResolveQuery(cmd, cfg)
	if err != nil {
		return err
	}

	result, err := clix.Lookup(ctx, cfg, q)
	if err != nil {
		return err
	}

	if q.Format == clix.FormatJSON {
		return printJSON(q, result)
	}

	if result == nil {
		printer.PrintWarning("No version available: the application identifier could not be determined")
		return nil
	}
	printer.PrintPlain(result.Version)
	printer.PrintFaint(result.StoreURL)
	return nil
}

func printJSON(q *clix.Query, result *playstore.VersionResult) error {
	doc := clix.NewJSONDoc().Set("provider", playstore.ProviderName)
	if result == nil {
		return doc.
			SetIf(q.Options.PackageName != "", "package", q.Options.PackageName).
			Set("version", nil).
			Print()
	}
	return doc.
		Set("package", clix.PackageFromURL(result.StoreURL)).
		Set("version", result.Version).
		Set("storeUrl", result.StoreURL).
		Print()
}
