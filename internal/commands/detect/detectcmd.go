package detect

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/indaco/storever/internal/appinfo"
	"github.com/indaco/storever/internal/clix"
	"github.com/indaco/storever/internal/core"
	"github.com/indaco/storever/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "detect" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "detect",
		Usage:     "Show the application identifier found in the project manifests",
		UsageText: "storever detect [--all] [--format text|json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "List every matching manifest and report disagreements",
			},
			clix.FormatFlag(),
		},
		Action: runDetectCmd,
	}
}

func runDetectCmd(ctx context.Context, cmd *cli.Command) error {
	format, err := clix.ParseFormat(cmd)
	if err != nil {
		return err
	}

	detector := appinfo.NewDetector(core.NewOSFileSystem(), clix.RootDir)
	var detections []appinfo.Detection
	if cmd.Bool("all") {
		detections, err = detector.DetectAll(ctx)
	} else {
		var det *appinfo.Detection
		if det, err = detector.Detect(ctx); err == nil {
			detections = []appinfo.Detection{*det}
		}
	}
	if errors.Is(err, appinfo.ErrNotFound) {
		return fmt.Errorf("%w: no supported manifest under %s", err, clix.RootDir)
	}
	if err != nil {
		return err
	}

	mismatches := appinfo.DetectMismatches(detections)
	if format == clix.FormatJSON {
		return printJSON(detections, mismatches, cmd.Bool("all"))
	}

	for i, det := range detections {
		if i > 0 {
			printer.PrintPlain("")
		}
		printer.PrintField("Project", det.Manifest.Name)
		printer.PrintField("Manifest", relPath(det.Path))
		printer.PrintField("Package", det.PackageName)
		if det.Version != "" {
			printer.PrintField("Version", det.Version)
		}
	}
	for _, m := range mismatches {
		printer.PrintWarning(fmt.Sprintf("%s: %s is %q, expected %q", relPath(m.Path), m.Field, m.Actual, m.Expected))
	}
	return nil
}

func printJSON(detections []appinfo.Detection, mismatches []appinfo.Mismatch, all bool) error {
	if !all {
		return detectionDoc(detections[0]).Print()
	}

	doc := clix.NewJSONDoc()
	doc.Set("manifests", []any{})
	for _, det := range detections {
		doc.Append("manifests", detectionDoc(det))
	}
	doc.Set("mismatches", []any{})
	for _, m := range mismatches {
		doc.Append("mismatches", clix.NewJSONDoc().
			Set("manifest", relPath(m.Path)).
			Set("field", m.Field).
			Set("expected", m.Expected).
			Set("actual", m.Actual))
	}
	return doc.Print()
}

func detectionDoc(det appinfo.Detection) *clix.JSONDoc {
	return clix.NewJSONDoc().
		Set("project", det.Manifest.Name).
		Set("manifest", relPath(det.Path)).
		Set("package", det.PackageName).
		SetIf(det.Version != "", "version", det.Version)
}

func relPath(path string) string {
	if rel, err := filepath.Rel(clix.RootDir, path); err == nil {
		path = rel
	}
	return filepath.ToSlash(path)
}
