package main

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/storever/internal/cli"
	"github.com/indaco/storever/internal/config"
	"github.com/indaco/storever/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, printer.Error("Error: "+err.Error()))
		os.Exit(1)
	}
}

// runCLI loads the configuration and runs the root command with args.
func runCLI(args []string) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return err
	}
	return cli.New(cfg).Run(context.Background(), args)
}
