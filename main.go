// Package main implements a headless CHIP-8 virtual machine runner
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/chip8go/internal/app"
	"github.com/retroenv/chip8go/internal/cli"
	"github.com/retroenv/chip8go/internal/config"
	"github.com/retroenv/chip8go/internal/cpu"
	"github.com/retroenv/chip8go/internal/pipeline"
	appctx "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := appctx.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	app.PrintBanner(logger, opts, version, commit, date)

	files, err := app.GetFilesToProcess(opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	p := pipeline.New(logger)
	faulted := false

	for _, file := range files {
		opts.Input = file

		result, err := p.Execute(ctx, opts)
		if err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return
			}
			logger.Error("Running ROM failed", log.Err(err))
			faulted = true
			continue
		}

		if result.Status == cpu.StatusFaulted {
			faulted = true
		}
	}

	if faulted {
		os.Exit(1)
	}
}
