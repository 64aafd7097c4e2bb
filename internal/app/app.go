// Package app provides the main application helpers for the emulator.
package app

import (
	"fmt"
	"path/filepath"

	"github.com/retroenv/chip8go/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints the application banner and version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("chip8go", log.String("version", buildinfo.Version(version, commit, date)))
}

// GetFilesToProcess returns the list of ROM files to run based on options.
func GetFilesToProcess(opts options.Program) ([]string, error) {
	if opts.Batch == "" {
		return []string{opts.Input}, nil
	}

	matches, err := filepath.Glob(opts.Batch)
	if err != nil {
		return nil, fmt.Errorf("globbing batch pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files matched batch pattern %s", opts.Batch)
	}
	return matches, nil
}
