// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ahutter/bootrun/internal/harness"
	"github.com/ahutter/bootrun/internal/qemu"
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help or version output was requested. Exit
	// without error in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// Parse errors have been printed along with the usage already, so they
	// are not repeated here.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return 1
}

// handleRunError maps pipeline errors to the process exit code. External
// process failures propagate the child's own exit code; everything else is a
// plain failure.
func handleRunError(err error) int {
	exitCode := 1

	var buildErr *harness.BuildError

	var qemuErr *qemu.CommandError

	switch {
	case errors.As(err, &buildErr):
		if buildErr.ExitCode > 0 {
			exitCode = buildErr.ExitCode
		}
	case errors.As(err, &qemuErr):
		if qemuErr.ExitCode > 0 {
			exitCode = qemuErr.ExitCode
		}
	}

	slog.Error(err.Error())

	return exitCode
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	flags := newFlags(cfg.Stderr)

	config, err := loadLocalConfig(os.DirFS("."), localConfigFile)
	if err != nil {
		fmt.Fprintf(cfg.Stderr, "Error: %v\n", err)
		return 1
	}

	err = flags.ParseArgs(args, config)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.debug)

	err = harness.Run(ctx, flags.spec, cfg.Stdout, cfg.Stderr)
	if err != nil {
		return handleRunError(err)
	}

	return 0
}
