// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/ahutter/bootrun/internal/sys"
)

// BuildProfile is the build profile identifier passed to the external
// builder.
type BuildProfile string

// Supported build profiles.
const (
	BuildProfileDev     BuildProfile = "dev"
	BuildProfileRelease BuildProfile = "release"
)

var ErrBuildProfileUnknown = errors.New("unknown build profile")

func (p *BuildProfile) String() string {
	return string(*p)
}

// Set implements [flag.Value].
func (p *BuildProfile) Set(s string) error {
	switch BuildProfile(s) {
	case BuildProfileDev, BuildProfileRelease:
		*p = BuildProfile(s)
	default:
		return ErrBuildProfileUnknown
	}

	return nil
}

// Builder invokes the external build and packaging process that produces the
// binary under test. The process is opaque to the harness: it is handed the
// target architecture, the build profile and the exact output path and must
// either write the binary there or exit non-zero.
type Builder struct {
	// Command is the builder command line the contract arguments are
	// appended to.
	Command []string

	// Stdout and Stderr receive the builder process output unmodified so
	// its diagnostics are never suppressed.
	Stdout io.Writer
	Stderr io.Writer
}

// Build runs the builder synchronously. It returns a [BuildError] carrying
// the process exit code on non-zero exit, and [ErrBuilderNoOutput] if the
// process succeeded without producing the output file.
func (b *Builder) Build(
	ctx context.Context,
	arch sys.Arch,
	profile BuildProfile,
	outputPath string,
) error {
	if len(b.Command) == 0 {
		return ErrBuilderCommandEmpty
	}

	args := append(b.Command[1:len(b.Command):len(b.Command)],
		"--arch", string(arch),
		"--profile", string(profile),
		"--output-path", outputPath,
	)

	cmd := exec.CommandContext(ctx, b.Command[0], args...)
	cmd.Stdout = b.Stdout
	cmd.Stderr = b.Stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &BuildError{Err: err, ExitCode: exitErr.ExitCode()}
		}

		return fmt.Errorf("start builder: %w", err)
	}

	err = sys.CheckRegularFile(outputPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuilderNoOutput, err)
	}

	return nil
}
