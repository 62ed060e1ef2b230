// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ahutter/bootrun/internal/qemu"
	"github.com/ahutter/bootrun/internal/sys"
)

// Spec is the fully resolved configuration for one harness run. It is
// constructed once by the CLI layer and never mutated afterwards.
type Spec struct {
	// Arch selects the architecture profile.
	Arch sys.Arch

	// BuildProfile is passed to the external builder.
	BuildProfile BuildProfile

	// FirmwareDir is the firmware root containing per-architecture
	// subdirectories with code.fd and vars.fd.
	FirmwareDir string

	// BootloaderDir is the directory containing the pre-built bootloader
	// binaries.
	BootloaderDir string

	// RunDir is the root the per-architecture run directories are created
	// under.
	RunDir string

	// BuilderCommand is the external builder command line.
	BuilderCommand []string

	// QemuExecutable overrides the profile's qemu-system binary if set.
	QemuExecutable string
}

// NewCommandSpec builds the QEMU invocation for the given profile and staged
// layout.
func NewCommandSpec(
	spec Spec,
	profile Profile,
	layout Layout,
) qemu.CommandSpec {
	executable := profile.QemuExecutable
	if spec.QemuExecutable != "" {
		executable = spec.QemuExecutable
	}

	return qemu.CommandSpec{
		Executable:           executable,
		Machine:              profile.Machine,
		CPU:                  profile.CPU,
		Memory:               profile.Memory,
		Devices:              profile.Devices,
		FirmwareCode:         layout.FirmwareCode,
		FirmwareCodeReadOnly: profile.FirmwareCodeReadOnly,
		FirmwareVars:         layout.FirmwareVars,
		FATDirectory:         layout.FATDir,
		SerialLog:            layout.SerialLog,
		DebugConsoleLog:      layout.DebugConsoleLog,
		DiagnosticLog:        layout.DiagnosticLog,
		GDBPort:              qemu.DefaultGDBPort,
	}
}

// Run executes the complete pipeline for the given spec: validate inputs,
// stage the run directory, invoke the builder, write the boot manifest and
// launch QEMU. Each stage completes fully before the next begins and any
// failure aborts the run.
func Run(
	ctx context.Context,
	spec Spec,
	stdout, stderr io.Writer,
) error {
	profile, err := ProfileFor(spec.Arch)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	src := newSources(spec, profile)

	err = src.validate()
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	layout := NewLayout(spec.RunDir, profile)

	err = stage(src, layout)
	if err != nil {
		return fmt.Errorf("stage: %w", err)
	}

	slog.Debug("Staged run directory",
		slog.String("path", layout.ArchDir))

	builder := &Builder{
		Command: spec.BuilderCommand,
		Stdout:  stdout,
		Stderr:  stderr,
	}

	err = builder.Build(ctx, spec.Arch, spec.BuildProfile, layout.Binary)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	slog.Debug("Built binary under test",
		slog.String("path", layout.Binary))

	err = writeManifest(layout.Manifest, ManifestEntries(BootPath()))
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}

	qemuSpec := NewCommandSpec(spec, profile, layout)

	slog.Debug("QEMU command",
		slog.String("command", qemuSpec.String()))

	err = qemuSpec.Run(ctx, stdout, stderr)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	return nil
}
