// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahutter/bootrun/internal/qemu"
)

// testSpec returns a runnable spec with the QEMU binary replaced by a
// command that ignores all generated arguments.
func testSpec(t *testing.T, executable string) qemu.CommandSpec {
	t.Helper()

	tmpDir := t.TempDir()

	return qemu.CommandSpec{
		Executable:    executable,
		Machine:       "q35",
		CPU:           "max",
		Memory:        512,
		FirmwareCode:  filepath.Join(tmpDir, "code.fd"),
		FirmwareVars:  filepath.Join(tmpDir, "vars.fd"),
		FATDirectory:  filepath.Join(tmpDir, "fat"),
		SerialLog:     filepath.Join(tmpDir, "serial.txt"),
		DiagnosticLog: filepath.Join(tmpDir, "qemu-log.txt"),
		GDBPort:       qemu.DefaultGDBPort,
	}
}

func TestCommandSpecRun(t *testing.T) {
	spec := testSpec(t, "true")

	err := spec.Run(context.Background(), os.Stdout, os.Stderr)
	require.NoError(t, err)

	// The serial log file is created even if the process never wrote to
	// its console.
	_, err = os.Stat(spec.SerialLog)
	require.NoError(t, err)
}

func TestCommandSpecRunExitCode(t *testing.T) {
	spec := testSpec(t, "false")

	err := spec.Run(context.Background(), os.Stdout, os.Stderr)

	var cmdErr *qemu.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 1, cmdErr.ExitCode)
}

func TestCommandSpecRunMissingExecutable(t *testing.T) {
	spec := testSpec(t, "definitely-not-a-qemu-binary")

	err := spec.Run(context.Background(), os.Stdout, os.Stderr)
	require.Error(t, err)
	require.NotErrorIs(t, err, &qemu.CommandError{})
}

func TestCommandSpecRunInvalid(t *testing.T) {
	spec := testSpec(t, "true")
	spec.FirmwareVars = ""

	err := spec.Run(context.Background(), os.Stdout, os.Stderr)
	require.ErrorIs(t, err, &qemu.ArgumentError{})
}
