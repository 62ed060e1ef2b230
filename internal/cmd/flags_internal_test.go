// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahutter/bootrun/internal/harness"
	"github.com/ahutter/bootrun/internal/sys"
)

func parseFlags(
	t *testing.T,
	args []string,
	config localConfig,
) (*flags, error) {
	t.Helper()

	var output strings.Builder

	flags := newFlags(&output)

	return flags, flags.ParseArgs(args, config)
}

func TestParseArgsDefaults(t *testing.T) {
	t.Setenv(firmwareDirEnv, "/env/ovmf")
	t.Setenv(bootloaderDirEnv, "/env/limine")

	flags, err := parseFlags(t, nil, localConfig{})
	require.NoError(t, err)

	assert.Equal(t, sys.X8664, flags.spec.Arch)
	assert.Equal(t, harness.BuildProfileDev, flags.spec.BuildProfile)
	assert.Equal(t, "/env/ovmf", flags.spec.FirmwareDir)
	assert.Equal(t, "/env/limine", flags.spec.BootloaderDir)
	assert.Equal(t,
		[]string{"cargo", "xtask", "package"},
		flags.spec.BuilderCommand,
	)
	assert.Empty(t, flags.spec.QemuExecutable)
	assert.True(t, strings.HasSuffix(flags.spec.RunDir, "/run"))
}

func TestParseArgsPrecedence(t *testing.T) {
	config := localConfig{
		FirmwareDir:   "/config/ovmf",
		BootloaderDir: "/config/limine",
		RunDir:        "/config/run",
		Builder:       "make image",
		QemuBin:       "/config/qemu",
	}

	tests := []struct {
		name     string
		args     []string
		env      map[string]string
		expected harness.Spec
	}{
		{
			name: "config only",
			expected: harness.Spec{
				FirmwareDir:    "/config/ovmf",
				BootloaderDir:  "/config/limine",
				RunDir:         "/config/run",
				BuilderCommand: []string{"make", "image"},
				QemuExecutable: "/config/qemu",
			},
		},
		{
			name: "env overrides config",
			env: map[string]string{
				firmwareDirEnv:   "/env/ovmf",
				bootloaderDirEnv: "/env/limine",
			},
			expected: harness.Spec{
				FirmwareDir:    "/env/ovmf",
				BootloaderDir:  "/config/limine",
				RunDir:         "/config/run",
				BuilderCommand: []string{"make", "image"},
				QemuExecutable: "/config/qemu",
			},
		},
		{
			name: "flags override env and config",
			args: []string{
				"-firmware", "/flag/ovmf",
				"-bootloader", "/flag/limine",
				"-runDir", "/flag/run",
				"-builder", "ninja image",
				"-qemuBin", "/flag/qemu",
			},
			env: map[string]string{
				firmwareDirEnv:   "/env/ovmf",
				bootloaderDirEnv: "/env/limine",
			},
			expected: harness.Spec{
				FirmwareDir:    "/flag/ovmf",
				BootloaderDir:  "/flag/limine",
				RunDir:         "/flag/run",
				BuilderCommand: []string{"ninja", "image"},
				QemuExecutable: "/flag/qemu",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := tt.env
			if env == nil {
				env = map[string]string{}
			}

			// Clear inherited values so only the test env applies.
			t.Setenv(firmwareDirEnv, env[firmwareDirEnv])
			t.Setenv(bootloaderDirEnv, env[bootloaderDirEnv])

			flags, err := parseFlags(t, tt.args, config)
			require.NoError(t, err)

			tt.expected.Arch = sys.X8664
			tt.expected.BuildProfile = harness.BuildProfileDev
			assert.Equal(t, tt.expected, flags.spec)
		})
	}
}

func TestParseArgsEnvOverridesSingleLocation(t *testing.T) {
	t.Setenv(firmwareDirEnv, "/env/ovmf")
	t.Setenv(bootloaderDirEnv, "/env/limine")

	flags, err := parseFlags(
		t,
		[]string{"-firmware", "/flag/ovmf"},
		localConfig{},
	)
	require.NoError(t, err)

	// Both locations resolve independently.
	assert.Equal(t, "/flag/ovmf", flags.spec.FirmwareDir)
	assert.Equal(t, "/env/limine", flags.spec.BootloaderDir)
}

func TestParseArgsArchAndProfile(t *testing.T) {
	t.Setenv(firmwareDirEnv, "/env/ovmf")
	t.Setenv(bootloaderDirEnv, "/env/limine")

	flags, err := parseFlags(
		t,
		[]string{"-arch", "aarch64", "-profile", "release"},
		localConfig{},
	)
	require.NoError(t, err)

	assert.Equal(t, sys.AArch64, flags.spec.Arch)
	assert.Equal(t, harness.BuildProfileRelease, flags.spec.BuildProfile)
}

func TestParseArgsMissingLocations(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectedMsg string
	}{
		{
			name:        "missing firmware",
			args:        []string{"-bootloader", "/flag/limine"},
			expectedMsg: "firmware directory not set",
		},
		{
			name:        "missing bootloader",
			args:        []string{"-firmware", "/flag/ovmf"},
			expectedMsg: "bootloader directory not set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(firmwareDirEnv, "")
			t.Setenv(bootloaderDirEnv, "")

			_, err := parseFlags(t, tt.args, localConfig{})
			require.ErrorIs(t, err, &ParseArgsError{})

			assert.ErrorContains(t, err, tt.expectedMsg)
		})
	}
}

func TestParseArgsHelp(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "only flag",
			args: []string{"--help"},
		},
		{
			name: "short flag",
			args: []string{"-h"},
		},
		{
			name: "after other flags",
			args: []string{"-arch", "aarch64", "-help"},
		},
		{
			name: "with invalid configuration",
			args: []string{"-arch", "not-an-arch", "--help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(firmwareDirEnv, "")
			t.Setenv(bootloaderDirEnv, "")

			var output strings.Builder

			flags := newFlags(&output)

			err := flags.ParseArgs(tt.args, localConfig{})
			require.ErrorIs(t, err, ErrHelp)

			assert.Contains(t, output.String(), "Usage of 'bootrun'")
		})
	}
}

func TestParseArgsUnknownFlag(t *testing.T) {
	var output strings.Builder

	flags := newFlags(&output)

	err := flags.ParseArgs([]string{"-no-such-flag"}, localConfig{})
	require.ErrorIs(t, err, &ParseArgsError{})
	require.NotErrorIs(t, err, ErrHelp)

	assert.Contains(t, output.String(), "-no-such-flag")
}
