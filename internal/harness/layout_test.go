// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahutter/bootrun/internal/harness"
	"github.com/ahutter/bootrun/internal/sys"
)

func TestNewLayout(t *testing.T) {
	profile, err := harness.ProfileFor(sys.X8664)
	require.NoError(t, err)

	layout := harness.NewLayout("/run/root", profile)

	expected := harness.Layout{
		ArchDir:         "/run/root/x86_64",
		FirmwareCode:    "/run/root/x86_64/code.fd",
		FirmwareVars:    "/run/root/x86_64/vars.fd",
		FATDir:          "/run/root/x86_64/fat",
		BootDir:         "/run/root/x86_64/fat/EFI/BOOT",
		Bootloader:      "/run/root/x86_64/fat/EFI/BOOT/BOOTX64.EFI",
		Binary:          "/run/root/x86_64/fat/stub.efi",
		Manifest:        "/run/root/x86_64/fat/limine.conf",
		SerialLog:       "/run/root/x86_64/serial.txt",
		DiagnosticLog:   "/run/root/x86_64/qemu-log.txt",
		DebugConsoleLog: "/run/root/x86_64/debugcon.txt",
	}

	assert.Equal(t, expected, layout)
}

func TestNewLayoutNoDebugConsole(t *testing.T) {
	profile, err := harness.ProfileFor(sys.AArch64)
	require.NoError(t, err)

	layout := harness.NewLayout("/run/root", profile)

	assert.Empty(t, layout.DebugConsoleLog)
	assert.Equal(t, "/run/root/aarch64/fat/EFI/BOOT/BOOTAA64.EFI",
		layout.Bootloader)
}

func TestBootPath(t *testing.T) {
	assert.Equal(t, "boot():/stub.efi", harness.BootPath())
}
