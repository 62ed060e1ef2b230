// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import "path/filepath"

const (
	firmwareCodeImage = "code.fd"
	firmwareVarsImage = "vars.fd"

	fatDirName  = "fat"
	bootDirName = "EFI/BOOT"

	binaryName   = "stub.efi"
	manifestName = "limine.conf"

	serialLogName       = "serial.txt"
	diagnosticLogName   = "qemu-log.txt"
	debugConsoleLogName = "debugcon.txt"
)

// Layout holds all concrete paths of one staged per-architecture run
// directory. It is pure path computation; nothing is created until staging
// runs.
type Layout struct {
	// ArchDir is the per-architecture run root.
	ArchDir string

	// FirmwareCode and FirmwareVars are the staged firmware flash images.
	FirmwareCode string
	FirmwareVars string

	// FATDir is the directory exposed to the guest as FAT root.
	FATDir string

	// BootDir is the EFI boot directory inside the FAT root.
	BootDir string

	// Bootloader is the staged bootloader binary inside BootDir.
	Bootloader string

	// Binary is the path the external builder must write the binary under
	// test to.
	Binary string

	// Manifest is the boot manifest file inside the FAT root.
	Manifest string

	// Log file paths.
	SerialLog       string
	DiagnosticLog   string
	DebugConsoleLog string
}

// NewLayout computes the [Layout] for the given run root and profile.
func NewLayout(runDir string, profile Profile) Layout {
	archDir := filepath.Join(runDir, string(profile.Arch))
	fatDir := filepath.Join(archDir, fatDirName)
	bootDir := filepath.Join(fatDir, bootDirName)

	layout := Layout{
		ArchDir:       archDir,
		FirmwareCode:  filepath.Join(archDir, firmwareCodeImage),
		FirmwareVars:  filepath.Join(archDir, firmwareVarsImage),
		FATDir:        fatDir,
		BootDir:       bootDir,
		Bootloader:    filepath.Join(bootDir, profile.BootloaderFile),
		Binary:        filepath.Join(fatDir, binaryName),
		Manifest:      filepath.Join(fatDir, manifestName),
		SerialLog:     filepath.Join(archDir, serialLogName),
		DiagnosticLog: filepath.Join(archDir, diagnosticLogName),
	}

	if profile.DebugConsole {
		layout.DebugConsoleLog = filepath.Join(archDir, debugConsoleLogName)
	}

	return layout
}

// BootPath returns the boot device relative path of the binary under test as
// referenced by the boot manifest.
func BootPath() string {
	return "boot():/" + binaryName
}
