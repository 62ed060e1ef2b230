// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import (
	"github.com/ahutter/bootrun/internal/sys"
)

// Profile is the static parameter set for one supported guest architecture.
// Profiles are immutable data. Adding a new architecture means adding a row
// here, not new control flow.
type Profile struct {
	// Arch is the guest architecture identifier.
	Arch sys.Arch

	// FirmwareSubdir is the subdirectory of the firmware root that holds the
	// code.fd and vars.fd images for this architecture.
	FirmwareSubdir string

	// BootloaderFile is the architecture specific bootloader binary name.
	// It is both the source name in the bootloader root and the required
	// name on the boot partition.
	BootloaderFile string

	// QemuExecutable is the name of the qemu-system binary.
	QemuExecutable string

	// Machine is the QEMU machine type.
	Machine string

	// CPU is the QEMU CPU model.
	CPU string

	// Memory is the guest memory in MB.
	Memory uint64

	// Devices are additional peripheral devices, passed verbatim as -device
	// arguments.
	Devices []string

	// DebugConsole reports whether the machine has a separate debug console
	// that is captured into its own log file. This is an x86 only QEMU
	// device.
	DebugConsole bool

	// FirmwareCodeReadOnly attaches the firmware code flash read-only. The
	// aarch64 virt machine refuses a writable executable flash.
	FirmwareCodeReadOnly bool
}

var profiles = map[sys.Arch]Profile{
	sys.X8664: {
		Arch:           sys.X8664,
		FirmwareSubdir: "x64",
		BootloaderFile: "BOOTX64.EFI",
		QemuExecutable: "qemu-system-x86_64",
		Machine:        "q35",
		CPU:            "max",
		Memory:         512,
		DebugConsole:   true,
	},
	sys.AArch64: {
		Arch:           sys.AArch64,
		FirmwareSubdir: "aarch64",
		BootloaderFile: "BOOTAA64.EFI",
		QemuExecutable: "qemu-system-aarch64",
		Machine:        "virt",
		CPU:            "a64fx",
		Memory:         512,
		Devices: []string{
			"ramfb",
			"qemu-xhci",
			"usb-kbd",
		},
		FirmwareCodeReadOnly: true,
	},
	sys.X8632: {
		Arch:           sys.X8632,
		FirmwareSubdir: "ia32",
		BootloaderFile: "BOOTIA32.EFI",
		QemuExecutable: "qemu-system-i386",
		Machine:        "q35",
		CPU:            "max",
		Memory:         512,
		DebugConsole:   true,
	},
}

// ProfileFor returns the [Profile] for the given architecture.
func ProfileFor(arch sys.Arch) (Profile, error) {
	profile, exists := profiles[arch]
	if !exists {
		return Profile{}, sys.ErrArchNotSupported
	}

	return profile, nil
}
