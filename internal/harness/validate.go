// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import (
	"fmt"
	"path/filepath"

	"github.com/ahutter/bootrun/internal/sys"
)

// sources holds the input artifact paths for one architecture, resolved
// against the firmware and bootloader roots.
type sources struct {
	firmwareCode string
	firmwareVars string
	bootloader   string
}

func newSources(spec Spec, profile Profile) sources {
	firmwareDir := filepath.Join(spec.FirmwareDir, profile.FirmwareSubdir)

	return sources{
		firmwareCode: filepath.Join(firmwareDir, firmwareCodeImage),
		firmwareVars: filepath.Join(firmwareDir, firmwareVarsImage),
		bootloader:   filepath.Join(spec.BootloaderDir, profile.BootloaderFile),
	}
}

// validate checks that all required input artifacts exist as regular files.
// It fails on the first missing file so the error always names a single,
// actionable path. It runs before any filesystem mutation.
func (s sources) validate() error {
	err := sys.CheckRegularFile(s.firmwareCode)
	if err != nil {
		return fmt.Errorf("firmware code image: %w", err)
	}

	err = sys.CheckRegularFile(s.firmwareVars)
	if err != nil {
		return fmt.Errorf("firmware variable store image: %w", err)
	}

	err = sys.CheckRegularFile(s.bootloader)
	if err != nil {
		return fmt.Errorf("bootloader binary: %w", err)
	}

	return nil
}
