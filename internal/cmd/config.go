// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

const localConfigFile = ".bootrun.toml"

// localConfig is the optional per-project config file. Its values have the
// lowest precedence: environment variables and flags both override them.
type localConfig struct {
	FirmwareDir   string `toml:"firmware_dir"`
	BootloaderDir string `toml:"bootloader_dir"`
	RunDir        string `toml:"run_dir"`
	Builder       string `toml:"builder"`
	QemuBin       string `toml:"qemu_bin"`
}

// loadLocalConfig reads the local config file. A missing file is not an
// error; it yields the zero config.
func loadLocalConfig(fsys fs.FS, file string) (localConfig, error) {
	var config localConfig

	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}

		return config, fmt.Errorf("read config file: %w", err)
	}

	err = toml.Unmarshal(data, &config)
	if err != nil {
		return config, fmt.Errorf("decode config file: %w", err)
	}

	return config, nil
}
