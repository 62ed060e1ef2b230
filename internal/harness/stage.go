// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import (
	"fmt"
	"io"
	"os"
)

// stage creates the run directory tree and copies the input artifacts into
// place. It may be re-run any number of times; existing trees are reused and
// previous contents are overwritten.
func stage(src sources, layout Layout) error {
	// BootDir is the deepest directory, creating it covers the whole tree.
	err := os.MkdirAll(layout.BootDir, 0o755)
	if err != nil {
		return fmt.Errorf("create run directory tree: %w", err)
	}

	copies := []struct {
		name string
		src  string
		dst  string
	}{
		{"firmware code image", src.firmwareCode, layout.FirmwareCode},
		{"firmware variable store image", src.firmwareVars, layout.FirmwareVars},
		{"bootloader binary", src.bootloader, layout.Bootloader},
	}

	for _, c := range copies {
		err := copyFile(c.src, c.dst)
		if err != nil {
			return fmt.Errorf("stage %s: %w", c.name, err)
		}

		// The firmware mutates its variable store at runtime and every run
		// overwrites the staged files again, so all copies must be writable
		// regardless of the source file permissions.
		err = makeWritable(c.dst)
		if err != nil {
			return fmt.Errorf("stage %s: %w", c.name, err)
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer source.Close()

	target, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	_, err = io.Copy(target, source)
	if err != nil {
		_ = target.Close()
		return fmt.Errorf("copy: %w", err)
	}

	err = target.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

func makeWritable(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	err = os.Chmod(path, stat.Mode().Perm()|0o200)
	if err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	return nil
}
