// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrEmptyPath      = errors.New("path must not be empty")
	ErrNotRegularFile = errors.New("not a regular file")
)

// AbsolutePath returns the absolute version of the given path. It fails for
// empty input so missing values are caught where the path is set, not where
// it is used.
func AbsolutePath(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("ensure absolute path: %w", err)
	}

	return path, nil
}

// CheckRegularFile returns an error unless path exists and is a regular
// file. The returned error contains the offending path.
func CheckRegularFile(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !stat.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	return nil
}
