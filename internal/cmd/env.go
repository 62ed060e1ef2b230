// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"os"
	"strings"
)

// envValue returns the trimmed value of the given environment variable.
func envValue(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}
