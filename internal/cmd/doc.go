// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for bootrun. It handles
// flag parsing, configuration resolution, error handling and exit codes.
package cmd
