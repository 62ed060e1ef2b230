// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import "errors"

var (
	// ErrBuilderCommandEmpty is returned if no builder command is
	// configured.
	ErrBuilderCommandEmpty = errors.New("builder command must not be empty")

	// ErrBuilderNoOutput is returned if the builder exited successfully but
	// did not write the requested output file.
	ErrBuilderNoOutput = errors.New("builder did not write output file")
)

// BuildError wraps a builder process failure. ExitCode carries the exit code
// of the builder process if it terminated itself.
type BuildError struct {
	Err      error
	ExitCode int
}

// Error implements the [error] interface.
func (e *BuildError) Error() string {
	return "builder: " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*BuildError) Is(other error) bool {
	_, ok := other.(*BuildError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *BuildError) Unwrap() error {
	return e.Err
}
