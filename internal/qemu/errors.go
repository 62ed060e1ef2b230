// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"errors"
	"fmt"
)

// ErrArgumentCollision is returned if two [Argument]s are considered equal.
var ErrArgumentCollision = errors.New("colliding args")

// ArgumentError indicates an issue with an input argument.
type ArgumentError struct {
	msg string
}

// Error implements the [error] interface.
func (e *ArgumentError) Error() string {
	return "argument error: " + e.msg
}

// Is implements the [errors.Is] interface.
func (*ArgumentError) Is(other error) bool {
	_, ok := other.(*ArgumentError)
	return ok
}

// CommandError wraps any error occurred during Command execution. ExitCode
// carries the exit code of the QEMU process if it terminated itself.
type CommandError struct {
	Err      error
	ExitCode int
}

// Error implements the [error] interface.
func (e *CommandError) Error() string {
	return "qemu: " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*CommandError) Is(other error) bool {
	_, ok := other.(*CommandError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// ConsoleError wraps any error occurring during console output processing.
type ConsoleError struct {
	Name string
	Err  error
}

// Error implements the [error] interface.
func (e *ConsoleError) Error() string {
	return fmt.Sprintf("console %s: %v", e.Name, e.Err)
}

// Is implements the [errors.Is] interface.
func (*ConsoleError) Is(other error) bool {
	_, ok := other.(*ConsoleError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ConsoleError) Unwrap() error {
	return e.Err
}
