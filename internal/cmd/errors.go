// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"flag"
	"fmt"
)

var (
	// ErrHelp is returned when usage output was requested. The main binary
	// is supposed to exit successfully in this case.
	ErrHelp = flag.ErrHelp

	// ErrReadBuildInfo is returned if the build info can not be read from
	// the binary.
	ErrReadBuildInfo = errors.New("build info not available")
)

// ParseArgsError wraps errors that occur during argument parsing.
type ParseArgsError struct {
	err error
	msg string
}

func (e *ParseArgsError) Error() string {
	if e.err == nil {
		return e.msg
	}

	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *ParseArgsError) Is(other error) bool {
	_, ok := other.(*ParseArgsError)
	return ok
}

func (e *ParseArgsError) Unwrap() error {
	return e.err
}
