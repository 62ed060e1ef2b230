// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import "errors"

// Arch is a guest architecture identifier as used by the boot stub build and
// the matching qemu-system binary.
type Arch string

// Supported guest architectures.
const (
	X8664   Arch = "x86_64"
	AArch64 Arch = "aarch64"
	X8632   Arch = "x86_32"
)

var ErrArchNotSupported = errors.New("architecture not supported")

func (a *Arch) String() string {
	return string(*a)
}

// Set implements [flag.Value].
func (a *Arch) Set(s string) error {
	switch Arch(s) {
	case X8664, AArch64, X8632:
		*a = Arch(s)
	default:
		return ErrArchNotSupported
	}

	return nil
}
