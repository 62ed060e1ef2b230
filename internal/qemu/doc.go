// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu provides utilities for composing and running QEMU system
// virtualization commands as needed by bootrun. It expects the required QEMU
// binary to be present on the system.
//
// The guest is booted from OVMF firmware attached as pflash devices and a
// host directory exposed as a raw virtual FAT drive. Serial and debug
// console output is captured into host log files.
package qemu
