// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package harness implements the boot test pipeline: validate the required
// input artifacts, stage the per-architecture run directory, invoke the
// external builder, generate the boot manifest and launch QEMU.
//
// The stages run strictly in order. Any stage failure aborts the run and no
// stage is retried.
package harness
