// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sys provides small host system helpers shared by the other
// packages: the guest architecture identifier and file path validation.
package sys
