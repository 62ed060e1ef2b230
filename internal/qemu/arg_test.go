// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahutter/bootrun/internal/qemu"
)

func TestBuildArgumentStrings(t *testing.T) {
	tests := []struct {
		name        string
		args        []qemu.Argument
		expected    []string
		expectedErr error
	}{
		{
			name:     "empty",
			expected: []string{},
		},
		{
			name: "mixed",
			args: []qemu.Argument{
				qemu.UniqueArg("machine", "q35"),
				qemu.UniqueArg("nodefaults"),
				qemu.RepeatableArg("device", "ramfb"),
				qemu.RepeatableArg("device", "usb-kbd"),
			},
			expected: []string{
				"-machine", "q35",
				"-nodefaults",
				"-device", "ramfb",
				"-device", "usb-kbd",
			},
		},
		{
			name: "multi value",
			args: []qemu.Argument{
				qemu.RepeatableArg("drive", "if=pflash", "format=raw"),
			},
			expected: []string{
				"-drive", "if=pflash,format=raw",
			},
		},
		{
			name: "unique collision",
			args: []qemu.Argument{
				qemu.UniqueArg("machine", "q35"),
				qemu.UniqueArg("machine", "virt"),
			},
			expectedErr: qemu.ErrArgumentCollision,
		},
		{
			name: "repeatable collision",
			args: []qemu.Argument{
				qemu.RepeatableArg("device", "ramfb"),
				qemu.RepeatableArg("device", "ramfb"),
			},
			expectedErr: qemu.ErrArgumentCollision,
		},
		{
			name: "repeatable distinct values",
			args: []qemu.Argument{
				qemu.RepeatableArg("serial", "file:a"),
				qemu.RepeatableArg("serial", "file:b"),
			},
			expected: []string{
				"-serial", "file:a",
				"-serial", "file:b",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := qemu.BuildArgumentStrings(tt.args)
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.expectedErr == nil {
				assert.Equal(t, tt.expected, actual)
			}
		})
	}
}
