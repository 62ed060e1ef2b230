// SPDX-FileCopyrightText: 2025 Adrian Hutter <adrian@hutter.dev>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import (
	"fmt"
	"os"
	"strings"
)

// ManifestEntry is one boot menu entry binding a boot protocol to the binary
// under test.
type ManifestEntry struct {
	// Name is the menu entry name.
	Name string

	// Protocol is the boot protocol the loader uses for this entry.
	Protocol string

	// Path is the boot device relative path of the binary to load.
	Path string

	// KASLR enables base address randomization for the loaded image. Only
	// meaningful for the limine protocol.
	KASLR bool
}

// ManifestEntries returns the boot menu entries, in fixed order. All entries
// reference the same binary so every boot protocol front end is exercised
// against the identical build.
func ManifestEntries(bootPath string) []ManifestEntry {
	return []ManifestEntry{
		{Name: "efi", Protocol: "efi", Path: bootPath},
		{Name: "linux", Protocol: "linux", Path: bootPath},
		{Name: "limine", Protocol: "limine", Path: bootPath, KASLR: true},
	}
}

// RenderManifest renders the boot manifest text for the given entries.
func RenderManifest(entries []ManifestEntry) string {
	var b strings.Builder

	b.WriteString("serial: yes\n")
	b.WriteString("verbose: yes\n")

	for _, entry := range entries {
		fmt.Fprintf(&b, "\n/%s\n", entry.Name)
		fmt.Fprintf(&b, "protocol: %s\n", entry.Protocol)
		fmt.Fprintf(&b, "path: %s\n", entry.Path)

		if entry.KASLR {
			b.WriteString("kaslr: yes\n")
		}
	}

	return b.String()
}

// writeManifest writes the boot manifest to the given path, replacing any
// previous file in full.
func writeManifest(path string, entries []ManifestEntry) error {
	err := os.WriteFile(path, []byte(RenderManifest(entries)), 0o644)
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}
