// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package listing enumerates the files of a directory for the shell's file
// pickers. Only regular files that can be opened at the time of the call are
// listed; anything else is skipped silently.
package listing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Files returns the names of the readable regular files in dir, in
// directory order (sorted by name). Hidden files are skipped.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		f.Close()
		names = append(names, name)
	}
	return names, nil
}

// List returns Files(dir) joined with newlines.
func List(dir string) (string, error) {
	names, err := Files(dir)
	if err != nil {
		return "", err
	}
	return strings.Join(names, "\n"), nil
}

// WithExtensions returns the names whose extension matches one of exts,
// compared case-insensitively. Each ext includes the leading dot.
func WithExtensions(names []string, exts ...string) []string {
	var out []string
	for _, name := range names {
		ext := filepath.Ext(name)
		for _, e := range exts {
			if strings.EqualFold(ext, e) {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

// ImageExtensions are the source formats accepted by folder conversions.
var ImageExtensions = []string{".jpg", ".jpeg", ".png"}
