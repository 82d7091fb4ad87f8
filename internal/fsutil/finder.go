// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vk/shadergen/internal/builderr"
)

// FindFilesByExtension lists the regular files directly inside dir whose
// names end with extension, sorted by name. Subdirectories are not
// searched.
func FindFilesByExtension(dir string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), extension) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}

// ExpandInputs turns a list of files and directories into absolute file
// paths. A directory contributes its files for each extension in turn, each
// group sorted. Files named directly are kept whatever their extension.
// Repeats are dropped and an empty result is a ConfigError.
func ExpandInputs(inputs []string, extensions ...string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return nil, fmt.Errorf("failed to make %s absolute: %w", in, err)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return nil, builderr.Configf("manifest input not found: %s", abs)
		}
		if !info.IsDir() {
			add(abs)
			continue
		}

		for _, ext := range extensions {
			files, err := FindFilesByExtension(abs, ext)
			if err != nil {
				return nil, fmt.Errorf("failed to list %s: %w", abs, err)
			}
			for _, f := range files {
				add(f)
			}
		}
	}

	if len(out) == 0 {
		return nil, builderr.Configf("no manifest files found in inputs: %s", strings.Join(inputs, ", "))
	}
	return out, nil
}
