// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the FSInfo struct, which links a declaration back to the
// file it was read from.
//
// The declaring file matters for two things: error messages can point at the
// manifest that needs fixing, and relative stage sources resolve against the
// manifest's directory when no global source directory is configured.
package model

import "path/filepath"

// FSInfo records where a declaration came from.
type FSInfo struct {
	FilePath string
}

// NewFSInfo creates an FSInfo for the given file path.
func NewFSInfo(filePath string) *FSInfo {
	return &FSInfo{FilePath: filePath}
}

// Dir returns the directory containing the declaring file.
func (f *FSInfo) Dir() string {
	if f == nil || f.FilePath == "" {
		return ""
	}
	return filepath.Dir(f.FilePath)
}
