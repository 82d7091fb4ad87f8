// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

// ShaderDesc is a shader program declared in a manifest namespace.
type ShaderDesc struct {
	Name     string
	ShaderID uint32
	Stages   []StageDesc
	// FSInfo points at the declaring manifest; its directory is the base
	// for relative stage sources when no source directory is configured.
	FSInfo *FSInfo
}

// BaseDir returns the directory the shader was declared in.
func (s *ShaderDesc) BaseDir() string {
	return s.FSInfo.Dir()
}

// StageDesc is one pipeline stage of a shader.
type StageDesc struct {
	Kind       StageKind
	SourcePath string
	Variants   []StageVariant
	ExtraFlags []string
}

// Combinations returns the stage variants a stage is compiled with: the
// declared ones, or the single implicit default when none are declared.
func (s *StageDesc) Combinations() []StageVariant {
	if len(s.Variants) == 0 {
		return []StageVariant{{}}
	}
	return s.Variants
}

// StageVariant is a labelled combination of environment variant names. The
// implicit default combination has an empty label and no names.
type StageVariant struct {
	Label        string
	VariantNames []string
}

// IsDefault reports whether this is the implicit default combination.
func (v StageVariant) IsDefault() bool {
	return v.Label == "" && len(v.VariantNames) == 0
}
