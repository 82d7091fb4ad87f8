// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

// Job is one compiler invocation derived from a (shader, stage,
// stage-variant) triple.
type Job struct {
	// OutputName is the canonical artifact name, e.g. "0000000101000000.spv".
	OutputName      string
	OutputPath      string
	CommandFilePath string
	SourcePath      string
	// IncludeDependencies lists the source and every file it transitively
	// includes, each after its own includes.
	IncludeDependencies []string
	IncludeSearchDirs   []string
	CompilerFlags       []string

	// PackedID is the 64-bit identifier OutputName is derived from.
	PackedID uint64
	// Shader, Stage and Variant identify the triple the job was built from.
	Shader  string
	Stage   StageKind
	Variant StageVariant
}
