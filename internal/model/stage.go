// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "fmt"

// StageKind is a shader pipeline stage. Its numeric value is the stage code
// packed into shader identifiers, so the values are fixed.
type StageKind uint8

const (
	StageVertex      StageKind = 0x1
	StageFragment    StageKind = 0x2
	StageCompute     StageKind = 0x3
	StageGeometry    StageKind = 0x4
	StageTessControl StageKind = 0x5
	StageTessEval    StageKind = 0x6
)

// stageNames are the canonical manifest spellings, indexed by code.
var stageNames = [...]string{
	StageVertex:      "vs",
	StageFragment:    "fs",
	StageCompute:     "cs",
	StageGeometry:    "gs",
	StageTessControl: "tcs",
	StageTessEval:    "tes",
}

var stageAliases = map[string]StageKind{
	"vs":           StageVertex,
	"fs":           StageFragment,
	"cs":           StageCompute,
	"gs":           StageGeometry,
	"tcs":          StageTessControl,
	"tes":          StageTessEval,
	"vertex":       StageVertex,
	"fragment":     StageFragment,
	"compute":      StageCompute,
	"geometry":     StageGeometry,
	"tess_control": StageTessControl,
	"tess_eval":    StageTessEval,
}

// ParseStageKind maps a manifest stage key ("vs", "fragment", ...) to its kind.
func ParseStageKind(s string) (StageKind, error) {
	if k, ok := stageAliases[s]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unsupported stage %q", s)
}

// StageNames returns every accepted stage key, canonical short forms first.
func StageNames() []string {
	return []string{"vs", "fs", "cs", "gs", "tcs", "tes", "vertex", "fragment", "compute", "geometry", "tess_control", "tess_eval"}
}

// Code returns the stage code packed into identifiers.
func (k StageKind) Code() uint8 {
	return uint8(k)
}

// Valid reports whether k is one of the defined stages.
func (k StageKind) Valid() bool {
	return k >= StageVertex && k <= StageTessEval
}

// String returns the canonical short name ("vs", "fs", ...).
func (k StageKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("stage(%d)", uint8(k))
	}
	return stageNames[k]
}
