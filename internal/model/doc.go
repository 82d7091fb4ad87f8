// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the validated, in-memory description of the shaders a
// generation run builds, and the jobs derived from them.
//
// # Core Concepts
//
//   - ShaderDesc: one shader program from a manifest namespace. It owns a
//     32-bit shader id and one or more stages.
//
//   - StageDesc: one pipeline stage of a shader (vertex, fragment, ...). It
//     points at a source file and lists the variant combinations it is
//     compiled with.
//
//   - StageVariant: a labelled combination of environment variants. A stage
//     that declares none is compiled once with the implicit default
//     combination.
//
//   - Job: a single compiler invocation derived from a
//     (shader, stage, stage-variant) triple. Jobs are never authored by hand.
//
// Everything in this package is built once per run from configuration that
// has already been validated, and is treated as immutable afterwards.
package model
