package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/model"
)

// MaxVariants is the width of the variant bit space.
const MaxVariants = 64

// Validate checks the environment for structural defects and reports all of
// them as one ConfigError.
func (e *Env) Validate() error {
	var problems []string

	if e.Compiler.Path == "" {
		problems = append(problems, "env.compiler.path must be a non-empty string")
	}
	for name := range e.Compiler.Profiles {
		if name == "" {
			problems = append(problems, "env.compiler.profiles: profile name must not be empty")
		}
	}

	seen := make(map[string]struct{}, len(e.Variants))
	for i, v := range e.Variants {
		if v.Name == "" {
			problems = append(problems, fmt.Sprintf("env.variants[%d]: variant name must not be empty", i))
			continue
		}
		if _, dup := seen[v.Name]; dup {
			problems = append(problems, fmt.Sprintf("env.variants: duplicate variant %q", v.Name))
			continue
		}
		seen[v.Name] = struct{}{}
	}
	if len(e.Variants) > MaxVariants {
		problems = append(problems, fmt.Sprintf("env.variants: %d variants declared, at most %d fit the variant mask", len(e.Variants), MaxVariants))
	}

	if err := builderr.Config(problems); err != nil {
		return fmt.Errorf("%s: %w", e.Path, err)
	}
	return nil
}

// ResolvePaths makes the include and source directories absolute. A
// relative path is taken relative to cwd if it exists there, else relative
// to the environment file's directory if it exists there, else relative to
// cwd.
func (e *Env) ResolvePaths(cwd string) {
	envDir := filepath.Dir(e.Path)
	for i, inc := range e.Includes {
		e.Includes[i] = resolveConfigPath(inc, cwd, envDir)
	}
	if e.SourceDir != "" {
		e.SourceDir = resolveConfigPath(e.SourceDir, cwd, envDir)
	}
}

func resolveConfigPath(raw, cwd, envDir string) string {
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	cwdCandidate := filepath.Join(cwd, raw)
	if exists(cwdCandidate) {
		return cwdCandidate
	}
	envCandidate := filepath.Join(envDir, raw)
	if exists(envCandidate) {
		return envCandidate
	}
	return cwdCandidate
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Validate checks the manifest for structural defects and reports all of
// them as one ConfigError.
func (m *Manifest) Validate() error {
	var problems []string

	seenNS := make(map[string]struct{}, len(m.Namespaces))
	for _, ns := range m.Namespaces {
		if ns.Name == "" {
			problems = append(problems, "namespace name must not be empty")
		} else if _, dup := seenNS[ns.Name]; dup {
			problems = append(problems, fmt.Sprintf("duplicate namespace %q", ns.Name))
		}
		seenNS[ns.Name] = struct{}{}

		seenShader := make(map[string]struct{}, len(ns.Shaders))
		for _, sh := range ns.Shaders {
			where := fmt.Sprintf("%s.%s", ns.Name, sh.Name)
			if sh.Name == "" {
				problems = append(problems, fmt.Sprintf("namespace %q: shader name must not be empty", ns.Name))
			} else if _, dup := seenShader[sh.Name]; dup {
				problems = append(problems, fmt.Sprintf("namespace %q: duplicate shader %q", ns.Name, sh.Name))
			}
			seenShader[sh.Name] = struct{}{}

			if len(sh.Stages) == 0 {
				problems = append(problems, fmt.Sprintf("shader %q has no stages", where))
			}
			for _, st := range sh.Stages {
				problems = append(problems, validateStage(where, st)...)
			}
		}
	}

	if err := builderr.Config(problems); err != nil {
		return fmt.Errorf("%s: %w", m.Path, err)
	}
	return nil
}

func validateStage(where string, st StageDecl) []string {
	var problems []string
	if _, err := model.ParseStageKind(st.Stage); err != nil {
		problems = append(problems, fmt.Sprintf("shader %q: %v%s", where, err, builderr.Hint(st.Stage, model.StageNames())))
	}
	if st.Src == "" {
		problems = append(problems, fmt.Sprintf("shader %q: stage %q missing non-empty 'src'", where, st.Stage))
	}
	for _, sv := range st.Variants {
		if sv.Label == "" {
			problems = append(problems, fmt.Sprintf("shader %q: stage %q has a variant combination without a label", where, st.Stage))
		}
		for _, name := range sv.Variants {
			if name == "" {
				problems = append(problems, fmt.Sprintf("shader %q: stage %q variant %q references an empty variant name", where, st.Stage, sv.Label))
			}
		}
	}
	return problems
}
