package config

// DefaultCompiler is used when the environment does not name one.
const DefaultCompiler = "glslc"

// Env is the environment document.
type Env struct {
	// Path is the absolute path of the file the environment was read from.
	Path string
	// Includes are the include search directories, in search order.
	Includes []string
	// SourceDir is the root for relative stage sources. Empty means sources
	// resolve against their manifest's directory.
	SourceDir string
	Compiler  Compiler
	// Variants are kept in declaration order; the order defines bit
	// assignment.
	Variants []VariantDecl
}

// Compiler describes the shader compiler executable.
type Compiler struct {
	Path  string
	Flags []string
	// Profiles are named flag bundles keyed by lower-cased name.
	Profiles map[string][]string
}

// VariantDecl declares a compile-time variant and the flags it adds.
type VariantDecl struct {
	Name  string
	Flags []string
}

// Manifest is one manifest document.
type Manifest struct {
	// Path is the absolute path of the manifest file.
	Path       string
	Namespaces []Namespace
}

// Namespace groups the shaders that generate into one output directory.
type Namespace struct {
	Name    string
	Shaders []ShaderDecl
}

// ShaderDecl is a shader as written in a manifest.
type ShaderDecl struct {
	Name   string
	ID     uint32
	Stages []StageDecl
}

// StageDecl is a stage as written in a manifest.
type StageDecl struct {
	// Stage is the manifest key, e.g. "vs" or "fragment".
	Stage         string
	Src           string
	Variants      []StageVariantDecl
	CompilerFlags []string
}

// StageVariantDecl is a labelled list of variant names.
type StageVariantDecl struct {
	Label    string
	Variants []string
}
