package hcl

import "github.com/hashicorp/hcl/v2"

// envFile is the root of an environment file.
type envFile struct {
	Includes  hcl.Expression  `hcl:"includes,optional"`
	SourceDir *string         `hcl:"source_dir,optional"`
	Compiler  *compilerBlock  `hcl:"compiler,block"`
	Variants  []*variantBlock `hcl:"variant,block"`
}

type compilerBlock struct {
	Path     *string         `hcl:"path,optional"`
	Flags    hcl.Expression  `hcl:"flags,optional"`
	Profiles []*profileBlock `hcl:"profile,block"`
}

type profileBlock struct {
	Name  string         `hcl:"name,label"`
	Flags hcl.Expression `hcl:"flags,optional"`
}

type variantBlock struct {
	Name  string         `hcl:"name,label"`
	Flags hcl.Expression `hcl:"flags,optional"`
}

// manifestFile is the root of a manifest file.
type manifestFile struct {
	Namespaces []*namespaceBlock `hcl:"namespace,block"`
}

type namespaceBlock struct {
	Name    string         `hcl:"name,label"`
	Shaders []*shaderBlock `hcl:"shader,block"`
}

type shaderBlock struct {
	Name   string         `hcl:"name,label"`
	ID     hcl.Expression `hcl:"id"`
	Stages []*stageBlock  `hcl:"stage,block"`
}

type stageBlock struct {
	Kind          string               `hcl:"kind,label"`
	Src           *string              `hcl:"src,optional"`
	CompilerFlags hcl.Expression       `hcl:"compiler_flags,optional"`
	Variants      []*stageVariantBlock `hcl:"variant,block"`
}

type stageVariantBlock struct {
	Label string         `hcl:"label,label"`
	Use   hcl.Expression `hcl:"use,optional"`
}
