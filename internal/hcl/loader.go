package hcl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/config"
	"github.com/vk/shadergen/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// parse reads one file and decodes its body into target.
func parse(path string, target any) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return builderr.Wrap(builderr.KindConfig, path, diags, "failed to parse HCL file %s", path)
	}
	if diags := gohcl.DecodeBody(file.Body, nil, target); diags.HasErrors() {
		return builderr.Wrap(builderr.KindConfig, path, diags, "failed to decode HCL file %s", path)
	}
	return nil
}

// LoadEnv decodes an environment file.
func (l *Loader) LoadEnv(ctx context.Context, path string) (*config.Env, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL env decoding started.", "path", path)

	var root envFile
	if err := parse(path, &root); err != nil {
		return nil, err
	}

	d := &decoder{path: path}
	env := &config.Env{
		Includes: d.strList(root.Includes, "includes"),
		Compiler: config.Compiler{Path: config.DefaultCompiler},
	}
	if root.SourceDir != nil {
		if *root.SourceDir == "" {
			d.problem(hcl.Range{}, "source_dir must be a non-empty string")
		}
		env.SourceDir = *root.SourceDir
	}

	if c := root.Compiler; c != nil {
		if c.Path != nil {
			env.Compiler.Path = strings.TrimSpace(*c.Path)
		}
		env.Compiler.Flags = d.flags(c.Flags, "compiler.flags")
		if len(c.Profiles) > 0 {
			env.Compiler.Profiles = make(map[string][]string, len(c.Profiles))
		}
		for _, p := range c.Profiles {
			name := strings.ToLower(p.Name)
			if _, dup := env.Compiler.Profiles[name]; dup {
				d.problem(hcl.Range{}, "duplicate profile %q", name)
				continue
			}
			env.Compiler.Profiles[name] = d.flags(p.Flags, "profile "+strconv.Quote(p.Name)+" flags")
		}
	}

	for _, v := range root.Variants {
		env.Variants = append(env.Variants, config.VariantDecl{
			Name:  v.Name,
			Flags: d.flags(v.Flags, "variant "+strconv.Quote(v.Name)+" flags"),
		})
	}

	if err := d.err(); err != nil {
		return nil, err
	}
	logger.Debug("HCL env decoding complete.", "variants", len(env.Variants))
	return env, nil
}

// LoadManifest decodes a manifest file.
func (l *Loader) LoadManifest(ctx context.Context, path string) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL manifest decoding started.", "path", path)

	var root manifestFile
	if err := parse(path, &root); err != nil {
		return nil, err
	}

	d := &decoder{path: path}
	man := &config.Manifest{}
	for _, nsBlock := range root.Namespaces {
		ns := config.Namespace{Name: nsBlock.Name}
		for _, sb := range nsBlock.Shaders {
			ns.Shaders = append(ns.Shaders, d.shader(sb))
		}
		man.Namespaces = append(man.Namespaces, ns)
	}

	if err := d.err(); err != nil {
		return nil, err
	}
	logger.Debug("HCL manifest decoding complete.", "namespaces", len(man.Namespaces))
	return man, nil
}

func (d *decoder) shader(sb *shaderBlock) config.ShaderDecl {
	what := fmt.Sprintf("shader %q", sb.Name)
	sh := config.ShaderDecl{
		Name: sb.Name,
		ID:   d.shaderID(sb.ID, what),
	}
	for _, stb := range sb.Stages {
		stWhat := fmt.Sprintf("%s stage %q", what, stb.Kind)
		st := config.StageDecl{
			Stage:         stb.Kind,
			CompilerFlags: d.flags(stb.CompilerFlags, stWhat+" compiler_flags"),
		}
		if stb.Src != nil {
			st.Src = *stb.Src
		}
		for _, vb := range stb.Variants {
			st.Variants = append(st.Variants, config.StageVariantDecl{
				Label:    vb.Label,
				Variants: d.strList(vb.Use, fmt.Sprintf("%s variant %q use", stWhat, vb.Label)),
			})
		}
		sh.Stages = append(sh.Stages, st)
	}
	return sh
}
