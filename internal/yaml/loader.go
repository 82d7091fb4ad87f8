package yaml

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/vk/shadergen/internal/config"
	"github.com/vk/shadergen/internal/ctxlog"
	yamlv3 "gopkg.in/yaml.v3"
)

var (
	envKeys      = []string{"includes", "source_dir", "compiler", "variants"}
	compilerKeys = []string{"path", "flags", "profiles"}
	shaderKeys   = []string{"id", "stages"}
	stageKeys    = []string{"src", "variants", "compiler_flags"}
)

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadEnv decodes an environment document.
func (l *Loader) LoadEnv(ctx context.Context, path string) (*config.Env, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML env decoding started.", "path", path)

	root, err := readRoot(path)
	if err != nil {
		return nil, err
	}

	d := &decoder{path: path}
	env := &config.Env{Compiler: config.Compiler{Path: config.DefaultCompiler}}

	top := d.pairs(root, "env config")
	for _, p := range top {
		if p.key.Value == "env" && p.value.Kind == yamlv3.MappingNode {
			top = d.pairs(p.value, "env")
			break
		}
	}

	for _, p := range top {
		switch d.key(p.key, "env") {
		case "includes":
			env.Includes = d.strList(p.value, "env.includes")
		case "source_dir":
			if s, ok := d.str(p.value, "env.source_dir"); ok {
				if s == "" {
					d.problem(p.value, "env.source_dir must be a non-empty string")
				}
				env.SourceDir = s
			}
		case "compiler":
			d.compiler(p.value, &env.Compiler)
		case "variants":
			env.Variants = d.variants(p.value)
		default:
			d.unknownKey(p.key, "env", envKeys)
		}
	}

	if err := d.err(); err != nil {
		return nil, err
	}
	logger.Debug("YAML env decoding complete.", "variants", len(env.Variants))
	return env, nil
}

func (d *decoder) compiler(n *yamlv3.Node, c *config.Compiler) {
	if isNull(n) {
		return
	}
	for _, p := range d.pairs(n, "env.compiler") {
		switch d.key(p.key, "env.compiler") {
		case "path":
			if s, ok := d.str(p.value, "env.compiler.path"); ok {
				c.Path = strings.TrimSpace(s)
			}
		case "flags":
			c.Flags = d.flags(p.value, "env.compiler.flags")
		case "profiles":
			d.profiles(p.value, c)
		default:
			d.unknownKey(p.key, "env.compiler", compilerKeys)
		}
	}
}

func (d *decoder) profiles(n *yamlv3.Node, c *config.Compiler) {
	if isNull(n) {
		return
	}
	c.Profiles = make(map[string][]string)
	for _, p := range d.pairs(n, "env.compiler.profiles") {
		name := strings.ToLower(d.key(p.key, "env.compiler.profiles"))
		if name == "" {
			d.problem(p.key, "invalid profile name %q", p.key.Value)
			continue
		}
		if _, dup := c.Profiles[name]; dup {
			d.problem(p.key, "duplicate profile %q", name)
			continue
		}
		what := "env.compiler.profiles." + name
		var flags []string
		if p.value.Kind == yamlv3.MappingNode {
			for _, fp := range d.pairs(p.value, what) {
				if d.key(fp.key, what) != "flags" {
					d.unknownKey(fp.key, what, []string{"flags"})
					continue
				}
				flags = d.flags(fp.value, what+".flags")
			}
		} else {
			flags = d.flags(p.value, what)
		}
		c.Profiles[name] = flags
	}
}

func (d *decoder) variants(n *yamlv3.Node) []config.VariantDecl {
	var out []config.VariantDecl
	for _, p := range d.entries(n, "env.variants") {
		name := d.key(p.key, "env.variants")
		out = append(out, config.VariantDecl{
			Name:  name,
			Flags: d.flags(p.value, "env.variants."+name),
		})
	}
	return out
}

// LoadManifest decodes a manifest document.
func (l *Loader) LoadManifest(ctx context.Context, path string) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML manifest decoding started.", "path", path)

	root, err := readRoot(path)
	if err != nil {
		return nil, err
	}

	d := &decoder{path: path}
	man := &config.Manifest{}

	for _, p := range d.pairs(root, "manifest") {
		ns := config.Namespace{Name: d.key(p.key, "namespace")}
		for _, sp := range d.pairs(p.value, "namespace "+strconv.Quote(ns.Name)) {
			ns.Shaders = append(ns.Shaders, d.shader(d.key(sp.key, "shader"), sp.value))
		}
		man.Namespaces = append(man.Namespaces, ns)
	}

	if err := d.err(); err != nil {
		return nil, err
	}
	logger.Debug("YAML manifest decoding complete.", "namespaces", len(man.Namespaces))
	return man, nil
}

func (d *decoder) shader(name string, n *yamlv3.Node) config.ShaderDecl {
	sh := config.ShaderDecl{Name: name}
	what := "shader " + strconv.Quote(name)

	hasID := false
	for _, p := range d.pairs(n, what) {
		switch d.key(p.key, what) {
		case "id":
			hasID = true
			sh.ID = d.shaderID(p.value, what)
		case "stages":
			sh.Stages = d.stages(p.value, what)
		default:
			d.unknownKey(p.key, what, shaderKeys)
		}
	}
	if !hasID && n.Kind == yamlv3.MappingNode {
		d.problem(n, "%s missing 'id'", what)
	}
	return sh
}

// shaderID accepts an integer or a string in any Go integer base ("0x10").
func (d *decoder) shaderID(n *yamlv3.Node, what string) uint32 {
	if n.Kind != yamlv3.ScalarNode || (n.Tag != tagInt && n.Tag != tagStr) {
		d.problem(n, "%s id must be an integer, got %s", what, describe(n))
		return 0
	}
	v, err := strconv.ParseUint(strings.TrimSpace(n.Value), 0, 64)
	if err != nil || v > math.MaxUint32 {
		d.problem(n, "%s id must be u32, got %q", what, n.Value)
		return 0
	}
	return uint32(v)
}

func (d *decoder) stages(n *yamlv3.Node, what string) []config.StageDecl {
	if isNull(n) {
		return nil
	}
	if n.Kind != yamlv3.SequenceNode {
		d.problem(n, "%s 'stages' must be a list, got %s", what, describe(n))
		return nil
	}

	var out []config.StageDecl
	for _, item := range n.Content {
		item = resolve(item)
		if item.Kind != yamlv3.MappingNode || len(item.Content) != 2 {
			d.problem(item, "%s: invalid stage entry, expected a single-key map, got %s", what, describe(item))
			continue
		}
		st := config.StageDecl{Stage: d.key(resolve(item.Content[0]), "stage")}
		cfg := resolve(item.Content[1])
		stWhat := what + " stage " + strconv.Quote(st.Stage)

		switch {
		case isNull(cfg):
		case cfg.Kind == yamlv3.ScalarNode:
			st.Src, _ = d.str(cfg, stWhat+" src")
		case cfg.Kind == yamlv3.MappingNode:
			for _, p := range d.pairs(cfg, stWhat) {
				switch d.key(p.key, stWhat) {
				case "src":
					st.Src, _ = d.str(p.value, stWhat+" src")
				case "variants":
					st.Variants = d.stageVariants(p.value, stWhat)
				case "compiler_flags":
					st.CompilerFlags = d.flags(p.value, stWhat+" compiler_flags")
				default:
					d.unknownKey(p.key, stWhat, stageKeys)
				}
			}
		default:
			d.problem(cfg, "%s config must be a map or string, got %s", stWhat, describe(cfg))
		}
		out = append(out, st)
	}
	return out
}

func (d *decoder) stageVariants(n *yamlv3.Node, what string) []config.StageVariantDecl {
	var out []config.StageVariantDecl
	for _, p := range d.entries(n, what+" variants") {
		label := d.key(p.key, what+" variants")
		out = append(out, config.StageVariantDecl{
			Label:    label,
			Variants: d.strList(p.value, what+" variant "+strconv.Quote(label)),
		})
	}
	return out
}
