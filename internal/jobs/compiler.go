// Package jobs turns validated shader declarations into the ordered list of
// compiler invocations for one namespace.
package jobs

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/config"
	"github.com/vk/shadergen/internal/ctxlog"
	"github.com/vk/shadergen/internal/include"
	"github.com/vk/shadergen/internal/model"
	"github.com/vk/shadergen/internal/packid"
	"github.com/vk/shadergen/internal/variant"
	"golang.org/x/sync/errgroup"
)

// CommandFileExt is appended to an output path to name its command file.
const CommandFileExt = ".cmd"

// Options configures a Compiler.
type Options struct {
	// GlobalFlags precede every stage's own flags.
	GlobalFlags []string
	// SourceDir, when set, is the base for relative stage sources.
	SourceDir string
	// IncludeDirs are searched after the including file's directory.
	IncludeDirs []string
	// BuildDir receives outputs and command files.
	BuildDir string
	// Workers bounds parallel include resolution. Zero means GOMAXPROCS.
	Workers int
}

// Compiler builds jobs against one variant table.
type Compiler struct {
	opts     Options
	variants *variant.Table
	resolver *include.Resolver
}

// NewCompiler creates a compiler.
func NewCompiler(variants *variant.Table, opts Options) *Compiler {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Compiler{
		opts:     opts,
		variants: variants,
		resolver: include.NewResolver(opts.IncludeDirs),
	}
}

// signature is what an output name must map to uniquely.
type signature struct {
	source string
	flags  string
}

// Compile expands every shader, stage and stage variant into a Job, in
// declaration order. Two triples that map to the same output with a
// different source or flag list fail with an OutputCollisionError; identical
// requests are both kept. Jobs are checked one by one in declaration order
// (variants, then includes, then the output collision) and the first
// failure is returned.
func (c *Compiler) Compile(ctx context.Context, shaders []model.ShaderDesc) ([]model.Job, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Job compilation started.", "shaders", len(shaders))

	// expandErr belongs to the job right after the last one expanded.
	jobs, expandErr := c.expand(shaders)
	includeErrs := c.resolveIncludes(ctx, jobs)

	seen := make(map[string]signature, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		if includeErrs[i] != nil {
			return nil, includeErrs[i]
		}

		sig := signature{source: job.SourcePath, flags: strings.Join(job.CompilerFlags, "\x00")}
		if prev, ok := seen[job.OutputName]; ok && prev != sig {
			return nil, builderr.New(builderr.KindOutputCollision, job.OutputName,
				"output %s of shader %q stage %s%s collides with an earlier job using a different source or flags",
				job.OutputName, job.Shader, job.Stage, labelSuffix(job.Variant))
		}
		seen[job.OutputName] = sig
	}
	if expandErr != nil {
		return nil, expandErr
	}

	logger.Debug("Job compilation finished.", "jobs", len(jobs))
	return jobs, nil
}

// expand builds jobs in declaration order without touching the filesystem.
// It stops at the first triple that cannot be built and returns the jobs
// before it together with that error.
func (c *Compiler) expand(shaders []model.ShaderDesc) ([]model.Job, error) {
	var jobs []model.Job
	for i := range shaders {
		shader := &shaders[i]
		for j := range shader.Stages {
			stage := &shader.Stages[j]
			for _, combo := range stage.Combinations() {
				job, err := c.job(shader, stage, combo)
				if err != nil {
					return jobs, err
				}
				jobs = append(jobs, job)
			}
		}
	}
	return jobs, nil
}

func (c *Compiler) job(shader *model.ShaderDesc, stage *model.StageDesc, combo model.StageVariant) (model.Job, error) {
	mask, variantFlags, err := c.variants.Resolve(combo.VariantNames)
	if err != nil {
		return model.Job{}, fmt.Errorf("shader %q stage %s%s: %w", shader.Name, stage.Kind, labelSuffix(combo), err)
	}

	id, err := packid.Pack(shader.ShaderID, stage.Kind, mask)
	if err != nil {
		return model.Job{}, fmt.Errorf("shader %q stage %s%s: %w", shader.Name, stage.Kind, labelSuffix(combo), err)
	}

	flags := make([]string, 0, len(c.opts.GlobalFlags)+len(stage.ExtraFlags)+len(variantFlags))
	flags = append(flags, c.opts.GlobalFlags...)
	flags = append(flags, stage.ExtraFlags...)
	flags = append(flags, variantFlags...)

	name := id.OutputName()
	output := filepath.Join(c.opts.BuildDir, name)
	return model.Job{
		OutputName:        name,
		OutputPath:        output,
		CommandFilePath:   output + CommandFileExt,
		SourcePath:        c.sourcePath(shader, stage.SourcePath),
		IncludeSearchDirs: slices.Clone(c.opts.IncludeDirs),
		CompilerFlags:     config.Dedupe(flags),
		PackedID:          uint64(id),
		Shader:            shader.Name,
		Stage:             stage.Kind,
		Variant:           combo,
	}, nil
}

// sourcePath resolves a stage source: absolute paths pass through, relative
// ones join the source directory or, failing that, the shader's own
// directory.
func (c *Compiler) sourcePath(shader *model.ShaderDesc, src string) string {
	if filepath.IsAbs(src) {
		return filepath.Clean(src)
	}
	base := c.opts.SourceDir
	if base == "" {
		base = shader.BaseDir()
	}
	p := filepath.Join(base, src)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// resolveIncludes fills IncludeDependencies, resolving each distinct source
// once on a bounded worker pool. The returned slice holds, per job, the
// error its source failed with.
func (c *Compiler) resolveIncludes(ctx context.Context, jobs []model.Job) []error {
	var sources []string
	index := make(map[string]int)
	for _, job := range jobs {
		if _, ok := index[job.SourcePath]; !ok {
			index[job.SourcePath] = len(sources)
			sources = append(sources, job.SourcePath)
		}
	}

	deps := make([][]string, len(sources))
	errs := make([]error, len(sources))

	var g errgroup.Group
	g.SetLimit(c.opts.Workers)
	for i, src := range sources {
		g.Go(func() error {
			deps[i], errs[i] = c.resolver.Resolve(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	jobErrs := make([]error, len(jobs))
	for i := range jobs {
		k := index[jobs[i].SourcePath]
		jobErrs[i] = errs[k]
		jobs[i].IncludeDependencies = slices.Clone(deps[k])
	}
	return jobErrs
}

func labelSuffix(combo model.StageVariant) string {
	if combo.Label == "" {
		return ""
	}
	return fmt.Sprintf(" variant %q", combo.Label)
}
