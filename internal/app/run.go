package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/config"
	"github.com/vk/shadergen/internal/ctxlog"
	"github.com/vk/shadergen/internal/emit"
	"github.com/vk/shadergen/internal/fsutil"
	"github.com/vk/shadergen/internal/jobs"
	"github.com/vk/shadergen/internal/variant"
)

// Run executes the generation described by the app's configuration. Any
// error aborts the whole run.
func (a *App) Run(ctx context.Context) error {
	ctx = a.withLogger(ctx)
	a.logger.Debug("App.Run method started.")

	manifests, err := a.loadManifests(ctx)
	if err != nil {
		return err
	}

	if a.config.ListNamespaces {
		for _, ns := range config.Namespaces(manifests) {
			fmt.Fprintln(a.outW, ns)
		}
		return nil
	}

	env, err := a.loader.LoadEnv(ctx, a.config.EnvPath)
	if err != nil {
		return err
	}

	namespaces := a.config.Namespaces
	if len(namespaces) == 0 {
		namespaces = config.Namespaces(manifests)
	}
	if len(namespaces) == 0 {
		return builderr.Configf("no namespaces selected for generation")
	}

	p, err := a.newPlan(env, manifests)
	if err != nil {
		return err
	}

	aggregate := &emit.DepSet{}
	aggregate.Add(p.configDeps...)
	for _, ns := range namespaces {
		deps, err := a.generateNamespace(ctx, p, manifests, ns)
		if err != nil {
			return err
		}
		aggregate.Merge(deps)
	}

	if a.config.AggregateTarget != "" {
		target, err := filepath.Abs(a.config.AggregateTarget)
		if err != nil {
			return fmt.Errorf("failed to resolve aggregate target: %w", err)
		}
		path := filepath.Join(p.buildRoot, emit.AggregateDepfileName)
		if err := a.sink.WriteFile(path, emit.AggregateDepfile(target, aggregate)); err != nil {
			return err
		}
		a.logger.Debug("Aggregate depfile written.", "path", path, "deps", aggregate.Len())
	}

	attrs := []any{"namespaces", len(namespaces)}
	if st, ok := a.sink.(interface{ Stats() (int, int) }); ok {
		written, unchanged := st.Stats()
		attrs = append(attrs, "files_written", written, "files_unchanged", unchanged)
	}
	a.logger.Info("Generation finished.", attrs...)
	return nil
}

func (a *App) loadManifests(ctx context.Context) ([]*config.Manifest, error) {
	paths, err := fsutil.ExpandInputs(a.config.ManifestInputs, a.loader.Extensions()...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Manifest inputs expanded.", "files", len(paths))
	return a.loader.LoadManifests(ctx, paths)
}

// plan is everything a namespace needs that does not depend on the
// namespace.
type plan struct {
	compiler   string
	variants   *variant.Table
	options    jobs.Options
	buildRoot  string
	configDeps []string
}

func (a *App) newPlan(env *config.Env, manifests []*config.Manifest) (*plan, error) {
	variants, err := variant.New(env.Variants)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", env.Path, err)
	}

	extra, err := config.SplitFlags(a.config.CompilerFlags)
	if err != nil {
		return nil, builderr.Configf("invalid compiler flags %q: %v", a.config.CompilerFlags, err)
	}
	globalFlags, err := env.GlobalFlags(a.config.Profile, extra)
	if err != nil {
		return nil, err
	}

	buildRoot, err := filepath.Abs(a.config.BuildDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve build directory: %w", err)
	}

	compiler := env.Compiler.Path
	if a.config.Compiler != "" {
		compiler = a.config.Compiler
	}

	configDeps := []string{env.Path}
	for _, m := range manifests {
		configDeps = append(configDeps, m.Path)
	}

	a.logger.Debug("Generation plan ready.",
		"compiler", compiler, "variants", variants.Len(), "global_flags", globalFlags, "build_root", buildRoot)

	return &plan{
		compiler:  compiler,
		variants:  variants,
		buildRoot: buildRoot,
		options: jobs.Options{
			GlobalFlags: globalFlags,
			SourceDir:   env.SourceDir,
			IncludeDirs: env.Includes,
			Workers:     a.config.WorkerCount,
		},
		configDeps: configDeps,
	}, nil
}

// generateNamespace writes the command files, header and depfile of one
// namespace and returns the dependencies it discovered.
func (a *App) generateNamespace(ctx context.Context, p *plan, manifests []*config.Manifest, ns string) (*emit.DepSet, error) {
	logger := ctxlog.FromContext(ctx).With("namespace", ns)
	ctx = ctxlog.WithLogger(ctx, logger)

	shaders, err := config.Shaders(manifests, ns)
	if err != nil {
		return nil, err
	}

	nsDir := filepath.Join(p.buildRoot, ns)
	opts := p.options
	opts.BuildDir = nsDir

	jobList, err := jobs.NewCompiler(p.variants, opts).Compile(ctx, shaders)
	if err != nil {
		return nil, err
	}

	headerPath := filepath.Join(nsDir, emit.HeaderName)
	depfilePath := filepath.Join(nsDir, emit.DepfileName)

	header, err := emit.Header(ns, jobList)
	if err != nil {
		return nil, err
	}
	depfile, deps := emit.Depfile(jobList, p.configDeps, depfilePath, headerPath)

	if err := emit.WriteCommands(ctx, a.sink, p.compiler, jobList); err != nil {
		return nil, err
	}
	if err := a.sink.WriteFile(headerPath, header); err != nil {
		return nil, err
	}
	if err := a.sink.WriteFile(depfilePath, depfile); err != nil {
		return nil, err
	}

	logger.Info("Namespace generated.", "jobs", len(jobList), "shaders", len(shaders))
	if a.config.Verbose {
		fmt.Fprintf(a.outW, "namespace: %s\n", ns)
		fmt.Fprintf(a.outW, "generated jobs: %d\n", len(jobList))
		fmt.Fprintf(a.outW, "header: %s\n", headerPath)
		fmt.Fprintf(a.outW, "depfile: %s\n", depfilePath)
		fmt.Fprintf(a.outW, "compiler: %s\n", p.compiler)
	}
	return deps, nil
}
