package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/ctxlog"
)

// MultiLoader dispatches to a format-specific Loader by file extension and
// validates whatever it decodes. It is itself a Loader.
type MultiLoader struct {
	cwd     string
	exts    []string
	loaders map[string]Loader
}

// NewMultiLoader creates a loader that resolves relative config paths
// against cwd.
func NewMultiLoader(cwd string) *MultiLoader {
	return &MultiLoader{
		cwd:     cwd,
		loaders: make(map[string]Loader),
	}
}

// Register associates a loader with one or more extensions such as ".yaml".
func (m *MultiLoader) Register(l Loader, exts ...string) {
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if _, ok := m.loaders[ext]; !ok {
			m.exts = append(m.exts, ext)
		}
		m.loaders[ext] = l
	}
}

// Extensions returns the registered extensions in registration order.
func (m *MultiLoader) Extensions() []string {
	return append([]string(nil), m.exts...)
}

func (m *MultiLoader) loaderFor(path string) (string, Loader, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(m.cwd, path)
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return "", nil, builderr.Wrap(builderr.KindConfig, abs, err, "cannot read config file %s", abs)
	}
	if info.IsDir() {
		return "", nil, builderr.New(builderr.KindConfig, abs, "config path %s is a directory", abs)
	}

	ext := strings.ToLower(filepath.Ext(abs))
	l, ok := m.loaders[ext]
	if !ok {
		return "", nil, builderr.New(builderr.KindConfig, abs, "unsupported config format %q for %s (supported: %s)", ext, abs, strings.Join(m.exts, ", "))
	}
	return abs, l, nil
}

// LoadEnv decodes, resolves and validates the environment at path.
func (m *MultiLoader) LoadEnv(ctx context.Context, path string) (*Env, error) {
	logger := ctxlog.FromContext(ctx)

	abs, l, err := m.loaderFor(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loading environment.", "path", abs)

	env, err := l.LoadEnv(ctx, abs)
	if err != nil {
		return nil, err
	}
	env.Path = abs
	env.ResolvePaths(m.cwd)
	if err := env.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Environment loaded.", "includes", len(env.Includes), "variants", len(env.Variants), "profiles", len(env.Compiler.Profiles))
	return env, nil
}

// LoadManifest decodes and validates the manifest at path.
func (m *MultiLoader) LoadManifest(ctx context.Context, path string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)

	abs, l, err := m.loaderFor(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loading manifest.", "path", abs)

	man, err := l.LoadManifest(ctx, abs)
	if err != nil {
		return nil, err
	}
	man.Path = abs
	if err := man.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Manifest loaded.", "path", abs, "namespaces", len(man.Namespaces))
	return man, nil
}

// LoadManifests loads every path in order.
func (m *MultiLoader) LoadManifests(ctx context.Context, paths []string) ([]*Manifest, error) {
	manifests := make([]*Manifest, 0, len(paths))
	for _, p := range paths {
		man, err := m.LoadManifest(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
		manifests = append(manifests, man)
	}
	return manifests, nil
}
