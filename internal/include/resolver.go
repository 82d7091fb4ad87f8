// Package include discovers the files a shader source transitively
// includes.
//
// An include directive is any line of the form `#include "X"` or
// `#include <X>`. X is looked up relative to the including file's directory
// first, then in each search directory in order; the first existing file
// wins. Resolution is a depth-first walk that reports files in post-order, so
// the result can be used directly as a dependency list.
package include

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/ctxlog"
)

// directiveRegex matches one include directive per line.
var directiveRegex = regexp.MustCompile(`(?m)^\s*#\s*include\s*[<"]([^">]+)[">]`)

// Directives returns the include targets named in src, in order.
func Directives(src []byte) []string {
	matches := directiveRegex.FindAllSubmatch(src, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, string(m[1]))
	}
	return out
}

// Resolver resolves include dependencies against a fixed list of search
// directories. It holds no state between calls and is safe for concurrent
// use.
type Resolver struct {
	searchDirs []string
}

// NewResolver creates a resolver searching dirs in order.
func NewResolver(dirs []string) *Resolver {
	return &Resolver{searchDirs: append([]string(nil), dirs...)}
}

// walk holds the state of one top-level resolution.
type walk struct {
	r *Resolver
	// onPath holds the files on the current include chain, in order.
	onPath []string
	// done holds fully visited files.
	done      map[string]bool
	collected []string
}

// Resolve returns entry and every file it transitively includes as
// absolute paths with symlinks resolved. Each file is listed exactly once
// and after all of its own includes, so entry is always last. A missing or
// non-regular file is a MissingSourceError and a file that includes itself,
// directly or not, is an IncludeCycleError.
func (r *Resolver) Resolve(ctx context.Context, entry string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Include resolution started.", "entry", entry)

	abs, err := canonical(entry)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, builderr.Wrap(builderr.KindMissingSource, entry, err, "source file not found: %s", entry)
		}
		return nil, fmt.Errorf("failed to resolve %s: %w", entry, err)
	}
	if info, err := os.Stat(abs); err != nil || !info.Mode().IsRegular() {
		return nil, builderr.New(builderr.KindMissingSource, abs, "source file not found: %s", abs)
	}

	w := &walk{r: r, done: make(map[string]bool)}
	if err := w.visit(abs); err != nil {
		return nil, err
	}

	logger.Debug("Include resolution finished.", "entry", abs, "files", len(w.collected))
	return w.collected, nil
}

func (w *walk) visit(path string) error {
	for i, p := range w.onPath {
		if p == path {
			chain := append(append([]string(nil), w.onPath[i:]...), path)
			return builderr.New(builderr.KindIncludeCycle, path,
				"include cycle detected at %s (%s)", path, strings.Join(chain, " -> "))
		}
	}
	if w.done[path] {
		return nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return builderr.Wrap(builderr.KindMissingSource, path, err, "source file not found: %s", path)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	w.onPath = append(w.onPath, path)
	for _, name := range Directives(src) {
		target, err := w.r.find(name, path)
		if err != nil {
			return err
		}
		if err := w.visit(target); err != nil {
			return err
		}
	}
	w.onPath = w.onPath[:len(w.onPath)-1]

	w.done[path] = true
	w.collected = append(w.collected, path)
	return nil
}

// find locates an include target, trying the includer's directory before
// the search directories.
func (r *Resolver) find(name, includer string) (string, error) {
	candidates := make([]string, 0, len(r.searchDirs)+1)
	candidates = append(candidates, filepath.Join(filepath.Dir(includer), name))
	for _, dir := range r.searchDirs {
		candidates = append(candidates, filepath.Join(dir, name))
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err != nil || !info.Mode().IsRegular() {
			continue
		}
		if p, err := canonical(c); err == nil {
			return p, nil
		}
	}
	return "", builderr.New(builderr.KindMissingSource, name,
		"include %q not found for source %s", name, includer)
}

// canonical returns the absolute form of path with every symlink resolved,
// so one file has one spelling.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
