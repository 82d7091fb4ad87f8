package emit

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/vk/shadergen/internal/model"
)

// EscapeDep formats a path for a Makefile-style depfile: forward slashes,
// spaces escaped.
func EscapeDep(path string) string {
	return strings.ReplaceAll(strings.ReplaceAll(path, `\`, "/"), " ", `\ `)
}

// DepSet is an accumulator of dependency paths. The zero value is ready to
// use.
type DepSet struct {
	paths map[string]struct{}
}

// Add records paths.
func (s *DepSet) Add(paths ...string) {
	if s.paths == nil {
		s.paths = make(map[string]struct{}, len(paths))
	}
	for _, p := range paths {
		s.paths[p] = struct{}{}
	}
}

// Merge adds every path of other.
func (s *DepSet) Merge(other *DepSet) {
	if other == nil {
		return
	}
	for p := range other.paths {
		s.Add(p)
	}
}

// Len returns the number of distinct paths.
func (s *DepSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.paths)
}

// Sorted returns the paths ordered component by component.
func (s *DepSet) Sorted() []string {
	out := make([]string, 0, s.Len())
	if s == nil {
		return out
	}
	for p := range s.paths {
		out = append(out, p)
	}
	slices.SortFunc(out, comparePaths)
	return out
}

// comparePaths orders paths by their slash-separated components, so
// "/a/b" sorts before "/a-b".
func comparePaths(a, b string) int {
	return slices.Compare(
		strings.Split(filepath.ToSlash(a), "/"),
		strings.Split(filepath.ToSlash(b), "/"),
	)
}

func rule(targets []string, deps []string) string {
	var b strings.Builder
	for i, t := range targets {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(EscapeDep(t))
	}
	b.WriteByte(':')
	for _, d := range deps {
		b.WriteByte(' ')
		b.WriteString(EscapeDep(d))
	}
	return b.String()
}

// Depfile renders the namespace depfile. Each distinct output gets the rule
//
//	<output> <command file>: <its includes and config files>
//
// and a final rule makes the depfile and header depend on every config file
// and every include seen in the namespace. The returned set holds the
// dependencies of that final rule.
func Depfile(jobs []model.Job, configDeps []string, depfilePath, headerPath string) ([]byte, *DepSet) {
	all := &DepSet{}
	all.Add(configDeps...)

	var lines []string
	written := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		all.Add(job.IncludeDependencies...)
		if written[job.OutputPath] {
			continue
		}
		written[job.OutputPath] = true

		deps := &DepSet{}
		deps.Add(configDeps...)
		deps.Add(job.IncludeDependencies...)
		lines = append(lines, rule([]string{job.OutputPath, job.CommandFilePath}, deps.Sorted()))
	}
	lines = append(lines, rule([]string{depfilePath, headerPath}, all.Sorted()))

	return []byte(strings.Join(lines, "\n") + "\n"), all
}

// AggregateDepfile renders the single rule mapping target to every
// dependency in deps.
func AggregateDepfile(target string, deps *DepSet) []byte {
	return []byte(rule([]string{target}, deps.Sorted()) + "\n")
}
