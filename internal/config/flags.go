package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/vk/shadergen/internal/builderr"
)

// SplitFlags tokenizes a compiler flag string the way a POSIX shell would,
// e.g. `-O -DNAME="a b"` becomes ["-O", "-DNAME=a b"].
func SplitFlags(s string) ([]string, error) {
	args, err := shellwords.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("cannot tokenize flags %q: %w", s, err)
	}
	return args, nil
}

// SplitFlagList tokenizes every item of a flag list and concatenates the
// results, so ["-O", "-DA -DB"] becomes ["-O", "-DA", "-DB"].
func SplitFlagList(items []string) ([]string, error) {
	var out []string
	for _, item := range items {
		args, err := SplitFlags(item)
		if err != nil {
			return nil, err
		}
		out = append(out, args...)
	}
	return out, nil
}

// Dedupe returns items without repeats, keeping the first occurrence of
// each.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// GlobalFlags returns the flags every job starts with: the compiler's own
// flags, then the named profile's, then extra, without repeats. Profile
// names match case-insensitively; an empty name selects no profile.
func (e *Env) GlobalFlags(profile string, extra []string) ([]string, error) {
	flags := append([]string(nil), e.Compiler.Flags...)
	if profile != "" {
		name := strings.ToLower(profile)
		pf, ok := e.Compiler.Profiles[name]
		if !ok {
			return nil, builderr.Configf("unknown compiler profile %q%s", profile, builderr.Hint(name, e.profileNames()))
		}
		flags = append(flags, pf...)
	}
	flags = append(flags, extra...)
	return Dedupe(flags), nil
}

func (e *Env) profileNames() []string {
	names := make([]string, 0, len(e.Compiler.Profiles))
	for name := range e.Compiler.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
