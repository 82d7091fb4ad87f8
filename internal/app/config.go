package app

import (
	"errors"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	EnvPath        string
	ManifestInputs []string // files or directories
	BuildDir       string

	// Namespaces selects what to generate; empty means every namespace.
	Namespaces []string
	Profile    string
	// Compiler overrides the environment's compiler path when set.
	Compiler        string
	CompilerFlags   string
	AggregateTarget string

	ListNamespaces bool
	Verbose        bool

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ManifestInputs) == 0 {
		return nil, errors.New("at least one manifest input is required")
	}
	if !cfg.ListNamespaces {
		if cfg.EnvPath == "" {
			return nil, errors.New("EnvPath is a required configuration field and cannot be empty")
		}
		if cfg.BuildDir == "" {
			return nil, errors.New("BuildDir is a required configuration field and cannot be empty")
		}
	}
	if cfg.WorkerCount < 0 {
		return nil, errors.New("WorkerCount cannot be negative")
	}

	cfg.Profile = strings.TrimSpace(cfg.Profile)
	cfg.Compiler = strings.TrimSpace(cfg.Compiler)
	cfg.AggregateTarget = strings.TrimSpace(cfg.AggregateTarget)
	cfg.ManifestInputs = append([]string(nil), cfg.ManifestInputs...)
	cfg.Namespaces = ParseNamespaces(strings.Join(cfg.Namespaces, ","))

	return &cfg, nil
}

// ParseNamespaces splits a comma-separated namespace list, dropping blanks.
func ParseNamespaces(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
