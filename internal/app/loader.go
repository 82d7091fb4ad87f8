package app

import (
	"github.com/vk/shadergen/internal/config"
	"github.com/vk/shadergen/internal/hcl"
	"github.com/vk/shadergen/internal/yaml"
)

// DefaultLoader returns a loader for YAML (.yaml, .yml) and HCL (.hcl)
// documents, resolving relative config paths against cwd.
func DefaultLoader(cwd string) *config.MultiLoader {
	l := config.NewMultiLoader(cwd)
	l.Register(yaml.NewLoader(), ".yaml", ".yml")
	l.Register(hcl.NewLoader(), ".hcl")
	return l
}
