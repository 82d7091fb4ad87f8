package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, "env.hcl", `
includes   = ["inc", "lib"]
source_dir = "shaders"

compiler {
  path  = "glslangValidator"
  flags = "-O --target-env=vulkan1.2"

  profile "Debug" {
    flags = ["-g", "-O0 -DDEBUG"]
  }
  profile "release" {}
}

variant "LOW" {
  flags = "-DQUALITY=0"
}
variant "HIGH" {
  flags = ["-DQUALITY=2"]
}
variant "PLAIN" {}
`)

	env, err := NewLoader().LoadEnv(context.Background(), path)
	require.NoError(t, err)

	expected := &config.Env{
		Includes:  []string{"inc", "lib"},
		SourceDir: "shaders",
		Compiler: config.Compiler{
			Path:  "glslangValidator",
			Flags: []string{"-O", "--target-env=vulkan1.2"},
			Profiles: map[string][]string{
				"debug":   {"-g", "-O0", "-DDEBUG"},
				"release": nil,
			},
		},
		Variants: []config.VariantDecl{
			{Name: "LOW", Flags: []string{"-DQUALITY=0"}},
			{Name: "HIGH", Flags: []string{"-DQUALITY=2"}},
			{Name: "PLAIN"},
		},
	}
	if diff := cmp.Diff(expected, env, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("LoadEnv() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	path := writeFile(t, "env.hcl", "")
	env, err := NewLoader().LoadEnv(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCompiler, env.Compiler.Path)
	assert.Empty(t, env.Includes)
	assert.Empty(t, env.SourceDir)
	assert.Empty(t, env.Variants)
}

func TestLoadManifest(t *testing.T) {
	path := writeFile(t, "shaders.hcl", `
namespace "scene" {
  shader "mesh" {
    id = 16

    stage "vs" {
      src = "mesh.vert"
    }
    stage "fs" {
      src            = "mesh.frag"
      compiler_flags = ["-DLIT"]

      variant "low" { use = "LOW" }
      variant "both" { use = ["LOW", "HIGH"] }
    }
  }

  shader "sky" {
    id = "0x7"
    stage "fragment" {
      src = "sky.frag"
    }
  }
}

namespace "post" {
  shader "blur" {
    id = 3
    stage "cs" {
      src = "blur.comp"
    }
  }
}
`)

	man, err := NewLoader().LoadManifest(context.Background(), path)
	require.NoError(t, err)

	expected := &config.Manifest{
		Namespaces: []config.Namespace{
			{
				Name: "scene",
				Shaders: []config.ShaderDecl{
					{
						Name: "mesh", ID: 16,
						Stages: []config.StageDecl{
							{Stage: "vs", Src: "mesh.vert"},
							{
								Stage: "fs", Src: "mesh.frag",
								CompilerFlags: []string{"-DLIT"},
								Variants: []config.StageVariantDecl{
									{Label: "low", Variants: []string{"LOW"}},
									{Label: "both", Variants: []string{"LOW", "HIGH"}},
								},
							},
						},
					},
					{Name: "sky", ID: 7, Stages: []config.StageDecl{{Stage: "fragment", Src: "sky.frag"}}},
				},
			},
			{
				Name:    "post",
				Shaders: []config.ShaderDecl{{Name: "blur", ID: 3, Stages: []config.StageDecl{{Stage: "cs", Src: "blur.comp"}}}},
			},
		},
	}
	if diff := cmp.Diff(expected, man, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("LoadManifest() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	testCases := []struct {
		name        string
		content     string
		errContains string
	}{
		{
			name:        "syntax error",
			content:     `namespace "scene" {`,
			errContains: "failed to parse HCL file",
		},
		{
			name: "missing id",
			content: `namespace "scene" {
  shader "mesh" {
    stage "vs" { src = "a.vert" }
  }
}`,
			errContains: "failed to decode HCL file",
		},
		{
			name: "id out of range",
			content: `namespace "scene" {
  shader "mesh" {
    id = 4294967296
    stage "vs" { src = "a.vert" }
  }
}`,
			errContains: "id must be u32",
		},
		{
			name: "id wrong type",
			content: `namespace "scene" {
  shader "mesh" {
    id = true
    stage "vs" { src = "a.vert" }
  }
}`,
			errContains: "id must be an integer",
		},
		{
			name: "flags wrong type",
			content: `namespace "scene" {
  shader "mesh" {
    id = 1
    stage "vs" {
      src            = "a.vert"
      compiler_flags = { a = "b" }
    }
  }
}`,
			errContains: "must be a string or list of strings",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "shaders.hcl", tc.content)
			_, err := NewLoader().LoadManifest(context.Background(), path)
			require.Error(t, err)
			assert.ErrorIs(t, err, builderr.ErrConfig)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}
