package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/model"
)

func TestSplitFlags(t *testing.T) {
	testCases := []struct {
		name      string
		input     []string
		expected  []string
		expectErr bool
	}{
		{name: "single string", input: []string{"-O --target-env=vulkan1.2"}, expected: []string{"-O", "--target-env=vulkan1.2"}},
		{name: "list items are split", input: []string{"-O", "-DA -DB"}, expected: []string{"-O", "-DA", "-DB"}},
		{name: "quoted value kept together", input: []string{`-DNAME="a b"`}, expected: []string{"-DNAME=a b"}},
		{name: "empty", input: nil, expected: nil},
		{name: "error - unterminated quote", input: []string{`-D"oops`}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitFlagList(tc.input)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("SplitFlagList() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"-O", "-g", "-DX"}, Dedupe([]string{"-O", "-g", "-O", "-DX", "-g"}))
	assert.Empty(t, Dedupe(nil))
}

func TestEnvGlobalFlags(t *testing.T) {
	env := &Env{Compiler: Compiler{
		Path:  "glslc",
		Flags: []string{"-O", "--target-env=vulkan1.2"},
		Profiles: map[string][]string{
			"debug":   {"-g", "-O"},
			"release": {"-O", "-DNDEBUG"},
		},
	}}

	testCases := []struct {
		name     string
		profile  string
		extra    []string
		expected []string
		errMsg   string
	}{
		{name: "no profile", expected: []string{"-O", "--target-env=vulkan1.2"}},
		{name: "profile matched case-insensitively", profile: "DEBUG", extra: []string{"-g", "-Werror"}, expected: []string{"-O", "--target-env=vulkan1.2", "-g", "-Werror"}},
		{name: "error - unknown profile", profile: "relase", errMsg: `unknown compiler profile "relase" (did you mean "release"?)`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := env.GlobalFlags(tc.profile, tc.extra)
			if tc.errMsg != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, builderr.ErrConfig)
				assert.Contains(t, err.Error(), tc.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestEnvValidate(t *testing.T) {
	testCases := []struct {
		name        string
		env         Env
		errContains []string
	}{
		{
			name: "valid",
			env: Env{
				Compiler: Compiler{Path: "glslc"},
				Variants: []VariantDecl{{Name: "LOW"}, {Name: "HIGH", Flags: []string{"-DHIGH"}}},
			},
		},
		{
			name: "every problem is reported",
			env: Env{
				Variants: []VariantDecl{{Name: "LOW"}, {Name: ""}, {Name: "LOW"}},
			},
			errContains: []string{"compiler.path", "variant name must not be empty", `duplicate variant "LOW"`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.env.Validate()
			if len(tc.errContains) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, builderr.ErrConfig)
			for _, s := range tc.errContains {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestEnvValidateTooManyVariants(t *testing.T) {
	env := Env{Compiler: Compiler{Path: "glslc"}}
	for i := 0; i <= MaxVariants; i++ {
		env.Variants = append(env.Variants, VariantDecl{Name: string(rune('A'+i%26)) + string(rune('a'+i/26))})
	}
	err := env.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 64")
}

func TestManifestValidate(t *testing.T) {
	man := Manifest{
		Path: "/m.yaml",
		Namespaces: []Namespace{{
			Name: "scene",
			Shaders: []ShaderDecl{
				{Name: "mesh", ID: 1, Stages: []StageDecl{{Stage: "vx", Src: "a.vert"}}},
				{Name: "empty", ID: 2},
				{Name: "nosrc", ID: 3, Stages: []StageDecl{{Stage: "fs", Variants: []StageVariantDecl{{Label: "", Variants: []string{""}}}}}},
			},
		}},
	}

	err := man.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, builderr.ErrConfig)
	msg := err.Error()
	assert.Contains(t, msg, `unsupported stage "vx"`)
	assert.Contains(t, msg, `did you mean "vs"?`)
	assert.Contains(t, msg, `shader "scene.empty" has no stages`)
	assert.Contains(t, msg, "missing non-empty 'src'")
	assert.Contains(t, msg, "without a label")
	assert.Contains(t, msg, "empty variant name")
}

func TestEnvResolvePaths(t *testing.T) {
	cwd := t.TempDir()
	envDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(cwd, "inc"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(envDir, "shaders"), 0o755))

	env := Env{
		Path:      filepath.Join(envDir, "env.yaml"),
		Includes:  []string{"inc", "/abs/inc/../lib", "missing"},
		SourceDir: "shaders",
	}
	env.ResolvePaths(cwd)

	assert.Equal(t, []string{filepath.Join(cwd, "inc"), "/abs/lib", filepath.Join(cwd, "missing")}, env.Includes)
	assert.Equal(t, filepath.Join(envDir, "shaders"), env.SourceDir)
}

func TestShaders(t *testing.T) {
	manifests := []*Manifest{
		{
			Path: "/proj/a/shaders.yaml",
			Namespaces: []Namespace{{Name: "scene", Shaders: []ShaderDecl{{
				Name: "mesh", ID: 1,
				Stages: []StageDecl{{Stage: "vertex", Src: "mesh.vert", CompilerFlags: []string{"-DMESH"},
					Variants: []StageVariantDecl{{Label: "low", Variants: []string{"LOW"}}}}},
			}}}},
		},
		{
			Path: "/proj/b/more.yaml",
			Namespaces: []Namespace{
				{Name: "post", Shaders: []ShaderDecl{{Name: "blur", ID: 7, Stages: []StageDecl{{Stage: "cs", Src: "blur.comp"}}}}},
				{Name: "scene", Shaders: []ShaderDecl{{Name: "sky", ID: 2, Stages: []StageDecl{{Stage: "fs", Src: "sky.frag"}}}}},
			},
		},
	}

	assert.Equal(t, []string{"scene", "post"}, Namespaces(manifests))

	shaders, err := Shaders(manifests, "scene")
	require.NoError(t, err)
	require.Len(t, shaders, 2)

	assert.Equal(t, "mesh", shaders[0].Name)
	assert.Equal(t, "/proj/a", shaders[0].BaseDir())
	assert.Equal(t, model.StageVertex, shaders[0].Stages[0].Kind)
	assert.Equal(t, []string{"-DMESH"}, shaders[0].Stages[0].ExtraFlags)
	assert.Equal(t, []model.StageVariant{{Label: "low", VariantNames: []string{"LOW"}}}, shaders[0].Stages[0].Variants)
	assert.Equal(t, "sky", shaders[1].Name)
	assert.Equal(t, "/proj/b", shaders[1].BaseDir())

	_, err = Shaders(manifests, "scen")
	require.Error(t, err)
	assert.ErrorIs(t, err, builderr.ErrUnknownNamespace)
	assert.Contains(t, err.Error(), `did you mean "scene"?`)
}

type stubLoader struct {
	env *Env
	man *Manifest
}

func (s *stubLoader) LoadEnv(ctx context.Context, path string) (*Env, error) {
	e := *s.env
	e.Includes = append([]string(nil), s.env.Includes...)
	return &e, nil
}

func (s *stubLoader) LoadManifest(ctx context.Context, path string) (*Manifest, error) {
	m := *s.man
	return &m, nil
}

func TestMultiLoader(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"env.yaml", "shaders.yml", "shaders.toml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	stub := &stubLoader{
		env: &Env{Compiler: Compiler{Path: "glslc"}, Includes: []string{"inc"}},
		man: &Manifest{Namespaces: []Namespace{{Name: "scene"}}},
	}
	ml := NewMultiLoader(dir)
	ml.Register(stub, ".yaml", ".YML")
	assert.Equal(t, []string{".yaml", ".yml"}, ml.Extensions())

	ctx := context.Background()

	env, err := ml.LoadEnv(ctx, "env.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "env.yaml"), env.Path)
	assert.Equal(t, []string{filepath.Join(dir, "inc")}, env.Includes)

	mans, err := ml.LoadManifests(ctx, []string{filepath.Join(dir, "shaders.yml")})
	require.NoError(t, err)
	require.Len(t, mans, 1)
	assert.Equal(t, filepath.Join(dir, "shaders.yml"), mans[0].Path)

	_, err = ml.LoadManifest(ctx, "shaders.toml")
	require.Error(t, err)
	assert.ErrorIs(t, err, builderr.ErrConfig)
	assert.Contains(t, err.Error(), "unsupported config format")

	_, err = ml.LoadEnv(ctx, "nope.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, builderr.ErrConfig)

	stub.env = &Env{}
	_, err = ml.LoadEnv(ctx, "env.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiler.path")
}
