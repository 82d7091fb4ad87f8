package include

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/testutil"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	return testutil.WriteFiles(t, "", files)
}

func TestDirectives(t *testing.T) {
	src := []byte(`#version 450
#include "common.glsl"
  #  include <lib/light.glsl>
// #include "commented.glsl" is not at line start
#include"tight.glsl"
void main() {}
`)
	assert.Equal(t, []string{"common.glsl", "lib/light.glsl", "tight.glsl"}, Directives(src))
	assert.Empty(t, Directives([]byte("void main() {}\n")))
}

func TestResolveNoIncludes(t *testing.T) {
	root := writeTree(t, map[string]string{"a.vert": "void main() {}\n"})

	deps, err := NewResolver(nil).Resolve(context.Background(), filepath.Join(root, "a.vert"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.vert")}, deps)
}

func TestResolvePostOrderAndDiamond(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.frag": "#include \"a.glsl\"\n#include \"c.glsl\"\n",
		"a.glsl":    "#include \"b.glsl\"\n",
		"c.glsl":    "#include \"b.glsl\"\n",
		"b.glsl":    "float b;\n",
	})

	deps, err := NewResolver(nil).Resolve(context.Background(), filepath.Join(root, "main.frag"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "b.glsl"),
		filepath.Join(root, "a.glsl"),
		filepath.Join(root, "c.glsl"),
		filepath.Join(root, "main.frag"),
	}, deps)
}

func TestResolveCycle(t *testing.T) {
	testCases := []struct {
		name  string
		files map[string]string
		entry string
		at    string
	}{
		{
			name:  "two files",
			files: map[string]string{"a.glsl": "#include \"b.glsl\"\n", "b.glsl": "#include \"a.glsl\"\n"},
			entry: "a.glsl",
			at:    "a.glsl",
		},
		{
			name:  "self include",
			files: map[string]string{"main.vert": "#include \"x.glsl\"\n", "x.glsl": "#include \"x.glsl\"\n"},
			entry: "main.vert",
			at:    "x.glsl",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root := writeTree(t, tc.files)
			_, err := NewResolver(nil).Resolve(context.Background(), filepath.Join(root, tc.entry))
			require.Error(t, err)
			assert.ErrorIs(t, err, builderr.ErrIncludeCycle)

			var berr *builderr.Error
			require.ErrorAs(t, err, &berr)
			assert.Equal(t, filepath.Join(root, tc.at), berr.Subject)
		})
	}
}

func TestResolveSearchOrder(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/main.vert":              "#include \"common.glsl\"\n#include <only_in_second.glsl>\n",
		"src/common.glsl":            "// local\n",
		"first/common.glsl":          "// first\n",
		"second/common.glsl":         "// second\n",
		"second/only_in_second.glsl": "// second\n",
	})
	r := NewResolver([]string{filepath.Join(root, "first"), filepath.Join(root, "second")})

	deps, err := r.Resolve(context.Background(), filepath.Join(root, "src", "main.vert"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "src", "common.glsl"),
		filepath.Join(root, "second", "only_in_second.glsl"),
		filepath.Join(root, "src", "main.vert"),
	}, deps)

	// Without a local copy the first search directory wins.
	require.NoError(t, os.Remove(filepath.Join(root, "src", "common.glsl")))
	deps, err = r.Resolve(context.Background(), filepath.Join(root, "src", "main.vert"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "first", "common.glsl"), deps[0])
}

func TestResolveMissing(t *testing.T) {
	root := writeTree(t, map[string]string{"main.vert": "#include \"gone.glsl\"\n"})
	r := NewResolver(nil)

	_, err := r.Resolve(context.Background(), filepath.Join(root, "main.vert"))
	require.Error(t, err)
	assert.ErrorIs(t, err, builderr.ErrMissingSource)
	assert.Contains(t, err.Error(), `include "gone.glsl" not found`)

	_, err = r.Resolve(context.Background(), filepath.Join(root, "nope.vert"))
	require.Error(t, err)
	assert.ErrorIs(t, err, builderr.ErrMissingSource)
	assert.Contains(t, err.Error(), "source file not found")
}

func TestResolveIsRepeatable(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.vert": "#include \"b.glsl\"\n",
		"b.glsl": "float b;\n",
	})
	r := NewResolver(nil)

	first, err := r.Resolve(context.Background(), filepath.Join(root, "a.vert"))
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), filepath.Join(root, "a.vert"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveThroughSymlinks(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		links   map[string]string
		want    []string
		wantErr error
	}{
		{
			name:    "cycle through a directory link",
			files:   map[string]string{"a.vert": "#include \"loop/a.vert\"\n"},
			links:   map[string]string{"loop": "."},
			wantErr: builderr.ErrIncludeCycle,
		},
		{
			name: "one file under two spellings is listed once",
			files: map[string]string{
				"a.vert":      "#include \"common.glsl\"\n#include \"alias/common.glsl\"\n",
				"common.glsl": "float c;\n",
			},
			links: map[string]string{"alias": "."},
			want:  []string{"common.glsl", "a.vert"},
		},
		{
			name:  "linked entry resolves to its target",
			files: map[string]string{"real.vert": "void main() {}\n"},
			links: map[string]string{"a.vert": "real.vert"},
			want:  []string{"real.vert"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root := writeTree(t, tc.files)
			for link, target := range tc.links {
				if err := os.Symlink(target, filepath.Join(root, link)); err != nil {
					t.Skipf("symlinks unavailable: %v", err)
				}
			}

			deps, err := NewResolver(nil).Resolve(context.Background(), filepath.Join(root, "a.vert"))
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)

			want := make([]string, len(tc.want))
			for i, name := range tc.want {
				want[i] = filepath.Join(root, name)
			}
			assert.Equal(t, want, deps)
		})
	}
}

func TestResolveEntryIsDirectory(t *testing.T) {
	root := writeTree(t, map[string]string{"shaders/a.vert": "void main() {}\n"})

	_, err := NewResolver(nil).Resolve(context.Background(), filepath.Join(root, "shaders"))
	require.Error(t, err)
	assert.ErrorIs(t, err, builderr.ErrMissingSource)
	assert.Contains(t, err.Error(), "source file not found")
}
