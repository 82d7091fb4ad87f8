package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vk/shadergen/internal/app"
	"github.com/vk/shadergen/internal/fsutil"
	"github.com/vk/shadergen/internal/testutil"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// Root is the temporary directory the fixture files were written to.
	Root      string
	Output    string
	LogOutput string
	Err       error
}

// Path joins a slash-separated path onto the fixture root.
func (r *HarnessResult) Path(rel string) string {
	return filepath.Join(r.Root, filepath.FromSlash(rel))
}

// RunApp writes files into a fresh temporary directory and runs the app with
// cfg. Relative paths in cfg are taken relative to that directory, and the
// directory is also the working directory config paths resolve against.
func RunApp(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunAppIn(t, testutil.WriteFiles(t, "", files), cfg)
}

// RunAppIn runs the app against an existing fixture root.
func RunAppIn(t *testing.T, root string, cfg app.Config) *HarnessResult {
	t.Helper()

	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, filepath.FromSlash(p))
	}
	cfg.EnvPath = abs(cfg.EnvPath)
	cfg.BuildDir = abs(cfg.BuildDir)
	cfg.AggregateTarget = abs(cfg.AggregateTarget)
	inputs := make([]string, len(cfg.ManifestInputs))
	for i, in := range cfg.ManifestInputs {
		inputs[i] = abs(in)
	}
	cfg.ManifestInputs = inputs
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	result := &HarnessResult{Root: root}
	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		result.Err = err
		return result
	}

	out := &testutil.SafeBuffer{}
	logs := &testutil.SafeBuffer{}
	a := app.NewApp(out, logs, appConfig, app.DefaultLoader(root), &fsutil.DirSink{})
	result.Err = a.Run(context.Background())
	result.Output = out.String()
	result.LogOutput = logs.String()

	if os.Getenv("SHADERGEN_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
	}
	return result
}
