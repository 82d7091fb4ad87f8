package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/shadergen/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("shadergen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
shadergen - Generates shader compiler command files, constant headers and depfiles.

Usage:
  shadergen -env ENV -b BUILD_DIR [options] [MANIFEST...]
  shadergen -list-namespaces [MANIFEST...]

Arguments:
  MANIFEST
    A manifest file (.yaml, .yml, .hcl) or a directory containing manifests.
    May also be given with -i, repeatedly.

Options:
`)
		flagSet.PrintDefaults()
	}

	var manifests stringList
	envFlag := flagSet.String("env", "", "Path to the environment config.")
	flagSet.Var(&manifests, "manifest", "Path to a manifest file or directory. Repeatable.")
	flagSet.Var(&manifests, "i", "Path to a manifest file or directory (shorthand).")
	buildDirFlag := flagSet.String("build-dir", "", "Build root directory.")
	bFlag := flagSet.String("b", "", "Build root directory (shorthand).")
	namespaceFlag := flagSet.String("namespace", "", "Comma-separated namespaces to generate. Empty means all.")
	profileFlag := flagSet.String("profile", "", "Compiler profile from the environment config.")
	compilerFlag := flagSet.String("compiler", "", "Compiler executable; overrides the environment config.")
	compilerFlagsFlag := flagSet.String("compiler-flags", "", `Extra flags for every command, e.g. "-O --target-env=vulkan1.2".`)
	aggregateFlag := flagSet.String("aggregate-target", "", "Target path for the global depfile written to <build-dir>/agrb_shaders_all.d.")
	listFlag := flagSet.Bool("list-namespaces", false, "Print the namespaces found in the manifests and exit.")
	verboseFlag := flagSet.Bool("verbose", false, "Print a summary of each generated namespace.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent include-resolution workers. 0 uses all CPUs.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	manifests = append(manifests, flagSet.Args()...)
	if len(manifests) == 0 {
		slog.Debug("No manifest provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	buildDir := *buildDirFlag
	if buildDir == "" {
		buildDir = *bFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		EnvPath:         *envFlag,
		ManifestInputs:  manifests,
		BuildDir:        buildDir,
		Namespaces:      app.ParseNamespaces(*namespaceFlag),
		Profile:         *profileFlag,
		Compiler:        *compilerFlag,
		CompilerFlags:   *compilerFlagsFlag,
		AggregateTarget: *aggregateFlag,
		ListNamespaces:  *listFlag,
		Verbose:         *verboseFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		WorkerCount:     *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
