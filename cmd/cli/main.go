package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/shadergen/internal/app"
	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/cli"
	"github.com/vk/shadergen/internal/fsutil"
)

// main is the entrypoint for the shadergen application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	os.Exit(exitCode(run(os.Stdout, os.Stderr, os.Args[1:]), os.Stderr))
}

// exitCode reports err on errW and maps it to a process exit code.
// Generation errors are printed as a single "error: ..." line.
func exitCode(err error, errW io.Writer) int {
	if err == nil {
		return 0
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(errW, exitErr.Message)
		return exitErr.Code
	}

	var buildErr *builderr.Error
	if errors.As(err, &buildErr) {
		fmt.Fprintf(errW, "error: %v\n", err)
		return 2
	}

	fmt.Fprintln(errW, err)
	return 1
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	shadergen := app.NewApp(outW, errW, appConfig, app.DefaultLoader(cwd), &fsutil.DirSink{})
	return shadergen.Run(context.Background())
}
