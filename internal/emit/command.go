package emit

import (
	"context"
	"strings"

	"github.com/vk/shadergen/internal/ctxlog"
	"github.com/vk/shadergen/internal/fsutil"
	"github.com/vk/shadergen/internal/model"
)

// quoteEscaper escapes the characters a POSIX shell still interprets
// inside double quotes.
var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

// Quote wraps arg in double quotes so a POSIX shell reads it back as one
// literal word.
func Quote(arg string) string {
	return `"` + quoteEscaper.Replace(arg) + `"`
}

// CommandLine renders the compiler invocation for a job:
//
//	"<compiler>" "<source>" -o "<output>" "<flag>"... "-I<dir>"...
func CommandLine(compiler string, job model.Job) string {
	parts := make([]string, 0, 4+len(job.CompilerFlags)+len(job.IncludeSearchDirs))
	parts = append(parts, Quote(compiler), Quote(job.SourcePath), "-o", Quote(job.OutputPath))
	for _, flag := range job.CompilerFlags {
		parts = append(parts, Quote(flag))
	}
	for _, dir := range job.IncludeSearchDirs {
		parts = append(parts, Quote("-I"+dir))
	}
	return strings.Join(parts, " ")
}

// WriteCommands writes one command file per distinct output. Duplicate jobs
// for the same output are identical by construction and written once.
func WriteCommands(ctx context.Context, sink fsutil.Sink, compiler string, jobs []model.Job) error {
	logger := ctxlog.FromContext(ctx)
	written := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		if written[job.CommandFilePath] {
			continue
		}
		written[job.CommandFilePath] = true
		if err := sink.WriteFile(job.CommandFilePath, []byte(CommandLine(compiler, job)+"\n")); err != nil {
			return err
		}
	}
	logger.Debug("Command files written.", "count", len(written))
	return nil
}
