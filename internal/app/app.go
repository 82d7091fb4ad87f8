package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/shadergen/internal/config"
	"github.com/vk/shadergen/internal/ctxlog"
	"github.com/vk/shadergen/internal/fsutil"
)

// Loader reads environment and manifest documents and reports which file
// extensions it understands.
type Loader interface {
	config.Loader
	LoadManifests(ctx context.Context, paths []string) ([]*config.Manifest, error)
	Extensions() []string
}

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader Loader
	sink   fsutil.Sink
}

// NewApp is the constructor for the main application. Requested output
// (namespace listings, verbose summaries) goes to outW and logs go to logW.
// Generated files are written through sink.
func NewApp(outW, logW io.Writer, appConfig *Config, loader Loader, sink fsutil.Sink) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		loader: loader,
		sink:   sink,
	}
}

// withLogger attaches the app's logger to ctx.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
