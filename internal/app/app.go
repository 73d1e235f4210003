package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/fileformatgo/internal/config"
	"github.com/vk/fileformatgo/internal/ctxlog"
	"github.com/vk/fileformatgo/internal/process"
)

// App encapsulates one configured validation run: the loaded format
// specification, the engine built from it, and an isolated logger.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	format *config.Format
	engine *process.Engine
}

// NewApp loads the format specification named by the config and builds the
// validation engine. Log output goes to logW; results go to outW. A
// failure here is a ConfigurationError: nothing has been validated yet.
func NewApp(outW, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	format, err := loadFormat(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("Specification loaded into unified model.", "format", format.Name)

	engine, err := process.New(format)
	if err != nil {
		return nil, err
	}
	logger.Debug("Validation engine built.", "columns", len(format.Columns))

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		format: format,
		engine: engine,
	}, nil
}

// Format returns the loaded format specification. Primarily for testing.
func (a *App) Format() *config.Format {
	return a.format
}
