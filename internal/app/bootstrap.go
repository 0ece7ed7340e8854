package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/olusolaa/reqlog/internal/config"
	"github.com/olusolaa/reqlog/internal/core/ports"
	"github.com/olusolaa/reqlog/internal/errors"
	"github.com/olusolaa/reqlog/internal/formatter"
	"github.com/olusolaa/reqlog/internal/log"
	"github.com/olusolaa/reqlog/internal/middleware"
	"github.com/olusolaa/reqlog/internal/sink"
)

// BuildApplicationFromViper resolves the configuration and wires the
// request logger. Any configuration error is returned before a server
// exists.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg, err := config.Load(ctx, v)
	if err != nil {
		return nil, err
	}
	logger, err := log.NewLogger(cfg.LoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeLoggerInit, "logger initialization failed")
	}
	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if v.ConfigFileUsed() != "" {
		app.Logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		app.Logger.Debugf(ctx, "No configuration file found, using defaults and flags.")
	}
	return app, nil
}

// BuildApplication wires the request logger with log output sent to out.
func BuildApplication(ctx context.Context, cfg *config.Config, out io.Writer) (*Application, error) {
	logger, err := log.NewLoggerWithWriter(cfg.LoggerConfig(), out)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeLoggerInit, "logger initialization failed")
	}
	return buildApplication(ctx, cfg, logger)
}

func buildApplication(ctx context.Context, cfg *config.Config, logger ports.Logger) (*Application, error) {
	logCfg := cfg.LoggerConfig()
	logger.Infof(ctx, "Logger initialized (Backend: %s, Format: %s, Level: %s)", logCfg.Backend, logCfg.Format, logCfg.Level)

	s := sink.New(cfg.Colorize, logger)
	f, err := formatter.New(formatter.Settings{
		Level:         cfg.DetailLevel(),
		MaxBodyLength: cfg.MaxBodyLength,
	}, s)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation, "invalid request logging settings", "Check log_level and max_body_length.")
	}
	logger.Debugf(ctx, "Request logging enabled (Detail level: %s, Colorize: %t, Max body length: %d)",
		cfg.DetailLevel(), cfg.Colorize, cfg.MaxBodyLength)

	mw := middleware.New(f)
	return NewApplication(cfg, logger, NewRouter(mw, logger)), nil
}
