package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/olusolaa/reqlog/internal/core/domain"
	"github.com/olusolaa/reqlog/internal/core/ports"
	apperrors "github.com/olusolaa/reqlog/internal/errors"
)

const (
	slogLevelTrace    = slog.Level(-8)
	slogLevelCritical = slog.Level(12)
)

type slogAdapter struct {
	logger *slog.Logger
}

// NewLogger builds the configured backend writing to stderr.
func NewLogger(cfg Config) (ports.Logger, error) {
	return NewLoggerWithWriter(cfg, os.Stderr)
}

func NewLoggerWithWriter(cfg Config, w io.Writer) (ports.Logger, error) {
	if !cfg.Level.Valid() {
		return nil, apperrors.New(apperrors.CodeLoggerInit, fmt.Sprintf("invalid backend level %d", int(cfg.Level)))
	}
	if cfg.Format != FormatText && cfg.Format != FormatJSON {
		return nil, apperrors.NewUserFacing(apperrors.CodeLoggerInit,
			fmt.Sprintf("unsupported log format %q", cfg.Format), "Supported: text, json")
	}

	switch cfg.Backend {
	case BackendSlog:
		return newSlogAdapter(cfg, w), nil
	case BackendZap:
		return newZapAdapter(cfg, w), nil
	default:
		return nil, apperrors.NewUserFacing(apperrors.CodeLoggerInit,
			fmt.Sprintf("unsupported log backend %q", cfg.Backend), "Supported: slog, zap")
	}
}

func newSlogAdapter(cfg Config, w io.Writer) *slogAdapter {
	opts := &slog.HandlerOptions{
		Level:       toSlogLevel(cfg.Level),
		ReplaceAttr: renameLevels,
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return &slogAdapter{logger: slog.New(handler)}
}

func toSlogLevel(l domain.Level) slog.Level {
	switch l {
	case domain.LevelTrace:
		return slogLevelTrace
	case domain.LevelDebug:
		return slog.LevelDebug
	case domain.LevelInfo:
		return slog.LevelInfo
	case domain.LevelWarning:
		return slog.LevelWarn
	case domain.LevelError:
		return slog.LevelError
	case domain.LevelCritical:
		return slogLevelCritical
	default:
		return slogLevelCritical + 1
	}
}

// renameLevels prints TRACE and CRITICAL instead of DEBUG-4 and ERROR+4.
func renameLevels(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	switch {
	case level <= slogLevelTrace:
		a.Value = slog.StringValue("TRACE")
	case level >= slogLevelCritical:
		a.Value = slog.StringValue("CRITICAL")
	}
	return a
}

func (s *slogAdapter) Log(ctx context.Context, level domain.Level, msg string) {
	if level == domain.LevelDisabled {
		return
	}
	s.logger.Log(ctx, toSlogLevel(level), msg)
}

func (s *slogAdapter) log(ctx context.Context, level slog.Level, err error, format string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !s.logger.Enabled(ctx, level) {
		return
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	s.logger.LogAttrs(ctx, level, msg, errorAttrs(err)...)
}

func errorAttrs(err error) []slog.Attr {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return []slog.Attr{slog.String("error", err.Error())}
	}
	attrs := []slog.Attr{slog.String("error_code", string(appErr.Code))}
	if appErr.InternalDetails != "" {
		attrs = append(attrs, slog.String("error_details", appErr.InternalDetails))
	}
	if appErr.WrappedError != nil {
		attrs = append(attrs, slog.String("error_wrapped", appErr.WrappedError.Error()))
	}
	return attrs
}

func (s *slogAdapter) Debugf(ctx context.Context, format string, args ...any) {
	s.log(ctx, slog.LevelDebug, nil, format, args...)
}

func (s *slogAdapter) Infof(ctx context.Context, format string, args ...any) {
	s.log(ctx, slog.LevelInfo, nil, format, args...)
}

func (s *slogAdapter) Warnf(ctx context.Context, format string, args ...any) {
	s.log(ctx, slog.LevelWarn, nil, format, args...)
}

func (s *slogAdapter) Errorf(ctx context.Context, err error, format string, args ...any) {
	s.log(ctx, slog.LevelError, err, format, args...)
}

func (s *slogAdapter) WithFields(fields map[string]any) ports.Logger {
	args := make([]any, 0, len(fields))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &slogAdapter{logger: s.logger.With(args...)}
}
