package log

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/olusolaa/reqlog/internal/core/domain"
	"github.com/olusolaa/reqlog/internal/core/ports"
	apperrors "github.com/olusolaa/reqlog/internal/errors"
)

type zapAdapter struct {
	logger *zap.Logger
}

func newZapAdapter(cfg Config, w io.Writer) *zapAdapter {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch cfg.Format {
	case FormatJSON:
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(toZapLevel(cfg.Level)))
	return newZapAdapterFromCore(core)
}

func newZapAdapterFromCore(core zapcore.Core) *zapAdapter {
	// Not a development logger: DPanic, used for critical, must not panic.
	return &zapAdapter{logger: zap.New(core)}
}

// toZapLevel folds trace into debug; zap has no finer level.
func toZapLevel(l domain.Level) zapcore.Level {
	switch l {
	case domain.LevelTrace, domain.LevelDebug:
		return zapcore.DebugLevel
	case domain.LevelInfo:
		return zapcore.InfoLevel
	case domain.LevelWarning:
		return zapcore.WarnLevel
	case domain.LevelError:
		return zapcore.ErrorLevel
	case domain.LevelCritical:
		return zapcore.DPanicLevel
	default:
		return zapcore.FatalLevel
	}
}

func (z *zapAdapter) Log(_ context.Context, level domain.Level, msg string) {
	if level == domain.LevelDisabled {
		return
	}
	if ce := z.logger.Check(toZapLevel(level), msg); ce != nil {
		ce.Write()
	}
}

func (z *zapAdapter) log(level zapcore.Level, err error, format string, args ...any) {
	if !z.logger.Core().Enabled(level) {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if ce := z.logger.Check(level, msg); ce != nil {
		ce.Write(errorFields(err)...)
	}
}

func errorFields(err error) []zap.Field {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return []zap.Field{zap.Error(err)}
	}
	fields := []zap.Field{zap.String("error_code", string(appErr.Code))}
	if appErr.InternalDetails != "" {
		fields = append(fields, zap.String("error_details", appErr.InternalDetails))
	}
	if appErr.WrappedError != nil {
		fields = append(fields, zap.String("error_wrapped", appErr.WrappedError.Error()))
	}
	return fields
}

func (z *zapAdapter) Debugf(_ context.Context, format string, args ...any) {
	z.log(zapcore.DebugLevel, nil, format, args...)
}

func (z *zapAdapter) Infof(_ context.Context, format string, args ...any) {
	z.log(zapcore.InfoLevel, nil, format, args...)
}

func (z *zapAdapter) Warnf(_ context.Context, format string, args ...any) {
	z.log(zapcore.WarnLevel, nil, format, args...)
}

func (z *zapAdapter) Errorf(_ context.Context, err error, format string, args ...any) {
	z.log(zapcore.ErrorLevel, err, format, args...)
}

func (z *zapAdapter) WithFields(fields map[string]any) ports.Logger {
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return &zapAdapter{logger: z.logger.With(zf...)}
}
