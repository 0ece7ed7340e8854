package ports

import (
	"context"

	"github.com/olusolaa/reqlog/internal/core/domain"
)

//go:generate mockery --name Logger --output ./mocks --outpkg mocks --case underscore

// Logger is the external logging interface. Log writes one message at the
// given level; delivery, formatting and rotation belong to the backend.
type Logger interface {
	Log(ctx context.Context, level domain.Level, msg string)
	Debugf(ctx context.Context, format string, args ...any)
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, err error, format string, args ...any)
	WithFields(fields map[string]any) Logger // Returns a new logger with added context
}
