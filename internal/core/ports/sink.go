package ports

import (
	"context"

	"github.com/olusolaa/reqlog/internal/core/domain"
)

//go:generate mockery --name Sink --output ./mocks --outpkg mocks --case underscore

// Sink adapts a Logger for request logging.
type Sink interface {
	// Emit writes msg at level, tagged with the error colour when level is at
	// or above domain.ErrorThreshold.
	Emit(ctx context.Context, level domain.Level, msg string)
	// EmitForced writes msg at level, always tagged with the error colour.
	EmitForced(ctx context.Context, level domain.Level, msg string)
}
