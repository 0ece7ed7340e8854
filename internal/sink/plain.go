package sink

import (
	"context"

	"github.com/olusolaa/reqlog/internal/core/domain"
	"github.com/olusolaa/reqlog/internal/core/ports"
)

type Plain struct {
	logger ports.Logger
}

func NewPlain(logger ports.Logger) *Plain {
	return &Plain{logger: logger}
}

func (p *Plain) Emit(ctx context.Context, level domain.Level, msg string) {
	p.logger.Log(ctx, level, msg)
}

// EmitForced is Emit; there is no colour to force.
func (p *Plain) EmitForced(ctx context.Context, level domain.Level, msg string) {
	p.Emit(ctx, level, msg)
}
