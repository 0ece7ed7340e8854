package sink

import (
	"context"

	"github.com/fatih/color"

	"github.com/olusolaa/reqlog/internal/core/domain"
	"github.com/olusolaa/reqlog/internal/core/ports"
)

type Color struct {
	logger ports.Logger
	normal *color.Color
	failed *color.Color
}

// NewColor uses cyan for normal messages and magenta for errors.
func NewColor(logger ports.Logger) *Color {
	return NewColorWith(logger, color.New(color.FgCyan), color.New(color.FgMagenta))
}

// NewColorWith forces both colours on, so tags are written even when the
// process output is not a terminal.
func NewColorWith(logger ports.Logger, normal, failed *color.Color) *Color {
	normal.EnableColor()
	failed.EnableColor()
	return &Color{
		logger: logger,
		normal: normal,
		failed: failed,
	}
}

func (c *Color) Emit(ctx context.Context, level domain.Level, msg string) {
	tag := c.normal
	if level >= domain.ErrorThreshold {
		tag = c.failed
	}
	c.logger.Log(ctx, level, tag.Sprint(msg))
}

func (c *Color) EmitForced(ctx context.Context, level domain.Level, msg string) {
	c.logger.Log(ctx, level, c.failed.Sprint(msg))
}
