package log

import "github.com/olusolaa/reqlog/internal/core/domain"

type Backend string

const (
	BackendSlog Backend = "slog"
	BackendZap  Backend = "zap"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Config struct {
	Backend Backend
	Format  Format
	// Level is the backend threshold; messages below it are dropped.
	Level domain.Level
}

func DefaultConfig() Config {
	return Config{
		Backend: BackendSlog,
		Format:  FormatText,
		Level:   domain.LevelTrace,
	}
}
