package config

import (
	"time"

	"github.com/olusolaa/reqlog/internal/core/domain"
	"github.com/olusolaa/reqlog/internal/log"
)

const (
	DefaultLogLevel      = "debug"
	DefaultColorize      = true
	DefaultMaxBodyLength = 50000
)

type Config struct {
	LogLevel      string       `yaml:"log_level" mapstructure:"log_level" validate:"loglevel"`
	Colorize      bool         `yaml:"colorize" mapstructure:"colorize"`
	MaxBodyLength int          `yaml:"max_body_length" mapstructure:"max_body_length" validate:"gt=0"`
	Log           LogConfig    `yaml:"log" mapstructure:"log"`
	Server        ServerConfig `yaml:"server" mapstructure:"server"`
}

// LogConfig selects the backend the request lines are written to.
type LogConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend" validate:"oneof=slog zap"`
	Format  string `yaml:"format" mapstructure:"format" validate:"oneof=text json"`
	// Level is the backend threshold, independent of LogLevel.
	Level string `yaml:"level" mapstructure:"level" validate:"loglevel"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout" validate:"gt=0"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:      DefaultLogLevel,
		Colorize:      DefaultColorize,
		MaxBodyLength: DefaultMaxBodyLength,
		Log: LogConfig{
			Backend: string(log.BackendSlog),
			Format:  string(log.FormatText),
			Level:   domain.LevelTrace.String(),
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// DetailLevel is the parsed LogLevel. Only valid after Validate.
func (c *Config) DetailLevel() domain.Level {
	l, _ := domain.ParseLevel(c.LogLevel)
	return l
}

// LoggerConfig is the backend configuration. Only valid after Validate.
func (c *Config) LoggerConfig() log.Config {
	l, _ := domain.ParseLevel(c.Log.Level)
	return log.Config{
		Backend: log.Backend(c.Log.Backend),
		Format:  log.Format(c.Log.Format),
		Level:   l,
	}
}
