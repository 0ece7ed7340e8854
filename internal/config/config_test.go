package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/reqlog/internal/config"
	"github.com/olusolaa/reqlog/internal/core/domain"
	"github.com/olusolaa/reqlog/internal/errors"
	"github.com/olusolaa/reqlog/internal/log"
)

func TestFromMap_Defaults(t *testing.T) {
	cfg, err := config.FromMap(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, domain.LevelDebug, cfg.DetailLevel())
	assert.True(t, cfg.Colorize)
	assert.Equal(t, 50000, cfg.MaxBodyLength)
	assert.Equal(t, log.Config{Backend: log.BackendSlog, Format: log.FormatText, Level: domain.LevelTrace}, cfg.LoggerConfig())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestFromMap_Overrides(t *testing.T) {
	cfg, err := config.FromMap(context.Background(), map[string]any{
		"log_level":       "WARNING",
		"colorize":        false,
		"max_body_length": 100,
		"log":             map[string]any{"backend": "zap", "format": "json"},
		"server":          map[string]any{"addr": "127.0.0.1:9000", "shutdown_timeout": "3s"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.LevelWarning, cfg.DetailLevel())
	assert.False(t, cfg.Colorize)
	assert.Equal(t, 100, cfg.MaxBodyLength)
	assert.Equal(t, log.BackendZap, cfg.LoggerConfig().Backend)
	assert.Equal(t, log.FormatJSON, cfg.LoggerConfig().Format)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
}

func TestFromMap_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		code errors.Code
	}{
		{"Unknown Level", map[string]any{"log_level": "verbose"}, errors.CodeConfigValidation},
		{"Numeric Level", map[string]any{"log_level": 10}, errors.CodeConfigParseError},
		{"String Colorize", map[string]any{"colorize": "yes"}, errors.CodeConfigParseError},
		{"String Length", map[string]any{"max_body_length": "100"}, errors.CodeConfigParseError},
		{"Float Length", map[string]any{"max_body_length": 100.7}, errors.CodeConfigParseError},
		{"Integral Float Length", map[string]any{"max_body_length": 1500.0}, errors.CodeConfigParseError},
		{"Zero Length", map[string]any{"max_body_length": 0}, errors.CodeConfigValidation},
		{"Negative Length", map[string]any{"max_body_length": -5}, errors.CodeConfigValidation},
		{"Unknown Backend", map[string]any{"log": map[string]any{"backend": "logrus"}}, errors.CodeConfigValidation},
		{"Unknown Backend Level", map[string]any{"log": map[string]any{"level": "loud"}}, errors.CodeConfigValidation},
		{"Bad Addr", map[string]any{"server": map[string]any{"addr": "nowhere"}}, errors.CodeConfigValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.FromMap(context.Background(), tt.raw)
			require.Error(t, err)
			assert.Nil(t, cfg)

			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.True(t, appErr.IsUserFacing)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reqlog.yaml")

	t.Run("Typed Values", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("log_level: info\ncolorize: false\nmax_body_length: 1024\n"), 0o600))
		v := viper.New()
		v.SetConfigFile(path)
		require.NoError(t, v.ReadInConfig())

		cfg, err := config.Load(context.Background(), v)
		require.NoError(t, err)
		assert.Equal(t, domain.LevelInfo, cfg.DetailLevel())
		assert.False(t, cfg.Colorize)
		assert.Equal(t, 1024, cfg.MaxBodyLength)
	})

	t.Run("Quoted Length", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("max_body_length: \"100\"\n"), 0o600))
		v := viper.New()
		v.SetConfigFile(path)
		require.NoError(t, v.ReadInConfig())

		_, err := config.Load(context.Background(), v)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeConfigParseError))
	})

	t.Run("Exponent Length", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("max_body_length: 1.5e3\n"), 0o600))
		v := viper.New()
		v.SetConfigFile(path)
		require.NoError(t, v.ReadInConfig())

		cfg, err := config.Load(context.Background(), v)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.True(t, errors.Is(err, errors.CodeConfigParseError))
	})

	t.Run("Override Wins", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("max_body_length: 10\n"), 0o600))
		v := viper.New()
		v.SetConfigFile(path)
		require.NoError(t, v.ReadInConfig())
		v.Set("max_body_length", 20)

		cfg, err := config.Load(context.Background(), v)
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.MaxBodyLength)
	})
}
