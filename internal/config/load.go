package config

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/olusolaa/reqlog/internal/core/domain"
	"github.com/olusolaa/reqlog/internal/errors"
)

// Load resolves the configuration once from v. Values are not coerced: a
// string where a bool or int is expected is rejected.
func Load(ctx context.Context, v *viper.Viper) (*Config, error) {
	return FromMap(ctx, v.AllSettings())
}

func FromMap(ctx context.Context, raw map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     cfg,
		TagName:    "mapstructure",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			rejectFloatToInt,
		),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to build configuration decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigParseError,
			fmt.Sprintf("Configuration has a value of the wrong type: %v", err),
			"colorize must be a boolean and max_body_length an integer.")
	}

	if err := Validate(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// rejectFloatToInt stops mapstructure from truncating 100.7 or 1.5e3 into an
// int field.
func rejectFloatToInt(from, to reflect.Kind, data any) (any, error) {
	if to == reflect.Int && (from == reflect.Float32 || from == reflect.Float64) {
		return nil, fmt.Errorf("expected an integer, got %v", data)
	}
	return data, nil
}

func Validate(ctx context.Context, cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("loglevel", isLogLevel); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to register level validation")
	}

	err := validate.StructCtx(ctx, cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return errors.Wrap(err, errors.CodeInternal, "configuration validation could not run")
	}

	var details strings.Builder
	details.WriteString("Configuration validation failed:")
	for _, fe := range validationErrors {
		details.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.NewUserFacing(errors.CodeConfigValidation, details.String(),
		"Supported levels: trace, debug, info, warning, error, critical, disabled.")
}

func isLogLevel(fl validator.FieldLevel) bool {
	_, err := domain.ParseLevel(fl.Field().String())
	return err == nil
}
