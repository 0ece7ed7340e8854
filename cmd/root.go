package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/reqlog/internal/app"
	"github.com/olusolaa/reqlog/internal/config"
	apperrors "github.com/olusolaa/reqlog/internal/errors"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "reqlog",
	Short: "Serves a demo HTTP API with request/response logging.",
	Long: `reqlog runs a small HTTP API wrapped in the request logging middleware.
Every request is logged as "<METHOD> <path>", followed by its headers and
body; every response as "<METHOD> <path> - <status>", followed by headers and
body for JSON responses. Failed responses are highlighted in the error colour.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper())
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Application initialization failed: %v\n", err)
			if appErr := (*apperrors.AppError)(nil); errors.As(err, &appErr) && appErr.IsUserFacing {
				fmt.Fprintf(os.Stderr, "Error Details: %s\n", appErr.Message)
				if appErr.SuggestedAction != "" {
					fmt.Fprintf(os.Stderr, "Suggestion: %s\n", appErr.SuggestedAction)
				}
			}
			return err
		}

		if err := application.Run(cmd.Context()); err != nil {
			userMsg, suggestion, _ := apperrors.GetUserFacingMessage(err)
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", userMsg)
			if suggestion != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
			}
			return err
		}
		return nil
	},
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .reqlog.yaml in . or $HOME)")
	flags.String("log-level", config.DefaultLogLevel, "Level for header and body lines (trace, debug, info, warning, error, critical, disabled)")
	flags.Int("max-body-length", config.DefaultMaxBodyLength, "Bytes of a body logged before truncation")
	flags.Bool("no-color", false, "Disable colour tags on request lines")
	flags.String("log-backend", "slog", "Logger backend (slog, zap)")
	flags.String("log-format", "text", "Logger output format (text, json)")
	flags.String("log-threshold", "trace", "Lowest level the backend writes")
	flags.String("addr", ":8080", "Listen address")
	flags.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".reqlog")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using configuration file:", viper.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
		fmt.Fprintln(os.Stderr, "Config file not found, using defaults and flags.")
	}

	return app.ApplyFlagOverrides(cmd.Flags(), viper.GetViper())
}
