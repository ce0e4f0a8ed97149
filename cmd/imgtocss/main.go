package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/luka-bacic/img-to-css/internal/pipeline"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "imgtocss",
	Short:             "Replicate raster images with CSS linear gradients",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Logging verbosity (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-as-json", false, "Write logs as JSON")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logAsJSON, _ := cmd.Flags().GetBool("log-as-json")

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if logAsJSON {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	} else {
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	pipeline.SetLogger(logger)
	return nil
}
