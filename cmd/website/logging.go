package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/adampresley/classalbum/cmd/website/internal/configuration"
)

func setupLogger(config *configuration.Config, version string) {
	level := parseLogLevel(config.LogLevel)

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(h).With(
		slog.String("version", version),
	)

	slog.SetDefault(logger)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug

	case "warn":
		return slog.LevelWarn

	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}
