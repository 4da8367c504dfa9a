package main

import (
	"log/slog"
	"os"

	"github.com/dshills/prcritic/internal/cli"
)

func main() {
	level := slog.LevelWarn
	if os.Getenv("PRCRITIC_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	os.Exit(cli.Run())
}
