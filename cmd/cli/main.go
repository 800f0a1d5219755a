package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/todokeeper/internal/buildinfo"
	"github.com/dmitrijs2005/todokeeper/internal/cli"
	"github.com/dmitrijs2005/todokeeper/internal/config"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		logger.Error(ctx, "command failed", "error", err)
		os.Exit(1)
	}
}
