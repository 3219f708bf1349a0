package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/slackconnect/cli/internal/cli"
	"github.com/slackconnect/cli/internal/config"
	"github.com/slackconnect/cli/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
