package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"mlb-scoreboard-service/internal/config"
	"mlb-scoreboard-service/internal/logging"
	"mlb-scoreboard-service/internal/server"
)

const (
	appName    = "mlb-scoreboard-service"
	appVersion = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: appName,
		Version: appVersion,
	})
}
