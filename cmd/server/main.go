package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/matches-service/internal/config"
	"github.com/preston-bernstein/matches-service/internal/logging"
	"github.com/preston-bernstein/matches-service/internal/server"
)

const (
	appName    = "matches-service"
	appVersion = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := newLogger()
	logging.Info(logger, "starting",
		slog.String(logging.FieldProvider, cfg.Provider),
		slog.String("local_store", cfg.Local.Kind),
		slog.Bool("mirror_local", cfg.MirrorLocal),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(ctx, cfg, logger)
	srv.Run(ctx, stop)
}

func newLogger() *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: appName,
		Version: appVersion,
	})
}
