package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"waterbuddy/internal/app"
	"waterbuddy/internal/telemetry"
	"waterbuddy/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "waterbuddy: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.FromEnv()
	if err != nil {
		return err
	}

	logger, closer, err := telemetry.NewLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	session, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	handler, err := web.NewHandler(session, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.NewServer(cfg.HTTPAddr, handler, logger).Run(ctx)
}
