package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/wichananm65/basket-api/internal/app"
	"github.com/wichananm65/basket-api/internal/config"
	"github.com/wichananm65/basket-api/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	server.SetLogLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := app.Open(ctx, cfg, os.Stderr)
	if err != nil {
		log.Fatalf("opening storage: %v", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Errorf("%v", err)
		}
	}()

	srv := app.NewServer(cfg, deps, os.Stdout)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("starting server on %s", cfg.Addr)
		errCh <- srv.Listen(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Errorf("server stopped: %v", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}
}
