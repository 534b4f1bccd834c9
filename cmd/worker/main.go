package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/roomverse/platform/internal/config"
	"github.com/roomverse/platform/internal/db"
	"github.com/roomverse/platform/internal/jobs"
	"github.com/roomverse/platform/internal/logging"
	"github.com/roomverse/platform/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("worker"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	worker := jobs.NewWorker(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		jobs.NewTouchHandler(store.New(pool)),
		logger,
	)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info().Msg("shutting down worker")
		cancel()
	}()

	logger.Info().Str("redis", cfg.RedisAddr).Msg("starting worker")
	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Fatal().Err(err).Msg("worker failed")
	}
}
