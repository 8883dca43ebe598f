package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"workboard_backend/internal/notify"
	"workboard_backend/internal/scheduler"
	"workboard_backend/platform/config"
	"workboard_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier, err := notify.New(cfg, log)
	if err != nil {
		log.Error("failed to initialize change notifier", "error", err)
		panic("failed to initialize change notifier: " + err.Error())
	}
	if notifier == nil {
		log.Error("REDIS_URL not configured; scheduler has nothing to do")
		panic("REDIS_URL not configured")
	}
	defer func() { _ = notifier.Close() }()

	periodic, err := scheduler.NewPeriodic(cfg, log)
	if err != nil {
		log.Error("failed to initialize periodic scheduler", "error", err)
		panic("failed to initialize periodic scheduler: " + err.Error())
	}
	go periodic.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, notifier, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}
