// Package scheduler runs the asynq-backed background jobs: the periodic
// board reconcile and the worker that processes it.
package scheduler

import (
	"context"
	"fmt"

	"workboard_backend/internal/notify"
	"workboard_backend/platform/config"
	"workboard_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes scheduled tasks. The reconcile handler does not touch the
// database itself; it announces a change so every API instance reloads from
// its own connection.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	notifier *notify.Notifier
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, notifier *notify.Notifier, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 5
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		notifier: notifier,
		log:      log,
	}

	mux.HandleFunc(TaskBoardReconcile, w.handleBoardReconcile)

	return w, nil
}

func (w *Worker) handleBoardReconcile(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseBoardReconcilePayload(task)
	if err != nil {
		return err
	}

	w.log.Info("board reconcile due", "reason", payload.Reason, "scheduledAt", payload.ScheduledAt)
	w.notifier.Publish(ctx, "reconcile")

	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
