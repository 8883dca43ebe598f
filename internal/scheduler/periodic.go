package scheduler

import (
	"context"
	"fmt"
	"time"

	"workboard_backend/platform/config"
	"workboard_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Periodic enqueues the board reconcile task on a fixed interval.
type Periodic struct {
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
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

	interval := cfg.GetReconcileInterval()
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{})

	task, err := NewBoardReconcileTask(BoardReconcilePayload{
		Reason:      "periodic",
		ScheduledAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	spec := fmt.Sprintf("@every %s", interval)
	if _, err := scheduler.Register(spec, task, asynq.Queue(queue)); err != nil {
		return nil, err
	}

	log.Info("board reconcile scheduled", "interval", interval.String(), "queue", queue)

	return &Periodic{scheduler: scheduler, log: log}, nil
}

func (p *Periodic) Run(ctx context.Context) {
	if p == nil || p.scheduler == nil {
		return
	}

	go func() {
		<-ctx.Done()
		p.scheduler.Shutdown()
	}()

	if err := p.scheduler.Run(); err != nil {
		p.log.Error("periodic scheduler stopped", "error", err)
	}
}
