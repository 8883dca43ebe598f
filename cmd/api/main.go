package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workboard_backend/internal/adapters"
	"workboard_backend/internal/board"
	"workboard_backend/internal/catalog"
	"workboard_backend/internal/events"
	apphttp "workboard_backend/internal/http"
	"workboard_backend/internal/http/router"
	"workboard_backend/internal/notify"
	"workboard_backend/internal/orders"
	"workboard_backend/internal/workflows"
	"workboard_backend/platform/config"
	"workboard_backend/platform/db"
	"workboard_backend/platform/logger"
	"workboard_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Cross-instance change notifier; nil means single-instance mode
	notifier, err := notify.New(cfg, log)
	if err != nil {
		log.Error("failed to initialize change notifier", "error", err)
		panic("failed to initialize change notifier: " + err.Error())
	}
	if notifier == nil {
		log.Warn("REDIS_URL not configured; cross-instance change notifications disabled")
	} else {
		defer func() { _ = notifier.Close() }()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	ordersModule := orders.NewModule(pool, eventBus, val, log)
	workflowsModule := workflows.NewModule(pool, eventBus, val, log)
	catalogModule := catalog.NewModule(pool, eventBus, val, log)

	// Board reads the three source collections through anti-corruption
	// adapters, never through the modules' HTTP types.
	boardModule := board.NewModule(
		adapters.NewBoardOrderSource(ordersModule.Repository()),
		adapters.NewBoardWorkflowSource(workflowsModule.Repository()),
		adapters.NewBoardServiceSource(catalogModule.Repository()),
		notifier,
		log,
	)
	boardModule.RegisterHandlers(eventBus)
	boardModule.StartChangeListener(ctx)

	if err := boardModule.Engine().Refresh(ctx); err != nil {
		log.Warn("initial board refresh failed; serving empty board until first change", "error", err)
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			ordersModule,
			workflowsModule,
			catalogModule,
			boardModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
