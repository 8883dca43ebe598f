// Package board provides the kanban read-model bounded context. It owns the
// derivation engine, rebuilds the snapshot whenever a source collection
// changes, and exposes the board over HTTP and SSE.
package board

import (
	"context"

	"workboard_backend/internal/board/handler"
	"workboard_backend/internal/board/service"
	"workboard_backend/internal/events"
	apphttp "workboard_backend/internal/http"
	"workboard_backend/internal/notify"
	"workboard_backend/internal/notify/sse"
	"workboard_backend/platform/logger"
)

// Module is the board bounded context module implementing http.Module.
type Module struct {
	engine   *service.Engine
	handler  *handler.Handler
	sse      *sse.Service
	notifier *notify.Notifier
	log      *logger.Logger
}

// NewModule creates and initializes the board module. The notifier may be nil
// for single-instance deployments.
func NewModule(
	orders service.OrderSource,
	workflows service.WorkflowSource,
	services service.ServiceSource,
	notifier *notify.Notifier,
	log *logger.Logger,
) *Module {
	engine := service.NewEngine(orders, workflows, services, log)
	m := &Module{
		engine:   engine,
		sse:      sse.New(log),
		notifier: notifier,
		log:      log,
	}
	m.handler = handler.New(engine, m)
	return m
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "board"
}

// Engine returns the derivation engine for external use.
func (m *Module) Engine() *service.Engine {
	return m.engine
}

// SSE returns the board's SSE fanout service.
func (m *Module) SSE() *sse.Service {
	return m.sse
}

// RegisterRoutes mounts board routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/board")
	group.GET("/columns", m.handler.ListColumns)
	group.GET("/columns/:columnId/items", m.handler.ListColumnItems)
	group.GET("/items", m.handler.ListItems)
	group.GET("/events", m.sse.Handler())
	group.POST("/refresh", m.handler.Refresh)
}

// RegisterHandlers subscribes to the source collection change events.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.OrdersChanged{}.EventName(), m)
	bus.Subscribe(events.WorkflowsChanged{}.EventName(), m)
	bus.Subscribe(events.ServicesChanged{}.EventName(), m)
}

// Handle routes events to a full snapshot rebuild. The payload is only used
// for logging; the engine always reloads everything.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch event.(type) {
	case events.OrdersChanged:
		return m.RefreshAndNotify(ctx, "orders")
	case events.WorkflowsChanged:
		return m.RefreshAndNotify(ctx, "workflows")
	case events.ServicesChanged:
		return m.RefreshAndNotify(ctx, "services")
	default:
		return nil
	}
}

// RefreshAndNotify rebuilds the snapshot, tells connected SSE clients to
// refetch and announces the change to peer instances.
func (m *Module) RefreshAndNotify(ctx context.Context, source string) error {
	if err := m.refresh(ctx, source); err != nil {
		return err
	}
	m.notifier.Publish(ctx, source)
	return nil
}

// StartChangeListener consumes change notifications from peer instances.
// Remote changes refresh locally without republishing, so notifications
// cannot loop between instances.
func (m *Module) StartChangeListener(ctx context.Context) {
	m.notifier.Subscribe(ctx, func(ctx context.Context, source string) {
		if err := m.refresh(ctx, source); err != nil {
			m.log.Error("remote-triggered board refresh failed", "error", err, "source", source)
		}
	})
}

func (m *Module) refresh(ctx context.Context, source string) error {
	if err := m.engine.Refresh(ctx); err != nil {
		return err
	}
	m.sse.Broadcast(sse.Event{
		Type: sse.EventBoardRefreshed,
		Data: map[string]string{"source": source},
	})
	return nil
}

// Compile-time checks
var (
	_ apphttp.Module    = (*Module)(nil)
	_ events.Handler    = (*Module)(nil)
	_ handler.Refresher = (*Module)(nil)
)
