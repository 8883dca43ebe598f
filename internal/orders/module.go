// Package orders provides the orders bounded context. Orders carry the
// nested service items that the board derives its work items from.
package orders

import (
	"workboard_backend/internal/events"
	apphttp "workboard_backend/internal/http"
	"workboard_backend/internal/orders/handler"
	"workboard_backend/internal/orders/repository"
	"workboard_backend/internal/orders/service"
	"workboard_backend/platform/logger"
	"workboard_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the orders bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the orders module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "orders"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts order routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/orders")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/:id", m.handler.GetByID)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
	group.POST("/:id/items", m.handler.AddItem)
	group.DELETE("/:id/items/:itemId", m.handler.DeleteItem)
	group.PUT("/:id/items/:itemId/status", m.handler.UpdateItemStatus)
	group.PUT("/:id/items/:itemId/workflow", m.handler.AssignWorkflow)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
