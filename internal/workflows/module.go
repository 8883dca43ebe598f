// Package workflows provides the workflow definitions bounded context.
// Workflows are ordered stage templates that board items progress through.
package workflows

import (
	"workboard_backend/internal/events"
	apphttp "workboard_backend/internal/http"
	"workboard_backend/internal/workflows/handler"
	"workboard_backend/internal/workflows/repository"
	"workboard_backend/internal/workflows/service"
	"workboard_backend/platform/logger"
	"workboard_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the workflows bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the workflows module with all its dependencies.
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
	return "workflows"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts workflow routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/workflows")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/:id", m.handler.GetByID)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
	group.PUT("/:id/stages", m.handler.ReplaceStages)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
