package service

import (
	"context"

	"github.com/google/uuid"

	"workboard_backend/internal/catalog/repository"
	"workboard_backend/internal/catalog/transport"
	"workboard_backend/internal/events"
	"workboard_backend/platform/logger"
)

// Service provides business logic for the service catalog. Every mutation
// publishes ServicesChanged so the board rebuilds its snapshot.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// GetByID retrieves a catalog service with its workflow sequence.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.ServiceResponse, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	return toResponse(svc), nil
}

// List retrieves all catalog services.
func (s *Service) List(ctx context.Context) (transport.ServiceListResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return transport.ServiceListResponse{}, err
	}

	out := make([]transport.ServiceResponse, 0, len(items))
	for _, svc := range items {
		out = append(out, toResponse(svc))
	}
	return transport.ServiceListResponse{Items: out, Total: len(out)}, nil
}

// Create creates a catalog service with its workflow sequence.
func (s *Service) Create(ctx context.Context, req transport.CreateServiceRequest) (transport.ServiceResponse, error) {
	svc, err := s.repo.Create(ctx, repository.CreateParams{
		Name:      req.Name,
		Workflows: toWorkflowRefs(req.Workflows),
	})
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	s.log.Info("catalog service created", "id", svc.ID, "name", svc.Name)
	s.publishChanged(ctx, svc.ID, "create")

	return toResponse(svc), nil
}

// Update updates a catalog service.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateServiceRequest) (transport.ServiceResponse, error) {
	svc, err := s.repo.Update(ctx, repository.UpdateParams{ID: id, Name: req.Name})
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	s.log.Info("catalog service updated", "id", svc.ID, "name", svc.Name)
	s.publishChanged(ctx, svc.ID, "update")

	return toResponse(svc), nil
}

// Delete removes a catalog service.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("catalog service deleted", "id", id)
	s.publishChanged(ctx, id, "delete")

	return nil
}

// SetWorkflows replaces a service's workflow sequence.
func (s *Service) SetWorkflows(ctx context.Context, id uuid.UUID, req transport.SetWorkflowsRequest) (transport.ServiceResponse, error) {
	svc, err := s.repo.SetWorkflows(ctx, id, toWorkflowRefs(req.Workflows))
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	s.log.Info("catalog service workflows set", "id", svc.ID, "workflows", len(svc.Workflows))
	s.publishChanged(ctx, svc.ID, "workflows")

	return toResponse(svc), nil
}

func (s *Service) publishChanged(ctx context.Context, id uuid.UUID, source string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.ServicesChanged{
		BaseEvent: events.NewBaseEvent(),
		ServiceID: id,
		Source:    source,
	})
}

func toWorkflowRefs(refs []transport.WorkflowRefRequest) []repository.WorkflowRef {
	out := make([]repository.WorkflowRef, 0, len(refs))
	for _, ref := range refs {
		out = append(out, repository.WorkflowRef{
			WorkflowID:    ref.WorkflowID,
			SequenceOrder: ref.Order,
		})
	}
	return out
}

func toResponse(svc repository.CatalogService) transport.ServiceResponse {
	refs := make([]transport.WorkflowRefResponse, 0, len(svc.Workflows))
	for _, ref := range svc.Workflows {
		refs = append(refs, transport.WorkflowRefResponse{
			WorkflowID: ref.WorkflowID,
			Order:      ref.SequenceOrder,
		})
	}
	return transport.ServiceResponse{
		ID:        svc.ID,
		Name:      svc.Name,
		Workflows: refs,
		CreatedAt: svc.CreatedAt,
		UpdatedAt: svc.UpdatedAt,
	}
}
