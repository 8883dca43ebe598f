package service

import (
	"context"

	"github.com/google/uuid"

	"workboard_backend/internal/events"
	"workboard_backend/internal/workflows/repository"
	"workboard_backend/internal/workflows/transport"
	"workboard_backend/platform/logger"
)

// Service provides business logic for workflow definitions. Every mutation
// publishes WorkflowsChanged so the board rebuilds its snapshot.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new workflows service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// GetByID retrieves a workflow with its stages.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.WorkflowResponse, error) {
	wf, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.WorkflowResponse{}, err
	}
	return toResponse(wf), nil
}

// List retrieves all workflows with their stages.
func (s *Service) List(ctx context.Context) (transport.WorkflowListResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return transport.WorkflowListResponse{}, err
	}
	return toListResponse(items), nil
}

// Create creates a workflow with its stages.
func (s *Service) Create(ctx context.Context, req transport.CreateWorkflowRequest) (transport.WorkflowResponse, error) {
	params := repository.CreateParams{
		Label:        req.Label,
		Department:   req.Department,
		ServiceTypes: req.ServiceTypes,
		Members:      req.Members,
		Stages:       toStageParams(req.Stages),
	}

	wf, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.WorkflowResponse{}, err
	}

	s.log.Info("workflow created", "id", wf.ID, "label", wf.Label, "stages", len(wf.Stages))
	s.publishChanged(ctx, wf.ID, "create")

	return toResponse(wf), nil
}

// Update updates workflow metadata.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateWorkflowRequest) (transport.WorkflowResponse, error) {
	params := repository.UpdateParams{
		ID:           id,
		Label:        req.Label,
		Department:   req.Department,
		ServiceTypes: req.ServiceTypes,
		Members:      req.Members,
	}

	wf, err := s.repo.Update(ctx, params)
	if err != nil {
		return transport.WorkflowResponse{}, err
	}

	s.log.Info("workflow updated", "id", wf.ID, "label", wf.Label)
	s.publishChanged(ctx, wf.ID, "update")

	return toResponse(wf), nil
}

// Delete removes a workflow and its stages.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("workflow deleted", "id", id)
	s.publishChanged(ctx, id, "delete")

	return nil
}

// ReplaceStages swaps the workflow's stage list for the given one.
func (s *Service) ReplaceStages(ctx context.Context, id uuid.UUID, req transport.ReplaceStagesRequest) (transport.WorkflowResponse, error) {
	wf, err := s.repo.ReplaceStages(ctx, id, toStageParams(req.Stages))
	if err != nil {
		return transport.WorkflowResponse{}, err
	}

	s.log.Info("workflow stages replaced", "id", wf.ID, "stages", len(wf.Stages))
	s.publishChanged(ctx, wf.ID, "stages")

	return toResponse(wf), nil
}

func (s *Service) publishChanged(ctx context.Context, id uuid.UUID, source string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.WorkflowsChanged{
		BaseEvent:  events.NewBaseEvent(),
		WorkflowID: id,
		Source:     source,
	})
}

func toStageParams(stages []transport.StageRequest) []repository.StageParams {
	params := make([]repository.StageParams, 0, len(stages))
	for _, stage := range stages {
		params = append(params, repository.StageParams{
			Name:       stage.Name,
			StageOrder: stage.Order,
			Tasks:      stage.Tasks,
			Members:    stage.Members,
		})
	}
	return params
}

func toResponse(wf repository.Workflow) transport.WorkflowResponse {
	stages := make([]transport.StageResponse, 0, len(wf.Stages))
	for _, stage := range wf.Stages {
		stages = append(stages, transport.StageResponse{
			ID:      stage.ID,
			Name:    stage.Name,
			Order:   stage.StageOrder,
			Tasks:   stage.Tasks,
			Members: stage.Members,
		})
	}
	return transport.WorkflowResponse{
		ID:           wf.ID,
		Label:        wf.Label,
		Department:   wf.Department,
		ServiceTypes: wf.ServiceTypes,
		Members:      wf.Members,
		Stages:       stages,
		CreatedAt:    wf.CreatedAt,
		UpdatedAt:    wf.UpdatedAt,
	}
}

func toListResponse(items []repository.Workflow) transport.WorkflowListResponse {
	out := make([]transport.WorkflowResponse, 0, len(items))
	for _, wf := range items {
		out = append(out, toResponse(wf))
	}
	return transport.WorkflowListResponse{Items: out, Total: len(out)}
}
