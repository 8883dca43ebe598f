package transport

import (
	"time"

	"github.com/google/uuid"
)

// StageRequest describes one stage in a create or replace request.
type StageRequest struct {
	Name    string      `json:"name" validate:"required,min=1,max=100"`
	Order   int         `json:"order" validate:"min=0"`
	Tasks   []string    `json:"tasks,omitempty" validate:"omitempty,dive,min=1,max=200"`
	Members []uuid.UUID `json:"members,omitempty"`
}

// CreateWorkflowRequest contains data for creating a workflow.
type CreateWorkflowRequest struct {
	Label        string         `json:"label" validate:"required,min=1,max=100"`
	Department   *string        `json:"department,omitempty" validate:"omitempty,max=100"`
	ServiceTypes []string       `json:"serviceTypes,omitempty" validate:"omitempty,dive,min=1,max=100"`
	Members      []uuid.UUID    `json:"members,omitempty"`
	Stages       []StageRequest `json:"stages" validate:"required,min=1,dive"`
}

// UpdateWorkflowRequest contains data for updating workflow metadata.
type UpdateWorkflowRequest struct {
	Label        *string     `json:"label,omitempty" validate:"omitempty,min=1,max=100"`
	Department   *string     `json:"department,omitempty" validate:"omitempty,max=100"`
	ServiceTypes []string    `json:"serviceTypes,omitempty" validate:"omitempty,dive,min=1,max=100"`
	Members      []uuid.UUID `json:"members,omitempty"`
}

// ReplaceStagesRequest contains the full new stage list of a workflow.
type ReplaceStagesRequest struct {
	Stages []StageRequest `json:"stages" validate:"required,min=1,dive"`
}

// StageResponse represents a workflow stage in API responses.
type StageResponse struct {
	ID      uuid.UUID   `json:"id"`
	Name    string      `json:"name"`
	Order   int         `json:"order"`
	Tasks   []string    `json:"tasks,omitempty"`
	Members []uuid.UUID `json:"members,omitempty"`
}

// WorkflowResponse represents a workflow in API responses.
type WorkflowResponse struct {
	ID           uuid.UUID       `json:"id"`
	Label        string          `json:"label"`
	Department   *string         `json:"department,omitempty"`
	ServiceTypes []string        `json:"serviceTypes,omitempty"`
	Members      []uuid.UUID     `json:"members,omitempty"`
	Stages       []StageResponse `json:"stages"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// WorkflowListResponse wraps a list of workflows.
type WorkflowListResponse struct {
	Items []WorkflowResponse `json:"items"`
	Total int                `json:"total"`
}
