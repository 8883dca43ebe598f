package transport

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowRefRequest is one element of a service's workflow sequence.
type WorkflowRefRequest struct {
	WorkflowID uuid.UUID `json:"workflowId" validate:"required"`
	Order      int       `json:"order" validate:"min=0"`
}

// CreateServiceRequest contains data for creating a catalog service.
type CreateServiceRequest struct {
	Name      string               `json:"name" validate:"required,min=1,max=100"`
	Workflows []WorkflowRefRequest `json:"workflows,omitempty" validate:"omitempty,dive"`
}

// UpdateServiceRequest contains data for updating a catalog service.
type UpdateServiceRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

// SetWorkflowsRequest contains the full new workflow sequence of a service.
type SetWorkflowsRequest struct {
	Workflows []WorkflowRefRequest `json:"workflows" validate:"required,dive"`
}

// WorkflowRefResponse is one sequence element in API responses.
type WorkflowRefResponse struct {
	WorkflowID uuid.UUID `json:"workflowId"`
	Order      int       `json:"order"`
}

// ServiceResponse represents a catalog service in API responses.
type ServiceResponse struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	Workflows []WorkflowRefResponse `json:"workflows"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// ServiceListResponse wraps a list of catalog services.
type ServiceListResponse struct {
	Items []ServiceResponse `json:"items"`
	Total int               `json:"total"`
}
