package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CatalogService represents one sellable service and its ordered workflow
// sequence. The first element of the sequence is the default workflow for
// items that carry no explicit assignment.
type CatalogService struct {
	ID        uuid.UUID
	Name      string
	Workflows []WorkflowRef
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkflowRef is one element of a service's workflow sequence.
type WorkflowRef struct {
	WorkflowID    uuid.UUID
	SequenceOrder int
}

// CreateParams contains parameters for creating a catalog service.
type CreateParams struct {
	Name      string
	Workflows []WorkflowRef
}

// UpdateParams contains parameters for updating a catalog service.
type UpdateParams struct {
	ID   uuid.UUID
	Name *string
}

// ServiceReader provides read operations for catalog services.
type ServiceReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (CatalogService, error)
	List(ctx context.Context) ([]CatalogService, error)
}

// ServiceWriter provides write operations for catalog services.
type ServiceWriter interface {
	Create(ctx context.Context, params CreateParams) (CatalogService, error)
	Update(ctx context.Context, params UpdateParams) (CatalogService, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetWorkflows(ctx context.Context, serviceID uuid.UUID, refs []WorkflowRef) (CatalogService, error)
}

// Repository combines all catalog repository operations.
type Repository interface {
	ServiceReader
	ServiceWriter
}
