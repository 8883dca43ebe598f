package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Workflow represents a workflow definition with its ordered stages attached.
type Workflow struct {
	ID           uuid.UUID
	Label        string
	Department   *string
	ServiceTypes []string
	Members      []uuid.UUID
	Stages       []Stage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Stage represents one step of a workflow. StageOrder defines the display
// rank and the entry-stage fallback.
type Stage struct {
	ID         uuid.UUID
	WorkflowID uuid.UUID
	Name       string
	StageOrder int
	Tasks      []string
	Members    []uuid.UUID
}

// CreateParams contains parameters for creating a workflow.
type CreateParams struct {
	Label        string
	Department   *string
	ServiceTypes []string
	Members      []uuid.UUID
	Stages       []StageParams
}

// StageParams contains parameters for one stage of a workflow.
type StageParams struct {
	Name       string
	StageOrder int
	Tasks      []string
	Members    []uuid.UUID
}

// UpdateParams contains parameters for updating workflow metadata.
type UpdateParams struct {
	ID           uuid.UUID
	Label        *string
	Department   *string
	ServiceTypes []string
	Members      []uuid.UUID
}

// WorkflowReader provides read operations for workflows.
type WorkflowReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Workflow, error)
	List(ctx context.Context) ([]Workflow, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// WorkflowWriter provides write operations for workflows.
type WorkflowWriter interface {
	Create(ctx context.Context, params CreateParams) (Workflow, error)
	Update(ctx context.Context, params UpdateParams) (Workflow, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceStages(ctx context.Context, workflowID uuid.UUID, stages []StageParams) (Workflow, error)
}

// Repository combines all workflow repository operations.
type Repository interface {
	WorkflowReader
	WorkflowWriter
}
