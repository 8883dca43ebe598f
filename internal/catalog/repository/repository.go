package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workboard_backend/platform/apperr"
)

const serviceNotFoundMessage = "catalog service not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a catalog service with its workflow sequence.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (CatalogService, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM services
		WHERE id = $1`

	var svc CatalogService
	err := r.pool.QueryRow(ctx, query, id).Scan(&svc.ID, &svc.Name, &svc.CreatedAt, &svc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CatalogService{}, apperr.NotFound(serviceNotFoundMessage)
		}
		return CatalogService{}, fmt.Errorf("get catalog service by id: %w", err)
	}

	refs, err := r.listWorkflowRefs(ctx, []uuid.UUID{id})
	if err != nil {
		return CatalogService{}, err
	}
	svc.Workflows = refs[id]

	return svc, nil
}

// List retrieves all catalog services with their workflow sequences.
func (r *Repo) List(ctx context.Context) ([]CatalogService, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM services
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list catalog services: %w", err)
	}
	defer rows.Close()

	var services []CatalogService
	for rows.Next() {
		var svc CatalogService
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.CreatedAt, &svc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog service: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog services: %w", err)
	}
	if len(services) == 0 {
		return services, nil
	}

	ids := make([]uuid.UUID, 0, len(services))
	for _, svc := range services {
		ids = append(ids, svc.ID)
	}
	refs, err := r.listWorkflowRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range services {
		services[i].Workflows = refs[services[i].ID]
	}

	return services, nil
}

// Create creates a catalog service and its workflow sequence in one
// transaction.
func (r *Repo) Create(ctx context.Context, params CreateParams) (CatalogService, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return CatalogService{}, fmt.Errorf("create catalog service: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id uuid.UUID
	err = tx.QueryRow(ctx, `INSERT INTO services (name) VALUES ($1) RETURNING id`, params.Name).Scan(&id)
	if err != nil {
		return CatalogService{}, fmt.Errorf("create catalog service: %w", err)
	}

	if err := insertWorkflowRefs(ctx, tx, id, params.Workflows); err != nil {
		return CatalogService{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return CatalogService{}, fmt.Errorf("create catalog service: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Update updates a catalog service. Nil fields keep their current value.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (CatalogService, error) {
	query := `
		UPDATE services SET
			name = COALESCE($2, name),
			updated_at = now()
		WHERE id = $1
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query, params.ID, params.Name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CatalogService{}, apperr.NotFound(serviceNotFoundMessage)
		}
		return CatalogService{}, fmt.Errorf("update catalog service: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a catalog service and, via cascade, its workflow sequence.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete catalog service: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(serviceNotFoundMessage)
	}
	return nil
}

// SetWorkflows replaces a service's workflow sequence.
func (r *Repo) SetWorkflows(ctx context.Context, serviceID uuid.UUID, refs []WorkflowRef) (CatalogService, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return CatalogService{}, fmt.Errorf("set service workflows: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx, `UPDATE services SET updated_at = now() WHERE id = $1`, serviceID)
	if err != nil {
		return CatalogService{}, fmt.Errorf("set service workflows: %w", err)
	}
	if result.RowsAffected() == 0 {
		return CatalogService{}, apperr.NotFound(serviceNotFoundMessage)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM service_workflows WHERE service_id = $1`, serviceID); err != nil {
		return CatalogService{}, fmt.Errorf("set service workflows: %w", err)
	}
	if err := insertWorkflowRefs(ctx, tx, serviceID, refs); err != nil {
		return CatalogService{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return CatalogService{}, fmt.Errorf("set service workflows: %w", err)
	}

	return r.GetByID(ctx, serviceID)
}

func insertWorkflowRefs(ctx context.Context, tx pgx.Tx, serviceID uuid.UUID, refs []WorkflowRef) error {
	query := `
		INSERT INTO service_workflows (service_id, workflow_id, sequence_order)
		VALUES ($1, $2, $3)`

	for _, ref := range refs {
		if _, err := tx.Exec(ctx, query, serviceID, ref.WorkflowID, ref.SequenceOrder); err != nil {
			return fmt.Errorf("insert service workflow: %w", err)
		}
	}
	return nil
}

// listWorkflowRefs loads the workflow sequences of the given services, keyed
// by service id and ordered by sequence_order.
func (r *Repo) listWorkflowRefs(ctx context.Context, serviceIDs []uuid.UUID) (map[uuid.UUID][]WorkflowRef, error) {
	query := `
		SELECT service_id, workflow_id, sequence_order
		FROM service_workflows
		WHERE service_id = ANY($1)
		ORDER BY service_id, sequence_order ASC`

	ids := make([]string, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		ids = append(ids, id.String())
	}

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list service workflows: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]WorkflowRef)
	for rows.Next() {
		var serviceID uuid.UUID
		var ref WorkflowRef
		if err := rows.Scan(&serviceID, &ref.WorkflowID, &ref.SequenceOrder); err != nil {
			return nil, fmt.Errorf("scan service workflow: %w", err)
		}
		result[serviceID] = append(result[serviceID], ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service workflows: %w", err)
	}

	return result, nil
}
