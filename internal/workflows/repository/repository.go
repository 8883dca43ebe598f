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

const workflowNotFoundMessage = "workflow not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new workflows repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a workflow with its stages.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Workflow, error) {
	query := `
		SELECT id, label, department, service_types, members, created_at, updated_at
		FROM workflows
		WHERE id = $1`

	var wf Workflow
	var members []string

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&wf.ID, &wf.Label, &wf.Department, &wf.ServiceTypes, &members,
		&wf.CreatedAt, &wf.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Workflow{}, apperr.NotFound(workflowNotFoundMessage)
		}
		return Workflow{}, fmt.Errorf("get workflow by id: %w", err)
	}
	wf.Members, err = parseUUIDs(members)
	if err != nil {
		return Workflow{}, fmt.Errorf("get workflow by id: %w", err)
	}

	stages, err := r.listStages(ctx, []uuid.UUID{id})
	if err != nil {
		return Workflow{}, err
	}
	wf.Stages = stages[id]

	return wf, nil
}

// List retrieves all workflows with their stages.
func (r *Repo) List(ctx context.Context) ([]Workflow, error) {
	query := `
		SELECT id, label, department, service_types, members, created_at, updated_at
		FROM workflows
		ORDER BY label ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	defer rows.Close()

	workflows, err := scanWorkflows(rows)
	if err != nil {
		return nil, err
	}
	if len(workflows) == 0 {
		return workflows, nil
	}

	ids := make([]uuid.UUID, 0, len(workflows))
	for _, wf := range workflows {
		ids = append(ids, wf.ID)
	}
	stages, err := r.listStages(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range workflows {
		workflows[i].Stages = stages[workflows[i].ID]
	}

	return workflows, nil
}

// Exists checks if a workflow exists by ID.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM workflows WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check workflow exists: %w", err)
	}
	return exists, nil
}

// Create creates a workflow and its stages in one transaction.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Workflow, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Workflow{}, fmt.Errorf("create workflow: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO workflows (label, department, service_types, members)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id uuid.UUID
	err = tx.QueryRow(ctx, query,
		params.Label, params.Department, params.ServiceTypes, uuidStrings(params.Members),
	).Scan(&id)
	if err != nil {
		return Workflow{}, fmt.Errorf("create workflow: %w", err)
	}

	if err := insertStages(ctx, tx, id, params.Stages); err != nil {
		return Workflow{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Workflow{}, fmt.Errorf("create workflow: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Update updates workflow metadata. Nil fields keep their current value.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Workflow, error) {
	query := `
		UPDATE workflows SET
			label = COALESCE($2, label),
			department = COALESCE($3, department),
			service_types = COALESCE($4, service_types),
			members = COALESCE($5, members),
			updated_at = now()
		WHERE id = $1
		RETURNING id`

	var members []string
	if params.Members != nil {
		members = uuidStrings(params.Members)
	}

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		params.ID, params.Label, params.Department, params.ServiceTypes, members,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Workflow{}, apperr.NotFound(workflowNotFoundMessage)
		}
		return Workflow{}, fmt.Errorf("update workflow: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a workflow and, via cascade, its stages.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM workflows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workflow: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(workflowNotFoundMessage)
	}
	return nil
}

// ReplaceStages swaps a workflow's stage list for the given one. Existing
// stage ids are not preserved; items pointing at dropped stages fall back to
// the entry stage on the next board derivation.
func (r *Repo) ReplaceStages(ctx context.Context, workflowID uuid.UUID, stages []StageParams) (Workflow, error) {
	exists, err := r.Exists(ctx, workflowID)
	if err != nil {
		return Workflow{}, err
	}
	if !exists {
		return Workflow{}, apperr.NotFound(workflowNotFoundMessage)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Workflow{}, fmt.Errorf("replace stages: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM workflow_stages WHERE workflow_id = $1`, workflowID); err != nil {
		return Workflow{}, fmt.Errorf("replace stages: %w", err)
	}
	if err := insertStages(ctx, tx, workflowID, stages); err != nil {
		return Workflow{}, err
	}
	if _, err := tx.Exec(ctx, `UPDATE workflows SET updated_at = now() WHERE id = $1`, workflowID); err != nil {
		return Workflow{}, fmt.Errorf("replace stages: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Workflow{}, fmt.Errorf("replace stages: %w", err)
	}

	return r.GetByID(ctx, workflowID)
}

func insertStages(ctx context.Context, tx pgx.Tx, workflowID uuid.UUID, stages []StageParams) error {
	query := `
		INSERT INTO workflow_stages (workflow_id, name, stage_order, tasks, members)
		VALUES ($1, $2, $3, $4, $5)`

	for _, stage := range stages {
		_, err := tx.Exec(ctx, query,
			workflowID, stage.Name, stage.StageOrder, stage.Tasks, uuidStrings(stage.Members),
		)
		if err != nil {
			return fmt.Errorf("insert workflow stage: %w", err)
		}
	}
	return nil
}

// listStages loads the stages of the given workflows, keyed by workflow id
// and ordered by stage_order.
func (r *Repo) listStages(ctx context.Context, workflowIDs []uuid.UUID) (map[uuid.UUID][]Stage, error) {
	query := `
		SELECT id, workflow_id, name, stage_order, tasks, members
		FROM workflow_stages
		WHERE workflow_id = ANY($1)
		ORDER BY workflow_id, stage_order ASC`

	rows, err := r.pool.Query(ctx, query, uuidStrings(workflowIDs))
	if err != nil {
		return nil, fmt.Errorf("list workflow stages: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]Stage)
	for rows.Next() {
		var stage Stage
		var members []string
		if err := rows.Scan(&stage.ID, &stage.WorkflowID, &stage.Name, &stage.StageOrder, &stage.Tasks, &members); err != nil {
			return nil, fmt.Errorf("scan workflow stage: %w", err)
		}
		stage.Members, err = parseUUIDs(members)
		if err != nil {
			return nil, fmt.Errorf("scan workflow stage: %w", err)
		}
		result[stage.WorkflowID] = append(result[stage.WorkflowID], stage)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workflow stages: %w", err)
	}

	return result, nil
}

func scanWorkflows(rows pgx.Rows) ([]Workflow, error) {
	var results []Workflow

	for rows.Next() {
		var wf Workflow
		var members []string

		err := rows.Scan(
			&wf.ID, &wf.Label, &wf.Department, &wf.ServiceTypes, &members,
			&wf.CreatedAt, &wf.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan workflow: %w", err)
		}
		wf.Members, err = parseUUIDs(members)
		if err != nil {
			return nil, fmt.Errorf("scan workflow: %w", err)
		}

		results = append(results, wf)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workflows: %w", err)
	}

	return results, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
