package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workboard_backend/platform/apperr"
)

const (
	orderNotFoundMessage = "order not found"
	itemNotFoundMessage  = "order item not found"
)

// statusPending mirrors the historical sentinel used for items that have not
// entered any stage yet. Empty statuses are stored as this value.
const statusPending = "cho_xu_ly"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new orders repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves an order with its items.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Order, error) {
	query := `
		SELECT id, customer_name, expected_delivery, created_at, updated_at
		FROM orders
		WHERE id = $1`

	var order Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.CustomerName, &order.ExpectedDelivery,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, apperr.NotFound(orderNotFoundMessage)
		}
		return Order{}, fmt.Errorf("get order by id: %w", err)
	}

	items, err := r.listItems(ctx, []uuid.UUID{id})
	if err != nil {
		return Order{}, err
	}
	order.Items = items[id]

	return order, nil
}

// List retrieves all orders with their items, newest first.
func (r *Repo) List(ctx context.Context) ([]Order, error) {
	query := `
		SELECT id, customer_name, expected_delivery, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var order Order
		err := rows.Scan(
			&order.ID, &order.CustomerName, &order.ExpectedDelivery,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	items, err := r.listItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

// Create creates an order and its items in one transaction.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("create order: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO orders (customer_name, expected_delivery)
		VALUES ($1, $2)
		RETURNING id`

	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, params.CustomerName, params.ExpectedDelivery).Scan(&id); err != nil {
		return Order{}, fmt.Errorf("create order: %w", err)
	}

	for _, item := range params.Items {
		if err := insertItem(ctx, tx, id, item); err != nil {
			return Order{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, fmt.Errorf("create order: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Update updates order fields. Nil fields keep their current value.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Order, error) {
	query := `
		UPDATE orders SET
			customer_name = COALESCE($2, customer_name),
			expected_delivery = COALESCE($3, expected_delivery),
			updated_at = now()
		WHERE id = $1
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query, params.ID, params.CustomerName, params.ExpectedDelivery).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, apperr.NotFound(orderNotFoundMessage)
		}
		return Order{}, fmt.Errorf("update order: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes an order and, via cascade, its items.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(orderNotFoundMessage)
	}
	return nil
}

// AddItem appends one item to an existing order.
func (r *Repo) AddItem(ctx context.Context, orderID uuid.UUID, params ItemParams) (Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("add order item: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx, `UPDATE orders SET updated_at = now() WHERE id = $1`, orderID)
	if err != nil {
		return Order{}, fmt.Errorf("add order item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return Order{}, apperr.NotFound(orderNotFoundMessage)
	}

	if err := insertItem(ctx, tx, orderID, params); err != nil {
		return Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, fmt.Errorf("add order item: %w", err)
	}

	return r.GetByID(ctx, orderID)
}

// DeleteItem removes one item from an order.
func (r *Repo) DeleteItem(ctx context.Context, orderID, itemID uuid.UUID) error {
	query := `DELETE FROM order_items WHERE id = $1 AND order_id = $2`

	result, err := r.pool.Exec(ctx, query, itemID, orderID)
	if err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(itemNotFoundMessage)
	}
	return nil
}

// UpdateItemStatus moves an item to a new status and appends the transition
// to its history. The status is stored verbatim; normalization happens on
// the board side.
func (r *Repo) UpdateItemStatus(ctx context.Context, orderID, itemID uuid.UUID, status string) (Order, error) {
	if status == "" {
		status = statusPending
	}

	transition, err := json.Marshal([]StageTransition{{StageID: status, MovedAt: time.Now().UTC()}})
	if err != nil {
		return Order{}, fmt.Errorf("update item status: %w", err)
	}

	query := `
		UPDATE order_items SET
			status = $3,
			history = history || $4::jsonb,
			updated_at = now()
		WHERE id = $2 AND order_id = $1`

	result, err := r.pool.Exec(ctx, query, orderID, itemID, status, transition)
	if err != nil {
		return Order{}, fmt.Errorf("update item status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return Order{}, apperr.NotFound(itemNotFoundMessage)
	}

	return r.GetByID(ctx, orderID)
}

// AssignItemWorkflow sets or clears an item's explicit workflow assignment.
func (r *Repo) AssignItemWorkflow(ctx context.Context, orderID, itemID uuid.UUID, workflowID *uuid.UUID) (Order, error) {
	query := `
		UPDATE order_items SET
			workflow_id = $3,
			updated_at = now()
		WHERE id = $2 AND order_id = $1`

	result, err := r.pool.Exec(ctx, query, orderID, itemID, workflowID)
	if err != nil {
		return Order{}, fmt.Errorf("assign item workflow: %w", err)
	}
	if result.RowsAffected() == 0 {
		return Order{}, apperr.NotFound(itemNotFoundMessage)
	}

	return r.GetByID(ctx, orderID)
}

func insertItem(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, params ItemParams) error {
	status := params.Status
	if status == "" {
		status = statusPending
	}

	query := `
		INSERT INTO order_items (order_id, name, is_product, status, service_id, workflow_id, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		orderID, params.Name, params.IsProduct, status,
		params.ServiceID, params.WorkflowID, params.PriceCents,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// listItems loads the items of the given orders, keyed by order id in
// insertion order.
func (r *Repo) listItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]OrderItem, error) {
	query := `
		SELECT id, order_id, name, is_product, status, service_id, workflow_id, history, price_cents, created_at, updated_at
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, created_at ASC`

	ids := make([]string, 0, len(orderIDs))
	for _, id := range orderIDs {
		ids = append(ids, id.String())
	}

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]OrderItem)
	for rows.Next() {
		var item OrderItem
		var history []byte
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.Name, &item.IsProduct, &item.Status,
			&item.ServiceID, &item.WorkflowID, &history, &item.PriceCents,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if len(history) > 0 {
			if err := json.Unmarshal(history, &item.History); err != nil {
				return nil, fmt.Errorf("decode item history: %w", err)
			}
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return result, nil
}
