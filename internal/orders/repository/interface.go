package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Order represents a customer order with its nested service items.
type Order struct {
	ID               uuid.UUID
	CustomerName     string
	ExpectedDelivery *time.Time
	Items            []OrderItem
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderItem is one line of an order. Status stores whatever was written:
// a stage id, a legacy free-text label or the pending sentinel. The board
// normalizes it at derivation time; the repository never interprets it.
type OrderItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	Name       string
	IsProduct  bool
	Status     string
	ServiceID  *uuid.UUID
	WorkflowID *uuid.UUID
	History    []StageTransition
	PriceCents int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StageTransition records one historical stage change of an item.
type StageTransition struct {
	StageID string    `json:"stageId"`
	MovedAt time.Time `json:"movedAt"`
}

// CreateParams contains parameters for creating an order.
type CreateParams struct {
	CustomerName     string
	ExpectedDelivery *time.Time
	Items            []ItemParams
}

// ItemParams contains parameters for one order item.
type ItemParams struct {
	Name       string
	IsProduct  bool
	Status     string
	ServiceID  *uuid.UUID
	WorkflowID *uuid.UUID
	PriceCents int64
}

// UpdateParams contains parameters for updating order fields.
type UpdateParams struct {
	ID               uuid.UUID
	CustomerName     *string
	ExpectedDelivery *time.Time
}

// OrderReader provides read operations for orders.
type OrderReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	List(ctx context.Context) ([]Order, error)
}

// OrderWriter provides write operations for orders and their items.
type OrderWriter interface {
	Create(ctx context.Context, params CreateParams) (Order, error)
	Update(ctx context.Context, params UpdateParams) (Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddItem(ctx context.Context, orderID uuid.UUID, params ItemParams) (Order, error)
	DeleteItem(ctx context.Context, orderID, itemID uuid.UUID) error
	UpdateItemStatus(ctx context.Context, orderID, itemID uuid.UUID, status string) (Order, error)
	AssignItemWorkflow(ctx context.Context, orderID, itemID uuid.UUID, workflowID *uuid.UUID) (Order, error)
}

// Repository combines all order repository operations.
type Repository interface {
	OrderReader
	OrderWriter
}
