package transport

import (
	"time"

	"github.com/google/uuid"
)

// ItemRequest describes one order item in a create or add request. Status is
// optional; empty means the item waits in the pending state.
type ItemRequest struct {
	Name       string     `json:"name" validate:"required,min=1,max=200"`
	IsProduct  bool       `json:"isProduct"`
	Status     string     `json:"status,omitempty" validate:"omitempty,max=200"`
	ServiceID  *uuid.UUID `json:"serviceId,omitempty"`
	WorkflowID *uuid.UUID `json:"workflowId,omitempty"`
	PriceCents int64      `json:"priceCents" validate:"min=0"`
}

// CreateOrderRequest contains data for creating an order.
type CreateOrderRequest struct {
	CustomerName     string        `json:"customerName" validate:"required,min=1,max=200"`
	ExpectedDelivery *time.Time    `json:"expectedDelivery,omitempty"`
	Items            []ItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

// UpdateOrderRequest contains data for updating order fields.
type UpdateOrderRequest struct {
	CustomerName     *string    `json:"customerName,omitempty" validate:"omitempty,min=1,max=200"`
	ExpectedDelivery *time.Time `json:"expectedDelivery,omitempty"`
}

// UpdateItemStatusRequest moves an item to a new status. The value can be a
// stage id or a display label; it is stored verbatim.
type UpdateItemStatusRequest struct {
	Status string `json:"status" validate:"max=200"`
}

// AssignWorkflowRequest sets or clears an item's explicit workflow.
type AssignWorkflowRequest struct {
	WorkflowID *uuid.UUID `json:"workflowId"`
}

// StageTransitionResponse is one history entry of an item.
type StageTransitionResponse struct {
	StageID string    `json:"stageId"`
	MovedAt time.Time `json:"movedAt"`
}

// ItemResponse represents an order item in API responses.
type ItemResponse struct {
	ID         uuid.UUID                 `json:"id"`
	Name       string                    `json:"name"`
	IsProduct  bool                      `json:"isProduct"`
	Status     string                    `json:"status"`
	ServiceID  *uuid.UUID                `json:"serviceId,omitempty"`
	WorkflowID *uuid.UUID                `json:"workflowId,omitempty"`
	History    []StageTransitionResponse `json:"history,omitempty"`
	PriceCents int64                     `json:"priceCents"`
	UpdatedAt  time.Time                 `json:"updatedAt"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID               uuid.UUID      `json:"id"`
	CustomerName     string         `json:"customerName"`
	ExpectedDelivery *time.Time     `json:"expectedDelivery,omitempty"`
	Items            []ItemResponse `json:"items"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// OrderListResponse wraps a list of orders.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int             `json:"total"`
}
