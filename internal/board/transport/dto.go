package transport

import (
	"time"

	"workboard_backend/internal/board/service"

	"github.com/google/uuid"
)

// BoardQuery carries the common query parameters of the board read endpoints.
// ActiveWorkflow selects the view mode; OrderIDs narrows the board to a
// subset of orders.
type BoardQuery struct {
	ActiveWorkflow string   `form:"activeWorkflow"`
	OrderIDs       []string `form:"orderIds"`
}

// ColumnResponse represents one board column in API responses.
type ColumnResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

// ColumnListResponse wraps the ordered column set of one view.
type ColumnListResponse struct {
	ActiveWorkflow string           `json:"activeWorkflow"`
	Columns        []ColumnResponse `json:"columns"`
	Total          int              `json:"total"`
}

// StageTransitionResponse is one history entry of a work item.
type StageTransitionResponse struct {
	StageID string    `json:"stageId"`
	MovedAt time.Time `json:"movedAt"`
}

// WorkItemResponse represents one derived board item in API responses.
type WorkItemResponse struct {
	ID               uuid.UUID                 `json:"id"`
	OrderID          uuid.UUID                 `json:"orderId"`
	CustomerName     string                    `json:"customerName"`
	ExpectedDelivery *time.Time                `json:"expectedDelivery,omitempty"`
	Name             string                    `json:"name"`
	ServiceID        *uuid.UUID                `json:"serviceId,omitempty"`
	WorkflowID       *uuid.UUID                `json:"workflowId,omitempty"`
	Status           string                    `json:"status"`
	History          []StageTransitionResponse `json:"history,omitempty"`
	PriceCents       int64                     `json:"priceCents"`
	LastUpdated      time.Time                 `json:"lastUpdated"`
}

// ItemListResponse wraps a list of work items.
type ItemListResponse struct {
	Items []WorkItemResponse `json:"items"`
	Total int                `json:"total"`
}

// RefreshResponse acknowledges a manual refresh.
type RefreshResponse struct {
	Status string `json:"status"`
}

// ToColumnList maps engine columns to the response shape.
func ToColumnList(activeWorkflow string, columns []service.Column) ColumnListResponse {
	out := make([]ColumnResponse, 0, len(columns))
	for _, col := range columns {
		out = append(out, ColumnResponse{ID: col.ID, Title: col.Title, Order: col.Order})
	}
	return ColumnListResponse{ActiveWorkflow: activeWorkflow, Columns: out, Total: len(out)}
}

// ToItemList maps engine items to the response shape.
func ToItemList(items []service.WorkItem) ItemListResponse {
	out := make([]WorkItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toWorkItem(item))
	}
	return ItemListResponse{Items: out, Total: len(out)}
}

func toWorkItem(item service.WorkItem) WorkItemResponse {
	var history []StageTransitionResponse
	for _, tr := range item.History {
		history = append(history, StageTransitionResponse{StageID: tr.StageID, MovedAt: tr.MovedAt})
	}
	return WorkItemResponse{
		ID:               item.ID,
		OrderID:          item.OrderID,
		CustomerName:     item.CustomerName,
		ExpectedDelivery: item.ExpectedDelivery,
		Name:             item.Name,
		ServiceID:        item.ServiceID,
		WorkflowID:       item.WorkflowID,
		Status:           item.Status,
		History:          history,
		PriceCents:       item.PriceCents,
		LastUpdated:      item.LastUpdated,
	}
}
