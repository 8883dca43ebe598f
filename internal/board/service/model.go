// Package service implements the board derivation engine: it turns the three
// source collections (orders, workflow definitions, service catalog) into a
// kanban view of work items, columns and per-column orderings.
package service

import (
	"time"

	"github.com/google/uuid"
)

// StatusPending is the sentinel status carried by items that have not yet
// entered any workflow stage. The value is kept verbatim from the historical
// data set and must never be renamed.
const StatusPending = "cho_xu_ly"

// ActiveAll selects the all-workflows matrix view.
const ActiveAll = "ALL"

// Sentinel column identifiers. In single-workflow view these two columns
// always trail the stage columns.
const (
	ColumnDone   = "done"
	ColumnCancel = "cancel"
)

// Fixed titles for the sentinel columns.
const (
	titleDone   = "Completed"
	titleCancel = "Cancelled"
)

// Order is an immutable snapshot of one customer order and its nested
// service items, as provided by the order source.
type Order struct {
	ID               uuid.UUID
	CustomerName     string
	ExpectedDelivery *time.Time
	Items            []RawServiceItem
}

// RawServiceItem is one unprocessed line of an order. Status carries
// whatever the source stored: a stage id, a legacy free-text label, the
// pending sentinel, or nothing at all.
type RawServiceItem struct {
	ID          uuid.UUID
	Name        string
	IsProduct   bool
	Status      string
	ServiceID   *uuid.UUID
	WorkflowID  *uuid.UUID
	History     []StageTransition
	PriceCents  int64
	LastUpdated time.Time
}

// StageTransition records one historical stage change of an item.
type StageTransition struct {
	StageID string    `json:"stageId"`
	MovedAt time.Time `json:"movedAt"`
}

// WorkItem is a derived board item: a service item enriched with its order
// context, a resolved workflow and a normalized status. When WorkflowID is
// set, Status is guaranteed to be a stage id of that workflow; otherwise
// Status is the raw source value.
type WorkItem struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	CustomerName     string
	ExpectedDelivery *time.Time
	Name             string
	ServiceID        *uuid.UUID
	WorkflowID       *uuid.UUID
	Status           string
	History          []StageTransition
	PriceCents       int64
	LastUpdated      time.Time
}

// Workflow is an ordered template of stages a service item progresses
// through.
type Workflow struct {
	ID           uuid.UUID
	Label        string
	Department   *string
	ServiceTypes []string
	Stages       []Stage
	Members      []uuid.UUID
}

// Stage is one step of a workflow. Order defines the display rank and the
// entry-stage fallback. Stage ids are globally unique across workflows, so
// they double as column identifiers.
type Stage struct {
	ID      uuid.UUID
	Name    string
	Order   int
	Tasks   []string
	Members []uuid.UUID
}

// CatalogService maps one sellable service to the ordered workflow sequence
// applicable to it. Index 0 of the sequence is the default workflow used
// when an item carries no explicit assignment.
type CatalogService struct {
	ID        uuid.UUID
	Name      string
	Workflows []WorkflowRef
}

// WorkflowRef is one element of a catalog service's workflow sequence.
type WorkflowRef struct {
	WorkflowID uuid.UUID
	Order      int
}

// Column is one derived board column. ID is a workflow id (matrix view), a
// stage id (stage view) or one of the sentinel ids.
type Column struct {
	ID    string
	Title string
	Order int
}

// ItemFilter narrows the board to a subset of orders. The zero value selects
// every order.
type ItemFilter struct {
	OrderIDs []uuid.UUID
}

func (f ItemFilter) matches(item WorkItem) bool {
	if len(f.OrderIDs) == 0 {
		return true
	}
	for _, id := range f.OrderIDs {
		if item.OrderID == id {
			return true
		}
	}
	return false
}
