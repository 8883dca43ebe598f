// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"workboard_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Source Collection Events
// =============================================================================

// The board rebuilds its full snapshot on any of these three events. The
// payloads intentionally carry only the touched entity id: the engine never
// applies deltas, so richer payloads would only invite partial-update bugs.

// OrdersChanged is published after any order mutation commits.
type OrdersChanged struct {
	BaseEvent
	OrderID uuid.UUID `json:"orderId"`
	Source  string    `json:"source"` // "create", "update", "delete", "item_update"
}

func (e OrdersChanged) EventName() string { return "orders.changed" }

// WorkflowsChanged is published after any workflow or stage mutation commits.
type WorkflowsChanged struct {
	BaseEvent
	WorkflowID uuid.UUID `json:"workflowId"`
	Source     string    `json:"source"`
}

func (e WorkflowsChanged) EventName() string { return "workflows.changed" }

// ServicesChanged is published after any catalog service mutation commits,
// including changes to a service's workflow sequence.
type ServicesChanged struct {
	BaseEvent
	ServiceID uuid.UUID `json:"serviceId"`
	Source    string    `json:"source"`
}

func (e ServicesChanged) EventName() string { return "services.changed" }
