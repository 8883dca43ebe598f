package service

import (
	"context"
	"sync"

	"workboard_backend/platform/logger"

	"golang.org/x/sync/singleflight"
)

// OrderSource provides the order collection.
type OrderSource interface {
	ListOrders(ctx context.Context) ([]Order, error)
}

// WorkflowSource provides the workflow definitions with stages attached.
type WorkflowSource interface {
	ListWorkflows(ctx context.Context) ([]Workflow, error)
}

// ServiceSource provides the service catalog.
type ServiceSource interface {
	ListServices(ctx context.Context) ([]CatalogService, error)
}

// Engine owns the latest derived snapshot and recomputes it in full whenever
// any source collection changes. Reads are pure functions of the current
// snapshot; a recomputation swaps the snapshot atomically, so duplicate or
// out-of-order change notifications cannot corrupt derived state.
type Engine struct {
	orders    OrderSource
	workflows WorkflowSource
	services  ServiceSource
	log       *logger.Logger

	group singleflight.Group
	mu    sync.RWMutex
	snap  *Snapshot
}

// NewEngine creates an engine over the three sources. The engine starts with
// an empty snapshot; call Refresh before serving reads.
func NewEngine(orders OrderSource, workflows WorkflowSource, services ServiceSource, log *logger.Logger) *Engine {
	return &Engine{
		orders:    orders,
		workflows: workflows,
		services:  services,
		log:       log,
		snap:      NewSnapshot(nil, nil, nil),
	}
}

// Refresh reloads all three collections and swaps in a freshly derived
// snapshot. Concurrent callers share one recomputation; the engine always
// rebuilds from the full current state, never from deltas, so the last
// completed snapshot wins.
func (e *Engine) Refresh(ctx context.Context) error {
	_, err, _ := e.group.Do("refresh", func() (interface{}, error) {
		orders, err := e.orders.ListOrders(ctx)
		if err != nil {
			return nil, err
		}
		workflows, err := e.workflows.ListWorkflows(ctx)
		if err != nil {
			return nil, err
		}
		services, err := e.services.ListServices(ctx)
		if err != nil {
			return nil, err
		}

		snap := NewSnapshot(orders, workflows, services)

		e.mu.Lock()
		e.snap = snap
		e.mu.Unlock()

		if e.log != nil {
			for _, warning := range snap.Warnings {
				e.log.DataQuality("board", warning)
			}
			e.log.Info("board snapshot rebuilt",
				"orders", len(snap.Orders),
				"workflows", len(snap.Workflows),
				"services", len(snap.Services),
				"items", len(snap.Items),
			)
		}
		return nil, nil
	})
	return err
}

// Snapshot returns the current snapshot.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}

// Columns returns the ordered column set for the requested view mode.
func (e *Engine) Columns(activeWorkflow string, filter ItemFilter) []Column {
	return e.Snapshot().Columns(activeWorkflow, filter)
}

// ItemsForColumn returns the column's items, membership-filtered and in
// display order. Items that match no column under the active mode simply do
// not appear; that is expected for data written by paths that bypassed
// normalization, so it is logged at debug level, never raised.
func (e *Engine) ItemsForColumn(activeWorkflow, columnID string, filter ItemFilter) []WorkItem {
	snap := e.Snapshot()

	items := make([]WorkItem, 0)
	for _, item := range snap.Items {
		if !filter.matches(item) {
			continue
		}
		if snap.Matches(item, columnID, activeWorkflow) {
			items = append(items, item)
		}
	}
	snap.SortItems(items)

	if e.log != nil {
		e.log.Debug("column resolved",
			"column", columnID,
			"activeWorkflow", activeWorkflow,
			"items", len(items),
		)
	}
	return items
}

// Items returns the filter-selected derived item set in derivation order.
// Unlike ItemsForColumn this includes items that no column claims.
func (e *Engine) Items(filter ItemFilter) []WorkItem {
	return e.Snapshot().FilteredItems(filter)
}
