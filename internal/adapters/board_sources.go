// Package adapters contains anti-corruption adapters between bounded
// contexts. Each adapter implements an interface owned by the consuming
// domain and translates into it from another domain's types.
package adapters

import (
	"context"

	boardsvc "workboard_backend/internal/board/service"
	catalogrepo "workboard_backend/internal/catalog/repository"
	ordersrepo "workboard_backend/internal/orders/repository"
	workflowsrepo "workboard_backend/internal/workflows/repository"
)

// BoardOrderSource adapts the orders repository to the board engine's
// OrderSource interface.
type BoardOrderSource struct {
	repo ordersrepo.OrderReader
}

// NewBoardOrderSource creates an adapter over the orders repository.
func NewBoardOrderSource(repo ordersrepo.OrderReader) *BoardOrderSource {
	return &BoardOrderSource{repo: repo}
}

// ListOrders loads all orders and translates them into the board's model.
func (a *BoardOrderSource) ListOrders(ctx context.Context) ([]boardsvc.Order, error) {
	orders, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]boardsvc.Order, 0, len(orders))
	for _, order := range orders {
		items := make([]boardsvc.RawServiceItem, 0, len(order.Items))
		for _, item := range order.Items {
			var history []boardsvc.StageTransition
			for _, tr := range item.History {
				history = append(history, boardsvc.StageTransition{StageID: tr.StageID, MovedAt: tr.MovedAt})
			}
			items = append(items, boardsvc.RawServiceItem{
				ID:          item.ID,
				Name:        item.Name,
				IsProduct:   item.IsProduct,
				Status:      item.Status,
				ServiceID:   item.ServiceID,
				WorkflowID:  item.WorkflowID,
				History:     history,
				PriceCents:  item.PriceCents,
				LastUpdated: item.UpdatedAt,
			})
		}
		out = append(out, boardsvc.Order{
			ID:               order.ID,
			CustomerName:     order.CustomerName,
			ExpectedDelivery: order.ExpectedDelivery,
			Items:            items,
		})
	}
	return out, nil
}

// BoardWorkflowSource adapts the workflows repository to the board engine's
// WorkflowSource interface.
type BoardWorkflowSource struct {
	repo workflowsrepo.WorkflowReader
}

// NewBoardWorkflowSource creates an adapter over the workflows repository.
func NewBoardWorkflowSource(repo workflowsrepo.WorkflowReader) *BoardWorkflowSource {
	return &BoardWorkflowSource{repo: repo}
}

// ListWorkflows loads all workflow definitions and translates them into the
// board's model.
func (a *BoardWorkflowSource) ListWorkflows(ctx context.Context) ([]boardsvc.Workflow, error) {
	workflows, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]boardsvc.Workflow, 0, len(workflows))
	for _, wf := range workflows {
		stages := make([]boardsvc.Stage, 0, len(wf.Stages))
		for _, stage := range wf.Stages {
			stages = append(stages, boardsvc.Stage{
				ID:      stage.ID,
				Name:    stage.Name,
				Order:   stage.StageOrder,
				Tasks:   stage.Tasks,
				Members: stage.Members,
			})
		}
		out = append(out, boardsvc.Workflow{
			ID:           wf.ID,
			Label:        wf.Label,
			Department:   wf.Department,
			ServiceTypes: wf.ServiceTypes,
			Stages:       stages,
			Members:      wf.Members,
		})
	}
	return out, nil
}

// BoardServiceSource adapts the catalog repository to the board engine's
// ServiceSource interface.
type BoardServiceSource struct {
	repo catalogrepo.ServiceReader
}

// NewBoardServiceSource creates an adapter over the catalog repository.
func NewBoardServiceSource(repo catalogrepo.ServiceReader) *BoardServiceSource {
	return &BoardServiceSource{repo: repo}
}

// ListServices loads the service catalog and translates it into the board's
// model.
func (a *BoardServiceSource) ListServices(ctx context.Context) ([]boardsvc.CatalogService, error) {
	services, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]boardsvc.CatalogService, 0, len(services))
	for _, svc := range services {
		refs := make([]boardsvc.WorkflowRef, 0, len(svc.Workflows))
		for _, ref := range svc.Workflows {
			refs = append(refs, boardsvc.WorkflowRef{
				WorkflowID: ref.WorkflowID,
				Order:      ref.SequenceOrder,
			})
		}
		out = append(out, boardsvc.CatalogService{
			ID:        svc.ID,
			Name:      svc.Name,
			Workflows: refs,
		})
	}
	return out, nil
}

// Compile-time checks that the adapters satisfy the board's source interfaces.
var (
	_ boardsvc.OrderSource    = (*BoardOrderSource)(nil)
	_ boardsvc.WorkflowSource = (*BoardWorkflowSource)(nil)
	_ boardsvc.ServiceSource  = (*BoardServiceSource)(nil)
)
