package service

import (
	"context"

	"github.com/google/uuid"

	"workboard_backend/internal/events"
	"workboard_backend/internal/orders/repository"
	"workboard_backend/internal/orders/transport"
	"workboard_backend/platform/logger"
)

// Service provides business logic for orders. Every mutation publishes
// OrdersChanged so the board rebuilds its snapshot.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new orders service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// GetByID retrieves an order with its items.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.OrderResponse, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.OrderResponse{}, err
	}
	return toResponse(order), nil
}

// List retrieves all orders with their items.
func (s *Service) List(ctx context.Context) (transport.OrderListResponse, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return transport.OrderListResponse{}, err
	}

	out := make([]transport.OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toResponse(order))
	}
	return transport.OrderListResponse{Items: out, Total: len(out)}, nil
}

// Create creates an order with its items.
func (s *Service) Create(ctx context.Context, req transport.CreateOrderRequest) (transport.OrderResponse, error) {
	order, err := s.repo.Create(ctx, repository.CreateParams{
		CustomerName:     req.CustomerName,
		ExpectedDelivery: req.ExpectedDelivery,
		Items:            toItemParamsList(req.Items),
	})
	if err != nil {
		return transport.OrderResponse{}, err
	}

	s.log.Info("order created", "id", order.ID, "customer", order.CustomerName, "items", len(order.Items))
	s.publishChanged(ctx, order.ID, "create")

	return toResponse(order), nil
}

// Update updates order fields.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateOrderRequest) (transport.OrderResponse, error) {
	order, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:               id,
		CustomerName:     req.CustomerName,
		ExpectedDelivery: req.ExpectedDelivery,
	})
	if err != nil {
		return transport.OrderResponse{}, err
	}

	s.log.Info("order updated", "id", order.ID)
	s.publishChanged(ctx, order.ID, "update")

	return toResponse(order), nil
}

// Delete removes an order and its items.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("order deleted", "id", id)
	s.publishChanged(ctx, id, "delete")

	return nil
}

// AddItem appends one item to an order.
func (s *Service) AddItem(ctx context.Context, orderID uuid.UUID, req transport.ItemRequest) (transport.OrderResponse, error) {
	order, err := s.repo.AddItem(ctx, orderID, toItemParams(req))
	if err != nil {
		return transport.OrderResponse{}, err
	}

	s.log.Info("order item added", "orderId", order.ID, "name", req.Name)
	s.publishChanged(ctx, order.ID, "item_update")

	return toResponse(order), nil
}

// DeleteItem removes one item from an order.
func (s *Service) DeleteItem(ctx context.Context, orderID, itemID uuid.UUID) error {
	if err := s.repo.DeleteItem(ctx, orderID, itemID); err != nil {
		return err
	}

	s.log.Info("order item deleted", "orderId", orderID, "itemId", itemID)
	s.publishChanged(ctx, orderID, "item_update")

	return nil
}

// UpdateItemStatus moves an item to a new status. This is the mutation
// behind dragging a card to another column.
func (s *Service) UpdateItemStatus(ctx context.Context, orderID, itemID uuid.UUID, req transport.UpdateItemStatusRequest) (transport.OrderResponse, error) {
	order, err := s.repo.UpdateItemStatus(ctx, orderID, itemID, req.Status)
	if err != nil {
		return transport.OrderResponse{}, err
	}

	s.log.Info("order item status updated", "orderId", orderID, "itemId", itemID, "status", req.Status)
	s.publishChanged(ctx, orderID, "item_update")

	return toResponse(order), nil
}

// AssignWorkflow sets or clears an item's explicit workflow assignment.
// An explicit assignment always wins over the service's default workflow.
func (s *Service) AssignWorkflow(ctx context.Context, orderID, itemID uuid.UUID, req transport.AssignWorkflowRequest) (transport.OrderResponse, error) {
	order, err := s.repo.AssignItemWorkflow(ctx, orderID, itemID, req.WorkflowID)
	if err != nil {
		return transport.OrderResponse{}, err
	}

	s.log.Info("order item workflow assigned", "orderId", orderID, "itemId", itemID, "workflowId", req.WorkflowID)
	s.publishChanged(ctx, orderID, "item_update")

	return toResponse(order), nil
}

func (s *Service) publishChanged(ctx context.Context, id uuid.UUID, source string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.OrdersChanged{
		BaseEvent: events.NewBaseEvent(),
		OrderID:   id,
		Source:    source,
	})
}

func toItemParamsList(items []transport.ItemRequest) []repository.ItemParams {
	params := make([]repository.ItemParams, 0, len(items))
	for _, item := range items {
		params = append(params, toItemParams(item))
	}
	return params
}

func toItemParams(item transport.ItemRequest) repository.ItemParams {
	return repository.ItemParams{
		Name:       item.Name,
		IsProduct:  item.IsProduct,
		Status:     item.Status,
		ServiceID:  item.ServiceID,
		WorkflowID: item.WorkflowID,
		PriceCents: item.PriceCents,
	}
}

func toResponse(order repository.Order) transport.OrderResponse {
	items := make([]transport.ItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		var history []transport.StageTransitionResponse
		for _, tr := range item.History {
			history = append(history, transport.StageTransitionResponse{StageID: tr.StageID, MovedAt: tr.MovedAt})
		}
		items = append(items, transport.ItemResponse{
			ID:         item.ID,
			Name:       item.Name,
			IsProduct:  item.IsProduct,
			Status:     item.Status,
			ServiceID:  item.ServiceID,
			WorkflowID: item.WorkflowID,
			History:    history,
			PriceCents: item.PriceCents,
			UpdatedAt:  item.UpdatedAt,
		})
	}
	return transport.OrderResponse{
		ID:               order.ID,
		CustomerName:     order.CustomerName,
		ExpectedDelivery: order.ExpectedDelivery,
		Items:            items,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}
