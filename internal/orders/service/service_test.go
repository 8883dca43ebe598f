package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"workboard_backend/internal/events"
	"workboard_backend/internal/orders/repository"
	"workboard_backend/internal/orders/transport"
	"workboard_backend/platform/logger"
)

type fakeRepo struct {
	orders map[uuid.UUID]repository.Order
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: make(map[uuid.UUID]repository.Order)}
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Order, error) {
	return f.orders[id], nil
}

func (f *fakeRepo) List(_ context.Context) ([]repository.Order, error) {
	out := make([]repository.Order, 0, len(f.orders))
	for _, order := range f.orders {
		out = append(out, order)
	}
	return out, nil
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Order, error) {
	order := repository.Order{ID: uuid.New(), CustomerName: params.CustomerName, ExpectedDelivery: params.ExpectedDelivery}
	for _, item := range params.Items {
		order.Items = append(order.Items, repository.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			Name:      item.Name,
			IsProduct: item.IsProduct,
			Status:    item.Status,
		})
	}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeRepo) Update(_ context.Context, params repository.UpdateParams) (repository.Order, error) {
	order := f.orders[params.ID]
	if params.CustomerName != nil {
		order.CustomerName = *params.CustomerName
	}
	f.orders[params.ID] = order
	return order, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeRepo) AddItem(_ context.Context, orderID uuid.UUID, params repository.ItemParams) (repository.Order, error) {
	order := f.orders[orderID]
	order.Items = append(order.Items, repository.OrderItem{ID: uuid.New(), OrderID: orderID, Name: params.Name})
	f.orders[orderID] = order
	return order, nil
}

func (f *fakeRepo) DeleteItem(_ context.Context, orderID, itemID uuid.UUID) error {
	return nil
}

func (f *fakeRepo) UpdateItemStatus(_ context.Context, orderID, itemID uuid.UUID, status string) (repository.Order, error) {
	order := f.orders[orderID]
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			order.Items[i].Status = status
		}
	}
	f.orders[orderID] = order
	return order, nil
}

func (f *fakeRepo) AssignItemWorkflow(_ context.Context, orderID, itemID uuid.UUID, workflowID *uuid.UUID) (repository.Order, error) {
	return f.orders[orderID], nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func TestCreatePublishesOrdersChanged(t *testing.T) {
	bus := &recordingBus{}
	svc := New(newFakeRepo(), bus, logger.New("test"))

	created, err := svc.Create(context.Background(), transport.CreateOrderRequest{
		CustomerName: "Ngọc Anh",
		Items:        []transport.ItemRequest{{Name: "Wash & fold"}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(bus.published))
	}
	changed, ok := bus.published[0].(events.OrdersChanged)
	if !ok {
		t.Fatalf("expected OrdersChanged, got %T", bus.published[0])
	}
	if changed.OrderID != created.ID {
		t.Fatalf("event carries order %s, created %s", changed.OrderID, created.ID)
	}
	if changed.Source != "create" {
		t.Fatalf("expected source %q, got %q", "create", changed.Source)
	}
}

func TestItemMutationsPublishItemUpdate(t *testing.T) {
	bus := &recordingBus{}
	repo := newFakeRepo()
	svc := New(repo, bus, logger.New("test"))

	created, err := svc.Create(context.Background(), transport.CreateOrderRequest{
		CustomerName: "Bình",
		Items:        []transport.ItemRequest{{Name: "Shoe repair"}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	bus.published = nil

	itemID := created.Items[0].ID
	if _, err := svc.UpdateItemStatus(context.Background(), created.ID, itemID, transport.UpdateItemStatusRequest{Status: "done"}); err != nil {
		t.Fatalf("update item status failed: %v", err)
	}
	if _, err := svc.AssignWorkflow(context.Background(), created.ID, itemID, transport.AssignWorkflowRequest{}); err != nil {
		t.Fatalf("assign workflow failed: %v", err)
	}

	if len(bus.published) != 2 {
		t.Fatalf("expected two published events, got %d", len(bus.published))
	}
	for _, event := range bus.published {
		changed, ok := event.(events.OrdersChanged)
		if !ok {
			t.Fatalf("expected OrdersChanged, got %T", event)
		}
		if changed.Source != "item_update" {
			t.Fatalf("expected source %q, got %q", "item_update", changed.Source)
		}
	}
}

func TestEmptyStatusIsStoredVerbatimByService(t *testing.T) {
	bus := &recordingBus{}
	svc := New(newFakeRepo(), bus, logger.New("test"))

	// The pending sentinel is applied by the repository layer; the service
	// passes the request through untouched.
	created, err := svc.Create(context.Background(), transport.CreateOrderRequest{
		CustomerName: "Hoa",
		Items:        []transport.ItemRequest{{Name: "Dry cleaning", Status: ""}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Items[0].Status != "" {
		t.Fatalf("service must not rewrite statuses, got %q", created.Items[0].Status)
	}
}
