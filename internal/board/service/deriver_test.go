package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDeriveItemsFiltersProducts(t *testing.T) {
	order := Order{
		ID:           uuid.New(),
		CustomerName: "Ngọc Anh",
		Items: []RawServiceItem{
			{ID: uuid.New(), Name: "Detergent bottle", IsProduct: true},
			{ID: uuid.New(), Name: "Dry cleaning", IsProduct: false},
			{ID: uuid.New(), Name: "Gift wrap", IsProduct: true},
		},
	}

	snap := NewSnapshot([]Order{order}, nil, nil)

	if len(snap.Items) != 1 {
		t.Fatalf("expected one derived item, got %d", len(snap.Items))
	}
	for _, item := range snap.Items {
		if item.Name != "Dry cleaning" {
			t.Fatalf("product item leaked onto the board: %q", item.Name)
		}
	}
}

func TestDeriveItemsCopiesOrderFields(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	order := Order{
		ID:               uuid.New(),
		CustomerName:     "Trần Văn Bình",
		ExpectedDelivery: &due,
		Items: []RawServiceItem{
			{ID: uuid.New(), Name: "Shoe repair"},
			{ID: uuid.New(), Name: "Leather care"},
		},
	}

	snap := NewSnapshot([]Order{order}, nil, nil)

	if len(snap.Items) != 2 {
		t.Fatalf("expected two derived items, got %d", len(snap.Items))
	}
	for _, item := range snap.Items {
		if item.OrderID != order.ID {
			t.Fatalf("order id not copied onto item %q", item.Name)
		}
		if item.CustomerName != order.CustomerName {
			t.Fatalf("customer name not copied onto item %q", item.Name)
		}
		if item.ExpectedDelivery == nil || !item.ExpectedDelivery.Equal(due) {
			t.Fatalf("expected delivery not copied onto item %q", item.Name)
		}
	}
}

// Default-workflow resolution end to end: an item with only a service id
// lands in the entry stage of the service's first workflow.
func TestDeriveItemsResolvesDefaultWorkflowAndEntryStage(t *testing.T) {
	st1, st2 := uuid.New(), uuid.New()
	wf := Workflow{
		ID:    uuid.New(),
		Label: "Laundry",
		Stages: []Stage{
			{ID: st1, Name: "Received", Order: 0},
			{ID: st2, Name: "Washing", Order: 1},
		},
	}
	svc := CatalogService{
		ID:        uuid.New(),
		Name:      "Wash & fold",
		Workflows: []WorkflowRef{{WorkflowID: wf.ID, Order: 0}},
	}
	order := Order{
		ID:           uuid.New(),
		CustomerName: "Lê Thị Hoa",
		Items: []RawServiceItem{
			{ID: uuid.New(), Name: "Wash & fold", ServiceID: &svc.ID},
		},
	}

	snap := NewSnapshot([]Order{order}, []Workflow{wf}, []CatalogService{svc})

	if len(snap.Items) != 1 {
		t.Fatalf("expected one derived item, got %d", len(snap.Items))
	}
	item := snap.Items[0]
	if item.WorkflowID == nil || *item.WorkflowID != wf.ID {
		t.Fatalf("expected workflow %s resolved, got %v", wf.ID, item.WorkflowID)
	}
	if item.Status != st1.String() {
		t.Fatalf("expected entry stage %s, got %q", st1, item.Status)
	}
}

func TestResolveWorkflowNeverOverridesExplicitAssignment(t *testing.T) {
	explicit := uuid.New()
	other := uuid.New()
	svc := CatalogService{
		ID:        uuid.New(),
		Name:      "Alterations",
		Workflows: []WorkflowRef{{WorkflowID: other, Order: 0}},
	}
	snap := NewSnapshot(nil, nil, []CatalogService{svc})

	item := RawServiceItem{ID: uuid.New(), ServiceID: &svc.ID, WorkflowID: &explicit}
	got := snap.ResolveWorkflow(item)
	if got == nil || *got != explicit {
		t.Fatalf("explicit workflow assignment must win, got %v", got)
	}
}

func TestResolveWorkflowUsesSequenceOrderNotInputOrder(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	svc := CatalogService{
		ID:   uuid.New(),
		Name: "Full care",
		Workflows: []WorkflowRef{
			{WorkflowID: second, Order: 1},
			{WorkflowID: first, Order: 0},
		},
	}
	snap := NewSnapshot(nil, nil, []CatalogService{svc})

	got := snap.ResolveWorkflow(RawServiceItem{ID: uuid.New(), ServiceID: &svc.ID})
	if got == nil || *got != first {
		t.Fatalf("default workflow must be sequence order 0, got %v", got)
	}
}

func TestResolveWorkflowAbsentCases(t *testing.T) {
	snap := NewSnapshot(nil, nil, []CatalogService{{ID: uuid.New(), Name: "No workflows"}})

	if got := snap.ResolveWorkflow(RawServiceItem{ID: uuid.New()}); got != nil {
		t.Fatalf("item without service should have no workflow, got %v", got)
	}

	unknown := uuid.New()
	if got := snap.ResolveWorkflow(RawServiceItem{ID: uuid.New(), ServiceID: &unknown}); got != nil {
		t.Fatalf("unknown service should yield no workflow, got %v", got)
	}

	empty := snap.Services[0].ID
	if got := snap.ResolveWorkflow(RawServiceItem{ID: uuid.New(), ServiceID: &empty}); got != nil {
		t.Fatalf("service with empty sequence should yield no workflow, got %v", got)
	}
}

func TestDeriveItemsIsIdempotent(t *testing.T) {
	st := uuid.New()
	wf := Workflow{
		ID:     uuid.New(),
		Label:  "Laundry",
		Stages: []Stage{{ID: st, Name: "Received", Order: 0}},
	}
	svc := CatalogService{
		ID:        uuid.New(),
		Name:      "Wash & fold",
		Workflows: []WorkflowRef{{WorkflowID: wf.ID, Order: 0}},
	}
	orders := []Order{{
		ID:           uuid.New(),
		CustomerName: "Phạm Quốc Đạt",
		Items: []RawServiceItem{
			{ID: uuid.New(), Name: "Wash & fold", ServiceID: &svc.ID, Status: "Received"},
			{ID: uuid.New(), Name: "Hangers", IsProduct: true},
		},
	}}

	first := NewSnapshot(orders, []Workflow{wf}, []CatalogService{svc})
	second := NewSnapshot(orders, []Workflow{wf}, []CatalogService{svc})

	if len(first.Items) != len(second.Items) {
		t.Fatalf("item counts differ between runs: %d vs %d", len(first.Items), len(second.Items))
	}
	for i := range first.Items {
		a, b := first.Items[i], second.Items[i]
		if a.ID != b.ID || a.Status != b.Status || a.OrderID != b.OrderID {
			t.Fatalf("derivation not idempotent at index %d: %+v vs %+v", i, a, b)
		}
	}
}
