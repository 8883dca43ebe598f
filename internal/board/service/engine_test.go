package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeSources struct {
	orders    []Order
	workflows []Workflow
	services  []CatalogService
	err       error
	loads     int
}

func (f *fakeSources) ListOrders(ctx context.Context) ([]Order, error) {
	f.loads++
	return f.orders, f.err
}

func (f *fakeSources) ListWorkflows(ctx context.Context) ([]Workflow, error) {
	return f.workflows, f.err
}

func (f *fakeSources) ListServices(ctx context.Context) ([]CatalogService, error) {
	return f.services, f.err
}

func engineFixture() (*Engine, *fakeSources, Workflow) {
	stage := Stage{ID: uuid.New(), Name: "Received", Order: 0}
	wf := Workflow{ID: uuid.New(), Label: "Laundry", Stages: []Stage{stage}}
	svc := CatalogService{
		ID:        uuid.New(),
		Name:      "Wash & fold",
		Workflows: []WorkflowRef{{WorkflowID: wf.ID, Order: 0}},
	}
	src := &fakeSources{
		orders: []Order{{
			ID:           uuid.New(),
			CustomerName: "Ngọc Anh",
			Items: []RawServiceItem{
				{ID: uuid.New(), Name: "Wash & fold", ServiceID: &svc.ID},
			},
		}},
		workflows: []Workflow{wf},
		services:  []CatalogService{svc},
	}
	return NewEngine(src, src, src, nil), src, wf
}

func TestEngineStartsEmptyUntilRefreshed(t *testing.T) {
	eng, _, _ := engineFixture()

	if items := eng.Items(ItemFilter{}); len(items) != 0 {
		t.Fatalf("engine should start empty, got %d items", len(items))
	}
	if columns := eng.Columns(ActiveAll, ItemFilter{}); len(columns) != 0 {
		t.Fatalf("engine should start with no matrix columns, got %+v", columns)
	}
}

func TestEngineRefreshRebuildsFromSources(t *testing.T) {
	eng, _, wf := engineFixture()

	if err := eng.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	columns := eng.Columns(ActiveAll, ItemFilter{})
	if len(columns) != 1 || columns[0].ID != wf.ID.String() {
		t.Fatalf("expected one workflow column, got %+v", columns)
	}
	items := eng.ItemsForColumn(ActiveAll, wf.ID.String(), ItemFilter{})
	if len(items) != 1 {
		t.Fatalf("expected one item in the workflow column, got %d", len(items))
	}
	if items[0].Status != wf.Stages[0].ID.String() {
		t.Fatalf("item should sit in the entry stage, got %q", items[0].Status)
	}
}

func TestEngineRefreshErrorKeepsLastSnapshot(t *testing.T) {
	eng, src, _ := engineFixture()

	if err := eng.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	before := eng.Items(ItemFilter{})

	src.err = errors.New("source unavailable")
	if err := eng.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	after := eng.Items(ItemFilter{})
	if len(after) != len(before) {
		t.Fatalf("failed refresh must not change the snapshot: %d vs %d", len(before), len(after))
	}
}

// An item whose workflow cannot be resolved is invisible in the matrix view
// but still present in the flat item listing.
func TestEngineUnresolvableWorkflowItemOnlyInFlatListing(t *testing.T) {
	eng, src, wf := engineFixture()
	src.orders = append(src.orders, Order{
		ID:           uuid.New(),
		CustomerName: "Bình",
		Items: []RawServiceItem{
			{ID: uuid.New(), Name: "One-off favor", Status: "promised"},
		},
	})

	if err := eng.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if items := eng.Items(ItemFilter{}); len(items) != 2 {
		t.Fatalf("flat listing should include the unresolved item, got %d", len(items))
	}
	placed := eng.ItemsForColumn(ActiveAll, wf.ID.String(), ItemFilter{})
	if len(placed) != 1 {
		t.Fatalf("workflow column should only hold the resolved item, got %d", len(placed))
	}
}

func TestEngineRefreshIsIdempotent(t *testing.T) {
	eng, _, wf := engineFixture()

	if err := eng.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	first := eng.ItemsForColumn(ActiveAll, wf.ID.String(), ItemFilter{})

	if err := eng.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}
	second := eng.ItemsForColumn(ActiveAll, wf.ID.String(), ItemFilter{})

	if len(first) != len(second) {
		t.Fatalf("item counts differ after repeat refresh: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Status != second[i].Status {
			t.Fatalf("derived state differs after repeat refresh at %d", i)
		}
	}
}
