package service

import (
	"testing"

	"github.com/google/uuid"
)

func matrixFixture(t *testing.T) (*Snapshot, Workflow, Workflow) {
	t.Helper()

	wf1 := Workflow{
		ID:     uuid.New(),
		Label:  "Laundry",
		Stages: []Stage{{ID: uuid.New(), Name: "Received", Order: 0}},
	}
	wf2 := Workflow{
		ID:     uuid.New(),
		Label:  "Repair",
		Stages: []Stage{{ID: uuid.New(), Name: "Diagnose", Order: 0}},
	}
	svc1 := CatalogService{
		ID:        uuid.New(),
		Name:      "Wash & fold",
		Workflows: []WorkflowRef{{WorkflowID: wf1.ID, Order: 0}},
	}
	svc2 := CatalogService{
		ID:        uuid.New(),
		Name:      "Shoe repair",
		Workflows: []WorkflowRef{{WorkflowID: wf2.ID, Order: 0}},
	}
	orders := []Order{
		{
			ID:           uuid.New(),
			CustomerName: "Ngọc Anh",
			Items:        []RawServiceItem{{ID: uuid.New(), Name: "Wash & fold", ServiceID: &svc1.ID}},
		},
		{
			ID:           uuid.New(),
			CustomerName: "Bình",
			Items:        []RawServiceItem{{ID: uuid.New(), Name: "Shoe repair", ServiceID: &svc2.ID}},
		},
	}

	return NewSnapshot(orders, []Workflow{wf1, wf2}, []CatalogService{svc1, svc2}), wf1, wf2
}

func TestMatrixViewOneColumnPerReferencedWorkflow(t *testing.T) {
	snap, wf1, wf2 := matrixFixture(t)

	columns := snap.Columns(ActiveAll, ItemFilter{})
	if len(columns) != 2 {
		t.Fatalf("expected exactly two columns, got %d", len(columns))
	}
	if columns[0].ID != wf1.ID.String() || columns[1].ID != wf2.ID.String() {
		t.Fatalf("expected columns [%s %s], got [%s %s]", wf1.ID, wf2.ID, columns[0].ID, columns[1].ID)
	}
	if columns[0].Title != "Laundry" || columns[1].Title != "Repair" {
		t.Fatalf("column titles should be workflow labels, got %q %q", columns[0].Title, columns[1].Title)
	}
}

func TestMatrixViewIsStableAcrossRecomputations(t *testing.T) {
	snapA, _, _ := matrixFixture(t)

	first := snapA.Columns(ActiveAll, ItemFilter{})
	second := snapA.Columns(ActiveAll, ItemFilter{})
	if len(first) != len(second) {
		t.Fatalf("column counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("column order unstable at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestMatrixViewHonorsOrderFilter(t *testing.T) {
	snap, wf1, _ := matrixFixture(t)

	filter := ItemFilter{OrderIDs: []uuid.UUID{snap.Orders[0].ID}}
	columns := snap.Columns(ActiveAll, filter)
	if len(columns) != 1 || columns[0].ID != wf1.ID.String() {
		t.Fatalf("expected only the first order's workflow column, got %+v", columns)
	}
}

func TestMatrixViewSkipsDanglingWorkflowReferences(t *testing.T) {
	svc := CatalogService{
		ID:        uuid.New(),
		Name:      "Orphan service",
		Workflows: []WorkflowRef{{WorkflowID: uuid.New(), Order: 0}},
	}
	order := Order{
		ID:    uuid.New(),
		Items: []RawServiceItem{{ID: uuid.New(), Name: "Orphan", ServiceID: &svc.ID}},
	}
	snap := NewSnapshot([]Order{order}, nil, []CatalogService{svc})

	if columns := snap.Columns(ActiveAll, ItemFilter{}); len(columns) != 0 {
		t.Fatalf("dangling workflow reference should yield no column, got %+v", columns)
	}
}

func TestStageViewColumnsSortedWithTrailingSentinels(t *testing.T) {
	stA, stB, stC := uuid.New(), uuid.New(), uuid.New()
	wf := Workflow{
		ID:    uuid.New(),
		Label: "Tailoring",
		Stages: []Stage{
			{ID: stC, Name: "Delivery prep", Order: 7},
			{ID: stA, Name: "Measuring", Order: 1},
			{ID: stB, Name: "Sewing", Order: 3},
		},
	}
	snap := NewSnapshot(nil, []Workflow{wf}, nil)

	columns := snap.Columns(wf.ID.String(), ItemFilter{})
	if len(columns) != 5 {
		t.Fatalf("expected 3 stage columns + 2 sentinels, got %d", len(columns))
	}
	wantIDs := []string{stA.String(), stB.String(), stC.String(), ColumnDone, ColumnCancel}
	for i, want := range wantIDs {
		if columns[i].ID != want {
			t.Fatalf("column %d: want %s, got %s", i, want, columns[i].ID)
		}
	}
	if columns[3].Title != "Completed" || columns[4].Title != "Cancelled" {
		t.Fatalf("sentinel titles wrong: %q %q", columns[3].Title, columns[4].Title)
	}
}

func TestStageViewUnknownWorkflowLeavesOnlySentinels(t *testing.T) {
	snap := NewSnapshot(nil, nil, nil)

	for _, active := range []string{uuid.New().String(), "not-a-uuid"} {
		columns := snap.Columns(active, ItemFilter{})
		if len(columns) != 2 || columns[0].ID != ColumnDone || columns[1].ID != ColumnCancel {
			t.Fatalf("unknown workflow %q should leave only sentinels, got %+v", active, columns)
		}
	}
}
