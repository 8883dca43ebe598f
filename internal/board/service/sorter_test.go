package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func sortFixture() (*Snapshot, Workflow, uuid.UUID, uuid.UUID) {
	stEarly, stLate := uuid.New(), uuid.New()
	wf := Workflow{
		ID:    uuid.New(),
		Label: "Laundry",
		Stages: []Stage{
			{ID: stEarly, Name: "Received", Order: 0},
			{ID: stLate, Name: "Ready", Order: 4},
		},
	}
	return NewSnapshot(nil, []Workflow{wf}, nil), wf, stEarly, stLate
}

func TestSortItemsByStageOrderFirst(t *testing.T) {
	snap, wf, stEarly, stLate := sortFixture()

	items := []WorkItem{
		{ID: uuid.New(), WorkflowID: &wf.ID, Status: stLate.String()},
		{ID: uuid.New(), WorkflowID: &wf.ID, Status: stEarly.String()},
	}
	snap.SortItems(items)

	if items[0].Status != stEarly.String() {
		t.Fatal("earlier stage should sort first")
	}
}

func TestSortItemsUnresolvedStageSortsLast(t *testing.T) {
	snap, wf, stEarly, _ := sortFixture()

	items := []WorkItem{
		{ID: uuid.New(), Status: "legacy label"},
		{ID: uuid.New(), WorkflowID: &wf.ID, Status: "not a stage"},
		{ID: uuid.New(), WorkflowID: &wf.ID, Status: stEarly.String()},
	}
	snap.SortItems(items)

	if items[0].Status != stEarly.String() {
		t.Fatal("resolved stage should sort before unresolved items")
	}
}

func TestSortItemsByExpectedDeliveryThenLastUpdated(t *testing.T) {
	snap, wf, stEarly, _ := sortFixture()

	soon := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	a := WorkItem{ID: uuid.New(), Name: "later due", WorkflowID: &wf.ID, Status: stEarly.String(), ExpectedDelivery: &later}
	b := WorkItem{ID: uuid.New(), Name: "soon due", WorkflowID: &wf.ID, Status: stEarly.String(), ExpectedDelivery: &soon}
	c := WorkItem{ID: uuid.New(), Name: "no due, old", WorkflowID: &wf.ID, Status: stEarly.String(), LastUpdated: older}
	d := WorkItem{ID: uuid.New(), Name: "no due, fresh", WorkflowID: &wf.ID, Status: stEarly.String(), LastUpdated: newer}

	items := []WorkItem{a, c, b, d}
	snap.SortItems(items)

	wantNames := []string{"soon due", "later due", "no due, fresh", "no due, old"}
	for i, want := range wantNames {
		if items[i].Name != want {
			t.Fatalf("position %d: want %q, got %q", i, want, items[i].Name)
		}
	}
}

func TestSortItemsIsStableAndDeterministic(t *testing.T) {
	snap, wf, stEarly, _ := sortFixture()

	ts := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	items := []WorkItem{
		{ID: uuid.New(), Name: "first", WorkflowID: &wf.ID, Status: stEarly.String(), LastUpdated: ts},
		{ID: uuid.New(), Name: "second", WorkflowID: &wf.ID, Status: stEarly.String(), LastUpdated: ts},
		{ID: uuid.New(), Name: "third", WorkflowID: &wf.ID, Status: stEarly.String(), LastUpdated: ts},
	}

	run1 := make([]WorkItem, len(items))
	run2 := make([]WorkItem, len(items))
	copy(run1, items)
	copy(run2, items)

	snap.SortItems(run1)
	snap.SortItems(run2)

	for i := range run1 {
		if run1[i].Name != items[i].Name {
			t.Fatalf("equal keys must preserve input order, got %q at %d", run1[i].Name, i)
		}
		if run1[i].ID != run2[i].ID {
			t.Fatalf("sort not deterministic at %d", i)
		}
	}
}
