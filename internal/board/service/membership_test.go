package service

import (
	"testing"

	"github.com/google/uuid"
)

func TestMatrixModeMembershipByWorkflow(t *testing.T) {
	wfID := uuid.New()
	snap := NewSnapshot(nil, nil, nil)

	assigned := WorkItem{ID: uuid.New(), WorkflowID: &wfID}
	if !snap.Matches(assigned, wfID.String(), ActiveAll) {
		t.Fatal("item should belong to its workflow column")
	}
	if snap.Matches(assigned, uuid.New().String(), ActiveAll) {
		t.Fatal("item should not belong to another workflow column")
	}

	orphan := WorkItem{ID: uuid.New()}
	if snap.Matches(orphan, wfID.String(), ActiveAll) {
		t.Fatal("workflow-less item must match no matrix column")
	}
}

func TestStageModeExactAndCaseInsensitiveMatch(t *testing.T) {
	snap := NewSnapshot(nil, nil, nil)
	wfID := uuid.New().String()

	item := WorkItem{ID: uuid.New(), Status: "done"}
	if !snap.Matches(item, ColumnDone, wfID) {
		t.Fatal("exact status match should hold")
	}

	upper := WorkItem{ID: uuid.New(), Status: "Done"}
	if !snap.Matches(upper, ColumnDone, wfID) {
		t.Fatal("case-insensitive status match should hold")
	}
}

func TestStageModeLegacyNameMatchThroughStageLookup(t *testing.T) {
	stage := Stage{ID: uuid.New(), Name: "Đang xử lý", Order: 0}
	wf := Workflow{ID: uuid.New(), Label: "Laundry", Stages: []Stage{stage}}
	snap := NewSnapshot(nil, []Workflow{wf}, nil)

	// Status written by an external path as the stage's display name; the
	// column id is the stage id, so the first two layers fail.
	item := WorkItem{ID: uuid.New(), Status: "Đang xử lý"}
	if !snap.Matches(item, stage.ID.String(), wf.ID.String()) {
		t.Fatal("stage-name status should match its stage column")
	}

	byID := WorkItem{ID: uuid.New(), Status: stage.ID.String()}
	if !snap.Matches(byID, stage.ID.String(), wf.ID.String()) {
		t.Fatal("stage-id status should match its stage column")
	}
}

func TestStageModeUnresolvableColumnMatchesNothing(t *testing.T) {
	snap := NewSnapshot(nil, nil, nil)

	item := WorkItem{ID: uuid.New(), Status: "some legacy label"}
	if snap.Matches(item, uuid.New().String(), uuid.New().String()) {
		t.Fatal("unknown stage column must match nothing")
	}
}
