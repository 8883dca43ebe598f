package service

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseStatusClassifiesRepresentations(t *testing.T) {
	if got := ParseStatus(""); got.Kind != StatusKindPending || got.Raw != StatusPending {
		t.Fatalf("empty status should collapse to pending sentinel, got %+v", got)
	}
	if got := ParseStatus("   "); got.Kind != StatusKindPending {
		t.Fatalf("whitespace status should collapse to pending sentinel, got %+v", got)
	}
	if got := ParseStatus(StatusPending); got.Kind != StatusKindPending {
		t.Fatalf("sentinel should stay pending, got %+v", got)
	}

	stageID := uuid.New()
	got := ParseStatus(stageID.String())
	if got.Kind != StatusKindCanonical || got.StageID != stageID {
		t.Fatalf("uuid-form status should be canonical, got %+v", got)
	}

	if got := ParseStatus("Đang xử lý"); got.Kind != StatusKindLegacy || got.Raw != "Đang xử lý" {
		t.Fatalf("free text should be legacy, got %+v", got)
	}
}

func TestNormalizeStatusPassesThroughWithoutWorkflow(t *testing.T) {
	snap := NewSnapshot(nil, nil, nil)

	if got := snap.NormalizeStatus(ParseStatus("anything"), nil); got != "anything" {
		t.Fatalf("expected raw pass-through without workflow, got %q", got)
	}

	dangling := uuid.New()
	if got := snap.NormalizeStatus(ParseStatus("anything"), &dangling); got != "anything" {
		t.Fatalf("expected raw pass-through for unknown workflow, got %q", got)
	}
}

func TestNormalizeStatusKeepsValidStageID(t *testing.T) {
	st1, st2 := uuid.New(), uuid.New()
	wf := Workflow{
		ID:    uuid.New(),
		Label: "Cleaning",
		Stages: []Stage{
			{ID: st1, Name: "Intake", Order: 0},
			{ID: st2, Name: "Washing", Order: 1},
		},
	}
	snap := NewSnapshot(nil, []Workflow{wf}, nil)

	if got := snap.NormalizeStatus(ParseStatus(st2.String()), &wf.ID); got != st2.String() {
		t.Fatalf("valid stage id must be kept, got %q", got)
	}
}

func TestNormalizeStatusReconcilesLegacyLabelCaseInsensitively(t *testing.T) {
	st1, st2 := uuid.New(), uuid.New()
	wf := Workflow{
		ID:    uuid.New(),
		Label: "Cleaning",
		Stages: []Stage{
			{ID: st1, Name: "Tiếp nhận", Order: 0},
			{ID: st2, Name: "đang xử lý", Order: 1},
		},
	}
	snap := NewSnapshot(nil, []Workflow{wf}, nil)

	if got := snap.NormalizeStatus(ParseStatus("Đang xử lý"), &wf.ID); got != st2.String() {
		t.Fatalf("legacy label should resolve to stage id %s, got %q", st2, got)
	}
}

func TestNormalizeStatusFallsBackToEntryStage(t *testing.T) {
	entry, later := uuid.New(), uuid.New()
	wf := Workflow{
		ID:    uuid.New(),
		Label: "Repair",
		Stages: []Stage{
			// Deliberately out of order: the entry stage is the minimum
			// order value, not the first slice element.
			{ID: later, Name: "Diagnose", Order: 5},
			{ID: entry, Name: "Received", Order: 1},
		},
	}
	snap := NewSnapshot(nil, []Workflow{wf}, nil)

	if got := snap.NormalizeStatus(ParseStatus("no such stage"), &wf.ID); got != entry.String() {
		t.Fatalf("unknown status should fall back to entry stage %s, got %q", entry, got)
	}
	if got := snap.NormalizeStatus(ParseStatus(""), &wf.ID); got != entry.String() {
		t.Fatalf("pending status should fall back to entry stage %s, got %q", entry, got)
	}
	if got := snap.NormalizeStatus(ParseStatus(uuid.New().String()), &wf.ID); got != entry.String() {
		t.Fatalf("foreign stage id should fall back to entry stage %s, got %q", entry, got)
	}
}

func TestNormalizeStatusStagelessWorkflowPassesThrough(t *testing.T) {
	wf := Workflow{ID: uuid.New(), Label: "Empty"}
	snap := NewSnapshot(nil, []Workflow{wf}, nil)

	if got := snap.NormalizeStatus(ParseStatus("raw value"), &wf.ID); got != "raw value" {
		t.Fatalf("stageless workflow should pass raw through, got %q", got)
	}
}

func TestNormalizeStatusIsIdempotent(t *testing.T) {
	st1, st2 := uuid.New(), uuid.New()
	wf := Workflow{
		ID:    uuid.New(),
		Label: "Cleaning",
		Stages: []Stage{
			{ID: st1, Name: "Intake", Order: 0},
			{ID: st2, Name: "Washing", Order: 1},
		},
	}
	snap := NewSnapshot(nil, []Workflow{wf}, nil)

	for _, raw := range []string{"", StatusPending, "Washing", st2.String(), "unknown label", uuid.New().String()} {
		once := snap.NormalizeStatus(ParseStatus(raw), &wf.ID)
		twice := snap.NormalizeStatus(ParseStatus(once), &wf.ID)
		if once != twice {
			t.Fatalf("normalize not idempotent for %q: first %q then %q", raw, once, twice)
		}
	}
}

func TestDuplicateStageNamesRecordWarningAndResolveToEarlierStage(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	wf := Workflow{
		ID:    uuid.New(),
		Label: "Tailoring",
		Stages: []Stage{
			{ID: first, Name: "Fitting", Order: 0},
			{ID: second, Name: "fitting", Order: 1},
		},
	}
	snap := NewSnapshot(nil, []Workflow{wf}, nil)

	if len(snap.Warnings) != 1 {
		t.Fatalf("expected one data-quality warning, got %v", snap.Warnings)
	}
	if got := snap.NormalizeStatus(ParseStatus("FITTING"), &wf.ID); got != first.String() {
		t.Fatalf("ambiguous name should resolve to the earlier stage %s, got %q", first, got)
	}
}
