package service

import (
	"strings"

	"github.com/google/uuid"
)

// StatusKind discriminates the three historical representations of an item
// status.
type StatusKind int

const (
	// StatusKindPending marks an empty status or the explicit pending sentinel.
	StatusKindPending StatusKind = iota
	// StatusKindCanonical marks a UUID-form value, i.e. a stage reference.
	StatusKindCanonical
	// StatusKindLegacy marks a free-text label predating stage ids.
	StatusKindLegacy
)

// StatusRef is the tagged form of a raw status value. Raw retains the exact
// source value (after trimming and sentinel defaulting) so unresolvable
// statuses can pass through unchanged.
type StatusRef struct {
	Kind    StatusKind
	Raw     string
	StageID uuid.UUID // set only for StatusKindCanonical
}

// ParseStatus classifies a raw status value. Empty and whitespace-only
// values collapse to the pending sentinel.
func ParseStatus(raw string) StatusRef {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == StatusPending {
		return StatusRef{Kind: StatusKindPending, Raw: StatusPending}
	}
	if id, err := uuid.Parse(trimmed); err == nil {
		return StatusRef{Kind: StatusKindCanonical, Raw: trimmed, StageID: id}
	}
	return StatusRef{Kind: StatusKindLegacy, Raw: trimmed}
}

// NormalizeStatus maps a status onto a stage id of the governing workflow.
// The chain, in priority order:
//
//  1. no workflow resolved, or the workflow id is unknown: the raw value
//     passes through unchanged;
//  2. the value already names a stage of that workflow: identity (this makes
//     normalization idempotent);
//  3. the value matches a stage's display name case-insensitively: that
//     stage's id (reconciles legacy labels);
//  4. anything else falls back to the workflow's entry stage (minimum stage
//     order); a workflow without stages passes the raw value through.
func (s *Snapshot) NormalizeStatus(ref StatusRef, workflowID *uuid.UUID) string {
	if workflowID == nil {
		return ref.Raw
	}
	wf, ok := s.workflowByID[*workflowID]
	if !ok {
		return ref.Raw
	}

	if ref.Kind == StatusKindCanonical {
		for i := range wf.Stages {
			if wf.Stages[i].ID == ref.StageID {
				return ref.Raw
			}
		}
	}

	if stage, ok := matchStageByName(wf, ref.Raw); ok {
		return stage.ID.String()
	}

	if len(wf.Stages) == 0 {
		return ref.Raw
	}
	return wf.Stages[0].ID.String()
}

// matchStageByName finds a stage whose display name equals the value,
// ignoring case. Stages are scanned in ascending stage order, so when two
// stages share a name the earlier one wins deterministically (the snapshot
// records a data-quality warning for that situation at build time).
func matchStageByName(wf *Workflow, value string) (*Stage, bool) {
	for i := range wf.Stages {
		if strings.EqualFold(wf.Stages[i].Name, value) {
			return &wf.Stages[i], true
		}
	}
	return nil, false
}
