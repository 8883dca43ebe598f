package service

import (
	"strings"

	"github.com/google/uuid"
)

// Matches reports whether a derived item belongs to the given column under
// the active view mode.
//
// In ALL mode an item belongs to the column of its resolved workflow;
// workflow-less items match nothing. In single-workflow view the check is a
// layered chain: exact status equality, then case-insensitive equality, then
// a stage lookup across all workflows accepting the stage's id or display
// name. The later layers exist because external write paths may set a status
// without going through derivation, so the matcher cannot assume normalized
// input.
func (s *Snapshot) Matches(item WorkItem, columnID string, activeWorkflow string) bool {
	if activeWorkflow == ActiveAll {
		return item.WorkflowID != nil && item.WorkflowID.String() == columnID
	}

	if item.Status == columnID {
		return true
	}
	if strings.EqualFold(item.Status, columnID) {
		return true
	}

	if stageID, err := uuid.Parse(columnID); err == nil {
		if loc, ok := s.stageByID[stageID]; ok {
			return item.Status == loc.stage.ID.String() || item.Status == loc.stage.Name
		}
	}

	return false
}
