package service

import (
	"math"
	"sort"
)

// unresolvedStageRank sorts items whose status maps to no stage of their
// workflow after everything else.
const unresolvedStageRank = math.MaxInt

// SortItems imposes the display order on items within one column. The
// composite key, applied in order:
//
//	(a) stage order of the item's current stage within its workflow,
//	    ascending; items with no resolvable stage last;
//	(b) expected delivery ascending, items without a date last;
//	(c) last update descending.
//
// The sort is stable: equal keys preserve input order, so repeated runs on
// identical input produce identical output.
func (s *Snapshot) SortItems(items []WorkItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := s.stageRank(items[i]), s.stageRank(items[j])
		if ri != rj {
			return ri < rj
		}

		di, dj := items[i].ExpectedDelivery, items[j].ExpectedDelivery
		switch {
		case di != nil && dj != nil:
			if !di.Equal(*dj) {
				return di.Before(*dj)
			}
		case di != nil:
			return true
		case dj != nil:
			return false
		}

		return items[i].LastUpdated.After(items[j].LastUpdated)
	})
}

// stageRank returns the stage order of the item's current stage within its
// resolved workflow, or unresolvedStageRank when the item has no workflow or
// its status names no stage of that workflow.
func (s *Snapshot) stageRank(item WorkItem) int {
	if item.WorkflowID == nil {
		return unresolvedStageRank
	}
	wf, ok := s.workflowByID[*item.WorkflowID]
	if !ok {
		return unresolvedStageRank
	}
	for i := range wf.Stages {
		if wf.Stages[i].ID.String() == item.Status {
			return wf.Stages[i].Order
		}
	}
	return unresolvedStageRank
}
