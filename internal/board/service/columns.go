package service

import (
	"github.com/google/uuid"
)

// Columns builds the ordered column set for the requested view mode over the
// filter-selected item set.
//
// ALL mode produces one column per distinct workflow referenced by the
// workflow sequence of any service attached to a selected item. Columns
// appear in first-appearance order over the derived item set, which is
// stable across recomputations of the same input.
//
// Any other value selects single-workflow view: one column per stage of that
// workflow ascending by stage order, followed by the two fixed sentinel
// columns. An unknown workflow id leaves only the sentinels.
func (s *Snapshot) Columns(activeWorkflow string, filter ItemFilter) []Column {
	if activeWorkflow == ActiveAll {
		return s.workflowColumns(filter)
	}
	return s.stageColumns(activeWorkflow)
}

func (s *Snapshot) workflowColumns(filter ItemFilter) []Column {
	seen := make(map[uuid.UUID]struct{})
	columns := make([]Column, 0)

	for _, item := range s.Items {
		if !filter.matches(item) || item.ServiceID == nil {
			continue
		}
		svc, ok := s.serviceByID[*item.ServiceID]
		if !ok {
			continue
		}
		for _, ref := range svc.Workflows {
			if _, dup := seen[ref.WorkflowID]; dup {
				continue
			}
			seen[ref.WorkflowID] = struct{}{}

			// A sequence entry pointing at no known workflow yields no
			// column; there is no definition to title it with.
			wf, ok := s.workflowByID[ref.WorkflowID]
			if !ok {
				continue
			}
			columns = append(columns, Column{
				ID:    wf.ID.String(),
				Title: wf.Label,
				Order: len(columns),
			})
		}
	}
	return columns
}

func (s *Snapshot) stageColumns(activeWorkflow string) []Column {
	columns := make([]Column, 0, 8)

	if id, err := uuid.Parse(activeWorkflow); err == nil {
		if wf, ok := s.workflowByID[id]; ok {
			for i := range wf.Stages {
				columns = append(columns, Column{
					ID:    wf.Stages[i].ID.String(),
					Title: wf.Stages[i].Name,
					Order: len(columns),
				})
			}
		}
	}

	columns = append(columns,
		Column{ID: ColumnDone, Title: titleDone, Order: len(columns)},
		Column{ID: ColumnCancel, Title: titleCancel, Order: len(columns) + 1},
	)
	return columns
}
