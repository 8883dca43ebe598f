package service

import "github.com/google/uuid"

// ResolveWorkflow determines which workflow governs an item.
//
// An explicit assignment on the item always wins, even when the id does not
// resolve to a known workflow; dangling references are handled downstream by
// status normalization, which treats them like "no workflow". Without an
// explicit assignment the default (first) workflow of the item's catalog
// service applies. Items with neither stay workflow-less.
func (s *Snapshot) ResolveWorkflow(item RawServiceItem) *uuid.UUID {
	if item.WorkflowID != nil {
		id := *item.WorkflowID
		return &id
	}
	if item.ServiceID == nil {
		return nil
	}
	svc, ok := s.serviceByID[*item.ServiceID]
	if !ok || len(svc.Workflows) == 0 {
		return nil
	}
	id := svc.Workflows[0].WorkflowID
	return &id
}
