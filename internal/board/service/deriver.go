package service

// deriveItems flattens the snapshot's orders into board work items.
//
// Product lines never appear on the board. Every surviving item gets the
// order-level fields copied on, its governing workflow resolved, and its
// status normalized against that workflow. The function is pure: rerunning
// it on an unchanged snapshot yields an equal item set in the same order.
func (s *Snapshot) deriveItems() []WorkItem {
	var count int
	for i := range s.Orders {
		count += len(s.Orders[i].Items)
	}

	items := make([]WorkItem, 0, count)
	for i := range s.Orders {
		order := &s.Orders[i]
		for _, raw := range order.Items {
			if raw.IsProduct {
				continue
			}

			workflowID := s.ResolveWorkflow(raw)
			status := s.NormalizeStatus(ParseStatus(raw.Status), workflowID)

			items = append(items, WorkItem{
				ID:               raw.ID,
				OrderID:          order.ID,
				CustomerName:     order.CustomerName,
				ExpectedDelivery: order.ExpectedDelivery,
				Name:             raw.Name,
				ServiceID:        raw.ServiceID,
				WorkflowID:       workflowID,
				Status:           status,
				History:          raw.History,
				PriceCents:       raw.PriceCents,
				LastUpdated:      raw.LastUpdated,
			})
		}
	}
	return items
}
