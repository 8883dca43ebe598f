package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Snapshot is one immutable recomputation input and output: the three source
// collections, the lookup indexes built over them, and the fully derived
// item set. A new snapshot is built from scratch on every change
// notification; nothing is mutated in place afterwards, so readers never
// observe partial state.
type Snapshot struct {
	Orders    []Order
	Workflows []Workflow
	Services  []CatalogService
	Items     []WorkItem

	// Warnings lists data-quality findings discovered while building the
	// snapshot. They are diagnostic, never fatal.
	Warnings []string

	workflowByID map[uuid.UUID]*Workflow
	stageByID    map[uuid.UUID]stageLocator
	serviceByID  map[uuid.UUID]*CatalogService
}

// stageLocator points at a stage together with its owning workflow.
type stageLocator struct {
	workflow *Workflow
	stage    *Stage
}

// NewSnapshot builds a snapshot from the three source collections. The
// snapshot takes ownership of the slices: stages are sorted ascending by
// stage order and catalog workflow sequences ascending by sequence order, so
// positional access (entry stage, default workflow) is well defined
// everywhere downstream.
func NewSnapshot(orders []Order, workflows []Workflow, services []CatalogService) *Snapshot {
	s := &Snapshot{
		Orders:       orders,
		Workflows:    workflows,
		Services:     services,
		workflowByID: make(map[uuid.UUID]*Workflow, len(workflows)),
		stageByID:    make(map[uuid.UUID]stageLocator),
		serviceByID:  make(map[uuid.UUID]*CatalogService, len(services)),
	}

	for i := range s.Workflows {
		wf := &s.Workflows[i]
		sort.SliceStable(wf.Stages, func(a, b int) bool {
			return wf.Stages[a].Order < wf.Stages[b].Order
		})
		s.workflowByID[wf.ID] = wf
		s.indexStages(wf)
	}

	for i := range s.Services {
		svc := &s.Services[i]
		sort.SliceStable(svc.Workflows, func(a, b int) bool {
			return svc.Workflows[a].Order < svc.Workflows[b].Order
		})
		s.serviceByID[svc.ID] = svc
	}

	s.Items = s.deriveItems()
	return s
}

// indexStages registers a workflow's stages in the global stage index and
// records name collisions that would make legacy label matching ambiguous.
func (s *Snapshot) indexStages(wf *Workflow) {
	namesSeen := make(map[string]string, len(wf.Stages))
	for i := range wf.Stages {
		stage := &wf.Stages[i]
		s.stageByID[stage.ID] = stageLocator{workflow: wf, stage: stage}

		key := strings.ToLower(stage.Name)
		if first, dup := namesSeen[key]; dup {
			s.Warnings = append(s.Warnings, fmt.Sprintf(
				"workflow %q has multiple stages named %q; legacy status matching resolves to stage %s",
				wf.Label, stage.Name, first,
			))
			continue
		}
		namesSeen[key] = stage.ID.String()
	}
}

// Workflow returns the workflow definition for the given id.
func (s *Snapshot) Workflow(id uuid.UUID) (*Workflow, bool) {
	wf, ok := s.workflowByID[id]
	return wf, ok
}

// StageByID locates a stage by id across all workflows.
func (s *Snapshot) StageByID(id uuid.UUID) (*Workflow, *Stage, bool) {
	loc, ok := s.stageByID[id]
	if !ok {
		return nil, nil, false
	}
	return loc.workflow, loc.stage, true
}

// Service returns the catalog entry for the given service id.
func (s *Snapshot) Service(id uuid.UUID) (*CatalogService, bool) {
	svc, ok := s.serviceByID[id]
	return svc, ok
}

// FilteredItems returns the derived items selected by the filter, preserving
// derivation order.
func (s *Snapshot) FilteredItems(filter ItemFilter) []WorkItem {
	items := make([]WorkItem, 0, len(s.Items))
	for _, item := range s.Items {
		if filter.matches(item) {
			items = append(items, item)
		}
	}
	return items
}
