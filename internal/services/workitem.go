package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/store"
)

// WorkItemService orchestrates work-breakdown tree use cases.
type WorkItemService struct {
	store store.Store
}

func NewWorkItemService(s store.Store) *WorkItemService {
	return &WorkItemService{store: s}
}

func (s *WorkItemService) CreateWorkItem(ctx context.Context, w *model.WorkItem) (*model.WorkItem, error) {
	if err := s.checkParent(ctx, w); err != nil {
		return nil, err
	}
	return s.store.WorkItems().Create(ctx, w)
}

func (s *WorkItemService) GetWorkItem(ctx context.Context, userID, itemID string) (*model.WorkItem, error) {
	return s.store.WorkItems().GetByID(ctx, userID, itemID)
}

func (s *WorkItemService) UpdateWorkItem(ctx context.Context, w *model.WorkItem) (*model.WorkItem, error) {
	if err := s.checkParent(ctx, w); err != nil {
		return nil, err
	}
	return s.store.WorkItems().Update(ctx, w)
}

// checkParent verifies the parent exists under the same project and that
// adopting it keeps the tree acyclic: walking the parent's ancestor chain
// must never reach the item itself.
func (s *WorkItemService) checkParent(ctx context.Context, w *model.WorkItem) error {
	if w.ParentID == nil {
		return nil
	}
	items, err := s.store.WorkItems().ListByProject(ctx, w.UserID, w.ProjectID)
	if err != nil {
		return err
	}
	byID := make(map[string]*model.WorkItem, len(items))
	for _, it := range items {
		byID[it.ItemID] = it
	}
	parent, ok := byID[*w.ParentID]
	if !ok {
		return model.ErrNotFound
	}
	for cur := parent; cur != nil; {
		if cur.ItemID == w.ItemID {
			return fmt.Errorf("%w: parent would create a cycle", model.ErrValidation)
		}
		if cur.ParentID == nil {
			break
		}
		cur = byID[*cur.ParentID]
	}
	return nil
}

// DeleteWorkItem removes the item and everything under it.
func (s *WorkItemService) DeleteWorkItem(ctx context.Context, userID, itemID string) error {
	return s.store.WorkItems().Delete(ctx, userID, itemID)
}

// Tree returns a project's work items as a forest, children ordered by
// sort order then creation time.
func (s *WorkItemService) Tree(ctx context.Context, userID, projectID string) ([]*model.WorkItemNode, error) {
	items, err := s.store.WorkItems().ListByProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	return BuildTree(items), nil
}

// BuildTree links a flat item list into a forest. Items whose parent is
// missing from the list surface as roots rather than disappearing.
func BuildTree(items []*model.WorkItem) []*model.WorkItemNode {
	nodes := make(map[string]*model.WorkItemNode, len(items))
	for _, it := range items {
		nodes[it.ItemID] = &model.WorkItemNode{WorkItem: *it, Children: []*model.WorkItemNode{}}
	}
	var roots []*model.WorkItemNode
	for _, it := range items {
		n := nodes[it.ItemID]
		if it.ParentID != nil {
			if parent, ok := nodes[*it.ParentID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	sortNodes(roots)
	for _, n := range nodes {
		sortNodes(n.Children)
	}
	return roots
}

func sortNodes(ns []*model.WorkItemNode) {
	sort.SliceStable(ns, func(i, j int) bool {
		if ns[i].SortOrder != ns[j].SortOrder {
			return ns[i].SortOrder < ns[j].SortOrder
		}
		return ns[i].CreationTime.Before(ns[j].CreationTime)
	})
}
