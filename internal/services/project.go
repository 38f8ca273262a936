package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/store"
)

// ProjectService orchestrates project CRUD.
type ProjectService struct {
	store store.Store
}

func NewProjectService(s store.Store) *ProjectService {
	return &ProjectService{store: s}
}

func (s *ProjectService) CreateProject(ctx context.Context, p *model.Project) (*model.Project, error) {
	created, err := s.store.Projects().Create(ctx, p)
	if errors.Is(err, model.ErrConflict) {
		// Duplicate name/code is a validation failure at this boundary,
		// not a concurrency conflict.
		return nil, fmt.Errorf("%w: project name or code already in use", model.ErrValidation)
	}
	return created, err
}

func (s *ProjectService) GetProject(ctx context.Context, userID, projectID string) (*model.Project, error) {
	return s.store.Projects().GetByID(ctx, userID, projectID)
}

func (s *ProjectService) ListProjects(ctx context.Context, userID string, activeOnly bool) ([]*model.Project, error) {
	return s.store.Projects().List(ctx, userID, activeOnly)
}

func (s *ProjectService) UpdateProject(ctx context.Context, p *model.Project) (*model.Project, error) {
	return s.store.Projects().Update(ctx, p)
}

// ArchiveProject deactivates a project instead of deleting it, so its
// history keeps resolving in old reports.
func (s *ProjectService) ArchiveProject(ctx context.Context, userID, projectID string) (*model.Project, error) {
	p, err := s.store.Projects().GetByID(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	p.IsActive = false
	return s.store.Projects().Update(ctx, p)
}
