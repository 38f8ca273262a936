package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/store"
)

var (
	// ErrSharePasswordRequired means the share is protected and no
	// password accompanied the request.
	ErrSharePasswordRequired = errors.New("share password required")
	// ErrSharePasswordInvalid means the presented password did not match.
	ErrSharePasswordInvalid = errors.New("share password invalid")
)

// SharedProject is one project's read-only work-breakdown view.
type SharedProject struct {
	Project *model.Project        `json:"project"`
	Items   []*model.WorkItemNode `json:"items"`
}

// SharedView is what a share consumer sees after passing all gates.
type SharedView struct {
	Share    *model.WorkBreakdownShare `json:"share"`
	Projects []SharedProject           `json:"projects"`
}

// CreateShareRequest carries the owner's share settings.
type CreateShareRequest struct {
	UserID        string
	ProjectID     *string // nil shares every active project
	Password      *string
	ExpiresInDays *int // nil means no expiry
}

// ShareService manages password-protected read-only share links over
// work-breakdown trees.
type ShareService struct {
	store     store.Store
	workItems *WorkItemService
}

func NewShareService(s store.Store, wi *WorkItemService) *ShareService {
	return &ShareService{store: s, workItems: wi}
}

func (s *ShareService) CreateShare(ctx context.Context, req CreateShareRequest) (*model.WorkBreakdownShare, error) {
	if req.ProjectID != nil {
		if _, err := s.store.Projects().GetByID(ctx, req.UserID, *req.ProjectID); err != nil {
			return nil, err
		}
	}
	sh := &model.WorkBreakdownShare{UserID: req.UserID, ProjectID: req.ProjectID}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		sh.PasswordHash = &h
	}
	if req.ExpiresInDays != nil {
		exp := time.Now().UTC().AddDate(0, 0, *req.ExpiresInDays)
		sh.ExpiresAt = &exp
	}
	return s.store.Shares().Create(ctx, sh)
}

func (s *ShareService) ListShares(ctx context.Context, userID string) ([]*model.WorkBreakdownShare, error) {
	return s.store.Shares().List(ctx, userID)
}

// RevokeShare deactivates the link without deleting it, so consumers get
// the "disabled" message rather than "not found".
func (s *ShareService) RevokeShare(ctx context.Context, userID, shareID string) (*model.WorkBreakdownShare, error) {
	sh, err := s.store.Shares().GetByID(ctx, userID, shareID)
	if err != nil {
		return nil, err
	}
	sh.Active = false
	return s.store.Shares().Update(ctx, sh)
}

func (s *ShareService) DeleteShare(ctx context.Context, userID, shareID string) error {
	return s.store.Shares().Delete(ctx, userID, shareID)
}

// ResolveShare checks every gate in order and returns the shared trees.
// The three failure modes stay distinct so the consumer page can say
// exactly why a link stopped working.
func (s *ShareService) ResolveShare(ctx context.Context, token, password string) (*SharedView, error) {
	sh, err := s.store.Shares().GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrShareNotFound
		}
		return nil, err
	}
	if !sh.Active {
		return nil, model.ErrShareDisabled
	}
	if sh.ExpiresAt != nil && time.Now().After(*sh.ExpiresAt) {
		return nil, model.ErrShareExpired
	}
	if sh.PasswordHash != nil {
		if password == "" {
			return nil, ErrSharePasswordRequired
		}
		if bcrypt.CompareHashAndPassword([]byte(*sh.PasswordHash), []byte(password)) != nil {
			return nil, ErrSharePasswordInvalid
		}
	}

	var projects []*model.Project
	if sh.ProjectID != nil {
		p, err := s.store.Projects().GetByID(ctx, sh.UserID, *sh.ProjectID)
		if err != nil {
			return nil, err
		}
		projects = []*model.Project{p}
	} else {
		projects, err = s.store.Projects().List(ctx, sh.UserID, true)
		if err != nil {
			return nil, err
		}
	}

	view := &SharedView{Share: sh, Projects: make([]SharedProject, 0, len(projects))}
	for _, p := range projects {
		items, err := s.workItems.Tree(ctx, sh.UserID, p.ProjectID)
		if err != nil {
			return nil, err
		}
		view.Projects = append(view.Projects, SharedProject{Project: p, Items: items})
	}
	return view, nil
}
