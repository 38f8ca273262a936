package services

import (
	"context"
	"sync"
	"time"

	"github.com/daybook-hq/daybook/internal/cache"
	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/report"
	"github.com/daybook-hq/daybook/internal/rollup"
	"github.com/daybook-hq/daybook/internal/store"
)

// DashboardSummary backs the sidebar badges: outstanding-work counters
// plus the latest completions.
type DashboardSummary struct {
	rollup.Summary
	RecentlyCompleted []*model.TodoItem `json:"recentlyCompleted"`
}

// TodoService orchestrates todo use cases, including the completion side
// effect that writes back into the daily entry.
type TodoService struct {
	store store.Store
	ttl   time.Duration

	// Summary reads vastly outnumber todo writes, so the roll-up is cached
	// per user and invalidated on any write.
	mu      sync.Mutex
	summary map[string]cache.Entry[DashboardSummary]
}

func NewTodoService(s store.Store, ttl time.Duration) *TodoService {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &TodoService{store: s, ttl: ttl, summary: make(map[string]cache.Entry[DashboardSummary])}
}

func (s *TodoService) invalidate(userID string) {
	s.mu.Lock()
	delete(s.summary, userID)
	s.mu.Unlock()
}

func (s *TodoService) CreateTodo(ctx context.Context, t *model.TodoItem) (*model.TodoItem, error) {
	out, err := s.store.Todos().Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.invalidate(t.UserID)
	return out, nil
}

func (s *TodoService) GetTodo(ctx context.Context, userID, todoID string) (*model.TodoItem, error) {
	return s.store.Todos().GetByID(ctx, userID, todoID)
}

func (s *TodoService) ListTodos(ctx context.Context, userID, projectID string) ([]*model.TodoItem, error) {
	return s.store.Todos().ListByProject(ctx, userID, projectID)
}

func (s *TodoService) ListAllTodos(ctx context.Context, userID string) ([]*model.TodoItem, error) {
	return s.store.Todos().ListAll(ctx, userID)
}

func (s *TodoService) UpdateTodo(ctx context.Context, t *model.TodoItem) (*model.TodoItem, error) {
	out, err := s.store.Todos().Update(ctx, t)
	if err != nil {
		return nil, err
	}
	s.invalidate(t.UserID)
	return out, nil
}

// CompleteTodo marks the todo completed on completionDate and appends a
// project-tagged record of the work to that date's daily entry. The two
// writes happen in one store transaction.
func (s *TodoService) CompleteTodo(ctx context.Context, userID, todoID, completionDate string) (*model.TodoItem, error) {
	td, err := s.store.Todos().GetByID(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}
	p, err := s.store.Projects().GetByID(ctx, userID, td.ProjectID)
	if err != nil {
		return nil, err
	}
	// Projects without a code still get an aggregatable tag.
	code := p.Name
	if p.Code != nil && *p.Code != "" {
		code = *p.Code
	}
	line := report.FormatTag(p.Name, code, td.Content)

	out, err := s.store.Todos().Complete(ctx, userID, todoID, completionDate, line)
	if err != nil {
		return nil, err
	}
	s.invalidate(userID)
	return out, nil
}

func (s *TodoService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	if err := s.store.Todos().Delete(ctx, userID, todoID); err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// Summary returns the cached dashboard roll-up, refreshing it when stale.
func (s *TodoService) Summary(ctx context.Context, userID string) (*DashboardSummary, error) {
	now := time.Now()

	s.mu.Lock()
	ent, ok := s.summary[userID]
	s.mu.Unlock()
	if ok && !ent.Stale(now, s.ttl) {
		out := ent.Data
		return &out, nil
	}

	todos, err := s.store.Todos().ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum := DashboardSummary{
		Summary:           rollup.Rollup(todos),
		RecentlyCompleted: rollup.RecentlyCompleted(todos, 10),
	}

	s.mu.Lock()
	s.summary[userID] = cache.NewEntry(sum, now)
	s.mu.Unlock()
	return &sum, nil
}
