package store

import (
	"context"

	"github.com/daybook-hq/daybook/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Projects() Projects
	Entries() Entries
	Reports() Reports
	Todos() Todos
	WorkItems() WorkItems
	Shares() Shares
}

type Projects interface {
	Create(ctx context.Context, p *model.Project) (*model.Project, error)
	GetByID(ctx context.Context, userID, projectID string) (*model.Project, error)
	List(ctx context.Context, userID string, activeOnly bool) ([]*model.Project, error)
	Update(ctx context.Context, p *model.Project) (*model.Project, error)
}

type Entries interface {
	// Upsert inserts or replaces the entry for (user, date, isPlan).
	Upsert(ctx context.Context, e *model.DailyEntry) (*model.DailyEntry, error)
	Get(ctx context.Context, userID, date string, isPlan bool) (*model.DailyEntry, error)
	List(ctx context.Context, req model.ListEntriesRequest) ([]*model.DailyEntry, error)
	// AppendLine appends a line to the (user, date, non-plan) entry,
	// creating the entry when absent. Used by the todo completion side
	// effect; must run atomically with the status flip when invoked
	// through Todos().Complete.
	AppendLine(ctx context.Context, userID, date, line string) (*model.DailyEntry, error)
	Delete(ctx context.Context, userID, date string, isPlan bool) error
}

type Reports interface {
	// Upsert is a single atomic write keyed by (user, kind, year, index);
	// no separate existence check precedes it.
	Upsert(ctx context.Context, r *model.PeriodReport) (*model.PeriodReport, error)
	Get(ctx context.Context, userID, kind string, year, index int) (*model.PeriodReport, error)
	List(ctx context.Context, userID, kind string) ([]*model.PeriodReport, error)
}

type Todos interface {
	// Create enforces the active-item cap per project inside the write
	// transaction and returns model.ErrConflict when exceeded.
	Create(ctx context.Context, t *model.TodoItem) (*model.TodoItem, error)
	GetByID(ctx context.Context, userID, todoID string) (*model.TodoItem, error)
	ListByProject(ctx context.Context, userID, projectID string) ([]*model.TodoItem, error)
	ListAll(ctx context.Context, userID string) ([]*model.TodoItem, error)
	Update(ctx context.Context, t *model.TodoItem) (*model.TodoItem, error)
	// Complete flips the todo to completed at the given date and appends
	// the tagged line to that date's daily entry in one transaction.
	Complete(ctx context.Context, userID, todoID, completionDate, entryLine string) (*model.TodoItem, error)
	Delete(ctx context.Context, userID, todoID string) error
}

type WorkItems interface {
	Create(ctx context.Context, w *model.WorkItem) (*model.WorkItem, error)
	GetByID(ctx context.Context, userID, itemID string) (*model.WorkItem, error)
	ListByProject(ctx context.Context, userID, projectID string) ([]*model.WorkItem, error)
	Update(ctx context.Context, w *model.WorkItem) (*model.WorkItem, error)
	// Delete removes the item and its whole subtree.
	Delete(ctx context.Context, userID, itemID string) error
}

type Shares interface {
	Create(ctx context.Context, s *model.WorkBreakdownShare) (*model.WorkBreakdownShare, error)
	GetByToken(ctx context.Context, token string) (*model.WorkBreakdownShare, error)
	GetByID(ctx context.Context, userID, shareID string) (*model.WorkBreakdownShare, error)
	List(ctx context.Context, userID string) ([]*model.WorkBreakdownShare, error)
	Update(ctx context.Context, s *model.WorkBreakdownShare) (*model.WorkBreakdownShare, error)
	Delete(ctx context.Context, userID, shareID string) error
}
