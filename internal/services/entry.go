package services

import (
	"context"

	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/store"
)

// EntryService orchestrates daily-entry use cases.
type EntryService struct {
	store store.Store
}

func NewEntryService(s store.Store) *EntryService {
	return &EntryService{store: s}
}

// PutEntry saves the full text for (user, date, isPlan), replacing any
// prior text for that slot.
func (s *EntryService) PutEntry(ctx context.Context, e *model.DailyEntry) (*model.DailyEntry, error) {
	return s.store.Entries().Upsert(ctx, e)
}

func (s *EntryService) GetEntry(ctx context.Context, userID, date string, isPlan bool) (*model.DailyEntry, error) {
	return s.store.Entries().Get(ctx, userID, date, isPlan)
}

func (s *EntryService) ListEntries(ctx context.Context, req model.ListEntriesRequest) ([]*model.DailyEntry, error) {
	return s.store.Entries().List(ctx, req)
}

func (s *EntryService) DeleteEntry(ctx context.Context, userID, date string, isPlan bool) error {
	return s.store.Entries().Delete(ctx, userID, date, isPlan)
}
