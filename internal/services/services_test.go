package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/store"
	"github.com/daybook-hq/daybook/internal/store/sqlite"
)

// newTestStore returns a throwaway sqlite-backed store.
func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "daybook.db"))
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.Bootstrap(context.Background(), db); err != nil {
		t.Fatalf("sqlite bootstrap: %v", err)
	}
	return sqlite.NewWithDB(db)
}

func mustProject(t *testing.T, s store.Store, userID, name string, code *string) *model.Project {
	t.Helper()
	p, err := s.Projects().Create(context.Background(), &model.Project{UserID: userID, Name: name, Code: code})
	if err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}
	return p
}

func mustEntry(t *testing.T, s store.Store, userID, date, text string) {
	t.Helper()
	if _, err := s.Entries().Upsert(context.Background(), &model.DailyEntry{UserID: userID, Date: date, Text: text}); err != nil {
		t.Fatalf("upsert entry %s: %v", date, err)
	}
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }
