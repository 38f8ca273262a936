package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/daybook-hq/daybook/internal/model"
)

func newMockStore(t *testing.T) (*pgStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &pgStore{db: db}, mock
}

func TestReportUpsert_SingleAtomicStatement(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	now := time.Now()

	// The write must be one INSERT ... ON CONFLICT, never a read-then-write
	// pair, so concurrent regenerations cannot race.
	mock.ExpectExec(`INSERT INTO period_reports .*ON CONFLICT \(user_id, kind, year, period_index\)`).
		WithArgs(sqlmock.AnyArg(), "u1", "week", 2024, 10, "rendered", model.ReportGenerated).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .* FROM period_reports WHERE`).
		WithArgs("u1", "week", 2024, 10).
		WillReturnRows(sqlmock.NewRows([]string{"report_id", "user_id", "kind", "year", "period_index", "rendered_text", "status", "generated_at"}).
			AddRow("r1", "u1", "week", 2024, 10, "rendered", model.ReportGenerated, now))

	got, err := s.Reports().Upsert(ctx, &model.PeriodReport{UserID: "u1", Kind: "week", Year: 2024, Index: 10, RenderedText: "rendered"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if got.RenderedText != "rendered" || got.Status != model.ReportGenerated {
		t.Fatalf("Upsert result: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestProjectCreate_UniqueViolationMapsToConflict(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO projects`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_projects_user_code"})

	_, err := s.Projects().Create(ctx, &model.Project{UserID: "u1", Name: "Alpha"})
	if !errors.Is(err, model.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTodoCreate_CapCheckedInTransaction(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM todo_items`).
		WithArgs("u1", "p1", model.StatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(model.MaxActiveTodos))
	mock.ExpectRollback()

	_, err := s.Todos().Create(ctx, &model.TodoItem{UserID: "u1", ProjectID: "p1", Content: "x", Priority: model.PriorityLow})
	if !errors.Is(err, model.ErrConflict) {
		t.Fatalf("want ErrConflict at cap, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAppendLine_UpsertConcatenates(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO daily_entries .*DO UPDATE SET entry_text = daily_entries\.entry_text`).
		WithArgs(sqlmock.AnyArg(), "u1", "2024-03-08", "[Alpha (AL)] done").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT .* FROM daily_entries WHERE`).
		WithArgs("u1", "2024-03-08", false).
		WillReturnRows(sqlmock.NewRows([]string{"entry_id", "user_id", "entry_date", "is_plan", "entry_text", "creation_time", "update_time"}).
			AddRow("e1", "u1", "2024-03-08", false, "prior\n[Alpha (AL)] done", now, now))

	got, err := s.Entries().AppendLine(ctx, "u1", "2024-03-08", "[Alpha (AL)] done")
	if err != nil {
		t.Fatalf("AppendLine: %v", err)
	}
	if got.Text != "prior\n[Alpha (AL)] done" {
		t.Fatalf("AppendLine text: %q", got.Text)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
