// Package sqlite implements store.Store on modernc.org/sqlite for the
// local build target and tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/store"
)

// Open opens (or creates) a SQLite database at the given path and enables
// WAL journal mode. The URI parameter ensures better concurrency for
// read-heavy workloads.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Bootstrap applies the schema so a fresh database file is usable.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	for _, stmt := range store.SQLiteDDLStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// New opens the database at path, applies the schema and returns the store.
func New(ctx context.Context, path string) (store.Store, *sql.DB, error) {
	db, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	if err := Bootstrap(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return NewWithDB(db), db, nil
}

// NewWithDB constructs a sqlite store backed by an existing connection.
func NewWithDB(db *sql.DB) store.Store { return &sqlStore{db: db} }

type sqlStore struct{ db *sql.DB }

func (s *sqlStore) Projects() store.Projects   { return &projects{db: s.db} }
func (s *sqlStore) Entries() store.Entries     { return &entries{db: s.db} }
func (s *sqlStore) Reports() store.Reports     { return &reports{db: s.db} }
func (s *sqlStore) Todos() store.Todos         { return &todos{db: s.db} }
func (s *sqlStore) WorkItems() store.WorkItems { return &workItems{db: s.db} }
func (s *sqlStore) Shares() store.Shares       { return &shares{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqlStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE")
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

// --- Projects ---

type projects struct{ db *sql.DB }

func (p *projects) Create(ctx context.Context, m *model.Project) (*model.Project, error) {
	id := m.ProjectID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := p.db.ExecContext(ctx, `
        INSERT INTO projects (project_id, user_id, name, code, description, is_active, creation_time)
        VALUES (?,?,?,?,?,?,?)
    `, id, m.UserID, m.Name, m.Code, m.Description, true, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: project name or code already in use", model.ErrConflict)
		}
		return nil, err
	}
	out := *m
	out.ProjectID = id
	out.IsActive = true
	out.CreationTime = now
	return &out, nil
}

func (p *projects) GetByID(ctx context.Context, userID, projectID string) (*model.Project, error) {
	var out model.Project
	row := p.db.QueryRowContext(ctx, `
        SELECT project_id, user_id, name, code, description, is_active, creation_time
        FROM projects WHERE user_id=? AND project_id=?
    `, userID, projectID)
	if err := row.Scan(&out.ProjectID, &out.UserID, &out.Name, &out.Code, &out.Description, &out.IsActive, &out.CreationTime); err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (p *projects) List(ctx context.Context, userID string, activeOnly bool) ([]*model.Project, error) {
	q := `SELECT project_id, user_id, name, code, description, is_active, creation_time
          FROM projects WHERE user_id=?`
	if activeOnly {
		q += ` AND is_active=1`
	}
	q += ` ORDER BY creation_time ASC`
	rows, err := p.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Project
	for rows.Next() {
		var m model.Project
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.Name, &m.Code, &m.Description, &m.IsActive, &m.CreationTime); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (p *projects) Update(ctx context.Context, m *model.Project) (*model.Project, error) {
	res, err := p.db.ExecContext(ctx, `
        UPDATE projects SET name=?, code=?, description=?, is_active=?
        WHERE user_id=? AND project_id=?
    `, m.Name, m.Code, m.Description, m.IsActive, m.UserID, m.ProjectID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: project name or code already in use", model.ErrConflict)
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return p.GetByID(ctx, m.UserID, m.ProjectID)
}

// --- Entries ---

type entries struct{ db *sql.DB }

func (e *entries) Upsert(ctx context.Context, m *model.DailyEntry) (*model.DailyEntry, error) {
	now := time.Now().UTC()
	_, err := e.db.ExecContext(ctx, `
        INSERT INTO daily_entries (entry_id, user_id, entry_date, is_plan, entry_text, creation_time, update_time)
        VALUES (?,?,?,?,?,?,?)
        ON CONFLICT (user_id, entry_date, is_plan)
        DO UPDATE SET entry_text=excluded.entry_text, update_time=excluded.update_time
    `, uuid.New().String(), m.UserID, m.Date, m.IsPlan, m.Text, now, now)
	if err != nil {
		return nil, err
	}
	return e.Get(ctx, m.UserID, m.Date, m.IsPlan)
}

func (e *entries) Get(ctx context.Context, userID, date string, isPlan bool) (*model.DailyEntry, error) {
	var out model.DailyEntry
	row := e.db.QueryRowContext(ctx, `
        SELECT entry_id, user_id, entry_date, is_plan, entry_text, creation_time, update_time
        FROM daily_entries WHERE user_id=? AND entry_date=? AND is_plan=?
    `, userID, date, isPlan)
	if err := row.Scan(&out.EntryID, &out.UserID, &out.Date, &out.IsPlan, &out.Text, &out.CreationTime, &out.UpdateTime); err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (e *entries) List(ctx context.Context, req model.ListEntriesRequest) ([]*model.DailyEntry, error) {
	q := `SELECT entry_id, user_id, entry_date, is_plan, entry_text, creation_time, update_time
          FROM daily_entries WHERE user_id=?`
	args := []interface{}{req.UserID}
	if req.From != "" {
		q += ` AND entry_date>=?`
		args = append(args, req.From)
	}
	if req.To != "" {
		q += ` AND entry_date<=?`
		args = append(args, req.To)
	}
	if req.IsPlan != nil {
		q += ` AND is_plan=?`
		args = append(args, *req.IsPlan)
	}
	q += ` ORDER BY entry_date ASC, is_plan ASC`
	rows, err := e.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.DailyEntry
	for rows.Next() {
		var m model.DailyEntry
		if err := rows.Scan(&m.EntryID, &m.UserID, &m.Date, &m.IsPlan, &m.Text, &m.CreationTime, &m.UpdateTime); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (e *entries) AppendLine(ctx context.Context, userID, date, line string) (*model.DailyEntry, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()
	if err := appendLineTx(ctx, tx, userID, date, line); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return e.Get(ctx, userID, date, false)
}

// appendLineTx appends to (or creates) the non-plan entry for a date
// inside an existing transaction. Shared with the todo completion flow.
func appendLineTx(ctx context.Context, tx *sql.Tx, userID, date, line string) error {
	now := time.Now().UTC()
	var text string
	err := tx.QueryRowContext(ctx,
		`SELECT entry_text FROM daily_entries WHERE user_id=? AND entry_date=? AND is_plan=0`,
		userID, date).Scan(&text)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
            INSERT INTO daily_entries (entry_id, user_id, entry_date, is_plan, entry_text, creation_time, update_time)
            VALUES (?,?,?,0,?,?,?)
        `, uuid.New().String(), userID, date, line, now, now)
		return err
	case err != nil:
		return err
	}
	_, err = tx.ExecContext(ctx, `
        UPDATE daily_entries SET entry_text=?, update_time=?
        WHERE user_id=? AND entry_date=? AND is_plan=0
    `, text+"\n"+line, now, userID, date)
	return err
}

func (e *entries) Delete(ctx context.Context, userID, date string, isPlan bool) error {
	res, err := e.db.ExecContext(ctx,
		`DELETE FROM daily_entries WHERE user_id=? AND entry_date=? AND is_plan=?`,
		userID, date, isPlan)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Reports ---

type reports struct{ db *sql.DB }

func (r *reports) Upsert(ctx context.Context, m *model.PeriodReport) (*model.PeriodReport, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO period_reports (report_id, user_id, kind, year, period_index, rendered_text, status, generated_at)
        VALUES (?,?,?,?,?,?,?,?)
        ON CONFLICT (user_id, kind, year, period_index)
        DO UPDATE SET rendered_text=excluded.rendered_text, status=excluded.status, generated_at=excluded.generated_at
    `, uuid.New().String(), m.UserID, m.Kind, m.Year, m.Index, m.RenderedText, model.ReportGenerated, now)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, m.UserID, m.Kind, m.Year, m.Index)
}

func (r *reports) Get(ctx context.Context, userID, kind string, year, index int) (*model.PeriodReport, error) {
	var out model.PeriodReport
	row := r.db.QueryRowContext(ctx, `
        SELECT report_id, user_id, kind, year, period_index, rendered_text, status, generated_at
        FROM period_reports WHERE user_id=? AND kind=? AND year=? AND period_index=?
    `, userID, kind, year, index)
	if err := row.Scan(&out.ReportID, &out.UserID, &out.Kind, &out.Year, &out.Index, &out.RenderedText, &out.Status, &out.GeneratedAt); err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (r *reports) List(ctx context.Context, userID, kind string) ([]*model.PeriodReport, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT report_id, user_id, kind, year, period_index, rendered_text, status, generated_at
        FROM period_reports WHERE user_id=? AND kind=?
        ORDER BY year DESC, period_index DESC
    `, userID, kind)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.PeriodReport
	for rows.Next() {
		var m model.PeriodReport
		if err := rows.Scan(&m.ReportID, &m.UserID, &m.Kind, &m.Year, &m.Index, &m.RenderedText, &m.Status, &m.GeneratedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// --- Todos ---

type todos struct{ db *sql.DB }

func (t *todos) Create(ctx context.Context, m *model.TodoItem) (*model.TodoItem, error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	// Cap check inside the write transaction so a direct API call
	// cannot bypass the product rule.
	var active int
	if err := tx.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM todo_items
        WHERE user_id=? AND project_id=? AND status<>?
    `, m.UserID, m.ProjectID, model.StatusCompleted).Scan(&active); err != nil {
		return nil, err
	}
	if active >= model.MaxActiveTodos {
		return nil, fmt.Errorf("%w: project already has %d active todos", model.ErrConflict, model.MaxActiveTodos)
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	status := m.Status
	if status == "" {
		status = model.StatusNotStarted
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO todo_items (todo_id, user_id, project_id, content, priority, status, due_date, creation_time)
        VALUES (?,?,?,?,?,?,?,?)
    `, id, m.UserID, m.ProjectID, m.Content, m.Priority, status, m.DueDate, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	out := *m
	out.TodoID = id
	out.Status = status
	out.CreationTime = now
	return &out, nil
}

func (t *todos) GetByID(ctx context.Context, userID, todoID string) (*model.TodoItem, error) {
	var out model.TodoItem
	row := t.db.QueryRowContext(ctx, `
        SELECT todo_id, user_id, project_id, content, priority, status, due_date, completed_at, creation_time
        FROM todo_items WHERE user_id=? AND todo_id=?
    `, userID, todoID)
	var completed sql.NullTime
	if err := row.Scan(&out.TodoID, &out.UserID, &out.ProjectID, &out.Content, &out.Priority, &out.Status, &out.DueDate, &completed, &out.CreationTime); err != nil {
		return nil, notFound(err)
	}
	if completed.Valid {
		ts := completed.Time
		out.CompletedAt = &ts
	}
	return &out, nil
}

func (t *todos) list(ctx context.Context, q string, args ...interface{}) ([]*model.TodoItem, error) {
	rows, err := t.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.TodoItem
	for rows.Next() {
		var m model.TodoItem
		var completed sql.NullTime
		if err := rows.Scan(&m.TodoID, &m.UserID, &m.ProjectID, &m.Content, &m.Priority, &m.Status, &m.DueDate, &completed, &m.CreationTime); err != nil {
			return nil, err
		}
		if completed.Valid {
			ts := completed.Time
			m.CompletedAt = &ts
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (t *todos) ListByProject(ctx context.Context, userID, projectID string) ([]*model.TodoItem, error) {
	return t.list(ctx, `
        SELECT todo_id, user_id, project_id, content, priority, status, due_date, completed_at, creation_time
        FROM todo_items WHERE user_id=? AND project_id=? ORDER BY creation_time ASC
    `, userID, projectID)
}

func (t *todos) ListAll(ctx context.Context, userID string) ([]*model.TodoItem, error) {
	return t.list(ctx, `
        SELECT todo_id, user_id, project_id, content, priority, status, due_date, completed_at, creation_time
        FROM todo_items WHERE user_id=? ORDER BY creation_time ASC
    `, userID)
}

func (t *todos) Update(ctx context.Context, m *model.TodoItem) (*model.TodoItem, error) {
	res, err := t.db.ExecContext(ctx, `
        UPDATE todo_items SET content=?, priority=?, status=?, due_date=?
        WHERE user_id=? AND todo_id=?
    `, m.Content, m.Priority, m.Status, m.DueDate, m.UserID, m.TodoID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return t.GetByID(ctx, m.UserID, m.TodoID)
}

func (t *todos) Complete(ctx context.Context, userID, todoID, completionDate, entryLine string) (*model.TodoItem, error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var status string
	if err := tx.QueryRowContext(ctx,
		`SELECT status FROM todo_items WHERE user_id=? AND todo_id=?`,
		userID, todoID).Scan(&status); err != nil {
		return nil, notFound(err)
	}
	if status == model.StatusCompleted {
		return nil, fmt.Errorf("%w: todo already completed", model.ErrConflict)
	}

	completedAt, err := time.Parse(model.DateLayout, completionDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad completion date", model.ErrValidation)
	}
	if _, err := tx.ExecContext(ctx, `
        UPDATE todo_items SET status=?, completed_at=?
        WHERE user_id=? AND todo_id=?
    `, model.StatusCompleted, completedAt.UTC(), userID, todoID); err != nil {
		return nil, err
	}

	// A completion is not just a status flip: it also records the work
	// on the completion date's entry.
	if err := appendLineTx(ctx, tx, userID, completionDate, entryLine); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return t.GetByID(ctx, userID, todoID)
}

func (t *todos) Delete(ctx context.Context, userID, todoID string) error {
	res, err := t.db.ExecContext(ctx, `DELETE FROM todo_items WHERE user_id=? AND todo_id=?`, userID, todoID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Work items ---

type workItems struct{ db *sql.DB }

func (w *workItems) Create(ctx context.Context, m *model.WorkItem) (*model.WorkItem, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	status := m.Status
	if status == "" {
		status = model.StatusNotStarted
	}
	_, err := w.db.ExecContext(ctx, `
        INSERT INTO work_items (item_id, user_id, project_id, parent_id, title, status, sort_order, creation_time)
        VALUES (?,?,?,?,?,?,?,?)
    `, id, m.UserID, m.ProjectID, m.ParentID, m.Title, status, m.SortOrder, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.ItemID = id
	out.Status = status
	out.CreationTime = now
	return &out, nil
}

func (w *workItems) GetByID(ctx context.Context, userID, itemID string) (*model.WorkItem, error) {
	var out model.WorkItem
	row := w.db.QueryRowContext(ctx, `
        SELECT item_id, user_id, project_id, parent_id, title, status, sort_order, creation_time
        FROM work_items WHERE user_id=? AND item_id=?
    `, userID, itemID)
	if err := row.Scan(&out.ItemID, &out.UserID, &out.ProjectID, &out.ParentID, &out.Title, &out.Status, &out.SortOrder, &out.CreationTime); err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (w *workItems) ListByProject(ctx context.Context, userID, projectID string) ([]*model.WorkItem, error) {
	rows, err := w.db.QueryContext(ctx, `
        SELECT item_id, user_id, project_id, parent_id, title, status, sort_order, creation_time
        FROM work_items WHERE user_id=? AND project_id=?
        ORDER BY sort_order ASC, creation_time ASC
    `, userID, projectID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.WorkItem
	for rows.Next() {
		var m model.WorkItem
		if err := rows.Scan(&m.ItemID, &m.UserID, &m.ProjectID, &m.ParentID, &m.Title, &m.Status, &m.SortOrder, &m.CreationTime); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (w *workItems) Update(ctx context.Context, m *model.WorkItem) (*model.WorkItem, error) {
	res, err := w.db.ExecContext(ctx, `
        UPDATE work_items SET parent_id=?, title=?, status=?, sort_order=?
        WHERE user_id=? AND item_id=?
    `, m.ParentID, m.Title, m.Status, m.SortOrder, m.UserID, m.ItemID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return w.GetByID(ctx, m.UserID, m.ItemID)
}

func (w *workItems) Delete(ctx context.Context, userID, itemID string) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Walk the subtree breadth-first; sqlite recursive CTEs would also
	// work but this keeps parity with the postgres adapter. The visited
	// set keeps the walk terminating even if the stored tree has a cycle.
	pending := []string{itemID}
	seen := map[string]bool{}
	var all []string
	for len(pending) > 0 {
		id := pending[0]
		pending = pending[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		all = append(all, id)
		rows, err := tx.QueryContext(ctx,
			`SELECT item_id FROM work_items WHERE user_id=? AND parent_id=?`, userID, id)
		if err != nil {
			return err
		}
		for rows.Next() {
			var child string
			if err := rows.Scan(&child); err != nil {
				_ = rows.Close()
				return err
			}
			pending = append(pending, child)
		}
		if err := rows.Err(); err != nil {
			_ = rows.Close()
			return err
		}
		_ = rows.Close()
	}

	var deleted int64
	for _, id := range all {
		res, err := tx.ExecContext(ctx, `DELETE FROM work_items WHERE user_id=? AND item_id=?`, userID, id)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		deleted += n
	}
	if deleted == 0 {
		return model.ErrNotFound
	}
	return tx.Commit()
}

// --- Shares ---

type shares struct{ db *sql.DB }

func (s *shares) Create(ctx context.Context, m *model.WorkBreakdownShare) (*model.WorkBreakdownShare, error) {
	id := uuid.New().String()
	token := m.Token
	if token == "" {
		token = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO work_breakdown_shares (share_id, user_id, project_id, token, password_hash, expires_at, active, creation_time)
        VALUES (?,?,?,?,?,?,?,?)
    `, id, m.UserID, m.ProjectID, token, m.PasswordHash, m.ExpiresAt, true, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.ShareID = id
	out.Token = token
	out.HasPassword = m.PasswordHash != nil
	out.Active = true
	out.CreationTime = now
	return &out, nil
}

func scanShare(row *sql.Row) (*model.WorkBreakdownShare, error) {
	var out model.WorkBreakdownShare
	var expires sql.NullTime
	if err := row.Scan(&out.ShareID, &out.UserID, &out.ProjectID, &out.Token, &out.PasswordHash, &expires, &out.Active, &out.CreationTime); err != nil {
		return nil, notFound(err)
	}
	if expires.Valid {
		ts := expires.Time
		out.ExpiresAt = &ts
	}
	out.HasPassword = out.PasswordHash != nil
	return &out, nil
}

const shareCols = `share_id, user_id, project_id, token, password_hash, expires_at, active, creation_time`

func (s *shares) GetByToken(ctx context.Context, token string) (*model.WorkBreakdownShare, error) {
	return scanShare(s.db.QueryRowContext(ctx,
		`SELECT `+shareCols+` FROM work_breakdown_shares WHERE token=?`, token))
}

func (s *shares) GetByID(ctx context.Context, userID, shareID string) (*model.WorkBreakdownShare, error) {
	return scanShare(s.db.QueryRowContext(ctx,
		`SELECT `+shareCols+` FROM work_breakdown_shares WHERE user_id=? AND share_id=?`, userID, shareID))
}

func (s *shares) List(ctx context.Context, userID string) ([]*model.WorkBreakdownShare, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+shareCols+` FROM work_breakdown_shares WHERE user_id=? ORDER BY creation_time DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.WorkBreakdownShare
	for rows.Next() {
		var m model.WorkBreakdownShare
		var expires sql.NullTime
		if err := rows.Scan(&m.ShareID, &m.UserID, &m.ProjectID, &m.Token, &m.PasswordHash, &expires, &m.Active, &m.CreationTime); err != nil {
			return nil, err
		}
		if expires.Valid {
			ts := expires.Time
			m.ExpiresAt = &ts
		}
		m.HasPassword = m.PasswordHash != nil
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (s *shares) Update(ctx context.Context, m *model.WorkBreakdownShare) (*model.WorkBreakdownShare, error) {
	res, err := s.db.ExecContext(ctx, `
        UPDATE work_breakdown_shares SET password_hash=?, expires_at=?, active=?
        WHERE user_id=? AND share_id=?
    `, m.PasswordHash, m.ExpiresAt, m.Active, m.UserID, m.ShareID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return s.GetByID(ctx, m.UserID, m.ShareID)
}

func (s *shares) Delete(ctx context.Context, userID, shareID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM work_breakdown_shares WHERE user_id=? AND share_id=?`, userID, shareID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}
