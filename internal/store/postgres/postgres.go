// Package postgres implements store.Store on PostgreSQL for the cloud
// build target.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/store"
)

// psql builds queries with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Open opens a PostgreSQL connection using the pgx stdlib driver and
// verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Bootstrap applies the schema; deployments that migrate out of band can
// skip it, every statement is idempotent.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	for _, stmt := range store.PostgresDDLStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// NewWithDB constructs a native Postgres store backed by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Projects() store.Projects   { return &projects{db: s.db} }
func (s *pgStore) Entries() store.Entries     { return &entries{db: s.db} }
func (s *pgStore) Reports() store.Reports     { return &reports{db: s.db} }
func (s *pgStore) Todos() store.Todos         { return &todos{db: s.db} }
func (s *pgStore) WorkItems() store.WorkItems { return &workItems{db: s.db} }
func (s *pgStore) Shares() store.Shares       { return &shares{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
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
	var created time.Time
	row := p.db.QueryRowContext(ctx, `
        INSERT INTO projects (project_id, user_id, name, code, description, is_active)
        VALUES ($1,$2,$3,$4,$5,TRUE)
        RETURNING creation_time
    `, id, m.UserID, m.Name, m.Code, m.Description)
	if err := row.Scan(&created); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: project name or code already in use", model.ErrConflict)
		}
		return nil, err
	}
	out := *m
	out.ProjectID = id
	out.IsActive = true
	out.CreationTime = created
	return &out, nil
}

func (p *projects) GetByID(ctx context.Context, userID, projectID string) (*model.Project, error) {
	var out model.Project
	row := p.db.QueryRowContext(ctx, `
        SELECT project_id, user_id, name, code, description, is_active, creation_time
        FROM projects WHERE user_id=$1 AND project_id=$2
    `, userID, projectID)
	if err := row.Scan(&out.ProjectID, &out.UserID, &out.Name, &out.Code, &out.Description, &out.IsActive, &out.CreationTime); err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (p *projects) List(ctx context.Context, userID string, activeOnly bool) ([]*model.Project, error) {
	q := psql.Select("project_id", "user_id", "name", "code", "description", "is_active", "creation_time").
		From("projects").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("creation_time ASC")
	if activeOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := p.db.QueryContext(ctx, sqlStr, args...)
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
        UPDATE projects SET name=$1, code=$2, description=$3, is_active=$4
        WHERE user_id=$5 AND project_id=$6
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
	_, err := e.db.ExecContext(ctx, `
        INSERT INTO daily_entries (entry_id, user_id, entry_date, is_plan, entry_text)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (user_id, entry_date, is_plan)
        DO UPDATE SET entry_text=EXCLUDED.entry_text, update_time=now()
    `, uuid.New().String(), m.UserID, m.Date, m.IsPlan, m.Text)
	if err != nil {
		return nil, err
	}
	return e.Get(ctx, m.UserID, m.Date, m.IsPlan)
}

func (e *entries) Get(ctx context.Context, userID, date string, isPlan bool) (*model.DailyEntry, error) {
	var out model.DailyEntry
	row := e.db.QueryRowContext(ctx, `
        SELECT entry_id, user_id, entry_date, is_plan, entry_text, creation_time, update_time
        FROM daily_entries WHERE user_id=$1 AND entry_date=$2 AND is_plan=$3
    `, userID, date, isPlan)
	if err := row.Scan(&out.EntryID, &out.UserID, &out.Date, &out.IsPlan, &out.Text, &out.CreationTime, &out.UpdateTime); err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (e *entries) List(ctx context.Context, req model.ListEntriesRequest) ([]*model.DailyEntry, error) {
	q := psql.Select("entry_id", "user_id", "entry_date", "is_plan", "entry_text", "creation_time", "update_time").
		From("daily_entries").
		Where(squirrel.Eq{"user_id": req.UserID}).
		OrderBy("entry_date ASC", "is_plan ASC")
	if req.From != "" {
		q = q.Where(squirrel.GtOrEq{"entry_date": req.From})
	}
	if req.To != "" {
		q = q.Where(squirrel.LtOrEq{"entry_date": req.To})
	}
	if req.IsPlan != nil {
		q = q.Where(squirrel.Eq{"is_plan": *req.IsPlan})
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := e.db.QueryContext(ctx, sqlStr, args...)
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
	tx, err := e.db.BeginTx(ctx, &sql.TxOptions{})
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

// appendLineTx appends to (or creates) the non-plan entry for a date as
// a single upsert. Shared with the todo completion flow.
func appendLineTx(ctx context.Context, tx *sql.Tx, userID, date, line string) error {
	_, err := tx.ExecContext(ctx, `
        INSERT INTO daily_entries (entry_id, user_id, entry_date, is_plan, entry_text)
        VALUES ($1,$2,$3,FALSE,$4)
        ON CONFLICT (user_id, entry_date, is_plan)
        DO UPDATE SET entry_text = daily_entries.entry_text || E'\n' || EXCLUDED.entry_text,
                      update_time = now()
    `, uuid.New().String(), userID, date, line)
	return err
}

func (e *entries) Delete(ctx context.Context, userID, date string, isPlan bool) error {
	res, err := e.db.ExecContext(ctx,
		`DELETE FROM daily_entries WHERE user_id=$1 AND entry_date=$2 AND is_plan=$3`,
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
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO period_reports (report_id, user_id, kind, year, period_index, rendered_text, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (user_id, kind, year, period_index)
        DO UPDATE SET rendered_text=EXCLUDED.rendered_text, status=EXCLUDED.status, generated_at=now()
    `, uuid.New().String(), m.UserID, m.Kind, m.Year, m.Index, m.RenderedText, model.ReportGenerated)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, m.UserID, m.Kind, m.Year, m.Index)
}

func (r *reports) Get(ctx context.Context, userID, kind string, year, index int) (*model.PeriodReport, error) {
	var out model.PeriodReport
	row := r.db.QueryRowContext(ctx, `
        SELECT report_id, user_id, kind, year, period_index, rendered_text, status, generated_at
        FROM period_reports WHERE user_id=$1 AND kind=$2 AND year=$3 AND period_index=$4
    `, userID, kind, year, index)
	if err := row.Scan(&out.ReportID, &out.UserID, &out.Kind, &out.Year, &out.Index, &out.RenderedText, &out.Status, &out.GeneratedAt); err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (r *reports) List(ctx context.Context, userID, kind string) ([]*model.PeriodReport, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT report_id, user_id, kind, year, period_index, rendered_text, status, generated_at
        FROM period_reports WHERE user_id=$1 AND kind=$2
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

const todoCols = `todo_id, user_id, project_id, content, priority, status, due_date, completed_at, creation_time`

func (t *todos) Create(ctx context.Context, m *model.TodoItem) (*model.TodoItem, error) {
	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	// Cap check inside the write transaction so a direct API call
	// cannot bypass the product rule.
	var active int
	if err := tx.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM todo_items
        WHERE user_id=$1 AND project_id=$2 AND status<>$3
    `, m.UserID, m.ProjectID, model.StatusCompleted).Scan(&active); err != nil {
		return nil, err
	}
	if active >= model.MaxActiveTodos {
		return nil, fmt.Errorf("%w: project already has %d active todos", model.ErrConflict, model.MaxActiveTodos)
	}

	id := uuid.New().String()
	status := m.Status
	if status == "" {
		status = model.StatusNotStarted
	}
	var created time.Time
	if err := tx.QueryRowContext(ctx, `
        INSERT INTO todo_items (todo_id, user_id, project_id, content, priority, status, due_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING creation_time
    `, id, m.UserID, m.ProjectID, m.Content, m.Priority, status, m.DueDate).Scan(&created); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	out := *m
	out.TodoID = id
	out.Status = status
	out.CreationTime = created
	return &out, nil
}

func scanTodo(row *sql.Row) (*model.TodoItem, error) {
	var out model.TodoItem
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

func (t *todos) GetByID(ctx context.Context, userID, todoID string) (*model.TodoItem, error) {
	return scanTodo(t.db.QueryRowContext(ctx,
		`SELECT `+todoCols+` FROM todo_items WHERE user_id=$1 AND todo_id=$2`, userID, todoID))
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
	return t.list(ctx,
		`SELECT `+todoCols+` FROM todo_items WHERE user_id=$1 AND project_id=$2 ORDER BY creation_time ASC`,
		userID, projectID)
}

func (t *todos) ListAll(ctx context.Context, userID string) ([]*model.TodoItem, error) {
	return t.list(ctx,
		`SELECT `+todoCols+` FROM todo_items WHERE user_id=$1 ORDER BY creation_time ASC`, userID)
}

func (t *todos) Update(ctx context.Context, m *model.TodoItem) (*model.TodoItem, error) {
	res, err := t.db.ExecContext(ctx, `
        UPDATE todo_items SET content=$1, priority=$2, status=$3, due_date=$4
        WHERE user_id=$5 AND todo_id=$6
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
	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var status string
	if err := tx.QueryRowContext(ctx,
		`SELECT status FROM todo_items WHERE user_id=$1 AND todo_id=$2`,
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
        UPDATE todo_items SET status=$1, completed_at=$2
        WHERE user_id=$3 AND todo_id=$4
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
	res, err := t.db.ExecContext(ctx, `DELETE FROM todo_items WHERE user_id=$1 AND todo_id=$2`, userID, todoID)
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
	status := m.Status
	if status == "" {
		status = model.StatusNotStarted
	}
	var created time.Time
	row := w.db.QueryRowContext(ctx, `
        INSERT INTO work_items (item_id, user_id, project_id, parent_id, title, status, sort_order)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING creation_time
    `, id, m.UserID, m.ProjectID, m.ParentID, m.Title, status, m.SortOrder)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.ItemID = id
	out.Status = status
	out.CreationTime = created
	return &out, nil
}

func (w *workItems) GetByID(ctx context.Context, userID, itemID string) (*model.WorkItem, error) {
	var out model.WorkItem
	row := w.db.QueryRowContext(ctx, `
        SELECT item_id, user_id, project_id, parent_id, title, status, sort_order, creation_time
        FROM work_items WHERE user_id=$1 AND item_id=$2
    `, userID, itemID)
	if err := row.Scan(&out.ItemID, &out.UserID, &out.ProjectID, &out.ParentID, &out.Title, &out.Status, &out.SortOrder, &out.CreationTime); err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (w *workItems) ListByProject(ctx context.Context, userID, projectID string) ([]*model.WorkItem, error) {
	rows, err := w.db.QueryContext(ctx, `
        SELECT item_id, user_id, project_id, parent_id, title, status, sort_order, creation_time
        FROM work_items WHERE user_id=$1 AND project_id=$2
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
        UPDATE work_items SET parent_id=$1, title=$2, status=$3, sort_order=$4
        WHERE user_id=$5 AND item_id=$6
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
	res, err := w.db.ExecContext(ctx, `
        WITH RECURSIVE subtree AS (
            SELECT item_id FROM work_items WHERE user_id=$1 AND item_id=$2
            UNION
            SELECT w.item_id FROM work_items w
            JOIN subtree s ON w.parent_id = s.item_id
            WHERE w.user_id=$1
        )
        DELETE FROM work_items WHERE user_id=$1 AND item_id IN (SELECT item_id FROM subtree)
    `, userID, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Shares ---

type shares struct{ db *sql.DB }

const shareCols = `share_id, user_id, project_id, token, password_hash, expires_at, active, creation_time`

func (s *shares) Create(ctx context.Context, m *model.WorkBreakdownShare) (*model.WorkBreakdownShare, error) {
	id := uuid.New().String()
	token := m.Token
	if token == "" {
		token = uuid.New().String()
	}
	var created time.Time
	row := s.db.QueryRowContext(ctx, `
        INSERT INTO work_breakdown_shares (share_id, user_id, project_id, token, password_hash, expires_at, active)
        VALUES ($1,$2,$3,$4,$5,$6,TRUE)
        RETURNING creation_time
    `, id, m.UserID, m.ProjectID, token, m.PasswordHash, m.ExpiresAt)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.ShareID = id
	out.Token = token
	out.HasPassword = m.PasswordHash != nil
	out.Active = true
	out.CreationTime = created
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

func (s *shares) GetByToken(ctx context.Context, token string) (*model.WorkBreakdownShare, error) {
	return scanShare(s.db.QueryRowContext(ctx,
		`SELECT `+shareCols+` FROM work_breakdown_shares WHERE token=$1`, token))
}

func (s *shares) GetByID(ctx context.Context, userID, shareID string) (*model.WorkBreakdownShare, error) {
	return scanShare(s.db.QueryRowContext(ctx,
		`SELECT `+shareCols+` FROM work_breakdown_shares WHERE user_id=$1 AND share_id=$2`, userID, shareID))
}

func (s *shares) List(ctx context.Context, userID string) ([]*model.WorkBreakdownShare, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+shareCols+` FROM work_breakdown_shares WHERE user_id=$1 ORDER BY creation_time DESC`, userID)
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
        UPDATE work_breakdown_shares SET password_hash=$1, expires_at=$2, active=$3
        WHERE user_id=$4 AND share_id=$5
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
		`DELETE FROM work_breakdown_shares WHERE user_id=$1 AND share_id=$2`, userID, shareID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}
