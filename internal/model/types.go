package model

import "time"

// DateLayout is the canonical wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Todo priority values.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Todo lifecycle states.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Period report states.
const (
	ReportGenerated    = "generated"
	ReportPending      = "pending"
	ReportNotAvailable = "not_available"
)

// MaxActiveTodos caps non-completed todos per project.
const MaxActiveTodos = 10

// Project groups daily entries, todos and work items under a user.
type Project struct {
	ProjectID    string    `json:"projectId"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Code         *string   `json:"code,omitempty"`
	Description  *string   `json:"description,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreationTime time.Time `json:"creationTime"`
}

// DailyEntry is one user's free-text record for one calendar date.
// A user has at most one plan and one non-plan entry per date.
type DailyEntry struct {
	EntryID      string    `json:"entryId"`
	UserID       string    `json:"userId"`
	Date         string    `json:"date"` // YYYY-MM-DD
	IsPlan       bool      `json:"isPlan"`
	Text         string    `json:"text"`
	CreationTime time.Time `json:"creationTime"`
	UpdateTime   time.Time `json:"updateTime"`
}

// PeriodReport is the persisted rendered text for one user's period,
// unique per (user, kind, year, index).
type PeriodReport struct {
	ReportID     string    `json:"reportId"`
	UserID       string    `json:"userId"`
	Kind         string    `json:"kind"` // "week" | "month"
	Year         int       `json:"year"`
	Index        int       `json:"index"` // week number or month number
	RenderedText string    `json:"renderedText"`
	Status       string    `json:"status"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

// TodoItem is a per-project task with a priority and lifecycle status.
type TodoItem struct {
	TodoID       string     `json:"todoId"`
	UserID       string     `json:"userId"`
	ProjectID    string     `json:"projectId"`
	Content      string     `json:"content"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	DueDate      *string    `json:"dueDate,omitempty"` // YYYY-MM-DD
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CreationTime time.Time  `json:"creationTime"`
}

// WorkItem is one node of a project's work-breakdown tree.
type WorkItem struct {
	ItemID       string    `json:"itemId"`
	UserID       string    `json:"userId"`
	ProjectID    string    `json:"projectId"`
	ParentID     *string   `json:"parentId,omitempty"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
	SortOrder    int       `json:"sortOrder"`
	CreationTime time.Time `json:"creationTime"`
}

// WorkItemNode is a WorkItem with its resolved children, as served to share
// consumers and the work-item tree endpoint.
type WorkItemNode struct {
	WorkItem
	Children []*WorkItemNode `json:"children"`
}

// WorkBreakdownShare is a tokenized read-only view over a project's
// work-breakdown tree, optionally password-protected and time-limited.
type WorkBreakdownShare struct {
	ShareID      string     `json:"shareId"`
	UserID       string     `json:"userId"`
	ProjectID    *string    `json:"projectId,omitempty"` // nil shares every project
	Token        string     `json:"token"`
	PasswordHash *string    `json:"-"`
	HasPassword  bool       `json:"hasPassword"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	Active       bool       `json:"active"`
	CreationTime time.Time  `json:"creationTime"`
}

// ListEntriesRequest captures filters used when listing daily entries.
type ListEntriesRequest struct {
	UserID string
	From   string // inclusive YYYY-MM-DD, empty means unbounded
	To     string // inclusive YYYY-MM-DD, empty means unbounded
	IsPlan *bool  // nil means both
}
