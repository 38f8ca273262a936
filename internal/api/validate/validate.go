package validate

import (
	"fmt"
	"time"

	"github.com/daybook-hq/daybook/internal/model"
)

// Field limits at the write boundary. Violations are rejected whole,
// never partially applied.
const (
	MaxProjectNameLen = 100
	MaxProjectCodeLen = 50
	MaxDescriptionLen = 500
	MaxTodoContentLen = 500
	MaxEntryTextLen   = 20000

	MinShareExpiryDays = 1
	MaxShareExpiryDays = 365
)

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%w: %s is required", model.ErrValidation, field)
	}
	return nil
}

func MaxLen(field, v string, limit int) error {
	if len(v) > limit {
		return fmt.Errorf("%w: %s exceeds %d characters", model.ErrValidation, field, limit)
	}
	return nil
}

func MaxLenPtr(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	return MaxLen(field, *v, limit)
}

// Date checks the YYYY-MM-DD wire format used for entry dates, due dates
// and completion dates.
func Date(field, v string) error {
	if v == "" {
		return fmt.Errorf("%w: %s is required", model.ErrValidation, field)
	}
	if _, err := time.Parse(model.DateLayout, v); err != nil {
		return fmt.Errorf("%w: %s must be a YYYY-MM-DD date", model.ErrValidation, field)
	}
	return nil
}

func Priority(v string) error {
	switch v {
	case model.PriorityHigh, model.PriorityMedium, model.PriorityLow:
		return nil
	}
	return fmt.Errorf("%w: priority must be one of high, medium, low", model.ErrValidation)
}

func TodoStatus(v string) error {
	switch v {
	case model.StatusNotStarted, model.StatusInProgress, model.StatusCompleted:
		return nil
	}
	return fmt.Errorf("%w: status must be one of not_started, in_progress, completed", model.ErrValidation)
}

func PeriodKind(v string) error {
	if v != "week" && v != "month" {
		return fmt.Errorf("%w: kind must be week or month", model.ErrValidation)
	}
	return nil
}

// -------- Request specific helpers ----------

// CreateProject validates input for creating a new project.
func CreateProject(name string, code, description *string) error {
	if err := NonEmpty("name", name); err != nil {
		return err
	}
	if err := MaxLen("name", name, MaxProjectNameLen); err != nil {
		return err
	}
	if code != nil && *code == "" {
		return fmt.Errorf("%w: code must not be empty when provided", model.ErrValidation)
	}
	if err := MaxLenPtr("code", code, MaxProjectCodeLen); err != nil {
		return err
	}
	return MaxLenPtr("description", description, MaxDescriptionLen)
}

// PutEntry validates a daily entry upsert.
func PutEntry(date, text string) error {
	if err := Date("date", date); err != nil {
		return err
	}
	if err := NonEmpty("text", text); err != nil {
		return err
	}
	return MaxLen("text", text, MaxEntryTextLen)
}

// CreateTodo validates a new todo item.
func CreateTodo(content, priority string, dueDate *string) error {
	if err := NonEmpty("content", content); err != nil {
		return err
	}
	if err := MaxLen("content", content, MaxTodoContentLen); err != nil {
		return err
	}
	if err := Priority(priority); err != nil {
		return err
	}
	if dueDate != nil {
		return Date("dueDate", *dueDate)
	}
	return nil
}

// ShareExpiry validates the optional expires_in_days field.
func ShareExpiry(days *int) error {
	if days == nil {
		return nil
	}
	if *days < MinShareExpiryDays || *days > MaxShareExpiryDays {
		return fmt.Errorf("%w: expiresInDays must be between %d and %d", model.ErrValidation, MinShareExpiryDays, MaxShareExpiryDays)
	}
	return nil
}
