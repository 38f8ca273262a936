package rollup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-hq/daybook/internal/model"
)

func todo(project, priority, status string) *model.TodoItem {
	return &model.TodoItem{ProjectID: project, Priority: priority, Status: status}
}

func TestRollupExcludesCompletedFromPriorities(t *testing.T) {
	todos := []*model.TodoItem{
		todo("p1", model.PriorityHigh, model.StatusNotStarted),
		todo("p1", model.PriorityHigh, model.StatusCompleted),
		todo("p1", model.PriorityMedium, model.StatusInProgress),
	}
	s := Rollup(todos)
	assert.Equal(t, Counts{High: 1, Medium: 1, Low: 0, InProgress: 1, NotStarted: 1}, s.Overall)
}

func TestRollupPerProject(t *testing.T) {
	todos := []*model.TodoItem{
		todo("p1", model.PriorityHigh, model.StatusNotStarted),
		todo("p2", model.PriorityLow, model.StatusInProgress),
		todo("p2", model.PriorityLow, model.StatusNotStarted),
	}
	s := Rollup(todos)
	assert.Equal(t, Counts{High: 1, NotStarted: 1}, s.PerProject["p1"])
	assert.Equal(t, Counts{Low: 2, InProgress: 1, NotStarted: 1}, s.PerProject["p2"])
	assert.Equal(t, 2, s.Overall.Low)
}

func TestRollupEmpty(t *testing.T) {
	s := Rollup(nil)
	assert.Equal(t, Counts{}, s.Overall)
	assert.Empty(t, s.PerProject)
}

func TestRecentlyCompleted(t *testing.T) {
	at := func(d int) *time.Time {
		ts := time.Date(2024, time.March, d, 12, 0, 0, 0, time.UTC)
		return &ts
	}
	var todos []*model.TodoItem
	for d := 1; d <= 12; d++ {
		todos = append(todos, &model.TodoItem{
			TodoID:      string(rune('a' + d)),
			Status:      model.StatusCompleted,
			CompletedAt: at(d),
		})
	}
	todos = append(todos, todo("p", model.PriorityHigh, model.StatusInProgress))

	out := RecentlyCompleted(todos, 10)
	require.Len(t, out, 10)
	assert.Equal(t, 12, out[0].CompletedAt.Day())
	assert.Equal(t, 3, out[9].CompletedAt.Day())
}

func TestRecentlyCompletedSkipsMissingTimestamp(t *testing.T) {
	todos := []*model.TodoItem{
		{Status: model.StatusCompleted}, // no CompletedAt
	}
	assert.Empty(t, RecentlyCompleted(todos, 10))
}
