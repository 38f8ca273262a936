// Package rollup counts todo items for sidebar badges.
package rollup

import (
	"sort"

	"github.com/daybook-hq/daybook/internal/model"
)

// Counts holds outstanding-work badge counters. Completed items never
// contribute to priority counts.
type Counts struct {
	High       int `json:"high"`
	Medium     int `json:"medium"`
	Low        int `json:"low"`
	InProgress int `json:"inProgress"`
	NotStarted int `json:"notStarted"`
}

// Summary is the per-project and overall roll-up.
type Summary struct {
	PerProject map[string]Counts `json:"perProject"`
	Overall    Counts            `json:"overall"`
}

func (c *Counts) add(t *model.TodoItem) {
	if t.Status != model.StatusCompleted {
		switch t.Priority {
		case model.PriorityHigh:
			c.High++
		case model.PriorityMedium:
			c.Medium++
		case model.PriorityLow:
			c.Low++
		}
	}
	switch t.Status {
	case model.StatusInProgress:
		c.InProgress++
	case model.StatusNotStarted:
		c.NotStarted++
	}
}

// Rollup aggregates todos in one linear pass.
func Rollup(todos []*model.TodoItem) Summary {
	s := Summary{PerProject: make(map[string]Counts)}
	for _, t := range todos {
		s.Overall.add(t)
		pc := s.PerProject[t.ProjectID]
		pc.add(t)
		s.PerProject[t.ProjectID] = pc
	}
	return s
}

// RecentlyCompleted returns at most limit completed todos, most recent
// completion first. Items without a completion timestamp are skipped.
func RecentlyCompleted(todos []*model.TodoItem, limit int) []*model.TodoItem {
	var done []*model.TodoItem
	for _, t := range todos {
		if t.Status == model.StatusCompleted && t.CompletedAt != nil {
			done = append(done, t)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return done[i].CompletedAt.After(*done[j].CompletedAt)
	})
	if limit > 0 && len(done) > limit {
		done = done[:limit]
	}
	return done
}
