package report

import (
	"sort"
	"strings"

	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/period"
)

type projectGroup struct {
	name  string
	lines []string // pre-rendered "- {date}: {text}"
}

// Aggregate renders the period report for the given entries. Plan entries
// and entries outside [period.Start, period.End] are excluded. Projects
// appear in first-seen order; within a project, lines stay chronological.
// Returns "" when nothing falls in range; callers must not persist that
// as a generated report.
func Aggregate(entries []*model.DailyEntry, p period.Period) string {
	filtered := make([]*model.DailyEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsPlan || !p.ContainsDate(e.Date) {
			continue
		}
		filtered = append(filtered, e)
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Date < filtered[j].Date })

	groups := make(map[string]*projectGroup)
	var order []string
	for _, e := range filtered {
		for _, tl := range ParseEntryText(e.Text) {
			g, ok := groups[tl.ProjectName]
			if !ok {
				g = &projectGroup{name: tl.ProjectName}
				groups[tl.ProjectName] = g
				order = append(order, tl.ProjectName)
			}
			g.lines = append(g.lines, "- "+e.Date+": "+tl.Text)
		}
	}
	if len(order) == 0 {
		return ""
	}

	var b strings.Builder
	for _, name := range order {
		g := groups[name]
		b.WriteString(g.name)
		b.WriteByte('\n')
		for _, line := range g.lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), " \t\n")
}

// CompletionRate is filledDays / totalDaysInPeriod, counting distinct
// dates with a non-plan entry. Used only for month-report eligibility.
func CompletionRate(entries []*model.DailyEntry, p period.Period) float64 {
	days := make(map[string]struct{})
	for _, e := range entries {
		if e.IsPlan || !p.ContainsDate(e.Date) {
			continue
		}
		days[e.Date] = struct{}{}
	}
	total := p.Days()
	if total == 0 {
		return 0
	}
	return float64(len(days)) / float64(total)
}

// EligibilityStatus maps a completion rate to the month-report status:
// generation is allowed as soon as any day is filled. Weeks are never
// gated on completion.
func EligibilityStatus(rate float64) string {
	if rate > 0 {
		return model.ReportPending
	}
	return model.ReportNotAvailable
}
