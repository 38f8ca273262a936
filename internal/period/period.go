// Package period computes calendar aggregation windows for reports.
//
// Two week-numbering schemes are in use and deliberately kept separate:
// Week uses ISO-8601 numbering and keys persisted weekly reports, while
// WeekOfYear uses simple Monday-first numbering (week 1 contains Jan 1)
// and drives the trailing-week list. They disagree for year-boundary
// weeks; callers must not mix them for the same feature.
package period

import (
	"fmt"
	"time"
)

// Kind of aggregation window.
type Kind string

const (
	KindWeek  Kind = "week"
	KindMonth Kind = "month"
)

// Period is a derived value object, never persisted.
type Period struct {
	Kind  Kind      `json:"kind"`
	Year  int       `json:"year"`
	Index int       `json:"index"` // week number or month number
	Start time.Time `json:"start"` // midnight UTC, inclusive
	End   time.Time `json:"end"`   // midnight UTC, inclusive
	Label string    `json:"label"`
}

// StartDate returns the inclusive lower bound as YYYY-MM-DD.
func (p Period) StartDate() string { return p.Start.Format("2006-01-02") }

// EndDate returns the inclusive upper bound as YYYY-MM-DD.
func (p Period) EndDate() string { return p.End.Format("2006-01-02") }

// ContainsDate reports whether a YYYY-MM-DD date falls inside the period,
// boundaries included. Zero-padded ISO dates compare correctly as strings.
func (p Period) ContainsDate(date string) bool {
	return date >= p.StartDate() && date <= p.EndDate()
}

// Days returns the total number of calendar days in the period.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOf returns the Monday on or before t.
func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return midnight(t).AddDate(0, 0, -offset)
}

// Week returns the ISO-8601 week containing ref.
func Week(ref time.Time) Period {
	year, wk := ref.ISOWeek()
	start := mondayOf(ref)
	end := start.AddDate(0, 0, 6)
	return Period{
		Kind:  KindWeek,
		Year:  year,
		Index: wk,
		Start: start,
		End:   end,
		Label: fmt.Sprintf("%d-W%02d (%s ~ %s)", year, wk, start.Format("2006-01-02"), end.Format("2006-01-02")),
	}
}

// WeekOfYear returns the Monday-first simple-numbered week containing ref:
// week 1 is the week containing January 1 of ref's calendar year.
func WeekOfYear(ref time.Time) Period {
	year := ref.Year()
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(jan1.Weekday()) + 6) % 7
	wk := (midnight(ref).YearDay()-1+offset)/7 + 1
	start := mondayOf(ref)
	end := start.AddDate(0, 0, 6)
	return Period{
		Kind:  KindWeek,
		Year:  year,
		Index: wk,
		Start: start,
		End:   end,
		Label: fmt.Sprintf("%d-W%02d (%s ~ %s)", year, wk, start.Format("2006-01-02"), end.Format("2006-01-02")),
	}
}

// Month returns the calendar month containing ref.
func Month(ref time.Time) Period {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return Period{
		Kind:  KindMonth,
		Year:  ref.Year(),
		Index: int(ref.Month()),
		Start: start,
		End:   end,
		Label: start.Format("2006-01"),
	}
}

// TrailingWeeks returns the n Monday-first weeks ending with the one
// containing ref, most recent first.
func TrailingWeeks(ref time.Time, n int) []Period {
	out := make([]Period, 0, n)
	cur := mondayOf(ref)
	for i := 0; i < n; i++ {
		out = append(out, WeekOfYear(cur))
		cur = cur.AddDate(0, 0, -7)
	}
	return out
}

// TrailingMonths returns the n calendar months ending with the one
// containing ref, most recent first.
func TrailingMonths(ref time.Time, n int) []Period {
	out := make([]Period, 0, n)
	cur := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		out = append(out, Month(cur))
		cur = cur.AddDate(0, -1, 0)
	}
	return out
}
