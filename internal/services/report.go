package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/period"
	"github.com/daybook-hq/daybook/internal/report"
	"github.com/daybook-hq/daybook/internal/store"
)

// PeriodStatus is one row of the trailing period list: the window itself
// plus whether a report for it has been generated yet.
type PeriodStatus struct {
	period.Period
	Status         string  `json:"status"`
	CompletionRate float64 `json:"completionRate"`
}

// ReportPreview is a rendered-but-unsaved report.
type ReportPreview struct {
	Period period.Period `json:"period"`
	Text   string        `json:"text"`
	Empty  bool          `json:"empty"`
}

// ReportService renders and persists period reports.
type ReportService struct {
	store store.Store

	// mu serializes report generation per (user, kind, year, index) so two
	// concurrent saves cannot interleave render and write.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewReportService(s store.Store) *ReportService {
	return &ReportService{store: s, locks: make(map[string]*sync.Mutex)}
}

func (s *ReportService) lockPeriod(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// periodFor anchors a report window on any date inside it. Weekly reports
// are keyed by ISO week numbering.
func periodFor(kind, date string) (period.Period, error) {
	ref, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return period.Period{}, fmt.Errorf("%w: bad date %q", model.ErrValidation, date)
	}
	switch kind {
	case string(period.KindWeek):
		return period.Week(ref), nil
	case string(period.KindMonth):
		return period.Month(ref), nil
	default:
		return period.Period{}, fmt.Errorf("%w: unknown period kind %q", model.ErrValidation, kind)
	}
}

func (s *ReportService) entriesIn(ctx context.Context, userID string, p period.Period) ([]*model.DailyEntry, error) {
	isPlan := false
	return s.store.Entries().List(ctx, model.ListEntriesRequest{
		UserID: userID,
		From:   p.StartDate(),
		To:     p.EndDate(),
		IsPlan: &isPlan,
	})
}

// PreviewReport renders the report for the period containing date without
// persisting anything.
func (s *ReportService) PreviewReport(ctx context.Context, userID, kind, date string) (*ReportPreview, error) {
	p, err := periodFor(kind, date)
	if err != nil {
		return nil, err
	}
	entries, err := s.entriesIn(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	text := report.Aggregate(entries, p)
	return &ReportPreview{Period: p, Text: text, Empty: text == ""}, nil
}

// SaveReport renders and persists the report for the period containing
// date. Re-saving an already generated period replaces it in place. A
// period with no tagged work is rejected rather than saved empty.
func (s *ReportService) SaveReport(ctx context.Context, userID, kind, date string) (*model.PeriodReport, error) {
	p, err := periodFor(kind, date)
	if err != nil {
		return nil, err
	}

	unlock := s.lockPeriod(fmt.Sprintf("%s/%s/%d/%d", userID, p.Kind, p.Year, p.Index))
	defer unlock()

	entries, err := s.entriesIn(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	text := report.Aggregate(entries, p)
	if text == "" {
		return nil, fmt.Errorf("%w: no tagged work in period", model.ErrValidation)
	}
	return s.store.Reports().Upsert(ctx, &model.PeriodReport{
		UserID:       userID,
		Kind:         string(p.Kind),
		Year:         p.Year,
		Index:        p.Index,
		RenderedText: text,
	})
}

// GetReport returns a persisted report.
func (s *ReportService) GetReport(ctx context.Context, userID, kind string, year, index int) (*model.PeriodReport, error) {
	return s.store.Reports().Get(ctx, userID, kind, year, index)
}

// ListReports returns all persisted reports of one kind, newest first.
func (s *ReportService) ListReports(ctx context.Context, userID, kind string) ([]*model.PeriodReport, error) {
	return s.store.Reports().List(ctx, userID, kind)
}

// ListPeriods returns the n trailing periods of a kind ending at ref,
// most recent first, each annotated with its report status. Weeks in the
// list use simple Monday-first numbering for display, but a week counts
// as generated when a report exists under its ISO key.
func (s *ReportService) ListPeriods(ctx context.Context, userID, kind string, n int, ref time.Time) ([]PeriodStatus, error) {
	var periods []period.Period
	switch kind {
	case string(period.KindWeek):
		periods = period.TrailingWeeks(ref, n)
	case string(period.KindMonth):
		periods = period.TrailingMonths(ref, n)
	default:
		return nil, fmt.Errorf("%w: unknown period kind %q", model.ErrValidation, kind)
	}
	if len(periods) == 0 {
		return []PeriodStatus{}, nil
	}

	persisted, err := s.store.Reports().List(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	generated := make(map[[2]int]bool, len(persisted))
	for _, r := range persisted {
		generated[[2]int{r.Year, r.Index}] = true
	}

	// One range query covers every listed period.
	isPlan := false
	entries, err := s.store.Entries().List(ctx, model.ListEntriesRequest{
		UserID: userID,
		From:   periods[len(periods)-1].StartDate(),
		To:     periods[0].EndDate(),
		IsPlan: &isPlan,
	})
	if err != nil {
		return nil, err
	}

	out := make([]PeriodStatus, 0, len(periods))
	for _, p := range periods {
		ps := PeriodStatus{Period: p}
		key := [2]int{p.Year, p.Index}
		if kind == string(period.KindWeek) {
			iso := period.Week(p.Start)
			key = [2]int{iso.Year, iso.Index}
		}
		switch {
		case generated[key]:
			ps.Status = model.ReportGenerated
		case kind == string(period.KindMonth):
			ps.CompletionRate = report.CompletionRate(entries, p)
			ps.Status = report.EligibilityStatus(ps.CompletionRate)
		default:
			ps.Status = model.ReportPending
		}
		if kind == string(period.KindMonth) && ps.Status == model.ReportGenerated {
			ps.CompletionRate = report.CompletionRate(entries, p)
		}
		out = append(out, ps)
	}
	return out, nil
}
