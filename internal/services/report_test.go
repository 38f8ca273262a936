package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/daybook-hq/daybook/internal/model"
)

func TestReportService_PreviewAndSave(t *testing.T) {
	s := newTestStore(t)
	svc := NewReportService(s)
	ctx := context.Background()
	userID := "u1"

	mustEntry(t, s, userID, "2024-03-04", "[Alpha (AL)] wrote spec\n[Beta (BE)] reviewed PR")
	mustEntry(t, s, userID, "2024-03-05", "[Alpha (AL)] fixed bug\nuntagged note")
	// Outside the week, must not leak in.
	mustEntry(t, s, userID, "2024-03-11", "[Alpha (AL)] next week work")

	pv, err := svc.PreviewReport(ctx, userID, "week", "2024-03-06")
	if err != nil {
		t.Fatalf("PreviewReport: %v", err)
	}
	want := "Alpha\n- 2024-03-04: wrote spec\n- 2024-03-05: fixed bug\n\nBeta\n- 2024-03-04: reviewed PR"
	if pv.Text != want {
		t.Fatalf("preview text:\n got %q\nwant %q", pv.Text, want)
	}
	if pv.Empty {
		t.Fatalf("preview marked empty")
	}
	if pv.Period.Year != 2024 || pv.Period.Index != 10 {
		t.Fatalf("preview period: %+v", pv.Period)
	}

	saved, err := svc.SaveReport(ctx, userID, "week", "2024-03-06")
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if saved.RenderedText != want || saved.Status != model.ReportGenerated {
		t.Fatalf("saved report: %+v", saved)
	}

	// Adding work and re-saving replaces the stored text in place.
	mustEntry(t, s, userID, "2024-03-06", "[Alpha (AL)] shipped")
	saved2, err := svc.SaveReport(ctx, userID, "week", "2024-03-06")
	if err != nil {
		t.Fatalf("SaveReport again: %v", err)
	}
	if saved2.RenderedText == saved.RenderedText {
		t.Fatalf("re-save did not refresh text")
	}
	if lst, err := svc.ListReports(ctx, userID, "week"); err != nil || len(lst) != 1 {
		t.Fatalf("ListReports after re-save: n=%d err=%v", len(lst), err)
	}
}

func TestReportService_SaveEmptyPeriodRejected(t *testing.T) {
	s := newTestStore(t)
	svc := NewReportService(s)
	ctx := context.Background()

	// Plan entries and untagged text never produce report content.
	if _, err := s.Entries().Upsert(ctx, &model.DailyEntry{UserID: "u1", Date: "2024-03-04", IsPlan: true, Text: "[Alpha (AL)] planned"}); err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	mustEntry(t, s, "u1", "2024-03-05", "free-form note without tags")

	pv, err := svc.PreviewReport(ctx, "u1", "week", "2024-03-04")
	if err != nil {
		t.Fatalf("PreviewReport: %v", err)
	}
	if !pv.Empty || pv.Text != "" {
		t.Fatalf("preview should be empty: %+v", pv)
	}

	if _, err := svc.SaveReport(ctx, "u1", "week", "2024-03-04"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("SaveReport empty: want ErrValidation, got %v", err)
	}
}

func TestReportService_SaveBadInput(t *testing.T) {
	svc := NewReportService(newTestStore(t))
	ctx := context.Background()

	if _, err := svc.SaveReport(ctx, "u1", "fortnight", "2024-03-04"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("bad kind: want ErrValidation, got %v", err)
	}
	if _, err := svc.PreviewReport(ctx, "u1", "week", "03/04/2024"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("bad date: want ErrValidation, got %v", err)
	}
}

func TestReportService_ListPeriods(t *testing.T) {
	s := newTestStore(t)
	svc := NewReportService(s)
	ctx := context.Background()
	userID := "u1"
	ref := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	mustEntry(t, s, userID, "2024-03-04", "[Alpha (AL)] work")
	if _, err := svc.SaveReport(ctx, userID, "week", "2024-03-04"); err != nil {
		t.Fatalf("seed weekly report: %v", err)
	}

	weeks, err := svc.ListPeriods(ctx, userID, "week", 4, ref)
	if err != nil {
		t.Fatalf("ListPeriods week: %v", err)
	}
	if len(weeks) != 4 {
		t.Fatalf("ListPeriods week: n=%d", len(weeks))
	}
	// Most recent first; the week of Mar 4 sits at index 1 and is the only
	// generated one.
	if weeks[0].Status != model.ReportPending {
		t.Fatalf("current week status: %q", weeks[0].Status)
	}
	if weeks[1].Status != model.ReportGenerated {
		t.Fatalf("report week status: %q", weeks[1].Status)
	}

	months, err := svc.ListPeriods(ctx, userID, "month", 3, ref)
	if err != nil {
		t.Fatalf("ListPeriods month: %v", err)
	}
	if len(months) != 3 {
		t.Fatalf("ListPeriods month: n=%d", len(months))
	}
	// March has one filled day out of 31; February has none.
	if months[0].Status != model.ReportPending {
		t.Fatalf("March status: %q", months[0].Status)
	}
	if got := months[0].CompletionRate; got <= 0 || got > 0.05 {
		t.Fatalf("March completion rate: %v", got)
	}
	if months[1].Status != model.ReportNotAvailable {
		t.Fatalf("February status: %q", months[1].Status)
	}
}
