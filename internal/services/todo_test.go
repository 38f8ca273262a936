package services

import (
	"context"
	"testing"
	"time"

	"github.com/daybook-hq/daybook/internal/model"
)

func TestTodoService_CompleteWritesEntryLine(t *testing.T) {
	s := newTestStore(t)
	svc := NewTodoService(s, time.Minute)
	ctx := context.Background()
	userID := "u1"

	p := mustProject(t, s, userID, "Alpha", strPtr("AL"))
	td, err := svc.CreateTodo(ctx, &model.TodoItem{UserID: userID, ProjectID: p.ProjectID, Content: "ship the release", Priority: model.PriorityHigh})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	done, err := svc.CompleteTodo(ctx, userID, td.TodoID, "2024-03-08")
	if err != nil {
		t.Fatalf("CompleteTodo: %v", err)
	}
	if done.Status != model.StatusCompleted || done.CompletedAt == nil {
		t.Fatalf("CompleteTodo result: %+v", done)
	}

	e, err := s.Entries().Get(ctx, userID, "2024-03-08", false)
	if err != nil {
		t.Fatalf("entry after completion: %v", err)
	}
	if e.Text != "[Alpha (AL)] ship the release" {
		t.Fatalf("entry text: %q", e.Text)
	}
}

func TestTodoService_CompleteWithoutCodeUsesName(t *testing.T) {
	s := newTestStore(t)
	svc := NewTodoService(s, time.Minute)
	ctx := context.Background()
	userID := "u1"

	p := mustProject(t, s, userID, "Beta", nil)
	td, err := svc.CreateTodo(ctx, &model.TodoItem{UserID: userID, ProjectID: p.ProjectID, Content: "write docs", Priority: model.PriorityLow})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if _, err := svc.CompleteTodo(ctx, userID, td.TodoID, "2024-03-08"); err != nil {
		t.Fatalf("CompleteTodo: %v", err)
	}

	e, err := s.Entries().Get(ctx, userID, "2024-03-08", false)
	if err != nil {
		t.Fatalf("entry after completion: %v", err)
	}
	// The fallback tag still matches the aggregation convention.
	if e.Text != "[Beta (Beta)] write docs" {
		t.Fatalf("entry text: %q", e.Text)
	}
}

func TestTodoService_SummaryCaches(t *testing.T) {
	s := newTestStore(t)
	svc := NewTodoService(s, time.Hour)
	ctx := context.Background()
	userID := "u1"

	p := mustProject(t, s, userID, "Alpha", strPtr("AL"))
	if _, err := svc.CreateTodo(ctx, &model.TodoItem{UserID: userID, ProjectID: p.ProjectID, Content: "a", Priority: model.PriorityHigh}); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	sum, err := svc.Summary(ctx, userID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Overall.High != 1 || sum.Overall.NotStarted != 1 {
		t.Fatalf("Summary counts: %+v", sum.Overall)
	}

	// A write invalidates the cache, so the next read sees the new item.
	if _, err := svc.CreateTodo(ctx, &model.TodoItem{UserID: userID, ProjectID: p.ProjectID, Content: "b", Priority: model.PriorityMedium, Status: model.StatusInProgress}); err != nil {
		t.Fatalf("CreateTodo b: %v", err)
	}
	sum2, err := svc.Summary(ctx, userID)
	if err != nil {
		t.Fatalf("Summary 2: %v", err)
	}
	if sum2.Overall.Medium != 1 || sum2.Overall.InProgress != 1 {
		t.Fatalf("Summary 2 counts: %+v", sum2.Overall)
	}
}
