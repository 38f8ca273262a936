package storetest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store and return it from
// makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	userID := "u-" + uuid.New().String()

	// Projects
	code := "ALPHA"
	p, err := s.Projects().Create(ctx, &model.Project{UserID: userID, Name: "Alpha", Code: &code})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if p.ProjectID == "" || !p.IsActive {
		t.Fatalf("CreateProject: bad result %+v", p)
	}
	if got, err := s.Projects().GetByID(ctx, userID, p.ProjectID); err != nil || got.Name != "Alpha" {
		t.Fatalf("GetProject: got=%v err=%v", got, err)
	}
	if _, err := s.Projects().Create(ctx, &model.Project{UserID: userID, Name: "Alpha"}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate project name: want ErrConflict, got %v", err)
	}
	p2, err := s.Projects().Create(ctx, &model.Project{UserID: userID, Name: "Beta"})
	if err != nil {
		t.Fatalf("CreateProject Beta: %v", err)
	}
	p2.IsActive = false
	if _, err := s.Projects().Update(ctx, p2); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	if lst, err := s.Projects().List(ctx, userID, true); err != nil || len(lst) != 1 {
		t.Fatalf("ListProjects activeOnly: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Projects().List(ctx, userID, false); err != nil || len(lst) != 2 {
		t.Fatalf("ListProjects all: n=%d err=%v", len(lst), err)
	}

	// Entries: upsert twice replaces, it does not fail
	e1, err := s.Entries().Upsert(ctx, &model.DailyEntry{UserID: userID, Date: "2024-03-04", Text: "[Alpha (ALPHA)] wrote spec"})
	if err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}
	e1b, err := s.Entries().Upsert(ctx, &model.DailyEntry{UserID: userID, Date: "2024-03-04", Text: "[Alpha (ALPHA)] wrote spec v2"})
	if err != nil {
		t.Fatalf("UpsertEntry replace: %v", err)
	}
	if e1b.Text != "[Alpha (ALPHA)] wrote spec v2" {
		t.Fatalf("UpsertEntry replace: text=%q", e1b.Text)
	}
	_ = e1

	// Plan and work entries on the same date are distinct rows.
	if _, err := s.Entries().Upsert(ctx, &model.DailyEntry{UserID: userID, Date: "2024-03-04", IsPlan: true, Text: "plan for the day"}); err != nil {
		t.Fatalf("UpsertEntry plan: %v", err)
	}
	if got, err := s.Entries().Get(ctx, userID, "2024-03-04", false); err != nil || got.IsPlan {
		t.Fatalf("GetEntry work: got=%v err=%v", got, err)
	}
	if got, err := s.Entries().Get(ctx, userID, "2024-03-04", true); err != nil || !got.IsPlan {
		t.Fatalf("GetEntry plan: got=%v err=%v", got, err)
	}

	if _, err := s.Entries().Upsert(ctx, &model.DailyEntry{UserID: userID, Date: "2024-03-06", Text: "[Beta] reviewed PR"}); err != nil {
		t.Fatalf("UpsertEntry 03-06: %v", err)
	}

	// Range filter is inclusive on both ends.
	isPlan := false
	lst, err := s.Entries().List(ctx, model.ListEntriesRequest{UserID: userID, From: "2024-03-04", To: "2024-03-06", IsPlan: &isPlan})
	if err != nil || len(lst) != 2 {
		t.Fatalf("ListEntries range: n=%d err=%v", len(lst), err)
	}
	if lst[0].Date != "2024-03-04" || lst[1].Date != "2024-03-06" {
		t.Fatalf("ListEntries order: %q, %q", lst[0].Date, lst[1].Date)
	}

	// AppendLine creates the entry when absent and appends when present.
	if got, err := s.Entries().AppendLine(ctx, userID, "2024-03-07", "[Alpha (ALPHA)] first line"); err != nil || got.Text != "[Alpha (ALPHA)] first line" {
		t.Fatalf("AppendLine create: got=%v err=%v", got, err)
	}
	if got, err := s.Entries().AppendLine(ctx, userID, "2024-03-07", "[Alpha (ALPHA)] second line"); err != nil || !strings.HasSuffix(got.Text, "\n[Alpha (ALPHA)] second line") {
		t.Fatalf("AppendLine append: got=%v err=%v", got, err)
	}

	if err := s.Entries().Delete(ctx, userID, "2024-03-07", false); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if _, err := s.Entries().Get(ctx, userID, "2024-03-07", false); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetEntry deleted: want ErrNotFound, got %v", err)
	}

	// Reports: a second upsert for the same period replaces in place.
	r1, err := s.Reports().Upsert(ctx, &model.PeriodReport{UserID: userID, Kind: "week", Year: 2024, Index: 10, RenderedText: "first render"})
	if err != nil {
		t.Fatalf("UpsertReport: %v", err)
	}
	r2, err := s.Reports().Upsert(ctx, &model.PeriodReport{UserID: userID, Kind: "week", Year: 2024, Index: 10, RenderedText: "second render"})
	if err != nil {
		t.Fatalf("UpsertReport replace: %v", err)
	}
	if r2.RenderedText != "second render" || r2.Status != model.ReportGenerated {
		t.Fatalf("UpsertReport replace: %+v", r2)
	}
	_ = r1
	if lst, err := s.Reports().List(ctx, userID, "week"); err != nil || len(lst) != 1 {
		t.Fatalf("ListReports: n=%d err=%v", len(lst), err)
	}
	if _, err := s.Reports().Get(ctx, userID, "month", 2024, 3); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetReport missing: want ErrNotFound, got %v", err)
	}

	// Todos
	td, err := s.Todos().Create(ctx, &model.TodoItem{UserID: userID, ProjectID: p.ProjectID, Content: "ship it", Priority: model.PriorityHigh})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if td.Status != model.StatusNotStarted {
		t.Fatalf("CreateTodo default status: %q", td.Status)
	}
	td.Status = model.StatusInProgress
	if _, err := s.Todos().Update(ctx, td); err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}

	// Cap: filling the project to the limit rejects the next create, and
	// completed items do not count against it.
	for i := 0; i < model.MaxActiveTodos-1; i++ {
		if _, err := s.Todos().Create(ctx, &model.TodoItem{UserID: userID, ProjectID: p.ProjectID, Content: fmt.Sprintf("task %d", i), Priority: model.PriorityLow}); err != nil {
			t.Fatalf("CreateTodo fill %d: %v", i, err)
		}
	}
	if _, err := s.Todos().Create(ctx, &model.TodoItem{UserID: userID, ProjectID: p.ProjectID, Content: "one too many", Priority: model.PriorityLow}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("CreateTodo over cap: want ErrConflict, got %v", err)
	}

	// Complete flips the status and records a line on the completion date.
	line := "[Alpha (ALPHA)] " + td.Content
	done, err := s.Todos().Complete(ctx, userID, td.TodoID, "2024-03-08", line)
	if err != nil {
		t.Fatalf("CompleteTodo: %v", err)
	}
	if done.Status != model.StatusCompleted || done.CompletedAt == nil {
		t.Fatalf("CompleteTodo result: %+v", done)
	}
	if got, err := s.Entries().Get(ctx, userID, "2024-03-08", false); err != nil || !strings.Contains(got.Text, td.Content) {
		t.Fatalf("entry after completion: got=%v err=%v", got, err)
	}
	if _, err := s.Todos().Complete(ctx, userID, td.TodoID, "2024-03-08", line); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("CompleteTodo twice: want ErrConflict, got %v", err)
	}

	// Completion freed a slot, so a create succeeds again.
	extra, err := s.Todos().Create(ctx, &model.TodoItem{UserID: userID, ProjectID: p.ProjectID, Content: "after completion", Priority: model.PriorityMedium})
	if err != nil {
		t.Fatalf("CreateTodo after completion: %v", err)
	}
	if err := s.Todos().Delete(ctx, userID, extra.TodoID); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
	if lst, err := s.Todos().ListByProject(ctx, userID, p.ProjectID); err != nil || len(lst) != model.MaxActiveTodos {
		t.Fatalf("ListTodosByProject: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Todos().ListAll(ctx, userID); err != nil || len(lst) != model.MaxActiveTodos {
		t.Fatalf("ListAllTodos: n=%d err=%v", len(lst), err)
	}

	// Work items: deleting a node removes its subtree.
	root, err := s.WorkItems().Create(ctx, &model.WorkItem{UserID: userID, ProjectID: p.ProjectID, Title: "design"})
	if err != nil {
		t.Fatalf("CreateWorkItem root: %v", err)
	}
	child, err := s.WorkItems().Create(ctx, &model.WorkItem{UserID: userID, ProjectID: p.ProjectID, ParentID: &root.ItemID, Title: "schema", SortOrder: 1})
	if err != nil {
		t.Fatalf("CreateWorkItem child: %v", err)
	}
	if _, err := s.WorkItems().Create(ctx, &model.WorkItem{UserID: userID, ProjectID: p.ProjectID, ParentID: &child.ItemID, Title: "indexes", SortOrder: 1}); err != nil {
		t.Fatalf("CreateWorkItem grandchild: %v", err)
	}
	sibling, err := s.WorkItems().Create(ctx, &model.WorkItem{UserID: userID, ProjectID: p.ProjectID, Title: "rollout", SortOrder: 2})
	if err != nil {
		t.Fatalf("CreateWorkItem sibling: %v", err)
	}
	sibling.Status = model.StatusInProgress
	if got, err := s.WorkItems().Update(ctx, sibling); err != nil || got.Status != model.StatusInProgress {
		t.Fatalf("UpdateWorkItem: got=%v err=%v", got, err)
	}
	if got, err := s.WorkItems().GetByID(ctx, userID, sibling.ItemID); err != nil || got.Title != "rollout" {
		t.Fatalf("GetWorkItem: got=%v err=%v", got, err)
	}
	if err := s.WorkItems().Delete(ctx, userID, root.ItemID); err != nil {
		t.Fatalf("DeleteWorkItem: %v", err)
	}
	if lst, err := s.WorkItems().ListByProject(ctx, userID, p.ProjectID); err != nil || len(lst) != 1 {
		t.Fatalf("ListWorkItems after subtree delete: n=%d err=%v", len(lst), err)
	}

	// The service layer keeps trees acyclic, but a subtree delete must
	// still terminate if a cycle reaches the rows some other way.
	cycA, err := s.WorkItems().Create(ctx, &model.WorkItem{UserID: userID, ProjectID: p.ProjectID, Title: "cyc-a"})
	if err != nil {
		t.Fatalf("CreateWorkItem cyc-a: %v", err)
	}
	cycB, err := s.WorkItems().Create(ctx, &model.WorkItem{UserID: userID, ProjectID: p.ProjectID, ParentID: &cycA.ItemID, Title: "cyc-b"})
	if err != nil {
		t.Fatalf("CreateWorkItem cyc-b: %v", err)
	}
	cycA.ParentID = &cycB.ItemID
	if _, err := s.WorkItems().Update(ctx, cycA); err != nil {
		t.Fatalf("UpdateWorkItem cyc-a: %v", err)
	}
	if err := s.WorkItems().Delete(ctx, userID, cycA.ItemID); err != nil {
		t.Fatalf("DeleteWorkItem cycled: %v", err)
	}
	if lst, err := s.WorkItems().ListByProject(ctx, userID, p.ProjectID); err != nil || len(lst) != 1 {
		t.Fatalf("ListWorkItems after cycled delete: n=%d err=%v", len(lst), err)
	}

	// Shares
	sh, err := s.Shares().Create(ctx, &model.WorkBreakdownShare{UserID: userID, ProjectID: &p.ProjectID})
	if err != nil {
		t.Fatalf("CreateShare: %v", err)
	}
	if sh.Token == "" || !sh.Active || sh.HasPassword {
		t.Fatalf("CreateShare result: %+v", sh)
	}
	if got, err := s.Shares().GetByToken(ctx, sh.Token); err != nil || got.ShareID != sh.ShareID {
		t.Fatalf("GetShareByToken: got=%v err=%v", got, err)
	}
	hash := "$2a$10$fakehashforsuitecoverage0000000000000000000000000000"
	sh.PasswordHash = &hash
	sh.Active = false
	upd, err := s.Shares().Update(ctx, sh)
	if err != nil {
		t.Fatalf("UpdateShare: %v", err)
	}
	if !upd.HasPassword || upd.Active {
		t.Fatalf("UpdateShare result: %+v", upd)
	}
	if lst, err := s.Shares().List(ctx, userID); err != nil || len(lst) != 1 {
		t.Fatalf("ListShares: n=%d err=%v", len(lst), err)
	}
	if err := s.Shares().Delete(ctx, userID, sh.ShareID); err != nil {
		t.Fatalf("DeleteShare: %v", err)
	}
	if _, err := s.Shares().GetByToken(ctx, sh.Token); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetShareByToken deleted: want ErrNotFound, got %v", err)
	}
}
