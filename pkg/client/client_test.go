package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-hq/daybook/internal/api"
	"github.com/daybook-hq/daybook/internal/auth"
	"github.com/daybook-hq/daybook/internal/store/sqlite"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "daybook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Bootstrap(context.Background(), db))

	srv := httptest.NewServer(api.NewRouter(sqlite.NewWithDB(db), auth.NewMockAuthorizer(), time.Minute))
	t.Cleanup(srv.Close)
	return New(srv.URL, auth.LocalDevAPIKey)
}

func TestClient_EndToEnd(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	code := "AL"
	p, err := c.CreateProject(ctx, CreateProjectRequest{Name: "Alpha", Code: &code})
	require.NoError(t, err)
	require.NotEmpty(t, p.ProjectID)

	_, err = c.PutEntry(ctx, "2024-03-04", "[Alpha (AL)] wrote spec", false)
	require.NoError(t, err)

	pv, err := c.PreviewReport(ctx, "week", "2024-03-04")
	require.NoError(t, err)
	assert.False(t, pv.Empty)
	assert.Equal(t, "Alpha\n- 2024-03-04: wrote spec", pv.Text)

	saved, err := c.SaveReport(ctx, "week", "2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, 2024, saved.Year)
	assert.Equal(t, 10, saved.Index)

	got, err := c.GetReport(ctx, "week", saved.Year, saved.Index)
	require.NoError(t, err)
	assert.Equal(t, saved.RenderedText, got.RenderedText)

	td, err := c.CreateTodo(ctx, p.ProjectID, CreateTodoRequest{Content: "ship it", Priority: "high"})
	require.NoError(t, err)
	done, err := c.CompleteTodo(ctx, td.TodoID, "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)

	entry, err := c.GetEntry(ctx, "2024-03-05", false)
	require.NoError(t, err)
	assert.Equal(t, "[Alpha (AL)] ship it", entry.Text)

	sum, err := c.Summary(ctx)
	require.NoError(t, err)
	assert.Len(t, sum.RecentlyCompleted, 1)

	root, err := c.CreateWorkItem(ctx, p.ProjectID, CreateWorkItemRequest{Title: "design"})
	require.NoError(t, err)
	_, err = c.CreateWorkItem(ctx, p.ProjectID, CreateWorkItemRequest{Title: "schema", ParentID: &root.ItemID})
	require.NoError(t, err)
	tree, err := c.WorkItemTree(ctx, p.ProjectID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Len(t, tree[0].Children, 1)

	pw := "s3cret"
	sh, err := c.CreateShare(ctx, CreateShareRequest{ProjectID: &p.ProjectID, Password: &pw})
	require.NoError(t, err)

	_, err = c.ResolveShare(ctx, sh.Token, "")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))

	view, err := c.ResolveShare(ctx, sh.Token, pw)
	require.NoError(t, err)
	require.Len(t, view.Projects, 1)
	assert.Equal(t, "Alpha", view.Projects[0].Project.Name)

	_, err = c.RevokeShare(ctx, sh.ShareID)
	require.NoError(t, err)
	_, err = c.ResolveShare(ctx, sh.Token, pw)
	assert.Equal(t, http.StatusForbidden, StatusCode(err))
}

func TestClient_NotFoundStatus(t *testing.T) {
	c := newClient(t)
	_, err := c.GetProject(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}
