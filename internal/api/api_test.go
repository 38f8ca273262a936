package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-hq/daybook/internal/auth"
	"github.com/daybook-hq/daybook/internal/store/sqlite"
)

// newTestServer spins up the full router over a throwaway sqlite store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "daybook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Bootstrap(context.Background(), db))

	router := NewRouter(sqlite.NewWithDB(db), auth.NewMockAuthorizer(), time.Minute)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}, authed bool) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+auth.LocalDevAPIKey)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, payload
}

func TestAPI_AuthRequired(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/v0/projects", nil, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/v0/projects", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer wrong-key")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestAPI_ProjectLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v0/projects",
		map[string]interface{}{"name": "Alpha", "code": "AL"}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created struct {
		ProjectID string `json:"projectId"`
		Name      string `json:"name"`
		IsActive  bool   `json:"isActive"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	assert.True(t, created.IsActive)

	// Duplicate name is rejected as bad input.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v0/projects",
		map[string]interface{}{"name": "Alpha"}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Empty name is rejected before the store sees it.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v0/projects",
		map[string]interface{}{"name": ""}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Archive instead of delete.
	resp, body = doJSON(t, http.MethodDelete, srv.URL+"/v0/projects/"+created.ProjectID, nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var archived struct {
		IsActive bool `json:"isActive"`
	}
	require.NoError(t, json.Unmarshal(body, &archived))
	assert.False(t, archived.IsActive)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/v0/projects?active=true", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lst struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body, &lst))
	assert.Equal(t, 0, lst.Count)
}

func TestAPI_EntryAndReportFlow(t *testing.T) {
	srv := newTestServer(t)

	put := func(date, text string) {
		resp, body := doJSON(t, http.MethodPut, srv.URL+"/v0/entries/"+date,
			map[string]string{"text": text}, true)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	}
	put("2024-03-04", "[Alpha (AL)] wrote spec\n[Beta (BE)] reviewed PR")
	put("2024-03-05", "[Alpha (AL)] fixed bug")

	// Plan entry on the same date is a separate slot.
	resp, _ := doJSON(t, http.MethodPut, srv.URL+"/v0/entries/2024-03-04?plan=true",
		map[string]string{"text": "plan text"}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v0/entries?from=2024-03-04&to=2024-03-05&plan=false", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body, &listed))
	assert.Equal(t, 2, listed.Count)

	// Malformed date rejected.
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/v0/entries/03-04-2024",
		map[string]string{"text": "x"}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Preview then save.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/v0/reports/preview?kind=week&date=2024-03-06", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var pv struct {
		Text  string `json:"text"`
		Empty bool   `json:"empty"`
	}
	require.NoError(t, json.Unmarshal(body, &pv))
	assert.False(t, pv.Empty)
	assert.Equal(t, "Alpha\n- 2024-03-04: wrote spec\n- 2024-03-05: fixed bug\n\nBeta\n- 2024-03-04: reviewed PR", pv.Text)

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/v0/reports",
		map[string]string{"kind": "week", "date": "2024-03-06"}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var saved struct {
		Year  int `json:"year"`
		Index int `json:"index"`
	}
	require.NoError(t, json.Unmarshal(body, &saved))
	assert.Equal(t, 2024, saved.Year)
	assert.Equal(t, 10, saved.Index)

	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/v0/reports/week/%d/%d", srv.URL, saved.Year, saved.Index), nil, true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A week with nothing to report cannot be saved.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v0/reports",
		map[string]string{"kind": "week", "date": "2023-01-02"}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Trailing period list includes the generated week.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/v0/reports/periods?kind=month&n=3", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var periods struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body, &periods))
	assert.Equal(t, 3, periods.Count)
}

func TestAPI_TodoFlow(t *testing.T) {
	srv := newTestServer(t)

	_, body := doJSON(t, http.MethodPost, srv.URL+"/v0/projects",
		map[string]interface{}{"name": "Alpha", "code": "AL"}, true)
	var project struct {
		ProjectID string `json:"projectId"`
	}
	require.NoError(t, json.Unmarshal(body, &project))

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v0/projects/"+project.ProjectID+"/todos",
		map[string]string{"content": "ship the release", "priority": "high"}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var todo struct {
		TodoID string `json:"todoId"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body, &todo))
	assert.Equal(t, "not_started", todo.Status)

	// Bad priority rejected.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v0/projects/"+project.ProjectID+"/todos",
		map[string]string{"content": "x", "priority": "urgent"}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// PATCH cannot complete; the dedicated endpoint must be used.
	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/v0/todos/"+todo.TodoID,
		map[string]string{"status": "completed"}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/v0/todos/"+todo.TodoID+"/complete",
		map[string]string{"date": "2024-03-08"}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	// Completion wrote the tagged line into the daily entry.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/v0/entries/2024-03-08", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entry struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(body, &entry))
	assert.Equal(t, "[Alpha (AL)] ship the release", entry.Text)

	// Completing twice conflicts.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v0/todos/"+todo.TodoID+"/complete",
		map[string]string{"date": "2024-03-08"}, true)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Summary reflects the completion.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/v0/todos/summary", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary struct {
		Overall struct {
			High int `json:"high"`
		} `json:"overall"`
		RecentlyCompleted []struct {
			TodoID string `json:"todoId"`
		} `json:"recentlyCompleted"`
	}
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, 0, summary.Overall.High)
	require.Len(t, summary.RecentlyCompleted, 1)
	assert.Equal(t, todo.TodoID, summary.RecentlyCompleted[0].TodoID)
}

func TestAPI_TodoCap(t *testing.T) {
	srv := newTestServer(t)

	_, body := doJSON(t, http.MethodPost, srv.URL+"/v0/projects",
		map[string]interface{}{"name": "Alpha"}, true)
	var project struct {
		ProjectID string `json:"projectId"`
	}
	require.NoError(t, json.Unmarshal(body, &project))

	for i := 0; i < 10; i++ {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/v0/projects/"+project.ProjectID+"/todos",
			map[string]string{"content": fmt.Sprintf("task %d", i), "priority": "low"}, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	}
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v0/projects/"+project.ProjectID+"/todos",
		map[string]string{"content": "one too many", "priority": "low"}, true)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_WorkItemsAndShares(t *testing.T) {
	srv := newTestServer(t)

	_, body := doJSON(t, http.MethodPost, srv.URL+"/v0/projects",
		map[string]interface{}{"name": "Alpha"}, true)
	var project struct {
		ProjectID string `json:"projectId"`
	}
	require.NoError(t, json.Unmarshal(body, &project))

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v0/projects/"+project.ProjectID+"/workitems",
		map[string]interface{}{"title": "design"}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var root struct {
		ItemID string `json:"itemId"`
	}
	require.NoError(t, json.Unmarshal(body, &root))

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v0/projects/"+project.ProjectID+"/workitems",
		map[string]interface{}{"title": "schema", "parentId": root.ItemID}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/v0/projects/"+project.ProjectID+"/workitems/tree", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tree struct {
		Items []struct {
			Title    string `json:"title"`
			Children []struct {
				Title string `json:"title"`
			} `json:"children"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &tree))
	require.Len(t, tree.Items, 1)
	require.Len(t, tree.Items[0].Children, 1)
	assert.Equal(t, "schema", tree.Items[0].Children[0].Title)

	// Password-protected share.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/v0/shares",
		map[string]interface{}{"projectId": project.ProjectID, "password": "s3cret", "expiresInDays": 7}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var share struct {
		Token       string `json:"token"`
		HasPassword bool   `json:"hasPassword"`
	}
	require.NoError(t, json.Unmarshal(body, &share))
	assert.True(t, share.HasPassword)
	assert.NotContains(t, string(body), "passwordHash")

	// Consumer endpoint needs no API key, but does need the password.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/v0/shared/"+share.Token, map[string]string{}, false)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var challenge struct {
		RequiresPassword bool `json:"requiresPassword"`
	}
	require.NoError(t, json.Unmarshal(body, &challenge))
	assert.True(t, challenge.RequiresPassword)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v0/shared/"+share.Token,
		map[string]string{"password": "wrong"}, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/v0/shared/"+share.Token,
		map[string]string{"password": "s3cret"}, false)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var view struct {
		Projects []struct {
			Project struct {
				Name string `json:"name"`
			} `json:"project"`
			Items []struct {
				Title string `json:"title"`
			} `json:"items"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(body, &view))
	require.Len(t, view.Projects, 1)
	assert.Equal(t, "Alpha", view.Projects[0].Project.Name)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/v0/shared/unknown-token", nil, false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_Health(t *testing.T) {
	srv := newTestServer(t)
	BindServiceHealth(func() bool { return true })
	t.Cleanup(func() { BindServiceHealth(func() bool { return false }) })

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v0/health", nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"healthy"`)
}
