// Package client is the Go API client for the daybook service, used by
// daybookctl and usable by any Go program that talks to the dashboard.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/rollup"
)

// Client talks to a daybook service over HTTP.
type Client struct {
	http *resty.Client
}

// New builds a client for the given base URL. The API key may be empty
// for servers running without one; a bearer header is still sent because
// the server requires the scheme.
func New(baseURL, apiKey string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(apiKey).
		SetTimeout(30 * time.Second)
	return &Client{http: c}
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("daybook: server returned %d: %s", e.Status, e.Message)
}

// StatusCode extracts the HTTP status from an error returned by this
// package, or 0 when the error did not come from the server.
func StatusCode(err error) int {
	if ae, ok := err.(*apiError); ok {
		return ae.Status
	}
	return 0
}

func checkResp(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		msg := resp.String()
		if jerr := json.Unmarshal(resp.Body(), &body); jerr == nil {
			if body.Message != "" {
				msg = body.Message
			} else if body.Error != "" {
				msg = body.Error
			}
		}
		return &apiError{Status: resp.StatusCode(), Message: msg}
	}
	return nil
}

// --- Projects ---

// CreateProjectRequest mirrors POST /v0/projects.
type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*model.Project, error) {
	var out model.Project
	resp, err := c.http.R().SetContext(ctx).SetBody(req).SetResult(&out).Post("/v0/projects")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProjects(ctx context.Context, activeOnly bool) ([]*model.Project, error) {
	var out struct {
		Projects []*model.Project `json:"projects"`
	}
	r := c.http.R().SetContext(ctx).SetResult(&out)
	if activeOnly {
		r.SetQueryParam("active", "true")
	}
	resp, err := r.Get("/v0/projects")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

func (c *Client) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	var out model.Project
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/v0/projects/" + projectID)
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ArchiveProject(ctx context.Context, projectID string) (*model.Project, error) {
	var out model.Project
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Delete("/v0/projects/" + projectID)
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Daily entries ---

func (c *Client) PutEntry(ctx context.Context, date, text string, isPlan bool) (*model.DailyEntry, error) {
	var out model.DailyEntry
	r := c.http.R().SetContext(ctx).SetBody(map[string]string{"text": text}).SetResult(&out)
	if isPlan {
		r.SetQueryParam("plan", "true")
	}
	resp, err := r.Put("/v0/entries/" + date)
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetEntry(ctx context.Context, date string, isPlan bool) (*model.DailyEntry, error) {
	var out model.DailyEntry
	r := c.http.R().SetContext(ctx).SetResult(&out)
	if isPlan {
		r.SetQueryParam("plan", "true")
	}
	resp, err := r.Get("/v0/entries/" + date)
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListEntries(ctx context.Context, from, to string) ([]*model.DailyEntry, error) {
	var out struct {
		Entries []*model.DailyEntry `json:"entries"`
	}
	r := c.http.R().SetContext(ctx).SetResult(&out)
	if from != "" {
		r.SetQueryParam("from", from)
	}
	if to != "" {
		r.SetQueryParam("to", to)
	}
	resp, err := r.Get("/v0/entries")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

func (c *Client) DeleteEntry(ctx context.Context, date string, isPlan bool) error {
	r := c.http.R().SetContext(ctx)
	if isPlan {
		r.SetQueryParam("plan", "true")
	}
	resp, err := r.Delete("/v0/entries/" + date)
	return checkResp(resp, err)
}

// --- Reports ---

// PeriodStatus mirrors one element of GET /v0/reports/periods.
type PeriodStatus struct {
	Kind           string    `json:"kind"`
	Year           int       `json:"year"`
	Index          int       `json:"index"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Label          string    `json:"label"`
	Status         string    `json:"status"`
	CompletionRate float64   `json:"completionRate"`
}

func (c *Client) ListPeriods(ctx context.Context, kind string, n int) ([]PeriodStatus, error) {
	var out struct {
		Periods []PeriodStatus `json:"periods"`
	}
	req := c.http.R().SetContext(ctx).
		SetQueryParam("kind", kind).
		SetResult(&out)
	if n > 0 {
		req.SetQueryParam("n", fmt.Sprintf("%d", n))
	}
	resp, err := req.Get("/v0/reports/periods")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return out.Periods, nil
}

// ReportPreview mirrors GET /v0/reports/preview.
type ReportPreview struct {
	Text  string `json:"text"`
	Empty bool   `json:"empty"`
}

func (c *Client) PreviewReport(ctx context.Context, kind, date string) (*ReportPreview, error) {
	var out ReportPreview
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("kind", kind).
		SetQueryParam("date", date).
		SetResult(&out).
		Get("/v0/reports/preview")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveReport(ctx context.Context, kind, date string) (*model.PeriodReport, error) {
	var out model.PeriodReport
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"kind": kind, "date": date}).
		SetResult(&out).
		Post("/v0/reports")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetReport(ctx context.Context, kind string, year, index int) (*model.PeriodReport, error) {
	var out model.PeriodReport
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).
		Get(fmt.Sprintf("/v0/reports/%s/%d/%d", kind, year, index))
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListReports(ctx context.Context, kind string) ([]*model.PeriodReport, error) {
	var out struct {
		Reports []*model.PeriodReport `json:"reports"`
	}
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("kind", kind).
		SetResult(&out).
		Get("/v0/reports")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return out.Reports, nil
}

// --- Todos ---

// CreateTodoRequest mirrors POST /v0/projects/{id}/todos.
type CreateTodoRequest struct {
	Content  string  `json:"content"`
	Priority string  `json:"priority"`
	DueDate  *string `json:"dueDate,omitempty"`
}

func (c *Client) CreateTodo(ctx context.Context, projectID string, req CreateTodoRequest) (*model.TodoItem, error) {
	var out model.TodoItem
	resp, err := c.http.R().SetContext(ctx).SetBody(req).SetResult(&out).
		Post("/v0/projects/" + projectID + "/todos")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProjectTodos(ctx context.Context, projectID string) ([]*model.TodoItem, error) {
	var out struct {
		Todos []*model.TodoItem `json:"todos"`
	}
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).
		Get("/v0/projects/" + projectID + "/todos")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return out.Todos, nil
}

func (c *Client) CompleteTodo(ctx context.Context, todoID, date string) (*model.TodoItem, error) {
	var out model.TodoItem
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"date": date}).
		SetResult(&out).
		Post("/v0/todos/" + todoID + "/complete")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTodo(ctx context.Context, todoID string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/v0/todos/" + todoID)
	return checkResp(resp, err)
}

// DashboardSummary mirrors GET /v0/todos/summary.
type DashboardSummary struct {
	PerProject        map[string]rollup.Counts `json:"perProject"`
	Overall           rollup.Counts            `json:"overall"`
	RecentlyCompleted []*model.TodoItem        `json:"recentlyCompleted"`
}

func (c *Client) Summary(ctx context.Context) (*DashboardSummary, error) {
	var out DashboardSummary
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/v0/todos/summary")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Work items and shares ---

// CreateWorkItemRequest mirrors POST /v0/projects/{id}/workitems.
type CreateWorkItemRequest struct {
	ParentID  *string `json:"parentId,omitempty"`
	Title     string  `json:"title"`
	Status    string  `json:"status,omitempty"`
	SortOrder int     `json:"sortOrder,omitempty"`
}

func (c *Client) CreateWorkItem(ctx context.Context, projectID string, req CreateWorkItemRequest) (*model.WorkItem, error) {
	var out model.WorkItem
	resp, err := c.http.R().SetContext(ctx).SetBody(req).SetResult(&out).
		Post("/v0/projects/" + projectID + "/workitems")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) WorkItemTree(ctx context.Context, projectID string) ([]*model.WorkItemNode, error) {
	var out struct {
		Items []*model.WorkItemNode `json:"items"`
	}
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).
		Get("/v0/projects/" + projectID + "/workitems/tree")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// CreateShareRequest mirrors POST /v0/shares.
type CreateShareRequest struct {
	ProjectID     *string `json:"projectId,omitempty"`
	Password      *string `json:"password,omitempty"`
	ExpiresInDays *int    `json:"expiresInDays,omitempty"`
}

func (c *Client) CreateShare(ctx context.Context, req CreateShareRequest) (*model.WorkBreakdownShare, error) {
	var out model.WorkBreakdownShare
	resp, err := c.http.R().SetContext(ctx).SetBody(req).SetResult(&out).Post("/v0/shares")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListShares(ctx context.Context) ([]*model.WorkBreakdownShare, error) {
	var out struct {
		Shares []*model.WorkBreakdownShare `json:"shares"`
	}
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/v0/shares")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return out.Shares, nil
}

func (c *Client) RevokeShare(ctx context.Context, shareID string) (*model.WorkBreakdownShare, error) {
	var out model.WorkBreakdownShare
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Post("/v0/shares/" + shareID + "/revoke")
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// SharedView mirrors POST /v0/shared/{token}.
type SharedView struct {
	Projects []struct {
		Project *model.Project        `json:"project"`
		Items   []*model.WorkItemNode `json:"items"`
	} `json:"projects"`
}

// ResolveShare is the consumer side; it needs no API key.
func (c *Client) ResolveShare(ctx context.Context, token, password string) (*SharedView, error) {
	var out SharedView
	body := map[string]string{}
	if password != "" {
		body["password"] = password
	}
	resp, err := c.http.R().SetContext(ctx).SetBody(body).SetResult(&out).Post("/v0/shared/" + token)
	if err := checkResp(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Healthy reports whether the service says it is healthy.
func (c *Client) Healthy(ctx context.Context) (bool, error) {
	var out struct {
		Status string `json:"status"`
	}
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/v0/health")
	if err := checkResp(resp, err); err != nil {
		return false, err
	}
	return out.Status == "healthy", nil
}
