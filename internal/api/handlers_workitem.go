package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/daybook-hq/daybook/internal/api/respond"
	"github.com/daybook-hq/daybook/internal/api/validate"
	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/internal/services"
)

// WorkItemHandler is a thin HTTP transport over WorkItemService.
type WorkItemHandler struct {
	svc *services.WorkItemService
}

func NewWorkItemHandler(svc *services.WorkItemService) *WorkItemHandler {
	return &WorkItemHandler{svc: svc}
}

// CreateWorkItem POST /v0/projects/{projectId}/workitems
func (h *WorkItemHandler) CreateWorkItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParentID  *string `json:"parentId"`
		Title     string  `json:"title"`
		Status    string  `json:"status"`
		SortOrder int     `json:"sortOrder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.NonEmpty("title", req.Title); err != nil {
		writeServiceError(w, err)
		return
	}
	if req.Status != "" {
		if err := validate.TodoStatus(req.Status); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	out, err := h.svc.CreateWorkItem(r.Context(), &model.WorkItem{
		UserID:    requestUserID(r),
		ProjectID: mux.Vars(r)["projectId"],
		ParentID:  req.ParentID,
		Title:     req.Title,
		Status:    req.Status,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// Tree GET /v0/projects/{projectId}/workitems/tree
func (h *WorkItemHandler) Tree(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Tree(r.Context(), requestUserID(r), mux.Vars(r)["projectId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// UpdateWorkItem PATCH /v0/workitems/{itemId}
func (h *WorkItemHandler) UpdateWorkItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParentID  *string `json:"parentId"`
		Title     *string `json:"title"`
		Status    *string `json:"status"`
		SortOrder *int    `json:"sortOrder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	// PATCH semantics need the current row; the store has no partial
	// update, so read-modify-write here.
	cur, err := h.svc.GetWorkItem(r.Context(), requestUserID(r), mux.Vars(r)["itemId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if req.Title != nil {
		cur.Title = *req.Title
	}
	if req.Status != nil {
		if err := validate.TodoStatus(*req.Status); err != nil {
			writeServiceError(w, err)
			return
		}
		cur.Status = *req.Status
	}
	if req.ParentID != nil {
		cur.ParentID = req.ParentID
	}
	if req.SortOrder != nil {
		cur.SortOrder = *req.SortOrder
	}
	if err := validate.NonEmpty("title", cur.Title); err != nil {
		writeServiceError(w, err)
		return
	}
	out, err := h.svc.UpdateWorkItem(r.Context(), cur)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteWorkItem DELETE /v0/workitems/{itemId}
// Removes the item together with its subtree.
func (h *WorkItemHandler) DeleteWorkItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteWorkItem(r.Context(), requestUserID(r), mux.Vars(r)["itemId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
