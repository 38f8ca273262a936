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

// ProjectHandler is a thin HTTP transport over ProjectService.
type ProjectHandler struct {
	svc *services.ProjectService
}

func NewProjectHandler(svc *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// CreateProject POST /v0/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Code        *string `json:"code"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.CreateProject(req.Name, req.Code, req.Description); err != nil {
		writeServiceError(w, err)
		return
	}
	out, err := h.svc.CreateProject(r.Context(), &model.Project{
		UserID:      requestUserID(r),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListProjects GET /v0/projects?active=true
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	projects, err := h.svc.ListProjects(r.Context(), requestUserID(r), activeOnly)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"projects": projects, "count": len(projects)})
}

// GetProject GET /v0/projects/{projectId}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.GetProject(r.Context(), requestUserID(r), mux.Vars(r)["projectId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// UpdateProject PATCH /v0/projects/{projectId}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	cur, err := h.svc.GetProject(r.Context(), userID, mux.Vars(r)["projectId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Code        *string `json:"code"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Name != nil {
		cur.Name = *req.Name
	}
	if req.Code != nil {
		cur.Code = req.Code
	}
	if req.Description != nil {
		cur.Description = req.Description
	}
	if req.IsActive != nil {
		cur.IsActive = *req.IsActive
	}
	if err := validate.CreateProject(cur.Name, cur.Code, cur.Description); err != nil {
		writeServiceError(w, err)
		return
	}
	out, err := h.svc.UpdateProject(r.Context(), cur)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// ArchiveProject DELETE /v0/projects/{projectId}
// Projects are never hard-deleted; history must keep resolving.
func (h *ProjectHandler) ArchiveProject(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ArchiveProject(r.Context(), requestUserID(r), mux.Vars(r)["projectId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
