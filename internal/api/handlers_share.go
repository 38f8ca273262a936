package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/daybook-hq/daybook/internal/api/respond"
	"github.com/daybook-hq/daybook/internal/api/validate"
	"github.com/daybook-hq/daybook/internal/services"
)

// ShareHandler is a thin HTTP transport over ShareService.
type ShareHandler struct {
	svc *services.ShareService
}

func NewShareHandler(svc *services.ShareService) *ShareHandler { return &ShareHandler{svc: svc} }

// CreateShare POST /v0/shares
func (h *ShareHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID     *string `json:"projectId"`
		Password      *string `json:"password"`
		ExpiresInDays *int    `json:"expiresInDays"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.ShareExpiry(req.ExpiresInDays); err != nil {
		writeServiceError(w, err)
		return
	}
	out, err := h.svc.CreateShare(r.Context(), services.CreateShareRequest{
		UserID:        requestUserID(r),
		ProjectID:     req.ProjectID,
		Password:      req.Password,
		ExpiresInDays: req.ExpiresInDays,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListShares GET /v0/shares
func (h *ShareHandler) ListShares(w http.ResponseWriter, r *http.Request) {
	shares, err := h.svc.ListShares(r.Context(), requestUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"shares": shares, "count": len(shares)})
}

// RevokeShare POST /v0/shares/{shareId}/revoke
func (h *ShareHandler) RevokeShare(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.RevokeShare(r.Context(), requestUserID(r), mux.Vars(r)["shareId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteShare DELETE /v0/shares/{shareId}
func (h *ShareHandler) DeleteShare(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteShare(r.Context(), requestUserID(r), mux.Vars(r)["shareId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResolveShare POST /v0/shared/{token}
// Public endpoint for share consumers; the password travels in the body
// so it never lands in server logs. An empty body works for links
// without a password.
func (h *ShareHandler) ResolveShare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	view, err := h.svc.ResolveShare(r.Context(), mux.Vars(r)["token"], req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, view)
}
