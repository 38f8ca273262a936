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

// EntryHandler is a thin HTTP transport over EntryService.
type EntryHandler struct {
	svc *services.EntryService
}

func NewEntryHandler(svc *services.EntryService) *EntryHandler { return &EntryHandler{svc: svc} }

func wantPlan(r *http.Request) bool { return r.URL.Query().Get("plan") == "true" }

// PutEntry PUT /v0/entries/{date}
// Saves the full text for the date; the same endpoint serves both the
// work record and the plan (?plan=true).
func (h *EntryHandler) PutEntry(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.PutEntry(date, req.Text); err != nil {
		writeServiceError(w, err)
		return
	}
	out, err := h.svc.PutEntry(r.Context(), &model.DailyEntry{
		UserID: requestUserID(r),
		Date:   date,
		IsPlan: wantPlan(r),
		Text:   req.Text,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// GetEntry GET /v0/entries/{date}?plan=
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if err := validate.Date("date", date); err != nil {
		writeServiceError(w, err)
		return
	}
	out, err := h.svc.GetEntry(r.Context(), requestUserID(r), date, wantPlan(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// ListEntries GET /v0/entries?from=&to=&plan=
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := model.ListEntriesRequest{
		UserID: requestUserID(r),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}
	if req.From != "" {
		if err := validate.Date("from", req.From); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	if req.To != "" {
		if err := validate.Date("to", req.To); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	if v := q.Get("plan"); v != "" {
		isPlan := v == "true"
		req.IsPlan = &isPlan
	}
	entries, err := h.svc.ListEntries(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries, "count": len(entries)})
}

// DeleteEntry DELETE /v0/entries/{date}?plan=
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if err := validate.Date("date", date); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.svc.DeleteEntry(r.Context(), requestUserID(r), date, wantPlan(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
