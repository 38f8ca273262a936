package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	respond "github.com/daybook-hq/daybook/internal/api/respond"
	"github.com/daybook-hq/daybook/internal/api/validate"
	"github.com/daybook-hq/daybook/internal/services"
)

// ReportHandler is a thin HTTP transport over ReportService.
type ReportHandler struct {
	svc *services.ReportService
}

func NewReportHandler(svc *services.ReportService) *ReportHandler { return &ReportHandler{svc: svc} }

// ListPeriods GET /v0/reports/periods?kind=week&n=12
// Returns the trailing periods with their generation status.
// Default window: 12 weeks or 24 months.
func (h *ReportHandler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := q.Get("kind")
	if err := validate.PeriodKind(kind); err != nil {
		writeServiceError(w, err)
		return
	}
	n := 12
	if kind == "month" {
		n = 24
	}
	if v := q.Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 60 {
			respond.WriteBadRequest(w, "n must be an integer between 1 and 60")
			return
		}
		n = parsed
	}
	periods, err := h.svc.ListPeriods(r.Context(), requestUserID(r), kind, n, time.Now().UTC())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"periods": periods, "count": len(periods)})
}

// PreviewReport GET /v0/reports/preview?kind=week&date=2024-03-06
func (h *ReportHandler) PreviewReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.svc.PreviewReport(r.Context(), requestUserID(r), q.Get("kind"), q.Get("date"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// SaveReport POST /v0/reports
// Renders and persists the report for the period containing the date.
func (h *ReportHandler) SaveReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind string `json:"kind"`
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.SaveReport(r.Context(), requestUserID(r), req.Kind, req.Date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListReports GET /v0/reports?kind=week
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if err := validate.PeriodKind(kind); err != nil {
		writeServiceError(w, err)
		return
	}
	reports, err := h.svc.ListReports(r.Context(), requestUserID(r), kind)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"reports": reports, "count": len(reports)})
}

// GetReport GET /v0/reports/{kind}/{year}/{index}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := validate.PeriodKind(vars["kind"]); err != nil {
		writeServiceError(w, err)
		return
	}
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		respond.WriteBadRequest(w, "year must be an integer")
		return
	}
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		respond.WriteBadRequest(w, "index must be an integer")
		return
	}
	out, err := h.svc.GetReport(r.Context(), requestUserID(r), vars["kind"], year, index)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
