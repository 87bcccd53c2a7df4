package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"smartbill/internal/httpx"
	"smartbill/internal/models"
	"smartbill/internal/repo"
	"smartbill/internal/services"
)

// DashboardHandler serves the read-only aggregates and the on-demand daily
// summary delivery.
type DashboardHandler struct {
	Reports  *services.ReportService
	Settings *repo.SettingRepo
	Notifier services.Notifier
}

func NewDashboardHandler(reports *services.ReportService, settings *repo.SettingRepo, notifier services.Notifier) *DashboardHandler {
	return &DashboardHandler{Reports: reports, Settings: settings, Notifier: notifier}
}

// Stats: GET /dashboard
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Reports.Stats()
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

// Sales: GET /dashboard/sales?days=7
func (h *DashboardHandler) Sales(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 90 {
			days = n
		}
	}
	sales, err := h.Reports.SalesByDay(days)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": sales})
}

// SendSummary: POST /dashboard/summary — assemble and deliver today's summary now.
func (h *DashboardHandler) SendSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Reports.DailySummary(time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	recipient, err := h.Settings.Get(models.SettingSalesSummaryEmail)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Notifier.SendDailySummary(recipient, summary); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

// SummaryEmail: POST /dashboard/summary-email — store the recipient address.
func (h *DashboardHandler) SummaryEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Settings.Put(models.SettingSalesSummaryEmail, req.Email); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
