package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ukydev/fleet-maintenance/internal/stats"
)

// report builds the statistics report selected by the time and category parameters.
func (h *Handler) report(r *http.Request) (stats.TimeFilter, stats.Report, error) {
	tf, err := stats.ParseTimeFilter(r.URL.Query().Get("time"))
	if err != nil {
		return "", stats.Report{}, err
	}
	category, err := parseCategory(r.URL.Query(), "category")
	if err != nil {
		return "", stats.Report{}, err
	}
	records := h.store.Records.All()
	return tf, stats.BuildReport(records, h.store, tf, category, h.now()), nil
}

// Statistics handles GET /api/statistics.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	_, report, err := h.report(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ExportStatistics handles GET /api/statistics/export as a file download.
func (h *Handler) ExportStatistics(w http.ResponseWriter, r *http.Request) {
	tf, report, err := h.report(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", stats.Filename(tf)))
	w.Write(data)
}
