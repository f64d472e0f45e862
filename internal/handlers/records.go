package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/query"
	"github.com/ukydev/fleet-maintenance/internal/stats"
	"github.com/ukydev/fleet-maintenance/internal/validators"
)

type recordListResponse struct {
	Records  []query.RecordDetail `json:"records"`
	Summary  stats.Summary        `json:"summary"`
	Total    int                  `json:"total"`
	Filtered bool                 `json:"filtered"`
}

// selectRecords applies the filter and sort parameters of r to every record.
func (h *Handler) selectRecords(r *http.Request) ([]query.RecordDetail, query.FilterSpec, int, error) {
	spec, err := parseFilter(r.URL.Query())
	if err != nil {
		return nil, spec, 0, err
	}
	field, dir, err := parseSort(r.URL.Query())
	if err != nil {
		return nil, spec, 0, err
	}
	all := h.details(r)
	return query.Sort(query.Filter(all, spec), field, dir), spec, len(all), nil
}

// ListRecords handles GET /api/records.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	selected, spec, total, err := h.selectRecords(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordListResponse{
		Records:  selected,
		Summary:  stats.Summarize(query.Records(selected)),
		Total:    total,
		Filtered: !spec.IsZero(),
	})
}

// ExportRecords handles GET /api/records/export with the same parameters as ListRecords.
func (h *Handler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	selected, _, _, err := h.selectRecords(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	filename := fmt.Sprintf("maintenance-records-%s.csv", h.now().Format(dateLayout))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := query.ExportCSV(w, selected); err != nil {
		middleware.Logger(r.Context()).WithError(err).Error("Failed to write records export")
		return
	}
	middleware.Logger(r.Context()).WithField("records", len(selected)).Info("Records exported")
}

// RecordTechnicians handles GET /api/records/technicians.
func (h *Handler) RecordTechnicians(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, query.RecordTechnicians(h.store.Records.All()))
}

// GetRecord handles GET /api/records/{id}. A record whose vehicle or item no
// longer resolves is reported as not found.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.store.Records.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "Maintenance record not found", http.StatusNotFound)
		return
	}
	details, dangling := query.Join([]models.MaintenanceRecord{rec}, h.store)
	if len(dangling) > 0 {
		middleware.Logger(r.Context()).WithField("record_id", rec.ID).Warn("Record refers to a missing vehicle or item")
		http.Error(w, "Maintenance record not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, details[0])
}

type recordRequest struct {
	ItemID                 string   `json:"item_id" validate:"required"`
	Date                   string   `json:"date" validate:"required,datetime=2006-01-02"`
	Mileage                int      `json:"mileage" validate:"gte=0"`
	Technician             string   `json:"technician"`
	Cost                   *float64 `json:"cost" validate:"omitempty,gte=0"`
	Notes                  string   `json:"notes"`
	NextMaintenanceMileage *int     `json:"next_maintenance_mileage" validate:"omitempty,gte=0"`
}

// UpdateRecord handles PUT /api/records/{id}.
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.store.Records.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "Maintenance record not found", http.StatusNotFound)
		return
	}
	var req recordRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	item, ok := h.store.Item(req.ItemID)
	if !ok {
		http.Error(w, "Maintenance item "+req.ItemID+" not found", http.StatusBadRequest)
		return
	}
	date, _ := time.ParseInLocation(dateLayout, req.Date, time.Local)
	rec.ItemID = item.ID
	rec.Date = date
	rec.Mileage = req.Mileage
	rec.Technician = strings.TrimSpace(req.Technician)
	rec.Cost = req.Cost
	rec.Notes = req.Notes
	rec.NextMaintenanceMileage = req.NextMaintenanceMileage
	rec.UpdatedAt = h.now()
	vehicle, item, err := h.store.UpdateRecord(rec)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, query.RecordDetail{MaintenanceRecord: rec, Vehicle: vehicle, Item: item})
}

// DeleteRecord handles DELETE /api/records/{id}.
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.Records.Remove(chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
