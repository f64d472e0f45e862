package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/notify"
	"github.com/ukydev/fleet-maintenance/internal/query"
	"github.com/ukydev/fleet-maintenance/internal/store"
	"github.com/ukydev/fleet-maintenance/internal/validators"
)

// vehicleRequest is the body of vehicle create and update calls.
type vehicleRequest struct {
	Brand           string `json:"brand" validate:"required"`
	Model           string `json:"model" validate:"required"`
	EngineCode      string `json:"engine_code"`
	LicensePlate    string `json:"license_plate" validate:"required"`
	OwnerName       string `json:"owner_name" validate:"required"`
	CustomerPhone   string `json:"customer_phone" validate:"required"`
	ManufactureYear int    `json:"manufacture_year" validate:"gte=1900,lte=2100"`
	CurrentMileage  int    `json:"current_mileage" validate:"gte=0"`
}

func (req vehicleRequest) apply(v *models.Vehicle) {
	v.Brand = strings.TrimSpace(req.Brand)
	v.Model = strings.TrimSpace(req.Model)
	v.EngineCode = strings.TrimSpace(req.EngineCode)
	v.LicensePlate = strings.TrimSpace(req.LicensePlate)
	v.OwnerName = strings.TrimSpace(req.OwnerName)
	v.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	v.ManufactureYear = req.ManufactureYear
	v.CurrentMileage = req.CurrentMileage
}

// vehicleListItem is a vehicle with the date of its latest maintenance.
type vehicleListItem struct {
	models.Vehicle
	LastMaintenance *time.Time `json:"last_maintenance,omitempty"`
}

// ListVehicles handles GET /api/vehicles. view=grouped groups by owner and
// view=multi keeps owners with several vehicles.
func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	fleet := h.store.Vehicles.All()
	matched := query.SearchVehicles(fleet, r.URL.Query().Get("q"))
	records := h.store.Records.All()

	switch view := r.URL.Query().Get("view"); view {
	case "grouped":
		writeJSON(w, http.StatusOK, query.GroupByOwner(matched, fleet, records))
	case "multi":
		writeJSON(w, http.StatusOK, query.MultiVehicleOwners(query.GroupByOwner(matched, fleet, records)))
	case "", "list":
		out := make([]vehicleListItem, 0, len(matched))
		for _, v := range matched {
			item := vehicleListItem{Vehicle: v}
			if latest, ok := query.LatestRecord(v.ID, records); ok {
				d := latest.Date
				item.LastMaintenance = &d
			}
			out = append(out, item)
		}
		writeJSON(w, http.StatusOK, out)
	default:
		http.Error(w, "view must be list, grouped or multi", http.StatusBadRequest)
	}
}

// GetVehicle handles GET /api/vehicles/{id}.
func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	v, ok := h.store.Vehicle(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// CreateVehicle handles POST /api/vehicles.
func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	now := h.now()
	v := models.Vehicle{ID: store.NewID(), CreatedAt: now, UpdatedAt: now}
	req.apply(&v)
	if _, err := h.store.InsertVehicle(v); err != nil {
		writeError(w, r, err)
		return
	}
	middleware.Logger(r.Context()).WithFields(log.Fields{
		"vehicle_id":    v.ID,
		"license_plate": v.LicensePlate,
	}).Info("Vehicle created")
	writeJSON(w, http.StatusCreated, v)
}

// UpdateVehicle handles PUT /api/vehicles/{id}.
func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	v, ok := h.store.Vehicle(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	var req vehicleRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.apply(&v)
	v.UpdatedAt = h.now()
	if _, err := h.store.UpdateVehicle(v); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DeleteVehicle handles DELETE /api/vehicles/{id}. The vehicle's records go with it.
func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, removed, err := h.store.RemoveVehicle(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.Logger(r.Context()).WithFields(log.Fields{
		"vehicle_id":      id,
		"records_removed": removed,
	}).Info("Vehicle deleted")
	w.WriteHeader(http.StatusNoContent)
}

// historyResponse is a vehicle with its records, newest first.
type historyResponse struct {
	Vehicle models.Vehicle       `json:"vehicle"`
	Records []query.RecordDetail `json:"records"`
	Total   int                  `json:"total"`
	Latest  *query.RecordDetail  `json:"latest,omitempty"`
}

// VehicleHistory handles GET /api/vehicles/{id}/maintenance.
func (h *Handler) VehicleHistory(w http.ResponseWriter, r *http.Request) {
	vehicle, records, err := query.History(chi.URLParam(r, "id"), h.store.Records.All(), h.store)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := historyResponse{Vehicle: vehicle, Records: records, Total: len(records)}
	if len(records) > 0 {
		resp.Latest = &records[0]
	}
	writeJSON(w, http.StatusOK, resp)
}

// maintenanceEntry is the body of a multi-item maintenance entry. One record is
// created per item with the same date, mileage, technician, cost and notes.
type maintenanceEntry struct {
	Date                   string   `json:"date" validate:"required,datetime=2006-01-02"`
	Mileage                int      `json:"mileage" validate:"gte=0"`
	Technician             string   `json:"technician"`
	Cost                   *float64 `json:"cost" validate:"omitempty,gte=0"`
	Notes                  string   `json:"notes"`
	NextMaintenanceMileage *int     `json:"next_maintenance_mileage" validate:"omitempty,gte=0"`
	ItemIDs                []string `json:"item_ids" validate:"min=1,dive,required"`
}

type entryResponse struct {
	Records        []query.RecordDetail `json:"records"`
	MileageUpdated bool                 `json:"mileage_updated"`
	Warning        string               `json:"warning,omitempty"`
}

// CreateMaintenance handles POST /api/vehicles/{id}/maintenance.
func (h *Handler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := h.store.Vehicle(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	var entry maintenanceEntry
	if err := validators.DecodeJSONBody(r, &entry); err != nil {
		writeError(w, r, err)
		return
	}
	date, _ := time.ParseInLocation(dateLayout, entry.Date, time.Local)

	items := make([]models.MaintenanceItem, 0, len(entry.ItemIDs))
	seen := make(map[string]bool)
	for _, id := range entry.ItemIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		item, ok := h.store.Item(id)
		if !ok {
			http.Error(w, "Maintenance item "+id+" not found", http.StatusBadRequest)
			return
		}
		items = append(items, item)
	}

	logger := middleware.Logger(r.Context()).WithField("vehicle_id", vehicle.ID)
	now := h.now()
	recs := make([]models.MaintenanceRecord, 0, len(items))
	for _, item := range items {
		recs = append(recs, models.MaintenanceRecord{
			ID:                     store.NewID(),
			VehicleID:              vehicle.ID,
			ItemID:                 item.ID,
			Date:                   date,
			Mileage:                entry.Mileage,
			Technician:             strings.TrimSpace(entry.Technician),
			Notes:                  entry.Notes,
			Cost:                   entry.Cost,
			NextMaintenanceMileage: entry.NextMaintenanceMileage,
			CreatedAt:              now,
			UpdatedAt:              now,
		})
	}
	raised, err := h.store.InsertRecords(vehicle.ID, recs, now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created := make([]query.RecordDetail, 0, len(recs))
	for i, rec := range recs {
		created = append(created, query.RecordDetail{MaintenanceRecord: rec, Vehicle: vehicle, Item: items[i]})
	}

	resp := entryResponse{Records: created}
	resp.MileageUpdated = raised
	if entry.Mileage < vehicle.CurrentMileage {
		resp.Warning = "mileage is lower than the vehicle's current mileage"
		logger.WithFields(log.Fields{
			"mileage":         entry.Mileage,
			"current_mileage": vehicle.CurrentMileage,
		}).Warn("Maintenance mileage below current odometer")
	}
	logger.WithField("records", len(created)).Info("Maintenance records created")

	if h.settings.Current().Notifications.Maintenance {
		for _, d := range created {
			if err := h.notifier.Publish(r.Context(), notify.NewRecordEvent(d, now)); err != nil {
				logger.WithError(err).WithField("record_id", d.ID).Warn("Failed to publish maintenance event")
			}
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}
