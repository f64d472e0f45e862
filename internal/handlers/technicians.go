package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/query"
	"github.com/ukydev/fleet-maintenance/internal/store"
	"github.com/ukydev/fleet-maintenance/internal/validators"
)

type technicianRequest struct {
	Name        string                  `json:"name" validate:"required"`
	Phone       string                  `json:"phone" validate:"required"`
	Email       string                  `json:"email" validate:"omitempty,email"`
	Position    string                  `json:"position"`
	Specialties []string                `json:"specialties"`
	HireDate    string                  `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	Status      models.TechnicianStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Notes       string                  `json:"notes"`
}

func (req technicianRequest) apply(t *models.Technician) {
	t.Name = strings.TrimSpace(req.Name)
	t.Phone = strings.TrimSpace(req.Phone)
	t.Email = strings.TrimSpace(req.Email)
	t.Position = req.Position
	t.Specialties = req.Specialties
	if t.Specialties == nil {
		t.Specialties = []string{}
	}
	if req.HireDate != "" {
		t.HireDate, _ = time.ParseInLocation(dateLayout, req.HireDate, time.Local)
	}
	if req.Status != "" {
		t.Status = req.Status
	}
	t.Notes = req.Notes
}

type technicianListResponse struct {
	Technicians []models.Technician `json:"technicians"`
	query.TechnicianSummary
}

// ListTechnicians handles GET /api/technicians. The counters cover all staff,
// not just the technicians matching q.
func (h *Handler) ListTechnicians(w http.ResponseWriter, r *http.Request) {
	all := h.store.Technicians.All()
	writeJSON(w, http.StatusOK, technicianListResponse{
		Technicians:       query.SearchTechnicians(all, r.URL.Query().Get("q")),
		TechnicianSummary: query.SummarizeTechnicians(all, h.now()),
	})
}

// CreateTechnician handles POST /api/technicians.
func (h *Handler) CreateTechnician(w http.ResponseWriter, r *http.Request) {
	var req technicianRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	now := h.now()
	t := models.Technician{
		ID:        store.NewID(),
		HireDate:  now,
		Status:    models.TechnicianActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(&t)
	if _, err := h.store.Technicians.Insert(t); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// UpdateTechnician handles PUT /api/technicians/{id}.
func (h *Handler) UpdateTechnician(w http.ResponseWriter, r *http.Request) {
	t, ok := h.store.Technicians.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "Technician not found", http.StatusNotFound)
		return
	}
	var req technicianRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.apply(&t)
	t.UpdatedAt = h.now()
	if _, err := h.store.Technicians.Update(t); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTechnician handles DELETE /api/technicians/{id}. Records keep the name.
func (h *Handler) DeleteTechnician(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.Technicians.Remove(chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
