package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/query"
	"github.com/ukydev/fleet-maintenance/internal/store"
	"github.com/ukydev/fleet-maintenance/internal/validators"
)

type itemRequest struct {
	Name        string          `json:"name" validate:"required"`
	Category    models.Category `json:"category" validate:"required,category"`
	Description string          `json:"description"`
}

func (req itemRequest) apply(item *models.MaintenanceItem) {
	item.Name = strings.TrimSpace(req.Name)
	item.Category = req.Category
	item.Description = req.Description
}

// ListItems handles GET /api/items. category narrows the catalog and
// grouped=true returns it grouped by category.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items := h.store.Items.All()
	category, err := parseCategory(r.URL.Query(), "category")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if category != nil {
		items = query.ItemsInCategory(items, *category)
	}
	if r.URL.Query().Get("grouped") == "true" {
		writeJSON(w, http.StatusOK, query.GroupItemsByCategory(items))
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateItem handles POST /api/items.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	item := models.MaintenanceItem{ID: store.NewID()}
	req.apply(&item)
	if _, err := h.store.Items.Insert(item); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/items/{id}.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.store.Item(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "Maintenance item not found", http.StatusNotFound)
		return
	}
	var req itemRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.apply(&item)
	if _, err := h.store.Items.Update(item); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/items/{id}. Items still used by records are kept.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.RemoveItem(chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
