package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/notify"
	"github.com/ukydev/fleet-maintenance/internal/query"
	"github.com/ukydev/fleet-maintenance/internal/settings"
	"github.com/ukydev/fleet-maintenance/internal/stats"
	"github.com/ukydev/fleet-maintenance/internal/store"
	"github.com/ukydev/fleet-maintenance/internal/validators"
)

// dateLayout is the calendar-day format used in query parameters and request bodies.
const dateLayout = "2006-01-02"

// Handler serves the maintenance API over one store and one settings service.
type Handler struct {
	store    *store.Store
	settings *settings.Service
	notifier notify.Notifier
	now      func() time.Time
}

// NewHandler creates the API handler. A nil notifier disables notifications.
func NewHandler(st *store.Store, settingsService *settings.Service, notifier notify.Notifier) *Handler {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Handler{
		store:    st,
		settings: settingsService,
		notifier: notifier,
		now:      time.Now,
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"vehicles": h.store.Vehicles.Len(),
		"records":  h.store.Records.Len(),
	})
}

// details joins every stored record, logging the ones with dangling references.
func (h *Handler) details(r *http.Request) []query.RecordDetail {
	details, dangling := query.Join(h.store.Records.All(), h.store)
	if len(dangling) > 0 {
		middleware.Logger(r.Context()).WithField("record_ids", dangling).
			Warn("Skipping records with dangling references")
	}
	return details
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateID),
		errors.Is(err, store.ErrDuplicatePlate),
		errors.Is(err, store.ErrItemInUse):
		status = http.StatusConflict
	case errors.Is(err, settings.ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, validators.ErrValidation),
		errors.Is(err, settings.ErrInvalidSettings),
		errors.Is(err, query.ErrInvalidSortField),
		errors.Is(err, query.ErrInvalidDirection),
		errors.Is(err, stats.ErrInvalidTimeFilter),
		errors.Is(err, store.ErrUnknownItem),
		errors.Is(err, errBadParam):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		middleware.Logger(r.Context()).WithError(err).Error("Request failed")
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
