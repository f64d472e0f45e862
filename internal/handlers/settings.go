package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/settings"
)

// SettingsExportFilename is the download name of the settings file.
const SettingsExportFilename = "system-settings.json"

// readBody reads at most limit bytes of the request body.
func readBody(r *http.Request, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read request body", errBadParam)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: request body exceeds %d bytes", settings.ErrFileTooLarge, limit)
	}
	return data, nil
}

// settingsBodyLimit bounds settings documents, which may embed a logo.
const settingsBodyLimit = 4 * settings.MaxLogoSize

// GetSettings handles GET /api/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.settings.Current())
}

// UpdateSettings handles PUT /api/settings with a partial settings document.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	patch, err := readBody(r, settingsBodyLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	current, err := h.settings.Update(r.Context(), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

// ResetSettings handles DELETE /api/settings.
func (h *Handler) ResetSettings(w http.ResponseWriter, r *http.Request) {
	current, err := h.settings.Reset(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.Logger(r.Context()).Info("Settings reset to defaults")
	writeJSON(w, http.StatusOK, current)
}

// ExportSettings handles GET /api/settings/export as a file download.
func (h *Handler) ExportSettings(w http.ResponseWriter, r *http.Request) {
	data, err := h.settings.Export()
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", SettingsExportFilename))
	w.Write(data)
}

// ImportSettings handles POST /api/settings/import with an exported settings file.
func (h *Handler) ImportSettings(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r, settingsBodyLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	current, err := h.settings.Import(r.Context(), data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.Logger(r.Context()).Info("Settings imported")
	writeJSON(w, http.StatusOK, current)
}

// UploadLogo handles POST /api/settings/logo. The body is the raw image, or a
// multipart form with a "logo" file field.
func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	var (
		data []byte
		err  error
	)
	if isMultipart(r) {
		data, err = readLogoPart(w, r)
	} else {
		data, err = readBody(r, settings.MaxLogoSize)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	current, err := h.settings.SetLogo(r.Context(), data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

// ClearLogo handles DELETE /api/settings/logo.
func (h *Handler) ClearLogo(w http.ResponseWriter, r *http.Request) {
	current, err := h.settings.ClearLogo(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func readLogoPart(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	// leave room for the multipart framing around the file
	r.Body = http.MaxBytesReader(w, r.Body, settings.MaxLogoSize+1<<20)
	file, header, err := r.FormFile("logo")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, fmt.Errorf("%w: logo must not exceed %dMB", settings.ErrFileTooLarge, settings.MaxLogoSize>>20)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: logo file is required", errBadParam)
	}
	defer file.Close()
	if header.Size > settings.MaxLogoSize {
		return nil, fmt.Errorf("%w: logo must not exceed %dMB", settings.ErrFileTooLarge, settings.MaxLogoSize>>20)
	}
	return io.ReadAll(io.LimitReader(file, settings.MaxLogoSize+1))
}
