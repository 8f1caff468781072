package api

import (
	"encoding/json"
	"net/http"

	"github.com/zdtango/finger-drawing/internal/draw"
	"github.com/zdtango/finger-drawing/internal/store"
)

// SettingsHandler reads and updates persisted settings. Updating the
// trigger mode also applies it to the running engine.
type SettingsHandler struct {
	store  *store.Store
	engine *draw.Engine
}

// NewSettingsHandler creates a SettingsHandler. engine may be nil.
func NewSettingsHandler(s *store.Store, engine *draw.Engine) *SettingsHandler {
	return &SettingsHandler{store: s, engine: engine}
}

type updateSettingsRequest struct {
	TriggerMode *string `json:"trigger_mode"`
	AutoExport  *string `json:"auto_export"`
}

type settingsResponse struct {
	Settings map[string]string `json:"settings"`
}

// ServeHTTP handles GET and PUT on /api/settings.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SettingsHandler) list(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{Settings: settings})
}

func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.TriggerMode != nil {
		mode, err := draw.ParseTriggerMode(*req.TriggerMode)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid trigger mode")
			return
		}
		if err := h.store.Settings().Set(store.SettingTriggerMode, string(mode)); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save setting")
			return
		}
		if h.engine != nil {
			h.engine.SetMode(mode)
		}
	}

	if req.AutoExport != nil {
		var err error
		if *req.AutoExport == "" {
			err = h.store.Settings().Delete(store.SettingAutoExport)
		} else {
			err = h.store.Settings().Set(store.SettingAutoExport, *req.AutoExport)
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save setting")
			return
		}
	}

	h.list(w, r)
}
