package portal

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/netclock/netclock-go/pkg/discovery"
	"github.com/netclock/netclock-go/pkg/settings"
)

// StationConfig configures the station pages.
type StationConfig struct {
	Logger *slog.Logger
}

// StationHandler serves the status, settings and reset pages.
type StationHandler struct {
	backend StationBackend
	logger  *slog.Logger
	mux     *http.ServeMux
}

// NewStationHandler creates the station handler.
func NewStationHandler(backend StationBackend, config StationConfig) *StationHandler {
	h := &StationHandler{
		backend: backend,
		logger:  discard(config.Logger),
		mux:     http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /{$}", h.handleStatus)
	h.mux.HandleFunc("GET /settings", h.handleSettings)
	h.mux.HandleFunc("POST /updatesettings", h.handleUpdateSettings)
	h.mux.HandleFunc("GET /reset", h.handleReset)
	h.mux.HandleFunc("POST /doreset", h.handleDoReset)
	h.mux.HandleFunc("GET /qr.png", h.handleQR)
	h.mux.HandleFunc("GET /api/status", h.handleStatusJSON)
	return h
}

func (h *StationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *StationHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, http.StatusOK, "status.html", h.backend.Status())
}

func (h *StationHandler) handleStatusJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.backend.Status())
}

type settingsPage struct {
	Zones     []zoneOption
	Server    string
	Bright    int
	MaxBright int
}

func (h *StationHandler) handleSettings(w http.ResponseWriter, r *http.Request) {
	cfg := h.backend.Config()
	render(w, h.logger, http.StatusOK, "settings.html", settingsPage{
		Zones:     zoneOptions(cfg.TimezoneIndex),
		Server:    cfg.SyncServer,
		Bright:    cfg.Brightness,
		MaxBright: settings.MaxBrightness,
	})
}

func (h *StationHandler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	cfg := h.backend.Config()
	tz := formInt(r, FieldTimezone, cfg.TimezoneIndex)
	server := strings.TrimSpace(r.PostFormValue(FieldSyncServer))
	bright := formInt(r, FieldBrightness, cfg.Brightness)

	if err := h.backend.OnSettingsUpdated(tz, server, bright); err != nil {
		h.logger.Error("update settings failed", "error", err)
		render(w, h.logger, http.StatusInternalServerError, "message.html", message{
			Title: "Update failed", Text: err.Error(), Back: "/settings",
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *StationHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, http.StatusOK, "reset.html", nil)
}

func (h *StationHandler) handleDoReset(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.Reset(); err != nil {
		h.logger.Error("reset failed", "error", err)
		render(w, h.logger, http.StatusInternalServerError, "message.html", message{
			Title: "Reset failed", Text: err.Error(), Back: "/",
		})
		return
	}
	render(w, h.logger, http.StatusOK, "message.html", message{
		Title: "Reset",
		Text:  "Configuration cleared. The clock restarts into setup mode.",
	})
}

func (h *StationHandler) handleQR(w http.ResponseWriter, r *http.Request) {
	url := h.backend.Status().URL
	if url == "" {
		http.NotFound(w, r)
		return
	}
	png, err := discovery.QRPNG(url, discovery.DefaultQRSize)
	if err != nil {
		h.logger.Warn("qr encode failed", "error", err)
		http.Error(w, "qr encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}
