package portal

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/netclock/netclock-go/pkg/settings"
	"github.com/netclock/netclock-go/pkg/timezone"
	"github.com/netclock/netclock-go/pkg/wifi"
)

// APConfig configures the configuration portal.
type APConfig struct {
	// Root is where unknown paths redirect, e.g. "http://192.168.4.1/".
	// Empty means "/".
	Root string

	// DeviceName is shown in the page title.
	DeviceName string

	Logger *slog.Logger
}

// APHandler is the configuration portal.
type APHandler struct {
	backend APBackend
	config  APConfig
	logger  *slog.Logger
	mux     *http.ServeMux
}

// NewAPHandler creates the portal handler.
func NewAPHandler(backend APBackend, config APConfig) *APHandler {
	if config.Root == "" {
		config.Root = "/"
	}
	h := &APHandler{
		backend: backend,
		config:  config,
		logger:  discard(config.Logger),
		mux:     http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /{$}", h.handleRoot)
	h.mux.HandleFunc("POST /connect", h.handleConnect)
	h.mux.HandleFunc("POST /save", h.handleSave)
	h.mux.HandleFunc("/", h.handleRedirect)
	return h
}

func (h *APHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type apPage struct {
	Title     string
	Networks  []wifi.Network
	ScanErr   string
	SSID      string
	Zones     []zoneOption
	Server    string
	Bright    int
	MaxBright int
}

func (h *APHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	page := apPage{Title: h.config.DeviceName}
	nets, err := h.backend.Networks()
	if err != nil {
		h.logger.Warn("scan failed", "error", err)
		page.ScanErr = "Scan failed, enter the network name manually."
	}
	page.Networks = nets
	page.SSID = h.backend.Pending().SSID
	render(w, h.logger, http.StatusOK, "ap_root.html", page)
}

func (h *APHandler) handleConnect(w http.ResponseWriter, r *http.Request) {
	ssid := strings.TrimSpace(r.PostFormValue(FieldSSID))
	if ssid == "" {
		http.Redirect(w, r, h.config.Root, http.StatusSeeOther)
		return
	}
	h.backend.StageCredentials(ssid, r.PostFormValue(FieldPassphrase))

	cfg := h.backend.Pending()
	render(w, h.logger, http.StatusOK, "ap_configure.html", apPage{
		Title:     h.config.DeviceName,
		SSID:      cfg.SSID,
		Zones:     zoneOptions(cfg.TimezoneIndex),
		Server:    cfg.SyncServer,
		Bright:    cfg.Brightness,
		MaxBright: settings.MaxBrightness,
	})
}

func (h *APHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	cfg := h.backend.Pending()
	if ssid := strings.TrimSpace(r.PostFormValue(FieldSSID)); ssid != "" {
		cfg.SSID = ssid
		if r.PostForm.Has(FieldPassphrase) {
			cfg.Passphrase = r.PostFormValue(FieldPassphrase)
		}
	}
	cfg.TimezoneIndex = formInt(r, FieldTimezone, timezone.Normalize(cfg.TimezoneIndex))
	if server := strings.TrimSpace(r.PostFormValue(FieldSyncServer)); server != "" {
		cfg.SyncServer = server
	}
	cfg.Brightness = formInt(r, FieldBrightness, cfg.Brightness)

	if err := h.backend.OnConfigurationSaved(cfg); err != nil {
		h.logger.Error("save configuration failed", "error", err)
		render(w, h.logger, http.StatusInternalServerError, "message.html", message{
			Title: "Save failed", Text: err.Error(), Back: h.config.Root,
		})
		return
	}
	render(w, h.logger, http.StatusOK, "message.html", message{
		Title: "Saved",
		Text:  "Configuration saved. The clock restarts and joins " + cfg.SSID + ".",
	})
}

func (h *APHandler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.config.Root, http.StatusFound)
}

type message struct {
	Title string
	Text  string
	Back  string
}
