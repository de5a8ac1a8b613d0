package portal

import (
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/netclock/netclock-go/pkg/settings"
	"github.com/netclock/netclock-go/pkg/timezone"
	"github.com/netclock/netclock-go/pkg/wifi"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"signal": signalBars,
}).ParseFS(templateFiles, "templates/*.html"))

// Form field names.
const (
	FieldSSID       = "ssid"
	FieldPassphrase = "pass"
	FieldTimezone   = "tz"
	FieldSyncServer = "ntp"
	FieldBrightness = "bright"
)

// Status is what the status page shows.
type Status struct {
	DeviceID string `json:"device_id"`
	ShortID  string `json:"short_id"`
	Version  string `json:"version"`
	Mode     string `json:"mode"`
	Link     string `json:"link"`
	SSID     string `json:"ssid"`
	IP       string `json:"ip"`
	URL      string `json:"url"`

	Time     string `json:"time"`
	Zone     string `json:"zone"`
	Abbrev   string `json:"abbrev"`
	Server   string `json:"server"`
	Synced   bool   `json:"synced"`
	Attempts int    `json:"attempts"`
	Failures int    `json:"failures"`

	// LastSuccess is the uptime of the last good sync; zero means never.
	LastSuccess time.Duration `json:"last_success_ns"`
	Uptime      time.Duration `json:"uptime_ns"`

	Brightness int `json:"brightness"`
}

// APBackend is what the configuration portal needs from the controller.
type APBackend interface {
	// Networks lists nearby networks.
	Networks() ([]wifi.Network, error)

	// StageCredentials remembers the selected network for the save step.
	StageCredentials(ssid, passphrase string)

	// Pending returns the configuration the save form starts from.
	Pending() settings.DeviceConfig

	// OnConfigurationSaved persists cfg and schedules a restart.
	OnConfigurationSaved(cfg settings.DeviceConfig) error
}

// StationBackend is what the station pages need from the controller.
type StationBackend interface {
	Status() Status
	Config() settings.DeviceConfig

	// OnSettingsUpdated applies the settings live without restarting.
	OnSettingsUpdated(timezoneIndex int, syncServer string, brightness int) error

	// Reset clears the stored configuration and schedules a restart.
	Reset() error
}

type zoneOption struct {
	Index    int
	Name     string
	Selected bool
}

func zoneOptions(selected int) []zoneOption {
	rules := timezone.All()
	opts := make([]zoneOption, len(rules))
	for i, r := range rules {
		opts[i] = zoneOption{Index: i, Name: r.Name, Selected: i == selected}
	}
	return opts
}

func signalBars(pct int) string {
	switch {
	case pct >= 75:
		return "▂▄▆█"
	case pct >= 50:
		return "▂▄▆"
	case pct >= 25:
		return "▂▄"
	default:
		return "▂"
	}
}

// formInt reads an integer field, returning def when it is missing or not
// a number. Range checks are left to settings.Normalize.
func formInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue(key)))
	if err != nil {
		return def
	}
	return v
}

func render(w http.ResponseWriter, logger *slog.Logger, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		logger.Warn("render page failed", "page", name, "error", err)
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func discard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
