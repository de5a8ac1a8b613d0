package settings

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/netclock/netclock-go/pkg/persistence"
)

// Namespace is the persistence namespace holding the device configuration.
const Namespace = "netclock"

// Keys under which DeviceConfig fields are stored.
const (
	KeySSID       = "ssid"
	KeyPassphrase = "pass"
	KeyTimezone   = "tz"
	KeySyncServer = "ntp"
	KeyBrightness = "bright"
	KeyDeviceID   = "device_id"
)

// Defaults.
const (
	DefaultSyncServer = "pool.ntp.org"
	DefaultBrightness = MaxBrightness
	MinBrightness     = 0
	MaxBrightness     = 7
)

// DeviceConfig is the persisted device configuration.
type DeviceConfig struct {
	SSID          string `yaml:"ssid"`
	Passphrase    string `yaml:"passphrase"`
	TimezoneIndex int    `yaml:"timezone_index"`
	SyncServer    string `yaml:"sync_server"`
	Brightness    int    `yaml:"brightness"`
}

// Defaults returns the configuration used when nothing is stored.
func Defaults() DeviceConfig {
	return DeviceConfig{
		SyncServer: DefaultSyncServer,
		Brightness: DefaultBrightness,
	}
}

// HasCredentials reports whether a network name is configured.
func (c DeviceConfig) HasCredentials() bool {
	return c.SSID != ""
}

// String omits the passphrase.
func (c DeviceConfig) String() string {
	return fmt.Sprintf("ssid=%q tz=%d server=%q brightness=%d", c.SSID, c.TimezoneIndex, c.SyncServer, c.Brightness)
}

// ClampBrightness limits b to [MinBrightness, MaxBrightness].
func ClampBrightness(b int) int {
	switch {
	case b < MinBrightness:
		return MinBrightness
	case b > MaxBrightness:
		return MaxBrightness
	default:
		return b
	}
}

// Normalize clamps brightness, maps a timezone index outside [0, zones) to 0
// and restores the default sync server when empty.
func Normalize(c DeviceConfig, zones int) DeviceConfig {
	c.Brightness = ClampBrightness(c.Brightness)
	if c.TimezoneIndex < 0 || c.TimezoneIndex >= zones {
		c.TimezoneIndex = 0
	}
	if c.SyncServer == "" {
		c.SyncServer = DefaultSyncServer
	}
	return c
}

// Load reads the configuration, defaulting missing values. Out-of-range
// values are normalized against a table of zones entries.
func Load(ns persistence.Namespace, zones int) DeviceConfig {
	def := Defaults()
	c := DeviceConfig{
		SSID:          ns.GetString(KeySSID, def.SSID),
		Passphrase:    ns.GetString(KeyPassphrase, def.Passphrase),
		TimezoneIndex: ns.GetInt(KeyTimezone, def.TimezoneIndex),
		SyncServer:    ns.GetString(KeySyncServer, def.SyncServer),
		Brightness:    ns.GetInt(KeyBrightness, def.Brightness),
	}
	return Normalize(c, zones)
}

// Save writes every field in one commit. Callers normalize first.
func Save(ns persistence.Namespace, c DeviceConfig) error {
	err := ns.PutValues(map[string]any{
		KeySSID:       c.SSID,
		KeyPassphrase: c.Passphrase,
		KeyTimezone:   c.TimezoneIndex,
		KeySyncServer: c.SyncServer,
		KeyBrightness: c.Brightness,
	})
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// SaveClock writes the fields that can change without touching connectivity.
func SaveClock(ns persistence.Namespace, timezoneIndex int, syncServer string, brightness int) error {
	err := ns.PutValues(map[string]any{
		KeyTimezone:   timezoneIndex,
		KeySyncServer: syncServer,
		KeyBrightness: brightness,
	})
	if err != nil {
		return fmt.Errorf("save clock settings: %w", err)
	}
	return nil
}

// Reset clears the configuration but keeps the device identity.
func Reset(ns persistence.Namespace) error {
	id := ns.GetString(KeyDeviceID, "")
	if err := ns.Clear(); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	if id == "" {
		return nil
	}
	return ns.PutString(KeyDeviceID, id)
}

// EnsureDeviceID returns the stored device ID, generating and storing a new
// one on first boot.
func EnsureDeviceID(ns persistence.Namespace) (string, error) {
	if id := ns.GetString(KeyDeviceID, ""); id != "" {
		return id, nil
	}
	id := uuid.New().String()
	if err := ns.PutString(KeyDeviceID, id); err != nil {
		return "", fmt.Errorf("store device id: %w", err)
	}
	return id, nil
}

// ShortID returns the upper-case last four hex digits of a device ID, used
// to tell devices apart in network names.
func ShortID(id string) string {
	u, err := uuid.Parse(id)
	if err != nil {
		if len(id) >= 4 {
			return id[len(id)-4:]
		}
		return id
	}
	return fmt.Sprintf("%02X%02X", u[14], u[15])
}
