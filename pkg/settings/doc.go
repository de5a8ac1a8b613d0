// Package settings is the typed view of the clock's persisted configuration.
//
// A DeviceConfig holds the network credentials, the timezone index, the sync
// server and the display brightness. Load reads it from a persistence
// Namespace, filling in Defaults for keys that were never written and
// normalizing out-of-range values. Save writes every field in one commit;
// SaveClock writes only the fields that can change without a reconnect.
//
// The device identifier is created once by EnsureDeviceID and survives Reset.
//
//	ns, _ := persistence.OpenFileStore(dir, settings.Namespace)
//	cfg := settings.Load(ns, timezone.Len())
//	cfg.Brightness = settings.ClampBrightness(3)
//	err := settings.Save(ns, cfg)
package settings
