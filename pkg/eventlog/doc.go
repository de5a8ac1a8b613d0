// Package eventlog records device events to a journal.
//
// The journal is separate from operational logging (slog): it is a compact
// machine-readable trace of what the clock did across boots, such as mode
// and link transitions, sync attempts, configuration writes and firmware
// updates.
//
// # Basic Usage
//
//	// Development: journal to the console via slog
//	cfg.Journal = eventlog.NewSlogAdapter(slog.Default())
//
//	// Device: append to a CBOR file
//	cfg.Journal, _ = eventlog.NewFileLogger("/var/lib/netclock/journal.cbor")
//
//	// Both
//	cfg.Journal = eventlog.NewMultiLogger(adapter, fileLogger)
//
// # File Format
//
// Journal files are a stream of CBOR-encoded Event values with integer map
// keys. `netclock journal` reads and filters them.
package eventlog
