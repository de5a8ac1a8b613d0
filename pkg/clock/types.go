package clock

import (
	"errors"
	"time"

	"github.com/netclock/netclock-go/pkg/timesync"
	"github.com/netclock/netclock-go/pkg/wifi"
)

// Controller errors.
var (
	// ErrRestart is returned by Run when the controller must be rebuilt.
	ErrRestart = errors.New("restart requested")

	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingDep    = errors.New("missing dependency")
	ErrNotStation    = errors.New("not in station mode")
	ErrAlreadyBooted = errors.New("already booted")
)

// Mode is the operating mode chosen at boot.
type Mode uint8

const (
	// ModeBooting - Boot has not completed.
	ModeBooting Mode = iota

	// ModeStation - joined a network, keeping time.
	ModeStation

	// ModeAP - hosting the configuration portal.
	ModeAP

	// ModeStopped - torn down, waiting to be rebuilt.
	ModeStopped
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeBooting:
		return "BOOTING"
	case ModeStation:
		return "STATION"
	case ModeAP:
		return "AP"
	case ModeStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// EventType identifies controller events.
type EventType uint8

const (
	// EventModeChanged - the controller entered a new mode.
	EventModeChanged EventType = iota

	// EventLinkChanged - the connectivity state changed.
	EventLinkChanged

	// EventSyncAttempt - a time sync attempt completed.
	EventSyncAttempt

	// EventSettingsApplied - clock settings were applied live.
	EventSettingsApplied

	// EventRestartRequested - a restart was requested.
	EventRestartRequested

	// EventUpdate - the update listener reported progress or a failure.
	EventUpdate
)

// String returns the event type name.
func (e EventType) String() string {
	switch e {
	case EventModeChanged:
		return "MODE_CHANGED"
	case EventLinkChanged:
		return "LINK_CHANGED"
	case EventSyncAttempt:
		return "SYNC_ATTEMPT"
	case EventSettingsApplied:
		return "SETTINGS_APPLIED"
	case EventRestartRequested:
		return "RESTART_REQUESTED"
	case EventUpdate:
		return "UPDATE"
	default:
		return "UNKNOWN"
	}
}

// Event is a notification from the controller.
type Event struct {
	Type EventType

	// Mode is set for EventModeChanged.
	Mode Mode

	// URL is the address of the served pages for EventModeChanged.
	URL string

	// SSID is the joined network, or the access point in AP mode.
	SSID string

	// Link is the new state for EventLinkChanged.
	Link wifi.State

	// Sync is set for EventSyncAttempt.
	Sync timesync.Attempt

	// Reason explains a restart request.
	Reason string

	// Percent is the transfer progress for EventUpdate.
	Percent int

	// Error is set if the event reports a failure.
	Error error

	// Uptime is the controller clock when the event was raised.
	Uptime time.Duration
}

// EventHandler handles controller events. Handlers run synchronously and
// must not call back into the controller.
type EventHandler func(Event)
