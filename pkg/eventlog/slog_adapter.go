package eventlog

import (
	"context"
	"log/slog"
)

// SlogAdapter writes journal events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates an adapter for logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("boot_id", event.BootID),
		slog.String("category", event.Category.String()),
	}
	if event.DeviceID != "" {
		attrs = append(attrs, slog.String("device_id", event.DeviceID))
	}

	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Sync != nil:
		attrs = append(attrs,
			slog.String("trigger", event.Sync.Trigger),
			slog.Bool("success", event.Sync.Success),
			slog.Duration("uptime", event.Sync.Uptime),
		)
		if event.Sync.Server != "" {
			attrs = append(attrs, slog.String("server", event.Sync.Server))
		}
	case event.Config != nil:
		attrs = append(attrs,
			slog.String("action", event.Config.Action),
			slog.Int("tz", event.Config.TimezoneIndex),
			slog.Int("brightness", event.Config.Brightness),
		)
	case event.Update != nil:
		attrs = append(attrs, slog.String("stage", event.Update.Stage))
		if event.Update.Target != "" {
			attrs = append(attrs, slog.String("target", event.Update.Target))
		}
		if event.Update.Percent > 0 {
			attrs = append(attrs, slog.Int("percent", event.Update.Percent))
		}
		if event.Update.Error != "" {
			attrs = append(attrs, slog.String("error", event.Update.Error))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("component", event.Error.Component),
			slog.String("error", event.Error.Message),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "journal", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
