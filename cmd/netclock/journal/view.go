// Package journal implements the journal subcommands: view, export and
// stats over a device event journal.
package journal

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/netclock/netclock-go/pkg/eventlog"
)

// TimestampLayout is the timestamp format of view and export output.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Options selects the events a command reads.
type Options struct {
	Category  string
	BootID    string
	TimeStart string
	TimeEnd   string
}

// Filter converts the options to a reader filter.
func (o Options) Filter() (eventlog.Filter, error) {
	filter := eventlog.Filter{BootID: o.BootID}

	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid since format: %w", err)
		}
		filter.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid until format: %w", err)
		}
		filter.TimeEnd = &t
	}
	return filter, nil
}

// ParseCategoryFlag parses a category name (case-insensitive).
func ParseCategoryFlag(s string) (eventlog.Category, error) {
	c, ok := eventlog.ParseCategory(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be state, sync, config, update, or error)", s)
	}
	return c, nil
}

func open(path string, opts Options) (*eventlog.Reader, error) {
	filter, err := opts.Filter()
	if err != nil {
		return nil, err
	}
	reader, err := eventlog.NewFilteredReader(path, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return reader, nil
}

// RunView writes the matching events in human-readable form.
func RunView(path string, opts Options, w io.Writer) error {
	reader, err := open(path, opts)
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes one event: a header line, then details.
func formatEvent(w io.Writer, event eventlog.Event) {
	ts := event.Timestamp.UTC().Format(TimestampLayout)
	fmt.Fprintf(w, "%s [boot:%s] %-6s %s\n", ts, shortenID(event.BootID), event.Category.String(), summary(event))

	switch {
	case event.StateChange != nil:
		if event.StateChange.Reason != "" {
			fmt.Fprintf(w, "  Reason: %s\n", event.StateChange.Reason)
		}
	case event.Sync != nil:
		if event.Sync.Server != "" {
			fmt.Fprintf(w, "  Server: %s\n", event.Sync.Server)
		}
		fmt.Fprintf(w, "  Uptime: %s\n", formatDuration(event.Sync.Uptime))
	case event.Config != nil:
		c := event.Config
		if c.SSID != "" {
			fmt.Fprintf(w, "  SSID: %s\n", c.SSID)
		}
		if c.Action != "reset" {
			fmt.Fprintf(w, "  Zone: %d Server: %s Brightness: %d\n", c.TimezoneIndex, c.SyncServer, c.Brightness)
		}
	case event.Update != nil:
		if event.Update.Error != "" {
			fmt.Fprintf(w, "  Error: %s\n", event.Update.Error)
		}
	}
}

// summary is the one-line description of an event.
func summary(event eventlog.Event) string {
	switch {
	case event.StateChange != nil:
		s := event.StateChange
		return fmt.Sprintf("%s %s -> %s", s.Entity.String(), s.OldState, s.NewState)
	case event.Sync != nil:
		result := "ok"
		if !event.Sync.Success {
			result = "failed"
		}
		return fmt.Sprintf("%s %s", event.Sync.Trigger, result)
	case event.Config != nil:
		return event.Config.Action
	case event.Update != nil:
		u := event.Update
		s := u.Stage
		if u.Target != "" {
			s += " " + u.Target
		}
		if u.Percent > 0 {
			s += fmt.Sprintf(" %d%%", u.Percent)
		}
		return s
	case event.Error != nil:
		return fmt.Sprintf("%s: %s", event.Error.Component, event.Error.Message)
	default:
		return "Unknown"
	}
}

// shortenID returns the first 8 characters of a boot ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	if id == "" {
		return "-"
	}
	return id
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return d.Truncate(time.Millisecond).String()
}
