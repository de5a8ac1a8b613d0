package journal

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/netclock/netclock-go/pkg/eventlog"
)

// Stats holds aggregate statistics about a journal.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[eventlog.Category]int
	Boots            map[string]*BootStats
	SyncOK           int
	SyncFailed       int
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// BootStats holds statistics for a single boot.
type BootStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	DeviceID  string

	// LastMode is the last mode the boot entered.
	LastMode string
}

// Collect reads the matching events into Stats.
func Collect(path string, opts Options) (*Stats, error) {
	reader, err := open(path, opts)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[eventlog.Category]int),
		Boots:            make(map[string]*BootStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		boot, ok := stats.Boots[event.BootID]
		if !ok {
			boot = &BootStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
			stats.Boots[event.BootID] = boot
		}
		boot.Events++
		if event.Timestamp.After(boot.LastSeen) {
			boot.LastSeen = event.Timestamp
		}
		if event.DeviceID != "" && boot.DeviceID == "" {
			boot.DeviceID = event.DeviceID
		}

		switch {
		case event.StateChange != nil && event.StateChange.Entity == eventlog.StateEntityMode:
			boot.LastMode = event.StateChange.NewState
		case event.Sync != nil:
			if event.Sync.Success {
				stats.SyncOK++
			} else {
				stats.SyncFailed++
			}
		case event.Error != nil:
			stats.Errors++
		case event.Update != nil && event.Update.Stage == "error":
			stats.Errors++
		}
	}
	return stats, nil
}

// RunStats prints journal statistics.
func RunStats(path string, opts Options, w io.Writer) error {
	stats, err := Collect(path, opts)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintf(w, "Total events: %d\n", stats.TotalEvents)
	if stats.TotalEvents == 0 {
		return
	}
	fmt.Fprintf(w, "Time range:   %s - %s (%s)\n",
		stats.TimeRange.Start.UTC().Format(TimestampLayout),
		stats.TimeRange.End.UTC().Format(TimestampLayout),
		stats.TimeRange.End.Sub(stats.TimeRange.Start).Truncate(time.Second))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "By category:")
	for c := eventlog.CategoryState; c <= eventlog.CategoryError; c++ {
		if n := stats.EventsByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %-7s %d\n", c.String(), n)
		}
	}
	fmt.Fprintln(w)

	total := stats.SyncOK + stats.SyncFailed
	if total > 0 {
		fmt.Fprintf(w, "Sync attempts: %d (%d ok, %d failed, %.1f%% success)\n",
			total, stats.SyncOK, stats.SyncFailed, 100*float64(stats.SyncOK)/float64(total))
	}
	fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	fmt.Fprintln(w)

	ids := make([]string, 0, len(stats.Boots))
	for id := range stats.Boots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return stats.Boots[ids[i]].FirstSeen.Before(stats.Boots[ids[j]].FirstSeen)
	})

	fmt.Fprintf(w, "Boots: %d\n", len(ids))
	for _, id := range ids {
		b := stats.Boots[id]
		mode := b.LastMode
		if mode == "" {
			mode = "-"
		}
		fmt.Fprintf(w, "  %s  %s  events=%d mode=%s\n",
			shortenID(id), b.FirstSeen.UTC().Format(TimestampLayout), b.Events, mode)
	}
}
