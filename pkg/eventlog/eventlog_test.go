package eventlog

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
)

func writeJournal(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.cbor")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func readAll(t *testing.T, path string, filter Filter) []Event {
	t.Helper()
	r, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer r.Close()

	var out []Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		out = append(out, e)
	}
}

func TestEncodeDecodeSyncEvent(t *testing.T) {
	ts := time.Date(2026, 3, 8, 7, 0, 0, 123, time.UTC)
	event := Event{
		Timestamp: ts,
		BootID:    "boot-1",
		Category:  CategorySync,
		Sync:      &SyncEvent{Trigger: "RETRY", Success: false, Uptime: 90 * time.Second},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !got.Timestamp.Equal(ts) {
		t.Errorf("timestamp: got %v, want %v", got.Timestamp, ts)
	}
	if got.Sync == nil || got.Sync.Trigger != "RETRY" || got.Sync.Uptime != 90*time.Second {
		t.Errorf("sync payload: got %+v", got.Sync)
	}
	if got.StateChange != nil || got.Config != nil {
		t.Error("unexpected payloads decoded")
	}
}

func TestReaderFiltersByCategoryAndBoot(t *testing.T) {
	now := time.Now()
	path := writeJournal(t, []Event{
		{Timestamp: now, BootID: "a", Category: CategoryState, StateChange: &StateChangeEvent{NewState: "AP"}},
		{Timestamp: now, BootID: "a", Category: CategorySync, Sync: &SyncEvent{Trigger: "START"}},
		{Timestamp: now, BootID: "b", Category: CategorySync, Sync: &SyncEvent{Trigger: "PRIMARY"}},
	})

	if got := readAll(t, path, Filter{}); len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}

	sync := CategorySync
	got := readAll(t, path, Filter{Category: &sync})
	if len(got) != 2 {
		t.Fatalf("expected 2 sync events, got %d", len(got))
	}

	got = readAll(t, path, Filter{Category: &sync, BootID: "b"})
	if len(got) != 1 || got[0].Sync.Trigger != "PRIMARY" {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestReaderTimeWindow(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	path := writeJournal(t, []Event{
		{Timestamp: base, Category: CategoryConfig, Config: &ConfigEvent{Action: "save"}},
		{Timestamp: base.Add(time.Hour), Category: CategoryConfig, Config: &ConfigEvent{Action: "settings"}},
		{Timestamp: base.Add(2 * time.Hour), Category: CategoryConfig, Config: &ConfigEvent{Action: "reset"}},
	})

	start, end := base.Add(time.Hour), base.Add(2*time.Hour)
	got := readAll(t, path, Filter{TimeStart: &start, TimeEnd: &end})
	if len(got) != 1 || got[0].Config.Action != "settings" {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestReaderToleratesTruncatedTail(t *testing.T) {
	path := writeJournal(t, []Event{
		{Timestamp: time.Now(), Category: CategoryState, StateChange: &StateChangeEvent{NewState: "STATION"}},
	})
	data, err := EncodeEvent(Event{Timestamp: time.Now(), Category: CategoryError, Error: &ErrorEventData{Component: "x", Message: "y"}})
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	f.Write(data[:len(data)/2])
	f.Close()

	if got := readAll(t, path, Filter{}); len(got) != 1 {
		t.Fatalf("expected 1 complete event, got %d", len(got))
	}
}

func TestDecodeEventRejectsMalformedRecords(t *testing.T) {
	// {4: 0, 4: 1}
	_, err := DecodeEvent([]byte{0xa2, 0x04, 0x00, 0x04, 0x01})
	var dup *cbor.DupMapKeyError
	if !errors.As(err, &dup) {
		t.Errorf("duplicate key: got %v", err)
	}

	// {99: [[[[[0]]]]]}
	_, err = DecodeEvent([]byte{0xa1, 0x18, 0x63, 0x81, 0x81, 0x81, 0x81, 0x81, 0x00})
	var deep *cbor.MaxNestedLevelError
	if !errors.As(err, &deep) {
		t.Errorf("nesting: got %v", err)
	}
}

func TestReaderSkipsUndecodableRecord(t *testing.T) {
	path := writeJournal(t, []Event{
		{Timestamp: time.Now(), Category: CategoryState, StateChange: &StateChangeEvent{NewState: "AP"}},
	})
	last, err := EncodeEvent(Event{Timestamp: time.Now(), Category: CategorySync, Sync: &SyncEvent{Trigger: "START"}})
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	f.Write([]byte{0xa2, 0x04, 0x00, 0x04, 0x01})
	f.Write(last)
	f.Close()

	r, err := NewReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	var got []Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		got = append(got, e)
	}
	if len(got) != 2 || got[1].Sync == nil || got[1].Sync.Trigger != "START" {
		t.Fatalf("unexpected events: %+v", got)
	}
	if r.Skipped() != 1 {
		t.Errorf("skipped: got %d, want 1", r.Skipped())
	}
}

func TestFileLoggerRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.cbor")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	logger.MaxSize = 64

	for i := 0; i < 10; i++ {
		logger.Log(Event{Timestamp: time.Now(), BootID: "boot", Category: CategoryState,
			StateChange: &StateChangeEvent{OldState: "STATION", NewState: "AP"}})
	}
	logger.Close()

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("rotated file missing: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 || info.Size() > 64+256 {
		t.Errorf("unexpected current journal size %d", info.Size())
	}
}

func TestFileLoggerIgnoresLogAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.cbor")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	logger.Close()
	logger.Log(Event{Category: CategoryState})

	if err := logger.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}
	if info, _ := os.Stat(path); info.Size() != 0 {
		t.Errorf("expected empty journal, got %d bytes", info.Size())
	}
}

type captureLogger struct{ events []Event }

func (c *captureLogger) Log(e Event) { c.events = append(c.events, e) }

func TestRecorderStampsIdentity(t *testing.T) {
	capture := &captureLogger{}
	rec := NewRecorder(NewMultiLogger(capture, nil, NoopLogger{}), "boot-7", "")
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	rec.SetClock(func() time.Time { return ts })
	rec.SetDeviceID("dev-1")

	rec.State(StateEntityMode, "BOOT", "STATION", "")
	rec.Sync("PRIMARY", "pool.ntp.org", true, time.Minute)
	rec.Config(ConfigEvent{Action: "settings", TimezoneIndex: 2, Brightness: 5})
	rec.Update(UpdateEvent{Stage: "error", Error: "Auth Failed"})
	rec.Error("display", errors.New("bus"))
	rec.Error("display", nil)

	if len(capture.events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(capture.events))
	}
	for _, e := range capture.events {
		if e.BootID != "boot-7" || e.DeviceID != "dev-1" || !e.Timestamp.Equal(ts) {
			t.Errorf("event not stamped: %+v", e)
		}
	}
	wantCats := []Category{CategoryState, CategorySync, CategoryConfig, CategoryUpdate, CategoryError}
	for i, c := range wantCats {
		if capture.events[i].Category != c {
			t.Errorf("event %d: category %s, want %s", i, capture.events[i].Category, c)
		}
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := NewSlogAdapter(logger)

	a.Log(Event{BootID: "b", Category: CategoryUpdate, Update: &UpdateEvent{Stage: "progress", Percent: 40}})

	out := buf.String()
	for _, want := range []string{"msg=journal", "category=UPDATE", "stage=progress", "percent=40"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	for c := CategoryState; c <= CategoryError; c++ {
		got, ok := ParseCategory(c.String())
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseCategory("BOGUS"); ok {
		t.Error("ParseCategory accepted BOGUS")
	}
}
