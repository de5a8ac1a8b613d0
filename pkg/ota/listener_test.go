package ota

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recorded struct {
	starts   []Target
	progress []int
	ends     []string
	errs     []*Error
}

func newTestListener(t *testing.T) (*Listener, *recorded) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.PasswordHash = hash
	cfg.StageDir = t.TempDir()
	cfg.MaxSize = 1 << 20
	l, err := New(cfg)
	require.NoError(t, err)

	rec := &recorded{}
	l.SetHandlers(Handlers{
		OnStart:    func(tg Target) { rec.starts = append(rec.starts, tg) },
		OnProgress: func(p int) { rec.progress = append(rec.progress, p) },
		OnEnd:      func(_ Target, path string) { rec.ends = append(rec.ends, path) },
		OnError:    func(e *Error) { rec.errs = append(rec.errs, e) },
	})
	return l, rec
}

func upload(l *Listener, password, query string, body io.Reader, size int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/update"+query, body)
	req.ContentLength = size
	if password != "" {
		req.SetBasicAuth("admin", password)
	}
	w := httptest.NewRecorder()
	l.Handler().ServeHTTP(w, req)
	return w
}

func TestUploadStagesImage(t *testing.T) {
	l, rec := newTestListener(t)
	image := bytes.Repeat([]byte{0xA5}, 100<<10)

	w := upload(l, "admin", "", bytes.NewReader(image), int64(len(image)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Nothing is delivered until the loop drains the queue.
	assert.Empty(t, rec.starts)
	assert.Positive(t, l.Handle())

	assert.Equal(t, []Target{TargetFirmware}, rec.starts)
	require.Len(t, rec.ends, 1)
	assert.Empty(t, rec.errs)
	assert.Equal(t, 100, rec.progress[len(rec.progress)-1])

	staged, err := os.ReadFile(rec.ends[0])
	require.NoError(t, err)
	assert.Equal(t, image, staged)
	assert.Equal(t, "firmware.bin", filepath.Base(rec.ends[0]))
	assert.Equal(t, 0, l.Handle())
}

func TestUploadFilesystemTarget(t *testing.T) {
	l, rec := newTestListener(t)

	w := upload(l, "admin", "?target=fs", bytes.NewReader([]byte("fs")), 2)
	require.Equal(t, http.StatusOK, w.Code)
	l.Handle()

	assert.Equal(t, []Target{TargetFilesystem}, rec.starts)
	assert.Equal(t, "filesystem.bin", filepath.Base(rec.ends[0]))
}

func TestUploadFailures(t *testing.T) {
	tests := []struct {
		name     string
		password string
		query    string
		body     io.Reader
		size     int64
		status   int
		kind     ErrorKind
		cause    error
	}{
		{"NoAuth", "", "", bytes.NewReader([]byte("x")), 1, http.StatusUnauthorized, ErrAuth, ErrBadPassword},
		{"WrongPassword", "guess", "", bytes.NewReader([]byte("x")), 1, http.StatusUnauthorized, ErrAuth, ErrBadPassword},
		{"UnknownTarget", "admin", "?target=eeprom", bytes.NewReader([]byte("x")), 1, http.StatusBadRequest, ErrBegin, ErrUnknownTarget},
		{"NoLength", "admin", "", bytes.NewReader(nil), 0, http.StatusLengthRequired, ErrBegin, ErrSizeRequired},
		{"TooLarge", "admin", "", bytes.NewReader([]byte("x")), 2 << 20, http.StatusRequestEntityTooLarge, ErrBegin, ErrTooLarge},
		{"DroppedBeforeData", "admin", "", failingReader{}, 10, http.StatusBadRequest, ErrConnect, errBroken},
		{"ShortBody", "admin", "", bytes.NewReader([]byte("abc")), 10, http.StatusBadRequest, ErrReceive, ErrShortBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, rec := newTestListener(t)

			w := upload(l, tt.password, tt.query, tt.body, tt.size)
			assert.Equal(t, tt.status, w.Code)

			l.Handle()
			require.Len(t, rec.errs, 1)
			assert.Equal(t, tt.kind, rec.errs[0].Kind)
			assert.ErrorIs(t, rec.errs[0], tt.cause)
			assert.Empty(t, rec.ends)

			entries, err := os.ReadDir(l.config.StageDir)
			require.NoError(t, err)
			assert.Empty(t, entries, "failed upload left files behind")
		})
	}
}

func TestChecksumVerified(t *testing.T) {
	l, rec := newTestListener(t)
	image := []byte("firmware image")
	sum := sha256.Sum256(image)

	req := httptest.NewRequest(http.MethodPost, "/update", bytes.NewReader(image))
	req.SetBasicAuth("admin", "admin")
	req.Header.Set(ChecksumHeader, hex.EncodeToString(sum[:]))
	w := httptest.NewRecorder()
	l.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/update", bytes.NewReader(image))
	req.SetBasicAuth("admin", "admin")
	req.Header.Set(ChecksumHeader, "00")
	w = httptest.NewRecorder()
	l.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	l.Handle()
	require.Len(t, rec.errs, 1)
	assert.Equal(t, ErrEnd, rec.errs[0].Kind)
	assert.Equal(t, "End Failed", rec.errs[0].Kind.String())
	assert.Len(t, rec.ends, 1)
}

func TestBusyRejectsSecondUpload(t *testing.T) {
	l, rec := newTestListener(t)
	l.busy.Store(true)

	w := upload(l, "admin", "", bytes.NewReader([]byte("x")), 1)
	assert.Equal(t, http.StatusConflict, w.Code)

	l.Handle()
	require.Len(t, rec.errs, 1)
	assert.ErrorIs(t, rec.errs[0], ErrBusy)
	assert.True(t, l.Busy())
}

func TestProgressNeverCrowdsOutEnd(t *testing.T) {
	l, rec := newTestListener(t)
	image := bytes.Repeat([]byte{1}, 1<<20)

	w := upload(l, "admin", "", kibChunks(image), int64(len(image)))
	require.Equal(t, http.StatusOK, w.Code)

	l.Handle()
	assert.Len(t, rec.ends, 1)
	assert.Positive(t, l.Dropped())
}

func TestErrorKindNames(t *testing.T) {
	names := map[ErrorKind]string{
		ErrAuth:    "Auth Failed",
		ErrBegin:   "Begin Failed",
		ErrConnect: "Connect Failed",
		ErrReceive: "Receive Failed",
		ErrEnd:     "End Failed",
	}
	for k, want := range names {
		assert.Equal(t, want, k.String())
	}

	err := fmt.Errorf("wrapped: %w", &Error{Kind: ErrReceive, Err: io.ErrUnexpectedEOF})
	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, ErrReceive, kind)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestStartStop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	cfg.StageDir = t.TempDir()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg.PasswordHash = hash

	l, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, l.Start())
	defer l.Stop()

	req, err := http.NewRequest(http.MethodPost, "http://"+l.Addr()+"/update", bytes.NewReader([]byte("img")))
	require.NoError(t, err)
	req.SetBasicAuth("admin", "pw")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, l.Stop())
	assert.Empty(t, l.Addr())
}

func TestStopFromEndHandlerDeliversResponse(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	cfg.StageDir = t.TempDir()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg.PasswordHash = hash

	l, err := New(cfg)
	require.NoError(t, err)
	stopped := make(chan error, 1)
	l.SetHandlers(Handlers{
		OnEnd: func(Target, string) { stopped <- l.Stop() },
	})
	require.NoError(t, l.Start())
	defer l.Stop()

	type result struct {
		status int
		body   string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		req, err := http.NewRequest(http.MethodPost, "http://"+l.Addr()+"/update", bytes.NewReader(bytes.Repeat([]byte{0xA5}, 256<<10)))
		if err != nil {
			done <- result{err: err}
			return
		}
		req.SetBasicAuth("admin", "pw")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			done <- result{err: err}
			return
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		done <- result{status: resp.StatusCode, body: string(b), err: err}
	}()

	// Drain events the way the controller loop does until the end handler
	// has stopped the listener.
	deadline := time.After(5 * time.Second)
	for len(stopped) == 0 {
		select {
		case <-deadline:
			t.Fatal("end event never delivered")
		case <-time.After(time.Millisecond):
			l.Handle()
		}
	}
	require.NoError(t, <-stopped)

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "OK\n", res.body)
	assert.Empty(t, l.Addr())
}

var errBroken = errors.New("connection reset")

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errBroken }

// kibChunks returns a reader yielding at most 1 KiB per Read.
func kibChunks(b []byte) io.Reader {
	return &chunked{data: b, n: 1 << 10}
}

type chunked struct {
	data []byte
	n    int
}

func (c *chunked) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	n := c.n
	if n > len(p) {
		n = len(p)
	}
	if n > len(c.data) {
		n = len(c.data)
	}
	copy(p, c.data[:n])
	c.data = c.data[n:]
	return n, nil
}
