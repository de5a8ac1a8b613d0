package ota

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Defaults.
const (
	DefaultAddr     = ":8266"
	DefaultPassword = "admin"
	DefaultMaxSize  = 16 << 20

	// ChecksumHeader optionally carries the hex SHA-256 of the image.
	ChecksumHeader = "X-Checksum-Sha256"

	// StopTimeout bounds how long Stop waits for responses in flight.
	StopTimeout = 2 * time.Second

	eventQueue    = 64
	reservedSlots = 4
)

// Target is what an image replaces.
type Target uint8

const (
	TargetFirmware Target = iota
	TargetFilesystem
)

// String returns the target name.
func (t Target) String() string {
	switch t {
	case TargetFirmware:
		return "sketch"
	case TargetFilesystem:
		return "filesystem"
	default:
		return "unknown"
	}
}

// ParseTarget maps a query value to a Target. Empty means firmware.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(s) {
	case "", "firmware", "sketch", "flash":
		return TargetFirmware, nil
	case "filesystem", "fs", "spiffs":
		return TargetFilesystem, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTarget, s)
	}
}

// FileName is the staged image name for the target.
func (t Target) FileName() string {
	if t == TargetFilesystem {
		return "filesystem.bin"
	}
	return "firmware.bin"
}

// Handlers are the lifecycle callbacks. Any may be nil.
type Handlers struct {
	OnStart    func(target Target)
	OnProgress func(percent int)
	OnEnd      func(target Target, path string)
	OnError    func(err *Error)
}

// Config configures a Listener.
type Config struct {
	// Addr is the listen address.
	Addr string

	// PasswordHash is a bcrypt hash. When empty, Password is hashed.
	PasswordHash []byte
	Password     string

	// StageDir receives the images.
	StageDir string

	// MaxSize bounds the accepted image size.
	MaxSize int64

	Logger *slog.Logger
}

// DefaultConfig returns the listener defaults.
func DefaultConfig() Config {
	return Config{
		Addr:     DefaultAddr,
		Password: DefaultPassword,
		MaxSize:  DefaultMaxSize,
	}
}

type eventKind uint8

const (
	evStart eventKind = iota
	evProgress
	evEnd
	evError
)

type event struct {
	kind    eventKind
	target  Target
	percent int
	path    string
	err     *Error
}

// Listener is the firmware update endpoint.
type Listener struct {
	config Config
	hash   []byte
	logger *slog.Logger

	events  chan event
	dropped atomic.Int64
	busy    atomic.Bool

	mu       sync.Mutex
	handlers Handlers
	server   *http.Server
	ln       net.Listener
}

// New creates a listener. It does not start serving.
func New(config Config) (*Listener, error) {
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	if config.MaxSize <= 0 {
		config.MaxSize = DefaultMaxSize
	}
	if config.StageDir == "" {
		return nil, errors.New("ota: stage directory required")
	}
	if err := os.MkdirAll(config.StageDir, 0o755); err != nil {
		return nil, fmt.Errorf("ota: create stage directory: %w", err)
	}

	hash := config.PasswordHash
	if len(hash) == 0 {
		pw := config.Password
		if pw == "" {
			pw = DefaultPassword
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("ota: hash password: %w", err)
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Listener{
		config: config,
		hash:   hash,
		logger: logger,
		events: make(chan event, eventQueue),
	}, nil
}

// SetHandlers replaces the lifecycle callbacks.
func (l *Listener) SetHandlers(h Handlers) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers = h
}

// Handler returns the HTTP handler serving /update.
func (l *Listener) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /update", l.serveUpdate)
	return mux
}

// Start listens on the configured address and serves in the background.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.server != nil {
		return nil
	}
	ln, err := net.Listen("tcp", l.config.Addr)
	if err != nil {
		return fmt.Errorf("ota: listen %s: %w", l.config.Addr, err)
	}
	srv := &http.Server{
		Handler:           l.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	l.server, l.ln = srv, ln

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.logger.Warn("update listener stopped", "error", err)
		}
	}()
	l.logger.Info("update listener up", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or "" when not started.
func (l *Listener) Addr() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln == nil {
		return ""
	}
	return l.ln.Addr().String()
}

// Stop closes the listener and waits up to StopTimeout for requests in
// flight to finish before dropping them.
func (l *Listener) Stop() error {
	l.mu.Lock()
	srv := l.server
	l.server, l.ln = nil, nil
	l.mu.Unlock()

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), StopTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.logger.Warn("update listener shutdown timed out", "error", err)
		return srv.Close()
	}
	return nil
}

// Dropped returns how many events did not fit in the queue.
func (l *Listener) Dropped() int64 {
	return l.dropped.Load()
}

// Busy reports whether a transfer is in progress.
func (l *Listener) Busy() bool {
	return l.busy.Load()
}

// Handle delivers queued lifecycle events to the handlers and returns how
// many were delivered. It never blocks.
func (l *Listener) Handle() int {
	l.mu.Lock()
	h := l.handlers
	l.mu.Unlock()

	n := 0
	for {
		select {
		case ev := <-l.events:
			n++
			switch ev.kind {
			case evStart:
				if h.OnStart != nil {
					h.OnStart(ev.target)
				}
			case evProgress:
				if h.OnProgress != nil {
					h.OnProgress(ev.percent)
				}
			case evEnd:
				if h.OnEnd != nil {
					h.OnEnd(ev.target, ev.path)
				}
			case evError:
				if h.OnError != nil {
					h.OnError(ev.err)
				}
			}
		default:
			return n
		}
	}
}

// emit queues ev without blocking. Progress stops queueing a few slots
// early so that the end or error event of a transfer still fits.
func (l *Listener) emit(ev event) {
	if ev.kind == evProgress && len(l.events) >= eventQueue-reservedSlots {
		l.dropped.Add(1)
		return
	}
	select {
	case l.events <- ev:
	default:
		l.dropped.Add(1)
	}
}

func (l *Listener) fail(w http.ResponseWriter, status int, kind ErrorKind, cause error) {
	e := &Error{Kind: kind, Err: cause}
	l.logger.Warn("update failed", "kind", kind.String(), "error", cause)
	l.emit(event{kind: evError, err: e})
	http.Error(w, e.Error(), status)
}

func (l *Listener) serveUpdate(w http.ResponseWriter, r *http.Request) {
	_, pw, ok := r.BasicAuth()
	if !ok || bcrypt.CompareHashAndPassword(l.hash, []byte(pw)) != nil {
		w.Header().Set("WWW-Authenticate", `Basic realm="netclock update"`)
		l.fail(w, http.StatusUnauthorized, ErrAuth, ErrBadPassword)
		return
	}

	target, err := ParseTarget(r.URL.Query().Get("target"))
	if err != nil {
		l.fail(w, http.StatusBadRequest, ErrBegin, err)
		return
	}

	if !l.busy.CompareAndSwap(false, true) {
		l.fail(w, http.StatusConflict, ErrBegin, ErrBusy)
		return
	}
	defer l.busy.Store(false)

	size := r.ContentLength
	switch {
	case size <= 0:
		l.fail(w, http.StatusLengthRequired, ErrBegin, ErrSizeRequired)
		return
	case size > l.config.MaxSize:
		l.fail(w, http.StatusRequestEntityTooLarge, ErrBegin, fmt.Errorf("%w: %d > %d", ErrTooLarge, size, l.config.MaxSize))
		return
	}

	final := filepath.Join(l.config.StageDir, target.FileName())
	part, err := os.CreateTemp(l.config.StageDir, target.FileName()+".*.part")
	if err != nil {
		l.fail(w, http.StatusInsufficientStorage, ErrBegin, err)
		return
	}
	committed := false
	defer func() {
		if !committed {
			part.Close()
			os.Remove(part.Name())
		}
	}()

	l.logger.Info("update started", "target", target.String(), "size", size)
	l.emit(event{kind: evStart, target: target})

	sum := sha256.New()
	received, err := l.copy(io.MultiWriter(part, sum), r.Body, size)
	if err != nil {
		kind := ErrReceive
		if received == 0 {
			kind = ErrConnect
		}
		l.fail(w, http.StatusBadRequest, kind, err)
		return
	}

	if want := r.Header.Get(ChecksumHeader); want != "" {
		got := hex.EncodeToString(sum.Sum(nil))
		if !strings.EqualFold(want, got) {
			l.fail(w, http.StatusUnprocessableEntity, ErrEnd, fmt.Errorf("%w: got %s", ErrChecksumMismatch, got))
			return
		}
	}

	if err := part.Sync(); err != nil {
		l.fail(w, http.StatusInternalServerError, ErrEnd, err)
		return
	}
	if err := part.Close(); err != nil {
		l.fail(w, http.StatusInternalServerError, ErrEnd, err)
		return
	}
	if err := os.Rename(part.Name(), final); err != nil {
		l.fail(w, http.StatusInternalServerError, ErrEnd, err)
		return
	}
	committed = true

	l.logger.Info("update staged", "target", target.String(), "path", final)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "OK\n")
	if err := http.NewResponseController(w).Flush(); err != nil {
		l.logger.Debug("flush update response", "error", err)
	}
	// The end event may restart the device, so the client has its answer first.
	l.emit(event{kind: evEnd, target: target, path: final})
}

// copy streams size bytes from src to dst, queueing a progress event on
// every whole-percent step.
func (l *Listener) copy(dst io.Writer, src io.Reader, size int64) (int64, error) {
	buf := make([]byte, 32<<10)
	var received int64
	lastPct := -1

	for received < size {
		n, err := src.Read(buf)
		if n > 0 {
			if received+int64(n) > size {
				n = int(size - received)
			}
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return received, werr
			}
			received += int64(n)
			if pct := int(received * 100 / size); pct != lastPct {
				lastPct = pct
				l.emit(event{kind: evProgress, percent: pct})
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if received < size {
					return received, ErrShortBody
				}
				break
			}
			return received, err
		}
	}
	return received, nil
}
