package eventlog

import (
	"io"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// DefaultMaxSize is the journal size at which FileLogger rotates.
const DefaultMaxSize = 1 << 20

// FileLogger appends events to a CBOR file. When the file grows past
// MaxSize it is renamed to path+".1" (replacing any previous one) and a new
// file is started.
type FileLogger struct {
	MaxSize int64

	path    string
	file    *os.File
	size    int64
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
}

// NewFileLogger opens path for appending, creating it with mode 0644.
func NewFileLogger(path string) (*FileLogger, error) {
	l := &FileLogger{MaxSize: DefaultMaxSize, path: path}
	if err := l.open(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *FileLogger) open() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	l.file = f
	l.size = info.Size()
	l.encoder = NewEncoder(&countingWriter{w: f, n: &l.size})
	return nil
}

// Log appends an event. Encoding and rotation errors are dropped.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if l.file != nil && l.MaxSize > 0 && l.size >= l.MaxSize {
		l.rotate()
	}
	if l.file == nil {
		return
	}
	_ = l.encoder.Encode(event)
}

func (l *FileLogger) rotate() {
	_ = l.file.Close()
	l.file = nil
	_ = os.Rename(l.path, l.path+".1")
	_ = l.open()
}

// Path returns the journal file path.
func (l *FileLogger) Path() string {
	return l.path
}

// Close closes the file. Later Log calls are ignored.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

var _ Logger = (*FileLogger)(nil)

type countingWriter struct {
	w io.Writer
	n *int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	*c.n += int64(n)
	return n, err
}
