package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store errors.
var (
	ErrInvalidNamespace = errors.New("invalid namespace name")
	ErrUnsupportedValue = errors.New("unsupported value type")
)

// Namespace is a scoped key/value store holding strings and integers.
type Namespace interface {
	// GetString returns the value stored under key, or def if absent.
	GetString(key, def string) string

	// GetInt returns the value stored under key, or def if absent or not an integer.
	GetInt(key string, def int) int

	// PutString stores a string value and commits the namespace.
	PutString(key, value string) error

	// PutInt stores an integer value and commits the namespace.
	PutInt(key string, value int) error

	// PutValues stores several values in a single commit.
	// Values must be string or int.
	PutValues(values map[string]any) error

	// Clear removes every key in the namespace.
	Clear() error
}

// FileStore persists a namespace as a YAML document.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]any
}

// OpenFileStore opens the namespace file under dir, creating the directory
// when needed. A missing file is an empty namespace. Leftover temporary files
// from an interrupted commit are removed.
func OpenFileStore(dir, namespace string) (*FileStore, error) {
	if namespace == "" || filepath.Base(namespace) != namespace {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNamespace, namespace)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	s := &FileStore{
		path:   filepath.Join(dir, namespace+".yaml"),
		values: make(map[string]any),
	}
	_ = os.Remove(s.tempPath())

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	// A document that does not parse is treated as empty; the settings layer
	// falls back to defaults.
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err == nil && values != nil {
		s.values = values
	}
	return s, nil
}

// Path returns the file backing the namespace.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) tempPath() string {
	return s.path + ".tmp"
}

// GetString returns the value stored under key, or def if absent.
func (s *FileStore) GetString(key, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return getString(s.values, key, def)
}

// GetInt returns the value stored under key, or def if absent.
func (s *FileStore) GetInt(key string, def int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return getInt(s.values, key, def)
}

// PutString stores a string value and commits.
func (s *FileStore) PutString(key, value string) error {
	return s.PutValues(map[string]any{key: value})
}

// PutInt stores an integer value and commits.
func (s *FileStore) PutInt(key string, value int) error {
	return s.PutValues(map[string]any{key: value})
}

// PutValues stores all values and commits them with one atomic file replace.
func (s *FileStore) PutValues(values map[string]any) error {
	if err := checkValues(values); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]any, len(s.values)+len(values))
	for k, v := range s.values {
		next[k] = v
	}
	for k, v := range values {
		next[k] = v
	}

	if err := s.commit(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

// Clear removes the namespace file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	s.values = make(map[string]any)
	return nil
}

// commit writes values to a temporary file and renames it over the
// namespace file.
func (s *FileStore) commit(values map[string]any) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return err
	}

	tmp := s.tempPath()
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// MemoryStore is an in-memory Namespace.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]any
}

// NewMemoryStore creates an empty in-memory namespace.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]any)}
}

// GetString returns the value stored under key, or def if absent.
func (s *MemoryStore) GetString(key, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return getString(s.values, key, def)
}

// GetInt returns the value stored under key, or def if absent.
func (s *MemoryStore) GetInt(key string, def int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return getInt(s.values, key, def)
}

// PutString stores a string value.
func (s *MemoryStore) PutString(key, value string) error {
	return s.PutValues(map[string]any{key: value})
}

// PutInt stores an integer value.
func (s *MemoryStore) PutInt(key string, value int) error {
	return s.PutValues(map[string]any{key: value})
}

// PutValues stores all values at once.
func (s *MemoryStore) PutValues(values map[string]any) error {
	if err := checkValues(values); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

// Clear removes all keys.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]any)
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

func checkValues(values map[string]any) error {
	for k, v := range values {
		switch v.(type) {
		case string, int:
		default:
			return fmt.Errorf("%w: %s is %T", ErrUnsupportedValue, k, v)
		}
	}
	return nil
}

func getString(values map[string]any, key, def string) string {
	v, ok := values[key]
	if !ok {
		return def
	}
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	default:
		return def
	}
}

func getInt(values map[string]any, key string, def int) int {
	v, ok := values[key]
	if !ok {
		return def
	}
	switch x := v.(type) {
	case int:
		return x
	case string:
		n, err := strconv.Atoi(x)
		if err != nil {
			return def
		}
		return n
	default:
		return def
	}
}

// Compile-time interface satisfaction checks.
var (
	_ Namespace = (*FileStore)(nil)
	_ Namespace = (*MemoryStore)(nil)
)
