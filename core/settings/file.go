package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore keeps settings in a YAML file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path, creating its directory.
func NewFileStore(path string) (*FileStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return nil, fmt.Errorf("create settings directory: %w", err)
	}
	return &FileStore{path: abs}, nil
}

// Path returns the absolute settings file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	val, ok := values[key]
	return val, ok, nil
}

// Set implements Store.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

// load returns an empty map when the file doesn't exist yet.
func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse settings file: %w", err)
	}
	if values == nil {
		values = make(map[string]string)
	}
	return values, nil
}

// save writes through a temp file so a crash never leaves a truncated file.
func (s *FileStore) save(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
