package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/julianstephens/elevate/internal/logger"
)

const jsonStoreVersion = 1

type jsonFile struct {
	Version   int                        `json:"version"`
	Documents map[string]json.RawMessage `json:"documents"`
}

// JSONStore keeps every document in a single JSON file.
type JSONStore struct {
	path string

	mu   sync.Mutex
	file *jsonFile
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.file = &jsonFile{Version: jsonStoreVersion, Documents: map[string]json.RawMessage{}}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'elevate init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	f := &jsonFile{}
	if err := json.Unmarshal(data, f); err != nil {
		// Move the unreadable file aside and start empty.
		aside := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().Format("20060102-150405"))
		if renameErr := os.Rename(s.path, aside); renameErr != nil {
			return fmt.Errorf("failed to parse storage: %w", err)
		}
		logger.Warn("Storage file was malformed, starting empty", "path", s.path, "moved_to", aside, "error", err)
		s.file = &jsonFile{Version: jsonStoreVersion, Documents: map[string]json.RawMessage{}}
		return s.save()
	}
	if f.Documents == nil {
		f.Documents = map[string]json.RawMessage{}
	}
	s.file = f
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetDocument(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	raw, ok := s.file.Documents[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (s *JSONStore) PutDocument(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	if !json.Valid(data) {
		return fmt.Errorf("document %s is not valid JSON", key)
	}

	prev := maps.Clone(s.file.Documents)
	s.file.Documents[key] = append(json.RawMessage(nil), data...)
	if err := s.save(); err != nil {
		s.file.Documents = prev
		return err
	}
	return nil
}

func (s *JSONStore) DeleteDocument(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.file.Documents[key]; !ok {
		return nil
	}
	delete(s.file.Documents, key)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// save writes through a temp file so a crash never leaves a truncated store.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}
