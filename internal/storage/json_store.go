package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sgreene/habitat/internal/models"
)

// storeFile is the on-disk shape of the JSON store.
type storeFile struct {
	Version  int             `json:"version"`
	Snapshot models.Snapshot `json:"snapshot"`
}

const jsonStoreVersion = 1

// JSONStore persists the snapshot as a single JSON file. It is the
// default store.
type JSONStore struct {
	path string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	return s.write(models.NewSnapshot())
}

func (s *JSONStore) Load() (models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Snapshot{}, fmt.Errorf("storage not initialized, run 'habitat init' first")
		}
		return models.Snapshot{}, fmt.Errorf("failed to read storage: %w", err)
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to parse storage: %w", err)
	}

	// Older files may predate newer snapshot fields.
	file.Snapshot.Normalize()
	return file.Snapshot, nil
}

func (s *JSONStore) Save(snapshot models.Snapshot) error {
	return s.write(snapshot)
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) write(snapshot models.Snapshot) error {
	data, err := json.MarshalIndent(storeFile{Version: jsonStoreVersion, Snapshot: snapshot}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}
