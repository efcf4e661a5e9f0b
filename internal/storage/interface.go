package storage

import "github.com/sgreene/habitat/internal/models"

// Provider loads and saves snapshots opaquely. The engine never touches
// storage; callers load a snapshot, apply actions, and save the result.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Snapshot
	Load() (models.Snapshot, error)
	Save(models.Snapshot) error

	// Utils
	GetConfigPath() string
}
