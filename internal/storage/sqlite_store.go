package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sgreene/habitat/internal/migration"
	"github.com/sgreene/habitat/internal/models"
)

var sqliteMigrations = []migration.Migration{
	{
		Version: 1,
		Name:    "create snapshot table",
		SQL: `
			CREATE TABLE IF NOT EXISTS snapshot (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				data TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)
		`,
	},
}

// SQLiteStore persists the snapshot as a single JSON document in a
// SQLite database.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}
	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed an empty snapshot if the database is fresh.
	if _, err := s.Load(); err != nil {
		if err := s.Save(models.NewSnapshot()); err != nil {
			return fmt.Errorf("failed to save initial snapshot: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) runMigrations() error {
	runner := migration.NewRunner(s.db, sqliteMigrations)
	_, err := runner.ApplyMigrations(nil)
	return err
}

func (s *SQLiteStore) Load() (models.Snapshot, error) {
	if s.db == nil {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			return models.Snapshot{}, fmt.Errorf("storage not initialized, run 'habitat init' first")
		}
		if err := s.open(); err != nil {
			return models.Snapshot{}, err
		}
		if err := migration.NewRunner(s.db, sqliteMigrations).ValidateVersion(); err != nil {
			return models.Snapshot{}, err
		}
	}

	var data string
	err := s.db.QueryRow("SELECT data FROM snapshot WHERE id = 1").Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Snapshot{}, fmt.Errorf("no snapshot stored")
		}
		return models.Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	snapshot.Normalize()
	return snapshot, nil
}

func (s *SQLiteStore) Save(snapshot models.Snapshot) error {
	if err := s.open(); err != nil {
		return err
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO snapshot (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
