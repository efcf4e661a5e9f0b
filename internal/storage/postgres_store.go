package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/sgreene/habitat/internal/keyring"
	"github.com/sgreene/habitat/internal/migration"
	"github.com/sgreene/habitat/internal/models"
)

var postgresMigrations = []migration.Migration{
	{
		Version: 1,
		Name:    "create snapshot table",
		SQL: `
			CREATE TABLE IF NOT EXISTS snapshot (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				data JSONB NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)
		`,
	},
}

// PostgresStore persists the snapshot in a PostgreSQL database. The
// connection string must not embed credentials; they come from the
// environment, .pgpass, or the OS keyring.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{connStr: connStr}
}

// HasEmbeddedCredentials reports whether a postgres connection string
// carries an inline password.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

// resolveConnStr prefers, in order: the configured string, the
// HABITAT_DB_CONNECTION environment variable, and the OS keyring.
func (s *PostgresStore) resolveConnStr() (string, error) {
	if s.connStr != "" {
		return s.connStr, nil
	}
	if env := os.Getenv("HABITAT_DB_CONNECTION"); env != "" {
		return env, nil
	}
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", errors.New("no postgres connection string configured")
		}
		return "", err
	}
	return connStr, nil
}

func (s *PostgresStore) open() error {
	if s.db != nil {
		return nil
	}
	connStr, err := s.resolveConnStr()
	if err != nil {
		return err
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	s.db = db
	return nil
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	runner := migration.NewRunner(s.db, postgresMigrations)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if _, err := s.Load(); err != nil {
		if err := s.Save(models.NewSnapshot()); err != nil {
			return fmt.Errorf("failed to save initial snapshot: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) Load() (models.Snapshot, error) {
	if err := s.open(); err != nil {
		return models.Snapshot{}, err
	}

	var data string
	err := s.db.QueryRow("SELECT data FROM snapshot WHERE id = 1").Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Snapshot{}, fmt.Errorf("no snapshot stored, run 'habitat init' first")
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

func (s *PostgresStore) Save(snapshot models.Snapshot) error {
	if err := s.open(); err != nil {
		return err
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO snapshot (id, data, updated_at) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetConfigPath returns the connection string with any user info
// stripped, safe for display.
func (s *PostgresStore) GetConfigPath() string {
	u, err := url.Parse(s.connStr)
	if err != nil {
		return s.connStr
	}
	u.User = nil
	return strings.TrimSuffix(u.String(), "?")
}
