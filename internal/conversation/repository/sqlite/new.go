package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"customer-support-agent/internal/conversation/repository"
	"customer-support-agent/pkg/log"
)

type implRepository struct {
	db   *sql.DB
	path string
	l    log.Logger
}

var _ repository.Repository = (*implRepository)(nil)

// Open opens or creates the database file at path.
func Open(path string, l log.Logger) (*implRepository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newRepository(db, path, l)
}

// OpenInMemory creates a private in-memory database, for tests.
func OpenInMemory(l log.Logger) (*implRepository, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newRepository(db, ":memory:", l)
}

func newRepository(db *sql.DB, path string, l log.Logger) (*implRepository, error) {
	// One connection: writes are serialized and :memory: stays a single database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := migrateRevision(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &implRepository{db: db, path: path, l: l}, nil
}

// Close closes the underlying database.
func (r *implRepository) Close() error {
	return r.db.Close()
}

func migrateRevision(db *sql.DB) error {
	var n int
	if err := db.QueryRow(revisionColumnExists).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err := db.Exec(addRevisionColumn)
	return err
}
