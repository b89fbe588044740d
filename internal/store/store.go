package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup or mutation targets an id that does
// not exist. Handlers translate it to a 404; raw driver errors never leak.
var ErrNotFound = errors.New("record not found")

// Store persists contact messages and portfolio projects. SQLite is the
// default backend; a Postgres DSN can be supplied instead for shared
// installs.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open connects to the configured database and applies migrations.
// driver is "sqlite" or "postgres". For sqlite, dsn is a data directory
// (a vitrine.db file is created inside it) or empty for in-memory.
func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case "", "sqlite":
		return openSQLite(dsn)
	case "postgres":
		return openPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func openSQLite(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == "" {
		dsn = ":memory:?_journal_mode=WAL"
	} else {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		dsn = filepath.Join(dataDir, "vitrine.db") + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db, driver: "sqlite"}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

func openPostgres(dsn string) (*Store, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	s := &Store{db: db, driver: "postgres"}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection, for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// rebind converts ?-style placeholders to the driver's bindvar format.
func (s *Store) rebind(query string) string {
	return s.db.Rebind(query)
}
