package store

import (
	"fmt"
	"strings"
)

// migrate creates the schema. Statements are portable between SQLite and
// Postgres: text primary keys (uuid strings), JSON-encoded technologies.
// Re-running is safe; errors for already-applied steps are tolerated the
// same way subsequent ALTERs would be.
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL,
			message TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'NOUVEAU',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			technologies TEXT NOT NULL DEFAULT '[]',
			client TEXT NOT NULL,
			duration TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'EN_ATTENTE',
			image_url TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_messages_status ON messages(status)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,
	}

	for i, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			// Idempotent re-runs of additive steps are fine.
			if strings.Contains(err.Error(), "duplicate column") ||
				strings.Contains(err.Error(), "already exists") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
