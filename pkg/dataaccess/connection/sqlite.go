package connection

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLite is a connection to a local sqlite database file.
type SQLite struct {
	Path string
}

// Connect opens the database, creating the parent directory if needed.
func (s *SQLite) Connect() (*sqlx.DB, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}

	if s.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
			return nil, fmt.Errorf("error creating sqlite directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite: %w", err)
	}

	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)
	return db, nil
}
