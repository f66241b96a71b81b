package dataaccess

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	namespace  TEXT NOT NULL,
	guild_id   TEXT NOT NULL,
	data       TEXT NOT NULL,
	updated_at DATETIME NOT NULL,
	PRIMARY KEY (namespace, guild_id)
);`

type sqliteRecord struct {
	Namespace string    `db:"namespace"`
	GuildID   string    `db:"guild_id"`
	Data      string    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}

type sqliteKV struct {
	db *sqlx.DB
}

// NewSQLiteKV creates a KV backed by a single table and creates the table if needed.
func NewSQLiteKV(db *sqlx.DB) (KV, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("error creating kv table: %w", err)
	}
	return &sqliteKV{db: db}, nil
}

func (s *sqliteKV) Get(ctx context.Context, ns Namespace, guildID string) ([]byte, error) {
	defer observe(BackendSQLite, "get", ns)()

	var data string
	err := s.db.GetContext(ctx, &data, `SELECT data FROM kv WHERE namespace = ? AND guild_id = ?`, string(ns), guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error getting record: %w", err)
	}
	return []byte(data), nil
}

func (s *sqliteKV) Put(ctx context.Context, ns Namespace, guildID string, data []byte) error {
	defer observe(BackendSQLite, "put", ns)()

	const query = `INSERT INTO kv (namespace, guild_id, data, updated_at)
		VALUES (:namespace, :guild_id, :data, :updated_at)
		ON CONFLICT (namespace, guild_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

	rec := &sqliteRecord{
		Namespace: string(ns),
		GuildID:   guildID,
		Data:      string(data),
		UpdatedAt: time.Now().UTC(),
	}

	if _, err := s.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("error saving record: %w", err)
	}
	return nil
}

func (s *sqliteKV) Delete(ctx context.Context, ns Namespace, guildID string) error {
	defer observe(BackendSQLite, "delete", ns)()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE namespace = ? AND guild_id = ?`, string(ns), guildID); err != nil {
		return fmt.Errorf("error deleting record: %w", err)
	}
	return nil
}

func (s *sqliteKV) Ping(ctx context.Context) error {
	defer observe(BackendSQLite, "ping", "-")()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}
	return nil
}

func (s *sqliteKV) Close(_ context.Context) error {
	return s.db.Close()
}
