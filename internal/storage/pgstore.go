package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"loyalty-system/internal/domain"
)

// PGStore keeps every collection as a single jsonb row in Postgres. Replace
// is a compare-and-swap on the version column, so two sessions crediting the
// same card concurrently cannot silently lose an update: the slower writer
// gets domain.ErrVersionConflict and retries from a fresh Load.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

// Migrate creates the collections table if it is missing.
func (s *PGStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			name    TEXT PRIMARY KEY,
			body    JSONB NOT NULL,
			version BIGINT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate collections: %w", err)
	}
	return nil
}

func (s *PGStore) Load(ctx context.Context, collection string) (Document, error) {
	var doc Document
	err := s.db.QueryRowContext(ctx,
		"SELECT body, version FROM collections WHERE name = $1", collection,
	).Scan(&doc.Body, &doc.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{Body: []byte("[]"), Version: 0}, nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("load %s: %w", collection, err)
	}
	return doc, nil
}

func (s *PGStore) Replace(ctx context.Context, collection string, body []byte, expected int64) error {
	var (
		res sql.Result
		err error
	)
	if expected == 0 {
		res, err = s.db.ExecContext(ctx, `
			INSERT INTO collections (name, body, version)
			VALUES ($1, $2, 1)
			ON CONFLICT (name) DO NOTHING
		`, collection, body)
	} else {
		res, err = s.db.ExecContext(ctx, `
			UPDATE collections
			SET body = $2, version = version + 1
			WHERE name = $1 AND version = $3
		`, collection, body, expected)
	}
	if err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	if n == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}
