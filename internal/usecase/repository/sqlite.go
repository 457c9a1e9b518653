package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
    collection TEXT    NOT NULL,
    id         INTEGER NOT NULL,
    data       BLOB    NOT NULL,
    PRIMARY KEY (collection, id)
)`

var (
	_ DurableBackend = (*SQLiteBackend)(nil)
	_ Pinger         = (*SQLiteBackend)(nil)
)

// SQLiteBackend is the embedded key-value variant: one row per record in a local
// database file shared by all collections.
type SQLiteBackend struct {
	logger     *zap.Logger
	db         *sqlx.DB
	collection string
}

func NewSQLiteBackend(ctx context.Context, l *zap.Logger, db *sqlx.DB, collection string) (*SQLiteBackend, error) {
	if collection == "" {
		return nil, ErrEmptyLocation
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("can not create records table: %w", err)
	}
	return &SQLiteBackend{
		logger:     l,
		db:         db,
		collection: collection,
	}, nil
}

func (s *SQLiteBackend) Read(ctx context.Context, id int64) ([]byte, error) {
	var data []byte
	err := s.db.GetContext(ctx, &data,
		`SELECT data FROM records WHERE collection = ? AND id = ?`, s.collection, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	return data, err
}

func (s *SQLiteBackend) ReadAll(ctx context.Context) ([][]byte, error) {
	result := make([][]byte, 0)
	err := s.db.SelectContext(ctx, &result,
		`SELECT data FROM records WHERE collection = ? ORDER BY id`, s.collection)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SQLiteBackend) Write(ctx context.Context, id int64, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (collection, id, data) VALUES (?, ?, ?)
		 ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data`,
		s.collection, id, data)
	return err
}

func (s *SQLiteBackend) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND id = ?`, s.collection, id)
	if err != nil {
		return false, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

func (s *SQLiteBackend) Keys(ctx context.Context) ([]string, error) {
	ids := make([]int64, 0)
	err := s.db.SelectContext(ctx, &ids,
		`SELECT id FROM records WHERE collection = ?`, s.collection)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = formatID(id)
	}
	return keys, nil
}

func (s *SQLiteBackend) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
