package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type DataBase interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

var (
	_ DurableBackend = (*postgresBackend)(nil)
	_ Pinger         = (*postgresBackend)(nil)
)

// postgresBackend keeps all collections in the records table, one row per record.
type postgresBackend struct {
	logger     *zap.Logger
	db         DataBase
	collection string
}

func NewPostgresBackend(l *zap.Logger, db DataBase, collection string) (*postgresBackend, error) {
	if collection == "" {
		return nil, ErrEmptyLocation
	}
	return &postgresBackend{
		logger:     l,
		db:         db,
		collection: collection,
	}, nil
}

func (p *postgresBackend) Read(ctx context.Context, id int64) ([]byte, error) {
	const query = `
SELECT data
FROM records
WHERE collection = $1 AND id = $2
`
	var data []byte
	err := p.db.QueryRow(ctx, query, p.collection, id).Scan(&data)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	return data, nil
}

func (p *postgresBackend) ReadAll(ctx context.Context) ([][]byte, error) {
	const query = `
SELECT data
FROM records
WHERE collection = $1
ORDER BY id
`
	rows, err := p.db.Query(ctx, query, p.collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([][]byte, 0)
	for rows.Next() {
		var data []byte
		if err = rows.Scan(&data); err != nil {
			return nil, err
		}
		result = append(result, data)
	}

	return result, rows.Err()
}

func (p *postgresBackend) Write(ctx context.Context, id int64, data []byte) error {
	const query = `
INSERT INTO records (collection, id, data)
VALUES ($1, $2, $3)
ON CONFLICT (collection, id) DO UPDATE
SET data = EXCLUDED.data, updated_at = now()
`
	if _, err := p.db.Exec(ctx, query, p.collection, id, data); err != nil {
		return fmt.Errorf("upsert into %s: %w", p.collection, err)
	}
	return nil
}

func (p *postgresBackend) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `
DELETE FROM records
WHERE collection = $1 AND id = $2
`
	tag, err := p.db.Exec(ctx, query, p.collection, id)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", p.collection, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (p *postgresBackend) Keys(ctx context.Context) ([]string, error) {
	const query = `
SELECT id
FROM records
WHERE collection = $1
`
	rows, err := p.db.Query(ctx, query, p.collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return keys, err
		}
		keys = append(keys, formatID(id))
	}

	return keys, rows.Err()
}

func (p *postgresBackend) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}
