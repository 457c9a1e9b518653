package repository

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCollection = "books"

func newMockPostgres(t *testing.T) (*postgresBackend, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	backend, err := NewPostgresBackend(zap.NewNop(), mock, testCollection)
	require.NoError(t, err)
	return backend, mock
}

func Test_postgresBackend_Read(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rows       [][]byte
		dbErr      error
		want       []byte
		errRequire error
	}{
		{
			name: "ok",
			rows: [][]byte{[]byte(`{"id":1}`)},
			want: []byte(`{"id":1}`),
		},
		{
			name:       "no rows",
			rows:       nil,
			errRequire: ErrRecordNotFound,
		},
		{
			name:       "db error",
			dbErr:      errInternal,
			errRequire: errInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			backend, mock := newMockPostgres(t)
			expected := mock.ExpectQuery(`SELECT data`).WithArgs(testCollection, int64(1))
			if tt.dbErr != nil {
				expected.WillReturnError(tt.dbErr)
			} else {
				rows := pgxmock.NewRows([]string{"data"})
				for _, r := range tt.rows {
					rows.AddRow(r)
				}
				expected.WillReturnRows(rows)
			}

			data, err := backend.Read(context.Background(), 1)
			require.ErrorIs(t, err, tt.errRequire)
			require.Equal(t, tt.want, data)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func Test_postgresBackend_ReadAll(t *testing.T) {
	t.Parallel()

	backend, mock := newMockPostgres(t)
	mock.ExpectQuery(`SELECT data`).WithArgs(testCollection).
		WillReturnRows(pgxmock.NewRows([]string{"data"}).
			AddRow([]byte(`{"id":1}`)).
			AddRow([]byte(`{"id":2}`)))

	records, err := backend.ReadAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, [][]byte{[]byte(`{"id":1}`), []byte(`{"id":2}`)}, records)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_postgresBackend_Write(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		dbErr error
	}{
		{name: "ok"},
		{name: "db error", dbErr: errInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			backend, mock := newMockPostgres(t)
			data := []byte(`{"id":3}`)
			expected := mock.ExpectExec(`INSERT INTO records`).WithArgs(testCollection, int64(3), data)
			if tt.dbErr != nil {
				expected.WillReturnError(tt.dbErr)
			} else {
				expected.WillReturnResult(pgxmock.NewResult("INSERT", 1))
			}

			err := backend.Write(context.Background(), 3, data)
			require.ErrorIs(t, err, tt.dbErr)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func Test_postgresBackend_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rows    int64
		deleted bool
	}{
		{name: "existing row", rows: 1, deleted: true},
		{name: "missing row", rows: 0, deleted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			backend, mock := newMockPostgres(t)
			mock.ExpectExec(`DELETE FROM records`).WithArgs(testCollection, int64(9)).
				WillReturnResult(pgxmock.NewResult("DELETE", tt.rows))

			deleted, err := backend.Delete(context.Background(), 9)
			require.NoError(t, err)
			require.Equal(t, tt.deleted, deleted)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func Test_postgresBackend_Keys(t *testing.T) {
	t.Parallel()

	backend, mock := newMockPostgres(t)
	mock.ExpectQuery(`SELECT id`).WithArgs(testCollection).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(4)).AddRow(int64(12)))

	a := NewIDAllocator(context.Background(), zap.NewNop(), backend)
	require.Equal(t, int64(13), a.NextID())
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_postgresBackend_Ping(t *testing.T) {
	t.Parallel()

	backend, mock := newMockPostgres(t)
	mock.ExpectPing()

	require.NoError(t, backend.Ping(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
