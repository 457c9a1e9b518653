package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/project/catalog/config"
	"github.com/project/catalog/internal/entity"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(backend, authors, books string) *config.Config {
	cfg := &config.Config{}
	cfg.Storage.Backend = backend
	cfg.Storage.AuthorsLocation = authors
	cfg.Storage.BooksLocation = books
	return cfg
}

func TestNewStorage_MemorySeedsFixture(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := testConfig(config.BackendMemory, "authors", "books")
	cfg.Storage.SeedFixture = true
	cfg.Storage.CacheCapacity = 4

	s, err := newStorage(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, entity.FixtureAuthors(), s.authors.GetAll(ctx))
	require.Equal(t, entity.FixtureBooks(), s.books.GetAll(ctx))

	author, err := s.authors.Save(ctx, entity.Author{FirstName: "Joshua", LastName: "Bloch"})
	require.NoError(t, err)
	require.Equal(t, int64(len(entity.FixtureAuthors())+1), author.ID)
	require.NoError(t, s.Ping(ctx))
}

func TestNewStorage_MemoryWithoutFixture(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := newStorage(ctx, testConfig(config.BackendMemory, "authors", "books"), nil)
	require.NoError(t, err)
	require.Empty(t, s.authors.GetAll(ctx))
	require.Empty(t, s.books.GetAll(ctx))
}

func TestNewStorage_FlatFileRecoversIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	cfg := testConfig(config.BackendFlatFile, filepath.Join(dir, "authors"), filepath.Join(dir, "books"))

	first, err := newStorage(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	for range 3 {
		_, err = first.authors.Save(ctx, entity.Author{FirstName: "Jane", LastName: "Doe"})
		require.NoError(t, err)
	}
	first.Close()

	second, err := newStorage(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer second.Close()

	author, err := second.authors.Save(ctx, entity.Author{FirstName: "Joshua", LastName: "Bloch"})
	require.NoError(t, err)
	require.Equal(t, int64(4), author.ID)
	require.Len(t, second.authors.GetAll(ctx), 4)
}

func TestNewStorage_FlatFileUnwritableLocation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	cfg := testConfig(config.BackendFlatFile, filepath.Join(blocker, "authors"), filepath.Join(dir, "books"))
	_, err := newStorage(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
}

func TestNewStorage_SQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := testConfig(config.BackendSQLite, "authors", "books")
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "nested", "catalog.db")

	s, err := newStorage(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	book, err := s.books.Save(ctx, entity.Book{Title: "Effective Java", PublishedYear: 2000})
	require.NoError(t, err)
	got, ok := s.books.GetByID(ctx, book.ID)
	require.True(t, ok)
	require.Equal(t, book, got)
	require.NoError(t, s.Ping(ctx))
}

func TestNewStorage_Redis(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := miniredis.RunT(t)

	cfg := testConfig(config.BackendRedis, "author", "book")
	cfg.Redis.URL = "redis://" + server.Addr()

	s, err := newStorage(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	author, err := s.authors.Save(ctx, entity.Author{FirstName: "Joshua", LastName: "Bloch"})
	require.NoError(t, err)
	require.True(t, server.Exists("author:1"))
	require.Equal(t, int64(1), author.ID)

	require.NoError(t, s.Ping(ctx))
	server.Close()
	require.Error(t, s.Ping(ctx))
}

func TestNewStorage_InvalidTargets(t *testing.T) {
	t.Parallel()

	redisCfg := testConfig(config.BackendRedis, "author", "book")
	redisCfg.Redis.URL = "://not-a-url"

	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "unknown backend", cfg: testConfig("mongo", "authors", "books")},
		{name: "bad redis url", cfg: redisCfg},
		{name: "empty flat file location", cfg: testConfig(config.BackendFlatFile, "", "")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := newStorage(context.Background(), test.cfg, zap.NewNop())
			require.Error(t, err)
		})
	}
}
