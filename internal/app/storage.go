package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/project/catalog/config"
	"github.com/project/catalog/db"
	"github.com/project/catalog/internal/entity"
	"github.com/project/catalog/internal/usecase/repository"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type (
	AuthorStore = repository.EntityStore[entity.Author, *entity.Author]
	BookStore   = repository.EntityStore[entity.Book, *entity.Book]
)

// storage owns both collection stores and the clients behind them.
type storage struct {
	authors *AuthorStore
	books   *BookStore
	pingers []repository.Pinger
	closers []func()
}

type opener func(ctx context.Context, location string) (repository.DurableBackend, error)

// newStorage builds the configured backend for each collection. Any error here
// means the service can not start.
func newStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storage, error) {
	s := &storage{}

	if cfg.Storage.Backend == config.BackendMemory {
		if err := s.openMemory(ctx, cfg, logger); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	}

	open, err := s.opener(ctx, cfg, logger)
	if err != nil {
		s.Close()
		return nil, err
	}

	authorsBackend, authorsAllocator, err := s.openDurable(ctx, cfg, logger, open, cfg.Storage.AuthorsLocation)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("authors storage: %w", err)
	}
	booksBackend, booksAllocator, err := s.openDurable(ctx, cfg, logger, open, cfg.Storage.BooksLocation)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("books storage: %w", err)
	}

	s.authors = repository.NewEntityStore[entity.Author](logger, "authors", authorsBackend, authorsAllocator)
	s.books = repository.NewEntityStore[entity.Book](logger, "books", booksBackend, booksAllocator)
	return s, nil
}

func (s *storage) openDurable(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
	open opener,
	location string,
) (repository.Backend, *repository.IDAllocator, error) {
	backend, err := open(ctx, location)
	if err != nil {
		return nil, nil, err
	}
	if pinger, ok := backend.(repository.Pinger); ok {
		s.pingers = append(s.pingers, pinger)
	}

	allocator := repository.NewIDAllocator(ctx, logger, backend)
	return withCache(backend, cfg.Storage.CacheCapacity), allocator, nil
}

func (s *storage) openMemory(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	s.authors = repository.NewEntityStore[entity.Author](logger, "authors",
		withCache(repository.NewMemoryBackend(nil), cfg.Storage.CacheCapacity), repository.NewFixedIDAllocator(1))
	s.books = repository.NewEntityStore[entity.Book](logger, "books",
		withCache(repository.NewMemoryBackend(nil), cfg.Storage.CacheCapacity), repository.NewFixedIDAllocator(1))

	if !cfg.Storage.SeedFixture {
		return nil
	}
	for _, author := range entity.FixtureAuthors() {
		if _, err := s.authors.Save(ctx, author); err != nil {
			return fmt.Errorf("seed authors: %w", err)
		}
	}
	for _, book := range entity.FixtureBooks() {
		if _, err := s.books.Save(ctx, book); err != nil {
			return fmt.Errorf("seed books: %w", err)
		}
	}
	return nil
}

func (s *storage) opener(ctx context.Context, cfg *config.Config, logger *zap.Logger) (opener, error) {
	switch cfg.Storage.Backend {
	case config.BackendFlatFile:
		fs := afero.NewOsFs()
		return func(_ context.Context, location string) (repository.DurableBackend, error) {
			backend, err := repository.NewFlatFileBackend(logger, fs, location)
			if err != nil {
				return nil, err
			}
			return backend, nil
		}, nil

	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("can not parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		s.closers = append(s.closers, func() { _ = client.Close() })
		return func(_ context.Context, location string) (repository.DurableBackend, error) {
			backend, err := repository.NewRedisBackend(logger, client, location)
			if err != nil {
				return nil, err
			}
			return backend, nil
		}, nil

	case config.BackendElasticsearch:
		client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: cfg.Elastic.Addresses})
		if err != nil {
			return nil, fmt.Errorf("can not create elasticsearch client: %w", err)
		}
		return func(_ context.Context, location string) (repository.DurableBackend, error) {
			backend, err := repository.NewElasticBackend(logger, client, location)
			if err != nil {
				return nil, err
			}
			return backend, nil
		}, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.PG.URL)
		if err != nil {
			return nil, fmt.Errorf("can not create pgxpool: %w", err)
		}
		s.closers = append(s.closers, pool.Close)
		if err = db.SetupPostgres(pool, logger); err != nil {
			return nil, err
		}
		return func(_ context.Context, location string) (repository.DurableBackend, error) {
			backend, err := repository.NewPostgresBackend(logger, pool, location)
			if err != nil {
				return nil, err
			}
			return backend, nil
		}, nil

	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLite.Path), 0o755); err != nil {
			return nil, fmt.Errorf("can not create sqlite directory: %w", err)
		}
		sqliteDB, err := sqlx.Open("sqlite3", cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("can not open sqlite database: %w", err)
		}
		s.closers = append(s.closers, func() { _ = sqliteDB.Close() })
		return func(ctx context.Context, location string) (repository.DurableBackend, error) {
			backend, err := repository.NewSQLiteBackend(ctx, logger, sqliteDB, location)
			if err != nil {
				return nil, err
			}
			return backend, nil
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// Ping reports the first unreachable backend.
func (s *storage) Ping(ctx context.Context) error {
	for _, pinger := range s.pingers {
		if err := pinger.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

func withCache(backend repository.Backend, capacity int) repository.Backend {
	if capacity <= 0 {
		return backend
	}
	return repository.NewCachedBackend(backend, capacity)
}
