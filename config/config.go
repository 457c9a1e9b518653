package config

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	BackendFlatFile      = "flatfile"
	BackendMemory        = "memory"
	BackendRedis         = "redis"
	BackendElasticsearch = "elasticsearch"
	BackendPostgres      = "postgres"
	BackendSQLite        = "sqlite"
)

const (
	defaultLogValue      = true
	defaultMaxConn       = "10"
	defaultBackend       = BackendFlatFile
	defaultCacheCapacity = 0
	defaultSeedFixture   = true
	defaultHTTPPort      = "8080"
	defaultRedisURL      = "redis://localhost:6379/0"
	defaultElasticURL    = "http://localhost:9200"
	defaultSQLitePath    = "/tmp/catalog/catalog.db"
	defaultLogFile       = "/tmp/catalog/catalog.log"
)

// defaultLocations holds the authors and books location used when none is configured.
var defaultLocations = map[string][2]string{
	BackendFlatFile: {"/tmp/authors", "/tmp/books"},
	BackendRedis:    {"author", "book"},
}

type (
	Config struct {
		Storage struct {
			Backend         string `env:"STORAGE_BACKEND"`
			AuthorsLocation string `env:"STORAGE_AUTHORS_LOCATION"`
			BooksLocation   string `env:"STORAGE_BOOKS_LOCATION"`
			CacheCapacity   int    `env:"STORAGE_CACHE_CAPACITY"`
			SeedFixture     bool   `env:"STORAGE_SEED_FIXTURE"`
		}

		HTTP struct {
			Port string `env:"HTTP_PORT"`
		}

		GRPC struct {
			Port string `env:"GRPC_PORT"`
		}

		Redis struct {
			URL string `env:"REDIS_URL"`
		}

		Elastic struct {
			Addresses []string `env:"ELASTICSEARCH_ADDRESSES"`
		}

		PG struct {
			URL      string
			Host     string `env:"POSTGRES_HOST"`
			Port     string `env:"POSTGRES_PORT"`
			DB       string `env:"POSTGRES_DB"`
			User     string `env:"POSTGRES_USER"`
			Password string `env:"POSTGRES_PASSWORD"`
			MaxConn  string `env:"POSTGRES_MAX_CONN"`
		}

		SQLite struct {
			Path string `env:"SQLITE_PATH"`
		}

		Log struct {
			File          string `env:"LOG_FILE"`
			LogController bool   `env:"LOG_CONTROLLER_ENABLED"`
			LogUseCase    bool   `env:"LOG_USECASE_ENABLED"`
			LogStorage    bool   `env:"LOG_STORAGE_ENABLED"`
		}

		Observability struct {
			MetricsPort string `env:"METRICS_PORT"`
			JaegerURL   string `env:"JAEGER_URL"`
		}
	}
)

func NewConfig() (*Config, error) {
	cfg := &Config{}

	var err error
	v := viper.New()

	if cfg.Storage.Backend, err = parseEnvString(v, "storage_backend", "STORAGE_BACKEND", defaultBackend); err != nil {
		return nil, err
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))

	switch cfg.Storage.Backend {
	case BackendFlatFile, BackendMemory, BackendRedis, BackendElasticsearch, BackendPostgres, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	authors, books := "authors", "books"
	if locations, ok := defaultLocations[cfg.Storage.Backend]; ok {
		authors, books = locations[0], locations[1]
	}

	if cfg.Storage.AuthorsLocation, err = parseEnvString(v, "storage_authors", "STORAGE_AUTHORS_LOCATION", authors); err != nil {
		return nil, err
	}

	if cfg.Storage.BooksLocation, err = parseEnvString(v, "storage_books", "STORAGE_BOOKS_LOCATION", books); err != nil {
		return nil, err
	}

	if cfg.Storage.CacheCapacity, err = parseEnvInt(v, "storage_cache", "STORAGE_CACHE_CAPACITY", defaultCacheCapacity); err != nil {
		return nil, err
	}

	if cfg.Storage.SeedFixture, err = parseEnvBool(v, "storage_seed", "STORAGE_SEED_FIXTURE", defaultSeedFixture); err != nil {
		return nil, err
	}

	if cfg.HTTP.Port, err = parseEnvString(v, "http_port", "HTTP_PORT", defaultHTTPPort); err != nil {
		return nil, err
	}
	cfg.GRPC.Port = os.Getenv("GRPC_PORT")

	if cfg.Redis.URL, err = parseEnvString(v, "redis_url", "REDIS_URL", defaultRedisURL); err != nil {
		return nil, err
	}

	addresses, err := parseEnvString(v, "elastic_addresses", "ELASTICSEARCH_ADDRESSES", defaultElasticURL)
	if err != nil {
		return nil, err
	}
	for _, address := range strings.Split(addresses, ",") {
		if address = strings.TrimSpace(address); address != "" {
			cfg.Elastic.Addresses = append(cfg.Elastic.Addresses, address)
		}
	}

	cfg.PG.Host = os.Getenv("POSTGRES_HOST")
	cfg.PG.Port = os.Getenv("POSTGRES_PORT")
	cfg.PG.DB = os.Getenv("POSTGRES_DB")
	cfg.PG.User = os.Getenv("POSTGRES_USER")
	cfg.PG.Password = os.Getenv("POSTGRES_PASSWORD")

	if cfg.PG.MaxConn, err = parseEnvString(v, "db_MaxCon", "POSTGRES_MAX_CONN", defaultMaxConn); err != nil {
		return nil, err
	}

	cfg.PG.URL = fmt.Sprintf("postgres://%s:%s@", cfg.PG.User, cfg.PG.Password) +
		net.JoinHostPort(cfg.PG.Host, cfg.PG.Port) + fmt.Sprintf("/%s?sslmode=disable", cfg.PG.DB) + fmt.Sprintf("&pool_max_conns=%s", cfg.PG.MaxConn)

	if cfg.SQLite.Path, err = parseEnvString(v, "sqlite_path", "SQLITE_PATH", defaultSQLitePath); err != nil {
		return nil, err
	}

	if cfg.Log.File, err = parseEnvString(v, "log_file", "LOG_FILE", defaultLogFile); err != nil {
		return nil, err
	}

	if cfg.Log.LogController, err = parseEnvBool(v, "log_controller", "LOG_CONTROLLER_ENABLED", defaultLogValue); err != nil {
		return nil, err
	}

	if cfg.Log.LogUseCase, err = parseEnvBool(v, "log_usecase", "LOG_USECASE_ENABLED", defaultLogValue); err != nil {
		return nil, err
	}

	if cfg.Log.LogStorage, err = parseEnvBool(v, "log_storage", "LOG_STORAGE_ENABLED", defaultLogValue); err != nil {
		return nil, err
	}

	cfg.Observability.MetricsPort = os.Getenv("METRICS_PORT")
	cfg.Observability.JaegerURL = os.Getenv("JAEGER_URL")

	return cfg, nil
}

func parseEnvBool(v *viper.Viper, key, envVar string, defaultValue ...bool) (bool, error) {
	err := v.BindEnv(key, envVar)
	if err != nil {
		if len(defaultValue) > 0 {
			return defaultValue[0], err
		}
		return false, err
	}
	if len(defaultValue) > 0 {
		v.SetDefault(key, defaultValue[0])
	}
	return v.GetBool(key), nil
}

func parseEnvInt(v *viper.Viper, key, envVar string, defaultValue ...int) (int, error) {
	err := v.BindEnv(key, envVar)
	if err != nil {
		if len(defaultValue) > 0 {
			return defaultValue[0], err
		}
		return 0, err
	}
	if len(defaultValue) > 0 {
		v.SetDefault(key, defaultValue[0])
	}
	return v.GetInt(key), nil
}

func parseEnvString(v *viper.Viper, key, envVar string, defaultValue ...string) (string, error) {
	err := v.BindEnv(key, envVar)
	if err != nil {
		if len(defaultValue) > 0 {
			return defaultValue[0], err
		}
		return "", err
	}
	if len(defaultValue) > 0 {
		v.SetDefault(key, defaultValue[0])
	}
	return v.GetString(key), nil
}
