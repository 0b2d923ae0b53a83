package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-repository-cache/cache"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
	pkgstorage "github.com/goliatone/go-sitecms/pkg/storage"
)

// Supported driver names.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// ErrUnknownDriver is returned by Open for drivers it does not know.
var ErrUnknownDriver = errors.New("storage: unknown driver")

// Drivers lists the names accepted by Open.
func Drivers() []string {
	return []string{DriverMemory, DriverSQLite, DriverPostgres, DriverRedis}
}

// OpenOption customises Open.
type OpenOption func(*openOptions)

type openOptions struct {
	cacheService cache.CacheService
	serializer   cache.KeySerializer
	logger       interfaces.Logger
}

// WithRecordCache enables the go-repository-cache read layer for sql drivers.
func WithRecordCache(svc cache.CacheService, serializer cache.KeySerializer) OpenOption {
	return func(o *openOptions) {
		o.cacheService = svc
		o.serializer = serializer
	}
}

// WithLogger sets the logger handed to backends that absorb failures.
func WithLogger(logger interfaces.Logger) OpenOption {
	return func(o *openOptions) {
		o.logger = logger
	}
}

// Open builds the backend named by cfg.Driver. The returned close function
// releases connections and is never nil.
func Open(ctx context.Context, cfg pkgstorage.Config, opts ...OpenOption) (pkgstorage.Backend, func() error, error) {
	options := openOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	backend, closeFn, err := open(ctx, cfg, options)
	if err != nil {
		return nil, noopClose, err
	}
	if cfg.ReadOnly {
		backend = ReadOnly(backend)
	}
	return backend, closeFn, nil
}

func open(ctx context.Context, cfg pkgstorage.Config, options openOptions) (pkgstorage.Backend, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverMemory:
		return NewMemoryBackend(), noopClose, nil
	case DriverSQLite:
		return openBun(ctx, "sqlite3", cfg.DSN, sqlitedialect.New(), options)
	case DriverPostgres:
		return openBun(ctx, "postgres", cfg.DSN, pgdialect.New(), options)
	case DriverRedis:
		backend, err := NewRedisBackend(ctx, cfg.DSN)
		if err != nil {
			return nil, noopClose, err
		}
		return backend, backend.Close, nil
	default:
		return nil, noopClose, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func openBun(ctx context.Context, driverName, dsn string, dialect schema.Dialect, options openOptions) (pkgstorage.Backend, func() error, error) {
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, noopClose, fmt.Errorf("storage: open %s: %w", driverName, err)
	}

	db := bun.NewDB(sqlDB, dialect)
	if driverName == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	backend := NewBunBackendWithCache(db, options.cacheService, options.serializer, WithBunLogger(options.logger))
	if err := backend.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, noopClose, err
	}
	return backend, backend.Close, nil
}

func noopClose() error { return nil }
