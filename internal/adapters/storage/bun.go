package storage

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitecms/internal/identity"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	pkgstorage "github.com/goliatone/go-sitecms/pkg/storage"
)

// recordLookupMethod is the cache key prefix repositorycache uses for
// GetByIdentifier on RecordModel.
const recordLookupMethod = "record_model" + cache.KeySeparator + "get_by_identifier"

// RecordModel is the row persisted for each key.
type RecordModel struct {
	bun.BaseModel `bun:"table:site_records,alias:sr"`

	ID        uuid.UUID `bun:",pk,type:uuid"`
	Key       string    `bun:"key,notnull,unique"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// NewRecordRepository creates the go-repository-bun repository for records.
func NewRecordRepository(db *bun.DB) repository.Repository[*RecordModel] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*RecordModel]{
		NewRecord:          func() *RecordModel { return &RecordModel{} },
		GetID:              func(rec *RecordModel) uuid.UUID { return rec.ID },
		SetID:              func(rec *RecordModel, id uuid.UUID) { rec.ID = id },
		GetIdentifier:      func() string { return "key" },
		GetIdentifierValue: func(rec *RecordModel) string { return rec.Key },
	})
}

// BunBackend stores records in the site_records table. Reads can go through a
// go-repository-cache layer. Writes go through the same layer so its tag
// invalidation runs, and the cached lookup for the written key is evicted.
type BunBackend struct {
	db           *bun.DB
	base         repository.Repository[*RecordModel]
	repo         repository.Repository[*RecordModel]
	cacheService cache.CacheService
	serializer   cache.KeySerializer
	logger       interfaces.Logger
	now          func() time.Time
}

var _ pkgstorage.Backend = (*BunBackend)(nil)

// BunOption configures a BunBackend.
type BunOption func(*BunBackend)

// WithBunLogger sets the logger used for absorbed cache failures.
func WithBunLogger(logger interfaces.Logger) BunOption {
	return func(b *BunBackend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBunBackend creates a record backend without caching.
func NewBunBackend(db *bun.DB, opts ...BunOption) *BunBackend {
	return NewBunBackendWithCache(db, nil, nil, opts...)
}

// NewBunBackendWithCache creates a record backend whose reads are cached.
func NewBunBackendWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer, opts ...BunOption) *BunBackend {
	base := NewRecordRepository(db)
	backend := &BunBackend{
		db:     db,
		base:   base,
		repo:   base,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	if cacheService != nil && serializer != nil {
		backend.repo = repositorycache.New(base, cacheService, serializer)
		backend.cacheService = cacheService
		backend.serializer = serializer
	}
	for _, opt := range opts {
		if opt != nil {
			opt(backend)
		}
	}
	return backend
}

// EnsureSchema creates the site_records table when it is missing.
func (b *BunBackend) EnsureSchema(ctx context.Context) error {
	if b.db == nil {
		return pkgstorage.ErrUnavailable
	}
	_, err := b.db.NewCreateTable().Model((*RecordModel)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return fmt.Errorf("storage: create site_records: %w", err)
	}
	return nil
}

func (b *BunBackend) Get(ctx context.Context, key string) ([]byte, error) {
	record, err := b.repo.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, key)
	}
	return []byte(record.Value), nil
}

func (b *BunBackend) Set(ctx context.Context, key string, value []byte) error {
	existing, err := b.base.GetByIdentifier(ctx, key)
	switch {
	case err == nil:
		existing.Value = string(value)
		existing.UpdatedAt = b.now().UTC()
		if _, err := b.repo.Update(ctx, existing); err != nil {
			return fmt.Errorf("storage: update %q: %w", key, err)
		}
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		record := &RecordModel{
			ID:        recordID(key),
			Key:       key,
			Value:     string(value),
			UpdatedAt: b.now().UTC(),
		}
		if _, err := b.repo.Create(ctx, record); err != nil {
			return fmt.Errorf("storage: create %q: %w", key, err)
		}
	default:
		return mapRepositoryError(err, key)
	}
	b.evict(ctx, key)
	return nil
}

func (b *BunBackend) Delete(ctx context.Context, key string) error {
	existing, err := b.base.GetByIdentifier(ctx, key)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil
		}
		return mapRepositoryError(err, key)
	}
	if err := b.repo.Delete(ctx, existing); err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	b.evict(ctx, key)
	return nil
}

func (b *BunBackend) Ping(ctx context.Context) error {
	if b.db == nil {
		return pkgstorage.ErrUnavailable
	}
	return b.db.PingContext(ctx)
}

func (b *BunBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *BunBackend) Capabilities() pkgstorage.Capabilities {
	return pkgstorage.Capabilities{
		Persistent: true,
		Shared:     true,
		Cached:     b.cacheService != nil,
	}
}

// evict drops the cached lookup for key. The database write has already
// committed, so a failure is logged and the write still succeeds.
func (b *BunBackend) evict(ctx context.Context, key string) {
	if b.cacheService == nil {
		return
	}
	cacheKey := b.serializer.SerializeKey(recordLookupMethod, key)
	if err := b.cacheService.InvalidateKeys(ctx, []string{cacheKey}); err != nil {
		logging.WithRecordKey(b.logger, key).Warn("storage.cache.evict_failed", "cache_key", cacheKey, "error", err)
	}
}

func recordID(key string) uuid.UUID {
	return identity.RecordUUID(key)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return pkgstorage.ErrNotFound
	}
	return fmt.Errorf("storage: record %q: %w: %w", key, pkgstorage.ErrUnavailable, err)
}
