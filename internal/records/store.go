package records

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/goliatone/go-sitecms/pkg/storage"
)

// DefaultNamespace prefixes every key when no namespace is configured.
const DefaultNamespace = "site"

// Store reads and writes JSON records under namespaced keys. It never returns
// errors: a missing, corrupt or unreachable record reads as absent and a
// failed write reports false. Failures are logged at warn level.
type Store struct {
	backend   storage.Backend
	namespace string
	logger    interfaces.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithNamespace overrides the key prefix.
func WithNamespace(namespace string) Option {
	return func(s *Store) {
		if trimmed := strings.Trim(strings.TrimSpace(namespace), ":"); trimmed != "" {
			s.namespace = trimmed
		}
	}
}

// WithLogger sets the logger used for absorbed failures.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New wraps backend. A nil backend yields a store where every read is absent
// and every write fails.
func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		namespace: DefaultNamespace,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Namespace reports the key prefix in use.
func (s *Store) Namespace() string {
	return s.namespace
}

// Key returns the fully qualified storage key for name.
func (s *Store) Key(name string) string {
	return s.namespace + ":" + name
}

// Get decodes the record stored under name into T. The boolean is false when
// the record is absent, corrupt or the backend is unavailable.
func Get[T any](ctx context.Context, s *Store, name string) (T, bool) {
	var out T
	raw, ok := s.read(ctx, name)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		logging.WithRecordKey(s.logger, s.Key(name)).Warn("records.read.corrupt", "error", err)
		var zero T
		return zero, false
	}
	return out, true
}

// ShapeCheck inspects the raw JSON of a record before it is decoded.
type ShapeCheck func(raw []byte) error

// GetValid is Get for records whose JSON must also pass check. A record that
// decodes but fails check reads as absent, like a corrupt one.
func GetValid[T any](ctx context.Context, s *Store, name string, check ShapeCheck) (T, bool) {
	var zero T
	if check == nil {
		return Get[T](ctx, s, name)
	}
	raw, ok := s.read(ctx, name)
	if !ok {
		return zero, false
	}
	if err := check(raw); err != nil {
		logging.WithRecordKey(s.logger, s.Key(name)).Warn("records.read.shape_mismatch", "error", err)
		return zero, false
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		logging.WithRecordKey(s.logger, s.Key(name)).Warn("records.read.corrupt", "error", err)
		return zero, false
	}
	return out, true
}

// Set encodes value as JSON and writes it under name. It reports whether the
// write happened.
func Set[T any](ctx context.Context, s *Store, name string, value T) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		logging.WithRecordKey(s.logger, s.Key(name)).Warn("records.write.encode_failed", "error", err)
		return false
	}
	return s.write(ctx, name, raw)
}

// Remove deletes name. Removing a missing record succeeds; only an
// unavailable backend reports false.
func (s *Store) Remove(ctx context.Context, name string) bool {
	logger := logging.WithRecordKey(s.logger, s.Key(name))
	if s.backend == nil {
		logger.Warn("records.remove.unavailable", "error", storage.ErrUnavailable)
		return false
	}
	if err := s.backend.Delete(ctx, s.Key(name)); err != nil {
		logger.Warn("records.remove.failed", "error", err)
		return false
	}
	return true
}

// Exists reports whether a record is stored under name, whatever its content.
func (s *Store) Exists(ctx context.Context, name string) bool {
	_, ok := s.read(ctx, name)
	return ok
}

// Available reports whether the backend answers reads. A missing key still
// counts as available.
func (s *Store) Available(ctx context.Context) bool {
	if s.backend == nil {
		return false
	}
	if pinger, ok := s.backend.(storage.Pinger); ok {
		return pinger.Ping(ctx) == nil
	}
	_, err := s.backend.Get(ctx, s.Key("__probe__"))
	return err == nil || errors.Is(err, storage.ErrNotFound)
}

func (s *Store) read(ctx context.Context, name string) ([]byte, bool) {
	if s.backend == nil {
		logging.WithRecordKey(s.logger, s.Key(name)).Warn("records.read.unavailable", "error", storage.ErrUnavailable)
		return nil, false
	}
	raw, err := s.backend.Get(ctx, s.Key(name))
	switch {
	case err == nil:
		return raw, true
	case errors.Is(err, storage.ErrNotFound):
		return nil, false
	default:
		logging.WithRecordKey(s.logger, s.Key(name)).Warn("records.read.unavailable", "error", err)
		return nil, false
	}
}

func (s *Store) write(ctx context.Context, name string, raw []byte) bool {
	logger := logging.WithRecordKey(s.logger, s.Key(name))
	if s.backend == nil {
		logger.Warn("records.write.unavailable", "error", storage.ErrUnavailable)
		return false
	}
	if err := s.backend.Set(ctx, s.Key(name), raw); err != nil {
		logger.Warn("records.write.failed", "error", err)
		return false
	}
	return true
}
