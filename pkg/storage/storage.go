package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound reports that no value is stored under the requested key.
	ErrNotFound = errors.New("storage: key not found")
	// ErrUnavailable reports that the backend cannot serve requests.
	ErrUnavailable = errors.New("storage: backend unavailable")
	// ErrReadOnly is returned by writes against a read-only backend.
	ErrReadOnly = errors.New("storage: backend is read-only")
)

// Backend is a string-keyed byte store. Implementations map a missing key to
// ErrNotFound on Get and treat Delete of a missing key as success. Every call
// touches a single key; there are no cross-key transactions.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config selects and parameterises a backend. Driver is one of "memory",
// "sqlite", "postgres" or "redis".
type Config struct {
	Name     string
	Driver   string
	DSN      string
	ReadOnly bool
	Options  map[string]any
}

// Capabilities documents optional behaviours supported by a backend.
type Capabilities struct {
	Persistent bool
	Shared     bool
	Cached     bool
}

// CapabilityReporter exposes backend capabilities to callers that want them.
type CapabilityReporter interface {
	Capabilities() Capabilities
}
