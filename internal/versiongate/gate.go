package versiongate

import (
	"context"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/records"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// Reason explains the decision taken by EnsureFresh.
type Reason string

const (
	ReasonFresh             Reason = "fresh"
	ReasonMissingTag        Reason = "missing_tag"
	ReasonTagMismatch       Reason = "tag_mismatch"
	ReasonMissingCollection Reason = "missing_collection"
	ReasonForced            Reason = "forced"
)

// Outcome reports what a gate check did. Persisted is false when a reseed was
// needed but the collection or tag write failed; the stored tag is then left
// untouched so the next check retries.
type Outcome struct {
	Reseeded   bool
	Reason     Reason
	StoredTag  string
	CurrentTag string
	Persisted  bool
}

// SeedFunc overwrites the governed collection with its defaults and reports
// whether the write happened.
type SeedFunc func(ctx context.Context) bool

// Gate guards one collection with a schema-version tag stored next to it.
type Gate struct {
	store      *records.Store
	collection string
	tag        string
	seed       SeedFunc
	logger     interfaces.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the gate logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithTagKey overrides the record name of the version tag. It defaults to
// "<collection>:version".
func WithTagKey(name string) Option {
	return func(g *Gate) {
		if name != "" {
			g.tag = name
		}
	}
}

// New creates a gate for the record named collection.
func New(store *records.Store, collection string, seed SeedFunc, opts ...Option) *Gate {
	g := &Gate{
		store:      store,
		collection: collection,
		tag:        collection + ":version",
		seed:       seed,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// TagKey reports the record name holding the version tag.
func (g *Gate) TagKey() string {
	return g.tag
}

// EnsureFresh reseeds the collection when the stored tag differs from
// currentTag or when the collection record is missing. Repeated calls with
// the same tag are no-ops once a reseed has been persisted.
func (g *Gate) EnsureFresh(ctx context.Context, currentTag string) Outcome {
	stored, hasTag := records.Get[string](ctx, g.store, g.tag)
	outcome := Outcome{StoredTag: stored, CurrentTag: currentTag}

	switch {
	case !hasTag:
		outcome.Reason = ReasonMissingTag
	case stored != currentTag:
		outcome.Reason = ReasonTagMismatch
	case !g.store.Exists(ctx, g.collection):
		outcome.Reason = ReasonMissingCollection
	default:
		outcome.Reason = ReasonFresh
		outcome.Persisted = true
		return outcome
	}

	return g.reseed(ctx, outcome)
}

// Force reseeds unconditionally and writes currentTag.
func (g *Gate) Force(ctx context.Context, currentTag string) Outcome {
	stored, _ := records.Get[string](ctx, g.store, g.tag)
	return g.reseed(ctx, Outcome{
		Reason:     ReasonForced,
		StoredTag:  stored,
		CurrentTag: currentTag,
	})
}

func (g *Gate) reseed(ctx context.Context, outcome Outcome) Outcome {
	outcome.Reseeded = true
	logger := logging.WithRecordKey(g.logger, g.store.Key(g.collection))

	if g.seed == nil || !g.seed(ctx) {
		logger.Warn("versiongate.reseed.failed",
			"reason", string(outcome.Reason),
			"stored_tag", outcome.StoredTag,
			"current_tag", outcome.CurrentTag,
		)
		return outcome
	}

	// the tag goes last so a failed seed is retried on the next check
	if !records.Set(ctx, g.store, g.tag, outcome.CurrentTag) {
		logger.Warn("versiongate.tag.write_failed", "current_tag", outcome.CurrentTag)
		return outcome
	}

	outcome.Persisted = true
	logger.Info("versiongate.reseeded",
		"reason", string(outcome.Reason),
		"stored_tag", outcome.StoredTag,
		"current_tag", outcome.CurrentTag,
	)
	return outcome
}
