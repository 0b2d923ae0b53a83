package versiongate_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-sitecms/internal/adapters/storage"
	"github.com/goliatone/go-sitecms/internal/records"
	"github.com/goliatone/go-sitecms/internal/versiongate"
)

type collection struct {
	Items []string `json:"items"`
}

var defaults = collection{Items: []string{"default-a", "default-b"}}

func newGate(store *records.Store, seeds *int) *versiongate.Gate {
	return versiongate.New(store, "articles", func(ctx context.Context) bool {
		*seeds++
		return records.Set(ctx, store, "articles", defaults)
	})
}

func TestEnsureFreshSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := records.New(storage.NewMemoryBackend())
	seeds := 0
	gate := newGate(store, &seeds)

	outcome := gate.EnsureFresh(ctx, "v3")
	if !outcome.Reseeded || outcome.Reason != versiongate.ReasonMissingTag || !outcome.Persisted {
		t.Fatalf("unexpected outcome %+v", outcome)
	}

	tag, ok := records.Get[string](ctx, store, gate.TagKey())
	if !ok || tag != "v3" {
		t.Fatalf("expected stored tag v3, got %q (present=%v)", tag, ok)
	}

	again := gate.EnsureFresh(ctx, "v3")
	if again.Reseeded || again.Reason != versiongate.ReasonFresh {
		t.Fatalf("expected idempotent second check, got %+v", again)
	}
	if seeds != 1 {
		t.Fatalf("expected a single seed, got %d", seeds)
	}
}

func TestEnsureFreshReseedsOnTagMismatch(t *testing.T) {
	ctx := context.Background()
	store := records.New(storage.NewMemoryBackend())
	records.Set(ctx, store, "articles", collection{Items: []string{"stale"}})
	records.Set(ctx, store, "articles:version", "v1")

	seeds := 0
	outcome := newGate(store, &seeds).EnsureFresh(ctx, "v3")
	if outcome.Reason != versiongate.ReasonTagMismatch || outcome.StoredTag != "v1" || !outcome.Persisted {
		t.Fatalf("unexpected outcome %+v", outcome)
	}

	got, _ := records.Get[collection](ctx, store, "articles")
	if len(got.Items) != 2 || got.Items[0] != "default-a" {
		t.Fatalf("expected defaults after reseed, got %+v", got)
	}
	tag, _ := records.Get[string](ctx, store, "articles:version")
	if tag != "v3" {
		t.Fatalf("expected tag rewritten to v3, got %q", tag)
	}
}

func TestEnsureFreshReseedsMissingCollection(t *testing.T) {
	ctx := context.Background()
	store := records.New(storage.NewMemoryBackend())
	records.Set(ctx, store, "articles:version", "v3")

	seeds := 0
	outcome := newGate(store, &seeds).EnsureFresh(ctx, "v3")
	if outcome.Reason != versiongate.ReasonMissingCollection || !outcome.Reseeded {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if !store.Exists(ctx, "articles") {
		t.Fatal("expected collection to be reseeded")
	}
}

func TestEnsureFreshKeepsMatchingCollection(t *testing.T) {
	ctx := context.Background()
	store := records.New(storage.NewMemoryBackend())
	user := collection{Items: []string{"mine"}}
	records.Set(ctx, store, "articles", user)
	records.Set(ctx, store, "articles:version", "v3")

	seeds := 0
	outcome := newGate(store, &seeds).EnsureFresh(ctx, "v3")
	if outcome.Reseeded || seeds != 0 {
		t.Fatalf("expected no reseed, got %+v (seeds=%d)", outcome, seeds)
	}
	got, _ := records.Get[collection](ctx, store, "articles")
	if len(got.Items) != 1 || got.Items[0] != "mine" {
		t.Fatalf("expected stored collection untouched, got %+v", got)
	}
}

func TestEnsureFreshFailedSeedLeavesTag(t *testing.T) {
	ctx := context.Background()
	store := records.New(storage.NewMemoryBackend())
	records.Set(ctx, store, "articles:version", "v1")

	gate := versiongate.New(store, "articles", func(context.Context) bool { return false })
	outcome := gate.EnsureFresh(ctx, "v3")
	if !outcome.Reseeded || outcome.Persisted {
		t.Fatalf("expected failed reseed, got %+v", outcome)
	}
	tag, _ := records.Get[string](ctx, store, "articles:version")
	if tag != "v1" {
		t.Fatalf("expected tag untouched after failed seed, got %q", tag)
	}
}

func TestEnsureFreshUnavailableStore(t *testing.T) {
	ctx := context.Background()
	store := records.New(storage.UnavailableBackend{})
	seeds := 0
	outcome := newGate(store, &seeds).EnsureFresh(ctx, "v3")
	if outcome.Persisted {
		t.Fatalf("expected unpersisted outcome, got %+v", outcome)
	}
}

func TestForceReseedsMatchingTag(t *testing.T) {
	ctx := context.Background()
	store := records.New(storage.NewMemoryBackend())
	records.Set(ctx, store, "articles", collection{Items: []string{"mine"}})
	records.Set(ctx, store, "articles:version", "v3")

	seeds := 0
	outcome := newGate(store, &seeds).Force(ctx, "v3")
	if outcome.Reason != versiongate.ReasonForced || !outcome.Persisted || seeds != 1 {
		t.Fatalf("unexpected outcome %+v (seeds=%d)", outcome, seeds)
	}
}
