package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ArticleUUID is the stable id for an article known by slug, used for seeded
// defaults and for files imported without an explicit id.
func ArticleUUID(slug string) uuid.UUID {
	return UUID("sitecms:article:" + strings.ToLower(strings.TrimSpace(slug)))
}

// RecordUUID is the row id of a stored record key.
func RecordUUID(key string) uuid.UUID {
	return UUID("sitecms:record:" + strings.TrimSpace(key))
}

// NewTimeOrdered returns a fresh time-ordered UUIDv7, falling back to a
// random UUID if the clock source fails.
func NewTimeOrdered() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
