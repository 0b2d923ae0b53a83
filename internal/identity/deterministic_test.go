package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := UUID("sitecms:article:welcome")
	second := UUID("  sitecms:article:welcome ")
	if first != second {
		t.Fatalf("expected same id for trimmed keys, got %s and %s", first, second)
	}
	if first == uuid.Nil {
		t.Fatal("expected non-nil id")
	}
	if UUID("sitecms:article:other") == first {
		t.Fatal("expected different keys to produce different ids")
	}
}

func TestUUIDBlankKey(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("expected nil uuid for blank key, got %s", got)
	}
}

func TestArticleUUIDIgnoresSlugCase(t *testing.T) {
	if ArticleUUID("Hello-World") != ArticleUUID("hello-world") {
		t.Fatal("expected case-insensitive article ids")
	}
	if ArticleUUID("hello-world") == RecordUUID("hello-world") {
		t.Fatal("expected article and record ids to live in separate namespaces")
	}
}

func TestNewTimeOrderedIsVersion7(t *testing.T) {
	a := NewTimeOrdered()
	b := NewTimeOrdered()
	if a == b {
		t.Fatal("expected unique ids")
	}
	if a.Version() != 7 {
		t.Fatalf("expected version 7, got %d", a.Version())
	}
}
