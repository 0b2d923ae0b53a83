package site

import (
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":          "hello-world",
		"Hello World!! 2":      "hello-world-2",
		"  --Already--Slug-- ": "already-slug",
		"C'est la vie":         "c-est-la-vie",
		"Café au lait":         "café-au-lait",
		"!!!":                  "",
		"":                     "",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestValidSlugAcceptsSlugifyOutput(t *testing.T) {
	titles := []string{"Hello World", "ラーメン ʰello", "Straße 𝐀𝐁", "Ünïcödé ２０２４", "ŉ ǅ"}
	for _, title := range titles {
		slug := Slugify(title)
		if !ValidSlug(slug) {
			t.Fatalf("Slugify(%q) = %q is not a valid slug", title, slug)
		}
		if err := validateSlug(slug); err != nil {
			t.Fatalf("validateSlug(%q): %v", slug, err)
		}
		if got := NormalizeSlug(slug); got != slug {
			t.Fatalf("NormalizeSlug(%q) = %q, want it unchanged", slug, got)
		}
	}

	for _, value := range []string{"", "Upper", "a--b", "-a", "a-", "a b", "a_b"} {
		if ValidSlug(value) {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}

func TestNormalizeSlug(t *testing.T) {
	cases := map[string]string{
		"C'est La Vie":  "cest-la-vie",
		" snake_case ":  "snake-case",
		"Ramen ラーメン":    "ramen-ラーメン",
		"ラーメン-ʰello":    "ラーメン-ʰello",
		"already-valid": "already-valid",
		"!!!":           "",
	}
	for input, want := range cases {
		if got := NormalizeSlug(input); got != want {
			t.Fatalf("NormalizeSlug(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestRetitleKeepsSlugInStep(t *testing.T) {
	article := NewArticle("a1", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	article.Retitle("Hello World")
	if article.Slug != "hello-world" {
		t.Fatalf("expected derived slug, got %q", article.Slug)
	}

	article.Retitle("Hello World!! 2")
	if article.Slug != "hello-world-2" {
		t.Fatalf("expected slug to follow title, got %q", article.Slug)
	}
	if article.Title != "Hello World!! 2" {
		t.Fatalf("expected title updated, got %q", article.Title)
	}
}

func TestRetitleKeepsManualSlug(t *testing.T) {
	article := NewArticle("a1", time.Now())
	article.Retitle("Hello World")
	article.SetSlug("custom-name")
	if article.Slug != "custom-name" {
		t.Fatalf("expected manual slug, got %q", article.Slug)
	}

	article.Retitle("Something Else")
	article.Retitle("Yet Another Title")
	if article.Slug != "custom-name" {
		t.Fatalf("expected manual slug to stick, got %q", article.Slug)
	}

	article.SetSlug("  ")
	if article.Slug != "yet-another-title" {
		t.Fatalf("expected blank slug to hand control back to title, got %q", article.Slug)
	}
}

func TestNewArticle(t *testing.T) {
	article := NewArticle("id-1", time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC))
	if article.ID != "id-1" || article.Status != StatusDraft || article.Date != "2024-02-29" {
		t.Fatalf("unexpected article %+v", article)
	}
	if article.Title != "" || article.Slug != "" || article.Content != "" {
		t.Fatalf("expected empty fields, got %+v", article)
	}
}

func TestArticleValidate(t *testing.T) {
	valid := Article{ID: "a", Slug: "ok-slug", Date: "2024-01-01", Status: StatusTrashed}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid article, got %v", err)
	}

	cases := map[string]Article{
		"missing id":  {Slug: "ok", Status: StatusDraft},
		"bad status":  {ID: "a", Status: "archived"},
		"no status":   {ID: "a"},
		"bad slug":    {ID: "a", Slug: "Bad Slug", Status: StatusDraft},
		"double dash": {ID: "a", Slug: "bad--slug", Status: StatusDraft},
		"bad date":    {ID: "a", Date: "June 1", Status: StatusDraft},
	}
	for name, article := range cases {
		t.Run(name, func(t *testing.T) {
			if err := article.Validate(); err == nil {
				t.Fatalf("expected validation error for %+v", article)
			}
		})
	}
}

func TestArticlesDataHelpers(t *testing.T) {
	data := ArticlesData{Articles: []Article{
		{ID: "x", Slug: "ex", Status: StatusPublished},
		{ID: "y", Slug: "why", Status: StatusDraft},
		{ID: "z", Slug: "zed", Status: StatusTrashed},
	}}

	if got, ok := data.Find("y"); !ok || got.Slug != "why" {
		t.Fatalf("Find(y) = %+v, %v", got, ok)
	}
	if _, ok := data.Find("nope"); ok {
		t.Fatal("expected Find of unknown id to fail")
	}
	if got, ok := data.FindBySlug("zed"); !ok || got.ID != "z" {
		t.Fatalf("FindBySlug(zed) = %+v, %v", got, ok)
	}
	if published := data.Published(); len(published) != 1 || published[0].ID != "x" {
		t.Fatalf("expected only x published, got %+v", published)
	}

	data.Upsert(Article{ID: "y", Slug: "why-2", Status: StatusPublished})
	if data.Articles[1].Slug != "why-2" || len(data.Articles) != 3 {
		t.Fatalf("expected in-place replace, got %+v", data.Articles)
	}
	data.Upsert(Article{ID: "w", Status: StatusDraft})
	if data.Articles[3].ID != "w" {
		t.Fatalf("expected append, got %+v", data.Articles)
	}

	if removed := data.Delete("x"); removed != 1 {
		t.Fatalf("expected one removal, got %d", removed)
	}
	if removed := data.Delete("x"); removed != 0 {
		t.Fatalf("expected no removal, got %d", removed)
	}
	if data.Articles[0].ID != "y" {
		t.Fatalf("expected order preserved, got %+v", data.Articles)
	}
}

func TestSettingsHelpers(t *testing.T) {
	settings := Settings{
		Features: map[string]bool{"blog": true, "newsletter": false},
		Pages: []PageConfig{
			{ID: "c", Order: 3, Enabled: true},
			{ID: "a", Order: 1, Enabled: true},
			{ID: "hidden", Order: 0, Enabled: false},
			{ID: "b", Order: 1, Enabled: true},
		},
	}
	if !settings.FeatureEnabled("blog") || settings.FeatureEnabled("newsletter") || settings.FeatureEnabled("unknown") {
		t.Fatal("unexpected feature toggles")
	}
	pages := settings.EnabledPages()
	ids := []string{pages[0].ID, pages[1].ID, pages[2].ID}
	if len(pages) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Fatalf("unexpected page order %v", ids)
	}
}

func TestDefaultArticlesAreStableAndValid(t *testing.T) {
	first := DefaultArticles()
	second := DefaultArticles()
	seen := map[string]bool{}
	for i, article := range first.Articles {
		if article.ID != second.Articles[i].ID {
			t.Fatalf("expected stable id for %s", article.Slug)
		}
		if err := article.Validate(); err != nil {
			t.Fatalf("default article %s invalid: %v", article.Slug, err)
		}
		if seen[article.ID] {
			t.Fatalf("duplicate default id %s", article.ID)
		}
		seen[article.ID] = true
	}
}
