package markdown

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-sitecms/internal/identity"
	"github.com/goliatone/go-sitecms/internal/site"
)

const launchPost = `---
title: Spring Launch
date: 2024-05-01
category: News
excerpt: Everything new this season.
---
## What changed

We shipped **three** features.
`

func TestParseFrontMatter(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte(launchPost))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta.Title != "Spring Launch" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
	if meta.Date.Format(site.DateLayout) != "2024-05-01" {
		t.Fatalf("unexpected date %v", meta.Date)
	}
	if !strings.Contains(string(body), "## What changed") {
		t.Fatalf("body not returned: %q", body)
	}
}

func TestBuildArticleDerivesMissingFields(t *testing.T) {
	article, err := BuildArticle("launch.md", []byte(launchPost), time.Now())
	if err != nil {
		t.Fatalf("BuildArticle: %v", err)
	}

	if article.Slug != "spring-launch" {
		t.Fatalf("expected slug from title, got %q", article.Slug)
	}
	if article.ID != identity.ArticleUUID("spring-launch").String() {
		t.Fatalf("expected id derived from slug, got %q", article.ID)
	}
	if article.Status != site.StatusPublished {
		t.Fatalf("expected published status, got %q", article.Status)
	}
	if article.Date != "2024-05-01" || article.Category != "News" || article.Excerpt != "Everything new this season." {
		t.Fatalf("unexpected metadata %+v", article)
	}
	if article.Content != "## What changed\n\nWe shipped **three** features." {
		t.Fatalf("unexpected content %q", article.Content)
	}
}

func TestBuildArticleExplicitFields(t *testing.T) {
	source := "---\nid: post-7\ntitle: Notes\nslug: field-notes\nsummary: Short\ndraft: true\n---\nbody\n"
	modified := time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC)

	article, err := BuildArticle("notes.md", []byte(source), modified)
	if err != nil {
		t.Fatalf("BuildArticle: %v", err)
	}
	if article.ID != "post-7" || article.Slug != "field-notes" {
		t.Fatalf("explicit id and slug not kept: %+v", article)
	}
	if article.Excerpt != "Short" {
		t.Fatalf("expected summary as excerpt, got %q", article.Excerpt)
	}
	if article.Status != site.StatusDraft {
		t.Fatalf("expected draft, got %q", article.Status)
	}
	if article.Date != "2024-02-03" {
		t.Fatalf("expected modification date, got %q", article.Date)
	}
}

func TestBuildArticleErrors(t *testing.T) {
	if _, err := BuildArticle("a.md", []byte("---\ncategory: x\n---\nbody"), time.Now()); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := BuildArticle("b.md", []byte("---\ntitle: A\nstatus: archived\n---\nbody"), time.Now()); !errors.Is(err, ErrInvalidArticle) {
		t.Fatalf("expected ErrInvalidArticle, got %v", err)
	}
}

func TestLoaderLoadDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"b.md":        {Data: []byte("---\ntitle: Beta\ndate: 2024-01-02\n---\nbeta")},
		"a.md":        {Data: []byte("---\ntitle: Alpha\ndate: 2024-01-01\n---\nalpha")},
		"notes.txt":   {Data: []byte("ignored")},
		"nested/c.md": {Data: []byte("---\ntitle: Gamma\ndate: 2024-01-03\n---\ngamma")},
	}

	flat, err := NewLoader(fsys, LoaderConfig{}).LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(flat) != 2 || flat[0].Title != "Alpha" || flat[1].Title != "Beta" {
		t.Fatalf("unexpected flat load %+v", flat)
	}

	deep, err := NewLoader(fsys, LoaderConfig{Recursive: true}).LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("LoadDirectory recursive: %v", err)
	}
	if len(deep) != 3 || deep[2].Title != "Gamma" {
		t.Fatalf("unexpected recursive load %+v", deep)
	}
}

func TestLoaderRejectsDuplicateIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"one.md": {Data: []byte("---\ntitle: Same Title\ndate: 2024-01-01\n---\none")},
		"two.md": {Data: []byte("---\ntitle: Same Title\ndate: 2024-01-02\n---\ntwo")},
	}

	_, err := NewLoader(fsys, LoaderConfig{}).LoadDirectory(context.Background(), ".")
	if !errors.Is(err, ErrDuplicateArticle) {
		t.Fatalf("expected ErrDuplicateArticle, got %v", err)
	}
}

func TestLoadArticlesFromDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "launch.md"), []byte(launchPost), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	articles, err := LoadArticles(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadArticles: %v", err)
	}
	if len(articles) != 1 || articles[0].Slug != "spring-launch" {
		t.Fatalf("unexpected articles %+v", articles)
	}
}

func TestLoaderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLoader(fstest.MapFS{}, LoaderConfig{}).LoadDirectory(ctx, "."); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
