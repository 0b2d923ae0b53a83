package cms_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cms "github.com/goliatone/go-sitecms"
	"github.com/goliatone/go-sitecms/internal/identity"
	"github.com/goliatone/go-sitecms/internal/markup"
)

func newModule(t *testing.T, opts ...cms.Option) *cms.Module {
	t.Helper()
	module, err := cms.New(context.Background(), cms.DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("cms.New: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	return module
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := cms.DefaultConfig()
	cfg.Content.ArticlesVersion = ""

	if _, err := cms.New(context.Background(), cfg); !errors.Is(err, cms.ErrArticlesVersionRequired) {
		t.Fatalf("expected ErrArticlesVersionRequired, got %v", err)
	}
}

func TestModuleRenderArticleBySlugAndID(t *testing.T) {
	ctx := context.Background()
	module := newModule(t)

	bySlug, ok := module.RenderArticle(ctx, "welcome-to-our-new-site")
	if !ok {
		t.Fatal("expected article to be found by slug")
	}
	for _, want := range []string{"<h2>A fresh start</h2>", "<strong>simple</strong>", "<p><strong>Thanks for visiting</strong></p>"} {
		if !strings.Contains(bySlug, want) {
			t.Fatalf("expected %q in %s", want, bySlug)
		}
	}

	byID, ok := module.RenderArticle(ctx, identity.ArticleUUID("welcome-to-our-new-site").String())
	if !ok || byID != bySlug {
		t.Fatalf("expected identical render by id, got %q (ok=%v)", byID, ok)
	}

	if _, ok := module.RenderArticle(ctx, "missing"); ok {
		t.Fatal("expected unknown ref to be reported")
	}
}

func TestModuleParse(t *testing.T) {
	module := newModule(t)

	blocks := module.Parse("## Title\n\n- a\n- b")
	if len(blocks) != 2 || blocks[0].Kind != markup.KindHeading2 || blocks[0].Text != "Title" || blocks[1].Kind != markup.KindList {
		t.Fatalf("unexpected blocks %+v", blocks)
	}
}

func TestModulePreview(t *testing.T) {
	module := newModule(t)

	html, err := module.Preview("# Hello\n\n| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !strings.Contains(html, "<table>") || !strings.Contains(html, `<h1 id="hello">Hello</h1>`) {
		t.Fatalf("unexpected preview %s", html)
	}
}

func TestModuleImportArticleFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	post := "---\ntitle: Studio News\nslug: studio-news\ndate: 2024-07-01\nstatus: draft\n---\n## Update\n\nWe moved."
	if err := os.WriteFile(filepath.Join(dir, "news.md"), []byte(post), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	module := newModule(t)
	if err := module.ImportArticleFiles(ctx, dir); err != nil {
		t.Fatalf("ImportArticleFiles: %v", err)
	}

	article, ok := module.FindArticle(ctx, "studio-news")
	if !ok {
		t.Fatal("expected imported article")
	}
	if article.Status != "draft" {
		t.Fatalf("expected draft status, got %q", article.Status)
	}
	if got := len(module.Site().LoadArticles(ctx).Articles); got != 4 {
		t.Fatalf("expected defaults plus one import, got %d", got)
	}
}

func TestModuleExportImportThroughSite(t *testing.T) {
	ctx := context.Background()
	source := newModule(t)
	target := newModule(t)

	var buf bytes.Buffer
	if err := source.Site().WriteExport(ctx, &buf); err != nil {
		t.Fatalf("WriteExport: %v", err)
	}
	if err := target.Site().Import(ctx, buf.Bytes()); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if source.Site().Export(ctx) != target.Site().Export(ctx) {
		t.Fatal("expected identical exports after import")
	}
}
