package cms

import (
	"context"
	"strings"

	sitecmd "github.com/goliatone/go-sitecms/internal/commands/site"
	"github.com/goliatone/go-sitecms/internal/di"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/markup"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// Settings exports the site settings aggregate.
type Settings = site.Settings

// Article exports a single blog entry.
type Article = site.Article

// ArticlesData exports the persisted article collection.
type ArticlesData = site.ArticlesData

// Document exports the combined import/export document.
type Document = site.Document

// Block exports a parsed content block.
type Block = markup.Block

// SiteRepository exports the content repository.
type SiteRepository = *site.Repository

// Option exports the container options accepted by New.
type Option = di.Option

var (
	WithLoggerProvider    = di.WithLoggerProvider
	WithLogWriter         = di.WithLogWriter
	WithBackend           = di.WithBackend
	WithCache             = di.WithCache
	WithClock             = di.WithClock
	WithIDGenerator       = di.WithIDGenerator
	WithCommandRegistry   = di.WithCommandRegistry
	WithArticleFileLoader = di.WithArticleFileLoader
)

// Module is the top level site runtime façade.
type Module struct {
	container *di.Container
	logger    interfaces.Logger
}

// New constructs a module from cfg and optional container overrides.
func New(ctx context.Context, cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{
		container: container,
		logger:    logging.MarkupLogger(container.LoggerProvider()),
	}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Site returns the content repository.
func (m *Module) Site() SiteRepository {
	return m.container.SiteRepository()
}

// Commands returns the site command handlers.
func (m *Module) Commands() *sitecmd.HandlerSet {
	return m.container.Commands()
}

// Parse converts article text into content blocks.
func (m *Module) Parse(content string) []Block {
	return markup.Parse(content)
}

// RenderContent parses content and renders the blocks as sanitized HTML.
func (m *Module) RenderContent(content string) string {
	return m.container.Renderer().RenderContent(content)
}

// RenderArticle renders the article whose id or slug equals ref.
func (m *Module) RenderArticle(ctx context.Context, ref string) (string, bool) {
	article, ok := m.FindArticle(ctx, ref)
	if !ok {
		m.logger.Debug("markup.article.not_found", "ref", ref)
		return "", false
	}
	return m.RenderContent(article.Content), true
}

// FindArticle looks ref up as an id first and then as a slug.
func (m *Module) FindArticle(ctx context.Context, ref string) (Article, bool) {
	ref = strings.TrimSpace(ref)
	articles := m.Site().LoadArticles(ctx)
	if article, ok := articles.Find(ref); ok {
		return article, true
	}
	return articles.FindBySlug(ref)
}

// Preview renders content as full markdown for the admin preview pane.
func (m *Module) Preview(content string) (string, error) {
	return m.container.Previewer().Render(content)
}

// ImportArticleFiles upserts the articles found in markdown files under dir.
func (m *Module) ImportArticleFiles(ctx context.Context, dir string) error {
	return m.Commands().ImportFiles.Execute(ctx, sitecmd.ImportArticleFilesCommand{Directory: dir})
}

// Close releases the storage backend.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
