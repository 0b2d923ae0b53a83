package di

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-sitecms/internal/adapters/storage"
	"github.com/goliatone/go-sitecms/internal/auth"
	sitecmd "github.com/goliatone/go-sitecms/internal/commands/site"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/logging/console"
	"github.com/goliatone/go-sitecms/internal/logging/gologger"
	"github.com/goliatone/go-sitecms/internal/markdown"
	"github.com/goliatone/go-sitecms/internal/records"
	"github.com/goliatone/go-sitecms/internal/render"
	"github.com/goliatone/go-sitecms/internal/runtimeconfig"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	pkgstorage "github.com/goliatone/go-sitecms/pkg/storage"
)

// Container wires the site runtime: logging, the record backend, the content
// repository, rendering and the command handlers.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer

	backend       pkgstorage.Backend
	closeBackend  func() error
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	clock    func() time.Time
	idGen    site.IDGenerator
	registry sitecmd.CommandRegistry
	loader   sitecmd.ArticleFileLoader

	store     *records.Store
	hasher    *auth.Hasher
	repo      *site.Repository
	renderer  *render.Renderer
	previewer *markdown.Previewer
	commands  *sitecmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLogWriter sets where the console provider writes. Defaults to stderr.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		if w != nil {
			c.logWriter = w
		}
	}
}

// WithBackend overrides the record backend selected by the storage config.
func WithBackend(backend pkgstorage.Backend) Option {
	return func(c *Container) {
		c.backend = backend
	}
}

// WithCache overrides the record cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithClock overrides the clock used to date new articles.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		c.clock = clock
	}
}

// WithIDGenerator overrides how new article ids are produced.
func WithIDGenerator(generator site.IDGenerator) Option {
	return func(c *Container) {
		c.idGen = generator
	}
}

// WithCommandRegistry registers the site command handlers with reg.
func WithCommandRegistry(reg sitecmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// WithArticleFileLoader replaces the markdown file loader used by article imports.
func WithArticleFileLoader(loader sitecmd.ArticleFileLoader) Option {
	return func(c *Container) {
		c.loader = loader
	}
}

// NewContainer validates cfg and builds every service. Close releases the
// storage connection.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Storage.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:       cfg,
		logWriter:    os.Stderr,
		cacheTTL:     cacheTTL,
		closeBackend: func() error { return nil },
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureStorage(ctx); err != nil {
		return nil, err
	}
	c.configureServices()
	if err := c.configureCommands(); err != nil {
		_ = c.Close()
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "sitecms").Debug("container.ready",
		"driver", c.Config.Storage.Driver,
		"namespace", c.store.Namespace(),
		"articles_version", c.repo.ArticlesVersion(),
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level, _ := console.ParseLevel(cfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   c.logWriter,
			MinLevel: &level,
		})
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Features.RecordCache {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStorage(ctx context.Context) error {
	if c.backend != nil {
		return nil
	}

	openOpts := []storage.OpenOption{storage.WithLogger(logging.StorageLogger(c.loggerProvider))}
	if c.cacheService != nil {
		openOpts = append(openOpts, storage.WithRecordCache(c.cacheService, c.keySerializer))
	}

	backend, closeFn, err := storage.Open(ctx, pkgstorage.Config{
		Name:     "site",
		Driver:   c.Config.Storage.Driver,
		DSN:      c.Config.Storage.DSN,
		ReadOnly: c.Config.Storage.ReadOnly,
	}, openOpts...)
	if err != nil {
		return err
	}
	c.backend = backend
	c.closeBackend = closeFn
	return nil
}

func (c *Container) configureServices() {
	c.store = records.New(c.backend,
		records.WithNamespace(c.Config.Storage.Namespace),
		records.WithLogger(logging.RecordsLogger(c.loggerProvider)),
	)

	c.hasher = auth.NewHasher(
		auth.WithAlgorithm(c.Config.Auth.Algorithm),
		auth.WithBcryptCost(c.Config.Auth.BcryptCost),
		auth.WithScryptN(c.Config.Auth.ScryptN),
	)

	repoOpts := []site.Option{
		site.WithArticlesVersion(c.Config.Content.ArticlesVersion),
		site.WithHasher(c.hasher),
		site.WithLogger(logging.SiteLogger(c.loggerProvider)),
		site.WithGateLogger(logging.VersionGateLogger(c.loggerProvider)),
	}
	if c.clock != nil {
		repoOpts = append(repoOpts, site.WithClock(c.clock))
	}
	if c.idGen != nil {
		repoOpts = append(repoOpts, site.WithIDGenerator(c.idGen))
	}
	c.repo = site.NewRepository(c.store, repoOpts...)

	c.renderer = render.New(render.WithAllowedInline(c.Config.Render.AllowedInline...))

	md := c.Config.Markdown
	c.previewer = markdown.NewPreviewer(markdown.PreviewOptions{
		Extensions: md.Extensions,
		HardWraps:  md.HardWraps,
		Unsafe:     md.Unsafe,
	})

	if c.loader == nil {
		c.loader = func(ctx context.Context, dir string, recursive bool) ([]site.Article, error) {
			loader := markdown.NewLoader(os.DirFS(dir), markdown.LoaderConfig{
				Pattern:   md.Pattern,
				Recursive: recursive || md.Recursive,
			})
			return loader.LoadDirectory(ctx, ".")
		}
	}
}

func (c *Container) configureCommands() error {
	set, err := sitecmd.RegisterSiteCommands(c.registry, c.repo, c.loggerProvider,
		sitecmd.WithArticleFileLoader(c.loader),
	)
	if err != nil {
		return err
	}
	c.commands = set
	return nil
}

// LoggerProvider returns the configured provider, nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Backend returns the record backend.
func (c *Container) Backend() pkgstorage.Backend {
	return c.backend
}

// Store returns the namespaced record store.
func (c *Container) Store() *records.Store {
	return c.store
}

// SiteRepository returns the content repository.
func (c *Container) SiteRepository() *site.Repository {
	return c.repo
}

// Hasher returns the admin password hasher.
func (c *Container) Hasher() *auth.Hasher {
	return c.hasher
}

// Renderer returns the block renderer.
func (c *Container) Renderer() *render.Renderer {
	return c.renderer
}

// Previewer returns the full markdown previewer.
func (c *Container) Previewer() *markdown.Previewer {
	return c.previewer
}

// Commands returns the site command handlers.
func (c *Container) Commands() *sitecmd.HandlerSet {
	return c.commands
}

// Close releases the storage backend.
func (c *Container) Close() error {
	if c.closeBackend == nil {
		return nil
	}
	closeFn := c.closeBackend
	c.closeBackend = nil
	return closeFn()
}
