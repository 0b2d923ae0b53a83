package site

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-sitecms/internal/auth"
	"github.com/goliatone/go-sitecms/internal/identity"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/records"
	"github.com/goliatone/go-sitecms/internal/validation"
	"github.com/goliatone/go-sitecms/internal/versiongate"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// Record names inside the store namespace.
const (
	SettingsRecord = "settings"
	ArticlesRecord = "articles"
	AuthRecord     = "auth"
)

// Stored settings and articles must match their member of the site document;
// anything else reads as absent.
var (
	settingsShape = recordShape(validation.SettingsRecord)
	articlesShape = recordShape(validation.ArticlesRecord)
)

func recordShape(schema func() (*validation.Schema, error)) records.ShapeCheck {
	return func(raw []byte) error {
		compiled, err := schema()
		if err != nil {
			return err
		}
		return compiled.ValidateJSON(raw)
	}
}

// IDGenerator produces ids for new articles.
type IDGenerator func() string

// Option configures a Repository.
type Option func(*Repository)

// WithArticlesVersion sets the tag the version gate compares against.
func WithArticlesVersion(tag string) Option {
	return func(r *Repository) {
		if tag = strings.TrimSpace(tag); tag != "" {
			r.articlesVersion = tag
		}
	}
}

// WithClock overrides the clock used to date new articles.
func WithClock(clock func() time.Time) Option {
	return func(r *Repository) {
		if clock != nil {
			r.now = clock
		}
	}
}

// WithIDGenerator overrides the article id generator.
func WithIDGenerator(generator IDGenerator) Option {
	return func(r *Repository) {
		if generator != nil {
			r.id = generator
		}
	}
}

// WithHasher sets the hasher used by SetAdminPassword.
func WithHasher(hasher *auth.Hasher) Option {
	return func(r *Repository) {
		if hasher != nil {
			r.hasher = hasher
		}
	}
}

// WithLogger sets the repository logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithGateLogger sets the logger handed to the version gate.
func WithGateLogger(logger interfaces.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.gateLogger = logger
		}
	}
}

// WithDefaults replaces the compiled-in defaults.
func WithDefaults(settings func() Settings, articles func() ArticlesData) Option {
	return func(r *Repository) {
		if settings != nil {
			r.defaultSettings = settings
		}
		if articles != nil {
			r.defaultArticles = articles
		}
	}
}

// Repository persists the site aggregates: settings, the article collection
// and the admin session flag. Loads never fail; they fall back to defaults.
type Repository struct {
	store           *records.Store
	gate            *versiongate.Gate
	articlesVersion string
	gateOnce        sync.Once
	gateOutcome     versiongate.Outcome
	hasher          *auth.Hasher
	now             func() time.Time
	id              IDGenerator
	defaultSettings func() Settings
	defaultArticles func() ArticlesData
	logger          interfaces.Logger
	gateLogger      interfaces.Logger
}

// NewRepository builds a repository over store.
func NewRepository(store *records.Store, opts ...Option) *Repository {
	r := &Repository{
		store:           store,
		articlesVersion: DefaultArticlesVersion,
		hasher:          auth.NewHasher(),
		now:             time.Now,
		id:              func() string { return identity.NewTimeOrdered().String() },
		defaultSettings: DefaultSettings,
		defaultArticles: DefaultArticles,
		logger:          logging.NoOp(),
		gateLogger:      logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.gate = versiongate.New(store, ArticlesRecord, r.seedArticles, versiongate.WithLogger(r.gateLogger))
	return r
}

// ArticlesVersion reports the tag the gate enforces.
func (r *Repository) ArticlesVersion() string {
	return r.articlesVersion
}

// EnsureFresh runs the article version gate once per repository and returns
// the outcome of that single run on every call.
func (r *Repository) EnsureFresh(ctx context.Context) versiongate.Outcome {
	r.gateOnce.Do(func() {
		r.gateOutcome = r.gate.EnsureFresh(ctx, r.articlesVersion)
	})
	return r.gateOutcome
}

// ResetArticles replaces the stored articles with the defaults and rewrites
// the version tag.
func (r *Repository) ResetArticles(ctx context.Context) versiongate.Outcome {
	r.EnsureFresh(ctx)
	return r.gate.Force(ctx, r.articlesVersion)
}

func (r *Repository) seedArticles(ctx context.Context) bool {
	return records.Set(ctx, r.store, ArticlesRecord, r.defaultArticles().normalized())
}

// LoadSettings returns the stored settings or the defaults.
func (r *Repository) LoadSettings(ctx context.Context) Settings {
	if settings, ok := records.GetValid[Settings](ctx, r.store, SettingsRecord, settingsShape); ok {
		return settings
	}
	return r.defaultSettings()
}

// SaveSettings replaces the stored settings.
func (r *Repository) SaveSettings(ctx context.Context, settings Settings) bool {
	return records.Set(ctx, r.store, SettingsRecord, settings.normalized())
}

// LoadArticles returns the stored articles or the defaults, after the version
// gate has run.
func (r *Repository) LoadArticles(ctx context.Context) ArticlesData {
	r.EnsureFresh(ctx)
	if articles, ok := records.GetValid[ArticlesData](ctx, r.store, ArticlesRecord, articlesShape); ok {
		return articles
	}
	return r.defaultArticles()
}

// SaveArticles replaces the stored collection.
func (r *Repository) SaveArticles(ctx context.Context, articles ArticlesData) bool {
	r.EnsureFresh(ctx)
	return records.Set(ctx, r.store, ArticlesRecord, articles.normalized())
}

// CreateArticle appends a fresh draft and persists the collection.
func (r *Repository) CreateArticle(ctx context.Context) (Article, bool) {
	article := NewArticle(r.id(), r.now())
	articles := r.LoadArticles(ctx).clone()
	articles.Upsert(article)
	ok := r.SaveArticles(ctx, articles)
	logging.WithArticle(r.logger, article.ID).Debug("site.article.created", "persisted", ok)
	return article, ok
}

// UpdateArticle replaces the article with the same id, appending it when no
// such article exists.
func (r *Repository) UpdateArticle(ctx context.Context, article Article) bool {
	articles := r.LoadArticles(ctx).clone()
	articles.Upsert(article)
	return r.SaveArticles(ctx, articles)
}

// DeleteArticle removes the article with id. Deleting an unknown id still
// persists the collection and reports success.
func (r *Repository) DeleteArticle(ctx context.Context, id string) bool {
	articles := r.LoadArticles(ctx).clone()
	removed := articles.Delete(id)
	ok := r.SaveArticles(ctx, articles)
	logging.WithArticle(r.logger, id).Debug("site.article.deleted", "removed", removed, "persisted", ok)
	return ok
}

// GetArticle returns the article with id.
func (r *Repository) GetArticle(ctx context.Context, id string) (Article, bool) {
	return r.LoadArticles(ctx).Find(id)
}

// IsAuthenticated reports whether the admin session flag is present.
func (r *Repository) IsAuthenticated(ctx context.Context) bool {
	return r.store.Exists(ctx, AuthRecord)
}

// SetAuthenticated writes the flag, or removes it when authenticated is false.
func (r *Repository) SetAuthenticated(ctx context.Context, authenticated bool) bool {
	if !authenticated {
		return r.store.Remove(ctx, AuthRecord)
	}
	return records.Set(ctx, r.store, AuthRecord, true)
}

// VerifyPassword checks candidate against the hash held by settings.
func (r *Repository) VerifyPassword(candidate string, settings Settings) bool {
	return VerifyPassword(candidate, settings)
}

// VerifyPassword checks candidate against the hash held by settings.
func VerifyPassword(candidate string, settings Settings) bool {
	return auth.Verify(settings.AdminPasswordHash, candidate)
}

// SetAdminPassword hashes password and stores it in the settings.
func (r *Repository) SetAdminPassword(ctx context.Context, password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	encoded, err := r.hasher.Hash(password)
	if err != nil {
		return err
	}
	settings := r.LoadSettings(ctx)
	settings.AdminPasswordHash = encoded
	if !r.SaveSettings(ctx, settings) {
		return ErrSettingsWrite
	}
	r.logger.Info("site.admin_password.updated", "algorithm", r.hasher.Algorithm())
	return nil
}

// Login verifies candidate and sets the session flag on success.
func (r *Repository) Login(ctx context.Context, candidate string) bool {
	if !r.VerifyPassword(candidate, r.LoadSettings(ctx)) {
		r.logger.Warn("site.login.rejected")
		return false
	}
	return r.SetAuthenticated(ctx, true)
}

// Logout clears the session flag.
func (r *Repository) Logout(ctx context.Context) bool {
	return r.SetAuthenticated(ctx, false)
}
