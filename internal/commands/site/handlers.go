package sitecmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/markdown"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/internal/versiongate"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const (
	importOperation            = "site.import"
	exportOperation            = "site.export"
	deleteArticleOperation     = "site.delete_article"
	resetArticlesOperation     = "site.reset_articles"
	setAdminPasswordOperation  = "site.set_admin_password"
	importArticleFileOperation = "site.import_article_files"
)

var (
	ErrDeleteNotPersisted  = errors.New("site command: article delete not persisted")
	ErrResetNotPersisted   = errors.New("site command: article reset not persisted")
	ErrArticleNotPersisted = errors.New("site command: article write not persisted")
)

var (
	_ command.Commander[ImportSiteCommand]         = (*ImportSiteHandler)(nil)
	_ command.Commander[ExportSiteCommand]         = (*ExportSiteHandler)(nil)
	_ command.Commander[DeleteArticleCommand]      = (*DeleteArticleHandler)(nil)
	_ command.Commander[ResetArticlesCommand]      = (*ResetArticlesHandler)(nil)
	_ command.Commander[SetAdminPasswordCommand]   = (*SetAdminPasswordHandler)(nil)
	_ command.Commander[ImportArticleFilesCommand] = (*ImportArticleFilesHandler)(nil)
)

// Service is the part of the site repository the handlers drive.
type Service interface {
	Import(ctx context.Context, raw []byte) error
	WriteExport(ctx context.Context, w io.Writer) error
	DeleteArticle(ctx context.Context, id string) bool
	ResetArticles(ctx context.Context) versiongate.Outcome
	SetAdminPassword(ctx context.Context, password string) error
	UpdateArticle(ctx context.Context, article site.Article) bool
}

// ArticleFileLoader reads the markdown articles under dir.
type ArticleFileLoader func(ctx context.Context, dir string, recursive bool) ([]site.Article, error)

// LoadArticleFiles reads *.md files from the host filesystem.
func LoadArticleFiles(ctx context.Context, dir string, recursive bool) ([]site.Article, error) {
	loader := markdown.NewLoader(os.DirFS(dir), markdown.LoaderConfig{Recursive: recursive})
	return loader.LoadDirectory(ctx, ".")
}

func baseLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}

// ImportSiteHandler validates and applies an import document.
type ImportSiteHandler struct {
	inner *commands.Handler[ImportSiteCommand]
}

// NewImportSiteHandler creates a handler bound to service.
func NewImportSiteHandler(service Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportSiteCommand]) *ImportSiteHandler {
	logger = baseLogger(logger)
	exec := func(ctx context.Context, msg ImportSiteCommand) error {
		return service.Import(ctx, msg.Document)
	}
	handlerOpts := []commands.HandlerOption[ImportSiteCommand]{
		commands.WithLogger[ImportSiteCommand](logger),
		commands.WithOperation[ImportSiteCommand](importOperation),
		commands.WithMessageFields(func(msg ImportSiteCommand) map[string]any {
			return map[string]any{"document_bytes": len(msg.Document)}
		}),
	}
	return &ImportSiteHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[ImportSiteCommand].
func (h *ImportSiteHandler) Execute(ctx context.Context, msg ImportSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ExportSiteHandler writes the export document.
type ExportSiteHandler struct {
	inner *commands.Handler[ExportSiteCommand]
}

// NewExportSiteHandler creates a handler bound to service.
func NewExportSiteHandler(service Service, logger interfaces.Logger, opts ...commands.HandlerOption[ExportSiteCommand]) *ExportSiteHandler {
	logger = baseLogger(logger)
	exec := func(ctx context.Context, msg ExportSiteCommand) error {
		return service.WriteExport(ctx, msg.Writer)
	}
	handlerOpts := []commands.HandlerOption[ExportSiteCommand]{
		commands.WithLogger[ExportSiteCommand](logger),
		commands.WithOperation[ExportSiteCommand](exportOperation),
	}
	return &ExportSiteHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[ExportSiteCommand].
func (h *ExportSiteHandler) Execute(ctx context.Context, msg ExportSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteArticleHandler hard-deletes one article.
type DeleteArticleHandler struct {
	inner *commands.Handler[DeleteArticleCommand]
}

// NewDeleteArticleHandler creates a handler bound to service.
func NewDeleteArticleHandler(service Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteArticleCommand]) *DeleteArticleHandler {
	logger = baseLogger(logger)
	exec := func(ctx context.Context, msg DeleteArticleCommand) error {
		if !service.DeleteArticle(ctx, msg.ID) {
			return ErrDeleteNotPersisted
		}
		return nil
	}
	handlerOpts := []commands.HandlerOption[DeleteArticleCommand]{
		commands.WithLogger[DeleteArticleCommand](logger),
		commands.WithOperation[DeleteArticleCommand](deleteArticleOperation),
		commands.WithMessageFields(func(msg DeleteArticleCommand) map[string]any {
			return map[string]any{"article_id": msg.ID}
		}),
	}
	return &DeleteArticleHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[DeleteArticleCommand].
func (h *DeleteArticleHandler) Execute(ctx context.Context, msg DeleteArticleCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ResetArticlesHandler reseeds the article collection.
type ResetArticlesHandler struct {
	inner *commands.Handler[ResetArticlesCommand]
}

// NewResetArticlesHandler creates a handler bound to service.
func NewResetArticlesHandler(service Service, logger interfaces.Logger, opts ...commands.HandlerOption[ResetArticlesCommand]) *ResetArticlesHandler {
	logger = baseLogger(logger)
	exec := func(ctx context.Context, _ ResetArticlesCommand) error {
		outcome := service.ResetArticles(ctx)
		if !outcome.Persisted {
			return ErrResetNotPersisted
		}
		logging.WithFields(logger, map[string]any{
			"stored_tag":  outcome.StoredTag,
			"current_tag": outcome.CurrentTag,
		}).Info("site.command.reset_articles.completed")
		return nil
	}
	handlerOpts := []commands.HandlerOption[ResetArticlesCommand]{
		commands.WithLogger[ResetArticlesCommand](logger),
		commands.WithOperation[ResetArticlesCommand](resetArticlesOperation),
	}
	return &ResetArticlesHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[ResetArticlesCommand].
func (h *ResetArticlesHandler) Execute(ctx context.Context, msg ResetArticlesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SetAdminPasswordHandler rotates the admin password hash.
type SetAdminPasswordHandler struct {
	inner *commands.Handler[SetAdminPasswordCommand]
}

// NewSetAdminPasswordHandler creates a handler bound to service. The password
// itself never reaches the logs.
func NewSetAdminPasswordHandler(service Service, logger interfaces.Logger, opts ...commands.HandlerOption[SetAdminPasswordCommand]) *SetAdminPasswordHandler {
	logger = baseLogger(logger)
	exec := func(ctx context.Context, msg SetAdminPasswordCommand) error {
		return service.SetAdminPassword(ctx, msg.Password)
	}
	handlerOpts := []commands.HandlerOption[SetAdminPasswordCommand]{
		commands.WithLogger[SetAdminPasswordCommand](logger),
		commands.WithOperation[SetAdminPasswordCommand](setAdminPasswordOperation),
	}
	return &SetAdminPasswordHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[SetAdminPasswordCommand].
func (h *SetAdminPasswordHandler) Execute(ctx context.Context, msg SetAdminPasswordCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportArticleFilesHandler upserts articles read from markdown files.
type ImportArticleFilesHandler struct {
	inner *commands.Handler[ImportArticleFilesCommand]
}

// NewImportArticleFilesHandler creates a handler bound to service. A nil loader
// reads from the host filesystem.
func NewImportArticleFilesHandler(service Service, loader ArticleFileLoader, logger interfaces.Logger, opts ...commands.HandlerOption[ImportArticleFilesCommand]) *ImportArticleFilesHandler {
	logger = baseLogger(logger)
	if loader == nil {
		loader = LoadArticleFiles
	}
	exec := func(ctx context.Context, msg ImportArticleFilesCommand) error {
		articles, err := loader(ctx, msg.Directory, msg.Recursive)
		if err != nil {
			return err
		}
		for _, article := range articles {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !service.UpdateArticle(ctx, article) {
				return fmt.Errorf("%w: %s", ErrArticleNotPersisted, article.ID)
			}
		}
		logging.WithFields(logger, map[string]any{
			"directory": msg.Directory,
			"imported":  len(articles),
		}).Info("site.command.import_article_files.completed")
		return nil
	}
	handlerOpts := []commands.HandlerOption[ImportArticleFilesCommand]{
		commands.WithLogger[ImportArticleFilesCommand](logger),
		commands.WithOperation[ImportArticleFilesCommand](importArticleFileOperation),
		commands.WithMessageFields(func(msg ImportArticleFilesCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.Recursive {
				fields["recursive"] = true
			}
			return fields
		}),
	}
	return &ImportArticleFilesHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[ImportArticleFilesCommand].
func (h *ImportArticleFilesHandler) Execute(ctx context.Context, msg ImportArticleFilesCommand) error {
	return h.inner.Execute(ctx, msg)
}
