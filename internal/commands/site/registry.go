package sitecmd

import (
	"errors"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the site command handlers built by RegisterSiteCommands.
type HandlerSet struct {
	Import           *ImportSiteHandler
	Export           *ExportSiteHandler
	DeleteArticle    *DeleteArticleHandler
	ResetArticles    *ResetArticlesHandler
	SetAdminPassword *SetAdminPasswordHandler
	ImportFiles      *ImportArticleFilesHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	loader ArticleFileLoader
}

// WithArticleFileLoader replaces the filesystem loader used by ImportArticleFilesCommand.
func WithArticleFileLoader(loader ArticleFileLoader) Option {
	return func(cfg *options) {
		cfg.loader = loader
	}
}

// RegisterSiteCommands builds the site command handlers and registers each one
// with reg when it is not nil.
func RegisterSiteCommands(reg CommandRegistry, service Service, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("site command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "site")
	set := &HandlerSet{
		Import:           NewImportSiteHandler(service, logger),
		Export:           NewExportSiteHandler(service, logger),
		DeleteArticle:    NewDeleteArticleHandler(service, logger),
		ResetArticles:    NewResetArticlesHandler(service, logger),
		SetAdminPassword: NewSetAdminPasswordHandler(service, logger),
		ImportFiles:      NewImportArticleFilesHandler(service, cfg.loader, logger),
	}

	if reg != nil {
		for _, handler := range set.handlers() {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

func (s *HandlerSet) handlers() []any {
	return []any{s.Import, s.Export, s.DeleteArticle, s.ResetArticles, s.SetAdminPassword, s.ImportFiles}
}

// Subscribe attaches every handler to the go-command dispatcher and returns a
// function that detaches them again.
func (s *HandlerSet) Subscribe() func() {
	subs := []interface{ Unsubscribe() }{
		dispatcher.SubscribeCommand(s.Import),
		dispatcher.SubscribeCommand(s.Export),
		dispatcher.SubscribeCommand(s.DeleteArticle),
		dispatcher.SubscribeCommand(s.ResetArticles),
		dispatcher.SubscribeCommand(s.SetAdminPassword),
		dispatcher.SubscribeCommand(s.ImportFiles),
	}
	return func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}
}
