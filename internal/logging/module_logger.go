package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const (
	rootModule        = "sitecms"
	recordsModule     = "sitecms.records"
	versionGateModule = "sitecms.versiongate"
	siteModule        = "sitecms.site"
	markupModule      = "sitecms.markup"
	commandsModule    = "sitecms.commands"
	storageModule     = "sitecms.storage"
)

const (
	fieldRecordKey = "key"
	fieldArticleID = "article_id"
)

// ModuleLogger returns a logger scoped to module, falling back to a no-op
// logger when provider is nil or returns nothing. The module name is attached
// as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RecordsLogger returns the logger used by the keyed record store.
func RecordsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, recordsModule)
}

// VersionGateLogger returns the logger used by the schema version gate.
func VersionGateLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, versionGateModule)
}

// SiteLogger returns the logger used by the site content repository.
func SiteLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, siteModule)
}

// StorageLogger returns the logger used by storage backends.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// MarkupLogger returns the logger used by markup rendering helpers.
func MarkupLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markupModule)
}

// CommandsLogger returns the logger used by the command handlers of group.
// A blank group yields the root commands logger.
func CommandsLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	if group = strings.TrimSpace(group); group != "" {
		return ModuleLogger(provider, commandsModule+"."+group)
	}
	return ModuleLogger(provider, commandsModule)
}

// WithRecordKey tags logger entries with the storage key being addressed.
func WithRecordKey(logger interfaces.Logger, key string) interfaces.Logger {
	if trimmed := strings.TrimSpace(key); trimmed != "" {
		return WithFields(logger, map[string]any{fieldRecordKey: trimmed})
	}
	return logger
}

// WithArticle tags logger entries with an article id.
func WithArticle(logger interfaces.Logger, id string) interfaces.Logger {
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		return WithFields(logger, map[string]any{fieldArticleID: trimmed})
	}
	return logger
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
