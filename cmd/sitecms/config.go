package main

import (
	"flag"
	"strconv"
	"strings"
	"time"

	cms "github.com/goliatone/go-sitecms"
)

const envPrefix = "SITECMS_"

// lookupFunc matches os.LookupEnv.
type lookupFunc func(key string) (string, bool)

// applyEnv overlays SITECMS_* variables onto cfg. Malformed booleans and
// durations are ignored.
func applyEnv(cfg *cms.Config, lookup lookupFunc) {
	str := func(name string, target *string) {
		if value, ok := lookup(envPrefix + name); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	boolean := func(name string, target *bool) {
		if value, ok := lookup(envPrefix + name); ok {
			if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
				*target = parsed
			}
		}
	}

	str("STORAGE_DRIVER", &cfg.Storage.Driver)
	str("STORAGE_DSN", &cfg.Storage.DSN)
	str("NAMESPACE", &cfg.Storage.Namespace)
	boolean("STORAGE_READ_ONLY", &cfg.Storage.ReadOnly)
	if value, ok := lookup(envPrefix + "CACHE_TTL"); ok {
		if ttl, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			cfg.Storage.CacheTTL = ttl
		}
	}
	boolean("RECORD_CACHE", &cfg.Features.RecordCache)
	str("ARTICLES_VERSION", &cfg.Content.ArticlesVersion)
	str("AUTH_ALGORITHM", &cfg.Auth.Algorithm)
	str("LOG_PROVIDER", &cfg.Logging.Provider)
	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FORMAT", &cfg.Logging.Format)
	boolean("LOG", &cfg.Features.Logger)
}

// bindFlags registers global flags whose defaults are the values already in cfg.
func bindFlags(fs *flag.FlagSet, cfg *cms.Config) {
	fs.StringVar(&cfg.Storage.Driver, "driver", cfg.Storage.Driver, "storage driver: memory, sqlite, postgres or redis")
	fs.StringVar(&cfg.Storage.DSN, "dsn", cfg.Storage.DSN, "storage connection string")
	fs.StringVar(&cfg.Storage.Namespace, "namespace", cfg.Storage.Namespace, "record key namespace")
	fs.BoolVar(&cfg.Storage.ReadOnly, "read-only", cfg.Storage.ReadOnly, "reject writes to storage")
	fs.BoolVar(&cfg.Features.RecordCache, "record-cache", cfg.Features.RecordCache, "cache sql record reads")
	fs.StringVar(&cfg.Content.ArticlesVersion, "articles-version", cfg.Content.ArticlesVersion, "articles schema-version tag")
	fs.BoolVar(&cfg.Features.Logger, "log", cfg.Features.Logger, "enable logging")
	fs.StringVar(&cfg.Logging.Provider, "log-provider", cfg.Logging.Provider, "logging provider: console or gologger")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "minimum log level")
	fs.StringVar(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "gologger format: json, console or pretty")
}
