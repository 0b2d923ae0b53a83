package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrStorageDriverUnknown = errors.New("sitecms config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("sitecms config: storage dsn is required for persistent drivers")
var ErrCacheTTLInvalid = errors.New("sitecms config: record cache ttl must be zero or positive")
var ErrArticlesVersionRequired = errors.New("sitecms config: articles version is required")
var ErrAuthAlgorithmUnknown = errors.New("sitecms config: password algorithm is invalid")
var ErrAuthCostInvalid = errors.New("sitecms config: password cost parameter is invalid")
var ErrLoggingProviderRequired = errors.New("sitecms config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("sitecms config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("sitecms config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sitecms config: logging format is invalid")

// Config aggregates storage bindings and feature flags for the site module.
type Config struct {
	Storage  StorageConfig
	Content  ContentConfig
	Auth     AuthConfig
	Render   RenderConfig
	Markdown MarkdownConfig
	Features Features
	Logging  LoggingConfig
}

// StorageConfig selects the record backend.
type StorageConfig struct {
	Driver    string
	DSN       string
	Namespace string
	ReadOnly  bool
	// CacheTTL applies to the bun record cache when Features.RecordCache is set.
	CacheTTL time.Duration
}

// ContentConfig carries the articles schema-version tag.
type ContentConfig struct {
	ArticlesVersion string
}

// AuthConfig selects how admin passwords are hashed.
type AuthConfig struct {
	Algorithm  string
	BcryptCost int
	ScryptN    int
}

// RenderConfig lists inline elements kept by the block renderer.
type RenderConfig struct {
	AllowedInline []string
}

// MarkdownConfig controls the preview engine and article file discovery.
type MarkdownConfig struct {
	Pattern    string
	Recursive  bool
	Extensions []string
	HardWraps  bool
	Unsafe     bool
}

// Features toggles optional functionality.
type Features struct {
	Logger      bool
	RecordCache bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns an in-memory setup with scrypt hashing and console logs.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Driver:    "memory",
			Namespace: "site",
			CacheTTL:  time.Minute,
		},
		Content: ContentConfig{
			ArticlesVersion: "2024.06-v3",
		},
		Auth: AuthConfig{
			Algorithm: "scrypt",
		},
		Render: RenderConfig{
			AllowedInline: []string{"strong"},
		},
		Markdown: MarkdownConfig{
			Pattern: "*.md",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	driver := normalize(cfg.Storage.Driver)
	if !isSupportedDriver(driver) {
		return fmt.Errorf("%w: %q", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}
	if driver != "memory" && strings.TrimSpace(cfg.Storage.DSN) == "" {
		return fmt.Errorf("%w: %s", ErrStorageDSNRequired, driver)
	}
	if cfg.Storage.CacheTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if strings.TrimSpace(cfg.Content.ArticlesVersion) == "" {
		return ErrArticlesVersionRequired
	}
	switch normalize(cfg.Auth.Algorithm) {
	case "", "scrypt":
		if n := cfg.Auth.ScryptN; n != 0 && (n < 2 || n&(n-1) != 0 || n > 1<<20) {
			return fmt.Errorf("%w: scrypt n=%d", ErrAuthCostInvalid, n)
		}
	case "bcrypt":
		if c := cfg.Auth.BcryptCost; c != 0 && (c < 4 || c > 31) {
			return fmt.Errorf("%w: bcrypt cost=%d", ErrAuthCostInvalid, c)
		}
	default:
		return fmt.Errorf("%w: %s", ErrAuthAlgorithmUnknown, cfg.Auth.Algorithm)
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case "memory", "sqlite", "postgres", "redis":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
