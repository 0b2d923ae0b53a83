package cms

import "github.com/goliatone/go-sitecms/internal/runtimeconfig"

var (
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrArticlesVersionRequired = runtimeconfig.ErrArticlesVersionRequired
	ErrAuthAlgorithmUnknown    = runtimeconfig.ErrAuthAlgorithmUnknown
	ErrAuthCostInvalid         = runtimeconfig.ErrAuthCostInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	StorageConfig  = runtimeconfig.StorageConfig
	ContentConfig  = runtimeconfig.ContentConfig
	AuthConfig     = runtimeconfig.AuthConfig
	RenderConfig   = runtimeconfig.RenderConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
