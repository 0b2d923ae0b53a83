package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-sitecms/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RejectsUnknownStorageDriver(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = "mongo"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}

func TestConfigValidate_RequiresDSNForPersistentDrivers(t *testing.T) {
	for _, driver := range []string{"sqlite", "Postgres", "redis"} {
		cfg := runtimeconfig.DefaultConfig()
		cfg.Storage.Driver = driver
		cfg.Storage.DSN = " "

		if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
			t.Fatalf("%s: expected ErrStorageDSNRequired, got %v", driver, err)
		}
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = "sqlite"
	cfg.Storage.DSN = "file:site.db"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sqlite with dsn: %v", err)
	}
}

func TestConfigValidate_RejectsNegativeCacheTTL(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.CacheTTL = -1

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCacheTTLInvalid) {
		t.Fatalf("expected ErrCacheTTLInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresArticlesVersion(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.ArticlesVersion = "  "

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrArticlesVersionRequired) {
		t.Fatalf("expected ErrArticlesVersionRequired, got %v", err)
	}
}

func TestConfigValidate_Auth(t *testing.T) {
	cases := []struct {
		name string
		auth runtimeconfig.AuthConfig
		want error
	}{
		{name: "bcrypt", auth: runtimeconfig.AuthConfig{Algorithm: "bcrypt", BcryptCost: 10}},
		{name: "scrypt power of two", auth: runtimeconfig.AuthConfig{Algorithm: "scrypt", ScryptN: 1 << 14}},
		{name: "unknown", auth: runtimeconfig.AuthConfig{Algorithm: "md5"}, want: runtimeconfig.ErrAuthAlgorithmUnknown},
		{name: "scrypt not power of two", auth: runtimeconfig.AuthConfig{ScryptN: 1000}, want: runtimeconfig.ErrAuthCostInvalid},
		{name: "bcrypt cost too low", auth: runtimeconfig.AuthConfig{Algorithm: "bcrypt", BcryptCost: 2}, want: runtimeconfig.ErrAuthCostInvalid},
	}

	for _, tc := range cases {
		cfg := runtimeconfig.DefaultConfig()
		cfg.Auth = tc.auth
		err := cfg.Validate()
		if tc.want == nil && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "loud"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
