// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

// Package config loads process configuration from defaults, an optional YAML
// file, the environment and command-line flags, in that order of precedence.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes environment overrides. Nested keys use a double
// underscore: PM_TOKEN__SECRET sets token.secret.
const EnvPrefix = "PM_"

// MinSecretLength is the shortest accepted HMAC signing secret in bytes.
const MinSecretLength = 32

// Config is the full process configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	Auth     AuthConfig     `koanf:"auth"`
	Token    TokenConfig    `koanf:"token"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// DatabaseConfig locates the PostgreSQL store.
type DatabaseConfig struct {
	URL            string        `koanf:"url"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
	ConnectRetries uint64        `koanf:"connect_retries"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
}

// AuthConfig groups the named credential policies.
type AuthConfig struct {
	Password PasswordConfig `koanf:"password"`
	Lockout  LockoutConfig  `koanf:"lockout"`
}

// PasswordConfig is the password policy applied at registration.
type PasswordConfig struct {
	MinLength              int  `koanf:"min_length"`
	RequireDigit           bool `koanf:"require_digit"`
	RequireUppercase       bool `koanf:"require_uppercase"`
	RequireLowercase       bool `koanf:"require_lowercase"`
	RequireNonAlphanumeric bool `koanf:"require_non_alphanumeric"`
}

// LockoutConfig is the brute-force protection policy applied at login.
type LockoutConfig struct {
	MaxFailedAttempts int           `koanf:"max_failed_attempts"`
	Duration          time.Duration `koanf:"duration"`
}

// TokenConfig configures bearer token signing.
type TokenConfig struct {
	Secret   string        `koanf:"secret"`
	Issuer   string        `koanf:"issuer"`
	Audience string        `koanf:"audience"`
	Expiry   time.Duration `koanf:"expiry"`
}

// MetricsConfig configures the observability endpoint. Empty Addr disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			ConnectTimeout: 10 * time.Second,
			ConnectRetries: 5,
		},
		Log: LogConfig{Format: "json", Level: "info"},
		Auth: AuthConfig{
			Password: PasswordConfig{
				MinLength:        8,
				RequireDigit:     true,
				RequireUppercase: true,
				RequireLowercase: true,
			},
			Lockout: LockoutConfig{
				MaxFailedAttempts: 5,
				Duration:          5 * time.Minute,
			},
		},
		Token: TokenConfig{
			Issuer:   "ProjectManagement",
			Audience: "ProjectManagementClients",
			Expiry:   24 * time.Hour,
		},
		Metrics: MetricsConfig{Addr: "127.0.0.1:9100"},
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"database-url": "database.url",
	"log-format":   "log.format",
	"log-level":    "log.level",
	"metrics-addr": "metrics.addr",
}

// Load builds a Config. path may be empty; flags may be nil.
// DATABASE_URL is honoured as a fallback for database.url.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
		}
	}

	if url := os.Getenv("DATABASE_URL"); url != "" && !k.Exists("database.url") {
		if err := k.Set("database.url", url); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, oops.Code("CONFIG_LOAD_FAILED").With("source", "env").Wrap(err)
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, f.Value.String()
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").With("source", "flags").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_INVALID").Wrap(err)
	}
	return cfg, nil
}

// envKey turns PM_AUTH__LOCKOUT__DURATION into auth.lockout.duration.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks settings needed by every command.
func (c Config) Validate() error {
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return oops.Code("CONFIG_INVALID").
			With("log.format", c.Log.Format).
			Errorf("log format must be 'json' or 'text', got %q", c.Log.Format)
	}
	if c.Auth.Password.MinLength < 1 {
		return oops.Code("CONFIG_INVALID").Errorf("auth.password.min_length must be at least 1")
	}
	if c.Auth.Lockout.MaxFailedAttempts < 1 {
		return oops.Code("CONFIG_INVALID").Errorf("auth.lockout.max_failed_attempts must be at least 1")
	}
	if c.Auth.Lockout.Duration <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("auth.lockout.duration must be positive")
	}
	return nil
}

// ValidateDatabase checks settings needed to reach the store.
func (c Config) ValidateDatabase() error {
	if c.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").
			Errorf("database url is required (set database.url, --database-url or DATABASE_URL)")
	}
	return nil
}

// ValidateToken checks settings needed to sign tokens. A missing secret is a
// fatal configuration error, never a request-time one.
func (c Config) ValidateToken() error {
	if c.Token.Secret == "" {
		return oops.Code("CONFIG_TOKEN_SECRET_MISSING").
			Errorf("token.secret is required (set PM_TOKEN__SECRET)")
	}
	if len(c.Token.Secret) < MinSecretLength {
		return oops.Code("CONFIG_TOKEN_SECRET_WEAK").
			With("min_length", MinSecretLength).
			Errorf("token.secret must be at least %d bytes", MinSecretLength)
	}
	if c.Token.Expiry <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("token.expiry must be positive")
	}
	return nil
}
