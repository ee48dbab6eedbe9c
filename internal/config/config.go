// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Deployment environments accepted by APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// StructuredConfig is the top-level configuration container for the
// request pipeline server. It aggregates all sub-configurations and is
// populated by merging defaults, a .env file, environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//   - validate: go-playground/validator rules checked after merging.
type StructuredConfig struct {
	// App holds application-level settings: the deployment environment,
	// the version and the optional token parameters.
	App App `envPrefix:"APP_"`

	// Server holds the listen address, body limit and timeouts of the
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// CORS holds the cross-origin policy applied before every route.
	CORS CORS `envPrefix:"CORS_"`

	// Log holds the file sink settings of the application logger.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Env is the deployment environment. It selects the minimum log level
	// and whether error responses expose internal details.
	// Env: APP_ENV
	Env string `env:"ENV" validate:"oneof=development production test"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version endpoint and written
	// to every error record.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// TokenSignKey is the secret key used to verify bearer JWT tokens.
	// Authentication is disabled when it is empty.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim. It is checked only when set.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. ":8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" validate:"required"`

	// BodyLimit is the maximum accepted request body size in bytes.
	// Env: SERVER_BODY_LIMIT
	BodyLimit int64 `env:"BODY_LIMIT" validate:"gt=0"`

	// ReadHeaderTimeout bounds the time allowed to read request headers.
	// Env: SERVER_READ_HEADER_TIMEOUT
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" validate:"gte=0"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" validate:"gte=0"`

	// RouteNotFound enables the catch-all 404 / 405 responses that go
	// through the error pipeline.
	// Env: SERVER_ROUTE_NOT_FOUND
	RouteNotFound bool `env:"ROUTE_NOT_FOUND"`
}

// CORS holds the cross-origin resource sharing policy.
type CORS struct {
	// Env: CORS_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" validate:"dive,required"`

	// Env: CORS_ALLOWED_METHODS (comma separated)
	AllowedMethods []string `env:"ALLOWED_METHODS" validate:"dive,oneof=GET HEAD PUT PATCH POST DELETE OPTIONS"`

	// AllowCredentials is a pointer so that an explicit false overrides
	// the default.
	// Env: CORS_ALLOW_CREDENTIALS
	AllowCredentials *bool `env:"ALLOW_CREDENTIALS"`

	// OptionsSuccessStatus is the status written for successful preflight
	// requests.
	// Env: CORS_OPTIONS_SUCCESS_STATUS
	OptionsSuccessStatus int `env:"OPTIONS_SUCCESS_STATUS" validate:"gte=200,lte=299"`

	// MaxAge is the preflight cache lifetime in seconds.
	// Env: CORS_MAX_AGE
	MaxAge int `env:"MAX_AGE" validate:"gte=0"`
}

// CredentialsAllowed reports whether credentialed requests are allowed.
func (c CORS) CredentialsAllowed() bool {
	return c.AllowCredentials != nil && *c.AllowCredentials
}

// Log holds the file sink settings of the application logger.
type Log struct {
	// Dir is the directory of combined.log, error.log and http.log.
	// An empty value logs to the console only.
	// Env: LOG_DIR
	Dir string `env:"DIR"`

	// Env: LOG_MAX_SIZE_MB
	MaxSizeMB int `env:"MAX_SIZE_MB" validate:"gte=0"`

	// Env: LOG_MAX_BACKUPS
	MaxBackups int `env:"MAX_BACKUPS" validate:"gte=0"`

	// Env: LOG_MAX_AGE_DAYS
	MaxAgeDays int `env:"MAX_AGE_DAYS" validate:"gte=0"`

	// Compress gzips rotated files.
	// Env: LOG_COMPRESS
	Compress *bool `env:"COMPRESS"`

	// NoColor disables ANSI colors on the console sink.
	// Env: LOG_NO_COLOR
	NoColor bool `env:"NO_COLOR"`

	// SensitiveFields are appended to the built-in list of keys redacted
	// from logged request data.
	// Env: LOG_SENSITIVE_FIELDS (comma separated)
	SensitiveFields []string `env:"SENSITIVE_FIELDS"`
}

// CompressEnabled reports whether rotated log files are compressed.
func (l Log) CompressEnabled() bool {
	return l.Compress != nil && *l.Compress
}

// IsProduction reports whether the application runs in production.
func (cfg *StructuredConfig) IsProduction() bool {
	return cfg.App.Env == EnvProduction
}

// defaultConfig returns the values used when no source sets a field.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env: EnvDevelopment,
		},
		Server: Server{
			HTTPAddress:       ":8080",
			BodyLimit:         100 << 10,
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		CORS: CORS{
			AllowedOrigins:       []string{"http://localhost:8085"},
			AllowedMethods:       []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
			AllowCredentials:     boolPtr(true),
			OptionsSuccessStatus: 200,
		},
		Log: Log{
			Dir:        "logs",
			MaxSizeMB:  20,
			MaxAgeDays: 14,
			Compress:   boolPtr(true),
		},
	}
}

func boolPtr(v bool) *bool {
	return &v
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. .env file in the working directory (never overrides the environment)
//  2. Built-in defaults
//  3. Environment variables
//  4. Command-line flags
//  5. JSON file (path resolved from sources 3 and 4)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(".env").
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
