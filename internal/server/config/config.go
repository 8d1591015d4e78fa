// Package config handles configuration for the server component:
// defaults, a JSON or YAML file overlay, environment variables and
// command-line flags, applied in that order.
package config

import "time"

// Config holds runtime settings for the TaskMaster server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - APIPrefix: path prefix all API routes are mounted under.
//   - DatabaseDriver: "postgres" (pgx) or "sqlite" (modernc).
//   - DatabaseDSN: DSN for the selected driver.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required.
//   - AccessTokenValidityDuration: session token lifetime.
//   - MaxPageSize: ceiling applied to the limit query parameter.
//   - LogBackend / LogLevel: see logging.New.
//   - GinMode: gin.DebugMode, gin.ReleaseMode or gin.TestMode.
//   - ShutdownTimeout: how long in-flight requests get on shutdown.
type Config struct {
	EndpointAddrHTTP            string        `env:"ENDPOINT_ADDR_HTTP"`
	APIPrefix                   string        `env:"API_PREFIX"`
	DatabaseDriver              string        `env:"DATABASE_DRIVER"`
	DatabaseDSN                 string        `env:"DATABASE_DSN"`
	SecretKey                   string        `env:"SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `env:"ACCESS_TOKEN_VALIDITY_DURATION"`
	MaxPageSize                 int           `env:"MAX_PAGE_SIZE"`
	LogBackend                  string        `env:"LOG_BACKEND"`
	LogLevel                    string        `env:"LOG_LEVEL"`
	GinMode                     string        `env:"GIN_MODE"`
	ShutdownTimeout             time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// LoadDefaults populates Config with development defaults.
// SecretKey has no default; NewApp refuses to start until one is configured.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.APIPrefix = "/api/v1"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:data/taskmaster.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.MaxPageSize = 100
	c.LogBackend = "slog"
	c.LogLevel = "info"
	c.GinMode = "release"
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file, the environment and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
