// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Provider names accepted by the Provider field.
const (
	ProviderStatic   = "static"
	ProviderPostgres = "postgres"
)

// Config holds runtime settings for the logingate server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx); required for the postgres provider.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - Provider: which identity provider verifies credentials ("static" or "postgres").
//   - StaticEmail / StaticPassword: the fixed account used by the static provider.
//   - RedisAddr / RedisPassword / RedisDB: optional Redis backend for the login
//     rate limiter; when RedisAddr is empty an in-process limiter is used.
//   - LoginRateLimit / LoginRateWindow: attempts allowed per client per window.
type Config struct {
	EndpointAddr                 string
	DatabaseDSN                  string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	Provider                     string
	StaticEmail                  string
	StaticPassword               string
	RedisAddr                    string
	RedisPassword                string
	RedisDB                      int
	LoginRateLimit               int
	LoginRateWindow              time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 30 * 24 * time.Hour
	c.Provider = ProviderStatic
	c.StaticEmail = "user@example.com"
	c.StaticPassword = "securePassword123"
	c.RedisAddr = ""
	c.LoginRateLimit = 12
	c.LoginRateWindow = time.Minute
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
