// Package config handles configuration for the CLI client: defaults,
// an optional JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/logingate/internal/common"
)

// Config holds runtime settings for the logingate client.
//
// Fields:
//   - ServerEndpointAddr: base address of the login server, with or without scheme.
//   - RedirectTarget: view the form navigates to after a successful sign-in.
//   - LocalDBPath: path of the SQLite file holding remembered sign-in state.
//   - RememberDuration: how long a remembered refresh token is kept locally.
type Config struct {
	ServerEndpointAddr string
	RedirectTarget     string
	LocalDBPath        string
	RememberDuration   time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "localhost:8080"
	c.RedirectTarget = common.DefaultRedirectTarget
	c.LocalDBPath = "logingate.db"
	c.RememberDuration = 30 * 24 * time.Hour
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
